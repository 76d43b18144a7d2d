package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recon-planner-service/internal/platform/obs"
)

// SQLKVStore is the Postgres variant of the key-value port, for deployments
// provisioned through cmd/dbtool.
type SQLKVStore struct {
	DB *sql.DB
}

func NewSQLKVStore(db *sql.DB) *SQLKVStore {
	return &SQLKVStore{DB: db}
}

func (s *SQLKVStore) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "kv.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("kv store: db is nil")
	}

	var value string
	err = s.DB.QueryRowContext(ctx, `
	SELECT value
	FROM state_blobs
	WHERE key = $1;
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state blob key=%q: %w", key, err)
	}

	return value, true, nil
}

func (s *SQLKVStore) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "kv.Set")(&err)

	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO state_blobs (key, value)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value;
	`, key, value)
	if err != nil {
		return fmt.Errorf("set state blob key=%q: %w", key, err)
	}

	return nil
}
