package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the key-value port. State blobs live in a
// single table keyed by the storage key, mirroring the flat key-value layout
// the planner's persisted state was designed around.
type SqliteKVStore struct {
	DB *sql.DB
}

func NewSqliteKVStore(db *sql.DB) *SqliteKVStore {
	return &SqliteKVStore{DB: db}
}

func (s *SqliteKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.DB == nil {
		return "", false, errors.New("kv store: db is nil")
	}

	var value string
	err := s.DB.QueryRowContext(ctx, `
	SELECT value
	FROM state_blobs
	WHERE key = ?;
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state blob key=%q: %w", key, err)
	}

	return value, true, nil
}

func (s *SqliteKVStore) Set(ctx context.Context, key string, value string) error {
	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO state_blobs (key, value)
	VALUES (?, ?);
	`, key, value)
	if err != nil {
		return fmt.Errorf("set state blob key=%q: %w", key, err)
	}

	return nil
}
