package storage

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
	CREATE TABLE state_blobs (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`)
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}

	return db
}

func TestSqliteKVStoreRoundTrip(t *testing.T) {
	kv := NewSqliteKVStore(openTestDB(t))
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "albania_reviews"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "albania_reviews", `{"Tirana":[]}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := kv.Set(ctx, "albania_reviews", `{"Berat":[]}`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	value, ok, err := kv.Get(ctx, "albania_reviews")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || value != `{"Berat":[]}` {
		t.Fatalf("round trip mismatch: ok=%v value=%q", ok, value)
	}
}

func TestSqliteKVStoreNilDB(t *testing.T) {
	kv := NewSqliteKVStore(nil)

	if _, _, err := kv.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error for nil db")
	}
	if err := kv.Set(context.Background(), "k", "v"); err == nil {
		t.Fatal("expected error for nil db")
	}
}
