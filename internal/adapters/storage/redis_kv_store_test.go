package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisKVStoreRoundTrip(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	kv := NewRedisKVStore(client)
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "albania_missions"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "albania_missions", `{"m1":{"id":"m1"}}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	value, ok, err := kv.Get(ctx, "albania_missions")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || value != `{"m1":{"id":"m1"}}` {
		t.Fatalf("round trip mismatch: ok=%v value=%q", ok, value)
	}

	// Overwrite replaces the previous value.
	if err := kv.Set(ctx, "albania_missions", `{}`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	value, _, _ = kv.Get(ctx, "albania_missions")
	if value != `{}` {
		t.Fatalf("overwrite not applied: %q", value)
	}
}

func TestRedisKVStoreDownstreamFailure(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	kv := NewRedisKVStore(client)
	srv.Close()

	if err := kv.Set(context.Background(), "albania_sigint", "[]"); err == nil {
		t.Fatal("expected error writing to a closed redis")
	}
	if _, _, err := kv.Get(context.Background(), "albania_sigint"); err == nil {
		t.Fatal("expected error reading from a closed redis")
	}
}
