package ports

import "context"

// Port: a boundary for persisting JSON-encoded state blobs under flat keys.
// The mission store is the only writer; adapters back this with SQLite,
// Postgres, or Redis.
type KeyValueStore interface {
	// Get returns the value for key. The second return reports presence so
	// an absent key is distinguishable from an empty value.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error
}
