package storage

import (
	"context"
	"errors"
	"sync"
)

// In-memory implementation of the key-value port, used in tests and as a
// fallback when no persistent backend is configured. FailWrites simulates a
// full or inaccessible store.
type MemoryKVStore struct {
	mu         sync.Mutex
	data       map[string]string
	FailWrites bool
}

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{data: make(map[string]string)}
}

func (m *MemoryKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKVStore) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites {
		return errors.New("memory kv store: write refused")
	}
	m.data[key] = value
	return nil
}

// Snapshot returns a copy of the stored blobs, for test assertions.
func (m *MemoryKVStore) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
