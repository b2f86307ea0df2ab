package repositories

import (
	"context"
	"sync"

	"esolve-collections/internal/core/domain"
)

// memoryKeyValueStore implements KeyValueStore in process memory.
// State does not survive a restart; used for SESSION_BACKEND=memory and tests.
type memoryKeyValueStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKeyValueStore creates an empty in-memory key-value store
func NewMemoryKeyValueStore() KeyValueStore {
	return &memoryKeyValueStore{data: make(map[string]string)}
}

func (r *memoryKeyValueStore) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

func (r *memoryKeyValueStore) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = value
	return nil
}

func (r *memoryKeyValueStore) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keys {
		delete(r.data, k)
	}
	return nil
}
