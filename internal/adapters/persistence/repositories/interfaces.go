package repositories

import (
	"context"
)

// KeyValueStore defines the persisted session state interface.
// Get returns domain.ErrKeyNotFound for a missing key; Delete ignores
// keys that do not exist.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
