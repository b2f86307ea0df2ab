package repositories

import (
	"context"
	"errors"

	"esolve-collections/internal/adapters/persistence/models"
	"esolve-collections/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormKeyValueStore implements KeyValueStore on the session_state table
type gormKeyValueStore struct {
	db *gorm.DB
}

// NewGormKeyValueStore creates a new gorm-backed key-value store
func NewGormKeyValueStore(db *gorm.DB) KeyValueStore {
	return &gormKeyValueStore{db: db}
}

// Get gets a value by key
func (r *gormKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	var entry models.KeyValueEntry
	err := r.db.WithContext(ctx).
		Where(&models.KeyValueEntry{Key: key}).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrKeyNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

// Set inserts or replaces a value
func (r *gormKeyValueStore) Set(ctx context.Context, key, value string) error {
	entry := &models.KeyValueEntry{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(entry).Error
}

// Delete removes the given keys
func (r *gormKeyValueStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where(map[string]interface{}{"key": keys}).
		Delete(&models.KeyValueEntry{}).Error
}
