package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"esolve-collections/internal/adapters/persistence/models"
	"esolve-collections/internal/core/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupGormStore(t *testing.T) KeyValueStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewGormKeyValueStore(db)
}

func TestKeyValueStores(t *testing.T) {
	stores := map[string]func(t *testing.T) KeyValueStore{
		"gorm":   setupGormStore,
		"memory": func(*testing.T) KeyValueStore { return NewMemoryKeyValueStore() },
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			if _, err := store.Get(ctx, "auth_token"); !errors.Is(err, domain.ErrKeyNotFound) {
				t.Fatalf("Expected ErrKeyNotFound on empty store, got %v", err)
			}

			if err := store.Set(ctx, "auth_token", "first"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := store.Set(ctx, "auth_token", "second"); err != nil {
				t.Fatalf("Overwrite failed: %v", err)
			}
			if err := store.Set(ctx, "user", `{"id":"1"}`); err != nil {
				t.Fatalf("Set user failed: %v", err)
			}

			got, err := store.Get(ctx, "auth_token")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if got != "second" {
				t.Errorf("Expected overwritten value, got %q", got)
			}

			if err := store.Delete(ctx, "auth_token", "user", "missing"); err != nil {
				t.Fatalf("Delete failed: %v", err)
			}
			for _, k := range []string{"auth_token", "user"} {
				if _, err := store.Get(ctx, k); !errors.Is(err, domain.ErrKeyNotFound) {
					t.Errorf("Expected %s deleted, got %v", k, err)
				}
			}

			if err := store.Delete(ctx); err != nil {
				t.Errorf("Delete with no keys should be a no-op, got %v", err)
			}
		})
	}
}
