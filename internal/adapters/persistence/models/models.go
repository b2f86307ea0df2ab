package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Persisted session state
// ============================================================

// KeyValueEntry represents the session_state table.
// It holds the small set of values that must survive a restart:
// the current credential and the serialized signed-in user.
type KeyValueEntry struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KeyValueEntry) TableName() string {
	return "session_state"
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&KeyValueEntry{},
	)
}
