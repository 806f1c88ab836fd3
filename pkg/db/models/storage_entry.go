package models

import "time"

// StorageEntry is one visitor-scoped key/value pair.
type StorageEntry struct {
	SessionID string    `gorm:"column:session_id;primaryKey;type:text"`
	Key       string    `gorm:"column:key;primaryKey;type:text"`
	Value     string    `gorm:"column:value;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StorageEntry) TableName() string { return "storage_entries" }
