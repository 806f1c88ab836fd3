package storage

import (
	"context"
	"errors"

	"github.com/angelmondragon/storefront/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore persists entries as storage_entries rows keyed by (session_id, key).
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if db == nil {
		return nil, errors.New("gorm db required")
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) GetItem(ctx context.Context, sessionID, key string) (string, bool, error) {
	var entry models.StorageEntry
	err := s.db.WithContext(ctx).
		Where(entryKey(sessionID, key)).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *SQLStore) SetItem(ctx context.Context, sessionID, key, value string) error {
	entry := models.StorageEntry{SessionID: sessionID, Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *SQLStore) RemoveItem(ctx context.Context, sessionID, key string) error {
	return s.db.WithContext(ctx).
		Where(entryKey(sessionID, key)).
		Delete(&models.StorageEntry{}).Error
}

func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func entryKey(sessionID, key string) map[string]any {
	return map[string]any{"session_id": sessionID, "key": key}
}
