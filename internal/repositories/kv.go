package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/interview-simulator/internal/models"
)

// KVStore is the local durable storage collaborator: synchronous string
// key-value slots. Get reports absence through its second return value
// rather than an error.
type KVStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

type kvStore struct {
	db *gorm.DB
}

func NewKVStore(db *gorm.DB) KVStore {
	return &kvStore{db: db}
}

// Get implements KVStore.
func (s *kvStore) Get(key string) (string, bool, error) {
	var record models.KVRecord
	if err := s.db.Where("key = ?", key).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}

	return record.Value, true, nil
}

// Set implements KVStore.
func (s *kvStore) Set(key, value string) error {
	record := models.KVRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}

	return nil
}

// Remove implements KVStore. Removing an absent key is not an error.
func (s *kvStore) Remove(key string) error {
	if err := s.db.Where("key = ?", key).Delete(&models.KVRecord{}).Error; err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}

	return nil
}
