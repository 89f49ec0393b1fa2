package models

import "time"

// KVRecord is a single named slot in the local durable store.
type KVRecord struct {
	Key       string    `gorm:"type:text;primary_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

func (KVRecord) TableName() string {
	return "kv_records"
}
