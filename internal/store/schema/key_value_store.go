package schema

import "time"

// KeyValueStore holds small pieces of operational state keyed by name.
// The emitter keeps its per-chain block cursor here under "block_cursor:<chain>".
type KeyValueStore struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KeyValueStore) TableName() string {
	return "key_value_store"
}
