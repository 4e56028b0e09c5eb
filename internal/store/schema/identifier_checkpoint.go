package schema

import "time"

// IdentifierCheckpoint represents the vault_identifier_checkpoints table -
// an immutable copy of one identifier's state taken immediately after
// applying one event. Keyed by the event coordinate, suffixed with the
// identifier's array position when a single event touches several.
type IdentifierCheckpoint struct {
	// ID is the triggering event's coordinate, optionally suffixed ":<i>"
	ID           string    `gorm:"column:id;primaryKey;type:text"`
	Chain        string    `gorm:"column:chain;not null;type:text;index:idx_identifier_checkpoints_vault_time,priority:1"`
	VaultAddress string    `gorm:"column:vault_address;not null;type:text;index:idx_identifier_checkpoints_vault_time,priority:2"`
	IdentifierID string    `gorm:"column:identifier_id;not null;type:text;index:idx_identifier_checkpoints_vault_time,priority:3"`
	BlockNumber  uint64    `gorm:"column:block_number;not null;type:bigint"`
	BlockTime    time.Time `gorm:"column:block_time;not null;type:timestamptz;index:idx_identifier_checkpoints_vault_time,priority:4"`
	TxHash       string    `gorm:"column:tx_hash;not null;type:text"`
	TxIndex      uint64    `gorm:"column:tx_index;not null;type:bigint"`
	LogIndex     uint64    `gorm:"column:log_index;not null;type:bigint"`
	EventKind    string    `gorm:"column:event_kind;not null;type:text"`

	AbsoluteCap string `gorm:"column:absolute_cap;not null;default:0;type:numeric(78,0)"`
	RelativeCap string `gorm:"column:relative_cap;not null;default:0;type:numeric(78,0)"`
	Allocation  string `gorm:"column:allocation;not null;default:0;type:numeric(78,0)"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the IdentifierCheckpoint model
func (IdentifierCheckpoint) TableName() string {
	return "vault_identifier_checkpoints"
}
