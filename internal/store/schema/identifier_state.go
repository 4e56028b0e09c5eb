package schema

import "time"

// IdentifierState represents the vault_identifier_states table - current
// cap/allocation state for one (chain, vault, identifier) bucket. An absent
// row is semantically a zero-state row; rows are created lazily on the first
// cap-change or allocation event referencing the identifier.
type IdentifierState struct {
	Chain        string `gorm:"column:chain;primaryKey;type:text"`
	VaultAddress string `gorm:"column:vault_address;primaryKey;type:text"`
	// IdentifierID is the 32-byte identifier hash, lowercase hex
	IdentifierID string `gorm:"column:identifier_id;primaryKey;type:text"`

	AbsoluteCap string `gorm:"column:absolute_cap;not null;default:0;type:numeric(78,0)"`
	RelativeCap string `gorm:"column:relative_cap;not null;default:0;type:numeric(78,0)"`
	// Allocation is delta-accumulated and may be negative if the upstream
	// event semantics over-deallocate; see the allocation_events ledger
	Allocation string `gorm:"column:allocation;not null;default:0;type:numeric(78,0)"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the IdentifierState model
func (IdentifierState) TableName() string {
	return "vault_identifier_states"
}
