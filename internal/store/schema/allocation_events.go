package schema

import (
	"gorm.io/datatypes"
)

// CapEvent represents the cap_events table - absolute/relative cap changes
// for one identifier inside a vault
type CapEvent struct {
	EventCoordinate

	// Kind is the cap event kind (increase/decrease, absolute/relative)
	Kind string `gorm:"column:kind;not null;type:text"`
	// IdentifierID is the 32-byte identifier hash, lowercase hex
	IdentifierID string `gorm:"column:identifier_id;not null;type:text"`
	// NewCap is the replacement cap value
	NewCap string `gorm:"column:new_cap;not null;default:0;type:numeric(78,0)"`
}

// TableName specifies the table name for the CapEvent model
func (CapEvent) TableName() string {
	return "cap_events"
}

// AllocationEvent represents the allocation_events table - allocate,
// deallocate and force-deallocate events carrying an array of affected
// identifiers and a single signed delta applied uniformly to each
type AllocationEvent struct {
	EventCoordinate

	// Kind is allocate, deallocate or force_deallocate
	Kind string `gorm:"column:kind;not null;type:text"`
	// Identifiers is the JSON array of affected identifier hashes
	Identifiers datatypes.JSON `gorm:"column:identifiers;type:jsonb"`
	// Change is the signed allocation delta (negative for deallocations)
	Change string `gorm:"column:change;not null;default:0;type:numeric(78,0)"`
	// Penalty is the force-deallocation penalty; it never affects allocation state
	Penalty string `gorm:"column:penalty;not null;default:0;type:numeric(78,0)"`
}

// TableName specifies the table name for the AllocationEvent model
func (AllocationEvent) TableName() string {
	return "allocation_events"
}
