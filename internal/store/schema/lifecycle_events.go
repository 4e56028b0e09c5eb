package schema

// VaultCreatedEvent represents the vault_created_events table - one row per
// observed vault constructor event
type VaultCreatedEvent struct {
	EventCoordinate

	// Asset is the underlying asset contract address
	Asset string `gorm:"column:asset;not null;type:text"`
	// Owner is the initial vault owner
	Owner string `gorm:"column:owner;not null;type:text"`
}

// TableName specifies the table name for the VaultCreatedEvent model
func (VaultCreatedEvent) TableName() string {
	return "vault_created_events"
}

// VaultConfigEvent represents the vault_config_events table - one row per
// single-field configuration change (owner, curator, name, symbol, fees,
// fee recipients, max rate, gates, liquidity adapter)
type VaultConfigEvent struct {
	EventCoordinate

	// Field is the event kind naming the replaced field (e.g. "set_owner")
	Field string `gorm:"column:field;not null;type:text"`
	// Value is the new value: an address, a string, or a decimal rate
	Value string `gorm:"column:value;not null;default:'';type:text"`
	// Data carries the opaque payload of liquidity-adapter changes, hex encoded
	Data string `gorm:"column:data;not null;default:'';type:text"`
}

// TableName specifies the table name for the VaultConfigEvent model
func (VaultConfigEvent) TableName() string {
	return "vault_config_events"
}

// VaultRoleEvent represents the vault_role_events table - one row per role
// membership toggle (allocator, sentinel, adapter)
type VaultRoleEvent struct {
	EventCoordinate

	// Role is the role set being toggled
	Role string `gorm:"column:role;not null;type:text"`
	// Account is the address added to or removed from the set
	Account string `gorm:"column:account;not null;type:text"`
	// Enabled is true for add, false for remove
	Enabled bool `gorm:"column:enabled;not null"`
}

// TableName specifies the table name for the VaultRoleEvent model
func (VaultRoleEvent) TableName() string {
	return "vault_role_events"
}
