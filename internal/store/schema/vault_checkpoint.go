package schema

import (
	"time"

	"gorm.io/datatypes"
)

// VaultCheckpoint represents the vault_checkpoints table - an immutable
// append-only copy of the vault projection taken immediately after applying
// one event. Keyed by the event's unique coordinate; never updated.
// The (chain, vault_address, block_time) index serves "latest checkpoint
// with timestamp <= T" lookups without replaying the ledger.
type VaultCheckpoint struct {
	// ID is the triggering event's unique coordinate
	ID           string `gorm:"column:id;primaryKey;type:text"`
	Chain        string `gorm:"column:chain;not null;type:text;index:idx_vault_checkpoints_vault_time,priority:1"`
	VaultAddress string `gorm:"column:vault_address;not null;type:text;index:idx_vault_checkpoints_vault_time,priority:2"`
	BlockNumber  uint64 `gorm:"column:block_number;not null;type:bigint"`
	BlockTime    time.Time `gorm:"column:block_time;not null;type:timestamptz;index:idx_vault_checkpoints_vault_time,priority:3"`
	TxHash       string `gorm:"column:tx_hash;not null;type:text"`
	TxIndex      uint64 `gorm:"column:tx_index;not null;type:bigint"`
	LogIndex     uint64 `gorm:"column:log_index;not null;type:bigint"`
	// EventKind names the event that triggered the checkpoint
	EventKind string `gorm:"column:event_kind;not null;type:text"`

	// Projected state immediately after the event
	Owner                   string         `gorm:"column:owner;not null;default:'';type:text"`
	Curator                 string         `gorm:"column:curator;not null;default:'';type:text"`
	Name                    string         `gorm:"column:name;not null;default:'';type:text"`
	Symbol                  string         `gorm:"column:symbol;not null;default:'';type:text"`
	PerformanceFee          string         `gorm:"column:performance_fee;not null;default:0;type:numeric(78,0)"`
	ManagementFee           string         `gorm:"column:management_fee;not null;default:0;type:numeric(78,0)"`
	PerformanceFeeRecipient string         `gorm:"column:performance_fee_recipient;not null;default:'';type:text"`
	ManagementFeeRecipient  string         `gorm:"column:management_fee_recipient;not null;default:'';type:text"`
	MaxRate                 string         `gorm:"column:max_rate;not null;default:0;type:numeric(78,0)"`
	SharesGate              string         `gorm:"column:shares_gate;not null;default:'';type:text"`
	ReceiveSharesGate       string         `gorm:"column:receive_shares_gate;not null;default:'';type:text"`
	ReceiveAssetsGate       string         `gorm:"column:receive_assets_gate;not null;default:'';type:text"`
	SendAssetsGate          string         `gorm:"column:send_assets_gate;not null;default:'';type:text"`
	LiquidityAdapter        string         `gorm:"column:liquidity_adapter;not null;default:'';type:text"`
	LiquidityData           string         `gorm:"column:liquidity_data;not null;default:'';type:text"`
	Allocators              datatypes.JSON `gorm:"column:allocators;type:jsonb"`
	Sentinels               datatypes.JSON `gorm:"column:sentinels;type:jsonb"`
	Adapters                datatypes.JSON `gorm:"column:adapters;type:jsonb"`
	TotalAssets             string         `gorm:"column:total_assets;not null;default:0;type:numeric(78,0)"`
	TotalSupply             string         `gorm:"column:total_supply;not null;default:0;type:numeric(78,0)"`
	LastUpdateTime          time.Time      `gorm:"column:last_update_time;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the VaultCheckpoint model
func (VaultCheckpoint) TableName() string {
	return "vault_checkpoints"
}
