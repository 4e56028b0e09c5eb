package schema

import (
	"time"

	"gorm.io/datatypes"
)

// VaultSnapshot represents the vault_snapshots table - one denormalized
// append-only row per state-relevant event containing the entire vault state
// plus the aggregated per-identifier maps. Fields that did not change since
// the previous snapshot are carried forward, so every row is independently
// queryable without joins or replay.
type VaultSnapshot struct {
	// ID is the triggering event's unique coordinate
	ID           string    `gorm:"column:id;primaryKey;type:text"`
	Chain        string    `gorm:"column:chain;not null;type:text;index:idx_vault_snapshots_vault_time,priority:1"`
	VaultAddress string    `gorm:"column:vault_address;not null;type:text;index:idx_vault_snapshots_vault_time,priority:2"`
	BlockNumber  uint64    `gorm:"column:block_number;not null;type:bigint"`
	BlockTime    time.Time `gorm:"column:block_time;not null;type:timestamptz;index:idx_vault_snapshots_vault_time,priority:3"`
	TxHash       string    `gorm:"column:tx_hash;not null;type:text"`
	TxIndex      uint64    `gorm:"column:tx_index;not null;type:bigint"`
	LogIndex     uint64    `gorm:"column:log_index;not null;type:bigint"`
	EventKind    string    `gorm:"column:event_kind;not null;type:text"`

	TotalAssets string `gorm:"column:total_assets;not null;default:0;type:numeric(78,0)"`
	TotalSupply string `gorm:"column:total_supply;not null;default:0;type:numeric(78,0)"`
	// SharePrice is the raw WAD-scaled assets/supply ratio (WAD when supply is zero)
	SharePrice string `gorm:"column:share_price;not null;default:0;type:numeric(78,0)"`
	// CanonicalSharePrice is the vault's own convertToAssets(WAD) at the event
	// block; equals SharePrice when the external read failed
	CanonicalSharePrice string `gorm:"column:canonical_share_price;not null;default:0;type:numeric(78,0)"`
	// PriceFallback is true when CanonicalSharePrice fell back to SharePrice
	PriceFallback bool `gorm:"column:price_fallback;not null;default:false"`

	// Per-identifier maps: identifier hash -> decimal string, canonical JSON
	Allocations  datatypes.JSON `gorm:"column:allocations;type:jsonb"`
	AbsoluteCaps datatypes.JSON `gorm:"column:absolute_caps;type:jsonb"`
	RelativeCaps datatypes.JSON `gorm:"column:relative_caps;type:jsonb"`

	// Role-set snapshots
	Allocators datatypes.JSON `gorm:"column:allocators;type:jsonb"`
	Sentinels  datatypes.JSON `gorm:"column:sentinels;type:jsonb"`
	Adapters   datatypes.JSON `gorm:"column:adapters;type:jsonb"`

	Owner                   string `gorm:"column:owner;not null;default:'';type:text"`
	Curator                 string `gorm:"column:curator;not null;default:'';type:text"`
	Name                    string `gorm:"column:name;not null;default:'';type:text"`
	Symbol                  string `gorm:"column:symbol;not null;default:'';type:text"`
	PerformanceFee          string `gorm:"column:performance_fee;not null;default:0;type:numeric(78,0)"`
	ManagementFee           string `gorm:"column:management_fee;not null;default:0;type:numeric(78,0)"`
	PerformanceFeeRecipient string `gorm:"column:performance_fee_recipient;not null;default:'';type:text"`
	ManagementFeeRecipient  string `gorm:"column:management_fee_recipient;not null;default:'';type:text"`
	MaxRate                 string `gorm:"column:max_rate;not null;default:0;type:numeric(78,0)"`
	SharesGate              string `gorm:"column:shares_gate;not null;default:'';type:text"`
	ReceiveSharesGate       string `gorm:"column:receive_shares_gate;not null;default:'';type:text"`
	ReceiveAssetsGate       string `gorm:"column:receive_assets_gate;not null;default:'';type:text"`
	SendAssetsGate          string `gorm:"column:send_assets_gate;not null;default:'';type:text"`
	LiquidityAdapter        string `gorm:"column:liquidity_adapter;not null;default:'';type:text"`
	LiquidityData           string `gorm:"column:liquidity_data;not null;default:'';type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the VaultSnapshot model
func (VaultSnapshot) TableName() string {
	return "vault_snapshots"
}
