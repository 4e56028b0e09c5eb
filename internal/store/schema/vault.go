package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/openyield/vault-indexer/internal/domain"
)

// Vault represents the vaults table - the current-state projection with one
// mutable row per (chain, address). It is the source of truth consulted by
// every other component; accounting fields are only mutated by the closed set
// of accounting event kinds.
type Vault struct {
	// Chain identifies the blockchain network (CAIP-2, e.g. "eip155:1")
	Chain string `gorm:"column:chain;primaryKey;type:text"`
	// Address is the vault contract address, lowercase hex
	Address string `gorm:"column:address;primaryKey;type:text"`

	// Asset is the underlying asset contract address
	Asset string `gorm:"column:asset;not null;default:'';type:text"`
	// CreatedBlock is the block of the creation event (0 when backfilled)
	CreatedBlock uint64 `gorm:"column:created_block;not null;default:0;type:bigint"`
	// CreatedTime is the block timestamp of the creation event
	CreatedTime time.Time `gorm:"column:created_time;type:timestamptz"`
	// CreatedTxHash is the transaction that created the vault
	CreatedTxHash string `gorm:"column:created_tx_hash;not null;default:'';type:text"`
	// Backfilled is true when the row was materialized from live chain reads
	// (or the degraded zero fallback) instead of an observed creation event
	Backfilled bool `gorm:"column:backfilled;not null;default:false"`

	Owner   string `gorm:"column:owner;not null;default:'';type:text"`
	Curator string `gorm:"column:curator;not null;default:'';type:text"`
	Name    string `gorm:"column:name;not null;default:'';type:text"`
	Symbol  string `gorm:"column:symbol;not null;default:'';type:text"`

	// PerformanceFee and ManagementFee are WAD-scaled rates
	PerformanceFee          string `gorm:"column:performance_fee;not null;default:0;type:numeric(78,0)"`
	ManagementFee           string `gorm:"column:management_fee;not null;default:0;type:numeric(78,0)"`
	PerformanceFeeRecipient string `gorm:"column:performance_fee_recipient;not null;default:'';type:text"`
	ManagementFeeRecipient  string `gorm:"column:management_fee_recipient;not null;default:'';type:text"`
	MaxRate                 string `gorm:"column:max_rate;not null;default:0;type:numeric(78,0)"`

	// Capability gates
	SharesGate        string `gorm:"column:shares_gate;not null;default:'';type:text"`
	ReceiveSharesGate string `gorm:"column:receive_shares_gate;not null;default:'';type:text"`
	ReceiveAssetsGate string `gorm:"column:receive_assets_gate;not null;default:'';type:text"`
	SendAssetsGate    string `gorm:"column:send_assets_gate;not null;default:'';type:text"`

	// LiquidityAdapter is the current liquidity adapter reference with its
	// opaque call data (hex encoded)
	LiquidityAdapter string `gorm:"column:liquidity_adapter;not null;default:'';type:text"`
	LiquidityData    string `gorm:"column:liquidity_data;not null;default:'';type:text"`

	// Role sets, stored as deduplicated JSON arrays of addresses
	Allocators datatypes.JSON `gorm:"column:allocators;type:jsonb"`
	Sentinels  datatypes.JSON `gorm:"column:sentinels;type:jsonb"`
	Adapters   datatypes.JSON `gorm:"column:adapters;type:jsonb"`

	// Accounting state (decimal strings, numeric(78,0))
	TotalAssets string `gorm:"column:total_assets;not null;default:0;type:numeric(78,0)"`
	TotalSupply string `gorm:"column:total_supply;not null;default:0;type:numeric(78,0)"`
	// LastUpdateTime is the block time of the last interest accrual
	LastUpdateTime time.Time `gorm:"column:last_update_time;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Vault model
func (Vault) TableName() string {
	return "vaults"
}

// RoleSet decodes the JSON role set for the given role
func (v *Vault) RoleSet(role domain.Role) ([]string, error) {
	var raw datatypes.JSON
	switch role {
	case domain.RoleAllocator:
		raw = v.Allocators
	case domain.RoleSentinel:
		raw = v.Sentinels
	case domain.RoleAdapter:
		raw = v.Adapters
	default:
		return nil, fmt.Errorf("unknown role: %s", role)
	}

	if len(raw) == 0 {
		return []string{}, nil
	}

	var members []string
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, fmt.Errorf("failed to decode %s role set: %w", role, err)
	}
	return members, nil
}

// EncodeRoleSet encodes a role set for storage
func EncodeRoleSet(members []string) (datatypes.JSON, error) {
	if members == nil {
		members = []string{}
	}
	data, err := json.Marshal(members)
	if err != nil {
		return nil, fmt.Errorf("failed to encode role set: %w", err)
	}
	return datatypes.JSON(data), nil
}

// RoleColumn maps a role to the vaults column holding its set
func RoleColumn(role domain.Role) (string, error) {
	switch role {
	case domain.RoleAllocator:
		return "allocators", nil
	case domain.RoleSentinel:
		return "sentinels", nil
	case domain.RoleAdapter:
		return "adapters", nil
	default:
		return "", fmt.Errorf("unknown role: %s", role)
	}
}
