package schema

import "time"

// VaultDepositor represents the vault_depositors table - per-account share
// balance plus cumulative lifetime deposit/withdraw accumulators. The
// cumulative columns are monotonic and never decremented; the balance is
// kept in sync with transfer events.
type VaultDepositor struct {
	Chain        string `gorm:"column:chain;primaryKey;type:text"`
	VaultAddress string `gorm:"column:vault_address;primaryKey;type:text"`
	Account      string `gorm:"column:account;primaryKey;type:text"`

	// Balance is the current share balance
	Balance string `gorm:"column:balance;not null;default:0;type:numeric(78,0)"`

	DepositCount  uint64 `gorm:"column:deposit_count;not null;default:0;type:bigint"`
	WithdrawCount uint64 `gorm:"column:withdraw_count;not null;default:0;type:bigint"`

	DepositedAssets  string `gorm:"column:deposited_assets;not null;default:0;type:numeric(78,0)"`
	DepositedShares  string `gorm:"column:deposited_shares;not null;default:0;type:numeric(78,0)"`
	WithdrawnAssets  string `gorm:"column:withdrawn_assets;not null;default:0;type:numeric(78,0)"`
	WithdrawnShares  string `gorm:"column:withdrawn_shares;not null;default:0;type:numeric(78,0)"`

	// First-seen metadata is set only on insert; last-seen on every touch
	FirstSeenBlock  uint64    `gorm:"column:first_seen_block;not null;default:0;type:bigint"`
	FirstSeenTime   time.Time `gorm:"column:first_seen_time;type:timestamptz"`
	FirstSeenTxHash string    `gorm:"column:first_seen_tx_hash;not null;default:'';type:text"`
	LastSeenBlock   uint64    `gorm:"column:last_seen_block;not null;default:0;type:bigint"`
	LastSeenTime    time.Time `gorm:"column:last_seen_time;type:timestamptz"`
	LastSeenTxHash  string    `gorm:"column:last_seen_tx_hash;not null;default:'';type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the VaultDepositor model
func (VaultDepositor) TableName() string {
	return "vault_depositors"
}
