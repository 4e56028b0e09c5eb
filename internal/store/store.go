package store

import (
	"context"
	"math/big"
	"time"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/store/schema"
)

// DepositorTouch carries the event coordinate metadata stamped onto a
// depositor row on every mutation. First-seen fields are only written when
// the row is inserted; last-seen fields are written on every touch.
type DepositorTouch struct {
	Chain        domain.Chain
	VaultAddress string
	Account      string
	BlockNumber  uint64
	BlockTime    time.Time
	TxHash       string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// WithinTx runs fn inside a single database transaction. Every store
	// call made through the Store passed to fn joins that transaction.
	WithinTx(ctx context.Context, fn func(tx Store) error) error

	// CreateVault inserts a vault projection row if none exists for its
	// (chain, address). Returns false when the row already existed.
	CreateVault(ctx context.Context, vault *schema.Vault) (bool, error)
	// GetVault retrieves the current vault projection, nil when absent
	GetVault(ctx context.Context, chain domain.Chain, address string) (*schema.Vault, error)
	// ListVaultAddresses retrieves every known vault address on a chain.
	// Used to seed the emitter's tracked vault set on startup.
	ListVaultAddresses(ctx context.Context, chain domain.Chain) ([]string, error)
	// SetVaultFields replaces the given projection columns
	SetVaultFields(ctx context.Context, chain domain.Chain, address string, updates map[string]interface{}) error
	// SetVaultTotalAssets replaces total_assets and stamps last_update_time
	SetVaultTotalAssets(ctx context.Context, chain domain.Chain, address string, totalAssets string, lastUpdate time.Time) error
	// AdjustVaultTotals applies signed deltas to total_assets and total_supply
	// in SQL. A nil delta leaves the column untouched.
	AdjustVaultTotals(ctx context.Context, chain domain.Chain, address string, assetsDelta, supplyDelta *big.Int) error
	// ToggleVaultRole adds or removes an account from a vault role set.
	// Idempotent: re-adding a member or removing a non-member is a no-op.
	ToggleVaultRole(ctx context.Context, chain domain.Chain, address string, role domain.Role, account string, enabled bool) error

	// Ledger inserts. Each returns false when a row with the same event
	// coordinate already exists, identifying a re-delivered event.
	InsertVaultCreatedEvent(ctx context.Context, event *schema.VaultCreatedEvent) (bool, error)
	InsertVaultConfigEvent(ctx context.Context, event *schema.VaultConfigEvent) (bool, error)
	InsertVaultRoleEvent(ctx context.Context, event *schema.VaultRoleEvent) (bool, error)
	InsertAccrueInterestEvent(ctx context.Context, event *schema.AccrueInterestEvent) (bool, error)
	InsertDepositEvent(ctx context.Context, event *schema.DepositEvent) (bool, error)
	InsertWithdrawEvent(ctx context.Context, event *schema.WithdrawEvent) (bool, error)
	InsertTransferEvent(ctx context.Context, event *schema.TransferEvent) (bool, error)
	InsertCapEvent(ctx context.Context, event *schema.CapEvent) (bool, error)
	InsertAllocationEvent(ctx context.Context, event *schema.AllocationEvent) (bool, error)

	// GetIdentifierState retrieves one identifier's state, nil when absent
	// (absent is semantically all-zero)
	GetIdentifierState(ctx context.Context, chain domain.Chain, vaultAddress, identifierID string) (*schema.IdentifierState, error)
	// ListIdentifierStates retrieves all identifier states for a vault
	ListIdentifierStates(ctx context.Context, chain domain.Chain, vaultAddress string) ([]schema.IdentifierState, error)
	// SetIdentifierCap upserts one cap column ("absolute_cap" or
	// "relative_cap") for an identifier, creating the row when absent
	SetIdentifierCap(ctx context.Context, chain domain.Chain, vaultAddress, identifierID, capColumn, value string) error
	// AddIdentifierAllocation applies a signed delta to an identifier's
	// allocation, creating the row when absent
	AddIdentifierAllocation(ctx context.Context, chain domain.Chain, vaultAddress, identifierID string, delta *big.Int) error

	// Checkpoint and snapshot appends. Insert-only; a coordinate conflict
	// is ignored since checkpoint content is a pure function of the ledger.
	InsertVaultCheckpoint(ctx context.Context, checkpoint *schema.VaultCheckpoint) error
	InsertIdentifierCheckpoint(ctx context.Context, checkpoint *schema.IdentifierCheckpoint) error
	InsertVaultSnapshot(ctx context.Context, snapshot *schema.VaultSnapshot) error

	// GetVaultCheckpointAt retrieves the latest checkpoint with block time
	// at or before the given instant, nil when none exists
	GetVaultCheckpointAt(ctx context.Context, chain domain.Chain, vaultAddress string, at time.Time) (*schema.VaultCheckpoint, error)
	// GetIdentifierCheckpointAt is the identifier-scoped equivalent
	GetIdentifierCheckpointAt(ctx context.Context, chain domain.Chain, vaultAddress, identifierID string, at time.Time) (*schema.IdentifierCheckpoint, error)
	// GetVaultSnapshotAt retrieves the latest snapshot with block time at or
	// before the given instant, nil when none exists
	GetVaultSnapshotAt(ctx context.Context, chain domain.Chain, vaultAddress string, at time.Time) (*schema.VaultSnapshot, error)

	// GetDepositor retrieves a depositor row, nil when absent
	GetDepositor(ctx context.Context, chain domain.Chain, vaultAddress, account string) (*schema.VaultDepositor, error)
	// ApplyDepositorDeposit increments the deposit count and cumulative
	// deposit accumulators for the credited owner. The share balance itself
	// moves only through AdjustDepositorBalance, driven by transfer events.
	ApplyDepositorDeposit(ctx context.Context, touch DepositorTouch, assets, shares *big.Int) error
	// ApplyDepositorWithdraw increments the withdraw count and cumulative
	// withdraw accumulators for the debited owner
	ApplyDepositorWithdraw(ctx context.Context, touch DepositorTouch, assets, shares *big.Int) error
	// AdjustDepositorBalance applies a signed share delta to an account's
	// balance without touching the cumulative accumulators. Used for
	// transfer events, including the mint and burn legs
	AdjustDepositorBalance(ctx context.Context, touch DepositorTouch, delta *big.Int) error

	// GetBlockCursor retrieves the last processed block number for a chain
	GetBlockCursor(ctx context.Context, chain string) (uint64, error)
	// SetBlockCursor stores the last processed block number for a chain
	SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error
}
