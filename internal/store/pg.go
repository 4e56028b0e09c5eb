package store

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// WithinTx runs fn inside a single database transaction
func (s *pgStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// CreateVault inserts a vault projection row if none exists
func (s *pgStore) CreateVault(ctx context.Context, vault *schema.Vault) (bool, error) {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chain"}, {Name: "address"}},
			DoNothing: true,
		}).
		Create(vault)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create vault: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetVault retrieves the current vault projection, nil when absent
func (s *pgStore) GetVault(ctx context.Context, chain domain.Chain, address string) (*schema.Vault, error) {
	var vault schema.Vault

	query := func(db *gorm.DB) error {
		return db.WithContext(ctx).
			Where("chain = ? AND address = ?", chain, address).
			First(&vault).Error
	}

	err := query(s.db)
	if err == nil {
		return &vault, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get vault: %w", err)
	}
	if !hasDBResolver(s.db) {
		return nil, nil
	}

	// Replica can lag behind primary; retry on primary before returning nil.
	err = query(s.db.Clauses(dbresolver.Write))
	if err == nil {
		return &vault, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to get vault: %w", err)
}

// ListVaultAddresses retrieves every known vault address on a chain,
// ordered by address for deterministic output
func (s *pgStore) ListVaultAddresses(ctx context.Context, chain domain.Chain) ([]string, error) {
	var addresses []string
	err := s.db.WithContext(ctx).
		Model(&schema.Vault{}).
		Where("chain = ?", chain).
		Order("address ASC").
		Pluck("address", &addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list vault addresses: %w", err)
	}

	return addresses, nil
}

// SetVaultFields replaces the given projection columns
func (s *pgStore) SetVaultFields(ctx context.Context, chain domain.Chain, address string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).
		Model(&schema.Vault{}).
		Where("chain = ? AND address = ?", chain, address).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update vault fields: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrVaultNotFound
	}

	return nil
}

// SetVaultTotalAssets replaces total_assets and stamps last_update_time
func (s *pgStore) SetVaultTotalAssets(ctx context.Context, chain domain.Chain, address string, totalAssets string, lastUpdate time.Time) error {
	return s.SetVaultFields(ctx, chain, address, map[string]interface{}{
		"total_assets":     totalAssets,
		"last_update_time": lastUpdate,
	})
}

// AdjustVaultTotals applies signed deltas to total_assets and total_supply in SQL
func (s *pgStore) AdjustVaultTotals(ctx context.Context, chain domain.Chain, address string, assetsDelta, supplyDelta *big.Int) error {
	updates := make(map[string]interface{})
	if assetsDelta != nil && assetsDelta.Sign() != 0 {
		updates["total_assets"] = gorm.Expr("total_assets + CAST(? AS numeric)", assetsDelta.String())
	}
	if supplyDelta != nil && supplyDelta.Sign() != 0 {
		updates["total_supply"] = gorm.Expr("total_supply + CAST(? AS numeric)", supplyDelta.String())
	}
	if len(updates) == 0 {
		return nil
	}

	return s.SetVaultFields(ctx, chain, address, updates)
}

// ToggleVaultRole adds or removes an account from a vault role set.
// Read-modify-write on the projection row; processing is strictly sequential
// per chain so no concurrent writer can interleave.
func (s *pgStore) ToggleVaultRole(ctx context.Context, chain domain.Chain, address string, role domain.Role, account string, enabled bool) error {
	db := s.db
	if hasDBResolver(db) {
		// The set is re-written from what we just read; never read a stale replica.
		db = db.Clauses(dbresolver.Write)
	}

	var vault schema.Vault
	err := db.WithContext(ctx).
		Where("chain = ? AND address = ?", chain, address).
		First(&vault).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrVaultNotFound
		}
		return fmt.Errorf("failed to get vault for role toggle: %w", err)
	}

	members, err := vault.RoleSet(role)
	if err != nil {
		return err
	}

	updated := make([]string, 0, len(members)+1)
	found := false
	for _, member := range members {
		if member == account {
			found = true
			if !enabled {
				continue
			}
		}
		updated = append(updated, member)
	}
	if enabled && !found {
		updated = append(updated, account)
	}

	// No membership change; skip the write
	if found == enabled {
		return nil
	}

	encoded, err := schema.EncodeRoleSet(updated)
	if err != nil {
		return err
	}
	column, err := schema.RoleColumn(role)
	if err != nil {
		return err
	}

	return s.SetVaultFields(ctx, chain, address, map[string]interface{}{column: encoded})
}

// createIgnoringCoordinateConflict inserts a ledger row keyed by the event
// coordinate; a conflict on id means the event was already applied.
func createIgnoringCoordinateConflict(ctx context.Context, db *gorm.DB, record interface{}) (bool, error) {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// InsertVaultCreatedEvent appends a vault creation event to the ledger
func (s *pgStore) InsertVaultCreatedEvent(ctx context.Context, event *schema.VaultCreatedEvent) (bool, error) {
	inserted, err := createIgnoringCoordinateConflict(ctx, s.db, event)
	if err != nil {
		return false, fmt.Errorf("failed to insert vault created event: %w", err)
	}
	return inserted, nil
}

// InsertVaultConfigEvent appends a configuration change event to the ledger
func (s *pgStore) InsertVaultConfigEvent(ctx context.Context, event *schema.VaultConfigEvent) (bool, error) {
	inserted, err := createIgnoringCoordinateConflict(ctx, s.db, event)
	if err != nil {
		return false, fmt.Errorf("failed to insert vault config event: %w", err)
	}
	return inserted, nil
}

// InsertVaultRoleEvent appends a role toggle event to the ledger
func (s *pgStore) InsertVaultRoleEvent(ctx context.Context, event *schema.VaultRoleEvent) (bool, error) {
	inserted, err := createIgnoringCoordinateConflict(ctx, s.db, event)
	if err != nil {
		return false, fmt.Errorf("failed to insert vault role event: %w", err)
	}
	return inserted, nil
}

// InsertAccrueInterestEvent appends an interest accrual event to the ledger
func (s *pgStore) InsertAccrueInterestEvent(ctx context.Context, event *schema.AccrueInterestEvent) (bool, error) {
	inserted, err := createIgnoringCoordinateConflict(ctx, s.db, event)
	if err != nil {
		return false, fmt.Errorf("failed to insert accrue interest event: %w", err)
	}
	return inserted, nil
}

// InsertDepositEvent appends a deposit event to the ledger
func (s *pgStore) InsertDepositEvent(ctx context.Context, event *schema.DepositEvent) (bool, error) {
	inserted, err := createIgnoringCoordinateConflict(ctx, s.db, event)
	if err != nil {
		return false, fmt.Errorf("failed to insert deposit event: %w", err)
	}
	return inserted, nil
}

// InsertWithdrawEvent appends a withdraw event to the ledger
func (s *pgStore) InsertWithdrawEvent(ctx context.Context, event *schema.WithdrawEvent) (bool, error) {
	inserted, err := createIgnoringCoordinateConflict(ctx, s.db, event)
	if err != nil {
		return false, fmt.Errorf("failed to insert withdraw event: %w", err)
	}
	return inserted, nil
}

// InsertTransferEvent appends a share transfer event to the ledger
func (s *pgStore) InsertTransferEvent(ctx context.Context, event *schema.TransferEvent) (bool, error) {
	inserted, err := createIgnoringCoordinateConflict(ctx, s.db, event)
	if err != nil {
		return false, fmt.Errorf("failed to insert transfer event: %w", err)
	}
	return inserted, nil
}

// InsertCapEvent appends a cap change event to the ledger
func (s *pgStore) InsertCapEvent(ctx context.Context, event *schema.CapEvent) (bool, error) {
	inserted, err := createIgnoringCoordinateConflict(ctx, s.db, event)
	if err != nil {
		return false, fmt.Errorf("failed to insert cap event: %w", err)
	}
	return inserted, nil
}

// InsertAllocationEvent appends an allocation change event to the ledger
func (s *pgStore) InsertAllocationEvent(ctx context.Context, event *schema.AllocationEvent) (bool, error) {
	inserted, err := createIgnoringCoordinateConflict(ctx, s.db, event)
	if err != nil {
		return false, fmt.Errorf("failed to insert allocation event: %w", err)
	}
	return inserted, nil
}

// GetIdentifierState retrieves one identifier's state, nil when absent
func (s *pgStore) GetIdentifierState(ctx context.Context, chain domain.Chain, vaultAddress, identifierID string) (*schema.IdentifierState, error) {
	var state schema.IdentifierState
	err := s.db.WithContext(ctx).
		Where("chain = ? AND vault_address = ? AND identifier_id = ?", chain, vaultAddress, identifierID).
		First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get identifier state: %w", err)
	}

	return &state, nil
}

// ListIdentifierStates retrieves all identifier states for a vault,
// ordered by identifier for deterministic output
func (s *pgStore) ListIdentifierStates(ctx context.Context, chain domain.Chain, vaultAddress string) ([]schema.IdentifierState, error) {
	var states []schema.IdentifierState
	err := s.db.WithContext(ctx).
		Where("chain = ? AND vault_address = ?", chain, vaultAddress).
		Order("identifier_id ASC").
		Find(&states).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list identifier states: %w", err)
	}

	return states, nil
}

// SetIdentifierCap upserts one cap column for an identifier
func (s *pgStore) SetIdentifierCap(ctx context.Context, chain domain.Chain, vaultAddress, identifierID, capColumn, value string) error {
	state := schema.IdentifierState{
		Chain:        string(chain),
		VaultAddress: vaultAddress,
		IdentifierID: identifierID,
		AbsoluteCap:  "0",
		RelativeCap:  "0",
		Allocation:   "0",
	}

	switch capColumn {
	case "absolute_cap":
		state.AbsoluteCap = value
	case "relative_cap":
		state.RelativeCap = value
	default:
		return fmt.Errorf("unknown cap column: %s", capColumn)
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chain"}, {Name: "vault_address"}, {Name: "identifier_id"}},
			DoUpdates: clause.AssignmentColumns([]string{capColumn, "updated_at"}),
		}).
		Create(&state).Error
	if err != nil {
		return fmt.Errorf("failed to set identifier cap: %w", err)
	}

	return nil
}

// AddIdentifierAllocation applies a signed delta to an identifier's allocation
func (s *pgStore) AddIdentifierAllocation(ctx context.Context, chain domain.Chain, vaultAddress, identifierID string, delta *big.Int) error {
	if delta == nil || delta.Sign() == 0 {
		return nil
	}

	state := schema.IdentifierState{
		Chain:        string(chain),
		VaultAddress: vaultAddress,
		IdentifierID: identifierID,
		AbsoluteCap:  "0",
		RelativeCap:  "0",
		Allocation:   delta.String(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "chain"}, {Name: "vault_address"}, {Name: "identifier_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"allocation": gorm.Expr("vault_identifier_states.allocation + EXCLUDED.allocation"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(&state).Error
	if err != nil {
		return fmt.Errorf("failed to add identifier allocation: %w", err)
	}

	return nil
}

// InsertVaultCheckpoint appends a vault checkpoint. Checkpoint content is a
// pure function of the ledger, so a coordinate conflict is ignored.
func (s *pgStore) InsertVaultCheckpoint(ctx context.Context, checkpoint *schema.VaultCheckpoint) error {
	if _, err := createIgnoringCoordinateConflict(ctx, s.db, checkpoint); err != nil {
		return fmt.Errorf("failed to insert vault checkpoint: %w", err)
	}
	return nil
}

// InsertIdentifierCheckpoint appends an identifier checkpoint
func (s *pgStore) InsertIdentifierCheckpoint(ctx context.Context, checkpoint *schema.IdentifierCheckpoint) error {
	if _, err := createIgnoringCoordinateConflict(ctx, s.db, checkpoint); err != nil {
		return fmt.Errorf("failed to insert identifier checkpoint: %w", err)
	}
	return nil
}

// InsertVaultSnapshot appends a vault snapshot
func (s *pgStore) InsertVaultSnapshot(ctx context.Context, snapshot *schema.VaultSnapshot) error {
	if _, err := createIgnoringCoordinateConflict(ctx, s.db, snapshot); err != nil {
		return fmt.Errorf("failed to insert vault snapshot: %w", err)
	}
	return nil
}

// GetVaultCheckpointAt retrieves the latest checkpoint at or before the given instant
func (s *pgStore) GetVaultCheckpointAt(ctx context.Context, chain domain.Chain, vaultAddress string, at time.Time) (*schema.VaultCheckpoint, error) {
	var checkpoint schema.VaultCheckpoint
	err := s.db.WithContext(ctx).
		Where("chain = ? AND vault_address = ? AND block_time <= ?", chain, vaultAddress, at).
		Order("block_time DESC, block_number DESC, tx_index DESC, log_index DESC").
		First(&checkpoint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vault checkpoint: %w", err)
	}

	return &checkpoint, nil
}

// GetIdentifierCheckpointAt retrieves the latest identifier checkpoint at or
// before the given instant
func (s *pgStore) GetIdentifierCheckpointAt(ctx context.Context, chain domain.Chain, vaultAddress, identifierID string, at time.Time) (*schema.IdentifierCheckpoint, error) {
	var checkpoint schema.IdentifierCheckpoint
	err := s.db.WithContext(ctx).
		Where("chain = ? AND vault_address = ? AND identifier_id = ? AND block_time <= ?", chain, vaultAddress, identifierID, at).
		Order("block_time DESC, block_number DESC, tx_index DESC, log_index DESC").
		First(&checkpoint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get identifier checkpoint: %w", err)
	}

	return &checkpoint, nil
}

// GetVaultSnapshotAt retrieves the latest snapshot at or before the given instant
func (s *pgStore) GetVaultSnapshotAt(ctx context.Context, chain domain.Chain, vaultAddress string, at time.Time) (*schema.VaultSnapshot, error) {
	var snapshot schema.VaultSnapshot
	err := s.db.WithContext(ctx).
		Where("chain = ? AND vault_address = ? AND block_time <= ?", chain, vaultAddress, at).
		Order("block_time DESC, block_number DESC, tx_index DESC, log_index DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vault snapshot: %w", err)
	}

	return &snapshot, nil
}

// GetDepositor retrieves a depositor row, nil when absent
func (s *pgStore) GetDepositor(ctx context.Context, chain domain.Chain, vaultAddress, account string) (*schema.VaultDepositor, error) {
	var depositor schema.VaultDepositor
	err := s.db.WithContext(ctx).
		Where("chain = ? AND vault_address = ? AND account = ?", chain, vaultAddress, account).
		First(&depositor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get depositor: %w", err)
	}

	return &depositor, nil
}

func newDepositorRow(touch DepositorTouch) schema.VaultDepositor {
	return schema.VaultDepositor{
		Chain:            string(touch.Chain),
		VaultAddress:     touch.VaultAddress,
		Account:          touch.Account,
		Balance:          "0",
		DepositedAssets:  "0",
		DepositedShares:  "0",
		WithdrawnAssets:  "0",
		WithdrawnShares:  "0",
		FirstSeenBlock:   touch.BlockNumber,
		FirstSeenTime:    touch.BlockTime,
		FirstSeenTxHash:  touch.TxHash,
		LastSeenBlock:    touch.BlockNumber,
		LastSeenTime:     touch.BlockTime,
		LastSeenTxHash:   touch.TxHash,
	}
}

// lastSeenAssignments are the upsert assignments shared by every depositor
// touch: last-seen metadata moves, first-seen stays
func lastSeenAssignments() map[string]interface{} {
	return map[string]interface{}{
		"last_seen_block":   gorm.Expr("EXCLUDED.last_seen_block"),
		"last_seen_time":    gorm.Expr("EXCLUDED.last_seen_time"),
		"last_seen_tx_hash": gorm.Expr("EXCLUDED.last_seen_tx_hash"),
		"updated_at":        gorm.Expr("now()"),
	}
}

var depositorConflictColumns = []clause.Column{
	{Name: "chain"}, {Name: "vault_address"}, {Name: "account"},
}

// ApplyDepositorDeposit increments the deposit count and cumulative accumulators
func (s *pgStore) ApplyDepositorDeposit(ctx context.Context, touch DepositorTouch, assets, shares *big.Int) error {
	depositor := newDepositorRow(touch)
	depositor.DepositCount = 1
	depositor.DepositedAssets = assets.String()
	depositor.DepositedShares = shares.String()

	assignments := lastSeenAssignments()
	assignments["deposit_count"] = gorm.Expr("vault_depositors.deposit_count + 1")
	assignments["deposited_assets"] = gorm.Expr("vault_depositors.deposited_assets + EXCLUDED.deposited_assets")
	assignments["deposited_shares"] = gorm.Expr("vault_depositors.deposited_shares + EXCLUDED.deposited_shares")

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   depositorConflictColumns,
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&depositor).Error
	if err != nil {
		return fmt.Errorf("failed to apply depositor deposit: %w", err)
	}

	return nil
}

// ApplyDepositorWithdraw increments the withdraw count and cumulative accumulators
func (s *pgStore) ApplyDepositorWithdraw(ctx context.Context, touch DepositorTouch, assets, shares *big.Int) error {
	depositor := newDepositorRow(touch)
	depositor.WithdrawCount = 1
	depositor.WithdrawnAssets = assets.String()
	depositor.WithdrawnShares = shares.String()

	assignments := lastSeenAssignments()
	assignments["withdraw_count"] = gorm.Expr("vault_depositors.withdraw_count + 1")
	assignments["withdrawn_assets"] = gorm.Expr("vault_depositors.withdrawn_assets + EXCLUDED.withdrawn_assets")
	assignments["withdrawn_shares"] = gorm.Expr("vault_depositors.withdrawn_shares + EXCLUDED.withdrawn_shares")

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   depositorConflictColumns,
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&depositor).Error
	if err != nil {
		return fmt.Errorf("failed to apply depositor withdraw: %w", err)
	}

	return nil
}

// AdjustDepositorBalance applies a signed share delta to an account's balance
func (s *pgStore) AdjustDepositorBalance(ctx context.Context, touch DepositorTouch, delta *big.Int) error {
	if delta == nil || delta.Sign() == 0 {
		return nil
	}

	depositor := newDepositorRow(touch)
	depositor.Balance = delta.String()

	assignments := lastSeenAssignments()
	assignments["balance"] = gorm.Expr("vault_depositors.balance + EXCLUDED.balance")

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   depositorConflictColumns,
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&depositor).Error
	if err != nil {
		return fmt.Errorf("failed to adjust depositor balance: %w", err)
	}

	return nil
}

// GetBlockCursor retrieves the last processed block number for a chain
func (s *pgStore) GetBlockCursor(ctx context.Context, chain string) (uint64, error) {
	key := fmt.Sprintf("block_cursor:%s", chain)

	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}

	blockNumber, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}

	return blockNumber, nil
}

// SetBlockCursor stores the last processed block number for a chain
func (s *pgStore) SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error {
	key := fmt.Sprintf("block_cursor:%s", chain)
	value := strconv.FormatUint(blockNumber, 10)

	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set block cursor: %w", err)
	}

	return nil
}
