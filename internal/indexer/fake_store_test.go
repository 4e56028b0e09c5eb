package indexer_test

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"time"

	"gorm.io/datatypes"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/store"
	"github.com/openyield/vault-indexer/internal/store/schema"
)

// fakeStore is an in-memory Store used to drive full event scenarios
// without a database. Semantics mirror the postgres implementation:
// conflict-ignoring inserts, additive numeric updates, idempotent role
// toggles.
type fakeStore struct {
	vaults                map[string]*schema.Vault
	ledger                map[string]bool
	identifiers           map[string]*schema.IdentifierState
	vaultCheckpoints      []schema.VaultCheckpoint
	identifierCheckpoints []schema.IdentifierCheckpoint
	snapshots             []schema.VaultSnapshot
	depositors            map[string]*schema.VaultDepositor
	cursors               map[string]uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		vaults:      make(map[string]*schema.Vault),
		ledger:      make(map[string]bool),
		identifiers: make(map[string]*schema.IdentifierState),
		depositors:  make(map[string]*schema.VaultDepositor),
		cursors:     make(map[string]uint64),
	}
}

func vaultKey(chain domain.Chain, address string) string {
	return string(chain) + "|" + address
}

func identifierKey(chain domain.Chain, vaultAddress, identifierID string) string {
	return string(chain) + "|" + vaultAddress + "|" + identifierID
}

func (f *fakeStore) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(f)
}

func (f *fakeStore) CreateVault(ctx context.Context, vault *schema.Vault) (bool, error) {
	key := vaultKey(domain.Chain(vault.Chain), vault.Address)
	if _, ok := f.vaults[key]; ok {
		return false, nil
	}
	copied := *vault
	f.vaults[key] = &copied
	return true, nil
}

func (f *fakeStore) GetVault(ctx context.Context, chain domain.Chain, address string) (*schema.Vault, error) {
	vault, ok := f.vaults[vaultKey(chain, address)]
	if !ok {
		return nil, nil
	}
	copied := *vault
	return &copied, nil
}

func (f *fakeStore) ListVaultAddresses(ctx context.Context, chain domain.Chain) ([]string, error) {
	var addresses []string
	for _, vault := range f.vaults {
		if vault.Chain == string(chain) {
			addresses = append(addresses, vault.Address)
		}
	}
	sort.Strings(addresses)
	return addresses, nil
}

func (f *fakeStore) SetVaultFields(ctx context.Context, chain domain.Chain, address string, updates map[string]interface{}) error {
	vault, ok := f.vaults[vaultKey(chain, address)]
	if !ok {
		return domain.ErrVaultNotFound
	}
	for column, value := range updates {
		if err := setVaultColumn(vault, column, value); err != nil {
			return err
		}
	}
	return nil
}

//nolint:gocyclo
func setVaultColumn(vault *schema.Vault, column string, value interface{}) error {
	switch column {
	case "asset":
		vault.Asset = value.(string)
	case "created_block":
		vault.CreatedBlock = value.(uint64)
	case "created_time":
		vault.CreatedTime = value.(time.Time)
	case "created_tx_hash":
		vault.CreatedTxHash = value.(string)
	case "backfilled":
		vault.Backfilled = value.(bool)
	case "owner":
		vault.Owner = value.(string)
	case "curator":
		vault.Curator = value.(string)
	case "name":
		vault.Name = value.(string)
	case "symbol":
		vault.Symbol = value.(string)
	case "performance_fee":
		vault.PerformanceFee = value.(string)
	case "management_fee":
		vault.ManagementFee = value.(string)
	case "performance_fee_recipient":
		vault.PerformanceFeeRecipient = value.(string)
	case "management_fee_recipient":
		vault.ManagementFeeRecipient = value.(string)
	case "max_rate":
		vault.MaxRate = value.(string)
	case "shares_gate":
		vault.SharesGate = value.(string)
	case "receive_shares_gate":
		vault.ReceiveSharesGate = value.(string)
	case "receive_assets_gate":
		vault.ReceiveAssetsGate = value.(string)
	case "send_assets_gate":
		vault.SendAssetsGate = value.(string)
	case "liquidity_adapter":
		vault.LiquidityAdapter = value.(string)
	case "liquidity_data":
		vault.LiquidityData = value.(string)
	case "allocators":
		vault.Allocators = value.(datatypes.JSON)
	case "sentinels":
		vault.Sentinels = value.(datatypes.JSON)
	case "adapters":
		vault.Adapters = value.(datatypes.JSON)
	default:
		return fmt.Errorf("fake store: unknown vault column %q", column)
	}
	return nil
}

func (f *fakeStore) SetVaultTotalAssets(ctx context.Context, chain domain.Chain, address string, totalAssets string, lastUpdate time.Time) error {
	vault, ok := f.vaults[vaultKey(chain, address)]
	if !ok {
		return domain.ErrVaultNotFound
	}
	vault.TotalAssets = totalAssets
	vault.LastUpdateTime = lastUpdate
	return nil
}

func (f *fakeStore) AdjustVaultTotals(ctx context.Context, chain domain.Chain, address string, assetsDelta, supplyDelta *big.Int) error {
	vault, ok := f.vaults[vaultKey(chain, address)]
	if !ok {
		return domain.ErrVaultNotFound
	}
	if assetsDelta != nil {
		vault.TotalAssets = addDecimal(vault.TotalAssets, assetsDelta)
	}
	if supplyDelta != nil {
		vault.TotalSupply = addDecimal(vault.TotalSupply, supplyDelta)
	}
	return nil
}

func addDecimal(current string, delta *big.Int) string {
	value, _ := new(big.Int).SetString(current, 10)
	if value == nil {
		value = new(big.Int)
	}
	return value.Add(value, delta).String()
}

func (f *fakeStore) ToggleVaultRole(ctx context.Context, chain domain.Chain, address string, role domain.Role, account string, enabled bool) error {
	vault, ok := f.vaults[vaultKey(chain, address)]
	if !ok {
		return domain.ErrVaultNotFound
	}

	members, err := vault.RoleSet(role)
	if err != nil {
		return err
	}

	found := false
	updated := make([]string, 0, len(members)+1)
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
	return setVaultColumn(vault, column, encoded)
}

func (f *fakeStore) insertLedger(table, id string) bool {
	key := table + "|" + id
	if f.ledger[key] {
		return false
	}
	f.ledger[key] = true
	return true
}

func (f *fakeStore) InsertVaultCreatedEvent(ctx context.Context, event *schema.VaultCreatedEvent) (bool, error) {
	return f.insertLedger("vault_created_events", event.ID), nil
}

func (f *fakeStore) InsertVaultConfigEvent(ctx context.Context, event *schema.VaultConfigEvent) (bool, error) {
	return f.insertLedger("vault_config_events", event.ID), nil
}

func (f *fakeStore) InsertVaultRoleEvent(ctx context.Context, event *schema.VaultRoleEvent) (bool, error) {
	return f.insertLedger("vault_role_events", event.ID), nil
}

func (f *fakeStore) InsertAccrueInterestEvent(ctx context.Context, event *schema.AccrueInterestEvent) (bool, error) {
	return f.insertLedger("accrue_interest_events", event.ID), nil
}

func (f *fakeStore) InsertDepositEvent(ctx context.Context, event *schema.DepositEvent) (bool, error) {
	return f.insertLedger("deposit_events", event.ID), nil
}

func (f *fakeStore) InsertWithdrawEvent(ctx context.Context, event *schema.WithdrawEvent) (bool, error) {
	return f.insertLedger("withdraw_events", event.ID), nil
}

func (f *fakeStore) InsertTransferEvent(ctx context.Context, event *schema.TransferEvent) (bool, error) {
	return f.insertLedger("transfer_events", event.ID), nil
}

func (f *fakeStore) InsertCapEvent(ctx context.Context, event *schema.CapEvent) (bool, error) {
	return f.insertLedger("cap_events", event.ID), nil
}

func (f *fakeStore) InsertAllocationEvent(ctx context.Context, event *schema.AllocationEvent) (bool, error) {
	return f.insertLedger("allocation_events", event.ID), nil
}

func (f *fakeStore) GetIdentifierState(ctx context.Context, chain domain.Chain, vaultAddress, identifierID string) (*schema.IdentifierState, error) {
	state, ok := f.identifiers[identifierKey(chain, vaultAddress, identifierID)]
	if !ok {
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

func (f *fakeStore) ListIdentifierStates(ctx context.Context, chain domain.Chain, vaultAddress string) ([]schema.IdentifierState, error) {
	var states []schema.IdentifierState
	for _, state := range f.identifiers {
		if state.Chain == string(chain) && state.VaultAddress == vaultAddress {
			states = append(states, *state)
		}
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].IdentifierID < states[j].IdentifierID
	})
	return states, nil
}

func (f *fakeStore) ensureIdentifier(chain domain.Chain, vaultAddress, identifierID string) *schema.IdentifierState {
	key := identifierKey(chain, vaultAddress, identifierID)
	state, ok := f.identifiers[key]
	if !ok {
		state = &schema.IdentifierState{
			Chain:        string(chain),
			VaultAddress: vaultAddress,
			IdentifierID: identifierID,
			AbsoluteCap:  "0",
			RelativeCap:  "0",
			Allocation:   "0",
		}
		f.identifiers[key] = state
	}
	return state
}

func (f *fakeStore) SetIdentifierCap(ctx context.Context, chain domain.Chain, vaultAddress, identifierID, capColumn, value string) error {
	state := f.ensureIdentifier(chain, vaultAddress, identifierID)
	switch capColumn {
	case "absolute_cap":
		state.AbsoluteCap = value
	case "relative_cap":
		state.RelativeCap = value
	default:
		return fmt.Errorf("fake store: unknown cap column %q", capColumn)
	}
	return nil
}

func (f *fakeStore) AddIdentifierAllocation(ctx context.Context, chain domain.Chain, vaultAddress, identifierID string, delta *big.Int) error {
	state := f.ensureIdentifier(chain, vaultAddress, identifierID)
	state.Allocation = addDecimal(state.Allocation, delta)
	return nil
}

func (f *fakeStore) InsertVaultCheckpoint(ctx context.Context, checkpoint *schema.VaultCheckpoint) error {
	for _, existing := range f.vaultCheckpoints {
		if existing.ID == checkpoint.ID {
			return nil
		}
	}
	f.vaultCheckpoints = append(f.vaultCheckpoints, *checkpoint)
	return nil
}

func (f *fakeStore) InsertIdentifierCheckpoint(ctx context.Context, checkpoint *schema.IdentifierCheckpoint) error {
	for _, existing := range f.identifierCheckpoints {
		if existing.ID == checkpoint.ID {
			return nil
		}
	}
	f.identifierCheckpoints = append(f.identifierCheckpoints, *checkpoint)
	return nil
}

func (f *fakeStore) InsertVaultSnapshot(ctx context.Context, snapshot *schema.VaultSnapshot) error {
	for _, existing := range f.snapshots {
		if existing.ID == snapshot.ID {
			return nil
		}
	}
	f.snapshots = append(f.snapshots, *snapshot)
	return nil
}

func (f *fakeStore) GetVaultCheckpointAt(ctx context.Context, chain domain.Chain, vaultAddress string, at time.Time) (*schema.VaultCheckpoint, error) {
	var best *schema.VaultCheckpoint
	for i := range f.vaultCheckpoints {
		candidate := &f.vaultCheckpoints[i]
		if candidate.Chain != string(chain) || candidate.VaultAddress != vaultAddress {
			continue
		}
		if candidate.BlockTime.After(at) {
			continue
		}
		if best == nil || checkpointAfter(candidate.BlockTime, candidate.BlockNumber, candidate.TxIndex, candidate.LogIndex,
			best.BlockTime, best.BlockNumber, best.TxIndex, best.LogIndex) {
			best = candidate
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

func (f *fakeStore) GetIdentifierCheckpointAt(ctx context.Context, chain domain.Chain, vaultAddress, identifierID string, at time.Time) (*schema.IdentifierCheckpoint, error) {
	var best *schema.IdentifierCheckpoint
	for i := range f.identifierCheckpoints {
		candidate := &f.identifierCheckpoints[i]
		if candidate.Chain != string(chain) || candidate.VaultAddress != vaultAddress || candidate.IdentifierID != identifierID {
			continue
		}
		if candidate.BlockTime.After(at) {
			continue
		}
		if best == nil || checkpointAfter(candidate.BlockTime, candidate.BlockNumber, candidate.TxIndex, candidate.LogIndex,
			best.BlockTime, best.BlockNumber, best.TxIndex, best.LogIndex) {
			best = candidate
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

func (f *fakeStore) GetVaultSnapshotAt(ctx context.Context, chain domain.Chain, vaultAddress string, at time.Time) (*schema.VaultSnapshot, error) {
	var best *schema.VaultSnapshot
	for i := range f.snapshots {
		candidate := &f.snapshots[i]
		if candidate.Chain != string(chain) || candidate.VaultAddress != vaultAddress {
			continue
		}
		if candidate.BlockTime.After(at) {
			continue
		}
		if best == nil || checkpointAfter(candidate.BlockTime, candidate.BlockNumber, candidate.TxIndex, candidate.LogIndex,
			best.BlockTime, best.BlockNumber, best.TxIndex, best.LogIndex) {
			best = candidate
		}
	}
	if best == nil {
		return nil, nil
	}
	copied := *best
	return &copied, nil
}

func checkpointAfter(aTime time.Time, aBlock, aTx, aLog uint64, bTime time.Time, bBlock, bTx, bLog uint64) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	if aBlock != bBlock {
		return aBlock > bBlock
	}
	if aTx != bTx {
		return aTx > bTx
	}
	return aLog > bLog
}

func (f *fakeStore) GetDepositor(ctx context.Context, chain domain.Chain, vaultAddress, account string) (*schema.VaultDepositor, error) {
	depositor, ok := f.depositors[identifierKey(chain, vaultAddress, account)]
	if !ok {
		return nil, nil
	}
	copied := *depositor
	return &copied, nil
}

func (f *fakeStore) ensureDepositor(touch store.DepositorTouch) *schema.VaultDepositor {
	key := identifierKey(touch.Chain, touch.VaultAddress, touch.Account)
	depositor, ok := f.depositors[key]
	if !ok {
		depositor = &schema.VaultDepositor{
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
		}
		f.depositors[key] = depositor
	}
	depositor.LastSeenBlock = touch.BlockNumber
	depositor.LastSeenTime = touch.BlockTime
	depositor.LastSeenTxHash = touch.TxHash
	return depositor
}

func (f *fakeStore) ApplyDepositorDeposit(ctx context.Context, touch store.DepositorTouch, assets, shares *big.Int) error {
	depositor := f.ensureDepositor(touch)
	depositor.DepositCount++
	depositor.DepositedAssets = addDecimal(depositor.DepositedAssets, assets)
	depositor.DepositedShares = addDecimal(depositor.DepositedShares, shares)
	return nil
}

func (f *fakeStore) ApplyDepositorWithdraw(ctx context.Context, touch store.DepositorTouch, assets, shares *big.Int) error {
	depositor := f.ensureDepositor(touch)
	depositor.WithdrawCount++
	depositor.WithdrawnAssets = addDecimal(depositor.WithdrawnAssets, assets)
	depositor.WithdrawnShares = addDecimal(depositor.WithdrawnShares, shares)
	return nil
}

func (f *fakeStore) AdjustDepositorBalance(ctx context.Context, touch store.DepositorTouch, delta *big.Int) error {
	depositor := f.ensureDepositor(touch)
	depositor.Balance = addDecimal(depositor.Balance, delta)
	return nil
}

func (f *fakeStore) GetBlockCursor(ctx context.Context, chain string) (uint64, error) {
	return f.cursors[chain], nil
}

func (f *fakeStore) SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error {
	f.cursors[chain] = blockNumber
	return nil
}
