package indexer_test

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openyield/vault-indexer/internal/adapter"
	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/indexer"
	"github.com/openyield/vault-indexer/internal/logger"
	"github.com/openyield/vault-indexer/internal/mocks"
)

const (
	testVaultAddress  = "0x396343362be2A4dA1cE0C1C210945346fb82Aa49"
	testVaultLower    = "0x396343362be2a4da1ce0c1c210945346fb82aa49"
	testAssetAddress  = "0x457ee5f723C7606c12a7264b52e285906F91eEA6"
	testOwnerAddress  = "0x1111111111111111111111111111111111111111"
	testAccountA      = "0xaaaa000000000000000000000000000000000001"
	testAccountB      = "0xbbbb000000000000000000000000000000000002"
	testIdentifierOne = "0x" + "01000000000000000000000000000000000000000000000000000000000000aa"
	testIdentifierTwo = "0x" + "02000000000000000000000000000000000000000000000000000000000000bb"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testDispatcher bundles the dispatcher under test with its in-memory store
// and the mocked chain reader
type testDispatcher struct {
	ctrl       *gomock.Controller
	store      *fakeStore
	reader     *mocks.MockVaultReader
	dispatcher indexer.Dispatcher
}

func setupTestDispatcher(t *testing.T) *testDispatcher {
	ctrl := gomock.NewController(t)

	td := &testDispatcher{
		ctrl:   ctrl,
		store:  newFakeStore(),
		reader: mocks.NewMockVaultReader(ctrl),
	}
	td.dispatcher = indexer.NewDispatcher(td.store, td.reader, adapter.NewJCS(), adapter.NewJSON())
	return td
}

func tearDownTestDispatcher(td *testDispatcher) {
	td.ctrl.Finish()
}

// allowCanonicalPrice stubs the on-chain convertToAssets read to echo its
// input, so the canonical share price is always one WAD
func allowCanonicalPrice(td *testDispatcher) {
	td.reader.
		EXPECT().
		ConvertToAssets(gomock.Any(), testVaultLower, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, vaultAddress string, shares *big.Int, atBlock uint64) (*big.Int, error) {
			return new(big.Int).Set(shares), nil
		}).
		AnyTimes()
}

func testEvent(kind domain.EventKind, block, logIndex uint64) *domain.VaultEvent {
	return &domain.VaultEvent{
		Chain:        domain.ChainEthereumMainnet,
		VaultAddress: testVaultAddress,
		Kind:         kind,
		BlockNumber:  block,
		BlockTime:    time.Unix(1700000000+int64(block)*12, 0).UTC(),
		TxHash:       fmt.Sprintf("0x%064x", block*1000+logIndex+1),
		TxIndex:      0,
		LogIndex:     logIndex,
	}
}

func mustDispatch(t *testing.T, td *testDispatcher, events ...*domain.VaultEvent) {
	t.Helper()
	for _, event := range events {
		require.NoError(t, td.dispatcher.Dispatch(context.Background(), event))
	}
}

func createTestVault(t *testing.T, td *testDispatcher) {
	t.Helper()
	event := testEvent(domain.EventKindVaultCreated, 100, 0)
	event.Asset = testAssetAddress
	event.Account = testOwnerAddress
	mustDispatch(t, td, event)
}

func TestDispatcher_RejectsInvalidEvent(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)

	err := td.dispatcher.Dispatch(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)

	event := testEvent(domain.EventKindDeposit, 100, 0)
	event.Chain = domain.Chain("eip155:137")
	err = td.dispatcher.Dispatch(context.Background(), event)
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)

	event = testEvent(domain.EventKindAllocate, 100, 0)
	event.Identifiers = nil
	err = td.dispatcher.Dispatch(context.Background(), event)
	assert.ErrorIs(t, err, domain.ErrInvalidEvent)
}

func TestDispatcher_VaultCreated(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	vault, err := td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	require.NotNil(t, vault)
	assert.Equal(t, domain.NormalizeAddress(testAssetAddress), vault.Asset)
	assert.Equal(t, domain.NormalizeAddress(testOwnerAddress), vault.Owner)
	assert.Equal(t, uint64(100), vault.CreatedBlock)
	assert.False(t, vault.Backfilled)
	assert.Equal(t, "0", vault.TotalAssets)
	assert.Equal(t, "0", vault.TotalSupply)

	// Creation is state-relevant, so it checkpoints and snapshots
	require.Len(t, td.store.vaultCheckpoints, 1)
	require.Len(t, td.store.snapshots, 1)
	snapshot := td.store.snapshots[0]
	assert.Equal(t, string(domain.EventKindVaultCreated), snapshot.EventKind)
	// Zero supply prices at one WAD
	assert.Equal(t, domain.WAD, snapshot.SharePrice)
}

func TestDispatcher_DepositWithdrawConservation(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	deposit := testEvent(domain.EventKindDeposit, 101, 0)
	deposit.Sender = testAccountA
	deposit.Receiver = testAccountA
	deposit.OwnerAccount = testAccountA
	deposit.Assets = "100"
	deposit.Shares = "100"

	mint := testEvent(domain.EventKindTransfer, 101, 1)
	mint.From = domain.ETHEREUM_ZERO_ADDRESS
	mint.To = testAccountA
	mint.Shares = "100"

	withdraw := testEvent(domain.EventKindWithdraw, 102, 0)
	withdraw.Sender = testAccountA
	withdraw.Receiver = testAccountA
	withdraw.OwnerAccount = testAccountA
	withdraw.Assets = "40"
	withdraw.Shares = "40"

	burn := testEvent(domain.EventKindTransfer, 102, 1)
	burn.From = testAccountA
	burn.To = domain.ETHEREUM_ZERO_ADDRESS
	burn.Shares = "40"

	mustDispatch(t, td, deposit, mint, withdraw, burn)

	vault, err := td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	assert.Equal(t, "60", vault.TotalAssets)
	assert.Equal(t, "60", vault.TotalSupply)

	depositor, err := td.store.GetDepositor(context.Background(), domain.ChainEthereumMainnet, testVaultLower, testAccountA)
	require.NoError(t, err)
	require.NotNil(t, depositor)
	assert.Equal(t, "60", depositor.Balance)
	assert.Equal(t, uint64(1), depositor.DepositCount)
	assert.Equal(t, uint64(1), depositor.WithdrawCount)
	assert.Equal(t, "100", depositor.DepositedAssets)
	assert.Equal(t, "100", depositor.DepositedShares)
	assert.Equal(t, "40", depositor.WithdrawnAssets)
	assert.Equal(t, "40", depositor.WithdrawnShares)
	assert.Equal(t, uint64(101), depositor.FirstSeenBlock)
	assert.Equal(t, uint64(102), depositor.LastSeenBlock)
}

func TestDispatcher_TransferMovesBalancesNotTotals(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	mint := testEvent(domain.EventKindTransfer, 101, 0)
	mint.From = domain.ETHEREUM_ZERO_ADDRESS
	mint.To = testAccountA
	mint.Shares = "50"

	transfer := testEvent(domain.EventKindTransfer, 102, 0)
	transfer.From = testAccountA
	transfer.To = testAccountB
	transfer.Shares = "20"

	mustDispatch(t, td, mint, transfer)

	vault, err := td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	assert.Equal(t, "50", vault.TotalSupply)
	assert.Equal(t, "0", vault.TotalAssets)

	sender, err := td.store.GetDepositor(context.Background(), domain.ChainEthereumMainnet, testVaultLower, testAccountA)
	require.NoError(t, err)
	assert.Equal(t, "30", sender.Balance)
	assert.Equal(t, uint64(0), sender.DepositCount)

	receiver, err := td.store.GetDepositor(context.Background(), domain.ChainEthereumMainnet, testVaultLower, testAccountB)
	require.NoError(t, err)
	assert.Equal(t, "20", receiver.Balance)
}

func TestDispatcher_ZeroToZeroTransferIsLedgeredOnly(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	noop := testEvent(domain.EventKindTransfer, 101, 0)
	noop.From = domain.ETHEREUM_ZERO_ADDRESS
	noop.To = domain.ETHEREUM_ZERO_ADDRESS
	noop.Shares = "10"

	snapshotsBefore := len(td.store.snapshots)
	checkpointsBefore := len(td.store.vaultCheckpoints)
	mustDispatch(t, td, noop)

	vault, err := td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	assert.Equal(t, "0", vault.TotalSupply)

	// Ledgered and checkpointed, but neither priced nor applied
	assert.True(t, td.store.ledger["transfer_events|"+noop.CoordinateID()])
	assert.Len(t, td.store.vaultCheckpoints, checkpointsBefore+1)
	assert.Len(t, td.store.snapshots, snapshotsBefore)
	assert.Empty(t, td.store.depositors)
}

func TestDispatcher_PureTransferSkipsSnapshot(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	mint := testEvent(domain.EventKindTransfer, 101, 0)
	mint.From = domain.ETHEREUM_ZERO_ADDRESS
	mint.To = testAccountA
	mint.Shares = "50"
	mustDispatch(t, td, mint)

	snapshotsAfterMint := len(td.store.snapshots)
	assert.Equal(t, 2, snapshotsAfterMint)

	transfer := testEvent(domain.EventKindTransfer, 102, 0)
	transfer.From = testAccountA
	transfer.To = testAccountB
	transfer.Shares = "20"
	mustDispatch(t, td, transfer)

	// Pure transfers never change vault state, so no snapshot is taken,
	// but the checkpoint trail still records the event
	assert.Len(t, td.store.snapshots, snapshotsAfterMint)
	assert.Len(t, td.store.vaultCheckpoints, 3)
}

func TestDispatcher_AccrueInterest(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	accrue := testEvent(domain.EventKindAccrueInterest, 105, 0)
	accrue.NewTotalAssets = "123456"
	accrue.PerformanceFeeShares = "10"
	accrue.ManagementFeeShares = "5"
	mustDispatch(t, td, accrue)

	vault, err := td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	assert.Equal(t, "123456", vault.TotalAssets)
	assert.Equal(t, accrue.BlockTime, vault.LastUpdateTime)
}

func TestDispatcher_ConfigAndRoleEvents(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	setName := testEvent(domain.EventKindSetName, 101, 0)
	setName.Value = "Prime Yield Vault"

	setFee := testEvent(domain.EventKindSetPerformanceFee, 101, 1)
	setFee.Amount = "50000000000000000"

	setCurator := testEvent(domain.EventKindSetCurator, 101, 2)
	setCurator.Account = testAccountB

	enableAllocator := testEvent(domain.EventKindSetIsAllocator, 102, 0)
	enableAllocator.Account = testAccountA
	enableAllocator.Enabled = true

	// Re-enabling an existing member must not duplicate it
	enableAgain := testEvent(domain.EventKindSetIsAllocator, 103, 0)
	enableAgain.Account = testAccountA
	enableAgain.Enabled = true

	mustDispatch(t, td, setName, setFee, setCurator, enableAllocator, enableAgain)

	vault, err := td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	assert.Equal(t, "Prime Yield Vault", vault.Name)
	assert.Equal(t, "50000000000000000", vault.PerformanceFee)
	assert.Equal(t, domain.NormalizeAddress(testAccountB), vault.Curator)

	allocators, err := vault.RoleSet(domain.RoleAllocator)
	require.NoError(t, err)
	assert.Equal(t, []string{testAccountA}, allocators)

	disable := testEvent(domain.EventKindSetIsAllocator, 104, 0)
	disable.Account = testAccountA
	disable.Enabled = false
	mustDispatch(t, td, disable)

	vault, err = td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	allocators, err = vault.RoleSet(domain.RoleAllocator)
	require.NoError(t, err)
	assert.Empty(t, allocators)
}

func TestDispatcher_CapAndAllocationEvents(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	increaseCap := testEvent(domain.EventKindIncreaseAbsoluteCap, 101, 0)
	increaseCap.IdentifierID = testIdentifierOne
	increaseCap.Amount = "1000"

	// Cap events carry the replacement value regardless of direction
	decreaseCap := testEvent(domain.EventKindDecreaseAbsoluteCap, 102, 0)
	decreaseCap.IdentifierID = testIdentifierOne
	decreaseCap.Amount = "400"

	relativeCap := testEvent(domain.EventKindIncreaseRelativeCap, 103, 0)
	relativeCap.IdentifierID = testIdentifierOne
	relativeCap.Amount = "500000000000000000"

	allocate := testEvent(domain.EventKindAllocate, 104, 0)
	allocate.Identifiers = []string{testIdentifierOne, testIdentifierTwo}
	allocate.Change = "200"

	deallocate := testEvent(domain.EventKindDeallocate, 105, 0)
	deallocate.Identifiers = []string{testIdentifierOne, testIdentifierTwo}
	deallocate.Change = "-150"

	forceDeallocate := testEvent(domain.EventKindForceDeallocate, 106, 0)
	forceDeallocate.Identifiers = []string{testIdentifierOne}
	forceDeallocate.Change = "-30"
	forceDeallocate.Penalty = "5"

	mustDispatch(t, td, increaseCap, decreaseCap, relativeCap, allocate, deallocate, forceDeallocate)

	one, err := td.store.GetIdentifierState(context.Background(), domain.ChainEthereumMainnet, testVaultLower, testIdentifierOne)
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, "400", one.AbsoluteCap)
	assert.Equal(t, "500000000000000000", one.RelativeCap)
	// 200 - 150 - 30; the penalty never touches the allocation
	assert.Equal(t, "20", one.Allocation)

	two, err := td.store.GetIdentifierState(context.Background(), domain.ChainEthereumMainnet, testVaultLower, testIdentifierTwo)
	require.NoError(t, err)
	require.NotNil(t, two)
	assert.Equal(t, "0", two.AbsoluteCap)
	assert.Equal(t, "50", two.Allocation)

	// Multi-identifier events fan out into per-identifier checkpoints with
	// positional sub-coordinates; single-identifier events keep the plain one
	var checkpointIDs []string
	for _, checkpoint := range td.store.identifierCheckpoints {
		checkpointIDs = append(checkpointIDs, checkpoint.ID)
	}
	assert.Contains(t, checkpointIDs, increaseCap.CoordinateID())
	assert.Contains(t, checkpointIDs, allocate.SubCoordinateID(0))
	assert.Contains(t, checkpointIDs, allocate.SubCoordinateID(1))
	assert.Contains(t, checkpointIDs, forceDeallocate.CoordinateID())

	// The snapshot aggregates the per-identifier maps
	last := td.store.snapshots[len(td.store.snapshots)-1]
	assert.JSONEq(t,
		fmt.Sprintf(`{"%s":"20","%s":"50"}`, testIdentifierOne, testIdentifierTwo),
		string(last.Allocations))
	assert.JSONEq(t,
		fmt.Sprintf(`{"%s":"400","%s":"0"}`, testIdentifierOne, testIdentifierTwo),
		string(last.AbsoluteCaps))
}

func TestDispatcher_IdempotentRedispatch(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	deposit := testEvent(domain.EventKindDeposit, 101, 0)
	deposit.OwnerAccount = testAccountA
	deposit.Assets = "100"
	deposit.Shares = "100"
	mustDispatch(t, td, deposit)

	// Re-delivery of an applied coordinate must be a clean no-op
	redelivered := testEvent(domain.EventKindDeposit, 101, 0)
	redelivered.OwnerAccount = testAccountA
	redelivered.Assets = "100"
	redelivered.Shares = "100"
	mustDispatch(t, td, redelivered)

	vault, err := td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	assert.Equal(t, "100", vault.TotalAssets)

	depositor, err := td.store.GetDepositor(context.Background(), domain.ChainEthereumMainnet, testVaultLower, testAccountA)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), depositor.DepositCount)
	assert.Equal(t, "100", depositor.DepositedAssets)

	assert.Len(t, td.store.vaultCheckpoints, 2)
	assert.Len(t, td.store.snapshots, 2)
}

func TestDispatcher_BackfillsUnknownVault(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	td.reader.
		EXPECT().
		VaultConfig(gomock.Any(), testVaultLower, uint64(205)).
		Return(&domain.VaultConfig{
			Owner:          testOwnerAddress,
			Curator:        testAccountB,
			Asset:          testAssetAddress,
			Name:           "Backfilled Vault",
			Symbol:         "bfVLT",
			PerformanceFee: big.NewInt(0),
			ManagementFee:  big.NewInt(0),
			MaxRate:        big.NewInt(0),
			TotalAssets:    big.NewInt(777),
			TotalSupply:    big.NewInt(700),
		}, nil)

	deposit := testEvent(domain.EventKindDeposit, 205, 0)
	deposit.OwnerAccount = testAccountA
	deposit.Assets = "100"
	deposit.Shares = "90"
	mustDispatch(t, td, deposit)

	vault, err := td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	require.NotNil(t, vault)
	assert.True(t, vault.Backfilled)
	assert.Equal(t, domain.NormalizeAddress(testAssetAddress), vault.Asset)
	assert.Equal(t, "Backfilled Vault", vault.Name)
	assert.Equal(t, uint64(0), vault.CreatedBlock)
	// Chain-read totals plus the triggering deposit
	assert.Equal(t, "877", vault.TotalAssets)

	// A late creation event restores the creation facts without disturbing
	// the newer backfilled configuration
	created := testEvent(domain.EventKindVaultCreated, 100, 0)
	created.Asset = testAssetAddress
	created.Account = testOwnerAddress
	mustDispatch(t, td, created)

	vault, err = td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	assert.False(t, vault.Backfilled)
	assert.Equal(t, uint64(100), vault.CreatedBlock)
	assert.Equal(t, "Backfilled Vault", vault.Name)
	assert.Equal(t, "877", vault.TotalAssets)
}

func TestDispatcher_BackfillDegradedOnReadFailure(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	td.reader.
		EXPECT().
		VaultConfig(gomock.Any(), testVaultLower, uint64(300)).
		Return(nil, errors.New("rpc: connection refused"))

	mint := testEvent(domain.EventKindTransfer, 300, 0)
	mint.From = domain.ETHEREUM_ZERO_ADDRESS
	mint.To = testAccountA
	mint.Shares = "10"
	mustDispatch(t, td, mint)

	vault, err := td.store.GetVault(context.Background(), domain.ChainEthereumMainnet, testVaultLower)
	require.NoError(t, err)
	require.NotNil(t, vault)
	assert.True(t, vault.Backfilled)
	assert.Equal(t, "", vault.Asset)
	assert.Equal(t, "10", vault.TotalSupply)
}

func TestDispatcher_SnapshotPriceFallback(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)

	td.reader.
		EXPECT().
		ConvertToAssets(gomock.Any(), testVaultLower, gomock.Any(), gomock.Any()).
		Return(nil, errors.New("rpc: timeout")).
		AnyTimes()

	createTestVault(t, td)

	mint := testEvent(domain.EventKindTransfer, 101, 0)
	mint.From = domain.ETHEREUM_ZERO_ADDRESS
	mint.To = testAccountA
	mint.Shares = "100"

	accrue := testEvent(domain.EventKindAccrueInterest, 102, 0)
	accrue.NewTotalAssets = "200"

	mustDispatch(t, td, mint, accrue)

	last := td.store.snapshots[len(td.store.snapshots)-1]
	assert.True(t, last.PriceFallback)
	// assets 200 over supply 100 at WAD scale
	assert.Equal(t, "2000000000000000000", last.SharePrice)
	assert.Equal(t, last.SharePrice, last.CanonicalSharePrice)
}

func TestDispatcher_CheckpointTimeTravel(t *testing.T) {
	td := setupTestDispatcher(t)
	defer tearDownTestDispatcher(td)
	allowCanonicalPrice(td)

	createTestVault(t, td)

	for i, assets := range []string{"100", "50", "25"} {
		deposit := testEvent(domain.EventKindDeposit, 110+uint64(i)*10, 0)
		deposit.OwnerAccount = testAccountA
		deposit.Assets = assets
		deposit.Shares = assets
		mustDispatch(t, td, deposit)
	}

	// Between the second and third deposit
	at := time.Unix(1700000000+125*12, 0).UTC()
	checkpoint, err := td.store.GetVaultCheckpointAt(context.Background(), domain.ChainEthereumMainnet, testVaultLower, at)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.Equal(t, "150", checkpoint.TotalAssets)
	assert.Equal(t, string(domain.EventKindDeposit), checkpoint.EventKind)

	// Before the vault existed
	before := time.Unix(1700000000, 0).UTC()
	checkpoint, err = td.store.GetVaultCheckpointAt(context.Background(), domain.ChainEthereumMainnet, testVaultLower, before)
	require.NoError(t, err)
	assert.Nil(t, checkpoint)
}
