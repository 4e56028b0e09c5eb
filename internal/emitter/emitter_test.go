package emitter_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/emitter"
	"github.com/openyield/vault-indexer/internal/logger"
	"github.com/openyield/vault-indexer/internal/messaging"
	"github.com/openyield/vault-indexer/internal/mocks"
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

// testEmitterMocks contains all the mocks needed for testing the emitter
type testEmitterMocks struct {
	ctrl       *gomock.Controller
	subscriber *mocks.MockSubscriber
	publisher  *mocks.MockPublisher
	store      *mocks.MockStore
	clock      *mocks.MockClock
	emitter    emitter.Emitter
}

// setupTestEmitter creates all the mocks and emitter for testing
func setupTestEmitter(t *testing.T) *testEmitterMocks {
	ctrl := gomock.NewController(t)

	tm := &testEmitterMocks{
		ctrl:       ctrl,
		subscriber: mocks.NewMockSubscriber(ctrl),
		publisher:  mocks.NewMockPublisher(ctrl),
		store:      mocks.NewMockStore(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}

	tm.emitter = emitter.NewEmitter(
		tm.subscriber,
		tm.publisher,
		tm.store,
		emitter.Config{
			ChainID:         domain.ChainEthereumMainnet,
			StartBlock:      0,
			CursorSaveFreq:  10,
			CursorSaveDelay: 5 * time.Second,
		},
		tm.clock,
	)

	return tm
}

// tearDownTestEmitter cleans up the test mocks
func tearDownTestEmitter(mocks *testEmitterMocks) {
	mocks.ctrl.Finish()
}

func testVaultEvent(blockNumber uint64) *domain.VaultEvent {
	return &domain.VaultEvent{
		Chain:        domain.ChainEthereumMainnet,
		VaultAddress: "0x396343362be2a4da1ce0c1c210945346fb82aa49",
		Kind:         domain.EventKindDeposit,
		BlockNumber:  blockNumber,
		BlockTime:    time.Now(),
		TxHash:       "0xabc123",
		LogIndex:     0,
		Assets:       "100",
		Shares:       "100",
	}
}

func TestEmitter_Run_WithStartBlock(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create emitter with configured start block
	emitterInstance := emitter.NewEmitter(
		mocks.subscriber,
		mocks.publisher,
		mocks.store,
		emitter.Config{
			ChainID:         domain.ChainEthereumMainnet,
			StartBlock:      1000,
			CursorSaveFreq:  10,
			CursorSaveDelay: 5 * time.Second,
		},
		mocks.clock,
	)

	// Mock clock for Now() and Since() calls
	now := time.Now()
	mocks.clock.EXPECT().Now().Return(now).MinTimes(1)
	mocks.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	// Mock subscriber to call handler with an event
	event := testVaultEvent(1001)
	mocks.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler interface{}) error {
			handlerFunc := handler.(messaging.EventHandler)
			_ = handlerFunc(event)

			// Cancel context to stop the emitter
			cancel()
			return nil
		})

	// Mock publisher to publish event
	mocks.publisher.
		EXPECT().
		PublishEvent(gomock.Any(), event).
		Return(nil)

	// Cursor save triggers because 1001 - 0 >= CursorSaveFreq
	mocks.store.
		EXPECT().
		SetBlockCursor(gomock.Any(), string(domain.ChainEthereumMainnet), uint64(1001)).
		Return(nil).
		AnyTimes()

	err := emitterInstance.Run(ctx)

	// Should return context canceled error
	assert.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_WithLastBlockCursor(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mock clock for Now() and Since() calls
	now := time.Now()
	mocks.clock.EXPECT().Now().Return(now).AnyTimes()
	mocks.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	// Mock store to return last block cursor
	mocks.store.
		EXPECT().
		GetBlockCursor(gomock.Any(), string(domain.ChainEthereumMainnet)).
		Return(uint64(500), nil)

	// Resumes at cursor + 1
	mocks.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(501), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler interface{}) error {
			// Cancel context to stop the emitter
			cancel()
			return nil
		})

	err := mocks.emitter.Run(ctx)

	// Should return context canceled error
	assert.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_WithNoLastBlockCursor(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mock store to return no last block cursor
	mocks.store.
		EXPECT().
		GetBlockCursor(gomock.Any(), string(domain.ChainEthereumMainnet)).
		Return(uint64(0), nil)

	// Mock clock for Now() and Since() calls
	now := time.Now()
	mocks.clock.EXPECT().Now().Return(now).AnyTimes()
	mocks.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	// Mock subscriber to get latest block
	mocks.subscriber.
		EXPECT().
		GetLatestBlock(gomock.Any()).
		Return(uint64(1000), nil)

	mocks.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler interface{}) error {
			// Cancel context to stop the emitter
			cancel()
			return nil
		})

	err := mocks.emitter.Run(ctx)

	// Should return context canceled error
	assert.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_CursorSaveByBlockFrequency(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create emitter with cursor save frequency
	emitterInstance := emitter.NewEmitter(
		mocks.subscriber,
		mocks.publisher,
		mocks.store,
		emitter.Config{
			ChainID:         domain.ChainEthereumMainnet,
			StartBlock:      1000,
			CursorSaveFreq:  5, // Save every 5 blocks
			CursorSaveDelay: 5 * time.Second,
		},
		mocks.clock,
	)

	now := time.Now()
	mocks.clock.EXPECT().Now().Return(now).AnyTimes()
	mocks.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	// Mock subscriber to call handler with multiple events
	mocks.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler interface{}) error {
			handlerFunc := handler.(messaging.EventHandler)

			// Events at blocks 1000, 1005, 1010 each cross the save frequency
			for _, blockNum := range []uint64{1000, 1005, 1010} {
				event := testVaultEvent(blockNum)

				mocks.publisher.
					EXPECT().
					PublishEvent(gomock.Any(), event).
					Return(nil)

				mocks.store.
					EXPECT().
					SetBlockCursor(gomock.Any(), string(domain.ChainEthereumMainnet), blockNum).
					Return(nil)

				if err := handlerFunc(event); err != nil {
					return err
				}
			}

			// Cancel context to stop the emitter
			cancel()
			return nil
		})

	err := emitterInstance.Run(ctx)

	// Should return context canceled error
	assert.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}

func TestEmitter_Run_PublishFailureSurfacesToSubscriber(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emitterInstance := emitter.NewEmitter(
		mocks.subscriber,
		mocks.publisher,
		mocks.store,
		emitter.Config{
			ChainID:         domain.ChainEthereumMainnet,
			StartBlock:      1000,
			CursorSaveFreq:  10,
			CursorSaveDelay: 5 * time.Second,
		},
		mocks.clock,
	)

	now := time.Now()
	mocks.clock.EXPECT().Now().Return(now).AnyTimes()
	mocks.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	event := testVaultEvent(1001)
	publishErr := errors.New("nats: connection closed")

	mocks.publisher.
		EXPECT().
		PublishEvent(gomock.Any(), event).
		Return(publishErr)

	// The handler error propagates so the subscriber can halt the stream
	// instead of skipping the event
	mocks.subscriber.
		EXPECT().
		SubscribeEvents(gomock.Any(), uint64(1000), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fromBlock uint64, handler interface{}) error {
			handlerFunc := handler.(messaging.EventHandler)
			err := handlerFunc(event)
			assert.ErrorIs(t, err, publishErr)
			return err
		})

	err := emitterInstance.Run(ctx)
	assert.ErrorIs(t, err, publishErr)
}

func TestEmitter_Run_GetBlockCursorError(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	cursorErr := errors.New("connection refused")
	mocks.store.
		EXPECT().
		GetBlockCursor(gomock.Any(), string(domain.ChainEthereumMainnet)).
		Return(uint64(0), cursorErr)

	err := mocks.emitter.Run(context.Background())
	assert.ErrorIs(t, err, cursorErr)
}

func TestEmitter_Close(t *testing.T) {
	mocks := setupTestEmitter(t)
	defer tearDownTestEmitter(mocks)

	mocks.subscriber.EXPECT().Close()
	mocks.emitter.Close()
}
