package ingest_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openyield/vault-indexer/internal/adapter"
	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/ingest"
	"github.com/openyield/vault-indexer/internal/logger"
	mockspkg "github.com/openyield/vault-indexer/internal/mocks"
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

// testConsumerMocks contains all the mocks needed for testing the consumer
type testConsumerMocks struct {
	ctrl       *gomock.Controller
	natsJS     *mockspkg.MockNatsJetStream
	natsConn   *mockspkg.MockNatsConn
	jetStream  *mockspkg.MockJetStream
	dispatcher *mockspkg.MockDispatcher
}

// setupTestConsumer creates all the mocks for testing
func setupTestConsumer(t *testing.T) *testConsumerMocks {
	ctrl := gomock.NewController(t)

	tm := &testConsumerMocks{
		ctrl:       ctrl,
		natsJS:     mockspkg.NewMockNatsJetStream(ctrl),
		natsConn:   mockspkg.NewMockNatsConn(ctrl),
		jetStream:  mockspkg.NewMockJetStream(ctrl),
		dispatcher: mockspkg.NewMockDispatcher(ctrl),
	}

	return tm
}

// tearDownTestConsumer cleans up the test mocks
func tearDownTestConsumer(mocks *testConsumerMocks) {
	mocks.ctrl.Finish()
}

func testConsumerConfig() ingest.Config {
	return ingest.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "VAULT_EVENTS",
		ConsumerName:   "vault-indexer",
		MaxReconnects:  10,
		ReconnectWait:  1 * time.Second,
		ConnectionName: "test-consumer",
		AckWaitTimeout: 30 * time.Second,
		MaxDeliver:     5,
	}
}

// newTestConsumer wires a consumer against the mocked NATS connection
func newTestConsumer(t *testing.T, mocks *testConsumerMocks) ingest.Consumer {
	t.Helper()

	config := testConsumerConfig()
	mocks.natsJS.
		EXPECT().
		Connect(config.URL, gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	c, err := ingest.NewConsumer(config, mocks.natsJS, mocks.dispatcher, adapter.NewJSON())
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func testStreamEvent() *domain.VaultEvent {
	return &domain.VaultEvent{
		Chain:        domain.ChainEthereumMainnet,
		VaultAddress: "0x396343362be2a4da1ce0c1c210945346fb82aa49",
		Kind:         domain.EventKindDeposit,
		BlockNumber:  1000,
		BlockTime:    time.Unix(1700000000, 0).UTC(),
		TxHash:       "0xabc123",
		LogIndex:     0,
		OwnerAccount: "0xaaaa000000000000000000000000000000000001",
		Assets:       "100",
		Shares:       "100",
	}
}

// newTestMessage builds a stream message mock carrying the given payload
func newTestMessage(mocks *testConsumerMocks, payload []byte) *mockspkg.MockJetStreamMessage {
	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().
		Metadata().
		Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).
		AnyTimes()
	msg.EXPECT().
		Data().
		Return(payload).
		AnyTimes()
	return msg
}

// runWithMessages runs the consumer and feeds the given messages through the
// captured handler. The caller cancels the context from a message settlement
// expectation once the last message is handled.
func runWithMessages(t *testing.T, mocks *testConsumerMocks, c ingest.Consumer, ctx context.Context, msgs ...adapter.Message) error {
	t.Helper()

	jsConsumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	consumeContext := mockspkg.NewMockConsumeContext(mocks.ctrl)
	consumeContext.EXPECT().
		Stop().
		AnyTimes()

	jsConsumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: "vault-indexer"}, nil)
	jsConsumer.EXPECT().
		Consume(gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			go func() {
				for _, msg := range msgs {
					handler(msg)
				}
			}()
			return consumeContext, nil
		})

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(jsConsumer, nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- c.Run(ctx)
	}()

	select {
	case err := <-errChan:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out")
		return nil
	}
}

func TestConsumer_NewConsumer_ConnectError(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, assert.AnError)

	c, err := ingest.NewConsumer(testConsumerConfig(), mocks.natsJS, mocks.dispatcher, adapter.NewJSON())

	assert.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestConsumer_Run_CreateConsumerError(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	c := newTestConsumer(t, mocks)

	config := testConsumerConfig()
	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(),
			"VAULT_EVENTS",
			jetstream.ConsumerConfig{
				Durable:       config.ConsumerName,
				AckPolicy:     jetstream.AckExplicitPolicy,
				AckWait:       config.AckWaitTimeout,
				MaxDeliver:    config.MaxDeliver,
				FilterSubject: "vaults.*.>",
			}).
		Return(nil, assert.AnError)

	err := c.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create/update consumer")
}

func TestConsumer_Run_ConsumerInfoError(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	c := newTestConsumer(t, mocks)

	jsConsumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	jsConsumer.EXPECT().
		Info(gomock.Any()).
		Return(nil, assert.AnError)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(jsConsumer, nil)

	err := c.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get consumer info")
}

func TestConsumer_Run_ConsumeError(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	c := newTestConsumer(t, mocks)

	jsConsumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	jsConsumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: "vault-indexer"}, nil)
	jsConsumer.EXPECT().
		Consume(gomock.Any()).
		Return(nil, assert.AnError)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(jsConsumer, nil)

	err := c.Run(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create subscription")
}

func TestConsumer_Run_AcksAppliedEvent(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	c := newTestConsumer(t, mocks)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	event := testStreamEvent()
	payload, err := adapter.NewJSON().Marshal(event)
	require.NoError(t, err)

	msg := newTestMessage(mocks, payload)
	mocks.dispatcher.
		EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, got *domain.VaultEvent) error {
			assert.Equal(t, event.CoordinateID(), got.CoordinateID())
			assert.Equal(t, event.Kind, got.Kind)
			return nil
		})
	msg.EXPECT().
		Ack().
		DoAndReturn(func() error {
			cancel()
			return nil
		})

	err = runWithMessages(t, mocks, c, ctx, msg)
	assert.Equal(t, context.Canceled, err)
}

func TestConsumer_Run_NaksTransientFailure(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	c := newTestConsumer(t, mocks)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payload, err := adapter.NewJSON().Marshal(testStreamEvent())
	require.NoError(t, err)

	msg := newTestMessage(mocks, payload)
	mocks.dispatcher.
		EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		Return(assert.AnError)
	msg.EXPECT().
		Nak().
		DoAndReturn(func() error {
			cancel()
			return nil
		})

	err = runWithMessages(t, mocks, c, ctx, msg)
	assert.Equal(t, context.Canceled, err)
}

func TestConsumer_Run_TerminatesInvalidEvent(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	c := newTestConsumer(t, mocks)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payload, err := adapter.NewJSON().Marshal(testStreamEvent())
	require.NoError(t, err)

	// Malformed events can never succeed on redelivery
	msg := newTestMessage(mocks, payload)
	mocks.dispatcher.
		EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		Return(domain.ErrInvalidEvent)
	msg.EXPECT().
		Term().
		DoAndReturn(func() error {
			cancel()
			return nil
		})

	err = runWithMessages(t, mocks, c, ctx, msg)
	assert.Equal(t, context.Canceled, err)
}

func TestConsumer_Run_TerminatesUnparseablePayload(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	c := newTestConsumer(t, mocks)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := newTestMessage(mocks, []byte("not json"))
	msg.EXPECT().
		Term().
		DoAndReturn(func() error {
			cancel()
			return nil
		})

	err := runWithMessages(t, mocks, c, ctx, msg)
	assert.Equal(t, context.Canceled, err)
}

func TestConsumer_Run_SequentialDelivery(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	c := newTestConsumer(t, mocks)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jsonAdapter := adapter.NewJSON()

	first := testStreamEvent()
	second := testStreamEvent()
	second.BlockNumber = 1001
	second.TxHash = "0xdef456"

	firstPayload, err := jsonAdapter.Marshal(first)
	require.NoError(t, err)
	secondPayload, err := jsonAdapter.Marshal(second)
	require.NoError(t, err)

	firstMsg := newTestMessage(mocks, firstPayload)
	secondMsg := newTestMessage(mocks, secondPayload)

	// Events must be applied in stream order
	var applied []string
	mocks.dispatcher.
		EXPECT().
		Dispatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, got *domain.VaultEvent) error {
			applied = append(applied, got.CoordinateID())
			return nil
		}).
		Times(2)

	firstMsg.EXPECT().Ack().Return(nil)
	secondMsg.EXPECT().
		Ack().
		DoAndReturn(func() error {
			assert.Equal(t, []string{first.CoordinateID(), second.CoordinateID()}, applied)
			cancel()
			return nil
		})

	err = runWithMessages(t, mocks, c, ctx, firstMsg, secondMsg)
	assert.Equal(t, context.Canceled, err)
}

func TestConsumer_Close(t *testing.T) {
	mocks := setupTestConsumer(t)
	defer tearDownTestConsumer(mocks)

	c := newTestConsumer(t, mocks)

	mocks.natsConn.
		EXPECT().
		Close()

	c.Close()
}
