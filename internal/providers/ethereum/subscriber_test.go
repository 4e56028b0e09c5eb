package ethereum

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/mocks"
)

const testVaultB = "0x5a3B1cDd5bDB39fF1b208B56bbEE5a2bbe1279dD"

func newTestBlockProvider(t *testing.T) *mocks.MockBlockProvider {
	t.Helper()
	ctrl := gomock.NewController(t)
	blocks := mocks.NewMockBlockProvider(ctrl)
	blocks.EXPECT().
		GetBlockTimestamp(gomock.Any(), gomock.Any()).
		Return(testBlockTime, nil).
		AnyTimes()
	return blocks
}

func newTestSubscriber(t *testing.T, client VaultClient, knownVaults []string) *ethSubscriber {
	t.Helper()
	sub := NewSubscriber(Config{ChainID: domain.ChainEthereumMainnet}, client, newTestBlockProvider(t), knownVaults)
	return sub.(*ethSubscriber)
}

func logAt(address string, blockNumber uint64, logIndex uint, signature common.Hash, topics []common.Hash, data []byte) types.Log {
	return types.Log{
		Address:     common.HexToAddress(address),
		Topics:      append([]common.Hash{signature}, topics...),
		Data:        data,
		BlockNumber: blockNumber,
		TxHash:      common.HexToHash("0xFEED000000000000000000000000000000000000000000000000000000000001"),
		Index:       logIndex,
	}
}

func transferTopics() []common.Hash {
	return []common.Hash{addressTopic(testAddrA), addressTopic(testAddrB)}
}

func TestSubscriberAdmit(t *testing.T) {
	sub := newTestSubscriber(t, nil, []string{testVault})

	// An ERC-20 transfer from an untracked token contract shares the vault
	// Transfer signature but must not pass
	assert.False(t, sub.admit(logAt(testAddrA, 1000, 0, transferSignature, transferTopics(), nil)))

	// The same signature from a tracked vault passes
	assert.True(t, sub.admit(logAt(testVault, 1000, 1, transferSignature, transferTopics(), nil)))

	// Anonymous logs carry no signature topic
	assert.False(t, sub.admit(types.Log{Address: common.HexToAddress(testVault)}))
}

func TestSubscriberAdmit_CreateVaultRegistersEmitter(t *testing.T) {
	sub := newTestSubscriber(t, nil, nil)

	// Unknown before creation
	assert.False(t, sub.admit(logAt(testVaultB, 1000, 0, transferSignature, transferTopics(), nil)))

	// The new vault announces its own creation, which registers it
	createTopics := []common.Hash{addressTopic(testAddrA), addressTopic(testAddrB)}
	assert.True(t, sub.admit(logAt(testVaultB, 1001, 0, createVaultSignature, createTopics, nil)))

	// Subsequent logs from the registered vault pass
	assert.True(t, sub.admit(logAt(testVaultB, 1002, 0, transferSignature, transferTopics(), nil)))
}

// stubVaultClient serves canned historical logs while delegating decoding to
// the real client
type stubVaultClient struct {
	VaultClient
	logs []types.Log
}

func (s *stubVaultClient) FilterVaultLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	return s.logs, nil
}

func TestCatchUp_OnlyTrackedVaultLogsReachHandler(t *testing.T) {
	blocks := newTestBlockProvider(t)
	amount := mustPack(t, uintArgs, big.NewInt(42))

	client := &stubVaultClient{
		VaultClient: NewClient(domain.ChainEthereumMainnet, nil, blocks),
		logs: []types.Log{
			// Foreign ERC-20 transfer inside the range
			logAt(testAddrA, 1005, 0, transferSignature, transferTopics(), amount),
			// Vault created mid-range, followed by its first transfer.
			// Returned out of block order to exercise the canonical sort.
			logAt(testVaultB, 1003, 0, createVaultSignature,
				[]common.Hash{addressTopic(testAddrA), addressTopic(testAddrB)}, nil),
			logAt(testVaultB, 1004, 0, transferSignature, transferTopics(), amount),
		},
	}

	sub := NewSubscriber(Config{ChainID: domain.ChainEthereumMainnet}, client, blocks, nil).(*ethSubscriber)

	var events []*domain.VaultEvent
	err := sub.catchUp(context.Background(), 1000, 1100, func(event *domain.VaultEvent) error {
		events = append(events, event)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, domain.EventKindVaultCreated, events[0].Kind)
	assert.Equal(t, domain.EventKindTransfer, events[1].Kind)
	for _, event := range events {
		assert.Equal(t, domain.NormalizeAddress(testVaultB), event.VaultAddress)
	}
}
