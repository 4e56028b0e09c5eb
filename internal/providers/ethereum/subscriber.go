package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/openyield/vault-indexer/internal/block"
	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/logger"
	"github.com/openyield/vault-indexer/internal/messaging"
)

const defaultCatchupWorkers = 8

// Config holds the configuration for Ethereum vault event subscription
type Config struct {
	WebSocketURL string       // WebSocket URL (e.g., wss://mainnet.infura.io/ws/v3/YOUR_PROJECT_ID)
	ChainID      domain.Chain // e.g., "eip155:1" for Ethereum mainnet
	// CatchupWorkers bounds the concurrent block timestamp prefetch during
	// historical catch-up (0 = default)
	CatchupWorkers int
}

type ethSubscriber struct {
	client         VaultClient
	blocks         block.BlockProvider
	chainID        domain.Chain
	catchupWorkers int

	// tracked is the set of vault contract addresses whose logs are
	// published. The vault event signatures overlap with generic ERC-20
	// topics (Transfer in particular), so topic filtering alone would admit
	// logs from every token contract on the chain.
	mu      sync.Mutex
	tracked map[string]struct{}
}

// NewSubscriber creates a new Ethereum vault event subscriber. knownVaults
// seeds the tracked vault set, typically from the vaults already indexed;
// vault creation logs grow the set at runtime.
func NewSubscriber(cfg Config, client VaultClient, blocks block.BlockProvider, knownVaults []string) messaging.Subscriber {
	workers := cfg.CatchupWorkers
	if workers == 0 {
		workers = defaultCatchupWorkers
	}

	tracked := make(map[string]struct{}, len(knownVaults))
	for _, address := range knownVaults {
		tracked[domain.NormalizeAddress(address)] = struct{}{}
	}

	return &ethSubscriber{
		client:         client,
		blocks:         blocks,
		chainID:        cfg.ChainID,
		catchupWorkers: workers,
		tracked:        tracked,
	}
}

// admit reports whether a log belongs to a tracked vault. A vault creation
// log registers its emitting contract first, since the new vault announces
// its own creation.
func (s *ethSubscriber) admit(vLog types.Log) bool {
	if len(vLog.Topics) == 0 {
		return false
	}

	address := domain.NormalizeAddress(vLog.Address.Hex())

	s.mu.Lock()
	defer s.mu.Unlock()

	if vLog.Topics[0] == createVaultSignature {
		s.tracked[address] = struct{}{}
		return true
	}

	_, ok := s.tracked[address]
	return ok
}

// SubscribeEvents catches up on historical vault logs from fromBlock, then
// follows the live head. Events are delivered to the handler strictly in
// canonical (block, tx index, log index) order.
func (s *ethSubscriber) SubscribeEvents(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
	latest, err := s.blocks.GetLatestBlock(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest block: %w", err)
	}

	liveFrom := latest + 1
	if fromBlock > 0 && fromBlock <= latest {
		if err := s.catchUp(ctx, fromBlock, latest, handler); err != nil {
			return fmt.Errorf("historical catch-up failed: %w", err)
		}
	} else if fromBlock > latest {
		liveFrom = fromBlock
	}

	return s.subscribeLive(ctx, liveFrom, handler)
}

// catchUp replays the historical log range in canonical order
func (s *ethSubscriber) catchUp(ctx context.Context, fromBlock, toBlock uint64, handler messaging.EventHandler) error {
	logger.InfoCtx(ctx, "Catching up on historical vault events",
		zap.String("chain", string(s.chainID)),
		zap.Uint64("fromBlock", fromBlock),
		zap.Uint64("toBlock", toBlock))

	logs, err := s.client.FilterVaultLogs(ctx, fromBlock, toBlock)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		return nil
	}

	// Canonical chain order; FilterLogs already returns block order but the
	// paginated merge makes no guarantee within a block. Sorting must precede
	// admission so a vault created mid-range tracks its later logs.
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		if logs[i].TxIndex != logs[j].TxIndex {
			return logs[i].TxIndex < logs[j].TxIndex
		}
		return logs[i].Index < logs[j].Index
	})

	admitted := logs[:0]
	for _, vLog := range logs {
		if s.admit(vLog) {
			admitted = append(admitted, vLog)
		}
	}
	if len(admitted) == 0 {
		return nil
	}

	s.prefetchTimestamps(ctx, admitted)

	for _, vLog := range admitted {
		event, err := s.client.ParseEventLog(ctx, vLog)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			logger.ErrorCtx(ctx, err, zap.String("message", "Error parsing historical log"),
				zap.String("txHash", vLog.TxHash.Hex()))
			continue
		}
		if event == nil {
			continue
		}

		if err := handler(event); err != nil {
			return fmt.Errorf("failed to handle historical event %s: %w", event.CoordinateID(), err)
		}
	}

	logger.InfoCtx(ctx, "Historical catch-up complete",
		zap.String("chain", string(s.chainID)),
		zap.Int("events", len(admitted)))

	return nil
}

// prefetchTimestamps warms the block timestamp cache concurrently so the
// sequential parse loop never blocks on RPC
func (s *ethSubscriber) prefetchTimestamps(ctx context.Context, logs []types.Log) {
	blockNumbers := make(map[uint64]bool, len(logs))
	for _, vLog := range logs {
		blockNumbers[vLog.BlockNumber] = true
	}

	pool := pond.NewPool(s.catchupWorkers, pond.WithContext(ctx))
	for blockNumber := range blockNumbers {
		pool.Submit(func() {
			if _, err := s.blocks.GetBlockTimestamp(ctx, blockNumber); err != nil {
				logger.WarnCtx(ctx, "Failed to prefetch block timestamp",
					zap.Uint64("block_number", blockNumber),
					zap.Error(err))
			}
		})
	}
	pool.StopAndWait()
}

// subscribeLive follows the live head from fromBlock
func (s *ethSubscriber) subscribeLive(ctx context.Context, fromBlock uint64, handler messaging.EventHandler) error {
	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		Topics:    [][]common.Hash{vaultEventSignatures},
	}

	logs := make(chan types.Log)
	sub, err := s.client.SubscribeFilterLogs(ctx, query, logs)
	if err != nil {
		return fmt.Errorf("failed to subscribe to filter logs: %w", err)
	}
	defer func() {
		logger.InfoCtx(ctx, "Unsubscribing from ethereum vault logs")
		sub.Unsubscribe()
		logger.InfoCtx(ctx, "Unsubscribed from ethereum vault logs")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("subscription error: %w", err)
		case vLog := <-logs:
			if !s.admit(vLog) {
				continue
			}

			event, err := s.client.ParseEventLog(ctx, vLog)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err, zap.String("message", "Error parsing log"))
				continue
			}

			if event == nil {
				continue
			}

			if err := handler(event); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Error handling event"))
			}
		}
	}
}

// GetLatestBlock returns the latest block number
func (s *ethSubscriber) GetLatestBlock(ctx context.Context) (uint64, error) {
	return s.blocks.GetLatestBlock(ctx)
}

// Close closes the connection
func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}
