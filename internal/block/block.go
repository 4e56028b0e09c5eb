package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openyield/vault-indexer/internal/adapter"
	"github.com/openyield/vault-indexer/internal/logger"
)

// BlockProvider serves the chain head and per-block timestamps from a TTL
// cache in front of the JSON-RPC node. The emitter hits this on every event,
// so uncached reads would multiply RPC traffic per vault log.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider
type BlockProvider interface {
	GetLatestBlock(ctx context.Context) (uint64, error)
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// BlockFetcher is the uncached source of block data.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockFetcher=MockBlockFetcher
type BlockFetcher interface {
	FetchLatestBlock(ctx context.Context) (uint64, error)
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config controls cache lifetimes.
type Config struct {
	// TTL bounds how long the head number is served from cache.
	TTL time.Duration

	// StaleWindow allows serving expired entries when the node is down.
	// Entries older than this are never served.
	StaleWindow time.Duration

	// BlockTimestampTTL bounds timestamp entries. Zero caches forever, which
	// is safe for confirmed blocks.
	BlockTimestampTTL time.Duration
}

type headEntry struct {
	number   uint64
	cachedAt time.Time
}

type timestampEntry struct {
	timestamp time.Time
	cachedAt  time.Time
}

type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu         sync.RWMutex
	head       *headEntry
	timestamps map[uint64]*timestampEntry
}

func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	return &blockProvider{
		fetcher:    fetcher,
		config:     config,
		clock:      clock,
		timestamps: make(map[uint64]*timestampEntry),
	}
}

func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.head
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.cachedAt) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached block number", zap.Uint64("block_number", cached.number))
		return cached.number, nil
	}

	blockNumber, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.cachedAt) < p.config.StaleWindow {
			logger.DebugCtx(ctx, "Using stale block number", zap.Uint64("block_number", cached.number))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	p.mu.Lock()
	p.head = &headEntry{number: blockNumber, cachedAt: now}
	p.mu.Unlock()

	return blockNumber, nil
}

func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	p.mu.RLock()
	cached := p.timestamps[blockNumber]
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && (p.config.BlockTimestampTTL == 0 || now.Sub(cached.cachedAt) < p.config.BlockTimestampTTL) {
		return cached.timestamp, nil
	}

	timestamp, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		if cached != nil && now.Sub(cached.cachedAt) < p.config.StaleWindow {
			logger.DebugCtx(ctx, "Using stale block timestamp",
				zap.Uint64("block_number", blockNumber),
				zap.Time("timestamp", cached.timestamp))
			return cached.timestamp, nil
		}
		return time.Time{}, fmt.Errorf("failed to fetch block timestamp for block %d and no valid cache available: %w", blockNumber, err)
	}

	p.mu.Lock()
	p.timestamps[blockNumber] = &timestampEntry{timestamp: timestamp, cachedAt: now}
	p.mu.Unlock()

	return timestamp, nil
}
