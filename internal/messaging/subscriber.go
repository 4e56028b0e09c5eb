package messaging

import (
	"context"

	"github.com/openyield/vault-indexer/internal/domain"
)

// EventHandler is called for each observed vault event, in canonical
// (block_number, tx_index, log_index) order
type EventHandler func(event *domain.VaultEvent) error

// Subscriber defines the interface for subscribing to on-chain vault events
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeEvents subscribes to vault events starting at fromBlock,
	// catching up on historical logs before following the live head.
	// handler is invoked sequentially; returning an error stops the
	// subscription.
	SubscribeEvents(ctx context.Context, fromBlock uint64, handler EventHandler) error

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection and cleans up resources
	Close()
}
