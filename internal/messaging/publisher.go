package messaging

import (
	"context"

	"github.com/openyield/vault-indexer/internal/domain"
)

// Publisher defines the interface for publishing vault events to the message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a vault event to the message broker
	PublishEvent(ctx context.Context, event *domain.VaultEvent) error
	// Close closes the connection
	Close()
}
