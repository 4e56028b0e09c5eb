package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/openyield/vault-indexer/internal/adapter"
	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/indexer"
	"github.com/openyield/vault-indexer/internal/logger"
)

// Config holds the configuration for the event consumer
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
}

// Consumer pulls vault events off the durable stream and applies them
type Consumer interface {
	// Run starts consuming until the context is canceled
	Run(ctx context.Context) error
	// Close closes the consumer and cleans up resources
	Close()
}

type consumer struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	dispatcher indexer.Dispatcher
	json       adapter.JSON
	config     Config
}

// NewConsumer creates a new vault event consumer
func NewConsumer(
	cfg Config,
	natsJS adapter.NatsJetStream,
	dispatcher indexer.Dispatcher,
	jsonAdapter adapter.JSON,
) (Consumer, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &consumer{
		nc:         nc,
		js:         js,
		dispatcher: dispatcher,
		json:       jsonAdapter,
		config:     cfg,
	}, nil
}

// Run starts consuming vault events
func (c *consumer) Run(ctx context.Context) error {
	logger.Info("Starting vault event consumer",
		zap.String("stream", c.config.StreamName),
		zap.String("consumer", c.config.ConsumerName))

	// All vault subjects across chains and kinds
	subject := "vaults.*.>"

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWaitTimeout,
		MaxDeliver:    c.config.MaxDeliver,
		FilterSubject: subject,
	}

	jsConsumer, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := jsConsumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	msgChan := make(chan adapter.Message, 100)
	sub, err := jsConsumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	// Strictly sequential: checkpoints and the delta-accumulated projection
	// require events applied in stream order, so no per-message goroutines
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down vault event consumer")
			return ctx.Err()
		case msg := <-msgChan:
			c.handleMessage(ctx, msg)
		}
	}
}

// handleMessage applies a single stream message. Unparseable or invalid
// payloads are terminated since redelivery can never fix them; transient
// apply failures are NAKed for redelivery.
func (c *consumer) handleMessage(ctx context.Context, msg adapter.Message) {
	metadata, _ := msg.Metadata()

	var event domain.VaultEvent
	if err := c.json.Unmarshal(msg.Data(), &event); err != nil {
		logger.Error(err, zap.String("message", "Failed to unmarshal event"))
		if err := msg.Term(); err != nil {
			logger.Error(err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	deliveryCount := uint64(0)
	if metadata != nil {
		deliveryCount = metadata.NumDelivered
	}

	logger.Info("Received vault event",
		zap.String("chain", string(event.Chain)),
		zap.String("kind", string(event.Kind)),
		zap.String("vault", event.VaultAddress),
		zap.String("txHash", event.TxHash),
		zap.Uint64("deliveryCount", deliveryCount),
	)

	if err := c.dispatcher.Dispatch(ctx, &event); err != nil {
		if errors.Is(err, domain.ErrInvalidEvent) {
			logger.Error(err, zap.String("message", "Terminating invalid event"))
			if err := msg.Term(); err != nil {
				logger.Error(err, zap.String("message", "Failed to terminate message"))
			}
			return
		}

		logger.Error(err, zap.String("message", "Failed to apply event"),
			zap.String("coordinate", event.CoordinateID()))
		if err := msg.Nak(); err != nil {
			logger.Error(err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the NATS connection
func (c *consumer) Close() {
	if c.nc == nil {
		return
	}

	c.nc.Close()
}
