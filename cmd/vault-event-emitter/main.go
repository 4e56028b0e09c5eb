package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/openyield/vault-indexer/internal/adapter"
	"github.com/openyield/vault-indexer/internal/block"
	"github.com/openyield/vault-indexer/internal/config"
	"github.com/openyield/vault-indexer/internal/emitter"
	"github.com/openyield/vault-indexer/internal/logger"
	"github.com/openyield/vault-indexer/internal/providers/ethereum"
	"github.com/openyield/vault-indexer/internal/providers/jetstream"
	"github.com/openyield/vault-indexer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadVaultEmitterConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "vault-event-emitter",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Vault Event Emitter")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	maxOpen, maxIdle, maxLifetime, maxIdleTime := store.NormalizeConnectionPoolSettings(
		cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime)
	if err := store.ConfigureConnectionPool(db, maxOpen, maxIdle, maxLifetime, maxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if cfg.Database.ReadHost != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.Database.ReadDSN())},
		}))
		if err != nil {
			logger.FatalCtx(ctx, "Failed to register read replica", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Registered read replica", zap.String("host", cfg.Database.ReadHost))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()

	// Initialize ethereum client
	ethDialer := adapter.NewEthClientDialer()
	adapterEthClient, err := ethDialer.Dial(ctx, cfg.Ethereum.WebSocketURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err))
	}
	defer adapterEthClient.Close()

	blocks := block.NewBlockProvider(
		ethereum.NewEthereumBlockFetcher(adapterEthClient),
		block.Config{
			TTL:         cfg.Ethereum.BlockHeadTTL,
			StaleWindow: cfg.Ethereum.BlockHeadStaleWindow,
		},
		clockAdapter,
	)
	vaultClient := ethereum.NewClient(cfg.Ethereum.ChainID, adapterEthClient, blocks)

	// Initialize NATS publisher
	natsPublisher, err := jetstream.NewPublisher(
		jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, natsJS, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer natsPublisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS JetStream")

	// Initialize Ethereum subscriber, seeding the tracked vault set from the
	// vaults already indexed so only their logs get published
	knownVaults, err := dataStore.ListVaultAddresses(ctx, cfg.Ethereum.ChainID)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to list known vaults", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Seeded tracked vault set", zap.Int("vaults", len(knownVaults)))

	ethSubscriber := ethereum.NewSubscriber(ethereum.Config{
		WebSocketURL:   cfg.Ethereum.WebSocketURL,
		ChainID:        cfg.Ethereum.ChainID,
		CatchupWorkers: cfg.Ethereum.CatchupWorkers,
	}, vaultClient, blocks, knownVaults)
	defer ethSubscriber.Close()
	logger.InfoCtx(ctx, "Connected to Ethereum WebSocket")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	emitterCfg := emitter.Config{
		ChainID:         cfg.Ethereum.ChainID,
		StartBlock:      cfg.Ethereum.StartBlock,
		CursorSaveFreq:  cfg.Emitter.CursorSaveFreq,
		CursorSaveDelay: cfg.Emitter.CursorSaveDelay,
	}

	eventEmitter := emitter.NewEmitter(
		ethSubscriber,
		natsPublisher,
		dataStore,
		emitterCfg,
		clockAdapter,
	)
	defer eventEmitter.Close()

	// Channel for emitter errors
	errCh := make(chan error, 1)

	// Start the emitter
	go func() {
		if err := eventEmitter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "emitter"))
		cancel()
	}

	// Give some time for graceful shutdown
	time.Sleep(time.Second)

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Vault Event Emitter stopped")
}
