package indexer

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/openyield/vault-indexer/internal/adapter"
	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/logger"
	"github.com/openyield/vault-indexer/internal/store"
)

// VaultReader is the point-in-time chain read surface used for backfill
// and canonical share pricing
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=VaultReader=MockVaultReader
type VaultReader interface {
	// VaultConfig reads the full vault configuration at an explicit block
	VaultConfig(ctx context.Context, vaultAddress string, atBlock uint64) (*domain.VaultConfig, error)
	// ConvertToAssets calls the vault's own share-to-asset conversion at an
	// explicit block
	ConvertToAssets(ctx context.Context, vaultAddress string, shares *big.Int, atBlock uint64) (*big.Int, error)
}

// Dispatcher applies one vault event to the full storage model
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// Dispatch applies a single event atomically: ledger append, projection
	// mutation, identifier state, checkpoints, snapshot and depositor
	// ledger all commit in one transaction. Re-dispatching an already
	// applied event is a no-op.
	Dispatch(ctx context.Context, event *domain.VaultEvent) error
}

type dispatcher struct {
	store  store.Store
	reader VaultReader
	jcs    adapter.JCS
	json   adapter.JSON
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(st store.Store, reader VaultReader, jcsAdapter adapter.JCS, jsonAdapter adapter.JSON) Dispatcher {
	return &dispatcher{
		store:  st,
		reader: reader,
		jcs:    jcsAdapter,
		json:   jsonAdapter,
	}
}

// Dispatch applies a single event atomically
func (d *dispatcher) Dispatch(ctx context.Context, event *domain.VaultEvent) error {
	if event == nil || !event.Valid() {
		return fmt.Errorf("%w: rejecting malformed event", domain.ErrInvalidEvent)
	}

	event.VaultAddress = domain.NormalizeAddress(event.VaultAddress)

	return d.store.WithinTx(ctx, func(tx store.Store) error {
		// Events referencing an unknown vault materialize the row first
		if event.Kind != domain.EventKindVaultCreated {
			if err := d.ensureVault(ctx, tx, event); err != nil {
				return fmt.Errorf("failed to ensure vault: %w", err)
			}
		}

		inserted, err := appendLedger(ctx, tx, event)
		if err != nil {
			return fmt.Errorf("failed to append ledger: %w", err)
		}
		if !inserted {
			// Same coordinate already ledgered. Since every side effect of
			// an event commits in one transaction, the whole event is known
			// to be applied; this is a harmless re-delivery.
			logger.InfoCtx(ctx, "Event already applied, skipping",
				zap.String("coordinate", event.CoordinateID()),
				zap.String("kind", string(event.Kind)))
			return nil
		}

		if err := applyProjection(ctx, tx, event); err != nil {
			return fmt.Errorf("failed to apply projection: %w", err)
		}

		if err := applyIdentifierState(ctx, tx, event); err != nil {
			return fmt.Errorf("failed to apply identifier state: %w", err)
		}

		vault, err := tx.GetVault(ctx, event.Chain, event.VaultAddress)
		if err != nil {
			return fmt.Errorf("failed to read vault after projection: %w", err)
		}
		if vault == nil {
			return domain.ErrVaultNotFound
		}

		if err := writeVaultCheckpoint(ctx, tx, vault, event); err != nil {
			return fmt.Errorf("failed to write vault checkpoint: %w", err)
		}

		if err := writeIdentifierCheckpoints(ctx, tx, event); err != nil {
			return fmt.Errorf("failed to write identifier checkpoints: %w", err)
		}

		if snapshotKind(event) {
			if err := d.writeSnapshot(ctx, tx, vault, event); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}
		}

		if err := applyDepositorEffects(ctx, tx, event); err != nil {
			return fmt.Errorf("failed to apply depositor effects: %w", err)
		}

		return nil
	})
}
