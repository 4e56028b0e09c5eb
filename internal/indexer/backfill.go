package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/logger"
	"github.com/openyield/vault-indexer/internal/store"
)

// ensureVault materializes the projection row for a vault referenced by an
// event before its creation event was observed. The full configuration is
// read from the chain at the event's block; when every read fails a degraded
// zero row is inserted so the event stream keeps flowing.
func (d *dispatcher) ensureVault(ctx context.Context, tx store.Store, event *domain.VaultEvent) error {
	vault, err := tx.GetVault(ctx, event.Chain, event.VaultAddress)
	if err != nil {
		return err
	}
	if vault != nil {
		return nil
	}

	logger.InfoCtx(ctx, "Backfilling unknown vault from chain reads",
		zap.String("chain", string(event.Chain)),
		zap.String("vault", event.VaultAddress),
		zap.Uint64("block", event.BlockNumber))

	row := newVaultRow(event.Chain, event.VaultAddress)
	row.Backfilled = true

	cfg, err := d.reader.VaultConfig(ctx, event.VaultAddress, event.BlockNumber)
	if err != nil {
		logger.WarnCtx(ctx, "Vault backfill reads failed, inserting degraded zero row",
			zap.String("chain", string(event.Chain)),
			zap.String("vault", event.VaultAddress),
			zap.Uint64("block", event.BlockNumber),
			zap.Error(err))
	} else {
		row.Asset = domain.NormalizeAddress(cfg.Asset)
		row.Owner = domain.NormalizeAddress(cfg.Owner)
		row.Curator = domain.NormalizeAddress(cfg.Curator)
		row.Name = cfg.Name
		row.Symbol = cfg.Symbol
		row.PerformanceFee = cfg.PerformanceFee.String()
		row.ManagementFee = cfg.ManagementFee.String()
		row.PerformanceFeeRecipient = domain.NormalizeAddress(cfg.PerformanceFeeRecipient)
		row.ManagementFeeRecipient = domain.NormalizeAddress(cfg.ManagementFeeRecipient)
		row.MaxRate = cfg.MaxRate.String()
		row.SharesGate = domain.NormalizeAddress(cfg.SharesGate)
		row.ReceiveSharesGate = domain.NormalizeAddress(cfg.ReceiveSharesGate)
		row.ReceiveAssetsGate = domain.NormalizeAddress(cfg.ReceiveAssetsGate)
		row.SendAssetsGate = domain.NormalizeAddress(cfg.SendAssetsGate)
		row.LiquidityAdapter = domain.NormalizeAddress(cfg.LiquidityAdapter)
		row.LiquidityData = cfg.LiquidityData
		row.TotalAssets = cfg.TotalAssets.String()
		row.TotalSupply = cfg.TotalSupply.String()
	}

	// A concurrent writer may have materialized the row between the read and
	// this insert; the conflict is benign either way
	if _, err := tx.CreateVault(ctx, row); err != nil {
		return fmt.Errorf("failed to insert backfilled vault: %w", err)
	}
	return nil
}
