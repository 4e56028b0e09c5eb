package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/logger"
	"github.com/openyield/vault-indexer/internal/store"
	"github.com/openyield/vault-indexer/internal/store/schema"
)

// applyProjection mutates the current-state vault projection for one event.
// Accounting fields only move for the closed set of accounting kinds; every
// other kind replaces configuration or role state.
func applyProjection(ctx context.Context, tx store.Store, event *domain.VaultEvent) error {
	kind := event.Kind

	switch {
	case kind == domain.EventKindVaultCreated:
		return applyVaultCreated(ctx, tx, event)

	case kind.IsConfigKind():
		updates, err := configUpdates(event)
		if err != nil {
			return err
		}
		return tx.SetVaultFields(ctx, event.Chain, event.VaultAddress, updates)

	case kind.IsRoleKind():
		role, _ := domain.RoleForKind(kind)
		return tx.ToggleVaultRole(ctx, event.Chain, event.VaultAddress, role,
			domain.NormalizeAddress(event.Account), event.Enabled)

	case kind == domain.EventKindAccrueInterest:
		return tx.SetVaultTotalAssets(ctx, event.Chain, event.VaultAddress,
			zeroDefault(event.NewTotalAssets), event.BlockTime)

	case kind == domain.EventKindDeposit:
		assets, err := domain.ParseAmount(event.Assets)
		if err != nil {
			return err
		}
		return tx.AdjustVaultTotals(ctx, event.Chain, event.VaultAddress, assets, nil)

	case kind == domain.EventKindWithdraw:
		assets, err := domain.ParseAmount(event.Assets)
		if err != nil {
			return err
		}
		return tx.AdjustVaultTotals(ctx, event.Chain, event.VaultAddress, assets.Neg(assets), nil)

	case kind == domain.EventKindTransfer:
		return applyTransferSupply(ctx, tx, event)
	}

	// Cap and allocation kinds leave the vault projection untouched
	return nil
}

// applyVaultCreated inserts the projection row. When a backfilled row beat
// the creation event to the table, only the creation facts are replaced; the
// backfilled configuration is already current as of a later block.
func applyVaultCreated(ctx context.Context, tx store.Store, event *domain.VaultEvent) error {
	row := newVaultRow(event.Chain, event.VaultAddress)
	row.Asset = domain.NormalizeAddress(event.Asset)
	row.Owner = domain.NormalizeAddress(event.Account)
	row.CreatedBlock = event.BlockNumber
	row.CreatedTime = event.BlockTime
	row.CreatedTxHash = event.TxHash

	created, err := tx.CreateVault(ctx, row)
	if err != nil {
		return err
	}
	if created {
		return nil
	}

	logger.InfoCtx(ctx, "Creation event observed for backfilled vault, restoring creation facts",
		zap.String("chain", string(event.Chain)),
		zap.String("vault", event.VaultAddress))

	return tx.SetVaultFields(ctx, event.Chain, event.VaultAddress, map[string]interface{}{
		"asset":           domain.NormalizeAddress(event.Asset),
		"created_block":   event.BlockNumber,
		"created_time":    event.BlockTime,
		"created_tx_hash": event.TxHash,
		"backfilled":      false,
	})
}

// configUpdates maps a configuration event kind to the projection column it
// replaces
func configUpdates(event *domain.VaultEvent) (map[string]interface{}, error) {
	switch event.Kind {
	case domain.EventKindSetOwner:
		return map[string]interface{}{"owner": domain.NormalizeAddress(event.Account)}, nil
	case domain.EventKindSetCurator:
		return map[string]interface{}{"curator": domain.NormalizeAddress(event.Account)}, nil
	case domain.EventKindSetName:
		return map[string]interface{}{"name": event.Value}, nil
	case domain.EventKindSetSymbol:
		return map[string]interface{}{"symbol": event.Value}, nil
	case domain.EventKindSetPerformanceFee:
		return map[string]interface{}{"performance_fee": zeroDefault(event.Amount)}, nil
	case domain.EventKindSetManagementFee:
		return map[string]interface{}{"management_fee": zeroDefault(event.Amount)}, nil
	case domain.EventKindSetPerformanceFeeRecipient:
		return map[string]interface{}{"performance_fee_recipient": domain.NormalizeAddress(event.Account)}, nil
	case domain.EventKindSetManagementFeeRecipient:
		return map[string]interface{}{"management_fee_recipient": domain.NormalizeAddress(event.Account)}, nil
	case domain.EventKindSetMaxRate:
		return map[string]interface{}{"max_rate": zeroDefault(event.Amount)}, nil
	case domain.EventKindSetSharesGate:
		return map[string]interface{}{"shares_gate": domain.NormalizeAddress(event.Account)}, nil
	case domain.EventKindSetReceiveSharesGate:
		return map[string]interface{}{"receive_shares_gate": domain.NormalizeAddress(event.Account)}, nil
	case domain.EventKindSetReceiveAssetsGate:
		return map[string]interface{}{"receive_assets_gate": domain.NormalizeAddress(event.Account)}, nil
	case domain.EventKindSetSendAssetsGate:
		return map[string]interface{}{"send_assets_gate": domain.NormalizeAddress(event.Account)}, nil
	case domain.EventKindSetLiquidityAdapter:
		return map[string]interface{}{
			"liquidity_adapter": domain.NormalizeAddress(event.Account),
			"liquidity_data":    event.Data,
		}, nil
	}
	return nil, fmt.Errorf("unknown configuration kind: %s", event.Kind)
}

// applyTransferSupply adjusts total supply for the mint and burn legs of a
// transfer. Pure transfers move balances between accounts without changing
// supply; zero-to-zero transfers are ledgered but never applied.
func applyTransferSupply(ctx context.Context, tx store.Store, event *domain.VaultEvent) error {
	shares, err := domain.ParseAmount(event.Shares)
	if err != nil {
		return err
	}

	switch domain.ClassifyTransfer(event.From, event.To) {
	case domain.TransferClassMint:
		return tx.AdjustVaultTotals(ctx, event.Chain, event.VaultAddress, nil, shares)
	case domain.TransferClassBurn:
		return tx.AdjustVaultTotals(ctx, event.Chain, event.VaultAddress, nil, shares.Neg(shares))
	case domain.TransferClassNoop:
		logger.WarnCtx(ctx, "Ignoring zero-to-zero transfer",
			zap.String("coordinate", event.CoordinateID()))
	}
	return nil
}

// newVaultRow builds a projection row with explicit zero-state defaults
func newVaultRow(chain domain.Chain, address string) *schema.Vault {
	allocators, _ := schema.EncodeRoleSet(nil)
	sentinels, _ := schema.EncodeRoleSet(nil)
	adapters, _ := schema.EncodeRoleSet(nil)

	return &schema.Vault{
		Chain:          string(chain),
		Address:        domain.NormalizeAddress(address),
		PerformanceFee: "0",
		ManagementFee:  "0",
		MaxRate:        "0",
		Allocators:     allocators,
		Sentinels:      sentinels,
		Adapters:       adapters,
		TotalAssets:    "0",
		TotalSupply:    "0",
	}
}
