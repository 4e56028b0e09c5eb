package indexer

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/logger"
	"github.com/openyield/vault-indexer/internal/store"
	"github.com/openyield/vault-indexer/internal/store/schema"
)

var wad, _ = new(big.Int).SetString(domain.WAD, 10)

// snapshotKind reports whether an event produces a historical snapshot row.
// Every state-relevant kind does, including mints and burns; pure transfers
// and the ill-formed zero-to-zero case change nothing a snapshot records.
func snapshotKind(event *domain.VaultEvent) bool {
	if event.Kind != domain.EventKindTransfer {
		return true
	}
	switch domain.ClassifyTransfer(event.From, event.To) {
	case domain.TransferClassMint, domain.TransferClassBurn:
		return true
	}
	return false
}

// writeSnapshot appends one denormalized snapshot row carrying the entire
// post-event vault state plus the aggregated per-identifier maps
func (d *dispatcher) writeSnapshot(ctx context.Context, tx store.Store, vault *schema.Vault, event *domain.VaultEvent) error {
	allocations, absoluteCaps, relativeCaps, err := d.identifierMaps(ctx, tx, event)
	if err != nil {
		return err
	}

	sharePrice, err := rawSharePrice(vault.TotalAssets, vault.TotalSupply)
	if err != nil {
		return err
	}

	canonical, fallback := d.canonicalSharePrice(ctx, event, sharePrice)

	return tx.InsertVaultSnapshot(ctx, &schema.VaultSnapshot{
		ID:           event.CoordinateID(),
		Chain:        string(event.Chain),
		VaultAddress: domain.NormalizeAddress(event.VaultAddress),
		BlockNumber:  event.BlockNumber,
		BlockTime:    event.BlockTime,
		TxHash:       strings.ToLower(event.TxHash),
		TxIndex:      event.TxIndex,
		LogIndex:     event.LogIndex,
		EventKind:    string(event.Kind),

		TotalAssets:         vault.TotalAssets,
		TotalSupply:         vault.TotalSupply,
		SharePrice:          sharePrice.String(),
		CanonicalSharePrice: canonical.String(),
		PriceFallback:       fallback,

		Allocations:  allocations,
		AbsoluteCaps: absoluteCaps,
		RelativeCaps: relativeCaps,

		Allocators: vault.Allocators,
		Sentinels:  vault.Sentinels,
		Adapters:   vault.Adapters,

		Owner:                   vault.Owner,
		Curator:                 vault.Curator,
		Name:                    vault.Name,
		Symbol:                  vault.Symbol,
		PerformanceFee:          vault.PerformanceFee,
		ManagementFee:           vault.ManagementFee,
		PerformanceFeeRecipient: vault.PerformanceFeeRecipient,
		ManagementFeeRecipient:  vault.ManagementFeeRecipient,
		MaxRate:                 vault.MaxRate,
		SharesGate:              vault.SharesGate,
		ReceiveSharesGate:       vault.ReceiveSharesGate,
		ReceiveAssetsGate:       vault.ReceiveAssetsGate,
		SendAssetsGate:          vault.SendAssetsGate,
		LiquidityAdapter:        vault.LiquidityAdapter,
		LiquidityData:           vault.LiquidityData,
	})
}

// identifierMaps aggregates the vault's full identifier state into three
// canonical JSON maps keyed by identifier hash
func (d *dispatcher) identifierMaps(ctx context.Context, tx store.Store, event *domain.VaultEvent) (datatypes.JSON, datatypes.JSON, datatypes.JSON, error) {
	states, err := tx.ListIdentifierStates(ctx, event.Chain, event.VaultAddress)
	if err != nil {
		return nil, nil, nil, err
	}

	allocations := make(map[string]string, len(states))
	absoluteCaps := make(map[string]string, len(states))
	relativeCaps := make(map[string]string, len(states))
	for _, state := range states {
		allocations[state.IdentifierID] = state.Allocation
		absoluteCaps[state.IdentifierID] = state.AbsoluteCap
		relativeCaps[state.IdentifierID] = state.RelativeCap
	}

	allocationsJSON, err := d.canonicalJSON(allocations)
	if err != nil {
		return nil, nil, nil, err
	}
	absoluteCapsJSON, err := d.canonicalJSON(absoluteCaps)
	if err != nil {
		return nil, nil, nil, err
	}
	relativeCapsJSON, err := d.canonicalJSON(relativeCaps)
	if err != nil {
		return nil, nil, nil, err
	}

	return allocationsJSON, absoluteCapsJSON, relativeCapsJSON, nil
}

// canonicalJSON marshals and canonicalizes a map so byte-identical state
// always produces byte-identical snapshot columns
func (d *dispatcher) canonicalJSON(v interface{}) (datatypes.JSON, error) {
	data, err := d.json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot map: %w", err)
	}
	canonical, err := d.jcs.Transform(data)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize snapshot map: %w", err)
	}
	return datatypes.JSON(canonical), nil
}

// rawSharePrice computes the WAD-scaled assets-per-share ratio from the
// projection, defining the empty vault as exactly one asset per share
func rawSharePrice(totalAssets, totalSupply string) (*big.Int, error) {
	assets, err := domain.ParseAmount(totalAssets)
	if err != nil {
		return nil, err
	}
	supply, err := domain.ParseAmount(totalSupply)
	if err != nil {
		return nil, err
	}

	if supply.Sign() == 0 {
		return new(big.Int).Set(wad), nil
	}

	price := new(big.Int).Mul(assets, wad)
	return price.Quo(price, supply), nil
}

// canonicalSharePrice asks the vault contract itself to price one WAD of
// shares at the event's block. The chain read is best-effort; a failure
// falls back to the raw ratio and marks the row, never failing the event.
func (d *dispatcher) canonicalSharePrice(ctx context.Context, event *domain.VaultEvent, raw *big.Int) (*big.Int, bool) {
	canonical, err := d.reader.ConvertToAssets(ctx, event.VaultAddress, new(big.Int).Set(wad), event.BlockNumber)
	if err != nil {
		logger.WarnCtx(ctx, "Canonical share price read failed, falling back to raw ratio",
			zap.String("coordinate", event.CoordinateID()),
			zap.String("vault", event.VaultAddress),
			zap.Error(err))
		return raw, true
	}
	return canonical, false
}
