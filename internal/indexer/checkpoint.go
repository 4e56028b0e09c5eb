package indexer

import (
	"context"
	"strings"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/store"
	"github.com/openyield/vault-indexer/internal/store/schema"
)

// writeVaultCheckpoint appends an immutable copy of the projection as it
// stands after the event was applied. The projection row is re-read by the
// caller inside the same transaction, so the copy is exact.
func writeVaultCheckpoint(ctx context.Context, tx store.Store, vault *schema.Vault, event *domain.VaultEvent) error {
	return tx.InsertVaultCheckpoint(ctx, &schema.VaultCheckpoint{
		ID:           event.CoordinateID(),
		Chain:        string(event.Chain),
		VaultAddress: domain.NormalizeAddress(event.VaultAddress),
		BlockNumber:  event.BlockNumber,
		BlockTime:    event.BlockTime,
		TxHash:       strings.ToLower(event.TxHash),
		TxIndex:      event.TxIndex,
		LogIndex:     event.LogIndex,
		EventKind:    string(event.Kind),

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
		Allocators:              vault.Allocators,
		Sentinels:               vault.Sentinels,
		Adapters:                vault.Adapters,
		TotalAssets:             vault.TotalAssets,
		TotalSupply:             vault.TotalSupply,
		LastUpdateTime:          vault.LastUpdateTime,
	})
}

// writeIdentifierCheckpoints appends post-event copies of every identifier
// state the event touched. Multi-identifier events suffix the coordinate
// with the identifier's payload position to keep checkpoint keys unique.
func writeIdentifierCheckpoints(ctx context.Context, tx store.Store, event *domain.VaultEvent) error {
	identifiers := touchedIdentifiers(event)
	if len(identifiers) == 0 {
		return nil
	}

	multi := len(identifiers) > 1

	for i, identifierID := range identifiers {
		state, err := tx.GetIdentifierState(ctx, event.Chain, event.VaultAddress, identifierID)
		if err != nil {
			return err
		}

		checkpoint := &schema.IdentifierCheckpoint{
			ID:           event.CoordinateID(),
			Chain:        string(event.Chain),
			VaultAddress: domain.NormalizeAddress(event.VaultAddress),
			IdentifierID: identifierID,
			BlockNumber:  event.BlockNumber,
			BlockTime:    event.BlockTime,
			TxHash:       strings.ToLower(event.TxHash),
			TxIndex:      event.TxIndex,
			LogIndex:     event.LogIndex,
			EventKind:    string(event.Kind),
			AbsoluteCap:  "0",
			RelativeCap:  "0",
			Allocation:   "0",
		}
		if multi {
			checkpoint.ID = event.SubCoordinateID(i)
		}
		if state != nil {
			checkpoint.AbsoluteCap = state.AbsoluteCap
			checkpoint.RelativeCap = state.RelativeCap
			checkpoint.Allocation = state.Allocation
		}

		if err := tx.InsertIdentifierCheckpoint(ctx, checkpoint); err != nil {
			return err
		}
	}

	return nil
}
