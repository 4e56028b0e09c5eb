package indexer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/store"
	"github.com/openyield/vault-indexer/internal/store/schema"
)

// coordinate builds the shared ledger coordinate columns from an event
func coordinate(event *domain.VaultEvent) schema.EventCoordinate {
	return schema.EventCoordinate{
		ID:           event.CoordinateID(),
		Chain:        string(event.Chain),
		VaultAddress: domain.NormalizeAddress(event.VaultAddress),
		BlockNumber:  event.BlockNumber,
		BlockTime:    event.BlockTime,
		TxHash:       strings.ToLower(event.TxHash),
		TxIndex:      event.TxIndex,
		LogIndex:     event.LogIndex,
	}
}

// appendLedger writes the event to its kind's append-only ledger table.
// Returns false when a row with the same coordinate already exists.
func appendLedger(ctx context.Context, tx store.Store, event *domain.VaultEvent) (bool, error) {
	kind := event.Kind

	switch {
	case kind == domain.EventKindVaultCreated:
		return tx.InsertVaultCreatedEvent(ctx, &schema.VaultCreatedEvent{
			EventCoordinate: coordinate(event),
			Asset:           domain.NormalizeAddress(event.Asset),
			Owner:           domain.NormalizeAddress(event.Account),
		})

	case kind.IsConfigKind():
		return tx.InsertVaultConfigEvent(ctx, &schema.VaultConfigEvent{
			EventCoordinate: coordinate(event),
			Field:           string(kind),
			Value:           configValue(event),
			Data:            event.Data,
		})

	case kind.IsRoleKind():
		role, _ := domain.RoleForKind(kind)
		return tx.InsertVaultRoleEvent(ctx, &schema.VaultRoleEvent{
			EventCoordinate: coordinate(event),
			Role:            string(role),
			Account:         domain.NormalizeAddress(event.Account),
			Enabled:         event.Enabled,
		})

	case kind == domain.EventKindAccrueInterest:
		return tx.InsertAccrueInterestEvent(ctx, &schema.AccrueInterestEvent{
			EventCoordinate:      coordinate(event),
			NewTotalAssets:       zeroDefault(event.NewTotalAssets),
			PerformanceFeeShares: zeroDefault(event.PerformanceFeeShares),
			ManagementFeeShares:  zeroDefault(event.ManagementFeeShares),
		})

	case kind == domain.EventKindDeposit:
		return tx.InsertDepositEvent(ctx, &schema.DepositEvent{
			EventCoordinate: coordinate(event),
			Sender:          domain.NormalizeAddress(event.Sender),
			OwnerAccount:    domain.NormalizeAddress(event.OwnerAccount),
			Assets:          zeroDefault(event.Assets),
			Shares:          zeroDefault(event.Shares),
		})

	case kind == domain.EventKindWithdraw:
		return tx.InsertWithdrawEvent(ctx, &schema.WithdrawEvent{
			EventCoordinate: coordinate(event),
			Sender:          domain.NormalizeAddress(event.Sender),
			Receiver:        domain.NormalizeAddress(event.Receiver),
			OwnerAccount:    domain.NormalizeAddress(event.OwnerAccount),
			Assets:          zeroDefault(event.Assets),
			Shares:          zeroDefault(event.Shares),
		})

	case kind == domain.EventKindTransfer:
		return tx.InsertTransferEvent(ctx, &schema.TransferEvent{
			EventCoordinate: coordinate(event),
			FromAddress:     domain.NormalizeAddress(event.From),
			ToAddress:       domain.NormalizeAddress(event.To),
			Shares:          zeroDefault(event.Shares),
		})

	case kind.IsCapKind():
		return tx.InsertCapEvent(ctx, &schema.CapEvent{
			EventCoordinate: coordinate(event),
			Kind:            string(kind),
			IdentifierID:    strings.ToLower(event.IdentifierID),
			NewCap:          zeroDefault(event.Amount),
		})

	case kind.IsAllocationKind():
		identifiers, err := encodeIdentifiers(event.Identifiers)
		if err != nil {
			return false, err
		}
		return tx.InsertAllocationEvent(ctx, &schema.AllocationEvent{
			EventCoordinate: coordinate(event),
			Kind:            string(kind),
			Identifiers:     identifiers,
			Change:          zeroDefault(event.Change),
			Penalty:         zeroDefault(event.Penalty),
		})
	}

	return false, fmt.Errorf("unknown event kind: %s", kind)
}

// configValue picks the ledgered value of a configuration event: address
// payloads for address-valued fields, the raw string for name/symbol, the
// decimal amount for rates
func configValue(event *domain.VaultEvent) string {
	switch event.Kind {
	case domain.EventKindSetName, domain.EventKindSetSymbol:
		return event.Value
	case domain.EventKindSetPerformanceFee, domain.EventKindSetManagementFee,
		domain.EventKindSetMaxRate:
		return zeroDefault(event.Amount)
	default:
		return domain.NormalizeAddress(event.Account)
	}
}

func zeroDefault(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
