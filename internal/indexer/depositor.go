package indexer

import (
	"context"
	"math/big"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/store"
)

// applyDepositorEffects maintains the per-account depositor ledger. Deposits
// and withdrawals move the counters and cumulative accumulators of the
// credited or debited owner; share balances move exclusively with transfer
// events, whose mint and burn legs accompany every deposit and withdrawal.
func applyDepositorEffects(ctx context.Context, tx store.Store, event *domain.VaultEvent) error {
	switch event.Kind {
	case domain.EventKindDeposit:
		assets, err := domain.ParseAmount(event.Assets)
		if err != nil {
			return err
		}
		shares, err := domain.ParseAmount(event.Shares)
		if err != nil {
			return err
		}
		return tx.ApplyDepositorDeposit(ctx, depositorTouch(event, event.OwnerAccount), assets, shares)

	case domain.EventKindWithdraw:
		assets, err := domain.ParseAmount(event.Assets)
		if err != nil {
			return err
		}
		shares, err := domain.ParseAmount(event.Shares)
		if err != nil {
			return err
		}
		return tx.ApplyDepositorWithdraw(ctx, depositorTouch(event, event.OwnerAccount), assets, shares)

	case domain.EventKindTransfer:
		return applyTransferBalances(ctx, tx, event)
	}

	return nil
}

// applyTransferBalances moves share balances between depositor rows. Mints
// only credit the recipient, burns only debit the sender, and the
// zero-to-zero case moves nothing.
func applyTransferBalances(ctx context.Context, tx store.Store, event *domain.VaultEvent) error {
	shares, err := domain.ParseAmount(event.Shares)
	if err != nil {
		return err
	}

	if !domain.IsZeroAddress(event.From) {
		debit := new(big.Int).Neg(shares)
		if err := tx.AdjustDepositorBalance(ctx, depositorTouch(event, event.From), debit); err != nil {
			return err
		}
	}

	if !domain.IsZeroAddress(event.To) {
		if err := tx.AdjustDepositorBalance(ctx, depositorTouch(event, event.To), shares); err != nil {
			return err
		}
	}

	return nil
}

func depositorTouch(event *domain.VaultEvent, account string) store.DepositorTouch {
	return store.DepositorTouch{
		Chain:        event.Chain,
		VaultAddress: domain.NormalizeAddress(event.VaultAddress),
		Account:      domain.NormalizeAddress(account),
		BlockNumber:  event.BlockNumber,
		BlockTime:    event.BlockTime,
		TxHash:       event.TxHash,
	}
}
