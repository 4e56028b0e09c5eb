package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/openyield/vault-indexer/internal/domain"
	"github.com/openyield/vault-indexer/internal/store"
)

// applyIdentifierState applies cap replacements and allocation deltas to the
// per-identifier tracker. Cap events replace exactly one cap column;
// allocation events apply one signed delta uniformly to every identifier in
// the payload. Force-deallocation penalties never touch allocation state.
func applyIdentifierState(ctx context.Context, tx store.Store, event *domain.VaultEvent) error {
	switch {
	case event.Kind.IsCapKind():
		column, err := capColumnForKind(event.Kind)
		if err != nil {
			return err
		}
		return tx.SetIdentifierCap(ctx, event.Chain, event.VaultAddress,
			strings.ToLower(event.IdentifierID), column, zeroDefault(event.Amount))

	case event.Kind.IsAllocationKind():
		delta, err := domain.ParseAmount(event.Change)
		if err != nil {
			return err
		}
		for _, identifierID := range event.Identifiers {
			if err := tx.AddIdentifierAllocation(ctx, event.Chain, event.VaultAddress,
				strings.ToLower(identifierID), delta); err != nil {
				return err
			}
		}
		return nil
	}

	return nil
}

// capColumnForKind maps a cap event kind to the identifier state column it
// replaces. Increase and decrease carry the replacement value either way;
// the direction only matters on chain, where it gates who may call it.
func capColumnForKind(kind domain.EventKind) (string, error) {
	switch kind {
	case domain.EventKindIncreaseAbsoluteCap, domain.EventKindDecreaseAbsoluteCap:
		return "absolute_cap", nil
	case domain.EventKindIncreaseRelativeCap, domain.EventKindDecreaseRelativeCap:
		return "relative_cap", nil
	}
	return "", fmt.Errorf("unknown cap kind: %s", kind)
}

// touchedIdentifiers lists the identifiers whose state an event mutated, in
// payload order
func touchedIdentifiers(event *domain.VaultEvent) []string {
	switch {
	case event.Kind.IsCapKind():
		return []string{strings.ToLower(event.IdentifierID)}
	case event.Kind.IsAllocationKind():
		identifiers := make([]string, len(event.Identifiers))
		for i, id := range event.Identifiers {
			identifiers[i] = strings.ToLower(id)
		}
		return identifiers
	}
	return nil
}

func encodeIdentifiers(identifiers []string) (datatypes.JSON, error) {
	lowered := make([]string, len(identifiers))
	for i, id := range identifiers {
		lowered[i] = strings.ToLower(id)
	}
	data, err := json.Marshal(lowered)
	if err != nil {
		return nil, fmt.Errorf("failed to encode identifiers: %w", err)
	}
	return datatypes.JSON(data), nil
}
