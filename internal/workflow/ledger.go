package workflow

import (
	"context"

	"matching-service/internal/model"
)

// Eliminate permanently blacklists a supplier-product / catalog-product
// pairing. Idempotent: re-eliminating an eliminated pair succeeds and leaves
// a single row. There is deliberately no un-eliminate; reversing the decision
// happens through an explicit confirm, which is separately audited.
func (e *Engine) Eliminate(ctx context.Context, supplierProductID, catalogProductID uint, actor, reason string) error {
	return e.store.CreateElimination(ctx, &model.EliminatedSuggestion{
		SupplierProductID: supplierProductID,
		CatalogProductID:  catalogProductID,
		Actor:             actor,
		Reason:            reason,
	})
}

// RejectSuggestion is the operator-facing name for Eliminate: the suggestion
// disappears from this supplier product forever, while the product's own
// match status is untouched.
func (e *Engine) RejectSuggestion(ctx context.Context, supplierProductID, catalogProductID uint, actor, reason string) error {
	return e.Eliminate(ctx, supplierProductID, catalogProductID, actor, reason)
}

// IsEliminated reports whether a pairing is on the denylist
func (e *Engine) IsEliminated(ctx context.Context, supplierProductID, catalogProductID uint) (bool, error) {
	return e.store.IsEliminated(ctx, supplierProductID, catalogProductID)
}
