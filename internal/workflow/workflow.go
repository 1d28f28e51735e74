package workflow

import (
	"context"
	"fmt"

	"matching-service/internal/matching"
	"matching-service/internal/model"
	"matching-service/pkg/config"
)

// Engine drives a supplier product from unmatched to confirmed: suggestion
// generation, manual confirmation, bulk auto-confirmation and elimination.
// Suggestions are recomputed per call against the current catalog snapshot;
// only MatchLink and EliminatedSuggestion rows are durable.
type Engine struct {
	store Store
	tok   *matching.Tokenizer
	cfg   config.MatchingConfig
}

// New builds an engine over a store
func New(store Store, tok *matching.Tokenizer, cfg config.MatchingConfig) *Engine {
	return &Engine{store: store, tok: tok, cfg: cfg}
}

// ProductSuggestions pairs one unmatched supplier product with its current
// top candidates.
type ProductSuggestions struct {
	Product     model.SupplierProduct `json:"product"`
	Suggestions []matching.Suggestion `json:"suggestions"`
}

// BulkFailure records one item that failed during bulk auto-confirmation
type BulkFailure struct {
	SupplierProductID uint   `json:"supplier_product_id"`
	Error             string `json:"error"`
}

// BulkResult summarizes a bulk auto-confirmation pass
type BulkResult struct {
	Examined  int           `json:"examined"`
	Confirmed int           `json:"confirmed"`
	Failures  []BulkFailure `json:"failures"`
}

// catalogIndex loads the active catalog and builds the inverted token index.
// Built once per request so every product in the request scores against the
// same snapshot.
func (e *Engine) catalogIndex(ctx context.Context) (*matching.CatalogIndex, error) {
	products, err := e.store.ActiveCatalog(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]matching.CatalogEntry, 0, len(products))
	for _, p := range products {
		entries = append(entries, matching.CatalogEntry{
			ID:        p.ID,
			Name:      p.Name,
			AliasName: p.AliasName,
			SKU:       p.SKU,
		})
	}
	return matching.BuildCatalogIndex(e.tok, entries), nil
}

// options builds suggestion options. MinSimilarity is taken as given — zero
// is a real threshold meaning "any shared token" — while a zero MaxSuggestions
// falls back to the configured count.
func (e *Engine) options(minSimilarity float64, maxSuggestions int) matching.SuggestOptions {
	opts := matching.SuggestOptions{MinSimilarity: minSimilarity, MaxSuggestions: maxSuggestions}
	if opts.MaxSuggestions == 0 {
		opts.MaxSuggestions = e.cfg.MaxSuggestions
	}
	return opts
}

// SuggestionsFor computes the current candidates for one supplier product.
// Pure read: match status is untouched.
func (e *Engine) SuggestionsFor(ctx context.Context, supplierProductID uint, minSimilarity float64, maxSuggestions int) ([]matching.Suggestion, error) {
	sp, err := e.store.SupplierProduct(ctx, supplierProductID)
	if err != nil {
		return nil, err
	}
	idx, err := e.catalogIndex(ctx)
	if err != nil {
		return nil, err
	}
	opts := e.options(minSimilarity, maxSuggestions)
	opts.Excluded, err = e.store.EliminatedFor(ctx, supplierProductID)
	if err != nil {
		return nil, err
	}
	return idx.Suggest(sp.ID, sp.Tokens(), opts)
}

// UnmatchedWithSuggestions pages the unmatched pool of one supplier and
// annotates each product with its suggestions. Products whose top candidates
// were all eliminated come back with an empty suggestion list — still part of
// the pool, just nothing left to offer.
func (e *Engine) UnmatchedWithSuggestions(ctx context.Context, supplierID uint, minSimilarity float64, maxSuggestions, skip, limit int) ([]ProductSuggestions, int64, error) {
	if skip < 0 || limit < 0 {
		return nil, 0, fmt.Errorf("%w: skip and limit must be non-negative", matching.ErrValidation)
	}
	opts := e.options(minSimilarity, maxSuggestions)

	products, total, err := e.store.UnmatchedSupplierProducts(ctx, supplierID, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	idx, err := e.catalogIndex(ctx)
	if err != nil {
		return nil, 0, err
	}

	out := make([]ProductSuggestions, 0, len(products))
	for _, sp := range products {
		itemOpts := opts
		itemOpts.Excluded, err = e.store.EliminatedFor(ctx, sp.ID)
		if err != nil {
			return nil, 0, err
		}
		suggestions, err := idx.Suggest(sp.ID, sp.Tokens(), itemOpts)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, ProductSuggestions{Product: sp, Suggestions: suggestions})
	}
	return out, total, nil
}

// ConfirmManual links a supplier product to a catalog product by operator
// decision. Confirming the already-linked catalog product is a no-op success;
// confirming a different one supersedes the prior link.
func (e *Engine) ConfirmManual(ctx context.Context, supplierProductID, catalogProductID uint, actor string, priceOverride *float64) (*model.MatchLink, error) {
	return e.store.ConfirmLink(ctx, supplierProductID, catalogProductID, model.MethodManual, actor, nil, priceOverride)
}

// SetPriceOverride edits the price override on an existing active link
func (e *Engine) SetPriceOverride(ctx context.Context, supplierProductID uint, price *float64) (*model.MatchLink, error) {
	return e.store.SetPriceOverride(ctx, supplierProductID, price)
}

// ConfirmBulkAuto scans the unmatched pool (one supplier's when supplierID is
// set, everyone's when 0) and confirms every product whose best suggestion
// scores at or above threshold. Threshold must lie in (0, 1]; a zero threshold
// would confirm on any token overlap and is rejected rather than reinterpreted.
// Each item runs in its own transaction; one failure never rolls back or
// aborts the rest.
func (e *Engine) ConfirmBulkAuto(ctx context.Context, supplierID uint, threshold float64) (*BulkResult, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: threshold %g outside (0,1]", matching.ErrValidation, threshold)
	}

	products, _, err := e.store.UnmatchedSupplierProducts(ctx, supplierID, 0, 0)
	if err != nil {
		return nil, err
	}
	idx, err := e.catalogIndex(ctx)
	if err != nil {
		return nil, err
	}

	result := &BulkResult{}
	for _, sp := range products {
		result.Examined++

		excluded, err := e.store.EliminatedFor(ctx, sp.ID)
		if err != nil {
			result.Failures = append(result.Failures, BulkFailure{SupplierProductID: sp.ID, Error: err.Error()})
			continue
		}
		suggestions, err := idx.Suggest(sp.ID, sp.Tokens(), matching.SuggestOptions{
			MinSimilarity:  threshold,
			MaxSuggestions: 1,
			Excluded:       excluded,
		})
		if err != nil {
			result.Failures = append(result.Failures, BulkFailure{SupplierProductID: sp.ID, Error: err.Error()})
			continue
		}
		if len(suggestions) == 0 {
			continue
		}

		best := suggestions[0]
		score := best.Score
		if _, err := e.store.ConfirmLink(ctx, sp.ID, best.CatalogProductID, model.MethodAuto, "auto", &score, nil); err != nil {
			result.Failures = append(result.Failures, BulkFailure{SupplierProductID: sp.ID, Error: err.Error()})
			continue
		}
		result.Confirmed++
	}
	return result, nil
}

// ImportBatches validates, deduplicates and persists supplier rows gathered
// from one or more import sources. Dedup runs before anything reaches the
// scorer, so one real-world listing gets exactly one supplier product id.
func (e *Engine) ImportBatches(ctx context.Context, batches []matching.SourceBatch) (int, error) {
	rows := matching.Deduplicate(batches)
	products := make([]model.SupplierProduct, 0, len(rows))
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return 0, err
		}
		products = append(products, model.SupplierProduct{
			SupplierID:  row.SupplierID,
			Name:        row.Name,
			Price:       row.Price,
			Currency:    row.Currency,
			SourceURL:   row.URL,
			Source:      row.Source,
			MatchStatus: model.StatusUnmatched,
		})
	}
	if err := e.store.CreateSupplierProducts(ctx, products); err != nil {
		return 0, err
	}
	return len(products), nil
}
