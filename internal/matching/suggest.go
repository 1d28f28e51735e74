package matching

import (
	"fmt"
	"sort"
)

// Suggestion is a scored candidate pairing. Suggestions are computed per
// request and never persisted; only eliminations and confirmed links are.
type Suggestion struct {
	SupplierProductID uint     `json:"supplier_product_id"`
	CatalogProductID  uint     `json:"catalog_product_id"`
	CatalogName       string   `json:"catalog_name"`
	SKU               string   `json:"sku"`
	Score             float64  `json:"score"`
	SharedTokens      []string `json:"shared_tokens"`
}

// SuggestOptions controls suggestion generation. Excluded carries the catalog
// product ids already eliminated for this supplier product.
type SuggestOptions struct {
	MinSimilarity  float64
	MaxSuggestions int
	Excluded       map[uint]struct{}
}

func (o SuggestOptions) validate() error {
	if o.MinSimilarity < 0 || o.MinSimilarity > 1 {
		return fmt.Errorf("%w: min_similarity %g outside [0,1]", ErrValidation, o.MinSimilarity)
	}
	if o.MaxSuggestions <= 0 {
		return fmt.Errorf("%w: max_suggestions %d must be positive", ErrValidation, o.MaxSuggestions)
	}
	return nil
}

// Suggest returns the top candidates for one supplier product's token set,
// descending by score, then by shared token count, then by catalog id — a
// fixed order so repeated requests over the same catalog snapshot agree.
// An empty result is success, not an error.
func (idx *CatalogIndex) Suggest(supplierProductID uint, tokens []string, opts SuggestOptions) ([]Suggestion, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(tokens) == 0 || len(idx.entries) == 0 {
		return nil, nil
	}

	var out []Suggestion
	for _, i := range idx.candidates(tokens) {
		entry := idx.entries[i]
		if _, skip := opts.Excluded[entry.ID]; skip {
			continue
		}
		score := Score(tokens, entry.tokens)
		if score < opts.MinSimilarity {
			continue
		}
		out = append(out, Suggestion{
			SupplierProductID: supplierProductID,
			CatalogProductID:  entry.ID,
			CatalogName:       entry.Name,
			SKU:               entry.SKU,
			Score:             score,
			SharedTokens:      SharedTokens(tokens, entry.tokens),
		})
	}

	sort.Slice(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		if len(out[a].SharedTokens) != len(out[b].SharedTokens) {
			return len(out[a].SharedTokens) > len(out[b].SharedTokens)
		}
		return out[a].CatalogProductID < out[b].CatalogProductID
	})

	if len(out) > opts.MaxSuggestions {
		out = out[:opts.MaxSuggestions]
	}
	return out, nil
}
