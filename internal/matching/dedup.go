package matching

import (
	"fmt"
	"sort"
	"strings"
)

// SourceRow is one supplier listing at the import boundary, after spreadsheet
// or JSON parsing but before persistence. Explicit fields, validated early,
// rather than loose row maps from the parsers.
type SourceRow struct {
	SupplierID uint    `json:"supplier_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Currency   string  `json:"currency"`
	URL        string  `json:"url"`
	Source     string  `json:"source"`
}

// Validate checks the required fields of an import row
func (r SourceRow) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: row name is required", ErrValidation)
	}
	if r.Price < 0 {
		return fmt.Errorf("%w: row price %g is negative", ErrValidation, r.Price)
	}
	if strings.TrimSpace(r.Source) == "" {
		return fmt.Errorf("%w: row source tag is required", ErrValidation)
	}
	return nil
}

// SourceBatch is one import source's rows plus its priority. Higher-priority
// batches win conflicts; equal priorities fall back to input order.
type SourceBatch struct {
	Source   string      `json:"source"`
	Priority int         `json:"priority"`
	Rows     []SourceRow `json:"rows"`
}

// Deduplicate collapses rows from multiple import sources that refer to the
// same real-world listing. The key is the normalized source URL when present,
// else (normalized name, price to two decimals). It is a pure function over
// its inputs: no state survives between calls. Must run before scoring, or the
// same listing would already have produced duplicate suggestions under two
// supplier-product ids.
func Deduplicate(batches []SourceBatch) []SourceRow {
	order := make([]int, len(batches))
	for i := range order {
		order[i] = i
	}
	// Stable: equal priorities keep caller order
	sort.SliceStable(order, func(a, b int) bool {
		return batches[order[a]].Priority > batches[order[b]].Priority
	})

	seen := make(map[string]struct{})
	var out []SourceRow
	for _, bi := range order {
		batch := batches[bi]
		for _, row := range batch.Rows {
			if row.Source == "" {
				row.Source = batch.Source
			}
			key := dedupKey(row)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, row)
		}
	}
	return out
}

func dedupKey(r SourceRow) string {
	if u := normalizeURL(r.URL); u != "" {
		return "url:" + u
	}
	name := strings.Join(Tokenize(r.Name), " ")
	return fmt.Sprintf("np:%s|%.2f", name, r.Price)
}

// normalizeURL trims, lowercases and strips scheme, www and trailing slash,
// so the same listing address from two spreadsheets keys identically.
func normalizeURL(u string) string {
	u = strings.ToLower(strings.TrimSpace(u))
	if u == "" {
		return ""
	}
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return strings.TrimSuffix(u, "/")
}
