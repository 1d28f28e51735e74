package matching

import "sort"

// CatalogEntry is one canonical product fed into the index. AliasName is the
// optional foreign-language name; its tokens are unioned with the canonical
// name's so a Chinese listing can hit either form.
type CatalogEntry struct {
	ID        uint
	Name      string
	AliasName string
	SKU       string
}

type indexedEntry struct {
	CatalogEntry
	tokens []string
}

// CatalogIndex is an inverted token -> entry index over the active catalog.
// Candidate generation walks only the postings of the supplier name's tokens,
// so scoring never brute-forces the whole catalog.
type CatalogIndex struct {
	entries []indexedEntry
	byToken map[string][]int
}

// BuildCatalogIndex tokenizes every entry and builds the inverted index.
// Entries whose names tokenize to nothing are kept but unreachable: with no
// tokens they can never share one with a supplier name.
func BuildCatalogIndex(tok *Tokenizer, entries []CatalogEntry) *CatalogIndex {
	idx := &CatalogIndex{
		entries: make([]indexedEntry, 0, len(entries)),
		byToken: make(map[string][]int),
	}
	for _, e := range entries {
		tokens := tok.Tokenize(e.Name)
		if e.AliasName != "" {
			tokens = unionSorted(tokens, tok.Tokenize(e.AliasName))
		}
		i := len(idx.entries)
		idx.entries = append(idx.entries, indexedEntry{CatalogEntry: e, tokens: tokens})
		for _, t := range tokens {
			idx.byToken[t] = append(idx.byToken[t], i)
		}
	}
	return idx
}

// Len returns the number of indexed entries
func (idx *CatalogIndex) Len() int {
	return len(idx.entries)
}

// candidates returns the indices of entries sharing at least one token with
// the query, in ascending order for deterministic iteration.
func (idx *CatalogIndex) candidates(tokens []string) []int {
	seen := make(map[int]struct{})
	for _, t := range tokens {
		for _, i := range idx.byToken[t] {
			seen[i] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// unionSorted merges two sorted unique token slices into one
func unionSorted(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range [][]string{a, b} {
		for _, t := range s {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	sort.Strings(out)
	return out
}
