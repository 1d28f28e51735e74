package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex(t *testing.T, entries []CatalogEntry) *CatalogIndex {
	t.Helper()
	return BuildCatalogIndex(NewTokenizer(nil), entries)
}

func TestSuggestThresholdAndOrdering(t *testing.T) {
	// A large catalog where only a handful of entries resemble the query
	entries := make([]CatalogEntry, 0, 1000)
	for i := 0; i < 995; i++ {
		entries = append(entries, CatalogEntry{
			ID:   uint(i + 1),
			Name: fmt.Sprintf("produs generic varianta-%d culoare-%d", i, i%7),
			SKU:  fmt.Sprintf("GEN-%04d", i),
		})
	}
	near := []CatalogEntry{
		{ID: 2001, Name: "Modul GPS VK-172 USB GLONASS", SKU: "GPS-01"},
		{ID: 2002, Name: "Modul GPS VK-172 USB", SKU: "GPS-02"},
		{ID: 2003, Name: "Modul GPS USB", SKU: "GPS-03"},
		{ID: 2004, Name: "Modul GPS VK-172 USB GLONASS extern", SKU: "GPS-04"},
		{ID: 2005, Name: "Receptor GPS VK-172 USB GLONASS modul", SKU: "GPS-05"},
		{ID: 2006, Name: "Modul GPS VK-172 USB GLONASS alb", SKU: "GPS-06"},
	}
	entries = append(entries, near...)
	idx := buildTestIndex(t, entries)

	tokens := NewTokenizer(nil).Tokenize("Modul GPS VK-172 USB GLONASS")
	got, err := idx.Suggest(42, tokens, SuggestOptions{MinSimilarity: 0.85, MaxSuggestions: 5})
	require.NoError(t, err)

	assert.LessOrEqual(t, len(got), 5)
	require.NotEmpty(t, got)

	for i, s := range got {
		assert.GreaterOrEqual(t, s.Score, 0.85, "suggestion %d below threshold", i)
		assert.Equal(t, uint(42), s.SupplierProductID)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Score, s.Score, "scores must be descending")
		}
	}

	// Exact token-set match sorts first with score 1.0
	assert.Equal(t, uint(2001), got[0].CatalogProductID)
	assert.Equal(t, 1.0, got[0].Score)
}

func TestSuggestTieBreakByCatalogID(t *testing.T) {
	// Two identically-named entries tie on score and overlap; the smaller
	// catalog id wins.
	idx := buildTestIndex(t, []CatalogEntry{
		{ID: 9, Name: "senzor temperatura ds18b20", SKU: "B"},
		{ID: 3, Name: "senzor temperatura ds18b20", SKU: "A"},
	})
	tokens := NewTokenizer(nil).Tokenize("senzor temperatura ds18b20")

	got, err := idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: 0.5, MaxSuggestions: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].CatalogProductID)
	assert.Equal(t, uint(9), got[1].CatalogProductID)
}

func TestSuggestExclusions(t *testing.T) {
	idx := buildTestIndex(t, []CatalogEntry{
		{ID: 1, Name: "Modul GPS VK-172 USB GLONASS", SKU: "GPS-01"},
		{ID: 2, Name: "Modul GPS VK-172 USB", SKU: "GPS-02"},
	})
	tokens := NewTokenizer(nil).Tokenize("Modul GPS VK-172 USB GLONASS")

	// Without exclusions the exact match ranks first
	got, err := idx.Suggest(7, tokens, SuggestOptions{MinSimilarity: 0.1, MaxSuggestions: 5})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, uint(1), got[0].CatalogProductID)

	// Eliminating the top candidate removes it even though it scores highest
	got, err = idx.Suggest(7, tokens, SuggestOptions{
		MinSimilarity:  0.1,
		MaxSuggestions: 5,
		Excluded:       map[uint]struct{}{1: {}},
	})
	require.NoError(t, err)
	for _, s := range got {
		assert.NotEqual(t, uint(1), s.CatalogProductID)
	}
}

func TestSuggestEmptyResults(t *testing.T) {
	tokens := NewTokenizer(nil).Tokenize("ceva complet diferit")

	t.Run("empty catalog is success", func(t *testing.T) {
		idx := buildTestIndex(t, nil)
		got, err := idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: 0.85, MaxSuggestions: 5})
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("nothing above threshold is success", func(t *testing.T) {
		idx := buildTestIndex(t, []CatalogEntry{{ID: 1, Name: "cablu hdmi aurit", SKU: "HD-1"}})
		got, err := idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: 0.85, MaxSuggestions: 5})
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty supplier tokens is success", func(t *testing.T) {
		idx := buildTestIndex(t, []CatalogEntry{{ID: 1, Name: "cablu hdmi aurit", SKU: "HD-1"}})
		got, err := idx.Suggest(1, nil, SuggestOptions{MinSimilarity: 0.85, MaxSuggestions: 5})
		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSuggestValidation(t *testing.T) {
	idx := buildTestIndex(t, []CatalogEntry{{ID: 1, Name: "cablu hdmi", SKU: "HD-1"}})
	tokens := []string{"cablu"}

	_, err := idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: -0.1, MaxSuggestions: 5})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: 1.5, MaxSuggestions: 5})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: 0.85, MaxSuggestions: 0})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: 0.85, MaxSuggestions: -3})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSuggestDeterministicOrdering(t *testing.T) {
	entries := make([]CatalogEntry, 0, 50)
	for i := 0; i < 50; i++ {
		entries = append(entries, CatalogEntry{
			ID:   uint(i + 1),
			Name: fmt.Sprintf("modul gps usb varianta %d", i),
			SKU:  fmt.Sprintf("V-%02d", i),
		})
	}
	idx := buildTestIndex(t, entries)
	tokens := NewTokenizer(nil).Tokenize("modul gps usb")

	first, err := idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: 0.1, MaxSuggestions: 10})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: 0.1, MaxSuggestions: 10})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCatalogIndexCandidates(t *testing.T) {
	idx := buildTestIndex(t, []CatalogEntry{
		{ID: 1, Name: "cablu hdmi", SKU: "A"},
		{ID: 2, Name: "senzor temperatura", SKU: "B"},
		{ID: 3, Name: "cablu usb", SKU: "C"},
	})

	// Only entries sharing a token are candidates
	got := idx.candidates([]string{"cablu"})
	assert.Equal(t, []int{0, 2}, got)

	assert.Empty(t, idx.candidates([]string{"inexistent"}))
}

func TestCatalogIndexAliasName(t *testing.T) {
	idx := buildTestIndex(t, []CatalogEntry{
		{ID: 1, Name: "Modul GPS extern", AliasName: "外置GPS模块", SKU: "GPS-01"},
	})
	tokens := NewTokenizer(nil).Tokenize("外置GPS模块")

	got, err := idx.Suggest(1, tokens, SuggestOptions{MinSimilarity: 0.1, MaxSuggestions: 5})
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, uint(1), got[0].CatalogProductID)
}
