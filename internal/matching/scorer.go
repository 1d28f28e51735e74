package matching

import (
	"sort"
	"unicode"
)

// modelNumberBoost is the fraction of the remaining headroom awarded when the
// two names share a model-number token (mixed letters and digits, "vk-172").
// The boost closes toward 1.0 but never reaches it, so an exact 1.0 still
// means token-set equality.
const modelNumberBoost = 0.25

// Score computes the similarity of two token sets in [0, 1]. The base signal
// is Jaccard overlap, |intersection| / |union|, which is symmetric and returns
// exactly 1.0 only when the sets are equal. A shared high-signal model-number
// token lifts the score by modelNumberBoost of the remaining headroom.
// Either set empty scores 0.0.
func Score(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	set := make(map[string]struct{}, len(a))
	for _, tok := range a {
		set[tok] = struct{}{}
	}

	inter := 0
	modelShared := false
	union := len(set)
	// b is deduped on the fly: the tokenizer emits unique tokens, but sets
	// read back from the cached column may not be.
	seen := make(map[string]struct{}, len(b))
	for _, tok := range b {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := set[tok]; ok {
			inter++
			if !modelShared && isModelNumber(tok) {
				modelShared = true
			}
		} else {
			union++
		}
	}
	if inter == 0 {
		return 0.0
	}

	jaccard := float64(inter) / float64(union)
	if jaccard < 1.0 && modelShared {
		jaccard += (1.0 - jaccard) * modelNumberBoost
	}
	return jaccard
}

// SharedTokens returns the sorted intersection of two token sets
func SharedTokens(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, tok := range a {
		set[tok] = struct{}{}
	}
	var shared []string
	for _, tok := range b {
		if _, ok := set[tok]; ok {
			shared = append(shared, tok)
			delete(set, tok)
		}
	}
	sort.Strings(shared)
	return shared
}

// isModelNumber reports whether a token looks like a model identifier:
// at least three runes mixing letters and digits.
func isModelNumber(tok string) bool {
	runes := []rune(tok)
	if len(runes) < 3 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
