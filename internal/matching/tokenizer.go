package matching

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// fillerWords are packaging units and marketplace noise stripped from product
// names before comparison. Mixed Romanian/English because supplier listings
// come from both eMAG-style feeds and Chinese marketplaces with English noise.
var fillerWords = map[string]struct{}{
	"pcs": {}, "pc": {}, "buc": {}, "bucati": {}, "set": {}, "lot": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "of": {},
	"de": {}, "cu": {}, "si": {}, "pentru": {},
	"new": {}, "original": {}, "hot": {}, "sale": {},
}

// Tokenizer converts raw product names into normalized, order-irrelevant
// token sets. Latin segments are lowercased words (hyphens kept inside
// alphanumeric runs so model numbers like "vk-172" survive); CJK runs are
// segmented by longest match against the dictionary when one is configured,
// per character otherwise. Malformed input degrades to an empty set.
type Tokenizer struct {
	dict *Dictionary
}

// NewTokenizer returns a tokenizer. dict may be nil, in which case CJK runs
// fall back to per-character tokens.
func NewTokenizer(dict *Dictionary) *Tokenizer {
	return &Tokenizer{dict: dict}
}

// std is the process-wide tokenizer used by the model layer's token cache.
// main installs the configured CJK dictionary here before serving requests.
var std = NewTokenizer(nil)

// Tokenize runs the default tokenizer
func Tokenize(s string) []string {
	return std.Tokenize(s)
}

// SetDefaultDictionary swaps the CJK dictionary of the default tokenizer
func SetDefaultDictionary(dict *Dictionary) {
	std = NewTokenizer(dict)
}

// Tokenize returns the sorted, de-duplicated token set for a raw name.
// Empty or whitespace-only input yields an empty set, never an error.
func (t *Tokenizer) Tokenize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	// NFKC folds fullwidth Latin and compatibility forms that are common in
	// CJK marketplace listings (ＵＳＢ -> USB).
	s := strings.ToLower(norm.NFKC.String(raw))

	seen := make(map[string]struct{})
	var tokens []string
	add := func(tok string) {
		tok = strings.Trim(tok, "-")
		if tok == "" {
			return
		}
		if _, filler := fillerWords[tok]; filler {
			return
		}
		// Single Latin letters are noise ("x" in "2 x AA")
		if len(tok) == 1 && tok[0] < 0x80 {
			return
		}
		if _, dup := seen[tok]; dup {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	var latin []rune
	var cjk []rune
	flushLatin := func() {
		if len(latin) > 0 {
			add(string(latin))
			latin = latin[:0]
		}
	}
	flushCJK := func() {
		if len(cjk) > 0 {
			for _, tok := range t.segmentCJK(cjk) {
				add(tok)
			}
			cjk = cjk[:0]
		}
	}

	for _, r := range s {
		switch {
		case isCJK(r):
			flushLatin()
			cjk = append(cjk, r)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			flushCJK()
			latin = append(latin, r)
		default:
			flushLatin()
			flushCJK()
		}
	}
	flushLatin()
	flushCJK()

	sort.Strings(tokens)
	return tokens
}

// segmentCJK splits a run of CJK runes into word tokens. With a dictionary the
// split is greedy longest-match; without one every rune is its own token.
func (t *Tokenizer) segmentCJK(run []rune) []string {
	if t.dict == nil || len(t.dict.words) == 0 {
		out := make([]string, 0, len(run))
		for _, r := range run {
			out = append(out, string(r))
		}
		return out
	}
	return t.dict.segment(run)
}

func isCJK(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}
