package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func TestTokenizeMixedScript(t *testing.T) {
	tok := NewTokenizer(nil)

	tokens := tok.Tokenize("VK-172 GMOUSE USB GPS/GLONASS外置GPS模块")
	assert.NotEmpty(t, tokens)

	set := tokenSet(tokens)
	for _, want := range []string{"vk-172", "usb", "gps", "gmouse", "glonass"} {
		assert.Contains(t, set, want)
	}
	// Without a dictionary, the CJK runs fall back to per-character tokens
	for _, want := range []string{"外", "置", "模", "块"} {
		assert.Contains(t, set, want)
	}
}

func TestTokenizeEmptyAndGarbage(t *testing.T) {
	tok := NewTokenizer(nil)

	t.Run("empty input yields empty set", func(t *testing.T) {
		assert.Empty(t, tok.Tokenize(""))
		assert.Empty(t, tok.Tokenize("   \t\n"))
	})

	t.Run("pure punctuation yields empty set", func(t *testing.T) {
		assert.Empty(t, tok.Tokenize("!!! ,,, ///"))
	})
}

func TestTokenizeNormalization(t *testing.T) {
	tok := NewTokenizer(nil)

	t.Run("lowercases and collapses duplicates", func(t *testing.T) {
		tokens := tok.Tokenize("USB Cable usb CABLE")
		assert.Equal(t, []string{"cable", "usb"}, tokens)
	})

	t.Run("strips filler words", func(t *testing.T) {
		tokens := tok.Tokenize("10 pcs senzor temperatura 5 buc")
		set := tokenSet(tokens)
		assert.NotContains(t, set, "pcs")
		assert.NotContains(t, set, "buc")
		assert.Contains(t, set, "senzor")
	})

	t.Run("folds fullwidth latin", func(t *testing.T) {
		tokens := tok.Tokenize("ＵＳＢ充电器")
		assert.Contains(t, tokenSet(tokens), "usb")
	})

	t.Run("drops single latin letters", func(t *testing.T) {
		tokens := tok.Tokenize("2 x AA baterie")
		set := tokenSet(tokens)
		assert.NotContains(t, set, "x")
		assert.Contains(t, set, "aa")
	})

	t.Run("keeps hyphen inside model numbers", func(t *testing.T) {
		tokens := tok.Tokenize("Modul GPS VK-172")
		assert.Contains(t, tokenSet(tokens), "vk-172")
	})
}

func TestTokenizeWithDictionary(t *testing.T) {
	dict := NewDictionary([]string{"外置", "模块"})
	tok := NewTokenizer(dict)

	tokens := tok.Tokenize("USB GPS外置模块")
	set := tokenSet(tokens)
	assert.Contains(t, set, "外置")
	assert.Contains(t, set, "模块")
	assert.NotContains(t, set, "外")
	assert.NotContains(t, set, "模")
}

func TestDictionarySegmentFallback(t *testing.T) {
	dict := NewDictionary([]string{"模块"})

	// The leading rune starts no dictionary word and stays a single token
	got := dict.segment([]rune("外模块"))
	assert.Equal(t, []string{"外", "模块"}, got)
}

func TestTokenizeDeterministic(t *testing.T) {
	tok := NewTokenizer(nil)
	name := "VK-172 GMOUSE USB GPS/GLONASS外置GPS模块"

	first := tok.Tokenize(name)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, tok.Tokenize(name))
	}
}
