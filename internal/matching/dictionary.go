package matching

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Dictionary is a word list used for longest-match segmentation of CJK runs.
// Product-name vocabulary (brands, component words) works better here than a
// general-purpose text dictionary, but any newline-separated word list loads.
type Dictionary struct {
	words  map[string]struct{}
	maxLen int // longest word, in runes
}

// NewDictionary builds a dictionary from a word list. Words are lowercased;
// blanks are skipped.
func NewDictionary(words []string) *Dictionary {
	d := &Dictionary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		d.words[w] = struct{}{}
		if n := len([]rune(w)); n > d.maxLen {
			d.maxLen = n
		}
	}
	return d
}

// LoadDictionary reads a dictionary from a newline-separated word list file.
// Lines starting with # are comments.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return NewDictionary(words), nil
}

// segment splits a rune run greedily: at each position the longest dictionary
// word wins, and a rune that starts no word becomes a single-character token.
func (d *Dictionary) segment(run []rune) []string {
	var out []string
	for i := 0; i < len(run); {
		matched := 0
		limit := d.maxLen
		if rest := len(run) - i; rest < limit {
			limit = rest
		}
		for n := limit; n >= 2; n-- {
			if _, ok := d.words[string(run[i:i+n])]; ok {
				matched = n
				break
			}
		}
		if matched == 0 {
			matched = 1
		}
		out = append(out, string(run[i:i+matched]))
		i += matched
	}
	return out
}
