// Package tokenize implements Unicode word segmentation, stopword
// filtering, and n-gram generation, per the tokenizer component spec.
package tokenize

import (
	"strings"
	"unicode"
)

// Options controls a single Tokenize call. Tokenize is a pure function of
// its text and Options — same input, same output, always.
type Options struct {
	Lowercase       bool
	RemoveStopwords bool
	MinLen          int // tokens shorter than this are dropped; 0 disables the rule
	NGramSize       int // 0 or 1 means unigrams (no joining)
}

// Default returns the conventional options used by most callers: lowercase,
// stopwords removed, minimum length 2, unigrams.
func Default() Options {
	return Options{Lowercase: true, RemoveStopwords: true, MinLen: 2, NGramSize: 1}
}

// Tokenize splits text into an ordered sequence of tokens per opts. Word
// boundaries follow Unicode word segmentation: letters and digits extend
// a word, everything else breaks it. Empty input yields an empty slice.
func Tokenize(text string, opts Options) []string {
	if text == "" {
		return nil
	}

	words := splitWords(text)

	filtered := make([]string, 0, len(words))
	for _, w := range words {
		if opts.Lowercase {
			w = strings.ToLower(w)
		}
		if opts.MinLen > 0 && len([]rune(w)) < opts.MinLen {
			continue
		}
		if opts.RemoveStopwords && stopwords[strings.ToLower(w)] {
			continue
		}
		filtered = append(filtered, w)
	}

	n := opts.NGramSize
	if n <= 1 {
		return filtered
	}
	return ngrams(filtered, n)
}

// splitWords breaks s into maximal runs of letters/digits, discarding
// everything else as a boundary.
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}

// ngrams joins adjacent tokens with a single space over a sliding window
// of size n, applied after single-token filtering.
func ngrams(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

// stopwords is the English stopword set applied when RemoveStopwords is set.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "is": true, "it": true, "as": true,
	"be": true, "was": true, "are": true, "were": true, "been": true, "has": true,
	"have": true, "had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "could": true, "should": true, "may": true, "might": true,
	"this": true, "that": true, "these": true, "those": true, "not": true,
	"no": true, "if": true, "then": true, "else": true, "when": true,
	"which": true, "who": true, "whom": true, "what": true, "where": true,
	"how": true, "all": true, "each": true, "every": true, "both": true,
	"few": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "only": true, "own": true, "same": true, "so": true,
	"than": true, "too": true, "very": true, "can": true, "just": true,
	"about": true, "into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "between": true, "up": true,
	"i": true, "you": true, "he": true, "she": true, "we": true, "they": true,
	"them": true, "their": true, "its": true, "his": true, "her": true,
	"also": true, "there": true, "here": true, "one": true, "any": true,
}
