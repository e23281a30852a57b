package textmine

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Tokenizer splits review text into tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Whitespace splits on runs of whitespace and keeps tokens as written.
// It is the tokenizer behind the plain keyword table.
type Whitespace struct{}

// Tokenize implements Tokenizer.
func (Whitespace) Tokenize(text string) []string {
	return strings.Fields(text)
}

// Normalizer produces word-cloud style tokens: markup removed, case folded,
// punctuation dropped, stopwords and one-letter or purely numeric words
// filtered out.
type Normalizer struct {
	stops       *Stoplist
	stripMarkup bool
}

// NewNormalizer creates a normalizer filtering the given stoplist.
// A nil stoplist filters nothing.
func NewNormalizer(stops *Stoplist, stripMarkup bool) *Normalizer {
	if stops == nil {
		stops = NewStoplist(nil)
	}
	return &Normalizer{stops: stops, stripMarkup: stripMarkup}
}

// Tokenize implements Tokenizer.
func (n *Normalizer) Tokenize(text string) []string {
	if n.stripMarkup {
		text = StripMarkup(text)
	}
	// Caser keeps state between calls, so each Tokenize gets its own.
	fold := cases.Fold()

	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := n.processToken(fold.String(current.String())); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '\'' {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

// processToken applies cleaning and stopword filtering.
func (n *Normalizer) processToken(token string) string {
	word := strings.Trim(token, "-'")
	for strings.Contains(word, "--") {
		word = strings.ReplaceAll(word, "--", "-")
	}
	if len([]rune(word)) <= 1 {
		return ""
	}
	// "2023" carries nothing for a word cloud; "4g" and "covid-19" stay.
	if isNumericOnly(word) {
		return ""
	}
	if n.stops.Contains(word) {
		return ""
	}
	return word
}

// isNumericOnly returns true if the token contains only digits and hyphens.
func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}
