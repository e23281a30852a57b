// Package textmine turns the free-text column of a filtered view into token
// frequency tables for keyword charts and word clouds.
package textmine

import (
	"strings"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
)

// Predicate selects the rows of a view whose text is mined.
type Predicate func(view dataset.View, i int) bool

// All selects every row.
func All() Predicate {
	return func(dataset.View, int) bool { return true }
}

// Equals selects rows whose column value equals value, compared the same
// way the filter engine compares ("0" matches "0.0").
func Equals(column, value string) Predicate {
	want, wantOK := dataset.Parse(value).Canonical()
	return func(view dataset.View, i int) bool {
		got, ok := view.Cell(i, column).Canonical()
		return ok && wantOK && got == want
	}
}

// And selects rows satisfying every predicate.
func And(preds ...Predicate) Predicate {
	return func(view dataset.View, i int) bool {
		for _, p := range preds {
			if !p(view, i) {
				return false
			}
		}
		return true
	}
}

// Options tunes TokenFrequency.
type Options struct {
	// Tokenizer defaults to Whitespace.
	Tokenizer Tokenizer
	// TopK truncates the result; 0 keeps every token.
	TopK int
}

// TokenFrequency counts the tokens of textColumn over the rows selected by
// pred. It returns an empty table when the column is absent or the selected
// text is blank, so callers can show a "no data" state.
func TokenFrequency(view dataset.View, textColumn string, pred Predicate, opts Options) []TokenCount {
	if !view.HasColumn(textColumn) {
		return []TokenCount{}
	}
	return CountTokens(view, textColumn, pred, opts.Tokenizer).Top(opts.TopK)
}

// CountTokens feeds the non-blank text of every row selected by pred
// through tok. A nil pred selects all rows; a nil tok splits on whitespace.
func CountTokens(view dataset.View, textColumn string, pred Predicate, tok Tokenizer) *Counter {
	if pred == nil {
		pred = All()
	}
	if tok == nil {
		tok = Whitespace{}
	}

	counter := NewCounter()
	if !view.HasColumn(textColumn) {
		return counter
	}
	for i := 0; i < view.Len(); i++ {
		if !pred(view, i) {
			continue
		}
		cell := view.Cell(i, textColumn)
		if !cell.Valid || strings.TrimSpace(cell.Value) == "" {
			continue
		}
		counter.Process(tok.Tokenize(cell.Value))
	}
	return counter
}

// Term is one word of a word cloud.
type Term struct {
	Text   string  `json:"text"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
	Rank   int     `json:"rank"`
}

// WordCloud converts a frequency table into at most maxTerms weighted
// terms. Weight is the count relative to the most frequent term, in (0, 1].
func WordCloud(freqs []TokenCount, maxTerms int) []Term {
	if maxTerms > 0 && len(freqs) > maxTerms {
		freqs = freqs[:maxTerms]
	}
	terms := make([]Term, 0, len(freqs))
	if len(freqs) == 0 || freqs[0].Count == 0 {
		return terms
	}
	top := float64(freqs[0].Count)
	for i, f := range freqs {
		terms = append(terms, Term{
			Text:   f.Token,
			Count:  f.Count,
			Weight: float64(f.Count) / top,
			Rank:   i + 1,
		})
	}
	return terms
}
