package textmine

import "sort"

// TokenCount is one row of a token frequency table.
type TokenCount struct {
	Token string `json:"token"`
	Count int    `json:"count"`
	// Docs is the number of reviews the token appears in.
	Docs int `json:"docs"`
}

// Counter accumulates token counts across reviews, remembering the order in
// which tokens were first seen.
type Counter struct {
	totalDocs int
	counts    map[string]int
	docFreq   map[string]int
	order     []string
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		counts:  make(map[string]int),
		docFreq: make(map[string]int),
	}
}

// Process consumes one review's tokens.
func (c *Counter) Process(tokens []string) {
	c.totalDocs++

	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if _, ok := c.counts[tok]; !ok {
			c.order = append(c.order, tok)
		}
		c.counts[tok]++
		if _, ok := seen[tok]; !ok {
			seen[tok] = struct{}{}
			c.docFreq[tok]++
		}
	}
}

// TotalDocs returns the number of processed reviews.
func (c *Counter) TotalDocs() int { return c.totalDocs }

// Top returns the k most frequent tokens, ties in first-seen order.
// k <= 0 returns every token.
func (c *Counter) Top(k int) []TokenCount {
	out := make([]TokenCount, 0, len(c.order))
	for _, tok := range c.order {
		out = append(out, TokenCount{Token: tok, Count: c.counts[tok], Docs: c.docFreq[tok]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// DocFrequency is a token's share of processed reviews.
type DocFrequency struct {
	Token     string  `json:"token"`
	Docs      int     `json:"docs"`
	DFPercent float64 `json:"df_percent"`
}

// HighDF returns tokens that appear in at least minPercent of the reviews,
// most widespread first. Such tokens carry little signal in a word cloud
// and are stoplist candidates. limit <= 0 returns all of them.
func (c *Counter) HighDF(minPercent float64, limit int) []DocFrequency {
	out := []DocFrequency{}
	if c.totalDocs == 0 {
		return out
	}
	for _, tok := range c.order {
		pct := 100 * float64(c.docFreq[tok]) / float64(c.totalDocs)
		if pct >= minPercent {
			out = append(out, DocFrequency{Token: tok, Docs: c.docFreq[tok], DFPercent: pct})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Docs > out[j].Docs
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
