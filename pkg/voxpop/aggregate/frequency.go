package aggregate

import (
	"sort"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
)

// Frequency is one row of a value-count table.
type Frequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ValueFrequency counts the non-null values of column, most frequent first.
// Ties keep first-occurrence order. topK <= 0 returns every value.
func ValueFrequency(view dataset.View, column string, topK int) []Frequency {
	if !view.HasColumn(column) {
		return []Frequency{}
	}
	counts := make(map[string]int)
	var order []string
	for i := 0; i < view.Len(); i++ {
		key, ok := view.Cell(i, column).Key()
		if !ok {
			continue
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	out := make([]Frequency, 0, len(order))
	for _, key := range order {
		out = append(out, Frequency{Value: key, Count: counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}
