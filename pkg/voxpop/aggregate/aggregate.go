// Package aggregate computes KPI values and chart-ready tables over a
// filtered view. Every function probes column presence and falls back to a
// documented default, so an empty view or a missing optional column never
// produces an error.
package aggregate

import (
	"math"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
)

// Count returns the number of rows in the view.
func Count(view dataset.View) int {
	return view.Len()
}

// DistinctCount returns the number of unique non-null values in column,
// or 0 when the column is absent.
func DistinctCount(view dataset.View, column string) int {
	if !view.HasColumn(column) {
		return 0
	}
	seen := make(map[string]struct{})
	for i := 0; i < view.Len(); i++ {
		if key, ok := view.Cell(i, column).Key(); ok {
			seen[key] = struct{}{}
		}
	}
	return len(seen)
}

// Mean returns the arithmetic mean of the numeric values in column. Null
// and non-numeric cells are skipped. def is returned when the column is
// absent or holds no numeric value.
func Mean(view dataset.View, column string, def float64) float64 {
	if !view.HasColumn(column) {
		return def
	}
	var sum float64
	n := 0
	for i := 0; i < view.Len(); i++ {
		if f, ok := view.Cell(i, column).Float(); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return def
	}
	return sum / float64(n)
}

// Round rounds v to the given number of decimal digits, half away from zero.
// Aggregates keep full precision; callers round once at display time.
func Round(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
