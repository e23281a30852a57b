package aggregate

import (
	"sort"
	"time"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
)

// DatePoint is the mean of a value column over one calendar day.
type DatePoint struct {
	Date  time.Time `json:"date"`
	Mean  float64   `json:"mean"`
	Count int       `json:"count"`
}

// DateBucketedMean groups rows by the calendar date of dateColumn and
// averages the numeric values of valueColumn per day. Rows with an
// unparseable date or a non-numeric value are skipped. Points are returned
// in strictly increasing date order.
func DateBucketedMean(view dataset.View, dateColumn, valueColumn string) []DatePoint {
	if !view.HasColumn(dateColumn) || !view.HasColumn(valueColumn) {
		return []DatePoint{}
	}

	type bucket struct {
		sum float64
		n   int
	}
	buckets := make(map[time.Time]*bucket)
	for i := 0; i < view.Len(); i++ {
		day, ok := view.Cell(i, dateColumn).Date()
		if !ok {
			continue
		}
		v, ok := view.Cell(i, valueColumn).Float()
		if !ok {
			continue
		}
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		b.sum += v
		b.n++
	}

	out := make([]DatePoint, 0, len(buckets))
	for day, b := range buckets {
		out = append(out, DatePoint{Date: day, Mean: b.sum / float64(b.n), Count: b.n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
