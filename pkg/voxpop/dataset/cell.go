package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Cell is a single nullable value read from the input table.
type Cell struct {
	Value string
	Valid bool
}

// Null returns the null cell.
func Null() Cell { return Cell{} }

// Text wraps a non-null value.
func Text(s string) Cell { return Cell{Value: s, Valid: true} }

// nullTokens are the markers spreadsheet exports use for missing values.
var nullTokens = map[string]struct{}{
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"nil":  {},
}

// Parse converts raw field text into a Cell. Blank fields and the usual
// missing-value markers (NA, NaN, null, ...) become null.
func Parse(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Null()
	}
	if _, ok := nullTokens[strings.ToLower(trimmed)]; ok {
		return Null()
	}
	return Text(raw)
}

// Float parses the cell as a finite number.
func (c Cell) Float() (float64, bool) {
	if !c.Valid {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Key returns the identity of the cell: its trimmed text. Distinct counts
// and frequency tables group on Key, so "007" and "7" stay apart.
// Null cells have no key.
func (c Cell) Key() (string, bool) {
	if !c.Valid {
		return "", false
	}
	return strings.TrimSpace(c.Value), true
}

// maxExactDigits is the number of significant decimal digits a float64
// always round-trips.
const maxExactDigits = 15

// Canonical returns the matching key of the cell. Numbers that survive a
// round trip are rendered in their shortest form so "1" and "1.0" match.
// Integers beyond float precision, values with leading zeros, and any
// other text keep their trimmed spelling. Null cells have no key.
func (c Cell) Canonical() (string, bool) {
	s, ok := c.Key()
	if !ok {
		return "", false
	}
	if leadingZero(s) {
		return s, true
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	f, isNum := c.Float()
	if !isNum || significantDigits(s) > maxExactDigits {
		return s, true
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10), true
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// leadingZero reports whether s is spelled with a zero before another
// digit, as identifiers like "007" are.
func leadingZero(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}

// significantDigits counts the mantissa digits of a decimal literal,
// ignoring sign, exponent, and leading or trailing zeros.
func significantDigits(s string) int {
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimLeft(s, "+-")
	s = strings.Replace(s, ".", "", 1)
	s = strings.Trim(s, "0")
	return len(s)
}

// dateLayouts are tried in order; the first successful parse wins.
// Unpadded month and day fields also accept padded input.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
	"02 Jan 2006",
	"Jan 2, 2006",
}

// Date parses the cell and returns its calendar date (midnight UTC).
// Dates with an offset keep the day as written, not the UTC day.
func (c Cell) Date() (time.Time, bool) {
	if !c.Valid {
		return time.Time{}, false
	}
	s := strings.TrimSpace(c.Value)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// String returns the raw value, or "" for null.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}
