package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

func reviews() *dataset.Dataset {
	rows := [][]string{
		{"0", "2022", "ann"},
		{"0", "2023", "bob"},
		{"1", "2023", "cid"},
		{"1", "2024", "dee"},
		{"2", "2024", "eve"},
	}
	cells := make([][]dataset.Cell, len(rows))
	for i, r := range rows {
		for _, v := range r {
			cells[i] = append(cells[i], dataset.Parse(v))
		}
	}
	return dataset.New("mem", []string{"sentiment", "year", "user"}, cells)
}

func values(view dataset.View, col string) []string {
	var out []string
	for i := 0; i < view.Len(); i++ {
		out = append(out, view.Cell(i, col).Value)
	}
	return out
}

func TestApplyOrWithinDimension(t *testing.T) {
	view := Apply(reviews(), Selection{"sentiment": {"0", "1"}})

	assert.Equal(t, 4, view.Len())
	assert.Equal(t, []string{"ann", "bob", "cid", "dee"}, values(view, "user"))
}

func TestApplyAndAcrossDimensions(t *testing.T) {
	view := Apply(reviews(), Selection{
		"sentiment": {"0", "1"},
		"year":      {"2023"},
	})

	assert.Equal(t, []string{"bob", "cid"}, values(view, "user"))
}

func TestApplyEmptySelectionIsIdentity(t *testing.T) {
	ds := reviews()
	assert.Equal(t, ds.Len(), Apply(ds, Selection{}).Len())
	assert.Equal(t, ds.Len(), Apply(ds, nil).Len())
}

func TestApplyExplicitEmptyExcludesAll(t *testing.T) {
	view := Apply(reviews(), Selection{"sentiment": {}})
	assert.Equal(t, 0, view.Len())
}

func TestApplyMissingColumnIsNoop(t *testing.T) {
	view := Apply(reviews(), Selection{"topic_cluster": {"shipping"}})
	assert.Equal(t, 5, view.Len())
}

func TestApplyNullNeverMatches(t *testing.T) {
	ds := dataset.New("mem", []string{"sentiment"}, [][]dataset.Cell{
		{dataset.Parse("0")},
		{dataset.Null()},
		{dataset.Parse("NaN")},
	})
	view := Apply(ds, Selection{"sentiment": {"0", "", "NaN"}})
	assert.Equal(t, 1, view.Len())
}

func TestApplyNumericCanonicalMatch(t *testing.T) {
	ds := dataset.New("mem", []string{"sentiment"}, [][]dataset.Cell{
		{dataset.Parse("1.0")},
		{dataset.Parse(" 1")},
		{dataset.Parse("positive")},
	})
	assert.Equal(t, 2, Apply(ds, Selection{"sentiment": {"1"}}).Len())
	assert.Equal(t, 1, Apply(ds, Selection{"sentiment": {"positive"}}).Len())
}

func TestApplyKeepsLongIDsApart(t *testing.T) {
	ds := dataset.New("mem", []string{"user"}, [][]dataset.Cell{
		{dataset.Parse("1234567890123456789")},
		{dataset.Parse("1234567890123456788")},
		{dataset.Parse("007")},
		{dataset.Parse("7")},
	})
	view := Apply(ds, Selection{"user": {"1234567890123456789"}})
	assert.Equal(t, []string{"1234567890123456789"}, values(view, "user"))
	assert.Equal(t, []string{"7"}, values(Apply(ds, Selection{"user": {"7"}}), "user"))
	assert.Equal(t, []string{"007"}, values(Apply(ds, Selection{"user": {"007"}}), "user"))

	assert.Equal(t, []string{"1234567890123456789", "1234567890123456788", "007", "7"}, Options(ds, "user"))
}

func TestApplyIsSubsetAndSatisfiesSelection(t *testing.T) {
	ds := reviews()
	selections := []Selection{
		{"sentiment": {"2"}},
		{"year": {"2023", "2024"}},
		{"sentiment": {"0"}, "year": {"2024"}},
		{"sentiment": {"9"}},
	}
	for _, sel := range selections {
		view := Apply(ds, sel)
		require.LessOrEqual(t, view.Len(), ds.Len())
		for i := 0; i < view.Len(); i++ {
			for dim, allowed := range sel {
				key, ok := view.Cell(i, dim).Canonical()
				require.True(t, ok)
				assert.Contains(t, allowed, key)
			}
		}
	}
}

func TestDefaultSelectionKeepsEverything(t *testing.T) {
	ds := reviews()
	sel := DefaultSelection(ds, []string{"sentiment", "year", "missing"})

	assert.Equal(t, []string{"0", "1", "2"}, sel["sentiment"])
	assert.Equal(t, []string{"2022", "2023", "2024"}, sel["year"])
	_, hasMissing := sel["missing"]
	assert.False(t, hasMissing)
	assert.Equal(t, ds.Len(), Apply(ds, sel).Len())
}

func TestParse(t *testing.T) {
	sel, err := Parse([]string{"sentiment=0, 1", "year=2023", "year=2024", "topic_cluster="})
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "1"}, sel["sentiment"])
	assert.Equal(t, []string{"2023", "2024"}, sel["year"])
	assert.Equal(t, []string{}, sel["topic_cluster"])
	assert.Equal(t, []string{"sentiment", "topic_cluster", "year"}, sel.Dimensions())

	_, err = Parse([]string{"sentiment"})
	assert.True(t, errors.Is(err, internalerr.ErrInvalidInput))
}

func TestSetCopiesValues(t *testing.T) {
	vals := []string{"0"}
	sel := Selection{}
	sel.Set("sentiment", vals...)
	vals[0] = "1"
	assert.Equal(t, []string{"0"}, sel["sentiment"])

	sel.Set("year")
	assert.NotNil(t, sel["year"])
	assert.Empty(t, sel["year"])
}
