package aggregate

import (
	"sort"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
)

// Table is a row-limited projection of selected columns.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// RecentRows projects the requested columns of at most limit rows, newest
// first. When sortColumn is present rows are ordered by its date, with
// unparseable dates last; otherwise the last rows of the view come first.
// Requested columns the view lacks are left out.
func RecentRows(view dataset.View, columns []string, limit int, sortColumn string) Table {
	var cols []string
	for _, c := range columns {
		if view.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	table := Table{Columns: cols, Rows: [][]string{}}
	if len(cols) == 0 || limit <= 0 {
		return table
	}

	n := view.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = n - 1 - i
	}
	if sortColumn != "" && view.HasColumn(sortColumn) {
		sort.SliceStable(order, func(a, b int) bool {
			da, okA := view.Cell(order[a], sortColumn).Date()
			db, okB := view.Cell(order[b], sortColumn).Date()
			switch {
			case okA && okB:
				return da.After(db)
			case okA:
				return true
			default:
				return false
			}
		})
	}
	if len(order) > limit {
		order = order[:limit]
	}

	recent := dataset.Sub(view, order)
	for i := 0; i < recent.Len(); i++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = recent.Cell(i, c).String()
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
