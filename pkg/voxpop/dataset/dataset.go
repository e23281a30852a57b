// Package dataset holds the immutable review table and the zero-copy views
// the filter and aggregate packages read through.
package dataset

import "strings"

// Dataset is the full, read-only collection of rows produced by a loader.
// It never changes after New returns; filtered views index into it.
type Dataset struct {
	source  string
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// New builds a dataset from column names and rows. Column names are trimmed.
// Rows shorter than the header are padded with nulls, longer rows are cut.
func New(source string, columns []string, rows [][]Cell) *Dataset {
	d := &Dataset{
		source:  source,
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    make([][]Cell, len(rows)),
	}
	for i, c := range columns {
		c = strings.TrimSpace(c)
		d.columns[i] = c
		if _, dup := d.index[c]; !dup {
			d.index[c] = i
		}
	}
	for i, row := range rows {
		fixed := make([]Cell, len(columns))
		copy(fixed, row)
		d.rows[i] = fixed
	}
	return d
}

// Source is the path or name the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Columns returns a copy of the column names in file order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.columns))
	copy(out, d.columns)
	return out
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Cell returns the value at row i of column name. Out-of-range rows and
// unknown columns yield a null cell.
func (d *Dataset) Cell(i int, name string) Cell {
	if i < 0 || i >= len(d.rows) {
		return Null()
	}
	col, ok := d.index[name]
	if !ok {
		return Null()
	}
	return d.rows[i][col]
}
