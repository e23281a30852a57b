package dataset

// View provides indexed, read-only access to a set of rows.
//
// Implementations:
//
//	*Dataset  the full table
//	subView   a filtered subset (indices into a parent, no copy)
type View interface {
	Len() int
	Cell(index int, column string) Cell
	HasColumn(column string) bool
	Columns() []string
}

// subView is a subset of a parent view. It holds indices only.
type subView struct {
	parent  View
	indices []int
}

// Sub returns a view over the given parent rows, in the given order.
// Indices outside the parent are dropped.
func Sub(parent View, indices []int) View {
	kept := make([]int, 0, len(indices))
	n := parent.Len()
	for _, idx := range indices {
		if idx >= 0 && idx < n {
			kept = append(kept, idx)
		}
	}
	return &subView{parent: parent, indices: kept}
}

func (v *subView) Len() int { return len(v.indices) }

func (v *subView) Cell(i int, column string) Cell {
	if i < 0 || i >= len(v.indices) {
		return Null()
	}
	return v.parent.Cell(v.indices[i], column)
}

func (v *subView) HasColumn(column string) bool { return v.parent.HasColumn(column) }
func (v *subView) Columns() []string            { return v.parent.Columns() }

// Where returns the rows of view for which keep returns true.
func Where(view View, keep func(i int) bool) View {
	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
			indices = append(indices, i)
		}
	}
	return &subView{parent: view, indices: indices}
}
