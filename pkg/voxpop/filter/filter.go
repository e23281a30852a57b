// Package filter narrows a dataset view to the rows matching the sidebar
// selection: values within a dimension are OR-combined, dimensions are
// AND-combined.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/voxpop/pkg/voxpop/dataset"
	"github.com/cognicore/voxpop/pkg/voxpop/internalerr"
)

// Selection maps a dimension to its allowed values.
//
// A dimension that is absent imposes no constraint. A dimension that is
// present with no values excludes every row.
type Selection map[string][]string

// Set replaces the allowed values of a dimension.
func (s Selection) Set(dim string, values ...string) {
	s[dim] = append([]string{}, values...)
}

// Dimensions returns the constrained dimensions in sorted order.
func (s Selection) Dimensions() []string {
	dims := make([]string, 0, len(s))
	for d := range s {
		dims = append(dims, d)
	}
	sort.Strings(dims)
	return dims
}

// Apply returns the rows of view that satisfy every constraint in sel.
// Values match on their canonical form, so "1.0" selects a "1" row.
// Constraints on columns the view lacks are ignored; null cells never match.
func Apply(view dataset.View, sel Selection) dataset.View {
	sets := make(map[string]map[string]struct{}, len(sel))
	for dim, allowed := range sel {
		if !view.HasColumn(dim) {
			continue
		}
		sets[dim] = canonicalSet(allowed)
	}
	if len(sets) == 0 {
		return view
	}

	return dataset.Where(view, func(i int) bool {
		for dim, set := range sets {
			key, ok := view.Cell(i, dim).Canonical()
			if !ok {
				return false
			}
			if _, hit := set[key]; !hit {
				return false
			}
		}
		return true
	})
}

// Options returns the distinct non-null values of a dimension in
// first-occurrence order and original spelling, as offered by a
// multi-select control.
func Options(view dataset.View, dim string) []string {
	if !view.HasColumn(dim) {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for i := 0; i < view.Len(); i++ {
		key, ok := view.Cell(i, dim).Key()
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// DefaultSelection selects every observed value of each dimension present
// in the view, which leaves the view unfiltered.
func DefaultSelection(view dataset.View, dims []string) Selection {
	sel := make(Selection, len(dims))
	for _, dim := range dims {
		if !view.HasColumn(dim) {
			continue
		}
		sel[dim] = Options(view, dim)
	}
	return sel
}

// Parse reads "dim=v1,v2" expressions. "dim=" selects nothing for dim.
// Repeated dimensions accumulate values.
func Parse(exprs []string) (Selection, error) {
	sel := make(Selection)
	for _, expr := range exprs {
		dim, vals, ok := strings.Cut(expr, "=")
		dim = strings.TrimSpace(dim)
		if !ok || dim == "" {
			return nil, fmt.Errorf("filter %q: expected dim=value[,value]: %w", expr, internalerr.ErrInvalidInput)
		}
		values := sel[dim]
		for _, v := range strings.Split(vals, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		sel.Set(dim, values...)
	}
	return sel, nil
}

func canonicalSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if key, ok := dataset.Parse(v).Canonical(); ok {
			set[key] = struct{}{}
		}
	}
	return set
}
