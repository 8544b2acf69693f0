// Package rowindex composes the active filter and sort into a single
// view-row to data-row mapping. The mapping is recomputed wholesale on
// any filter, sort, or row-count change; both are global reorderings,
// so incremental patching is never attempted.
package rowindex

import (
	"sort"

	"github.com/zjrosen/vgrid/internal/log"
)

// Comparator orders two data rows. It returns a negative value when
// row a sorts before row b, zero when equal, positive otherwise.
// Comparators receive data-row indices, never view rows.
type Comparator func(a, b int) int

// Transform maps view rows (positions in the filtered+sorted
// presentation) to data rows (indices into the unfiltered dataset).
//
// The filtered domain and the sort permutation are cached separately,
// but every recompute re-derives them in dependency order: the filter
// narrows the domain first, then the comparator stable-sorts the
// filtered domain. Sorting after filtering keeps cost at O(k log k)
// for k filtered rows instead of O(n log n).
type Transform struct {
	rowCount int
	filter   []int // data rows passing the filter, in original order
	filtered bool  // a filter is active, even one keeping zero rows
	cmp      Comparator

	// viewToData is the composed mapping. nil means the identity
	// mapping over [0, rowCount).
	viewToData []int

	version uint64
}

// New creates a transform over an empty dataset. Callers set the row
// count when data arrives.
func New() *Transform {
	return &Transform{}
}

// SetRowCount establishes the size of the unfiltered dataset and
// recomputes the mapping. A previously set filter is discarded: its
// indices refer to rows that no longer denote the same data.
func (t *Transform) SetRowCount(n int) {
	t.rowCount = n
	t.filter = nil
	t.filtered = false
	t.recompute()
}

// RowCount returns the unfiltered dataset size.
func (t *Transform) RowCount() int { return t.rowCount }

// SetFilter installs the filtered domain: data-row indices passing the
// active predicate, in original data order. A nil slice clears the
// filter; a non-nil empty slice is a filter that keeps nothing and
// yields an empty presentation. Calling before SetRowCount is a warned
// no-op; external UI may legitimately fire filter changes before data
// arrives.
func (t *Transform) SetFilter(keep []int) {
	if t.rowCount == 0 {
		log.Warn(log.CatGrid, "filter applied before data; ignoring", "kept", len(keep))
		return
	}
	if keep == nil {
		t.filter = nil
		t.filtered = false
	} else {
		t.filter = make([]int, len(keep))
		copy(t.filter, keep)
		t.filtered = true
	}
	t.recompute()
}

// SetComparator installs the active sort. A nil comparator clears the
// sort. Calling before SetRowCount is a warned no-op.
func (t *Transform) SetComparator(cmp Comparator) {
	if t.rowCount == 0 {
		log.Warn(log.CatGrid, "sort applied before data; ignoring")
		return
	}
	t.cmp = cmp
	t.recompute()
}

// Len returns the number of view rows (the filtered count).
func (t *Transform) Len() int {
	if t.filtered {
		return len(t.filter)
	}
	return t.rowCount
}

// ViewToData resolves a view row to its data row. ok is false for view
// rows at or past the filtered count; that is a normal condition
// during filter/sort transitions, not an error.
func (t *Transform) ViewToData(viewRow int) (int, bool) {
	if viewRow < 0 || viewRow >= t.Len() {
		return 0, false
	}
	if t.viewToData == nil {
		return viewRow, true
	}
	return t.viewToData[viewRow], true
}

// Version increments on every recompute. The render cache is cleared
// when it changes, since (row, col) then denotes different data.
func (t *Transform) Version() uint64 { return t.version }

// recompute re-derives the composed mapping in fixed order:
// filter narrows the domain, then the comparator reorders it.
func (t *Transform) recompute() {
	t.version++

	// Fast path: no filter, no sort. The identity mapping needs no
	// allocation proportional to row count.
	if !t.filtered && t.cmp == nil {
		t.viewToData = nil
		return
	}

	var domain []int
	if t.filtered {
		domain = make([]int, len(t.filter))
		copy(domain, t.filter)
	} else {
		domain = make([]int, t.rowCount)
		for i := range domain {
			domain[i] = i
		}
	}

	if t.cmp != nil {
		// Stable so equal rows keep their original data order.
		sort.SliceStable(domain, func(i, j int) bool {
			return t.cmp(domain[i], domain[j]) < 0
		})
	}

	t.viewToData = domain
}
