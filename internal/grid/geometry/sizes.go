// Package geometry provides the pure viewport math for the grid:
// per-axis size providers, offset lookup, and visible-range calculation.
// Nothing in this package renders or owns elements; it only answers
// "where is cell (row, col)" and "which cells does this scroll position show".
package geometry

import "sort"

// SizeProvider supplies sizes along a single axis (row heights or
// column widths). Offsets are monotonically non-decreasing and
// IndexAt is the inverse of OffsetOf up to rounding.
type SizeProvider interface {
	// Count returns the number of indices on the axis.
	Count() int
	// SizeOf returns the size of the span at index.
	SizeOf(index int) int
	// OffsetOf returns the starting offset of the span at index.
	OffsetOf(index int) int
	// IndexAt returns the index whose span contains offset.
	// Offsets before the first span map to 0; offsets at or past the
	// end map to Count()-1.
	IndexAt(offset int) int
	// Total returns the sum of all spans.
	Total() int
}

// Uniform is a SizeProvider where every span has the same size.
// All lookups are O(1).
type Uniform struct {
	count int
	size  int
}

// NewUniform creates a uniform provider. count and size must be positive;
// the owning Grid validates its options before constructing providers.
func NewUniform(count, size int) *Uniform {
	return &Uniform{count: count, size: size}
}

func (u *Uniform) Count() int          { return u.count }
func (u *Uniform) SizeOf(int) int      { return u.size }
func (u *Uniform) OffsetOf(i int) int  { return i * u.size }
func (u *Uniform) Total() int          { return u.count * u.size }

func (u *Uniform) IndexAt(offset int) int {
	if offset <= 0 || u.count == 0 {
		return 0
	}
	i := offset / u.size
	if i >= u.count {
		return u.count - 1
	}
	return i
}

// SetCount resizes the axis, keeping the span size.
func (u *Uniform) SetCount(count int) { u.count = count }

// Variable is a SizeProvider with per-index sizes. Offsets are prefix
// sums, computed lazily and invalidated from the first changed index.
// OffsetOf and IndexAt are O(log n) in the worst case after a mutation
// (one linear rebuild of the stale tail, then binary search).
type Variable struct {
	sizes   []int
	offsets []int // offsets[i] = start of span i; offsets[count] = total
	validTo int   // offsets[0..validTo] are current
}

// NewVariable creates a variable provider from per-index sizes.
// The slice is copied; later mutations go through SetSize.
func NewVariable(sizes []int) *Variable {
	v := &Variable{
		sizes:   append([]int(nil), sizes...),
		offsets: make([]int, len(sizes)+1),
		validTo: 0,
	}
	return v
}

func (v *Variable) Count() int { return len(v.sizes) }

func (v *Variable) SizeOf(i int) int { return v.sizes[i] }

func (v *Variable) OffsetOf(i int) int {
	v.ensure(i)
	return v.offsets[i]
}

func (v *Variable) Total() int {
	v.ensure(len(v.sizes))
	return v.offsets[len(v.sizes)]
}

func (v *Variable) IndexAt(offset int) int {
	if len(v.sizes) == 0 {
		return 0
	}
	if offset <= 0 {
		return 0
	}
	v.ensure(len(v.sizes))
	// First index whose end offset exceeds the target.
	i := sort.Search(len(v.sizes), func(i int) bool {
		return v.offsets[i+1] > offset
	})
	if i >= len(v.sizes) {
		return len(v.sizes) - 1
	}
	return i
}

// SetSize updates the span at index and invalidates cached offsets at
// and beyond it. It does not trigger any re-render; that is the
// caller's responsibility.
func (v *Variable) SetSize(index, size int) {
	v.sizes[index] = size
	if v.validTo > index {
		v.validTo = index
	}
}

// ensure extends the valid prefix of the offset cache through index i.
func (v *Variable) ensure(i int) {
	if i <= v.validTo {
		return
	}
	for j := v.validTo; j < i; j++ {
		v.offsets[j+1] = v.offsets[j] + v.sizes[j]
	}
	v.validTo = i
}
