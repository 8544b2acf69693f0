package geometry

// Range is the set of cell indices to render for one pass.
// Bounds are inclusive on both ends and always clamped to
// [0, rowCount-1] / [0, colCount-1]. The range covers every span
// touching [scrollTop, scrollTop+viewportHeight], expanded by the
// configured overscan.
type Range struct {
	StartRow int
	EndRow   int
	StartCol int
	EndCol   int
}

// Contains reports whether the cell lies inside the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.StartRow && row <= r.EndRow && col >= r.StartCol && col <= r.EndCol
}

// Rows returns the number of rows covered by the range.
func (r Range) Rows() int { return r.EndRow - r.StartRow + 1 }

// Cols returns the number of columns covered by the range.
func (r Range) Cols() int { return r.EndCol - r.StartCol + 1 }

// Rect is a cell's position and extent in content coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Viewport combines row and column size providers with viewport
// dimensions and overscan to answer visible-range queries.
type Viewport struct {
	rows SizeProvider
	cols SizeProvider

	viewportWidth  int
	viewportHeight int
	overscanRows   int
	overscanCols   int
}

// NewViewport creates a viewport over the given axes. Viewport
// dimensions start at zero; callers must SetSize before the first
// range query (the Grid enforces this during initialization).
func NewViewport(rows, cols SizeProvider, overscanRows, overscanCols int) *Viewport {
	return &Viewport{
		rows:         rows,
		cols:         cols,
		overscanRows: overscanRows,
		overscanCols: overscanCols,
	}
}

// SetSize updates the viewport dimensions.
func (v *Viewport) SetSize(width, height int) {
	v.viewportWidth = width
	v.viewportHeight = height
}

// Width returns the viewport width.
func (v *Viewport) Width() int { return v.viewportWidth }

// Height returns the viewport height.
func (v *Viewport) Height() int { return v.viewportHeight }

// Rows returns the row axis provider.
func (v *Viewport) Rows() SizeProvider { return v.rows }

// Cols returns the column axis provider.
func (v *Viewport) Cols() SizeProvider { return v.cols }

// TotalWidth returns the full content width.
func (v *Viewport) TotalWidth() int { return v.cols.Total() }

// TotalHeight returns the full content height.
func (v *Viewport) TotalHeight() int { return v.rows.Total() }

// CellRect returns the content-space rectangle of a cell.
// O(1) for uniform axes, O(log n) for variable ones.
func (v *Viewport) CellRect(row, col int) Rect {
	return Rect{
		X:      v.cols.OffsetOf(col),
		Y:      v.rows.OffsetOf(row),
		Width:  v.cols.SizeOf(col),
		Height: v.rows.SizeOf(row),
	}
}

// VisibleRange computes the cell range to render for a scroll
// position: the spans covering [scrollTop, scrollTop+height] and
// [scrollLeft, scrollLeft+width], expanded by overscan on both ends,
// then clamped. Clamping happens after expansion so overscan is not
// silently lost at the boundaries.
func (v *Viewport) VisibleRange(scrollTop, scrollLeft int) Range {
	startRow, endRow := v.axisRange(v.rows, scrollTop, v.viewportHeight, v.overscanRows)
	startCol, endCol := v.axisRange(v.cols, scrollLeft, v.viewportWidth, v.overscanCols)
	return Range{
		StartRow: startRow,
		EndRow:   endRow,
		StartCol: startCol,
		EndCol:   endCol,
	}
}

// MaxScrollTop returns the largest useful vertical scroll position.
func (v *Viewport) MaxScrollTop() int {
	m := v.TotalHeight() - v.viewportHeight
	if m < 0 {
		return 0
	}
	return m
}

// MaxScrollLeft returns the largest useful horizontal scroll position.
func (v *Viewport) MaxScrollLeft() int {
	m := v.TotalWidth() - v.viewportWidth
	if m < 0 {
		return 0
	}
	return m
}

// ScrollTo returns the scroll position that places the cell's origin
// inside the viewport with minimal movement from the given position.
func (v *Viewport) ScrollTo(row, col, scrollTop, scrollLeft int) (int, int) {
	rect := v.CellRect(row, col)

	top := scrollTop
	if rect.Y < top {
		top = rect.Y
	} else if rect.Y+rect.Height > top+v.viewportHeight {
		top = rect.Y + rect.Height - v.viewportHeight
	}

	left := scrollLeft
	if rect.X < left {
		left = rect.X
	} else if rect.X+rect.Width > left+v.viewportWidth {
		left = rect.X + rect.Width - v.viewportWidth
	}

	return clamp(top, 0, v.MaxScrollTop()), clamp(left, 0, v.MaxScrollLeft())
}

func (v *Viewport) axisRange(axis SizeProvider, scroll, extent, overscan int) (int, int) {
	count := axis.Count()
	if count == 0 {
		return 0, -1
	}

	start := axis.IndexAt(scroll)
	// The span at the far edge of the viewport is included even when
	// only its leading pixel is visible.
	end := axis.IndexAt(scroll + extent)

	start -= overscan
	end += overscan

	return clamp(start, 0, count-1), clamp(end, 0, count-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
