package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// newLargeViewport mirrors the reference scenario: 100,000 rows x 10
// columns, uniform rowHeight=30, colWidth=80, viewport 800x600,
// overscan 3 rows / 2 cols.
func newLargeViewport() *Viewport {
	v := NewViewport(NewUniform(100_000, 30), NewUniform(10, 80), 3, 2)
	v.SetSize(800, 600)
	return v
}

func TestViewport_VisibleRangeAtTop(t *testing.T) {
	v := newLargeViewport()

	r := v.VisibleRange(0, 0)

	// 20 visible rows plus the boundary row plus 3 overscan below;
	// the top clamp prevents negative underflow.
	require.Equal(t, 0, r.StartRow)
	require.Equal(t, 23, r.EndRow)
	require.Equal(t, 0, r.StartCol)
	require.Equal(t, 9, r.EndCol)
}

func TestViewport_VisibleRangeScrolled(t *testing.T) {
	v := newLargeViewport()

	r := v.VisibleRange(3000, 0)

	require.Equal(t, 97, r.StartRow)
	require.Equal(t, 123, r.EndRow)
}

func TestViewport_VisibleRangeClampsAtBottom(t *testing.T) {
	v := NewViewport(NewUniform(30, 30), NewUniform(4, 80), 3, 2)
	v.SetSize(320, 600)

	r := v.VisibleRange(10_000, 10_000)

	require.Equal(t, 29, r.EndRow, "end row clamps to last row")
	require.Equal(t, 3, r.EndCol, "end col clamps to last col")
	require.LessOrEqual(t, r.StartRow, r.EndRow)
	require.GreaterOrEqual(t, r.StartRow, 0)
}

func TestViewport_OverscanExpandsBeforeClamping(t *testing.T) {
	v := NewViewport(NewUniform(100, 30), NewUniform(10, 80), 3, 2)
	v.SetSize(800, 600)

	// Mid-content: overscan applies on both ends.
	r := v.VisibleRange(1500, 0)
	require.Equal(t, 50-3, r.StartRow)
	require.Equal(t, 70+3, r.EndRow)
}

func TestViewport_CellRect(t *testing.T) {
	v := newLargeViewport()

	rect := v.CellRect(5, 2)

	require.Equal(t, Rect{X: 160, Y: 150, Width: 80, Height: 30}, rect)
}

func TestViewport_CellRectVariableSizes(t *testing.T) {
	rows := NewVariable([]int{10, 20, 30})
	cols := NewVariable([]int{50, 100})
	v := NewViewport(rows, cols, 0, 0)
	v.SetSize(150, 60)

	require.Equal(t, Rect{X: 50, Y: 30, Width: 100, Height: 30}, v.CellRect(2, 1))
	require.Equal(t, 60, v.TotalHeight())
	require.Equal(t, 150, v.TotalWidth())
}

func TestViewport_ScrollToBringsCellIntoView(t *testing.T) {
	v := newLargeViewport()

	top, left := v.ScrollTo(500, 0, 0, 0)
	r := v.VisibleRange(top, left)
	require.True(t, r.Contains(500, 0), "range %+v should contain row 500", r)

	// Scrolling to an already-visible cell does not move.
	top2, left2 := v.ScrollTo(500, 0, top, left)
	require.Equal(t, top, top2)
	require.Equal(t, left, left2)
}

func TestRange_Contains(t *testing.T) {
	r := Range{StartRow: 5, EndRow: 10, StartCol: 1, EndCol: 3}

	require.True(t, r.Contains(5, 1))
	require.True(t, r.Contains(10, 3))
	require.False(t, r.Contains(4, 2))
	require.False(t, r.Contains(11, 2))
	require.False(t, r.Contains(7, 0))
	require.Equal(t, 6, r.Rows())
	require.Equal(t, 3, r.Cols())
}

func TestProperty_RangeCoversViewportAndStaysClamped(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rowCount := rapid.IntRange(1, 5000).Draw(rt, "rowCount")
		rowHeight := rapid.IntRange(1, 50).Draw(rt, "rowHeight")
		height := rapid.IntRange(1, 1000).Draw(rt, "height")
		overscan := rapid.IntRange(0, 10).Draw(rt, "overscan")
		scrollTop := rapid.IntRange(0, rowCount*rowHeight).Draw(rt, "scrollTop")

		rows := NewUniform(rowCount, rowHeight)
		v := NewViewport(rows, NewUniform(1, 10), overscan, 0)
		v.SetSize(10, height)

		r := v.VisibleRange(scrollTop, 0)

		// Clamped to valid indices.
		require.GreaterOrEqual(rt, r.StartRow, 0)
		require.Less(rt, r.EndRow, rowCount)
		require.LessOrEqual(rt, r.StartRow, r.EndRow)

		// The range covers [scrollTop, scrollTop+height] in row terms.
		require.LessOrEqual(rt, rows.OffsetOf(r.StartRow), min(scrollTop, rows.OffsetOf(rowCount-1)))
		if r.EndRow < rowCount-1 {
			require.Greater(rt, rows.OffsetOf(r.EndRow)+rows.SizeOf(r.EndRow), min(scrollTop+height, rows.Total()-1))
		}
	})
}

func TestProperty_ScrollToRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rowCount := rapid.IntRange(1, 2000).Draw(rt, "rowCount")
		colCount := rapid.IntRange(1, 50).Draw(rt, "colCount")
		row := rapid.IntRange(0, rowCount-1).Draw(rt, "row")
		col := rapid.IntRange(0, colCount-1).Draw(rt, "col")

		v := NewViewport(NewUniform(rowCount, 30), NewUniform(colCount, 80), 3, 2)
		v.SetSize(400, 300)

		top, left := v.ScrollTo(row, col, 0, 0)
		r := v.VisibleRange(top, left)

		require.True(rt, r.Contains(row, col), "range %+v should contain (%d,%d)", r, row, col)
	})
}
