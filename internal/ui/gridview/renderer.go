package gridview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vgrid/internal/grid"
	"github.com/zjrosen/vgrid/internal/grid/pool"
	"github.com/zjrosen/vgrid/internal/ui/styles"
)

// Column indices in dataset order.
const (
	colID = iota
	colName
	colStatus
	colPriority
	colUpdated
	colScore
)

// viewState is shared between the model and the cell renderer so a
// theme switch or selection move is visible to in-flight renders
// without rebuilding the grid. Bubbletea models are values; this is
// the one pointer that survives copies.
type viewState struct {
	theme        *styles.Theme
	styles       styles.Styles
	selectedData int
}

// cellRenderer turns a data value into a styled, width-padded cell.
// All styling flows from the shared view state so cached output stays
// keyed by theme name.
type cellRenderer struct {
	vs *viewState
}

func (r *cellRenderer) Render(ctx grid.CellContext) string {
	text := padFor(ctx.DataCol, ctx.Value, ctx.Rect.Width)
	return r.styleFor(ctx).Render(text)
}

func (r *cellRenderer) Update(ctx grid.CellContext, _ string) string {
	return r.Render(ctx)
}

func (r *cellRenderer) Destroy(_ *pool.Element) {}

func (r *cellRenderer) styleFor(ctx grid.CellContext) lipgloss.Style {
	st := r.vs.styles
	base := st.Cell
	switch ctx.DataCol {
	case colID, colScore:
		base = st.CellNumber
	case colUpdated:
		base = st.CellDate
	}
	switch {
	case ctx.Flags.Editing:
		return st.RowEditing.Inherit(base)
	case ctx.Flags.Active:
		return st.RowActive.Inherit(base)
	case ctx.Flags.Selected:
		return st.RowSelected.Inherit(base)
	case ctx.ViewRow%2 == 1:
		return st.RowZebra.Inherit(base)
	default:
		return base
	}
}

func padFor(dataCol int, value string, width int) string {
	switch dataCol {
	case colID, colScore:
		return styles.PadCellRight(value, width)
	default:
		return styles.PadCell(value, width)
	}
}
