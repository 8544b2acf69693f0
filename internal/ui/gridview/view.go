package gridview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/vgrid/internal/dataset"
	"github.com/zjrosen/vgrid/internal/grid"
)

const (
	scrollbarThumbChar = "█"
	scrollbarTrackChar = "░"
)

func rowZoneID(viewRow int) string {
	return zonePrefix + strconv.Itoa(viewRow)
}

func (m Model) View() string {
	if m.err != nil {
		return m.vs.styles.StatusError.Render("error: " + m.err.Error())
	}
	if !m.ready {
		return "loading..."
	}

	gw, gh := m.gridSize()

	var b strings.Builder
	b.WriteString(m.renderHeader(gw))
	b.WriteString("\n")

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderRows(gw, gh),
		m.renderScrollbar(gh),
	)
	b.WriteString(body)

	if m.cfg.UI.ShowStatusBar {
		b.WriteString("\n")
		b.WriteString(m.renderStatusLine())
	}

	out := b.String()
	if m.showHelp {
		out = m.renderHelpOverlay(out)
	}
	return zone.Scan(out)
}

// renderHeader draws column titles aligned with the horizontal scroll
// offset, with a sort indicator on the active column.
func (m Model) renderHeader(width int) string {
	titles := dataset.ColumnTitles()
	r := m.grid.VisibleRange()

	var cells []string
	for vc := r.StartCol; vc <= r.EndCol && vc < len(titles); vc++ {
		title := titles[vc]
		if m.sortActive && vc == m.focusedCol {
			if m.sortDesc {
				title += " ↓"
			} else {
				title += " ↑"
			}
		} else if vc == m.focusedCol {
			title = "·" + title
		}
		w := colWidths[vc]
		cells = append(cells, m.vs.styles.Header.Render(padFor(vc, title, w)))
	}

	line := strings.Join(cells, "")
	return truncate.String(line, uint(width))
}

// renderRows composes the visible window from the grid's rendered
// elements. Only rows inside the viewport proper are drawn; overscan
// rows exist in the pool but stay off screen.
func (m Model) renderRows(width, height int) string {
	r := m.grid.VisibleRange()
	cells := m.grid.RenderedCells()
	top, _ := m.grid.ScrollPosition()

	lines := make([]string, 0, height)
	for vr := top; vr < top+height; vr++ {
		if vr > r.EndRow || vr >= m.grid.ViewRowCount() {
			break
		}
		var row strings.Builder
		for vc := r.StartCol; vc <= r.EndCol; vc++ {
			if el, ok := cells[grid.CellRef{Row: vr, Col: vc}]; ok {
				row.WriteString(el.Content)
			}
		}
		line := truncate.String(row.String(), uint(width))
		lines = append(lines, zone.Mark(rowZoneID(vr), line))
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderScrollbar draws the vertical thumb over the filtered row
// extent. Thumb size tracks the visible/total ratio with a one-cell
// floor so it never vanishes on large datasets.
func (m Model) renderScrollbar(height int) string {
	total := m.grid.ViewRowCount()
	top, _ := m.grid.ScrollPosition()

	start, thumb := thumbBounds(total, height, top)

	var b strings.Builder
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteString("\n")
		}
		if i >= start && i < start+thumb {
			b.WriteString(m.vs.styles.Scrollbar.Thumb.Render(scrollbarThumbChar))
		} else {
			b.WriteString(m.vs.styles.Scrollbar.Track.Render(scrollbarTrackChar))
		}
	}
	return b.String()
}

func thumbBounds(total, viewport, offset int) (start, height int) {
	if total <= 0 || viewport <= 0 {
		return 0, 0
	}
	if total <= viewport {
		return 0, viewport
	}

	height = max(1, viewport*viewport/total)
	maxOffset := total - viewport
	track := viewport - height
	if track <= 0 || maxOffset <= 0 {
		return 0, height
	}
	start = track * offset / maxOffset
	start = max(0, min(start, viewport-height))
	return start, height
}

func (m Model) renderStatusLine() string {
	total := m.grid.Dimensions().RowCount
	visible := m.grid.ViewRowCount()
	metrics := m.grid.CacheMetrics()
	ps := m.grid.PoolStats()

	parts := []string{
		fmt.Sprintf("rows %d/%d", visible, total),
	}
	if m.filterIdx >= 0 {
		parts = append(parts, "filter: "+statusCycle[m.filterIdx])
	}
	if m.sortActive {
		dir := "asc"
		if m.sortDesc {
			dir = "desc"
		}
		parts = append(parts, "sort: "+dataset.ColumnKeys()[m.focusedCol]+" "+dir)
	}
	parts = append(parts,
		fmt.Sprintf("cache %.1f%%", metrics.HitRate()),
		fmt.Sprintf("pool %d/%d", ps.Active, ps.Total),
	)
	if m.lastPass.Pass > 0 {
		parts = append(parts, fmt.Sprintf("pass %d (%s)", m.lastPass.Pass, m.lastPass.Duration))
	}
	parts = append(parts, "? help")

	line := m.vs.styles.StatusBar.Render(strings.Join(parts, " · "))
	return truncate.String(line, uint(m.width))
}
