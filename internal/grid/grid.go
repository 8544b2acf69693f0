// Package grid implements the windowed rendering pipeline: a viewport
// calculator, a view-row to data-row transform, a recyclable element
// pool, and a positioner that ties them together with a render cache.
// Per-frame work is proportional to the overscanned viewport area,
// never to the total row count.
package grid

import (
	"fmt"
	"time"

	"github.com/zjrosen/vgrid/internal/grid/geometry"
	"github.com/zjrosen/vgrid/internal/grid/pool"
	"github.com/zjrosen/vgrid/internal/grid/rendercache"
	"github.com/zjrosen/vgrid/internal/grid/rowindex"
	"github.com/zjrosen/vgrid/internal/log"
	"github.com/zjrosen/vgrid/internal/pubsub"
)

// State tracks the grid lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateRendering
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateRendering:
		return "rendering"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Dimensions is the logical size of the unfiltered dataset.
type Dimensions struct {
	RowCount int
	ColCount int
}

// CellRef names a cell in view coordinates.
type CellRef struct {
	Row int
	Col int
}

// RenderInfo is the payload of render lifecycle events.
type RenderInfo struct {
	Pass     uint64
	Range    geometry.Range
	Rendered int // cells that ran the render or update hook
	Reused   int // cells left untouched by the diff
	Released int // cells returned to the pool
	Duration time.Duration
}

// FlagsProvider supplies per-cell interaction state (selection,
// active, editing) in data coordinates. Owned by external
// collaborators; the grid consumes it read-only.
type FlagsProvider func(dataRow, dataCol int) rendercache.Flags

type renderedCell struct {
	el       *pool.Element
	key      rendercache.Key
	renderer CellRenderer
}

type resolvedColumn struct {
	key      string
	title    string
	renderer CellRenderer
}

// Grid is the orchestrator. It is single-threaded and cooperative:
// all methods must be called from the host's event loop.
type Grid struct {
	opts  Options
	state State

	// Per-index sizes are stored in data coordinates; the geometry
	// axes are derived from them in view order on every invalidation.
	// nil means the uniform size from Options applies.
	dataRowHeights []int
	dataColWidths  []int
	viewport       *geometry.Viewport

	transform *rowindex.Transform
	elements  *pool.Pool
	cache     *rendercache.Cache
	registry  *Registry
	columns   []resolvedColumn
	colOrder  []int // view col -> data col

	data    [][]string
	flagsFn FlagsProvider

	scrollTop  int
	scrollLeft int

	rendered    map[CellRef]*renderedCell
	lastVersion uint64
	forceNext   bool
	pass        uint64

	// Frame coalescing: the newest requested scroll target overwrites
	// any pending one; FlushFrame renders at most once per call.
	pendingRender bool
	targetTop     int
	targetLeft    int

	// Mutations arriving mid-pass are deferred until the pass
	// completes; the pass never observes state changing under it.
	rendering bool
	deferred  []func()

	broker *pubsub.Broker[RenderInfo]
}

// New constructs a grid from validated options. The grid starts
// uninitialized; call Init with the viewport size before rendering.
func New(opts Options) (*Grid, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		opts:      opts,
		state:     StateUninitialized,
		transform: rowindex.New(),
		elements:  pool.New(opts.PoolSize),
		cache:     rendercache.NewWithLimits(opts.CacheCapacity, opts.CacheMaxBytes),
		registry:  NewRegistry(),
		rendered:  make(map[CellRef]*renderedCell),
		broker:    pubsub.NewBroker[RenderInfo](),
	}
	if opts.RowHeights != nil {
		g.dataRowHeights = append([]int(nil), opts.RowHeights...)
	}
	g.dataColWidths = initialColWidths(opts)

	g.colOrder = make([]int, opts.ColCount)
	for i := range g.colOrder {
		g.colOrder[i] = i
	}

	g.transform.SetRowCount(opts.RowCount)
	g.lastVersion = g.transform.Version()
	g.rebuildAxes()

	if err := g.resolveColumns(); err != nil {
		return nil, err
	}
	return g, nil
}

// initialColWidths derives the per-column width slice when any column
// carries a fixed width, otherwise nil (uniform axis).
func initialColWidths(opts Options) []int {
	if opts.ColWidths != nil {
		return append([]int(nil), opts.ColWidths...)
	}
	if opts.Columns == nil {
		return nil
	}
	fixed := false
	for _, c := range opts.Columns {
		if c.Width > 0 {
			fixed = true
			break
		}
	}
	if !fixed {
		return nil
	}
	widths := make([]int, len(opts.Columns))
	for i, c := range opts.Columns {
		if c.Width > 0 {
			widths[i] = c.Width
		} else {
			widths[i] = opts.ColWidth
		}
	}
	return widths
}

// rebuildAxes re-derives both geometry axes from the current transform
// and column order. The row axis spans view rows (the filtered
// presentation), so scroll extent and visible-range math shrink with
// the filter. O(viewRows) for per-index heights, O(1) otherwise.
func (g *Grid) rebuildAxes() {
	n := g.transform.Len()
	var rows geometry.SizeProvider
	if g.dataRowHeights == nil {
		rows = geometry.NewUniform(n, g.opts.RowHeight)
	} else {
		sizes := make([]int, n)
		for i := range sizes {
			dr, _ := g.transform.ViewToData(i)
			sizes[i] = g.dataRowHeights[dr]
		}
		rows = geometry.NewVariable(sizes)
	}

	var cols geometry.SizeProvider
	if g.dataColWidths == nil {
		cols = geometry.NewUniform(g.opts.ColCount, g.opts.ColWidth)
	} else {
		sizes := make([]int, g.opts.ColCount)
		for i := range sizes {
			sizes[i] = g.dataColWidths[g.colOrder[i]]
		}
		cols = geometry.NewVariable(sizes)
	}

	var w, h int
	if g.viewport != nil {
		w, h = g.viewport.Width(), g.viewport.Height()
	}
	g.viewport = geometry.NewViewport(rows, cols, g.opts.OverscanRows, g.opts.OverscanCols)
	g.viewport.SetSize(w, h)
}

// resolveColumns resolves every column's renderer reference exactly
// once. Columns without config get the default text renderer.
func (g *Grid) resolveColumns() error {
	g.columns = make([]resolvedColumn, g.opts.ColCount)
	for i := range g.columns {
		var col Column
		if g.opts.Columns != nil {
			col = g.opts.Columns[i]
		}
		renderer, err := g.registry.Resolve(col.Renderer)
		if err != nil {
			return fmt.Errorf("column %d (%s): %w", i, col.Key, err)
		}
		g.columns[i] = resolvedColumn{key: col.Key, title: col.Title, renderer: renderer}
	}
	return nil
}

// Init establishes the viewport size and makes the grid renderable.
// A zero-size viewport fails loudly: callers should detect a layout
// problem instead of seeing an empty grid.
func (g *Grid) Init(viewportWidth, viewportHeight int) error {
	if g.state == StateDestroyed {
		return ErrDestroyed
	}
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return fmt.Errorf("grid: cannot initialize with viewport %dx%d", viewportWidth, viewportHeight)
	}
	g.viewport.SetSize(viewportWidth, viewportHeight)
	if g.state == StateUninitialized {
		g.state = StateInitialized
	}
	log.Debug(log.CatGrid, "initialized", "viewport", fmt.Sprintf("%dx%d", viewportWidth, viewportHeight))
	return nil
}

// Resize updates the viewport dimensions. The rebuild is flag-driven:
// geometry is updated, scroll is re-clamped, and a render is
// requested, without emitting any further resize signals.
func (g *Grid) Resize(width, height int) error {
	if g.state == StateDestroyed {
		return ErrDestroyed
	}
	if width == g.viewport.Width() && height == g.viewport.Height() {
		return nil
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("grid: cannot resize to %dx%d", width, height)
	}
	g.viewport.SetSize(width, height)
	g.clampScroll()
	g.forceNext = true
	g.RequestRender(g.scrollTop, g.scrollLeft)
	return nil
}

// State returns the lifecycle state.
func (g *Grid) State() State { return g.state }

// Events returns the broker publishing render lifecycle events.
func (g *Grid) Events() *pubsub.Broker[RenderInfo] { return g.broker }

// Dimensions returns the logical data dimensions.
func (g *Grid) Dimensions() Dimensions {
	return Dimensions{RowCount: g.transform.RowCount(), ColCount: g.opts.ColCount}
}

// ViewRowCount returns the number of rows in the current filtered
// presentation.
func (g *Grid) ViewRowCount() int { return g.transform.Len() }

// SetData replaces the backing rows. Row count, transform, geometry,
// and cache all funnel through the one recompute pipeline.
func (g *Grid) SetData(rows [][]string) {
	if g.rendering {
		g.deferred = append(g.deferred, func() { g.SetData(rows) })
		return
	}
	g.data = rows
	n := len(rows)
	if g.dataRowHeights != nil && len(g.dataRowHeights) != n {
		// Per-row heights cannot be guessed for a reshaped dataset;
		// fall back to uniform until the caller re-supplies them.
		g.dataRowHeights = nil
	}
	g.transform.SetRowCount(n)
	g.invalidate("data")
	g.broker.Publish(pubsub.DataChangedEvent, RenderInfo{Pass: g.pass})
}

// SetFilter installs the filtered domain (data-row indices in
// original order). nil clears the filter; a non-nil empty slice keeps
// zero rows and presents an empty grid.
func (g *Grid) SetFilter(keep []int) {
	if g.rendering {
		g.deferred = append(g.deferred, func() { g.SetFilter(keep) })
		return
	}
	g.transform.SetFilter(keep)
	g.invalidate("filter")
}

// SetComparator installs the active sort; nil clears it. The
// comparator receives data-row indices and survives filter changes
// untouched: a new filter re-sorts the narrowed domain with the same
// comparator.
func (g *Grid) SetComparator(cmp rowindex.Comparator) {
	if g.rendering {
		g.deferred = append(g.deferred, func() { g.SetComparator(cmp) })
		return
	}
	g.transform.SetComparator(cmp)
	g.invalidate("sort")
}

// SetColumnOrder installs the view-column to data-column mapping.
// order must be a permutation of [0, colCount). Per-column widths
// travel with their data column.
func (g *Grid) SetColumnOrder(order []int) error {
	if len(order) != g.opts.ColCount {
		return fmt.Errorf("grid: column order length %d != colCount %d", len(order), g.opts.ColCount)
	}
	seen := make([]bool, g.opts.ColCount)
	for _, c := range order {
		if c < 0 || c >= g.opts.ColCount || seen[c] {
			return fmt.Errorf("grid: column order is not a permutation")
		}
		seen[c] = true
	}
	if g.rendering {
		o := append([]int(nil), order...)
		g.deferred = append(g.deferred, func() { _ = g.SetColumnOrder(o) })
		return nil
	}
	g.colOrder = append([]int(nil), order...)
	g.rebuildAxes()
	g.cache.Clear()
	g.forceNext = true
	g.RequestRender(g.scrollTop, g.scrollLeft)
	return nil
}

// SetFlagsProvider installs the per-cell interaction flags source.
func (g *Grid) SetFlagsProvider(fn FlagsProvider) {
	g.flagsFn = fn
}

// SetTheme changes the theme identifier. The cache is cleared since
// theme participates in every fingerprint.
func (g *Grid) SetTheme(theme string) {
	if g.opts.Theme == theme {
		return
	}
	g.opts.Theme = theme
	g.cache.Clear()
	g.forceNext = true
	g.RequestRender(g.scrollTop, g.scrollLeft)
}

// RegisterRenderer installs a named renderer. Columns referencing the
// name are re-resolved.
func (g *Grid) RegisterRenderer(name string, renderer CellRenderer) error {
	g.registry.Register(name, renderer)
	return g.resolveColumns()
}

// SetColWidth updates one data column's width. Geometry offsets shift
// accordingly; no re-render is triggered here.
func (g *Grid) SetColWidth(col, width int) error {
	if col < 0 || col >= g.opts.ColCount {
		return fmt.Errorf("grid: column %d out of range", col)
	}
	if width <= 0 {
		return fmt.Errorf("grid: width must be positive, got %d", width)
	}
	if g.dataColWidths == nil {
		g.dataColWidths = make([]int, g.opts.ColCount)
		for i := range g.dataColWidths {
			g.dataColWidths[i] = g.opts.ColWidth
		}
	}
	g.dataColWidths[col] = width
	g.rebuildAxes()
	return nil
}

// SetRowHeight updates one data row's height.
func (g *Grid) SetRowHeight(row, height int) error {
	if row < 0 || row >= g.transform.RowCount() {
		return fmt.Errorf("grid: row %d out of range", row)
	}
	if height <= 0 {
		return fmt.Errorf("grid: height must be positive, got %d", height)
	}
	if g.dataRowHeights == nil {
		g.dataRowHeights = make([]int, g.transform.RowCount())
		for i := range g.dataRowHeights {
			g.dataRowHeights[i] = g.opts.RowHeight
		}
	}
	g.dataRowHeights[row] = height
	g.rebuildAxes()
	return nil
}

// ColumnPosition returns the content-space extent of a view column.
func (g *Grid) ColumnPosition(col int) (geometry.Rect, error) {
	if col < 0 || col >= g.opts.ColCount {
		return geometry.Rect{}, fmt.Errorf("grid: column %d out of range", col)
	}
	return geometry.Rect{
		X:      g.viewport.Cols().OffsetOf(col),
		Y:      0,
		Width:  g.viewport.Cols().SizeOf(col),
		Height: g.viewport.TotalHeight(),
	}, nil
}

// VisibleRange returns the range for the current scroll position.
func (g *Grid) VisibleRange() geometry.Range {
	return g.viewport.VisibleRange(g.scrollTop, g.scrollLeft)
}

// ScrollPosition returns the current scroll offsets.
func (g *Grid) ScrollPosition() (top, left int) {
	return g.scrollTop, g.scrollLeft
}

// Viewport exposes the underlying viewport model for hosts that need
// geometry queries (scrollbar math, mouse hit testing).
func (g *Grid) Viewport() *geometry.Viewport { return g.viewport }

// ViewToData resolves a view row to its backing data row. ok is false
// when the view row falls outside the filtered presentation.
func (g *Grid) ViewToData(viewRow int) (int, bool) {
	return g.transform.ViewToData(viewRow)
}

// ValueAt resolves a view cell to its data value. ok is false for
// cells outside the filtered presentation; callers treat that as a
// blank cell, not an error.
func (g *Grid) ValueAt(viewRow, viewCol int) (string, bool) {
	dataRow, ok := g.transform.ViewToData(viewRow)
	if !ok {
		return "", false
	}
	if viewCol < 0 || viewCol >= len(g.colOrder) {
		return "", false
	}
	return g.dataValue(dataRow, g.colOrder[viewCol])
}

func (g *Grid) dataValue(dataRow, dataCol int) (string, bool) {
	if dataRow < 0 || dataRow >= len(g.data) {
		return "", false
	}
	row := g.data[dataRow]
	if dataCol < 0 || dataCol >= len(row) {
		return "", false
	}
	return row[dataCol], true
}

// ScrollToCell scrolls the minimum distance that brings the view cell
// into the viewport and requests a render at the new position.
func (g *Grid) ScrollToCell(viewRow, viewCol int) error {
	if g.state == StateDestroyed {
		return ErrDestroyed
	}
	if g.state == StateUninitialized {
		return ErrNotInitialized
	}
	if viewRow < 0 || viewRow >= g.transform.Len() || viewCol < 0 || viewCol >= g.opts.ColCount {
		return fmt.Errorf("grid: cell (%d,%d) out of range", viewRow, viewCol)
	}
	g.scrollTop, g.scrollLeft = g.viewport.ScrollTo(viewRow, viewCol, g.scrollTop, g.scrollLeft)
	g.RequestRender(g.scrollTop, g.scrollLeft)
	return nil
}

// ClearCache empties the render cache without touching pooled
// elements or visible cells. The next pass runs every visible cell's
// render path and re-populates the cache.
func (g *Grid) ClearCache() {
	g.cache.Clear()
	g.forceNext = true
}

// PoolStats returns element pool occupancy.
func (g *Grid) PoolStats() pool.Stats { return g.elements.Stats() }

// CacheMetrics returns render cache counters.
func (g *Grid) CacheMetrics() rendercache.Metrics { return g.cache.GetMetrics() }

// RenderedCells returns a snapshot of the currently materialized view
// cells and their elements. Hosts use it to paint; mutating elements
// through it is not allowed.
func (g *Grid) RenderedCells() map[CellRef]*pool.Element {
	out := make(map[CellRef]*pool.Element, len(g.rendered))
	for ref, rc := range g.rendered {
		out[ref] = rc.el
	}
	return out
}

// Destroy tears the grid down: every element is released and
// discarded, the cache emptied, the event broker closed. Terminal;
// calling again is a no-op.
func (g *Grid) Destroy() {
	if g.state == StateDestroyed {
		return
	}
	for ref, rc := range g.rendered {
		rc.renderer.Destroy(rc.el)
		delete(g.rendered, ref)
	}
	g.elements.Destroy()
	g.cache.Clear()
	g.broker.Close()
	g.pendingRender = false
	g.deferred = nil
	g.state = StateDestroyed
	log.Debug(log.CatGrid, "destroyed", "passes", g.pass)
}

// invalidate is the single recompute pipeline invoked on any filter,
// sort, or data change. The transform has already re-derived itself;
// here the geometry axes are rebuilt over the new presentation, the
// cache is cleared when the mapping version moved, scroll is
// re-clamped against the new extent, and a render is requested.
func (g *Grid) invalidate(reason string) {
	g.rebuildAxes()
	if v := g.transform.Version(); v != g.lastVersion {
		g.cache.Clear()
		g.forceNext = true
		g.lastVersion = v
	}
	g.clampScroll()
	log.Debug(log.CatGrid, "invalidated", "reason", reason, "viewRows", g.transform.Len())
	g.RequestRender(g.scrollTop, g.scrollLeft)
}

func (g *Grid) clampScroll() {
	if g.scrollTop > g.viewport.MaxScrollTop() {
		g.scrollTop = g.viewport.MaxScrollTop()
	}
	if g.scrollTop < 0 {
		g.scrollTop = 0
	}
	if g.scrollLeft > g.viewport.MaxScrollLeft() {
		g.scrollLeft = g.viewport.MaxScrollLeft()
	}
	if g.scrollLeft < 0 {
		g.scrollLeft = 0
	}
}
