// Package gridview is the bubbletea host for the grid: it owns
// scrolling input, selection, sort and filter toggles, and composes
// the rendered cells into terminal output once per frame.
package gridview

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/vgrid/internal/config"
	"github.com/zjrosen/vgrid/internal/dataset"
	"github.com/zjrosen/vgrid/internal/grid"
	"github.com/zjrosen/vgrid/internal/grid/rendercache"
	"github.com/zjrosen/vgrid/internal/keys"
	"github.com/zjrosen/vgrid/internal/log"
	"github.com/zjrosen/vgrid/internal/pubsub"
	"github.com/zjrosen/vgrid/internal/ui/styles"
)

// Column widths in terminal cells, dataset order.
var colWidths = []int{6, 22, 12, 5, 17, 8}

const (
	frameInterval = 16 * time.Millisecond
	wheelStep     = 3
	hScrollStep   = 8
	zonePrefix    = "gridview:row:"
)

// frameMsg drives the coalesced render loop: however many scroll
// requests arrived since the last frame, at most one pass runs.
type frameMsg struct{}

// ConfigReloadedMsg is sent by the host when the config file changed
// on disk and AutoReload is on.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// Model is the grid view.
type Model struct {
	grid *grid.Grid
	data *dataset.Dataset
	keys keys.KeyMap
	cfg  *config.Config
	vs   *viewState

	width  int
	height int
	ready  bool

	selectedView int
	focusedCol   int // view column the sort toggle applies to

	sortActive bool
	sortDesc   bool
	filterIdx  int // index into statusCycle; -1 means no filter

	showHelp bool

	lastPass grid.RenderInfo
	listener *pubsub.ContinuousListener[grid.RenderInfo]
	cancel   context.CancelFunc

	onGridReady func(*grid.Grid)

	err error
}

var statusCycle = dataset.Statuses()

// Option configures the model at construction.
type Option func(*Model)

// WithGridReady registers a callback invoked once the grid exists,
// after the first WindowSizeMsg. Observers (tracing, tests) hook the
// grid's event broker here.
func WithGridReady(fn func(*grid.Grid)) Option {
	return func(m *Model) { m.onGridReady = fn }
}

// New builds the model. The grid itself is created on the first
// WindowSizeMsg, once the terminal size is known.
func New(cfg *config.Config, opts ...Option) (Model, error) {
	theme, err := styles.NewTheme(cfg.Theme.Preset, cfg.Theme.FlattenedColors(), cfg.Theme.Mode)
	if err != nil {
		return Model{}, err
	}

	vs := &viewState{
		theme:        theme,
		styles:       theme.Build(),
		selectedData: -1,
	}

	m := Model{
		data:      dataset.Generate(cfg.Data.Rows, cfg.Data.Seed),
		keys:      keys.DefaultKeyMap(),
		cfg:       cfg,
		vs:        vs,
		filterIdx: -1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m, nil
}

// Grid exposes the underlying grid for observers (tracing, tests).
// Nil until the first WindowSizeMsg arrives.
func (m Model) Grid() *grid.Grid { return m.grid }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case frameMsg:
		return m.handleFrame()
	case pubsub.Event[grid.RenderInfo]:
		if msg.Type == pubsub.RenderEndEvent {
			m.lastPass = msg.Payload
		}
		return m, m.listener.Listen()
	case ConfigReloadedMsg:
		return m.handleConfigReload(msg.Config)
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	gw, gh := m.gridSize()
	if m.grid == nil {
		return m.buildGrid(gw, gh)
	}
	if err := m.grid.Resize(gw, gh); err != nil {
		m.err = err
	}
	return m, m.frameTick()
}

// gridSize carves the grid viewport out of the terminal: one line of
// header, an optional status line, one column for the scrollbar.
func (m Model) gridSize() (w, h int) {
	w = m.width - 1
	h = m.height - 1
	if m.cfg.UI.ShowStatusBar {
		h--
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (m Model) buildGrid(w, h int) (tea.Model, tea.Cmd) {
	renderer := &cellRenderer{vs: m.vs}

	cols := make([]grid.Column, len(colWidths))
	keysList := dataset.ColumnKeys()
	titles := dataset.ColumnTitles()
	for i := range cols {
		cols[i] = grid.Column{
			Key:      keysList[i],
			Title:    titles[i],
			Width:    colWidths[i],
			Renderer: grid.Instance(renderer),
		}
	}

	g, err := grid.New(grid.Options{
		RowCount:      m.data.Len(),
		ColCount:      len(cols),
		RowHeight:     1,
		ColWidth:      10,
		Columns:       cols,
		OverscanRows:  m.cfg.Grid.OverscanRows,
		OverscanCols:  m.cfg.Grid.OverscanCols,
		PoolSize:      m.cfg.Grid.PoolSize,
		CacheCapacity: m.cfg.Grid.CacheCapacity,
		CacheMaxBytes: m.cfg.Grid.CacheMaxBytes,
		Theme:         m.vs.theme.Name(),
	})
	if err != nil {
		m.err = err
		return m, nil
	}
	if err := g.Init(w, h); err != nil {
		m.err = err
		return m, nil
	}

	vs := m.vs
	g.SetFlagsProvider(func(dataRow, _ int) rendercache.Flags {
		return rendercache.Flags{Selected: dataRow == vs.selectedData}
	})
	g.SetData(m.data.Cells())

	ctx, cancel := context.WithCancel(context.Background())
	m.listener = pubsub.NewContinuousListener(ctx, g.Events())
	m.cancel = cancel

	m.grid = g
	m.ready = true
	m.setSelection(0)
	if m.onGridReady != nil {
		m.onGridReady(g)
	}

	log.Info(log.CatUI, "grid view initialized",
		"rows", m.data.Len(),
		"viewport_w", w,
		"viewport_h", h)
	return m, tea.Batch(m.frameTick(), m.listener.Listen())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case m.showHelp:
		// Any other key closes the overlay.
		m.showHelp = false
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		return m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		_, gh := m.gridSize()
		return m.moveSelection(-gh)
	case key.Matches(msg, m.keys.PageDown):
		_, gh := m.gridSize()
		return m.moveSelection(gh)
	case key.Matches(msg, m.keys.Home):
		return m.selectRow(0)
	case key.Matches(msg, m.keys.End):
		return m.selectRow(m.grid.ViewRowCount() - 1)

	case key.Matches(msg, m.keys.Left):
		return m.scrollHorizontal(-hScrollStep)
	case key.Matches(msg, m.keys.Right):
		return m.scrollHorizontal(hScrollStep)

	case key.Matches(msg, m.keys.NextColumn):
		m.focusedCol = (m.focusedCol + 1) % len(colWidths)
		return m, nil
	case key.Matches(msg, m.keys.PrevColumn):
		m.focusedCol = (m.focusedCol - 1 + len(colWidths)) % len(colWidths)
		return m, nil

	case key.Matches(msg, m.keys.SortColumn):
		return m.cycleSort()
	case key.Matches(msg, m.keys.CycleFilter):
		return m.cycleFilter()
	case key.Matches(msg, m.keys.ClearFilter):
		return m.applyFilterIdx(-1)

	case key.Matches(msg, m.keys.Reload):
		return m.reloadData()

	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.scrollRows(-wheelStep)
	case tea.MouseButtonWheelDown:
		return m.scrollRows(wheelStep)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		r := m.grid.VisibleRange()
		for vr := r.StartRow; vr <= r.EndRow; vr++ {
			if z := zone.Get(rowZoneID(vr)); z != nil && z.InBounds(msg) {
				return m.selectRow(vr)
			}
		}
	}
	return m, nil
}

func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	if m.grid == nil {
		return m, nil
	}
	rendered, err := m.grid.FlushFrame()
	if err != nil {
		m.err = err
		return m, nil
	}
	if rendered && m.grid.HasPendingRender() {
		return m, m.frameTick()
	}
	return m, nil
}

func (m Model) handleConfigReload(cfg *config.Config) (tea.Model, tea.Cmd) {
	theme, err := styles.NewTheme(cfg.Theme.Preset, cfg.Theme.FlattenedColors(), cfg.Theme.Mode)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.cfg = cfg
	m.vs.theme = theme
	m.vs.styles = theme.Build()
	if m.grid != nil {
		m.grid.SetTheme(theme.Name())
		m.grid.ClearCache()
		if err := m.grid.Refresh(); err != nil {
			m.err = err
		}
	}
	log.Info(log.CatUI, "config reloaded", "theme", theme.Name())
	return m, m.frameTick()
}

func (m Model) moveSelection(delta int) (tea.Model, tea.Cmd) {
	return m.selectRow(m.selectedView + delta)
}

func (m Model) selectRow(viewRow int) (tea.Model, tea.Cmd) {
	count := m.grid.ViewRowCount()
	if count == 0 {
		return m, nil
	}
	if viewRow < 0 {
		viewRow = 0
	}
	if viewRow >= count {
		viewRow = count - 1
	}
	m.setSelection(viewRow)
	if err := m.grid.ScrollToCell(viewRow, m.focusedCol); err != nil {
		m.err = err
		return m, nil
	}
	// Selection participates in cell fingerprints; a pass is needed
	// even when the scroll offset did not move.
	top, left := m.grid.ScrollPosition()
	m.grid.RequestRender(top, left)
	return m, m.frameTick()
}

func (m *Model) setSelection(viewRow int) {
	m.selectedView = viewRow
	if dataRow, ok := m.grid.ViewToData(viewRow); ok {
		m.vs.selectedData = dataRow
	} else {
		m.vs.selectedData = -1
	}
}

func (m Model) scrollRows(delta int) (tea.Model, tea.Cmd) {
	top, left := m.grid.ScrollPosition()
	m.grid.RequestRender(top+delta, left)
	return m, m.frameTick()
}

func (m Model) scrollHorizontal(delta int) (tea.Model, tea.Cmd) {
	top, left := m.grid.ScrollPosition()
	m.grid.RequestRender(top, left+delta)
	return m, m.frameTick()
}

// cycleSort steps the focused column through ascending, descending,
// then back to natural order.
func (m Model) cycleSort() (tea.Model, tea.Cmd) {
	switch {
	case !m.sortActive:
		m.sortActive = true
		m.sortDesc = false
	case !m.sortDesc:
		m.sortDesc = true
	default:
		m.sortActive = false
	}

	if m.sortActive {
		key := dataset.ColumnKeys()[m.focusedCol]
		m.grid.SetComparator(m.data.Comparator(key, m.sortDesc))
	} else {
		m.grid.SetComparator(nil)
	}
	m.setSelection(0)
	return m, m.frameTick()
}

func (m Model) cycleFilter() (tea.Model, tea.Cmd) {
	next := m.filterIdx + 1
	if next >= len(statusCycle) {
		next = -1
	}
	return m.applyFilterIdx(next)
}

func (m Model) applyFilterIdx(idx int) (tea.Model, tea.Cmd) {
	m.filterIdx = idx
	if idx < 0 {
		m.grid.SetFilter(nil)
	} else {
		m.grid.SetFilter(m.data.FilterByStatus(statusCycle[idx]))
	}
	m.setSelection(0)
	return m, m.frameTick()
}

func (m Model) reloadData() (tea.Model, tea.Cmd) {
	m.data = dataset.Generate(m.cfg.Data.Rows, m.cfg.Data.Seed)
	m.grid.SetData(m.data.Cells())
	if m.filterIdx >= 0 {
		m.grid.SetFilter(m.data.FilterByStatus(statusCycle[m.filterIdx]))
	}
	m.setSelection(m.selectedView)
	return m, m.frameTick()
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	names := styles.PresetNames()
	cur := 0
	for i, n := range names {
		if n == m.cfg.Theme.Preset || (m.cfg.Theme.Preset == "" && n == "default") {
			cur = i
			break
		}
	}
	next := names[(cur+1)%len(names)]

	theme, err := styles.NewTheme(next, m.cfg.Theme.FlattenedColors(), m.cfg.Theme.Mode)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.cfg.Theme.Preset = next
	m.vs.theme = theme
	m.vs.styles = theme.Build()
	m.grid.SetTheme(theme.Name())
	return m, m.frameTick()
}

func (m Model) frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

// Close releases the grid and its subscriptions. Call after the
// program loop exits; the final frame may still read grid state, so
// teardown cannot happen inside Update.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
	if m.grid != nil {
		m.grid.Destroy()
	}
}
