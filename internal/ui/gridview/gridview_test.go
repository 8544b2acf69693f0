package gridview

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/vgrid/internal/config"
	"github.com/zjrosen/vgrid/internal/grid"
	"github.com/zjrosen/vgrid/internal/pubsub"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Data.Rows = 200
	return &cfg
}

func newReadyModel(t *testing.T) Model {
	t.Helper()
	m, err := New(testConfig())
	require.NoError(t, err)

	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = flush(t, m)
	require.True(t, m.ready)
	require.NotNil(t, m.Grid())
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func flush(t *testing.T, m Model) Model {
	return update(t, m, frameMsg{})
}

func press(t *testing.T, m Model, r rune) Model {
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestNew_InvalidThemeFails(t *testing.T) {
	cfg := testConfig()
	cfg.Theme.Preset = "nope"
	_, err := New(cfg)
	require.Error(t, err)
}

func TestModel_InitializesOnWindowSize(t *testing.T) {
	m := newReadyModel(t)

	view := m.View()
	require.Contains(t, view, "ID")
	require.Contains(t, view, "Name")

	r := m.Grid().VisibleRange()
	require.Equal(t, 0, r.StartRow)
	require.Greater(t, r.EndRow, 0)
}

func TestModel_SelectionFollowsKeys(t *testing.T) {
	m := newReadyModel(t)

	for i := 0; i < 5; i++ {
		m = press(t, m, 'j')
	}
	m = flush(t, m)
	require.Equal(t, 5, m.selectedView)

	m = press(t, m, 'k')
	m = flush(t, m)
	require.Equal(t, 4, m.selectedView)

	m = press(t, m, 'G')
	m = flush(t, m)
	require.Equal(t, m.Grid().ViewRowCount()-1, m.selectedView)

	m = press(t, m, 'g')
	m = flush(t, m)
	require.Equal(t, 0, m.selectedView)
}

func TestModel_SelectionClampsAtEdges(t *testing.T) {
	m := newReadyModel(t)

	m = press(t, m, 'k')
	require.Equal(t, 0, m.selectedView)
}

func TestModel_FilterCycleShrinksRows(t *testing.T) {
	m := newReadyModel(t)
	total := m.Grid().ViewRowCount()

	m = press(t, m, 'f')
	m = flush(t, m)
	require.Less(t, m.Grid().ViewRowCount(), total)
	require.Equal(t, 0, m.filterIdx)
	require.Contains(t, m.View(), "filter: open")

	m = press(t, m, 'F')
	m = flush(t, m)
	require.Equal(t, total, m.Grid().ViewRowCount())
	require.Equal(t, -1, m.filterIdx)
}

func TestModel_FilterCycleWrapsToNone(t *testing.T) {
	m := newReadyModel(t)

	for range statusCycle {
		m = press(t, m, 'f')
	}
	m = press(t, m, 'f')
	require.Equal(t, -1, m.filterIdx)
}

func TestModel_SortCycle(t *testing.T) {
	m := newReadyModel(t)

	m = press(t, m, 's')
	m = flush(t, m)
	require.True(t, m.sortActive)
	require.False(t, m.sortDesc)
	require.Contains(t, m.View(), "sort: id asc")

	m = press(t, m, 's')
	m = flush(t, m)
	require.True(t, m.sortDesc)

	m = press(t, m, 's')
	m = flush(t, m)
	require.False(t, m.sortActive)
}

func TestModel_SortDescendingReordersView(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 1, m.focusedCol)

	m = press(t, m, 's')
	m = press(t, m, 's') // descending
	m = flush(t, m)

	first, ok := m.Grid().ValueAt(0, 1)
	require.True(t, ok)
	last, ok := m.Grid().ValueAt(m.Grid().ViewRowCount()-1, 1)
	require.True(t, ok)
	require.GreaterOrEqual(t, first, last)
}

func TestModel_ThemeCyclePropagatesToGrid(t *testing.T) {
	m := newReadyModel(t)
	before := m.vs.theme.Name()

	m = press(t, m, 't')
	m = flush(t, m)
	require.NotEqual(t, before, m.vs.theme.Name())
	require.Equal(t, "dark", m.cfg.Theme.Preset)
}

func TestModel_HelpOverlayToggles(t *testing.T) {
	m := newReadyModel(t)

	m = press(t, m, '?')
	require.True(t, m.showHelp)
	view := m.View()
	require.Contains(t, view, "Keybindings")
	require.Contains(t, view, "sort by column", "overlay carries the rendered bindings, not an empty box")

	m = press(t, m, 'j')
	require.False(t, m.showHelp)
	require.Equal(t, 0, m.selectedView)
}

func TestModel_WheelScrollsWithoutSelection(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m = flush(t, m)

	top, _ := m.Grid().ScrollPosition()
	require.Equal(t, wheelStep, top)
	require.Equal(t, 0, m.selectedView)
}

func TestModel_ResizePropagates(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 12})
	m = flush(t, m)

	gw, gh := m.gridSize()
	require.Equal(t, 59, gw)
	require.Equal(t, 10, gh)
	require.Equal(t, gw, m.Grid().Viewport().Width())
}

func TestModel_ConfigReloadSwitchesTheme(t *testing.T) {
	m := newReadyModel(t)

	cfg := testConfig()
	cfg.Theme.Preset = "high-contrast"
	m = update(t, m, ConfigReloadedMsg{Config: cfg})
	m = flush(t, m)

	require.Equal(t, "high-contrast", m.vs.theme.Name())
}

func TestModel_PassEventFeedsStatusLine(t *testing.T) {
	m := newReadyModel(t)

	m = update(t, m, pubsub.Event[grid.RenderInfo]{
		Type:    pubsub.RenderEndEvent,
		Payload: grid.RenderInfo{Pass: 9, Duration: time.Millisecond},
	})
	require.Contains(t, m.View(), "pass 9")
}

func TestModel_StatusLineCachePercentIsBounded(t *testing.T) {
	m := newReadyModel(t)

	// Scroll past the overscan margin and back so re-entering cells
	// produce cache hits.
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	m = flush(t, m)
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	m = flush(t, m)

	match := regexp.MustCompile(`cache (\d+(?:\.\d+)?)%`).FindStringSubmatch(m.View())
	require.NotNil(t, match)
	rate, err := strconv.ParseFloat(match[1], 64)
	require.NoError(t, err)
	require.Greater(t, rate, 0.0)
	require.LessOrEqual(t, rate, 100.0)
}

func TestModel_QuitReturnsQuit(t *testing.T) {
	m := newReadyModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	m.Close()
	require.Equal(t, 0, m.Grid().PoolStats().Active)
}

func TestThumbBounds(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		viewport   int
		offset     int
		wantStart  int
		wantHeight int
	}{
		{"content fits", 10, 20, 0, 0, 20},
		{"at top", 1000, 20, 0, 0, 1},
		{"at bottom", 1000, 20, 980, 19, 1},
		{"empty", 0, 20, 0, 0, 0},
		{"zero viewport", 100, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, height := thumbBounds(tt.total, tt.viewport, tt.offset)
			require.Equal(t, tt.wantStart, start)
			require.Equal(t, tt.wantHeight, height)
		})
	}
}

func TestProgram_RendersAndQuits(t *testing.T) {
	m, err := New(testConfig())
	require.NoError(t, err)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return strings.Contains(string(b), "ID")
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}
