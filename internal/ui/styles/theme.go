package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme is a resolved palette: a preset base with user overrides
// applied, optionally forced into light or dark mode.
type Theme struct {
	name   string
	mode   string // "", "light", "dark"
	colors Palette
}

// NewTheme builds a theme from a preset name, dot-notation color
// overrides, and an optional forced mode. Unknown presets, unknown
// tokens, and malformed hex values are errors so a typo in the config
// surfaces instead of silently falling back.
func NewTheme(preset string, overrides map[string]string, mode string) (*Theme, error) {
	base, ok := Preset(preset)
	if !ok {
		return nil, fmt.Errorf("styles: unknown theme preset %q", preset)
	}

	colors := make(Palette, len(base))
	for tok, c := range base {
		colors[tok] = c
	}

	valid := make(map[ColorToken]struct{}, len(AllTokens()))
	for _, tok := range AllTokens() {
		valid[tok] = struct{}{}
	}

	for key, value := range overrides {
		tok := ColorToken(key)
		if _, ok := valid[tok]; !ok {
			return nil, fmt.Errorf("styles: unknown color token %q", key)
		}
		if !hexColorRe.MatchString(value) {
			return nil, fmt.Errorf("styles: invalid color %q for token %q", value, key)
		}
		// Overrides apply to both variants; forcing a mode is what
		// theme.mode is for.
		colors[tok] = lipgloss.AdaptiveColor{Light: value, Dark: value}
	}

	switch mode {
	case "", "light", "dark":
	default:
		return nil, fmt.Errorf("styles: invalid theme mode %q", mode)
	}

	name := preset
	if name == "" {
		name = "default"
	}
	return &Theme{name: name, mode: mode, colors: colors}, nil
}

// Name returns the preset name the theme was built from. Grid cache
// fingerprints include it so a theme switch invalidates renders.
func (t *Theme) Name() string {
	if t.mode != "" {
		return t.name + ":" + t.mode
	}
	return t.name
}

// Color resolves a token to a terminal color. When a mode is forced,
// the corresponding variant is pinned regardless of the detected
// background.
func (t *Theme) Color(tok ColorToken) lipgloss.TerminalColor {
	c, ok := t.colors[tok]
	if !ok {
		return lipgloss.NoColor{}
	}
	switch t.mode {
	case "light":
		return lipgloss.Color(c.Light)
	case "dark":
		return lipgloss.Color(c.Dark)
	default:
		return c
	}
}

// Styles bundles the lipgloss styles the grid view renders with.
type Styles struct {
	Cell        lipgloss.Style
	CellNumber  lipgloss.Style
	CellDate    lipgloss.Style
	Header      lipgloss.Style
	RowSelected lipgloss.Style
	RowActive   lipgloss.Style
	RowEditing  lipgloss.Style
	RowZebra    lipgloss.Style
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
	Scrollbar   ScrollbarStyles
	Border      lipgloss.Style
}

// ScrollbarStyles styles the thumb and track glyphs.
type ScrollbarStyles struct {
	Thumb lipgloss.Style
	Track lipgloss.Style
}

// Build derives the style set from the theme.
func (t *Theme) Build() Styles {
	return Styles{
		Cell:        lipgloss.NewStyle().Foreground(t.Color(TokenTextPrimary)),
		CellNumber:  lipgloss.NewStyle().Foreground(t.Color(TokenCellNumber)),
		CellDate:    lipgloss.NewStyle().Foreground(t.Color(TokenCellDate)),
		Header:      lipgloss.NewStyle().Bold(true).Foreground(t.Color(TokenHeaderFg)).Background(t.Color(TokenHeaderBg)),
		RowSelected: lipgloss.NewStyle().Background(t.Color(TokenRowSelected)),
		RowActive:   lipgloss.NewStyle().Background(t.Color(TokenRowActive)).Bold(true),
		RowEditing:  lipgloss.NewStyle().Background(t.Color(TokenRowEditing)).Italic(true),
		RowZebra:    lipgloss.NewStyle().Background(t.Color(TokenRowZebra)),
		StatusBar:   lipgloss.NewStyle().Foreground(t.Color(TokenTextMuted)),
		StatusError: lipgloss.NewStyle().Foreground(t.Color(TokenStatusError)).Bold(true),
		Scrollbar: ScrollbarStyles{
			Thumb: lipgloss.NewStyle().Foreground(t.Color(TokenScrollbarThumb)),
			Track: lipgloss.NewStyle().Foreground(t.Color(TokenScrollbarTrack)),
		},
		Border: lipgloss.NewStyle().Foreground(t.Color(TokenBorderDefault)),
	}
}
