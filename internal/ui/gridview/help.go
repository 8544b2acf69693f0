package gridview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/vgrid/internal/log"
	"github.com/zjrosen/vgrid/internal/ui/markdown"
	"github.com/zjrosen/vgrid/internal/ui/overlay"
	"github.com/zjrosen/vgrid/internal/ui/styles"
)

const helpBoxWidth = 52

// helpMarkdown builds the overlay body from the live keymap so the
// text can never drift from the actual bindings.
func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Keybindings\n\n")

	titles := []string{"## Navigation", "## Data", "## General"}
	for i, group := range m.keys.FullHelp() {
		if i < len(titles) {
			b.WriteString(titles[i] + "\n\n")
		}
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("- `" + h.Key + "` " + h.Desc + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelpOverlay(background string) string {
	r, err := markdown.New(helpBoxWidth-4, m.cfg.UI.MarkdownStyle)
	if err != nil {
		log.ErrorErr(log.CatUI, "help renderer init failed", err)
		return background
	}
	body, err := r.Render(m.helpMarkdown())
	if err != nil {
		log.ErrorErr(log.CatUI, "help render failed", err)
		return background
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.vs.theme.Color(styles.TokenBorderFocus)).
		Padding(0, 1).
		Width(helpBoxWidth).
		Render(strings.TrimRight(body, "\n"))

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}
