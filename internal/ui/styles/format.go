package styles

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DisplayWidth returns the terminal cell width of s, grapheme-aware
// so emoji and combining sequences count correctly.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// TruncateCell shortens s to fit maxWidth, appending an ellipsis when
// content was cut. ANSI escape sequences are preserved intact.
func TruncateCell(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if DisplayWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// PadCell truncates and left-aligns s in a field of exactly width
// cells. Every grid cell goes through this so columns stay aligned
// regardless of content width.
func PadCell(s string, width int) string {
	if width < 1 {
		return ""
	}
	s = TruncateCell(s, width)
	if gap := width - DisplayWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PadCellRight right-aligns s in a field of exactly width cells;
// numeric columns read better flush right.
func PadCellRight(s string, width int) string {
	if width < 1 {
		return ""
	}
	s = TruncateCell(s, width)
	if gap := width - DisplayWidth(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// CondenseRunes reduces s to its first maxRunes runes without
// breaking multi-cell runes apart; used for compact status output.
func CondenseRunes(s string, maxRunes int) string {
	if maxRunes < 1 {
		return ""
	}
	out := ""
	count := 0
	for _, r := range s {
		if count >= maxRunes {
			break
		}
		if runewidth.RuneWidth(r) == 0 && count == 0 {
			continue
		}
		out += string(r)
		count++
	}
	return out
}
