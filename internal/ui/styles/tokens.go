// Package styles contains Lip Gloss style definitions and the
// themeable color tokens behind them.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Column headers
	TokenHeaderFg ColorToken = "header.fg"
	TokenHeaderBg ColorToken = "header.bg"

	// Row states
	TokenRowSelected ColorToken = "row.selected"
	TokenRowActive   ColorToken = "row.active"
	TokenRowEditing  ColorToken = "row.editing"
	TokenRowZebra    ColorToken = "row.zebra"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Scrollbar
	TokenScrollbarThumb ColorToken = "scrollbar.thumb"
	TokenScrollbarTrack ColorToken = "scrollbar.track"

	// Typed cell content
	TokenCellNumber ColorToken = "cell.number"
	TokenCellDate   ColorToken = "cell.date"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		TokenHeaderFg,
		TokenHeaderBg,

		TokenRowSelected,
		TokenRowActive,
		TokenRowEditing,
		TokenRowZebra,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenScrollbarThumb,
		TokenScrollbarTrack,

		TokenCellNumber,
		TokenCellDate,
	}
}
