package styles

import "github.com/charmbracelet/lipgloss"

// Palette maps color tokens to adaptive colors.
type Palette map[ColorToken]lipgloss.AdaptiveColor

// PresetNames returns the built-in preset identifiers.
func PresetNames() []string {
	return []string{"default", "dark", "light", "high-contrast"}
}

// Preset returns the named built-in palette, or (nil, false) when the
// name is unknown. "default" and "" both mean the default palette.
func Preset(name string) (Palette, bool) {
	switch name {
	case "", "default":
		return defaultPalette(), true
	case "dark":
		return darkPalette(), true
	case "light":
		return lightPalette(), true
	case "high-contrast":
		return highContrastPalette(), true
	default:
		return nil, false
	}
}

func defaultPalette() Palette {
	return Palette{
		TokenTextPrimary:   {Light: "#1A1A1A", Dark: "#CCCCCC"},
		TokenTextSecondary: {Light: "#555555", Dark: "#BBBBBB"},
		TokenTextMuted:     {Light: "#888888", Dark: "#696969"},

		TokenHeaderFg: {Light: "#1A1A1A", Dark: "#E0E0E0"},
		TokenHeaderBg: {Light: "#E8E8E8", Dark: "#333333"},

		TokenRowSelected: {Light: "#D0E4FF", Dark: "#264F78"},
		TokenRowActive:   {Light: "#B8D8FF", Dark: "#1F6FEB"},
		TokenRowEditing:  {Light: "#FFF3C4", Dark: "#6B5800"},
		TokenRowZebra:    {Light: "#F5F5F5", Dark: "#1E1E1E"},

		TokenBorderDefault: {Light: "#D9DCCF", Dark: "#696969"},
		TokenBorderFocus:   {Light: "#54A0FF", Dark: "#54A0FF"},

		TokenStatusSuccess: {Light: "#43BF6D", Dark: "#73F59F"},
		TokenStatusWarning: {Light: "#FECA57", Dark: "#FECA57"},
		TokenStatusError:   {Light: "#FF6B6B", Dark: "#FF8787"},

		TokenScrollbarThumb: {Light: "#AAAAAA", Dark: "#666666"},
		TokenScrollbarTrack: {Light: "#E8E8E8", Dark: "#2A2A2A"},

		TokenCellNumber: {Light: "#1E66F5", Dark: "#89B4FA"},
		TokenCellDate:   {Light: "#179299", Dark: "#94E2D5"},
	}
}

func darkPalette() Palette {
	p := defaultPalette()
	p[TokenTextPrimary] = lipgloss.AdaptiveColor{Light: "#F8F8F2", Dark: "#F8F8F2"}
	p[TokenTextSecondary] = lipgloss.AdaptiveColor{Light: "#BFBFBF", Dark: "#BFBFBF"}
	p[TokenHeaderBg] = lipgloss.AdaptiveColor{Light: "#44475A", Dark: "#44475A"}
	p[TokenHeaderFg] = lipgloss.AdaptiveColor{Light: "#F8F8F2", Dark: "#F8F8F2"}
	p[TokenRowSelected] = lipgloss.AdaptiveColor{Light: "#44475A", Dark: "#44475A"}
	p[TokenRowActive] = lipgloss.AdaptiveColor{Light: "#6272A4", Dark: "#6272A4"}
	p[TokenRowZebra] = lipgloss.AdaptiveColor{Light: "#282A36", Dark: "#282A36"}
	p[TokenCellNumber] = lipgloss.AdaptiveColor{Light: "#BD93F9", Dark: "#BD93F9"}
	p[TokenCellDate] = lipgloss.AdaptiveColor{Light: "#8BE9FD", Dark: "#8BE9FD"}
	return p
}

func lightPalette() Palette {
	p := defaultPalette()
	p[TokenTextPrimary] = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#1A1A1A"}
	p[TokenTextSecondary] = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#4C4F69"}
	p[TokenHeaderBg] = lipgloss.AdaptiveColor{Light: "#E6E9EF", Dark: "#E6E9EF"}
	p[TokenHeaderFg] = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#1A1A1A"}
	p[TokenRowSelected] = lipgloss.AdaptiveColor{Light: "#CCD0DA", Dark: "#CCD0DA"}
	p[TokenRowZebra] = lipgloss.AdaptiveColor{Light: "#EFF1F5", Dark: "#EFF1F5"}
	return p
}

func highContrastPalette() Palette {
	p := defaultPalette()
	p[TokenTextPrimary] = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	p[TokenTextSecondary] = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	p[TokenTextMuted] = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"}
	p[TokenHeaderBg] = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	p[TokenHeaderFg] = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#000000"}
	p[TokenRowSelected] = lipgloss.AdaptiveColor{Light: "#FFFF00", Dark: "#0000FF"}
	p[TokenBorderDefault] = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	p[TokenBorderFocus] = lipgloss.AdaptiveColor{Light: "#0000FF", Dark: "#FFFF00"}
	return p
}
