package workspace

import (
	"fmt"

	"github.com/recaphq/recap-server/internal/domain/session"
)

// ThemeMode selects the color scheme.
type ThemeMode string

const (
	ThemeModeLight ThemeMode = "light"
	ThemeModeDark  ThemeMode = "dark"
	ThemeModeAuto  ThemeMode = "auto"
)

// Valid reports whether the mode is light, dark, or auto.
func (m ThemeMode) Valid() bool {
	switch m {
	case ThemeModeLight, ThemeModeDark, ThemeModeAuto:
		return true
	}
	return false
}

// Theme is the resolved color scheme for a configuration. Mode records what
// was requested; Resolved is always light or dark.
type Theme struct {
	Mode     ThemeMode `json:"mode"`
	Resolved ThemeMode `json:"resolved"`
	Palette  Palette   `json:"palette"`
}

// Palette holds the color tokens for one scheme.
type Palette struct {
	Background  string `json:"background"`
	Surface     string `json:"surface"`
	Accent      string `json:"accent"`
	TextPrimary string `json:"textPrimary"`
	TextMuted   string `json:"textMuted"`
}

var paletteLight = Palette{
	Background:  "#f8f9fb",
	Surface:     "#ffffff",
	Accent:      "#4f6ef7",
	TextPrimary: "#1a1d24",
	TextMuted:   "#6b7280",
}

var paletteDark = Palette{
	Background:  "#101217",
	Surface:     "#1a1d24",
	Accent:      "#6d8bff",
	TextPrimary: "#e8eaf0",
	TextMuted:   "#9aa1ad",
}

// Auto mode resolves against the session midpoint, so identical input always
// yields the same theme.
const (
	morningStartHour = 7
	eveningStartHour = 19
)

// resolveTheme maps a requested mode onto a concrete theme. Unknown modes
// fall back to auto with a warning.
func resolveTheme(mode string, data session.Data) (Theme, []string) {
	var warnings []string

	requested := ThemeModeAuto
	switch {
	case mode == "":
	case ThemeMode(mode).Valid():
		requested = ThemeMode(mode)
	default:
		warnings = append(warnings, fmt.Sprintf("unknown theme mode %q, using auto", mode))
	}

	resolved := requested
	if requested == ThemeModeAuto {
		resolved = resolveAuto(data)
	}

	return Theme{
		Mode:     requested,
		Resolved: resolved,
		Palette:  paletteFor(resolved),
	}, warnings
}

// resolveAuto picks dark for sessions whose midpoint falls in the evening or
// night, light otherwise. Sessions without timestamps resolve light.
func resolveAuto(data session.Data) ThemeMode {
	if data.StartTime == nil {
		return ThemeModeLight
	}
	midpoint := *data.StartTime
	if data.EndTime != nil && data.EndTime.After(*data.StartTime) {
		midpoint = data.StartTime.Add(data.EndTime.Sub(*data.StartTime) / 2)
	}
	hour := midpoint.UTC().Hour()
	if hour >= eveningStartHour || hour < morningStartHour {
		return ThemeModeDark
	}
	return ThemeModeLight
}

func paletteFor(resolved ThemeMode) Palette {
	if resolved == ThemeModeDark {
		return paletteDark
	}
	return paletteLight
}
