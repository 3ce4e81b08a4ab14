package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette helpers. The form must stay readable on light and dark terminals,
// so colors are adaptive and faint styling is only used on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

type themeID string

const (
	themeDefault  themeID = "default"
	themeNeon     themeID = "neon"
	themeMono     themeID = "mono"
	themeTerminal themeID = "terminal"
)

var knownThemes = []themeID{themeDefault, themeNeon, themeMono, themeTerminal}

type palette struct {
	muted    lipgloss.TerminalColor
	surface  lipgloss.TerminalColor
	inputBg  lipgloss.TerminalColor
	accent   lipgloss.TerminalColor
	accentFg lipgloss.TerminalColor
	success  lipgloss.TerminalColor
	danger   lipgloss.TerminalColor
	dropBg   lipgloss.TerminalColor
}

var defaultPalette = palette{
	muted:    ac("240", "243"),
	surface:  ac("235", "252"),
	inputBg:  ac("254", "234"),
	accent:   ac("27", "62"),
	accentFg: ac("255", "235"),
	success:  ac("28", "78"),
	danger:   ac("160", "203"),
	dropBg:   ac("252", "236"),
}

var colors = defaultPalette

func paletteFor(id themeID) (palette, bool) {
	switch id {
	case themeDefault, "":
		return defaultPalette, true
	case themeNeon:
		return palette{
			muted:    ac("#4b5563", "#a3adc2"),
			surface:  ac("#111827", "#f8fafc"),
			inputBg:  ac("#eef2ff", "#0d142b"),
			accent:   ac("#005f87", "#00d7ff"),
			accentFg: ac("#ffffff", "#0b1020"),
			success:  ac("#007a3d", "#3ddc84"),
			danger:   ac("#dc2626", "#ff5555"),
			dropBg:   ac("#e9d5ff", "#2a1b3d"),
		}, true
	case themeMono:
		p := defaultPalette
		p.accent = p.surface
		p.success = p.surface
		p.danger = p.surface
		return p, true
	case themeTerminal:
		// Theme-defined ANSI colors; no painted surfaces.
		return palette{
			muted:    lipgloss.ANSIColor(8),
			surface:  lipgloss.NoColor{},
			inputBg:  lipgloss.NoColor{},
			accent:   lipgloss.ANSIColor(4),
			accentFg: lipgloss.ANSIColor(15),
			success:  lipgloss.ANSIColor(2),
			danger:   lipgloss.ANSIColor(1),
			dropBg:   lipgloss.NoColor{},
		}, true
	}
	return palette{}, false
}

// applyThemePreference selects the palette and background mode. name is a
// theme id, optionally suffixed with ":light" or ":dark" (e.g. "neon:dark").
// Unknown ids keep the default palette.
func applyThemePreference(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	id, mode, _ := strings.Cut(name, ":")
	if p, ok := paletteFor(themeID(id)); ok {
		colors = p
	} else {
		colors = defaultPalette
	}

	switch mode {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	// COLORFGBG is often "fg;bg"; the last segment is the background.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}

// applyColorProfilePreference honors NO_COLOR and otherwise trusts TERM/COLORTERM
// over the detector, which under-reports on some terminals.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colors.muted))
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colors.surface).Bold(true)
}

func styleFocusedLabel() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colors.accent).Bold(true)
}

func styleAvailable() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colors.success)
}

func styleUnavailable() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colors.danger)
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colors.danger)
}

func styleHoverLabel() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colors.accent)
}

func styleDropdown() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(colors.dropBg).
		Foreground(colors.surface).
		Padding(0, 1)
}

func styleDropdownOption() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(colors.accent).
		Foreground(colors.accentFg).
		Padding(0, 1)
}
