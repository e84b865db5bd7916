package tui

import (
	"os"
	"strconv"
	"strings"

	"todo-cli/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must stay readable on light and dark terminals, so colours are
// lipgloss.AdaptiveColor pairs and "faint" is only applied on dark backgrounds.

// themeStorageKey persists the theme toggle next to the session data.
const themeStorageKey = "todo_theme"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted     lipgloss.TerminalColor = ac("240", "243")
	colorHeaderFg  lipgloss.TerminalColor = ac("235", "252")
	colorAccent    lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg  lipgloss.TerminalColor = ac("255", "235")
	colorSelectBg  lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectFg  lipgloss.TerminalColor = ac("235", "255")
	colorDoneFg    lipgloss.TerminalColor = ac("246", "241")
	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorBorder    lipgloss.TerminalColor = ac("250", "243")
	colorInputBg   lipgloss.TerminalColor = ac("254", "234")
	colorErrorFg   lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honours CLICOLOR, which can switch colours off inside a
// TUI; here only NO_COLOR is honoured and otherwise the terminal's reported
// capabilities are used, upgraded when TERM/COLORTERM claim more.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// resolveTheme decides the starting background.
//
// Priority:
// 1) override (TODO_THEME=light|dark)
// 2) the persisted toggle
// 3) COLORFGBG heuristic ("fg;bg", last segment is the background)
//
// ok is false when none of these gave an answer.
func resolveTheme(override string, kv store.KV) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(override)) {
	case "light":
		return false, true
	case "dark":
		return true, true
	}

	if kv != nil {
		if v, found, err := kv.Get(themeStorageKey); err == nil && found {
			switch v {
			case "light":
				return false, true
			case "dark":
				return true, true
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			return bg < 7, true
		}
	}
	return false, false
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// toggleTheme flips the background, applies it, and persists the choice.
func (m *appModel) toggleTheme() error {
	m.dark = !m.dark
	lipgloss.SetHasDarkBackground(m.dark)
	return m.kv.Set(themeStorageKey, themeName(m.dark))
}
