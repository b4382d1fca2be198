package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"studyplanner/internal/planner"
)

type palette struct {
	fg, muted, accent, accentFg, danger, ok, surface lipgloss.Color
}

var (
	lightPalette = palette{
		fg:       lipgloss.Color("235"),
		muted:    lipgloss.Color("244"),
		accent:   lipgloss.Color("#00C2CB"),
		accentFg: lipgloss.Color("#FFFFFF"),
		danger:   lipgloss.Color("160"),
		ok:       lipgloss.Color("35"),
		surface:  lipgloss.Color("255"),
	}
	darkPalette = palette{
		fg:       lipgloss.Color("252"),
		muted:    lipgloss.Color("242"),
		accent:   lipgloss.Color("#00C2CB"),
		accentFg: lipgloss.Color("#0B1320"),
		danger:   lipgloss.Color("203"),
		ok:       lipgloss.Color("78"),
		surface:  lipgloss.Color("236"),
	}
)

type theme struct {
	title    lipgloss.Style
	text     lipgloss.Style
	subtle   lipgloss.Style
	accent   lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	err      lipgloss.Style
	ok       lipgloss.Style
	badge    lipgloss.Style
	card     lipgloss.Style
	notice   lipgloss.Style
	gap      string
}

func newTheme(p planner.Preferences) theme {
	c := lightPalette
	if p.DarkMode {
		c = darkPalette
	}
	return theme{
		title:    lipgloss.NewStyle().Bold(true).Foreground(c.accent),
		text:     lipgloss.NewStyle().Foreground(c.fg),
		subtle:   lipgloss.NewStyle().Foreground(c.muted),
		accent:   lipgloss.NewStyle().Foreground(c.accent).Bold(true),
		selected: lipgloss.NewStyle().Foreground(c.accentFg).Background(c.accent).Bold(true),
		done:     lipgloss.NewStyle().Foreground(c.muted).Strikethrough(true),
		err:      lipgloss.NewStyle().Foreground(c.danger),
		ok:       lipgloss.NewStyle().Foreground(c.ok),
		badge:    lipgloss.NewStyle().Foreground(c.accent).Bold(true),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c.muted).Padding(0, 1),
		notice:   lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(c.accent).Background(c.surface).Foreground(c.fg).Padding(0, 1),
		gap:      gapFor(p.FontSize),
	}
}

// gapFor stands in for font scaling: larger sizes get more vertical air.
func gapFor(size planner.FontSize) string {
	switch size {
	case planner.FontSmall:
		return "\n"
	case planner.FontLarge:
		return strings.Repeat("\n", 3)
	default:
		return "\n\n"
	}
}
