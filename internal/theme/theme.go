// Package theme holds the light and dark palettes and the lipgloss styles
// built from them. The preference is passed in, never read from the
// environment.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Preference selects a palette.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

// ParsePreference accepts "light" or "dark".
func ParsePreference(s string) (Preference, error) {
	switch Preference(strings.ToLower(strings.TrimSpace(s))) {
	case Light, "":
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return Light, fmt.Errorf("unknown theme %q", s)
	}
}

// Toggle returns the other preference.
func (p Preference) Toggle() Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// Palette is the set of colors a theme draws with.
type Palette struct {
	Accent lipgloss.Color
	Green  lipgloss.Color
	Yellow lipgloss.Color
	Red    lipgloss.Color
	Gray   lipgloss.Color
	Text   lipgloss.Color
	Subtle lipgloss.Color
	Border lipgloss.Color
}

var palettes = map[Preference]Palette{
	Dark: {
		Accent: "#5B9BD5",
		Green:  "#6BCB77",
		Yellow: "#FFD93D",
		Red:    "#FF6B6B",
		Gray:   "#868E96",
		Text:   "#F8F9FA",
		Subtle: "#495057",
		Border: "#495057",
	},
	Light: {
		Accent: "#2B6CB0",
		Green:  "#2F855A",
		Yellow: "#B7791F",
		Red:    "#C53030",
		Gray:   "#718096",
		Text:   "#1A202C",
		Subtle: "#CBD5E0",
		Border: "#E2E8F0",
	},
}

// Theme is a palette plus every style the views use.
type Theme struct {
	Preference Preference
	Palette    Palette

	Header       lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	StatusBar    lipgloss.Style
	Panel        lipgloss.Style
	ListItem     lipgloss.Style
	SelectedItem lipgloss.Style
	Completed    lipgloss.Style
	Section      lipgloss.Style
	Help         lipgloss.Style
	Error        lipgloss.Style
	Muted        lipgloss.Style
}

// New builds the theme for pref.
func New(pref Preference) *Theme {
	if pref != Dark {
		pref = Light
	}
	p := palettes[pref]

	return &Theme{
		Preference: pref,
		Palette:    p,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.Accent).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(p.Gray).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent).
			Underline(true).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Subtle).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),
		ListItem: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(p.Text),
		SelectedItem: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(p.Accent).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Accent),
		Completed: lipgloss.NewStyle().
			Foreground(p.Gray).
			Strikethrough(true),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Gray).
			MarginTop(1),
		Help: lipgloss.NewStyle().
			Foreground(p.Gray).
			Italic(true),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Red),
		Muted: lipgloss.NewStyle().
			Foreground(p.Gray),
	}
}

// Checkbox renders the completion marker.
func (t *Theme) Checkbox(done bool) string {
	if done {
		return lipgloss.NewStyle().Foreground(t.Palette.Green).Render("[x]")
	}
	return t.Muted.Render("[ ]")
}

// Swatch renders a dot in a category color. Invalid colors fall back to gray.
func (t *Theme) Swatch(hex string) string {
	color := lipgloss.Color(t.Palette.Gray)
	if len(hex) == 7 && hex[0] == '#' {
		color = lipgloss.Color(hex)
	}
	return lipgloss.NewStyle().Foreground(color).Render("●")
}

// Badge renders a category label in its color.
func (t *Theme) Badge(label, hex string) string {
	color := lipgloss.Color(t.Palette.Gray)
	if len(hex) == 7 && hex[0] == '#' {
		color = lipgloss.Color(hex)
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(label)
}
