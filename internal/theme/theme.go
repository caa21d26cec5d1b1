// Package theme defines the color palettes shared by the segment
// formatters and the terminal UI.
package theme

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette of hex colors.
type Theme struct {
	Name string

	Background string // bar background in the TUI
	Surface    string // header and footer rows
	SurfaceAlt string // filled segments, e.g. memory

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string // error placeholders
	Info    string
}

// Styles are lipgloss styles derived from a theme for the TUI chrome.
type Styles struct {
	Bar       lipgloss.Style
	Footer    lipgloss.Style
	Logo      lipgloss.Style
	MutedText lipgloss.Style
	FaintText lipgloss.Style
	LogLine   lipgloss.Style
}

// Styles returns the lipgloss styles for t.
func (t Theme) Styles() Styles {
	return Styles{
		Bar: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)).
			Foreground(lipgloss.Color(t.Text)),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		LogLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Background(lipgloss.Color(t.Background)),
	}
}

// Current is the active theme, shared by the formatters and the TUI.
type Current struct {
	v atomic.Value
}

// NewCurrent returns a holder starting at t.
func NewCurrent(t Theme) *Current {
	c := &Current{}
	c.v.Store(t)
	return c
}

// Load returns the active theme.
func (c *Current) Load() Theme {
	return c.v.Load().(Theme)
}

// Store makes t the active theme.
func (c *Current) Store(t Theme) {
	c.v.Store(t)
}

const DefaultName = "Classic"

var themes = map[string]Theme{
	"Classic": classicTheme(),
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Classic", "Dracula", "Slate"}

// Get returns a theme by name, falling back to Classic.
func Get(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return classicTheme()
}

// Next returns the theme name after current in the cycle.
func Next(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// Names returns available theme names in cycle order.
func Names() []string {
	out := make([]string, len(themeOrder))
	copy(out, themeOrder)
	return out
}

func classicTheme() Theme {
	// The colors the bar has always used on a plain dark desktop.
	return Theme{
		Name: "Classic",

		Background: "#111111",
		Surface:    "#222222",
		SurfaceAlt: "#556677",

		Text:    "#dddddd",
		Muted:   "#bbbbbb",
		Faint:   "#666666",
		Accent:  "#99aa11",
		Success: "#11bb55",
		Warning: "#ddaa33",
		Danger:  "#bb1155",
		Info:    "#99aaff",
	}
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Background: "#191A21", // BGDarker
		Surface:    "#282A36", // Background
		SurfaceAlt: "#44475A", // Selection

		Text:    "#F8F8F2", // Foreground
		Muted:   "#6272A4", // Comment
		Faint:   "#44475A", // Selection
		Accent:  "#BD93F9", // Purple
		Success: "#50FA7B", // Green
		Warning: "#FFB86C", // Orange
		Danger:  "#FF5555", // Red
		Info:    "#8BE9FD", // Cyan
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#334155", // slate-700

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}
