package logtail

import (
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/glance/internal/logging"
	"github.com/five82/glance/internal/theme"
)

// line is one tint log line split into its parts. Lines that do not start
// with a timestamp keep everything in Message.
type line struct {
	Time    string
	Level   string
	Message string
	Attrs   string
}

var attrStart = regexp.MustCompile(`\s[A-Za-z_][\w.]*=`)

func parseLine(s string) line {
	n := len(logging.TimeFormat)
	if len(s) <= n || s[n] != ' ' {
		return line{Message: s}
	}
	if _, err := time.Parse(logging.TimeFormat, s[:n]); err != nil {
		return line{Message: s}
	}
	out := line{Time: s[:n]}
	rest := s[n+1:]
	if lvl, after, ok := strings.Cut(rest, " "); ok && isLevel(lvl) {
		out.Level = lvl
		rest = after
	}
	if loc := attrStart.FindStringIndex(rest); loc != nil {
		out.Message = rest[:loc[0]]
		out.Attrs = rest[loc[0]+1:]
	} else {
		out.Message = rest
	}
	return out
}

func isLevel(s string) bool {
	switch strings.TrimRight(s, "+-0123456789") {
	case "DBG", "INF", "WRN", "ERR":
		return true
	}
	return false
}

// Colorizer styles log lines with a theme.
type Colorizer struct {
	timestamp lipgloss.Style
	message   lipgloss.Style
	attrs     lipgloss.Style
	levels    map[string]lipgloss.Style
}

// NewColorizer builds styles for th using r, or the lipgloss default when r
// is nil.
func NewColorizer(r *lipgloss.Renderer, th theme.Theme) Colorizer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	level := func(color string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	}
	return Colorizer{
		timestamp: r.NewStyle().Foreground(lipgloss.Color(th.Faint)),
		message:   r.NewStyle().Foreground(lipgloss.Color(th.Text)),
		attrs:     r.NewStyle().Foreground(lipgloss.Color(th.Muted)),
		levels: map[string]lipgloss.Style{
			"DBG": level(th.Info),
			"INF": level(th.Success),
			"WRN": level(th.Warning),
			"ERR": level(th.Danger),
		},
	}
}

// Line colorizes one log line. Unrecognised lines are styled as plain
// messages.
func (c Colorizer) Line(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	l := parseLine(s)
	var parts []string
	if l.Time != "" {
		parts = append(parts, c.timestamp.Render(l.Time))
	}
	if l.Level != "" {
		parts = append(parts, c.levelStyle(l.Level).Render(l.Level))
	}
	if l.Message != "" {
		parts = append(parts, c.message.Render(l.Message))
	}
	if l.Attrs != "" {
		parts = append(parts, c.attrs.Render(l.Attrs))
	}
	return strings.Join(parts, " ")
}

// Lines colorizes each line.
func (c Colorizer) Lines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = c.Line(l)
	}
	return out
}

func (c Colorizer) levelStyle(level string) lipgloss.Style {
	if s, ok := c.levels[level[:3]]; ok {
		return s
	}
	return c.message
}
