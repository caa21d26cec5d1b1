package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/glance/internal/bar"
)

func (m Model) renderMain() string {
	rows := []string{m.renderHeader(), m.renderBar()}
	if m.showLogs {
		rows = append(rows, m.renderLogs())
	} else if gap := m.height - 3; gap > 0 {
		rows = append(rows, m.theme.Load().Styles().Bar.
			Width(m.width).
			Height(gap).
			Render(""))
	}
	rows = append(rows, m.renderCommandBar())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderHeader shows the logo, theme, failing adapters and the time of the
// last bar change.
func (m Model) renderHeader() string {
	th := m.theme.Load()
	styles := th.Styles()
	surface := lipgloss.NewStyle().Background(lipgloss.Color(th.Surface))

	parts := []string{
		styles.Logo.Inherit(surface).Render("glance"),
		styles.MutedText.Inherit(surface).Render(th.Name),
	}
	if len(m.failing) > 0 {
		danger := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Danger)).Bold(true).Inherit(surface)
		parts = append(parts, danger.Render(strings.Join(m.failing, ", ")+" failing"))
	}
	if !m.lastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Inherit(surface).Render("updated "+m.lastUpdated.Format("15:04:05")))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, surface.Render("  ")))
}

// renderBar draws the composed segments the way a status bar would.
func (m Model) renderBar() string {
	styles := m.theme.Load().Styles()
	if len(m.segments) == 0 {
		return styles.Bar.Width(m.width).Render(styles.FaintText.Render("no segments enabled"))
	}
	return styles.Bar.Width(m.width).Render(renderSegments(m.segments))
}

func renderSegments(segs []bar.Segment) string {
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		parts = append(parts, bar.StyleFor(nil, seg).Render(seg.Text))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderLogs() string {
	if m.logState.err != nil {
		styles := m.theme.Load().Styles()
		msg := fmt.Sprintf("log unavailable: %v", m.logState.err)
		return styles.LogLine.Width(m.width).Height(m.logViewportHeight()).Render(msg)
	}
	return m.theme.Load().Styles().LogLine.Render(m.logViewport.View())
}

// renderCommandBar lists the main key bindings.
func (m Model) renderCommandBar() string {
	th := m.theme.Load()
	styles := th.Styles()
	surface := lipgloss.NewStyle().Background(lipgloss.Color(th.Surface))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent)).Inherit(surface)

	var parts []string
	for _, binding := range m.keys.footer() {
		h := binding.Help()
		parts = append(parts, keyStyle.Render(h.Key)+surface.Render(" ")+styles.MutedText.Inherit(surface).Render(h.Desc))
	}
	if m.showLogs && !m.logState.follow {
		parts = append(parts, styles.FaintText.Inherit(surface).Render("paused"))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, surface.Render("  ")))
}
