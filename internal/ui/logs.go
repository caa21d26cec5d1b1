package ui

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/glance/internal/logtail"
)

const (
	logRefreshInterval = 2 * time.Second
	logBufferLimit     = 400
)

// logState holds all log-related state.
type logState struct {
	lines    []string
	follow   bool
	rendered bool
	err      error
}

type logTickMsg time.Time

type logLinesMsg []string

type logErrorMsg struct{ err error }

func logTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return logTickMsg(t)
	})
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logLinesMsg(nil)
		}
		lines, err := logtail.Read(path, logBufferLimit)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logLinesMsg(lines)
	}
}

func (m *Model) handleLogLines(lines []string) {
	m.logState.err = nil
	if slices.Equal(m.logState.lines, lines) && m.logState.rendered {
		return
	}
	m.logState.lines = lines
	m.logState.rendered = false
	m.updateLogViewport()
}

// logViewportHeight leaves room for the header, the bar and the command bar.
func (m *Model) logViewportHeight() int {
	return max(m.height-3, 1)
}

// updateLogViewport resizes the viewport and re-renders content when needed.
func (m *Model) updateLogViewport() {
	if m.width == 0 {
		return
	}
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(m.width, m.logViewportHeight())
	}
	m.logViewport.Width = m.width
	m.logViewport.Height = m.logViewportHeight()

	if !m.logState.rendered {
		m.logViewport.SetContent(m.renderLogContent())
		m.logState.rendered = true
	}
	if m.logState.follow {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) renderLogContent() string {
	styles := m.theme.Load().Styles()
	if len(m.logState.lines) == 0 {
		return styles.FaintText.Render("No log lines yet")
	}
	colorizer := logtail.NewColorizer(nil, m.theme.Load())
	return strings.Join(colorizer.Lines(m.logState.lines), "\n")
}

func (m *Model) handleLogsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logState.follow = !m.logState.follow
		if m.logState.follow {
			m.logViewport.GotoBottom()
		}
		return nil
	case key.Matches(msg, m.keys.Top):
		m.logState.follow = false
		m.logViewport.GotoTop()
		return nil
	case key.Matches(msg, m.keys.Bottom):
		m.logState.follow = true
		m.logViewport.GotoBottom()
		return nil
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	if !m.logViewport.AtBottom() {
		m.logState.follow = false
	}
	return cmd
}
