package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/glance/internal/bar"
	"github.com/five82/glance/internal/prefs"
	"github.com/five82/glance/internal/theme"
)

// Options configures the UI.
type Options struct {
	Table     *bar.Table
	Theme     *theme.Current
	PrefsPath string // empty uses ~/.config/glance/prefs.toml
	LogFile   string
	Logger    *slog.Logger
	// OnTheme runs after the theme changes so segments can be restyled.
	OnTheme func()
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	table     *bar.Table
	theme     *theme.Current
	prefsPath string
	logFile   string
	logger    *slog.Logger
	onTheme   func()
	keys      keyMap

	// UI state
	width    int
	height   int
	ready    bool
	showHelp bool

	// Bar state
	segments    []bar.Segment
	failing     []string
	lastUpdated time.Time

	// Log state
	showLogs    bool
	logViewport viewport.Model
	logState    logState
}

// New creates a new Bubble Tea model.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	current := opts.Theme
	if current == nil {
		current = theme.NewCurrent(theme.Get(theme.DefaultName))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	table := opts.Table
	if table == nil {
		table = bar.NewTable()
	}

	return Model{
		ctx:       ctx,
		table:     table,
		theme:     current,
		prefsPath: prefsPath,
		logFile:   opts.LogFile,
		logger:    logger,
		onTheme:   opts.OnTheme,
		keys:      DefaultKeyMap(),
		logState:  logState{follow: true},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		snapshotCmd(m.table),
		waitForChangeCmd(m.ctx, m.table),
		logTickCmd(logRefreshInterval),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateLogViewport()
		return m, nil

	case snapshotMsg:
		m.segments = msg
		m.failing = m.table.Failing()
		m.lastUpdated = time.Now()
		return m, nil

	case changedMsg:
		m.segments = m.table.Snapshot()
		m.failing = m.table.Failing()
		m.lastUpdated = time.Now()
		return m, waitForChangeCmd(m.ctx, m.table)

	case logTickMsg:
		cmds := []tea.Cmd{logTickCmd(logRefreshInterval)}
		if m.showLogs {
			cmds = append(cmds, loadLogsCmd(m.logFile))
		}
		return m, tea.Batch(cmds...)

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil

	case logErrorMsg:
		m.logState.err = msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			m.updateLogViewport()
			return m, loadLogsCmd(m.logFile)
		}
		return m, nil
	}

	if m.showLogs {
		return m, m.handleLogsKey(msg)
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	next := theme.Get(theme.Next(m.theme.Load().Name))
	m.theme.Store(next)
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: next.Name}); err != nil {
		m.logger.Warn("save prefs", "error", err)
	}
	m.logger.Info("theme changed", "theme", next.Name)
	if m.onTheme != nil {
		m.onTheme()
	}
	m.logState.rendered = false
	m.updateLogViewport()
}

// Messages

type snapshotMsg []bar.Segment

type changedMsg struct{}

// Commands

func snapshotCmd(table *bar.Table) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(table.Snapshot())
	}
}

// waitForChangeCmd blocks until the table changes. The model re-arms it
// after every change.
func waitForChangeCmd(ctx context.Context, table *bar.Table) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-table.Changed():
			return changedMsg{}
		}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
