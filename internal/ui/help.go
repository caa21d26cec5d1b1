package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	th := m.theme.Load()
	styles := th.Styles()

	sections := []helpSection{
		{title: "Bar", bindings: []key.Binding{m.keys.CycleTheme, m.keys.ToggleLogs}},
		{title: "Logs", bindings: []key.Binding{m.keys.ToggleFollow, m.keys.Top, m.keys.Bottom}},
		{title: "General", bindings: []key.Binding{m.keys.Help, m.keys.Quit}},
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.Warning)).
		Width(12)
	textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Text))

	for i, section := range sections {
		b.WriteString(styles.MutedText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key))
			b.WriteString(textStyle.Render(h.Desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(th.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(th.Background)),
	)
}
