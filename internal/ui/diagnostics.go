package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/roster/internal/logtail"
)

// logTailLimit caps how many records the overlay reads from the log file.
const logTailLimit = 500

type logEntriesMsg struct {
	entries []logtail.Entry
	err     error
}

func loadLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(path) == "" {
			return logEntriesMsg{}
		}
		entries, err := logtail.ReadEntries(path, logTailLimit)
		return logEntriesMsg{entries: entries, err: err}
	}
}

func (m *Model) resizeLogViewport() {
	w, h := max(m.width-4, 10), max(m.height-5, 3)
	if m.logViewport.Width == 0 {
		m.logViewport = viewport.New(w, h)
	}
	m.logViewport.Width = w
	m.logViewport.Height = h
	m.logViewport.Style = lipgloss.NewStyle()
	m.refreshLogViewport()
}

func (m *Model) refreshLogViewport() {
	if m.logViewport.Width == 0 {
		return
	}
	m.logViewport.SetContent(formatLogEntries(m.theme.Styles(), m.logEntries, m.logErr))
	m.logViewport.GotoBottom()
}

// formatLogEntries renders one line per record, colored by level.
func formatLogEntries(styles Styles, entries []logtail.Entry, err error) string {
	if err != nil {
		return styles.DangerText.Render(fmt.Sprintf("Unable to read log: %v", err))
	}
	if len(entries) == 0 {
		return styles.MutedText.Render("No diagnostics recorded yet")
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		var b strings.Builder
		if !e.Time.IsZero() {
			b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
			b.WriteString(" ")
		}
		level := e.Level.String()
		b.WriteString(styles.LevelStyle(level).Render(fmt.Sprintf("%-5s", level)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(e.Message))
		for _, attr := range e.Attrs {
			b.WriteString(" ")
			b.WriteString(styles.MutedText.Render(attr.Key + "="))
			b.WriteString(styles.Text.Render(attr.Value))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Logs), key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, loadLogsCmd(m.logPath)
	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// renderLogs renders the diagnostics overlay.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := "Diagnostics"
	if m.logPath != "" {
		title += "  " + truncateMiddle(m.logPath, max(m.width-20, 10))
	}
	box := m.renderBox(title, m.logViewport.View(), m.width, m.height-1, true)
	hint := styles.AccentText.Render("L/esc") + styles.MutedText.Render(" close  ") +
		styles.AccentText.Render("r") + styles.MutedText.Render(" reload  ") +
		styles.AccentText.Render("j/k") + styles.MutedText.Render(" scroll")
	return box + "\n" + hint
}
