package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/roster/internal/state"
)

// Terminal width below which the form stacks above the roster.
const layoutSplitWidth = 90

// formPaneWidth is the form column width in the side-by-side layout.
const formPaneWidth = 46

// renderMain renders header, command bar, and the two panes.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent lays out the form and roster panes for the window size.
func (m Model) renderContent() string {
	height := max(m.height-2, 6)
	styles := m.theme.Styles()
	form := m.form.View(styles, m.focus == paneForm)

	if m.width >= layoutSplitWidth {
		formBox := m.renderBox("Add Player", form, formPaneWidth, height, m.focus == paneForm)
		rosterWidth := m.width - formPaneWidth
		rosterBox := m.renderBox(m.rosterTitle(), m.renderRoster(rosterWidth-4, height-3), rosterWidth, height, m.focus == paneRoster)
		return lipgloss.JoinHorizontal(lipgloss.Top, formBox, rosterBox)
	}

	formHeight := min(lipgloss.Height(form)+3, height/2)
	formBox := m.renderBox("Add Player", form, m.width, formHeight, m.focus == paneForm)
	rosterHeight := height - formHeight
	rosterBox := m.renderBox(m.rosterTitle(), m.renderRoster(m.width-4, rosterHeight-3), m.width, rosterHeight, m.focus == paneRoster)
	return lipgloss.JoinVertical(lipgloss.Left, formBox, rosterBox)
}

func (m Model) rosterTitle() string {
	if m.snapshot.View == state.ViewDetail && m.snapshot.Detail != nil {
		return fmt.Sprintf("Player #%d", m.snapshot.DetailID)
	}
	return fmt.Sprintf("All Players (%d)", len(m.snapshot.Players))
}

// renderRoster renders the main pane for the current view.
func (m Model) renderRoster(width, height int) string {
	if m.snapshot.View == state.ViewDetail && m.snapshot.Detail != nil {
		return renderSinglePlayer(m.theme, *m.snapshot.Detail, width)
	}
	if !m.snapshot.Loaded {
		return m.theme.Styles().MutedText.Render(loadingText)
	}
	return renderAllPlayers(m.theme, m.snapshot.Players, m.selectedRow, width, height)
}

// renderBox draws a titled, rounded border of exactly width x height cells.
// Content beyond the box is clipped.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	styles := m.theme.Styles()
	border := m.theme.BorderMuted
	head := styles.MutedText.Bold(true).Render(title)
	if focused {
		border = m.theme.BorderFocus
		head = styles.AccentText.Bold(true).Render(title)
	}

	inner := max(height-2, 1)
	lines := strings.Split(head+"\n"+content, "\n")
	if len(lines) > inner {
		lines = lines[:inner]
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(max(width-2, 0)).
		Height(inner).
		Render(strings.Join(lines, "\n"))
}

// renderHeader renders the status line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("roster", styles.Logo)}
	if m.cohort != "" {
		parts = append(parts, bg.Render(m.cohort, styles.MutedText))
	}
	parts = append(parts,
		bg.Render("Players:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", len(m.snapshot.Players)), styles.Text),
	)

	switch {
	case m.pending > 0:
		parts = append(parts, bg.Render("Loading...", styles.WarningText.Bold(true)))
	case m.snapshot.LastError != nil:
		label := classifyError(m.snapshot.LastError)
		parts = append(parts, bg.Render("Last refresh "+label, styles.DangerText)+bg.Space()+
			bg.Render("(L for details)", styles.FaintText))
	case !m.snapshot.LastUpdated.IsZero():
		parts = append(parts, bg.Render("Updated "+m.snapshot.LastUpdated.Format("15:04:05"), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders key hints for the focused pane.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.focus == paneForm:
		commands = []cmd{
			{"tab", "Next field"},
			{"←/→", "Change option"},
			{"enter", "Next/Submit"},
			{"esc", "Players"},
		}
	case m.snapshot.View == state.ViewDetail:
		commands = []cmd{
			{"esc", "Back"},
			{"n", "Add"},
			{"L", "Logs"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Details"},
			{"x", "Remove"},
			{"n", "Add"},
			{"r", "Reload"},
			{"L", "Logs"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}
