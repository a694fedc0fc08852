package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/roster/internal/roster"
)

const (
	emptyRosterText = "No players on the roster"
	loadingText     = "Fetching players..."
	noImageText     = "(no image)"

	// cardHeight is the rendered height of one list card, borders included.
	cardHeight = 4
)

// playerCard is one entry of the list view. Its triggers carry the id of
// the player it was rendered for.
type playerCard struct {
	Player  roster.Player
	Details ViewDetailsMsg
	Remove  RemoveMsg
}

func newPlayerCard(p roster.Player) playerCard {
	return playerCard{
		Player:  p,
		Details: ViewDetailsMsg{ID: p.ID},
		Remove:  RemoveMsg{ID: p.ID},
	}
}

// playerCards builds one card per player in fetch order.
func playerCards(players []roster.Player) []playerCard {
	cards := make([]playerCard, 0, len(players))
	for _, p := range players {
		cards = append(cards, newPlayerCard(p))
	}
	return cards
}

func (c playerCard) render(theme Theme, width int, selected bool) string {
	styles := theme.Styles()
	inner := max(width-4, 10)

	name := styles.Text.Bold(true).Render(truncate(c.Player.Name, inner-8))
	id := styles.FaintText.Render(fmt.Sprintf("#%d", c.Player.ID))
	image := c.Player.ImageURL
	if strings.TrimSpace(image) == "" {
		image = noImageText
	}
	second := styles.MutedText.Render(truncateMiddle(image, inner))
	if selected {
		second = styles.AccentText.Render("enter") + styles.MutedText.Render(" details  ") +
			styles.AccentText.Render("x") + styles.MutedText.Render(" remove  ") +
			styles.FaintText.Render(truncateMiddle(image, max(inner-26, 8)))
	}

	border := theme.BorderMuted
	if selected {
		border = theme.BorderFocus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Width(max(width-2, 0)).
		Render(name + "  " + id + "\n" + second)
}

// renderAllPlayers renders the list view: one card per player, scrolled so
// the selected card stays visible.
func renderAllPlayers(theme Theme, players []roster.Player, selected, width, height int) string {
	if len(players) == 0 {
		return theme.Styles().MutedText.Render(emptyRosterText)
	}
	cards := playerCards(players)
	start, end := visibleRange(len(cards), selected, max(height/cardHeight, 1))

	rendered := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rendered = append(rendered, cards[i].render(theme, width, i == selected))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// visibleRange returns the window [start, end) of at most capacity rows that
// contains selected.
func visibleRange(total, selected, capacity int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	if capacity <= 0 || capacity >= total {
		return 0, total
	}
	selected = min(max(selected, 0), total-1)
	start := 0
	if selected >= capacity {
		start = selected - capacity + 1
	}
	return start, start + capacity
}

// renderSinglePlayer renders the detail card for p.
func renderSinglePlayer(theme Theme, p roster.Player, width int) string {
	styles := theme.Styles()
	inner := max(width-6, 10)

	row := func(label, value string) string {
		return styles.MutedText.Render(fmt.Sprintf("%-8s", label)) + value
	}

	image := strings.TrimSpace(p.ImageURL)
	if image == "" {
		image = noImageText
	}
	breed := strings.TrimSpace(p.Breed)
	if breed == "" {
		breed = "-"
	}

	lines := []string{
		styles.Text.Bold(true).Render(p.Name) + "  " + styles.FaintText.Render(fmt.Sprintf("#%d", p.ID)),
		"",
		row("Breed", styles.Text.Render(breed)),
		row("Image", styles.InfoText.Render(truncateMiddle(image, inner-8))),
		row("Team", styles.TeamBadge(p.TeamName())),
		row("Status", styles.StatusBadge(p.Status)),
		row("Added", styles.Text.Render(formatAdded(p.ParsedCreatedAt(), time.Now()))),
		"",
		styles.AccentText.Render("esc") + styles.MutedText.Render(" back to all players"),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(0, 1).
		Width(max(width-2, 0)).
		Render(strings.Join(lines, "\n"))
}

func formatAdded(created, now time.Time) string {
	if created.IsZero() {
		return "unknown"
	}
	stamp := created.Local().Format("2006-01-02 15:04")
	age := humanizeDuration(now.Sub(created))
	if age == "now" {
		return stamp + " (just now)"
	}
	return fmt.Sprintf("%s (%s ago)", stamp, age)
}
