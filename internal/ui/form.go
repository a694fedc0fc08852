package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/roster/internal/roster"
)

type formField int

const (
	fieldName formField = iota
	fieldBreed
	fieldImage
	fieldStatus
	fieldTeam
	fieldSubmit
	fieldCount
)

const requiredHint = "Name and breed are required"

// teamChoice is one option of the team selector. A nil id means no team.
type teamChoice struct {
	label string
	id    *int64
}

func teamChoices() []teamChoice {
	teams := roster.Teams()
	out := make([]teamChoice, 0, len(teams)+1)
	for _, t := range teams {
		id := t.ID
		out = append(out, teamChoice{label: t.Name, id: &id})
	}
	return append(out, teamChoice{label: "No Team"})
}

// playerForm collects a new player. Text fields are free-form; status and
// team are closed selectors.
type playerForm struct {
	inputs   [3]textinput.Model // name, breed, image URL
	statuses []string
	teams    []teamChoice

	statusIdx int
	teamIdx   int
	focus     formField
	hint      string
}

func newPlayerForm() playerForm {
	placeholders := [3]string{"Player Name", "Player Breed", "Player Image URL"}
	limits := [3]int{64, 64, 512}

	var f playerForm
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 30
		ti.Prompt = ""
		f.inputs[i] = ti
	}
	f.statuses = roster.Statuses()
	f.teams = teamChoices()
	return f
}

// Focus activates the form at its current field.
func (f *playerForm) Focus() tea.Cmd {
	return f.setFocus(f.focus)
}

// Blur deactivates every text input.
func (f *playerForm) Blur() {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

func (f *playerForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	var cmd tea.Cmd
	for i := range f.inputs {
		if formField(i) == field {
			cmd = f.inputs[i].Focus()
			continue
		}
		f.inputs[i].Blur()
	}
	return cmd
}

func (f *playerForm) move(delta int) tea.Cmd {
	next := (int(f.focus) + delta + int(fieldCount)) % int(fieldCount)
	return f.setFocus(formField(next))
}

// Update handles a key while the form has focus. Submitting yields a
// CreateMsg command.
func (f playerForm) Update(msg tea.KeyMsg, keys keyMap) (playerForm, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		if f.focus == fieldSubmit {
			return f.submit()
		}
		return f, f.move(1)
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyShiftTab:
		if msg.Type == tea.KeyTab {
			return f, f.move(1)
		}
		return f, f.move(-1)
	}

	if f.focus >= fieldStatus {
		switch {
		case key.Matches(msg, keys.NextField):
			return f, f.move(1)
		case key.Matches(msg, keys.PrevField):
			return f, f.move(-1)
		case key.Matches(msg, keys.NextOption):
			f.cycle(1)
		case key.Matches(msg, keys.PrevOption):
			f.cycle(-1)
		}
		return f, nil
	}

	switch msg.Type {
	case tea.KeyDown:
		return f, f.move(1)
	case tea.KeyUp:
		return f, f.move(-1)
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.hint != "" && f.filled() {
		f.hint = ""
	}
	return f, cmd
}

func (f *playerForm) cycle(delta int) {
	switch f.focus {
	case fieldStatus:
		f.statusIdx = (f.statusIdx + delta + len(f.statuses)) % len(f.statuses)
	case fieldTeam:
		f.teamIdx = (f.teamIdx + delta + len(f.teams)) % len(f.teams)
	}
}

func (f playerForm) filled() bool {
	return strings.TrimSpace(f.inputs[fieldName].Value()) != "" &&
		strings.TrimSpace(f.inputs[fieldBreed].Value()) != ""
}

// Candidate builds the request body from the current field values.
func (f playerForm) Candidate() roster.NewPlayer {
	candidate := roster.NewPlayer{
		Name:     strings.TrimSpace(f.inputs[fieldName].Value()),
		Breed:    strings.TrimSpace(f.inputs[fieldBreed].Value()),
		ImageURL: strings.TrimSpace(f.inputs[fieldImage].Value()),
		Status:   f.statuses[f.statusIdx],
	}
	if id := f.teams[f.teamIdx].id; id != nil {
		v := *id
		candidate.TeamID = &v
	}
	return candidate
}

func (f playerForm) submit() (playerForm, tea.Cmd) {
	if !f.filled() {
		f.hint = requiredHint
		if strings.TrimSpace(f.inputs[fieldName].Value()) == "" {
			return f, f.setFocus(fieldName)
		}
		return f, f.setFocus(fieldBreed)
	}
	candidate := f.Candidate()
	focus := f.reset()
	return f, tea.Batch(emit(CreateMsg{Player: candidate}), focus)
}

// reset clears every field and returns focus to the name input.
func (f *playerForm) reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	f.statusIdx = 0
	f.teamIdx = 0
	f.hint = ""
	return f.setFocus(fieldName)
}

// View renders the form. Labels light up only while the form has focus.
func (f playerForm) View(styles Styles, focused bool) string {
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Welcome to the Puppy Bowl!"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Add a new player to the roster:"))
	b.WriteString("\n\n")

	label := func(field formField, text string) string {
		padded := lipgloss.NewStyle().Width(8).Render(text)
		if focused && f.focus == field {
			return styles.AccentText.Render(padded)
		}
		return styles.MutedText.Render(padded)
	}
	selector := func(field formField, value string) string {
		if focused && f.focus == field {
			return styles.AccentText.Render("‹ ") + styles.Text.Bold(true).Render(value) + styles.AccentText.Render(" ›")
		}
		return styles.Text.Render("  " + value)
	}

	b.WriteString(label(fieldName, "Name*") + f.inputs[fieldName].View() + "\n")
	b.WriteString(label(fieldBreed, "Breed*") + f.inputs[fieldBreed].View() + "\n")
	b.WriteString(label(fieldImage, "Image") + f.inputs[fieldImage].View() + "\n")
	b.WriteString(label(fieldStatus, "Status") + selector(fieldStatus, roster.StatusLabel(f.statuses[f.statusIdx])) + "\n")
	b.WriteString(label(fieldTeam, "Team") + selector(fieldTeam, f.teams[f.teamIdx].label) + "\n\n")

	button := "[ Add New Player ]"
	if focused && f.focus == fieldSubmit {
		b.WriteString(styles.SuccessText.Render(button))
	} else {
		b.WriteString(styles.MutedText.Render(button))
	}

	if f.hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(f.hint))
	}
	return b.String()
}
