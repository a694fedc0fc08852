package ui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/roster"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func focusedForm() playerForm {
	f := newPlayerForm()
	for i := range f.inputs {
		f.inputs[i].Cursor.BlinkSpeed = time.Millisecond
	}
	_ = f.Focus()
	return f
}

// drain runs cmd and every command batched under it.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, drain(c)...)
	}
	return out
}

func hasBlink(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(cursor.BlinkMsg); ok {
			return true
		}
	}
	return false
}

func press(f playerForm, msgs ...tea.KeyMsg) (playerForm, tea.Cmd) {
	keys := DefaultKeyMap()
	var cmd tea.Cmd
	for _, msg := range msgs {
		f, cmd = f.Update(msg, keys)
	}
	return f, cmd
}

func TestPlayerForm_SubmitEmitsCreateMsg(t *testing.T) {
	f := focusedForm()
	f, cmd := press(f,
		runes("Rex"), keyOf(tea.KeyTab),
		runes("Pug"), keyOf(tea.KeyTab),
		runes("https://example.com/rex.png"), keyOf(tea.KeyTab),
		keyOf(tea.KeyRight), keyOf(tea.KeyTab), // status: bench -> field
		keyOf(tea.KeyRight), keyOf(tea.KeyTab), // team: Fluff -> Ruff
		keyOf(tea.KeyEnter),
	)
	if cmd == nil {
		t.Fatalf("submit returned nil cmd")
	}
	msgs := drain(cmd)
	var created []CreateMsg
	for _, msg := range msgs {
		if c, ok := msg.(CreateMsg); ok {
			created = append(created, c)
		}
	}
	if len(created) != 1 {
		t.Fatalf("submit produced %#v, want exactly one CreateMsg", msgs)
	}
	if !hasBlink(msgs) {
		t.Fatalf("submit produced %#v, want the name cursor to blink again", msgs)
	}
	got := created[0].Player
	if got.Name != "Rex" || got.Breed != "Pug" || got.ImageURL != "https://example.com/rex.png" {
		t.Fatalf("candidate = %#v, want Rex/Pug/image", got)
	}
	if got.Status != roster.StatusField {
		t.Fatalf("Status = %q, want %q", got.Status, roster.StatusField)
	}
	if got.TeamID == nil || *got.TeamID != roster.TeamRuff {
		t.Fatalf("TeamID = %v, want %d", got.TeamID, roster.TeamRuff)
	}

	// The form is cleared after a submission.
	if f.inputs[fieldName].Value() != "" || f.inputs[fieldBreed].Value() != "" || f.inputs[fieldImage].Value() != "" {
		t.Fatalf("form not cleared after submit")
	}
	if f.focus != fieldName || f.statusIdx != 0 || f.teamIdx != 0 {
		t.Fatalf("form state not reset: focus=%d status=%d team=%d", f.focus, f.statusIdx, f.teamIdx)
	}
}

func TestPlayerForm_NoTeamYieldsNilTeamID(t *testing.T) {
	f := focusedForm()
	f, _ = press(f, runes("Ann"), keyOf(tea.KeyTab), runes("Beagle"))
	f.setFocus(fieldTeam)
	f, _ = press(f, keyOf(tea.KeyLeft)) // Fluff wraps to No Team

	if label := f.teams[f.teamIdx].label; label != "No Team" {
		t.Fatalf("team label = %q, want No Team", label)
	}
	candidate := f.Candidate()
	if candidate.TeamID != nil {
		t.Fatalf("TeamID = %v, want nil", *candidate.TeamID)
	}
	if candidate.ImageURL != "" {
		t.Fatalf("ImageURL = %q, want blank passthrough", candidate.ImageURL)
	}
	if candidate.Status != roster.StatusBench {
		t.Fatalf("Status = %q, want default %q", candidate.Status, roster.StatusBench)
	}
}

func TestPlayerForm_RefusesBlankRequiredFields(t *testing.T) {
	cases := []struct {
		name      string
		typeName  string
		typeBreed string
		wantFocus formField
	}{
		{"both blank", "", "", fieldName},
		{"blank breed", "Rex", "  ", fieldBreed},
		{"blank name", " ", "Pug", fieldName},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := focusedForm()
			f.inputs[fieldName].SetValue(tc.typeName)
			f.inputs[fieldBreed].SetValue(tc.typeBreed)
			f.setFocus(fieldSubmit)

			f, cmd := press(f, keyOf(tea.KeyEnter))
			msgs := drain(cmd)
			for _, msg := range msgs {
				if _, ok := msg.(CreateMsg); ok {
					t.Fatalf("submit with blank fields produced a CreateMsg")
				}
			}
			if !hasBlink(msgs) {
				t.Fatalf("refused submit produced %#v, want the refocused cursor to blink", msgs)
			}
			if f.hint != requiredHint {
				t.Fatalf("hint = %q, want %q", f.hint, requiredHint)
			}
			if f.focus != tc.wantFocus {
				t.Fatalf("focus = %d, want %d", f.focus, tc.wantFocus)
			}
		})
	}
}

func TestPlayerForm_TabWrapsAround(t *testing.T) {
	f := focusedForm()
	f, _ = press(f, keyOf(tea.KeyShiftTab))
	if f.focus != fieldSubmit {
		t.Fatalf("shift+tab from name focus = %d, want submit", f.focus)
	}
	f, _ = press(f, keyOf(tea.KeyTab))
	if f.focus != fieldName {
		t.Fatalf("tab from submit focus = %d, want name", f.focus)
	}
}

func TestPlayerForm_SelectorsIgnoreTyping(t *testing.T) {
	f := focusedForm()
	f.setFocus(fieldStatus)
	f, _ = press(f, runes("z"))
	if f.statusIdx != 0 {
		t.Fatalf("statusIdx = %d, want unchanged", f.statusIdx)
	}
	for i := range f.inputs {
		if v := f.inputs[i].Value(); v != "" {
			t.Fatalf("input %d = %q, want empty", i, v)
		}
	}
}
