package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/roster"
	"github.com/five82/roster/internal/state"
)

// fakeActions records controller calls and answers with canned snapshots.
type fakeActions struct {
	mu    sync.Mutex
	calls []string
	next  state.Snapshot
}

func (f *fakeActions) record(call string) state.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	snap := f.next
	snap.LastUpdated = time.Now()
	return snap
}

func (f *fakeActions) ShowAll(ctx context.Context) state.Snapshot {
	return f.record("ShowAll")
}

func (f *fakeActions) ShowPlayer(ctx context.Context, id int64) state.Snapshot {
	return f.record("ShowPlayer:" + itoa(id))
}

func (f *fakeActions) AddNewPlayer(ctx context.Context, candidate roster.NewPlayer) state.Snapshot {
	return f.record("AddNewPlayer:" + candidate.Name)
}

func (f *fakeActions) RemovePlayer(ctx context.Context, id int64) state.Snapshot {
	return f.record("RemovePlayer:" + itoa(id))
}

func (f *fakeActions) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func listSnapshot(at time.Time, players ...roster.Player) state.Snapshot {
	return state.Snapshot{View: state.ViewList, Players: players, Loaded: true, LastUpdated: at}
}

func newTestModel(t *testing.T, actions Actions) Model {
	t.Helper()
	m := New(Options{Actions: actions, PrefsPath: t.TempDir() + "/prefs.toml", Cohort: "test-cohort"})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// rosterFocused moves focus from the form to the roster pane.
func rosterFocused(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, keyOf(tea.KeyEscape))
	if m.focus != paneRoster {
		t.Fatalf("focus = %d, want roster", m.focus)
	}
	return m
}

func TestModel_InitFetchesAllPlayers(t *testing.T) {
	actions := &fakeActions{next: listSnapshot(time.Time{}, roster.Player{ID: 1, Name: "Rex"})}
	m := newTestModel(t, actions)

	if m.focus != paneForm {
		t.Fatalf("initial focus = %d, want form", m.focus)
	}
	if m.pending != 1 {
		t.Fatalf("pending = %d, want 1 before the first list arrives", m.pending)
	}

	msg := m.showAllCmd()()
	m, _ = update(t, m, msg)

	if got := actions.Calls(); len(got) != 1 || got[0] != "ShowAll" {
		t.Fatalf("calls = %v, want [ShowAll]", got)
	}
	if m.pending != 0 || len(m.snapshot.Players) != 1 {
		t.Fatalf("pending=%d players=%d, want 0 and 1", m.pending, len(m.snapshot.Players))
	}
	if !strings.Contains(m.View(), "Rex") {
		t.Fatalf("view does not render the fetched player")
	}
}

func TestModel_CommandMessagesRunOneControllerCall(t *testing.T) {
	cases := []struct {
		name string
		msg  tea.Msg
		want string
	}{
		{"details", ViewDetailsMsg{ID: 3}, "ShowPlayer:3"},
		{"remove", RemoveMsg{ID: 4}, "RemovePlayer:4"},
		{"create", CreateMsg{Player: roster.NewPlayer{Name: "Ann"}}, "AddNewPlayer:Ann"},
		{"back", BackMsg{}, "ShowAll"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actions := &fakeActions{}
			m := newTestModel(t, actions)
			m, cmd := update(t, m, tc.msg)
			if cmd == nil {
				t.Fatalf("Update(%T) returned nil cmd", tc.msg)
			}
			if len(actions.Calls()) != 0 {
				t.Fatalf("controller called before the cmd ran")
			}
			if _, ok := cmd().(snapshotMsg); !ok {
				t.Fatalf("cmd did not produce a snapshotMsg")
			}
			if got := actions.Calls(); len(got) != 1 || got[0] != tc.want {
				t.Fatalf("calls = %v, want [%s]", got, tc.want)
			}
			if m.pending != 2 {
				t.Fatalf("pending = %d, want 2 (init plus this call)", m.pending)
			}
		})
	}
}

func TestModel_CardTriggersCarryPlayerID(t *testing.T) {
	m := newTestModel(t, &fakeActions{})
	m, _ = update(t, m, snapshotMsg(listSnapshot(time.Now(),
		roster.Player{ID: 10, Name: "Rex"},
		roster.Player{ID: 20, Name: "Ann"},
	)))
	m = rosterFocused(t, m)

	m, _ = update(t, m, runes("j"))
	if m.selectedRow != 1 || m.selectedID != 20 {
		t.Fatalf("selection = row %d id %d, want row 1 id 20", m.selectedRow, m.selectedID)
	}

	_, cmd := update(t, m, keyOf(tea.KeyEnter))
	if got, ok := cmd().(ViewDetailsMsg); !ok || got.ID != 20 {
		t.Fatalf("enter produced %#v, want ViewDetailsMsg{20}", cmd())
	}
	_, cmd = update(t, m, runes("x"))
	if got, ok := cmd().(RemoveMsg); !ok || got.ID != 20 {
		t.Fatalf("x produced %#v, want RemoveMsg{20}", cmd())
	}
}

func TestModel_EmptyListTriggersNothing(t *testing.T) {
	m := newTestModel(t, &fakeActions{})
	m, _ = update(t, m, snapshotMsg(listSnapshot(time.Now())))
	m = rosterFocused(t, m)

	if _, cmd := update(t, m, keyOf(tea.KeyEnter)); cmd != nil {
		t.Fatalf("enter on empty list returned a cmd")
	}
	if _, cmd := update(t, m, runes("x")); cmd != nil {
		t.Fatalf("x on empty list returned a cmd")
	}
	if !strings.Contains(m.View(), emptyRosterText) {
		t.Fatalf("view missing %q", emptyRosterText)
	}
}

func TestModel_SelectionFollowsIDAcrossRefreshes(t *testing.T) {
	base := time.Now()
	m := newTestModel(t, &fakeActions{})
	m, _ = update(t, m, snapshotMsg(listSnapshot(base,
		roster.Player{ID: 1}, roster.Player{ID: 2}, roster.Player{ID: 3},
	)))
	m.selectRow(2)

	m, _ = update(t, m, snapshotMsg(listSnapshot(base.Add(time.Second),
		roster.Player{ID: 3}, roster.Player{ID: 4},
	)))
	if m.selectedRow != 0 || m.selectedID != 3 {
		t.Fatalf("selection = row %d id %d, want row 0 id 3", m.selectedRow, m.selectedID)
	}

	m.selectRow(1)
	m, _ = update(t, m, snapshotMsg(listSnapshot(base.Add(2*time.Second),
		roster.Player{ID: 9},
	)))
	if m.selectedRow != 0 || m.selectedID != 9 {
		t.Fatalf("selection = row %d id %d, want clamp to row 0 id 9", m.selectedRow, m.selectedID)
	}
}

func TestModel_OlderSnapshotIsIgnored(t *testing.T) {
	base := time.Now()
	m := newTestModel(t, &fakeActions{})
	m, _ = update(t, m, snapshotMsg(listSnapshot(base, roster.Player{ID: 2, Name: "new"})))
	m, _ = update(t, m, snapshotMsg(listSnapshot(base.Add(-time.Second), roster.Player{ID: 1, Name: "old"})))

	if len(m.snapshot.Players) != 1 || m.snapshot.Players[0].Name != "new" {
		t.Fatalf("players = %#v, want the newer snapshot", m.snapshot.Players)
	}
}

func TestModel_DetailViewBackIssuesBackMsg(t *testing.T) {
	team := int64(roster.TeamFluff)
	detail := roster.Player{ID: 7, Name: "Rex", Breed: "Pug", Status: roster.StatusField, TeamID: &team}
	m := newTestModel(t, &fakeActions{})
	m, _ = update(t, m, snapshotMsg(state.Snapshot{
		View:        state.ViewDetail,
		Players:     []roster.Player{detail},
		Detail:      &detail,
		DetailID:    7,
		Loaded:      true,
		LastUpdated: time.Now(),
	}))
	m = rosterFocused(t, m)

	view := m.View()
	for _, want := range []string{"Rex", "#7", "Pug", "Fluff", "Field"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q", want)
		}
	}

	if _, cmd := update(t, m, runes("x")); cmd != nil {
		t.Fatalf("remove is not a detail view trigger")
	}
	_, cmd := update(t, m, keyOf(tea.KeyEscape))
	if _, ok := cmd().(BackMsg); !ok {
		t.Fatalf("esc in detail view produced %#v, want BackMsg", cmd())
	}
}

func TestModel_FormFocusToggles(t *testing.T) {
	m := newTestModel(t, &fakeActions{})
	m = rosterFocused(t, m)
	m, _ = update(t, m, runes("n"))
	if m.focus != paneForm {
		t.Fatalf("n did not return focus to the form")
	}
	// Letters go to the form while it has focus.
	m, cmd := update(t, m, runes("q"))
	if m.form.inputs[fieldName].Value() != "q" {
		t.Fatalf("name input = %q, want q", m.form.inputs[fieldName].Value())
	}
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatalf("q in the form quit the program")
		}
	}
}

func TestModel_ErrorShowsInHeaderOnly(t *testing.T) {
	m := newTestModel(t, &fakeActions{})
	snap := listSnapshot(time.Now())
	snap.LastError = errors.New("dial tcp: connection refused")
	m, _ = update(t, m, snapshotMsg(snap))

	header := m.renderHeader()
	if !strings.Contains(header, "OFFLINE") {
		t.Fatalf("header = %q, want OFFLINE label", header)
	}
	if !strings.Contains(m.View(), emptyRosterText) {
		t.Fatalf("failed refresh should render an empty roster")
	}
}

func TestModel_CycleThemePersists(t *testing.T) {
	m := newTestModel(t, &fakeActions{})
	m = rosterFocused(t, m)
	before := m.theme.Name
	m, _ = update(t, m, runes("T"))
	if m.theme.Name == before || m.theme.Name != NextTheme(before) {
		t.Fatalf("theme = %q, want %q", m.theme.Name, NextTheme(before))
	}
}

func TestRun_RequiresActions(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Fatalf("Run without actions returned nil error")
	}
}
