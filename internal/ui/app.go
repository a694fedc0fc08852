package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/roster/internal/logtail"
	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/roster"
	"github.com/five82/roster/internal/state"
)

// Actions is the controller surface the UI drives. Each call blocks until
// the request and its state commit finish.
type Actions interface {
	ShowAll(ctx context.Context) state.Snapshot
	ShowPlayer(ctx context.Context, id int64) state.Snapshot
	AddNewPlayer(ctx context.Context, candidate roster.NewPlayer) state.Snapshot
	RemovePlayer(ctx context.Context, id int64) state.Snapshot
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Actions   Actions
	Cohort    string
	LogPath   string
	ThemeName string
	PrefsPath string
}

// pane identifies which half of the screen receives keys.
type pane int

const (
	paneForm pane = iota
	paneRoster
)

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	actions   Actions
	cohort    string
	logPath   string
	prefsPath string

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool
	focus  pane

	snapshot state.Snapshot
	pending  int

	// Selection follows a player id so refreshes do not jump the cursor.
	selectedRow int
	selectedID  int64

	form playerForm

	showHelp bool

	showLogs    bool
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	form := newPlayerForm()
	_ = form.Focus()

	m := Model{
		ctx:       ctx,
		actions:   opts.Actions,
		cohort:    opts.Cohort,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		theme:     GetTheme(opts.ThemeName),
		keys:      DefaultKeyMap(),
		focus:     paneForm,
		form:      form,
	}
	if m.actions != nil {
		m.pending = 1 // Init issues the first ShowAll
	}
	return m
}

// Messages that trigger controller operations. Cards and the form emit
// them; Update turns each into exactly one controller call.

// ViewDetailsMsg asks for the detail view of one player.
type ViewDetailsMsg struct{ ID int64 }

// RemoveMsg asks for a player to be removed from the roster.
type RemoveMsg struct{ ID int64 }

// CreateMsg asks for a new player to be added.
type CreateMsg struct{ Player roster.NewPlayer }

// BackMsg returns from the detail view to the full list.
type BackMsg struct{}

type snapshotMsg state.Snapshot

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.showAllCmd())
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
		m.resizeLogViewport()
		return m, nil

	case ViewDetailsMsg:
		return m.dispatch(func(ctx context.Context, a Actions) state.Snapshot {
			return a.ShowPlayer(ctx, msg.ID)
		})

	case RemoveMsg:
		return m.dispatch(func(ctx context.Context, a Actions) state.Snapshot {
			return a.RemovePlayer(ctx, msg.ID)
		})

	case CreateMsg:
		return m.dispatch(func(ctx context.Context, a Actions) state.Snapshot {
			return a.AddNewPlayer(ctx, msg.Player)
		})

	case BackMsg:
		return m.dispatch(func(ctx context.Context, a Actions) state.Snapshot {
			return a.ShowAll(ctx)
		})

	case snapshotMsg:
		if m.pending > 0 {
			m.pending--
		}
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case logEntriesMsg:
		m.logEntries = msg.entries
		m.logErr = msg.err
		m.refreshLogViewport()
		return m, nil
	}

	if m.focus == paneForm {
		var cmd tea.Cmd
		for i := range m.form.inputs {
			var c tea.Cmd
			m.form.inputs[i], c = m.form.inputs[i].Update(msg)
			if c != nil {
				cmd = c
			}
		}
		return m, cmd
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
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// dispatch runs op on a command goroutine and feeds its snapshot back.
func (m Model) dispatch(op func(context.Context, Actions) state.Snapshot) (tea.Model, tea.Cmd) {
	if m.actions == nil {
		return m, nil
	}
	m.pending++
	ctx, actions := m.ctx, m.actions
	return m, func() tea.Msg {
		return snapshotMsg(op(ctx, actions))
	}
}

func (m Model) showAllCmd() tea.Cmd {
	if m.actions == nil {
		return nil
	}
	ctx, actions := m.ctx, m.actions
	return func() tea.Msg {
		return snapshotMsg(actions.ShowAll(ctx))
	}
}

// applySnapshot replaces the rendered state wholesale. Snapshots taken
// before the one on screen are ignored; they were superseded in the store
// before this message was delivered.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.LastUpdated.Before(m.snapshot.LastUpdated) {
		return
	}
	m.snapshot = snap
	m.syncSelection()
}

// syncSelection keeps the cursor on the same player id when it survived
// the refresh, and clamps it otherwise.
func (m *Model) syncSelection() {
	players := m.snapshot.Players
	if len(players) == 0 {
		m.selectedRow, m.selectedID = 0, 0
		return
	}
	for i, p := range players {
		if p.ID == m.selectedID {
			m.selectedRow = i
			return
		}
	}
	m.selectedRow = min(max(m.selectedRow, 0), len(players)-1)
	m.selectedID = players[m.selectedRow].ID
}

func (m *Model) selectRow(row int) {
	players := m.snapshot.Players
	if len(players) == 0 {
		return
	}
	m.selectedRow = min(max(row, 0), len(players)-1)
	m.selectedID = players[m.selectedRow].ID
}

func (m Model) selectedCard() (playerCard, bool) {
	players := m.snapshot.Players
	if m.selectedRow < 0 || m.selectedRow >= len(players) {
		return playerCard{}, false
	}
	return newPlayerCard(players[m.selectedRow]), true
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// handleKey routes keyboard input to the active overlay or pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showLogs {
		return m.handleLogsKey(msg)
	}

	if m.focus == paneForm {
		if key.Matches(msg, m.keys.Escape) {
			m.focus = paneRoster
			m.form.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg, m.keys)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = true
		m.resizeLogViewport()
		return m, loadLogsCmd(m.logPath)

	case key.Matches(msg, m.keys.NewPlayer):
		m.focus = paneForm
		return m, m.form.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, emit(BackMsg{})
	}

	if m.snapshot.View == state.ViewDetail {
		if key.Matches(msg, m.keys.Back) {
			return m, emit(BackMsg{})
		}
		return m, nil
	}
	return m.handleListKey(msg)
}

// handleListKey handles navigation and card triggers in the list view.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.selectRow(m.selectedRow + 1)
	case key.Matches(msg, m.keys.Up):
		m.selectRow(m.selectedRow - 1)
	case key.Matches(msg, m.keys.Top):
		m.selectRow(0)
	case key.Matches(msg, m.keys.Bottom):
		m.selectRow(len(m.snapshot.Players) - 1)
	case key.Matches(msg, m.keys.Details):
		if card, ok := m.selectedCard(); ok {
			return m, emit(card.Details)
		}
	case key.Matches(msg, m.keys.Remove):
		if card, ok := m.selectedCard(); ok {
			return m, emit(card.Remove)
		}
	}
	return m, nil
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Actions == nil {
		return errors.New("ui requires a controller")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
