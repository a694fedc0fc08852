// Package ui is the Bubble Tea front end for roster.
//
// # Layout
//
// The screen is a status header, a command bar, and two panes: the
// "Add Player" form and the roster pane. The roster pane shows either every
// player as a card (list view) or one player's detail card (detail view).
// Below 90 columns the form stacks above the roster.
//
// # Data Flow
//
// Rendering is a pure function of the latest state.Snapshot plus local UI
// state (focus, selection, form fields). Nothing is fetched during View.
//
// Cards and the form emit command messages:
//
//   - ViewDetailsMsg{ID}: fetch one player and show the detail view
//   - RemoveMsg{ID}: delete the player, then reload the list
//   - CreateMsg{Player}: create the player, then reload the list
//   - BackMsg{}: reload the list and show the list view
//
// Update runs the matching controller call inside a tea.Cmd, so requests
// proceed concurrently and their results return as snapshotMsg values.
// A snapshot older than the one on screen is dropped.
//
// # Keys
//
// The form has focus at startup; esc hands focus to the roster and n brings
// it back. In the roster, j/k move the selection, enter opens details, x
// removes the selected player, and esc or b returns from the detail view.
// L opens the diagnostics overlay, which tails the JSON log file, and T
// cycles the color theme (persisted through package prefs).
package ui
