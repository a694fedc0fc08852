// Package state holds the view state shared between controller goroutines
// and the UI.
//
// # Overview
//
// The Store is the single shared mutable resource in the application. Every
// controller operation ends in one commit: ShowList replaces the player list
// and switches to the list view, ShowDetail switches to the detail view for
// one player. Nothing is ever patched in place.
//
//	Controller (tea.Cmd goroutines):     UI (Update loop):
//	┌─────────────────────┐             ┌─────────────────────┐
//	│ token := Begin()    │             │                     │
//	│ fetch ...           │             │                     │
//	│ ShowList(token,...) │────────────→│ Snapshot() → render │
//	└─────────────────────┘   (mutex)   └─────────────────────┘
//
// # Sequencing
//
// Begin issues a monotonically increasing token before each refresh. When
// DiscardStale is set, a commit carrying a token older than the latest issued
// one is dropped, so only the most recently started refresh can reach the
// screen. When it is not set the store behaves like fire-and-forget rendering:
// every commit lands and whichever resolves last wins.
//
// # Snapshots
//
// Snapshot returns a deep copy (players, detail player, and error instance),
// so the UI can hold it without further locking.
package state
