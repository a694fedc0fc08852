package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/roster/internal/roster"
)

// View identifies which of the two mutually exclusive screens is shown.
type View int

const (
	ViewList View = iota
	ViewDetail
)

func (v View) String() string {
	switch v {
	case ViewDetail:
		return "detail"
	default:
		return "list"
	}
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	View        View
	Players     []roster.Player
	Detail      *roster.Player
	DetailID    int64
	Token       uint64 // token of the commit that produced this snapshot
	Loaded      bool   // at least one list commit has landed
	LastUpdated time.Time
	LastError   error
}

// Store coordinates concurrent refresh results. Every commit replaces the
// displayed data wholesale.
type Store struct {
	// DiscardStale drops commits whose token is older than the latest issued
	// token. When false, the last commit to arrive wins.
	DiscardStale bool

	mu       sync.RWMutex
	issued   uint64
	snapshot Snapshot
}

// NewStore returns a Store with the given sequencing policy.
func NewStore(discardStale bool) *Store {
	return &Store{DiscardStale: discardStale}
}

// Begin issues the next refresh token.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// ShowList replaces the player list and switches to the list view. A nil
// slice is a valid empty list. err is recorded but never blocks the commit.
// It reports whether the commit was applied.
func (s *Store) ShowList(token uint64, players []roster.Player, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale(token) {
		return false
	}
	s.snapshot.View = ViewList
	s.snapshot.Players = clonePlayers(players)
	s.snapshot.Detail = nil
	s.snapshot.DetailID = 0
	s.snapshot.Token = token
	s.snapshot.Loaded = true
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	return true
}

// ShowDetail switches to the detail view for id. When player is nil the
// current view is kept and only err is recorded.
func (s *Store) ShowDetail(token uint64, id int64, player *roster.Player, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale(token) {
		return false
	}
	s.snapshot.Token = token
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.LastError = err
	if player == nil {
		if err == nil {
			s.snapshot.LastError = fmt.Errorf("player %d not available", id)
		}
		return false
	}
	dup := player.Clone()
	s.snapshot.View = ViewDetail
	s.snapshot.Detail = &dup
	s.snapshot.DetailID = id
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Players = clonePlayers(s.snapshot.Players)
	if s.snapshot.Detail != nil {
		dup := s.snapshot.Detail.Clone()
		snap.Detail = &dup
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Issued returns the most recently issued token.
func (s *Store) Issued() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.issued
}

func (s *Store) stale(token uint64) bool {
	return s.DiscardStale && token < s.issued
}

func clonePlayers(players []roster.Player) []roster.Player {
	if len(players) == 0 {
		return nil
	}
	dup := make([]roster.Player, len(players))
	for i, p := range players {
		dup[i] = p.Clone()
	}
	return dup
}
