// Package rostertest provides an in-memory stand-in for the roster API.
package rostertest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/five82/roster/internal/roster"
)

// Server serves /{cohort}/players from memory.
type Server struct {
	s *httptest.Server

	mu      sync.Mutex
	cohort  string
	players []roster.Player
	nextID  int64
	calls   map[string]int
	fail    map[string]int
	created []roster.NewPlayer
}

// NewServer starts a fake API for cohort seeded with players.
func NewServer(cohort string, seed ...roster.Player) *Server {
	f := &Server{
		cohort: cohort,
		nextID: 1,
		calls:  make(map[string]int),
		fail:   make(map[string]int),
	}
	for _, p := range seed {
		f.players = append(f.players, p.Clone())
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}

	r := chi.NewRouter()
	r.Route("/{cohort}/players", func(r chi.Router) {
		r.Use(f.countAndFail)
		r.Get("/", f.listPlayers)
		r.Post("/", f.createPlayer)
		r.Get("/{id}", f.getPlayer)
		r.Delete("/{id}", f.deletePlayer)
	})

	f.s = httptest.NewServer(r)
	return f
}

// URL returns the API base; pair it with the cohort when building a client.
func (f *Server) URL() string {
	return f.s.URL
}

// Close shuts the server down.
func (f *Server) Close() {
	f.s.Close()
}

// Players returns a copy of the stored players.
func (f *Server) Players() []roster.Player {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]roster.Player, len(f.players))
	for i, p := range f.players {
		out[i] = p.Clone()
	}
	return out
}

// Created returns every candidate body received by POST, in order.
func (f *Server) Created() []roster.NewPlayer {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]roster.NewPlayer, len(f.created))
	copy(out, f.created)
	return out
}

// Calls returns how many requests were made with method.
func (f *Server) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// FailNext makes the next request with method answer status.
func (f *Server) FailNext(method string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method] = status
}

func (f *Server) countAndFail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls[r.Method]++
		status, failing := f.fail[r.Method]
		delete(f.fail, r.Method)
		f.mu.Unlock()

		if chi.URLParam(r, "cohort") != f.cohort {
			writeFailure(w, http.StatusNotFound, "NotFound", "unknown cohort")
			return
		}
		if failing {
			writeFailure(w, status, "InjectedFailure", http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *Server) listPlayers(w http.ResponseWriter, r *http.Request) {
	players := f.Players()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"error":   nil,
		"data":    map[string]any{"players": players},
	})
}

func (f *Server) getPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.players {
		if p.ID == id {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"error":   nil,
				"data":    map[string]any{"player": p},
			})
			return
		}
	}
	writeFailure(w, http.StatusNotFound, "NotFound", fmt.Sprintf("No player found with id %d", id))
}

func (f *Server) createPlayer(w http.ResponseWriter, r *http.Request) {
	var candidate roster.NewPlayer
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		writeFailure(w, http.StatusBadRequest, "BadRequest", err.Error())
		return
	}
	if candidate.Name == "" || candidate.Breed == "" {
		writeFailure(w, http.StatusBadRequest, "ValidationError", "name and breed are required")
		return
	}

	f.mu.Lock()
	now := time.Now().UTC().Format(time.RFC3339)
	p := roster.Player{
		ID:        f.nextID,
		Name:      candidate.Name,
		Breed:     candidate.Breed,
		Status:    candidate.Status,
		ImageURL:  candidate.ImageURL,
		TeamID:    candidate.TeamID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.nextID++
	f.players = append(f.players, p)
	f.created = append(f.created, candidate)
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"error":   nil,
		"data":    map[string]any{"newPlayer": p},
	})
}

func (f *Server) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.players {
		if p.ID == id {
			f.players = append(f.players[:i], f.players[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "error": nil, "data": nil})
			return
		}
	}
	writeFailure(w, http.StatusNotFound, "NotFound", fmt.Sprintf("No player found with id %d", id))
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "BadRequest", "invalid player id")
		return 0, false
	}
	return id, true
}

func writeFailure(w http.ResponseWriter, status int, name, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   map[string]string{"name": name, "message": message},
		"data":    nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
