// Package controller runs the fetch-mutate-refresh cycle.
//
// Every operation catches failures at its own boundary, logs them, and
// carries on with an empty result. Mutations never hand a record back; they
// re-fetch the whole collection and commit it to the store.
package controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/five82/roster/internal/logging"
	"github.com/five82/roster/internal/roster"
	"github.com/five82/roster/internal/state"
)

// Controller owns the error boundary between the API and the view state.
type Controller struct {
	api    roster.API
	store  *state.Store
	logger *slog.Logger
}

// New builds a Controller. A nil logger discards diagnostics.
func New(api roster.API, store *state.Store, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = logging.Discard()
	}
	if store == nil {
		store = state.NewStore(true)
	}
	return &Controller{api: api, store: store, logger: logger}
}

// Store returns the view state this controller commits to.
func (c *Controller) Store() *state.Store {
	return c.store
}

// FetchAllPlayers returns the current collection, or nil after logging any
// failure.
func (c *Controller) FetchAllPlayers(ctx context.Context) []roster.Player {
	players, _ := c.fetchAll(ctx)
	return players
}

// FetchSinglePlayer returns one player, or nil after logging any failure.
func (c *Controller) FetchSinglePlayer(ctx context.Context, id int64) *roster.Player {
	player, _ := c.fetchSingle(ctx, id)
	return player
}

func (c *Controller) fetchAll(ctx context.Context, args ...any) ([]roster.Player, error) {
	players, err := c.api.FetchAllPlayers(ctx)
	if err != nil {
		logging.Error(c.logger, "trouble fetching players", err, withRequestID(err, append([]any{logging.FieldOp, "fetch_all"}, args...))...)
		return nil, err
	}
	c.logger.Debug("fetched players", append([]any{logging.FieldOp, "fetch_all", logging.FieldCount, len(players)}, args...)...)
	return players, nil
}

func (c *Controller) fetchSingle(ctx context.Context, id int64, args ...any) (*roster.Player, error) {
	player, err := c.api.FetchSinglePlayer(ctx, id)
	if err != nil {
		logging.Error(c.logger, "trouble fetching player", err,
			withRequestID(err, append([]any{logging.FieldOp, "fetch_single", logging.FieldPlayerID, id}, args...))...)
		return nil, err
	}
	return player, nil
}

// ShowAll fetches the collection and commits it as the list view.
func (c *Controller) ShowAll(ctx context.Context) state.Snapshot {
	token := c.store.Begin()
	players, err := c.fetchAll(ctx, logging.FieldToken, token)
	if !c.store.ShowList(token, players, err) {
		c.logger.Debug("discarded stale refresh", logging.FieldOp, "fetch_all",
			logging.FieldToken, token, logging.FieldLatestToken, c.store.Issued())
	}
	return c.store.Snapshot()
}

// ShowPlayer fetches one player and commits it as the detail view. On
// failure the current view stays put.
func (c *Controller) ShowPlayer(ctx context.Context, id int64) state.Snapshot {
	token := c.store.Begin()
	player, err := c.fetchSingle(ctx, id, logging.FieldToken, token)
	if !c.store.ShowDetail(token, id, player, err) && err == nil {
		c.logger.Debug("discarded stale detail", logging.FieldPlayerID, id,
			logging.FieldToken, token, logging.FieldLatestToken, c.store.Issued())
	}
	return c.store.Snapshot()
}

// AddNewPlayer submits candidate and then refreshes the list, whether or not
// the submission succeeded.
func (c *Controller) AddNewPlayer(ctx context.Context, candidate roster.NewPlayer) state.Snapshot {
	if err := c.api.AddNewPlayer(ctx, candidate); err != nil {
		logging.Error(c.logger, "trouble adding player", err, withRequestID(err, []any{logging.FieldOp, "create"})...)
	} else {
		c.logger.Info("added player", logging.FieldOp, "create", "name", candidate.Name)
	}
	return c.ShowAll(ctx)
}

// RemovePlayer deletes id and then refreshes the list, whether or not the
// deletion succeeded.
func (c *Controller) RemovePlayer(ctx context.Context, id int64) state.Snapshot {
	if err := c.api.RemovePlayer(ctx, id); err != nil {
		logging.Error(c.logger, "trouble removing player", err,
			withRequestID(err, []any{logging.FieldOp, "remove", logging.FieldPlayerID, id})...)
	} else {
		c.logger.Info("removed player", logging.FieldOp, "remove", logging.FieldPlayerID, id)
	}
	return c.ShowAll(ctx)
}

// withRequestID appends the request id carried by a status error.
func withRequestID(err error, args []any) []any {
	var statusErr *roster.StatusError
	if errors.As(err, &statusErr) && statusErr.RequestID != "" {
		return append(args, logging.FieldRequestID, statusErr.RequestID)
	}
	return args
}
