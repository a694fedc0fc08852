package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// API defines the roster operations the controller depends on.
// This interface is implemented by *Client and can be used for testing.
type API interface {
	FetchAllPlayers(ctx context.Context) ([]Player, error)
	FetchSinglePlayer(ctx context.Context, id int64) (*Player, error)
	AddNewPlayer(ctx context.Context, candidate NewPlayer) error
	RemovePlayer(ctx context.Context, id int64) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

var (
	// ErrStatus is matched by errors returned for non-success HTTP statuses.
	ErrStatus = errors.New("unexpected status")
	// ErrPlayerMissing is returned when a single-player envelope carries no player.
	ErrPlayerMissing = errors.New("response has no player")
	// ErrEnvelope is returned when a 2xx body lacks the expected data field.
	ErrEnvelope = errors.New("unexpected response envelope")
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Method    string
	Path      string
	Code      int
	RequestID string
	Message   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RequestID != "" {
		msg += " (request " + e.RequestID + ")"
	}
	return msg
}

// Is reports whether target is ErrStatus.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Client talks to the roster HTTP API for one cohort.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBase   = "https://fsa-puppy-bowl.herokuapp.com/api"
	defaultUserAgent = "roster/0.1"
	requestTimeout   = 10 * time.Second
	playersPath      = "players"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client rooted at apiBase scoped to cohort.
func NewClient(apiBase, cohort string, opts ...Option) (*Client, error) {
	cohort = strings.TrimSpace(cohort)
	if cohort == "" {
		return nil, fmt.Errorf("cohort is required")
	}
	base, err := parseBaseURL(apiBase)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base.JoinPath(url.PathEscape(cohort)),
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the cohort-scoped root every request is resolved against.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchAllPlayers retrieves the full player collection in service order.
func (c *Client) FetchAllPlayers(ctx context.Context) ([]Player, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload listEnvelope
	if err := c.do(ctx, http.MethodGet, c.baseURL.JoinPath(playersPath), nil, &payload); err != nil {
		return nil, err
	}
	if failed(payload.Success) {
		return nil, fmt.Errorf("fetch players: %s", payload.Error.reason())
	}
	if payload.Data == nil || payload.Data.Players == nil {
		return nil, fmt.Errorf("decode response: missing data.players: %w", ErrEnvelope)
	}
	return *payload.Data.Players, nil
}

// FetchSinglePlayer retrieves one player by id.
func (c *Client) FetchSinglePlayer(ctx context.Context, id int64) (*Player, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload singleEnvelope
	if err := c.do(ctx, http.MethodGet, c.playerURL(id), nil, &payload); err != nil {
		return nil, err
	}
	if failed(payload.Success) {
		return nil, fmt.Errorf("fetch player %d: %s", id, payload.Error.reason())
	}
	if payload.Data == nil || payload.Data.Player == nil {
		return nil, fmt.Errorf("fetch player %d: %w", id, ErrPlayerMissing)
	}
	return payload.Data.Player, nil
}

// AddNewPlayer submits a candidate player. The created record is not returned;
// callers re-fetch the collection instead.
func (c *Client) AddNewPlayer(ctx context.Context, candidate NewPlayer) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var payload mutationEnvelope
	if err := c.do(ctx, http.MethodPost, c.baseURL.JoinPath(playersPath), candidate, &payload); err != nil {
		return err
	}
	if failed(payload.Success) {
		return fmt.Errorf("add player: %s", payload.Error.reason())
	}
	return nil
}

// RemovePlayer deletes a player by id.
func (c *Client) RemovePlayer(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var payload mutationEnvelope
	if err := c.do(ctx, http.MethodDelete, c.playerURL(id), nil, &payload); err != nil {
		return err
	}
	if failed(payload.Success) {
		return fmt.Errorf("remove player %d: %s", id, payload.Error.reason())
	}
	return nil
}

func (c *Client) playerURL(id int64) *url.URL {
	return c.baseURL.JoinPath(playersPath, strconv.FormatInt(id, 10))
}

func (c *Client) do(ctx context.Context, method string, target *url.URL, body any, dest any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request %s: %w", requestID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:    method,
			Path:      target.Path,
			Code:      resp.StatusCode,
			RequestID: requestID,
			Message:   failureMessage(resp.Body),
		}
	}
	if dest == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	// DELETE commonly answers 204 with no body.
	if len(bytes.TrimSpace(raw)) == 0 {
		if method == http.MethodGet {
			return fmt.Errorf("decode response: empty body")
		}
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// failureMessage pulls error.message out of a failure body, if there is one.
func failureMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var env mutationEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Error.text()
}

func parseBaseURL(apiBase string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBase)
	if trimmed == "" {
		trimmed = defaultAPIBase
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", apiBase, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base %q: missing host", apiBase)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
