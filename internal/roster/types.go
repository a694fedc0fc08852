package roster

import (
	"strings"
	"time"
)

const rosterTimestampLayout = "2006-01-02 15:04:05"

// Player mirrors a player record returned by the roster API.
type Player struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Breed     string `json:"breed"`
	Status    string `json:"status"`
	ImageURL  string `json:"imageUrl"`
	TeamID    *int64 `json:"teamId"`
	CohortID  int64  `json:"cohortId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// NewPlayer is the candidate record submitted when creating a player.
// The service assigns the id.
type NewPlayer struct {
	Name     string `json:"name"`
	Breed    string `json:"breed"`
	Status   string `json:"status"`
	ImageURL string `json:"imageUrl"`
	TeamID   *int64 `json:"teamId"`
}

// TeamName resolves the player's team through the closed team table.
func (p Player) TeamName() string {
	return TeamName(p.TeamID)
}

// StatusLabel resolves the player's status through the closed status table.
func (p Player) StatusLabel() string {
	return StatusLabel(p.Status)
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (p Player) ParsedCreatedAt() time.Time {
	return parseTime(p.CreatedAt)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (p Player) ParsedUpdatedAt() time.Time {
	return parseTime(p.UpdatedAt)
}

// Clone returns a deep copy, including the team pointer.
func (p Player) Clone() Player {
	if p.TeamID != nil {
		id := *p.TeamID
		p.TeamID = &id
	}
	return p
}

// Known team identifiers.
const (
	TeamFluff int64 = 4943
	TeamRuff  int64 = 4942
)

// TeamUnassigned is shown for a missing or unknown team id.
const TeamUnassigned = "Unassigned"

// Team pairs a known team id with its display name.
type Team struct {
	ID   int64
	Name string
}

var teams = []Team{
	{ID: TeamFluff, Name: "Fluff"},
	{ID: TeamRuff, Name: "Ruff"},
}

// Teams returns the known teams in display order.
func Teams() []Team {
	out := make([]Team, len(teams))
	copy(out, teams)
	return out
}

// TeamName maps a team id to its display name, falling back to TeamUnassigned.
func TeamName(id *int64) string {
	if id == nil {
		return TeamUnassigned
	}
	for _, t := range teams {
		if t.ID == *id {
			return t.Name
		}
	}
	return TeamUnassigned
}

// Known player statuses.
const (
	StatusField = "field"
	StatusBench = "bench"
)

// StatusNone is shown for a missing or unknown status.
const StatusNone = "None"

var statusLabels = map[string]string{
	StatusField: "Field",
	StatusBench: "Bench",
}

// Statuses returns the known status values in form order.
func Statuses() []string {
	return []string{StatusBench, StatusField}
}

// StatusLabel maps a status value to its label, falling back to StatusNone.
// Matching is exact; the service stores lowercase values.
func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return StatusNone
}

// listEnvelope mirrors GET /players. Pointers tell an absent field from an
// empty one.
type listEnvelope struct {
	Success *bool    `json:"success"`
	Error   *apiFail `json:"error"`
	Data    *struct {
		Players *[]Player `json:"players"`
	} `json:"data"`
}

// singleEnvelope mirrors GET /players/{id}.
type singleEnvelope struct {
	Success *bool    `json:"success"`
	Error   *apiFail `json:"error"`
	Data    *struct {
		Player *Player `json:"player"`
	} `json:"data"`
}

// failed reports an explicit success=false.
func failed(success *bool) bool {
	return success != nil && !*success
}

// mutationEnvelope covers POST and DELETE; only the failure shape matters.
type mutationEnvelope struct {
	Success *bool    `json:"success"`
	Error   *apiFail `json:"error"`
}

type apiFail struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (f *apiFail) text() string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f.Message)
}

// reason is text with a fallback for failures that carry no error object.
func (f *apiFail) reason() string {
	if msg := f.text(); msg != "" {
		return msg
	}
	return "service reported failure"
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(rosterTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
