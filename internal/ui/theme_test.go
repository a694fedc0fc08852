package ui

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/five82/roster/internal/logtail"
	"github.com/five82/roster/internal/roster"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
	names[0] = "changed"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames should return an independent slice")
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetThemeFallsBack(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(\"\").Name = %q, want Nightfox", got)
	}
}

func TestThemesCoverStatusesAndTeams(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, status := range roster.Statuses() {
			if th.StatusColors[status] == "" {
				t.Fatalf("%s: no color for status %q", name, status)
			}
		}
		for _, team := range roster.Teams() {
			if th.TeamColors[team.Name] == "" {
				t.Fatalf("%s: no color for team %q", name, team.Name)
			}
		}
	}
}

func TestBadgesUseDisplayLabels(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	if got := styles.StatusBadge(roster.StatusBench); !strings.Contains(got, "Bench") {
		t.Fatalf("StatusBadge(bench) = %q, want Bench", got)
	}
	if got := styles.StatusBadge("mystery"); !strings.Contains(got, roster.StatusNone) {
		t.Fatalf("StatusBadge(mystery) = %q, want %s", got, roster.StatusNone)
	}
	if got := styles.TeamBadge(roster.TeamUnassigned); !strings.Contains(got, roster.TeamUnassigned) {
		t.Fatalf("TeamBadge = %q", got)
	}
}

func TestFormatLogEntries(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()

	if got := formatLogEntries(styles, nil, nil); !strings.Contains(got, "No diagnostics") {
		t.Fatalf("empty = %q", got)
	}

	entries := []logtail.Entry{{
		Time:    time.Date(2025, 1, 13, 10, 0, 0, 0, time.UTC),
		Level:   slog.LevelError,
		Message: "trouble removing player",
		Attrs:   []logtail.Attr{{Key: "player_id", Value: "9"}},
	}}
	got := formatLogEntries(styles, entries, nil)
	for _, want := range []string{"ERROR", "trouble removing player", "player_id=", "9"} {
		if !strings.Contains(got, want) {
			t.Fatalf("formatLogEntries missing %q: %q", want, got)
		}
	}
}
