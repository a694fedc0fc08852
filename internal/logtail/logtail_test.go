package logtail

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestTail(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tail(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Tail returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Fatalf("Tail = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTail_MissingFile(t *testing.T) {
	got, err := Tail(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Tail(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParse_SlogRecord(t *testing.T) {
	line := `{"time":"2025-01-13T10:11:12.5Z","level":"ERROR","msg":"trouble fetching player","player_id":7,"err":"boom","op":"fetch_single"}`
	e := Parse(line)
	if e.Level != slog.LevelError || e.Message != "trouble fetching player" {
		t.Fatalf("Parse = %#v, want error record", e)
	}
	if e.Time.IsZero() {
		t.Fatalf("Parse should decode time")
	}
	want := []Attr{{"err", "boom"}, {"op", "fetch_single"}, {"player_id", "7"}}
	if !reflect.DeepEqual(e.Attrs, want) {
		t.Fatalf("Attrs = %#v, want %#v", e.Attrs, want)
	}
}

func TestParse_PlainLine(t *testing.T) {
	e := Parse("panic: something odd")
	if e.Level != slog.LevelInfo || e.Message != "panic: something odd" || len(e.Attrs) != 0 {
		t.Fatalf("Parse(plain) = %#v", e)
	}
}

func TestReadEntries_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.log")
	data := `{"level":"INFO","msg":"a"}` + "\n\n" + `{"level":"WARN","msg":"b"}` + "\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := ReadEntries(path, 0)
	if err != nil {
		t.Fatalf("ReadEntries returned error: %v", err)
	}
	if len(entries) != 2 || entries[1].Level != slog.LevelWarn {
		t.Fatalf("entries = %#v, want 2 with WARN last", entries)
	}
}
