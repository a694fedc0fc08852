package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"
)

// Tail returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Tail(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var all []string
		for scanner.Scan() {
			all = append(all, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return all, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded diagnostics record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Attrs   []Attr // sorted by key
	Raw     string
}

// Attr is a non-standard field of a record, rendered as text.
type Attr struct {
	Key   string
	Value string
}

// Parse decodes a JSON record written by log/slog. Lines that are not JSON
// come back as an info entry whose message is the raw line.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Level: slog.LevelInfo, Message: strings.TrimSpace(line)}

	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return entry
	}
	if ts, ok := rec[slog.TimeKey].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Time = t
		}
	}
	if lvl, ok := rec[slog.LevelKey].(string); ok {
		var level slog.Level
		if err := level.UnmarshalText([]byte(lvl)); err == nil {
			entry.Level = level
		}
	}
	if msg, ok := rec[slog.MessageKey].(string); ok {
		entry.Message = msg
	}
	for k, v := range rec {
		switch k {
		case slog.TimeKey, slog.LevelKey, slog.MessageKey:
			continue
		}
		entry.Attrs = append(entry.Attrs, Attr{Key: k, Value: formatValue(v)})
	}
	sort.Slice(entry.Attrs, func(i, j int) bool { return entry.Attrs[i].Key < entry.Attrs[j].Key })
	return entry
}

// ReadEntries tails path and decodes each line.
func ReadEntries(path string, maxLines int) ([]Entry, error) {
	lines, err := Tail(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries, nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case nil:
		return "null"
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}
