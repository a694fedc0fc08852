// Package logtail reads the tail of the diagnostics log and decodes its
// records for display.
//
// # Reading
//
// Tail uses a ring buffer to keep the last maxLines of a file in one pass, so
// memory stays O(maxLines) however large the log grows. Lines come back in
// file order. A missing file is not an error; the log may simply not exist
// yet.
//
//	lines, err := logtail.Tail(cfg.LogPath, 200)
//
// # Decoding
//
// Parse turns a JSON record written by log/slog into an Entry with time,
// level, message and the remaining fields as sorted key/value pairs. Lines
// that are not JSON (a crash trace, a hand edit) are kept as info entries
// carrying the raw text.
//
//	entries, err := logtail.ReadEntries(cfg.LogPath, 200)
//	for _, e := range entries {
//		fmt.Println(e.Level, e.Message)
//	}
package logtail
