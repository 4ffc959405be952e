// Package logtail reads the tail of deckhand's own log file.
//
// # Reading Log Files
//
// The Read function uses a ring buffer to extract the last maxLines from a
// file in one sequential pass, keeping O(maxLines) lines in memory and
// returning them oldest first. A non-positive maxLines returns the whole file.
//
//	lines, err := logtail.Read(cfg.LogFile, 50)
//
// # Parsing
//
// Parse decodes a line produced by logrus's TextFormatter:
//
//	time="2026-02-26T10:30:00Z" level=info msg="app status toggled" app=app-1 status=paused
//
// into its timestamp, level, message and remaining fields. Lines in any other
// shape are kept whole in Message. The settings activity panel renders the
// parsed entries.
//
// # Error Handling
//
// Read returns nil, nil for non-existent files. Other errors (permission
// denied, I/O errors) are returned wrapped. Parse never fails.
package logtail
