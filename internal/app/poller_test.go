package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/five82/deckhand/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestRefresh_PublishesParsedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deckhand.log")
	body := `time="2026-02-26T12:00:00Z" level=info msg="app deleted" app=app-1
time="2026-02-26T12:00:01Z" level=warn msg="open url failed" url="https://x.deploy.app"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var feed state.Store
	if err := refresh(&feed, path); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}

	snap := feed.Snapshot()
	if len(snap.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(snap.Entries))
	}
	if snap.Entries[0].Message != "app deleted" || snap.Entries[0].Fields["app"] != "app-1" {
		t.Fatalf("Entries[0] = %#v", snap.Entries[0])
	}
	if snap.Entries[1].Level != "warn" {
		t.Fatalf("Entries[1].Level = %q, want warn", snap.Entries[1].Level)
	}
}

func TestRefresh_MissingLogIsEmpty(t *testing.T) {
	var feed state.Store
	if err := refresh(&feed, filepath.Join(t.TempDir(), "missing.log")); err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}
	if snap := feed.Snapshot(); snap.HasEntries || snap.LastError != nil {
		t.Fatalf("snapshot = %#v, want empty without error", snap)
	}
}

func TestRefresh_UnreadableLogRecordsError(t *testing.T) {
	var feed state.Store
	// A directory cannot be scanned as a log file.
	if err := refresh(&feed, t.TempDir()); err == nil {
		t.Fatalf("refresh returned nil error for a directory")
	}
	if snap := feed.Snapshot(); snap.LastError == nil || snap.ConsecutiveFailures != 1 {
		t.Fatalf("snapshot = %#v, want one recorded failure", snap)
	}
}
