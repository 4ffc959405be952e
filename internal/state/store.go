package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/deckhand/internal/logtail"
)

// Snapshot is the latest session activity available to the UI.
type Snapshot struct {
	Entries             []logtail.Entry // oldest first
	HasEntries          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsStale reports whether the log has been unreadable for several polls.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored entries. When err is non-nil the previous entries
// are kept and the error is recorded.
func (s *Store) Update(entries []logtail.Entry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Entries = cloneEntries(entries)
	s.snapshot.HasEntries = len(entries) > 0
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Entries = cloneEntries(s.snapshot.Entries)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneEntries(entries []logtail.Entry) []logtail.Entry {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]logtail.Entry, len(entries))
	for i, e := range entries {
		dup[i] = e
		if e.Fields != nil {
			dup[i].Fields = make(map[string]string, len(e.Fields))
			for k, v := range e.Fields {
				dup[i].Fields[k] = v
			}
		}
	}
	return dup
}
