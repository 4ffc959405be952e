// Package state shares the session activity feed between the background log
// poller and the UI.
//
// # Overview
//
// deckhand writes its own structured log while it runs. A poller goroutine
// re-reads the tail of that file and publishes the parsed entries here; the
// settings view reads a Snapshot on its refresh tick and renders the recent
// activity panel.
//
//	Producer (poller):             Consumer (UI):
//	┌─────────────────┐            ┌─────────────────┐
//	│ logtail.Read()  │            │                 │
//	│ logtail.Parse() │            │                 │
//	│      ↓          │            │                 │
//	│ store.Update()  │───────────→│ store.Snapshot()│
//	│      ↓          │  (mutex)   │      ↓          │
//	│  repeat...      │            │  render panel   │
//	└─────────────────┘            └─────────────────┘
//
// # Update Semantics
//
// A successful Update replaces the entries and clears LastError. A failed
// Update keeps the previous entries, records the error and increments
// ConsecutiveFailures, so the panel keeps showing the last good tail while
// flagging the problem. IsStale reports two or more failures in a row.
//
// # Copying
//
// Update and Snapshot copy entry slices and their field maps, so neither
// side can observe the other's mutations.
//
// The zero Store is ready to use.
package state
