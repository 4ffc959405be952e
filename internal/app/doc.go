// Package app is deckhand's composition root.
//
// Run loads configuration and preferences, points logrus at the configured
// file, seeds the in-memory store and hands everything to the UI:
//
//	Run()
//	 ├─> config.Load()        TOML settings
//	 ├─> logging.Setup()      file-backed logrus
//	 ├─> prefs.Load()         theme, profile, live tail
//	 ├─> build()              dataset, store, simulator plan, start route
//	 ├─> StartPoller()        tails the log into state.Store
//	 └─> ui.Run()             TUI (blocks)
//
// The poller reads the last lines of the log file every two seconds and
// publishes them for the Settings activity feed. Read failures back off
// exponentially up to thirty seconds; the last good entries stay visible.
//
// Configuration, dataset and plan errors are fatal. Preference errors are
// logged and defaults are used instead.
package app
