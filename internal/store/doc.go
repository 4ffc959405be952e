// Package store holds the session's in-memory app collection.
//
// # Overview
//
// A Store is seeded once from a mockdata.Dataset and then handed by pointer to
// every consumer. There is no package-level instance: the composition root
// creates it, the UI receives it through ui.Options, and tests build their own.
//
// # Operations
//
//   - App(id): lookup by identity; unknown identities report false
//   - Apps(): every app in seed order
//   - AllDeploys(): deploys of all apps, annotated with the app name, newest first
//   - Logs(): the fixed runtime log sample
//   - TogglePause(id): paused ↔ live
//   - Delete(id): remove the app for the rest of the session
//   - Create(NewApp): append an app produced by the deploy flow
//
// Mutating operations on unknown identities return an error wrapping
// ErrAppNotFound. Nothing survives a restart.
//
// # Concurrency Model
//
// The Store uses a readers-writer lock. Reads take the read lock and return
// deep copies (apps, deploys, env vars and build logs are cloned), so callers
// may keep or modify what they receive without affecting the collection.
//
// # Usage Example
//
//	ds, _ := mockdata.Load()
//	s := store.New(ds)
//	if app, ok := s.App("app-1"); ok {
//		fmt.Println(app.Name)
//	}
//	status, err := s.TogglePause("app-1")
package store
