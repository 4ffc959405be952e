// Package ui provides the deckhand terminal dashboard.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model holds the active Route, one
// state struct per view, an optional Modal and the toast stack. Update routes
// key presses to the active modal first, then to global bindings, then to the
// current view's handler. Views read from the injected store.Store and project
// through internal/viewmodel; they never keep their own copy of the dataset
// beyond what is needed to render the current frame.
//
// # Package Structure
//
//   - app.go: Options, Model, Update dispatch, navigation and Run
//   - route.go: Path-like route identifiers and ParseRoute
//   - login.go, apps.go, detail.go, logs.go, newapp.go, deploys.go, settings.go: Views
//   - modal.go, sheet.go: Confirmation dialogs and the deploy details sheet
//   - toast.go: Transient notifications with timed expiry
//   - header.go, help.go: Navbar, command bar, titled boxes and the help overlay
//   - theme.go, style_helpers.go: Palettes and background-safe rendering
//
// # Routes
//
//	/login        sign-in form; completes after the login delay
//	/apps         searchable app list
//	/apps/new     create form and simulated deploy progress
//	/apps/<id>    app detail with Overview, Deploys and Logs tabs
//	/deploys      deploys across apps, filterable by app
//	/settings     profile, workspace, activity and account deletion
//
// # Simulated Deploys
//
// The create form drives a simulator.Machine. Starting a deploy schedules one
// tea.Tick per stage, each measured from the invocation and tagged with the
// run token. Leaving the view cancels the run, so late ticks are discarded by
// the machine instead of moving a form the user has abandoned. On reaching
// live the app is created in the store; after the navigation delay its detail
// view opens.
//
// # Key Bindings
//
// Global keys (q, ?, T, 1-3) apply only while no text input has focus. Esc
// always backs out of the current input, modal or view. See keys.go.
package ui
