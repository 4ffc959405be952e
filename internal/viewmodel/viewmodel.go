// Package viewmodel projects store data into what list views display.
//
// Every function is a pure projection over its inputs: no I/O, no mutation of
// the arguments, and no error conditions. An empty result is a state to render,
// not a failure.
package viewmodel

import (
	"strings"

	"github.com/five82/deckhand/internal/domain"
)

// EmptyKind distinguishes why a filtered list has no rows.
type EmptyKind int

const (
	// EmptyNone means the list has rows.
	EmptyNone EmptyKind = iota
	// EmptyNoApps means there is nothing to filter.
	EmptyNoApps
	// EmptyNoMatches means the query excluded every app.
	EmptyNoMatches
)

// AppList is the result of an app search.
type AppList struct {
	Apps  []domain.App
	Query string
	Empty EmptyKind
}

// FilterApps keeps apps whose name contains query, ignoring case. A blank
// query keeps every app.
func FilterApps(apps []domain.App, query string) AppList {
	q := strings.ToLower(strings.TrimSpace(query))
	out := AppList{Query: strings.TrimSpace(query)}
	for _, app := range apps {
		if q == "" || strings.Contains(strings.ToLower(app.Name), q) {
			out.Apps = append(out.Apps, app)
		}
	}
	switch {
	case len(apps) == 0:
		out.Empty = EmptyNoApps
	case len(out.Apps) == 0:
		out.Empty = EmptyNoMatches
	}
	return out
}

// AllApps is the app filter value that disables filtering.
const AllApps = "all"

// DeployListLimit caps the deploy list.
const DeployListLimit = 30

// FilterDeploys keeps deploys owned by appID and caps the result at limit.
// appID AllApps or blank keeps every deploy; a limit of zero or less uses
// DeployListLimit. Input order is preserved.
func FilterDeploys(deploys []domain.DeployWithApp, appID string, limit int) []domain.DeployWithApp {
	if limit <= 0 {
		limit = DeployListLimit
	}
	appID = strings.TrimSpace(appID)
	all := appID == "" || appID == AllApps

	out := make([]domain.DeployWithApp, 0, min(limit, len(deploys)))
	for _, d := range deploys {
		if len(out) == limit {
			break
		}
		if all || d.AppID == appID {
			out = append(out, d)
		}
	}
	return out
}

// LevelFilter selects which log levels are shown.
type LevelFilter int

const (
	LevelAll LevelFilter = iota
	LevelErrors
)

// Label names the filter for display.
func (f LevelFilter) Label() string {
	if f == LevelErrors {
		return "Errors"
	}
	return "All"
}

// Next cycles to the other filter.
func (f LevelFilter) Next() LevelFilter {
	if f == LevelErrors {
		return LevelAll
	}
	return LevelErrors
}

// LogFilter combines a level predicate with a message search.
type LogFilter struct {
	Level LevelFilter
	Query string
}

// Active reports whether the filter excludes anything.
func (f LogFilter) Active() bool {
	return f.Level != LevelAll || strings.TrimSpace(f.Query) != ""
}

// Match reports whether e passes both predicates.
func (f LogFilter) Match(e domain.LogEntry) bool {
	if f.Level == LevelErrors && e.Level != domain.LevelError {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return q == "" || strings.Contains(strings.ToLower(e.Message), q)
}

// FilterLogs keeps the entries matching f, in order.
func FilterLogs(entries []domain.LogEntry, f LogFilter) []domain.LogEntry {
	out := make([]domain.LogEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// CopyText serializes entries one per line as "[time] [level] message".
func CopyText(entries []domain.LogEntry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.CopyLine()
	}
	return strings.Join(lines, "\n")
}

// AppOption is one entry of the deploy list's app filter.
type AppOption struct {
	ID    string
	Label string
}

// AppOptions lists the deploy filter choices: AllApps first, then each app.
func AppOptions(apps []domain.App) []AppOption {
	out := make([]AppOption, 0, len(apps)+1)
	out = append(out, AppOption{ID: AllApps, Label: "All apps"})
	for _, app := range apps {
		out = append(out, AppOption{ID: app.ID, Label: app.Name})
	}
	return out
}
