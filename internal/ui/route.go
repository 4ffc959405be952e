package ui

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRoute is returned by ParseRoute for paths no view serves.
var ErrUnknownRoute = errors.New("unknown route")

// View identifies a top-level screen.
type View int

const (
	ViewLogin View = iota
	ViewApps
	ViewNewApp
	ViewAppDetail
	ViewDeploys
	ViewSettings
)

// Route is a resolved location: a view plus, for the detail view, the app it shows.
type Route struct {
	View  View
	AppID string
}

// ParseRoute resolves a path-like identifier such as /apps/app-1.
func ParseRoute(path string) (Route, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed != "/" {
		trimmed = strings.TrimSuffix(trimmed, "/")
	}
	switch trimmed {
	case "/login":
		return Route{View: ViewLogin}, nil
	case "/", "/apps":
		return Route{View: ViewApps}, nil
	case "/apps/new":
		return Route{View: ViewNewApp}, nil
	case "/deploys":
		return Route{View: ViewDeploys}, nil
	case "/settings":
		return Route{View: ViewSettings}, nil
	}
	if id, ok := strings.CutPrefix(trimmed, "/apps/"); ok && id != "" && !strings.Contains(id, "/") {
		return Route{View: ViewAppDetail, AppID: id}, nil
	}
	return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, path)
}

// Path renders the route back to its identifier.
func (r Route) Path() string {
	switch r.View {
	case ViewLogin:
		return "/login"
	case ViewNewApp:
		return "/apps/new"
	case ViewAppDetail:
		return "/apps/" + r.AppID
	case ViewDeploys:
		return "/deploys"
	case ViewSettings:
		return "/settings"
	default:
		return "/apps"
	}
}

// section maps a route onto the navbar entry it belongs to.
func (r Route) section() View {
	switch r.View {
	case ViewNewApp, ViewAppDetail:
		return ViewApps
	default:
		return r.View
	}
}
