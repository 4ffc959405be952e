package domain

import (
	"fmt"
	"strings"
)

// AppStatus is the lifecycle status of an App.
type AppStatus string

const (
	AppLive     AppStatus = "live"
	AppBuilding AppStatus = "building"
	AppFailed   AppStatus = "failed"
	AppPaused   AppStatus = "paused"
)

// DeployStatus is the status of a single Deploy. It is a separate domain from
// AppStatus: deploys can be queued, apps can be paused.
type DeployStatus string

const (
	DeployLive     DeployStatus = "live"
	DeployBuilding DeployStatus = "building"
	DeployFailed   DeployStatus = "failed"
	DeployQueued   DeployStatus = "queued"
)

// LogLevel is the severity of a runtime log entry.
type LogLevel string

const (
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Valid reports whether s is one of the known app statuses.
func (s AppStatus) Valid() bool {
	switch s {
	case AppLive, AppBuilding, AppFailed, AppPaused:
		return true
	}
	return false
}

// Label returns the display label for the status.
func (s AppStatus) Label() string {
	return statusLabel(string(s))
}

// Valid reports whether s is one of the known deploy statuses.
func (s DeployStatus) Valid() bool {
	switch s {
	case DeployLive, DeployBuilding, DeployFailed, DeployQueued:
		return true
	}
	return false
}

// Label returns the display label for the status.
func (s DeployStatus) Label() string {
	return statusLabel(string(s))
}

// Valid reports whether l is one of the known log levels.
func (l LogLevel) Valid() bool {
	switch l {
	case LevelInfo, LevelWarn, LevelError:
		return true
	}
	return false
}

// ParseAppStatus normalizes and validates an app status.
func ParseAppStatus(value string) (AppStatus, error) {
	s := AppStatus(normalize(value))
	if !s.Valid() {
		return "", fmt.Errorf("unknown app status %q", value)
	}
	return s, nil
}

// ParseDeployStatus normalizes and validates a deploy status.
func ParseDeployStatus(value string) (DeployStatus, error) {
	s := DeployStatus(normalize(value))
	if !s.Valid() {
		return "", fmt.Errorf("unknown deploy status %q", value)
	}
	return s, nil
}

// ParseLogLevel normalizes and validates a log level.
func ParseLogLevel(value string) (LogLevel, error) {
	l := LogLevel(normalize(value))
	if !l.Valid() {
		return "", fmt.Errorf("unknown log level %q", value)
	}
	return l, nil
}

// TogglePause flips an app between paused and live. Any status other than
// paused pauses the app.
func TogglePause(s AppStatus) AppStatus {
	if s == AppPaused {
		return AppLive
	}
	return AppPaused
}

func statusLabel(s string) string {
	switch s {
	case "live":
		return "Live"
	case "building":
		return "Building"
	case "failed":
		return "Failed"
	case "paused":
		return "Paused"
	case "queued":
		return "Queued"
	default:
		return s
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
