package domain

import (
	"fmt"
	"strings"
	"time"
)

// EnvVar is a key/value pair configured for an App. Values are masked while
// typed but stored in plain text.
type EnvVar struct {
	Key   string
	Value string
}

// Deploy is one build/release attempt of an App.
type Deploy struct {
	ID            string
	AppID         string
	Status        DeployStatus
	CommitMessage string
	SHA           string
	Author        string
	Time          time.Time
	BuildLog      []string
}

// DeployWithApp is a Deploy annotated with its owning App's display name.
type DeployWithApp struct {
	Deploy
	AppName string
}

// App is a deployable unit.
type App struct {
	ID             string
	Name           string
	Framework      Framework
	Status         AppStatus
	Domain         string
	LastDeployTime time.Time
	EnvVars        []EnvVar
	Deploys        []Deploy // newest first
}

// LogEntry is a single runtime log line. Time is a display string, not a
// sortable instant.
type LogEntry struct {
	Time    string
	Level   LogLevel
	Message string
}

// URL returns the public address of the app.
func (a App) URL() string {
	return "https://" + a.Domain
}

// CurrentDeploy returns the most recent deploy.
func (a App) CurrentDeploy() (Deploy, bool) {
	if len(a.Deploys) == 0 {
		return Deploy{}, false
	}
	return a.Deploys[0], true
}

// RollbackCandidates returns up to three deploys preceding the current one.
func (a App) RollbackCandidates() []Deploy {
	if len(a.Deploys) <= 1 {
		return nil
	}
	end := min(len(a.Deploys), 4)
	return append([]Deploy(nil), a.Deploys[1:end]...)
}

// Clone returns a deep copy of the app.
func (a App) Clone() App {
	dup := a
	if a.EnvVars != nil {
		dup.EnvVars = append([]EnvVar(nil), a.EnvVars...)
	}
	if a.Deploys != nil {
		dup.Deploys = make([]Deploy, len(a.Deploys))
		for i, d := range a.Deploys {
			dup.Deploys[i] = d.Clone()
		}
	}
	return dup
}

// Clone returns a deep copy of the deploy.
func (d Deploy) Clone() Deploy {
	dup := d
	if d.BuildLog != nil {
		dup.BuildLog = append([]string(nil), d.BuildLog...)
	}
	return dup
}

// IsBuildErrorLine reports whether a build-log line marks a failure.
func IsBuildErrorLine(line string) bool {
	return strings.HasPrefix(line, "ERROR")
}

// CopyLine renders the entry the way it is copied to the clipboard. The level
// stays lowercase as stored, matching the dashboard's copy button.
func (e LogEntry) CopyLine() string {
	return fmt.Sprintf("[%s] [%s] %s", e.Time, e.Level, e.Message)
}

// AppNameFromRepo derives an app name from a repository URL. The result only
// holds [a-z0-9-] so it can prefix a domain; a URL naming just a host yields
// "new-app".
func AppNameFromRepo(repoURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(repoURL), "/")
	if _, rest, ok := strings.Cut(trimmed, "://"); ok {
		if !strings.Contains(rest, "/") {
			return "new-app"
		}
		trimmed = rest
	}
	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(trimmed)), ".git")

	var b strings.Builder
	dash := false
	for _, r := range trimmed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimRight(b.String(), "-")
	if name == "" {
		return "new-app"
	}
	return name
}
