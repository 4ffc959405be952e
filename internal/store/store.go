package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/five82/deckhand/internal/domain"
	"github.com/five82/deckhand/internal/mockdata"
)

var (
	// ErrAppNotFound is returned when an operation names an unknown app.
	ErrAppNotFound = errors.New("app not found")
	// ErrInvalidApp is returned when a new app cannot be created as described.
	ErrInvalidApp = errors.New("invalid app")
)

// DomainSuffix is appended to app names to form their public domain.
const DomainSuffix = ".deploy.app"

// NewApp describes an app configured through the create flow.
type NewApp struct {
	RepoURL   string
	Branch    string
	Framework domain.Framework
	Commands  domain.Commands
	Port      string
	EnvVars   []domain.EnvVar
}

// Store owns the session's app collection. All accessors return copies.
type Store struct {
	mu        sync.RWMutex
	apps      []domain.App
	logs      []domain.LogEntry
	buildLogs map[string][]string
	now       func() time.Time
}

// New seeds a store from a dataset. The dataset is copied.
func New(ds mockdata.Dataset) *Store {
	s := &Store{
		apps:      make([]domain.App, len(ds.Apps)),
		logs:      append([]domain.LogEntry(nil), ds.Logs...),
		buildLogs: ds.BuildLogs,
		now:       time.Now,
	}
	for i, app := range ds.Apps {
		s.apps[i] = app.Clone()
	}
	return s
}

// SetClock overrides the time source used for created deploys.
func (s *Store) SetClock(now func() time.Time) {
	if now == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Apps returns every app in seed order.
func (s *Store) Apps() []domain.App {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.App, len(s.apps))
	for i, app := range s.apps {
		out[i] = app.Clone()
	}
	return out
}

// App looks up an app by identity. Unknown identities report false.
func (s *Store) App(id string) (domain.App, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.apps[idx].Clone(), true
	}
	return domain.App{}, false
}

// AllDeploys flattens every app's deploys, annotated with the app name and
// sorted newest first.
func (s *Store) AllDeploys() []domain.DeployWithApp {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.DeployWithApp
	for _, app := range s.apps {
		for _, d := range app.Deploys {
			out = append(out, domain.DeployWithApp{Deploy: d.Clone(), AppName: app.Name})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.After(out[j].Time)
	})
	return out
}

// Logs returns the runtime log sample.
func (s *Store) Logs() []domain.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.LogEntry(nil), s.logs...)
}

// TogglePause flips the app between paused and live and returns the new status.
func (s *Store) TogglePause(id string) (domain.AppStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return "", fmt.Errorf("toggle pause %q: %w", id, ErrAppNotFound)
	}
	next := domain.TogglePause(s.apps[idx].Status)
	s.apps[idx].Status = next
	log.WithField("app", id).WithField("status", next).Info("app status toggled")
	return next, nil
}

// Delete removes the app from the collection.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrAppNotFound)
	}
	s.apps = append(s.apps[:idx], s.apps[idx+1:]...)
	log.WithField("app", id).Info("app deleted")
	return nil
}

// Create appends a new live app with a single completed deploy.
func (s *Store) Create(req NewApp) (domain.App, error) {
	if strings.TrimSpace(req.RepoURL) == "" {
		return domain.App{}, fmt.Errorf("%w: repository url is required", ErrInvalidApp)
	}
	if !req.Framework.Valid() {
		return domain.App{}, fmt.Errorf("%w: unknown framework %q", ErrInvalidApp, req.Framework)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.uniqueName(domain.AppNameFromRepo(req.RepoURL))
	id := uuid.NewString()
	at := s.now().UTC()

	branch := strings.TrimSpace(req.Branch)
	if branch == "" {
		branch = "main"
	}

	var envVars []domain.EnvVar
	for _, ev := range req.EnvVars {
		if strings.TrimSpace(ev.Key) == "" {
			continue
		}
		envVars = append(envVars, domain.EnvVar{Key: strings.TrimSpace(ev.Key), Value: ev.Value})
	}

	app := domain.App{
		ID:             id,
		Name:           name,
		Framework:      req.Framework,
		Status:         domain.AppLive,
		Domain:         name + DomainSuffix,
		LastDeployTime: at,
		EnvVars:        envVars,
		Deploys: []domain.Deploy{{
			ID:            "d-" + id[:8],
			AppID:         id,
			Status:        domain.DeployLive,
			CommitMessage: fmt.Sprintf("deploy: initial deploy from %s", branch),
			SHA:           strings.ReplaceAll(uuid.NewString(), "-", "")[:7],
			Author:        "you",
			Time:          at,
			BuildLog:      append([]string(nil), s.buildLogs[mockdata.SuccessTemplate]...),
		}},
	}
	s.apps = append(s.apps, app)
	log.WithField("app", id).WithField("name", name).Info("app created")
	return app.Clone(), nil
}

func (s *Store) indexOf(id string) int {
	for i, app := range s.apps {
		if app.ID == id {
			return i
		}
	}
	return -1
}

// uniqueName suffixes a counter when another app already uses the name.
func (s *Store) uniqueName(base string) string {
	taken := make(map[string]bool, len(s.apps))
	for _, app := range s.apps {
		taken[app.Name] = true
	}
	if !taken[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
