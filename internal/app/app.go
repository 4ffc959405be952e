package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/five82/deckhand/internal/config"
	"github.com/five82/deckhand/internal/logging"
	"github.com/five82/deckhand/internal/mockdata"
	"github.com/five82/deckhand/internal/prefs"
	"github.com/five82/deckhand/internal/simulator"
	"github.com/five82/deckhand/internal/state"
	"github.com/five82/deckhand/internal/store"
	"github.com/five82/deckhand/internal/ui"
)

// Options configure the deckhand application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/deckhand/prefs.toml
	Route      string // empty uses the configured start route
}

// Run boots the deckhand TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closer.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.WithError(err).Warn("preferences unreadable, using defaults")
	}

	deps, err := build(cfg, opts.Route)
	if err != nil {
		return err
	}

	feed := &state.Store{}
	if cfg.LogFile != "" {
		StartPoller(ctx, feed, cfg.LogFile, defaultPollInterval)
	}

	log.WithField("route", deps.route.Path()).WithField("apps", len(deps.store.Apps())).Info("deckhand starting")

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     deps.store,
		Activity:  feed,
		Config:    cfg,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		Route:     deps.route,
		Plan:      deps.plan,
		Now:       deps.now,
	})
}

// wiring holds everything derived from the config before the UI starts.
type wiring struct {
	store *store.Store
	plan  simulator.Plan
	route ui.Route
	now   func() time.Time
}

// build loads the dataset and validates the simulator plan and start route.
func build(cfg config.Config, routeOverride string) (wiring, error) {
	var (
		ds  mockdata.Dataset
		err error
	)
	if cfg.SeedFile != "" {
		ds, err = mockdata.LoadFile(cfg.SeedFile)
	} else {
		ds, err = mockdata.Load()
	}
	if err != nil {
		return wiring{}, fmt.Errorf("load dataset: %w", err)
	}

	plan := simulator.Plan{
		Queued:    0,
		Building:  cfg.Simulator.BuildingAfter,
		Deploying: cfg.Simulator.DeployingAfter,
		Live:      cfg.Simulator.LiveAfter,
		Navigate:  cfg.Simulator.NavigateAfter,
	}
	if err := plan.Validate(); err != nil {
		return wiring{}, fmt.Errorf("simulator config: %w", err)
	}

	path := cfg.StartRoute
	if strings.TrimSpace(routeOverride) != "" {
		path = routeOverride
	}
	route, err := ui.ParseRoute(path)
	if err != nil {
		return wiring{}, fmt.Errorf("start route: %w", err)
	}

	now := time.Now
	if !cfg.Now.IsZero() {
		// A pinned reference time still advances so toasts and created
		// deploys stay ordered.
		started := time.Now()
		pinned := cfg.Now
		now = func() time.Time { return pinned.Add(time.Since(started)) }
	}

	s := store.New(ds)
	s.SetClock(now)

	return wiring{store: s, plan: plan, route: route, now: now}, nil
}
