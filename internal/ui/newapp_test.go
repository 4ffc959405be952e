package ui

import (
	"strings"
	"testing"

	"github.com/five82/deckhand/internal/domain"
	"github.com/five82/deckhand/internal/simulator"
)

func startNewApp(t *testing.T, repo string) (*harness, Model, simulator.Run) {
	t.Helper()
	h, m := newHarness(t, Route{View: ViewNewApp})
	m = typeText(t, m, repo)
	m, cmd := press(t, m, "ctrl+s")
	if cmd == nil {
		t.Fatalf("deploy returned no command")
	}
	if m.newApp.machine.Stage() != simulator.Queued {
		t.Fatalf("stage = %s, want queued", m.newApp.machine.Stage())
	}
	return h, m, m.newApp.machine.Current()
}

func TestNewApp_Defaults(t *testing.T) {
	_, m := newHarness(t, Route{View: ViewNewApp})
	s := m.newApp
	if s.framework != domain.FrameworkNextJS || s.branch.Value() != "main" || s.port.Value() != "3000" || !s.autoDetect {
		t.Fatalf("defaults = %s %q %q %v", s.framework, s.branch.Value(), s.port.Value(), s.autoDetect)
	}
	if !s.repo.Focused() {
		t.Fatalf("repository input not focused")
	}
	if s.build.Value() != domain.FrameworkNextJS.Defaults().Build {
		t.Fatalf("build = %q, want framework default", s.build.Value())
	}
}

func TestNewApp_FrameworkChangeResetsCommands(t *testing.T) {
	_, m := newHarness(t, Route{View: ViewNewApp})
	m.newApp.focusField(fieldBuild, 0)
	m.newApp.build.SetValue("make all")

	m.newApp.focusField(fieldFramework, 0)
	m, _ = press(t, m, "right")
	if m.newApp.framework == domain.FrameworkNextJS {
		t.Fatalf("framework unchanged")
	}
	want := m.newApp.framework.Defaults()
	if m.newApp.build.Value() != want.Build {
		t.Fatalf("build = %q, want %q", m.newApp.build.Value(), want.Build)
	}

	m, _ = press(t, m, "left")
	if m.newApp.framework != domain.FrameworkNextJS {
		t.Fatalf("left did not go back to nextjs, got %s", m.newApp.framework)
	}
}

func TestNewApp_AutoDetectToggles(t *testing.T) {
	_, m := newHarness(t, Route{View: ViewNewApp})
	m.newApp.focusField(fieldAutoDetect, 0)
	m, _ = press(t, m, "space")
	if m.newApp.autoDetect {
		t.Fatalf("autoDetect still on")
	}
}

func TestNewApp_EnvRowsAddAndRemove(t *testing.T) {
	_, m := newHarness(t, Route{View: ViewNewApp})
	m, _ = press(t, m, "ctrl+n")
	if len(m.newApp.env) != 1 || m.newApp.current().field != fieldEnvKey {
		t.Fatalf("env = %d focus = %v, want a focused key row", len(m.newApp.env), m.newApp.current())
	}
	m = typeText(t, m, "API_KEY")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "s3cret")
	if strings.Contains(m.View(), "s3cret") {
		t.Fatalf("env value rendered in clear text")
	}

	req := m.newApp.request()
	if len(req.EnvVars) != 1 || req.EnvVars[0].Key != "API_KEY" || req.EnvVars[0].Value != "s3cret" {
		t.Fatalf("request env = %+v", req.EnvVars)
	}

	m, _ = press(t, m, "ctrl+x")
	if len(m.newApp.env) != 0 || m.newApp.current().field != fieldPort {
		t.Fatalf("env = %d focus = %v, want rows removed and port focused", len(m.newApp.env), m.newApp.current())
	}
}

func TestNewApp_RequiresRepository(t *testing.T) {
	_, m := newHarness(t, Route{View: ViewNewApp})
	m, _ = press(t, m, "ctrl+s")
	if m.newApp.err != "Repository URL is required." {
		t.Fatalf("err = %q", m.newApp.err)
	}
	if m.newApp.deploying() {
		t.Fatalf("deploy started without a repository")
	}
}

func TestNewApp_StagesCreateAndNavigate(t *testing.T) {
	h, m, run := startNewApp(t, "https://github.com/acme/shop.git")
	before := len(h.store.Apps())

	if m.toasts.latest() != "Deploy started" {
		t.Fatalf("toast = %q, want Deploy started", m.toasts.latest())
	}
	if !strings.Contains(m.View(), "Queued") {
		t.Fatalf("progress view missing queued step")
	}

	// Skipped stages are dropped.
	m, _ = deliver(t, m, stageMsg{run: run, stage: simulator.Deploying})
	if m.newApp.machine.Stage() != simulator.Queued {
		t.Fatalf("out-of-order stage applied")
	}

	for _, stage := range simulator.Steps[1:] {
		m, _ = deliver(t, m, stageMsg{run: run, stage: stage})
		if m.newApp.machine.Stage() != stage {
			t.Fatalf("stage = %s, want %s", m.newApp.machine.Stage(), stage)
		}
	}

	if len(h.store.Apps()) != before+1 {
		t.Fatalf("apps = %d, want %d", len(h.store.Apps()), before+1)
	}
	created, ok := h.store.App(m.newApp.createdID)
	if !ok || created.Name != "shop" || created.Status != domain.AppLive {
		t.Fatalf("created = %+v, want live shop app", created)
	}
	if m.toasts.latest() != "Deploy completed successfully" {
		t.Fatalf("toast = %q", m.toasts.latest())
	}

	// A redelivered live event must not create a second app.
	m, _ = deliver(t, m, stageMsg{run: run, stage: simulator.Live})
	if len(h.store.Apps()) != before+1 {
		t.Fatalf("duplicate live event created another app")
	}

	m, _ = deliver(t, m, navigateMsg{run: run})
	if m.route.View != ViewAppDetail || m.route.AppID == "" || m.route.AppID != created.ID {
		t.Fatalf("route = %s, want /apps/%s", m.route.Path(), created.ID)
	}
}

func TestNewApp_StaleRunIgnored(t *testing.T) {
	h, m, run := startNewApp(t, "https://github.com/acme/one")
	before := len(h.store.Apps())

	m, _ = deliver(t, m, stageMsg{run: run - 1, stage: simulator.Building})
	if m.newApp.machine.Stage() != simulator.Queued {
		t.Fatalf("stage from a stale run applied")
	}

	// Leaving cancels the run; its remaining timers are dropped.
	m, _ = press(t, m, "esc")
	if m.route.View != ViewApps {
		t.Fatalf("route = %s, want /apps", m.route.Path())
	}
	for _, stage := range simulator.Steps[1:] {
		m, _ = deliver(t, m, stageMsg{run: run, stage: stage})
	}
	m, _ = deliver(t, m, navigateMsg{run: run})
	if m.route.View != ViewApps {
		t.Fatalf("stale navigate moved to %s", m.route.Path())
	}
	if len(h.store.Apps()) != before {
		t.Fatalf("cancelled run created an app")
	}
}

func TestNewApp_ReenteringResetsForm(t *testing.T) {
	_, m, _ := startNewApp(t, "https://github.com/acme/two")
	m, _ = press(t, m, "esc", "n")
	if m.route.View != ViewNewApp {
		t.Fatalf("route = %s, want /apps/new", m.route.Path())
	}
	if m.newApp.deploying() || m.newApp.repo.Value() != "" {
		t.Fatalf("form not reset: deploying=%v repo=%q", m.newApp.deploying(), m.newApp.repo.Value())
	}
}
