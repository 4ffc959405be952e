package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/five82/deckhand/internal/domain"
	"github.com/five82/deckhand/internal/viewmodel"
)

func openLogs(t *testing.T, id string) (*harness, Model) {
	t.Helper()
	h, m := newHarness(t, Route{View: ViewAppDetail, AppID: id})
	m, _ = press(t, m, "tab", "tab")
	if m.detail.tab != tabLogs {
		t.Fatalf("tab = %d, want logs", m.detail.tab)
	}
	return h, m
}

func TestDetail_UnknownAppShowsNotFound(t *testing.T) {
	_, m := newHarness(t, Route{View: ViewAppDetail, AppID: "missing"})
	if m.detail.found {
		t.Fatalf("found = true for unknown app")
	}
	if !strings.Contains(m.View(), "App not found") {
		t.Fatalf("view missing not-found message")
	}
	m, _ = press(t, m, "esc")
	if m.route.View != ViewApps {
		t.Fatalf("esc route = %s, want /apps", m.route.Path())
	}
}

func TestDetail_TabsWrap(t *testing.T) {
	_, m := newHarness(t, Route{View: ViewAppDetail, AppID: "app-1"})
	m, _ = press(t, m, "shift+tab")
	if m.detail.tab != tabLogs {
		t.Fatalf("shift+tab from overview = %d, want logs", m.detail.tab)
	}
	m, _ = press(t, m, "tab")
	if m.detail.tab != tabOverview {
		t.Fatalf("tab from logs = %d, want overview", m.detail.tab)
	}
}

func TestDetail_LogFilterErrorsAndSearch(t *testing.T) {
	_, m := openLogs(t, "app-1")
	total := len(m.detail.logs)

	m, _ = press(t, m, "f")
	if m.detail.filter.Level != viewmodel.LevelErrors {
		t.Fatalf("level = %v, want errors", m.detail.filter.Level)
	}
	for _, e := range m.detail.visible {
		if e.Level != domain.LevelError {
			t.Fatalf("non-error entry visible: %+v", e)
		}
	}
	if len(m.detail.visible) != 2 {
		t.Fatalf("visible = %d, want 2 errors", len(m.detail.visible))
	}

	m, _ = press(t, m, "/")
	m = typeText(t, m, "WORKER")
	if len(m.detail.visible) != 1 || !strings.Contains(m.detail.visible[0].Message, "worker") {
		t.Fatalf("visible = %+v, want the worker error", m.detail.visible)
	}
	if !strings.Contains(m.View(), "1 of 15") {
		t.Fatalf("title missing filtered count")
	}

	m, _ = press(t, m, "esc", "f")
	if len(m.detail.visible) != total {
		t.Fatalf("visible = %d, want all %d", len(m.detail.visible), total)
	}
}

func TestDetail_LogSearchWithoutMatches(t *testing.T) {
	_, m := openLogs(t, "app-1")
	m, _ = press(t, m, "/")
	m = typeText(t, m, "nothing-like-this")
	if len(m.detail.visible) != 0 {
		t.Fatalf("visible = %d, want 0", len(m.detail.visible))
	}
	if m.detail.tailing() {
		t.Fatalf("tail indicator shown with no visible logs")
	}
	if !strings.Contains(m.View(), "No logs found.") {
		t.Fatalf("view missing empty log message")
	}
}

func TestDetail_CopyVisibleLogs(t *testing.T) {
	h, m := openLogs(t, "app-1")
	m, _ = press(t, m, "f")

	m, cmd := press(t, m, "c")
	if cmd == nil {
		t.Fatalf("copy returned no command")
	}
	m, _ = deliver(t, m, cmd())
	want := "[12:00:18] [error] Failed to fetch external API: timeout after 5000ms\n" +
		"[12:00:30] [error] Unhandled promise rejection in worker thread"
	if len(h.copied) != 1 || h.copied[0] != want {
		t.Fatalf("copied = %q, want %q", h.copied, want)
	}
	if m.toasts.latest() != "Logs copied" {
		t.Fatalf("toast = %q, want Logs copied", m.toasts.latest())
	}
}

func TestDetail_CopyFailureToasts(t *testing.T) {
	_, m := openLogs(t, "app-1")
	m.clipboard = func(string) error { return errors.New("no display") }

	_, cmd := press(t, m, "c")
	m, _ = deliver(t, m, cmd())
	if m.toasts.latest() != "Could not copy logs: no display" {
		t.Fatalf("toast = %q", m.toasts.latest())
	}
}

func TestDetail_LiveTailToggleSavesPrefs(t *testing.T) {
	_, m := openLogs(t, "app-1")
	before := m.detail.liveTail

	m, _ = press(t, m, "t")
	if m.detail.liveTail == before || m.prefs.LiveTail != m.detail.liveTail {
		t.Fatalf("liveTail = %v prefs = %v, want toggled from %v", m.detail.liveTail, m.prefs.LiveTail, before)
	}
	if m.detail.tailing() != m.detail.liveTail {
		t.Fatalf("tailing = %v, want %v", m.detail.tailing(), m.detail.liveTail)
	}
}

func TestDetail_RollbackConfirm(t *testing.T) {
	h, m := newHarness(t, Route{View: ViewAppDetail, AppID: "app-1"})
	app, _ := h.store.App("app-1")
	target := app.RollbackCandidates()[1]

	m, _ = press(t, m, "j", "r")
	modal, ok := m.modal.(confirmModal)
	if !ok {
		t.Fatalf("modal = %T, want confirmModal", m.modal)
	}
	if modal.result.sha != target.SHA || !strings.Contains(modal.body, target.CommitMessage) {
		t.Fatalf("modal = %+v, want rollback to %s", modal, target.SHA)
	}

	m, cmd := press(t, m, "y")
	m, _ = deliver(t, m, cmd())
	if want := "Rollback to " + target.SHA[:7] + " started"; m.toasts.latest() != want {
		t.Fatalf("toast = %q, want %q", m.toasts.latest(), want)
	}
	if m.route.View != ViewAppDetail {
		t.Fatalf("rollback navigated away")
	}
}

func TestDetail_DeleteFromDetailReturnsToList(t *testing.T) {
	h, m := newHarness(t, Route{View: ViewAppDetail, AppID: "app-2"})
	m, _ = deliver(t, m, confirmedMsg{action: actionDeleteApp, appID: "app-2"})
	if m.route.View != ViewApps {
		t.Fatalf("route = %s, want /apps", m.route.Path())
	}
	if _, ok := h.store.App("app-2"); ok {
		t.Fatalf("app-2 still in store")
	}
}

func TestDetail_DeploySheet(t *testing.T) {
	_, m := newHarness(t, Route{View: ViewAppDetail, AppID: "app-1"})
	m, _ = press(t, m, "tab", "j", "j", "j", "enter")
	sheet, ok := m.modal.(deploySheet)
	if !ok {
		t.Fatalf("modal = %T, want deploySheet", m.modal)
	}
	if sheet.deploy.ID != "d-1d" {
		t.Fatalf("sheet deploy = %s, want d-1d", sheet.deploy.ID)
	}
	if view := m.View(); !strings.Contains(view, "Build log") || !strings.Contains(view, "Module not found") {
		t.Fatalf("sheet missing build log:\n%s", view)
	}
	m, _ = press(t, m, "esc")
	if m.modal != nil {
		t.Fatalf("esc left the sheet open")
	}
}
