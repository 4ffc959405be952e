package viewmodel

import (
	"fmt"
	"testing"
	"time"

	"github.com/five82/deckhand/internal/domain"
)

func TestFilterApps(t *testing.T) {
	apps := []domain.App{
		{ID: "app-1", Name: "portfolio-site"},
		{ID: "app-2", Name: "api-gateway"},
	}

	cases := []struct {
		name  string
		apps  []domain.App
		query string
		want  []string
		empty EmptyKind
	}{
		{"upper_case_query", apps, "API", []string{"api-gateway"}, EmptyNone},
		{"substring", apps, "folio", []string{"portfolio-site"}, EmptyNone},
		{"blank_keeps_all", apps, "  ", []string{"portfolio-site", "api-gateway"}, EmptyNone},
		{"no_match", apps, "zzz", nil, EmptyNoMatches},
		{"no_apps", nil, "", nil, EmptyNoApps},
		{"no_apps_with_query", nil, "api", nil, EmptyNoApps},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterApps(tc.apps, tc.query)
			if got.Empty != tc.empty {
				t.Fatalf("Empty = %d, want %d", got.Empty, tc.empty)
			}
			if len(got.Apps) != len(tc.want) {
				t.Fatalf("len(Apps) = %d, want %d", len(got.Apps), len(tc.want))
			}
			for i, name := range tc.want {
				if got.Apps[i].Name != name {
					t.Fatalf("Apps[%d] = %q, want %q", i, got.Apps[i].Name, name)
				}
			}
		})
	}
}

func deploys(n int, appID string) []domain.DeployWithApp {
	base := time.Date(2026, 2, 26, 0, 0, 0, 0, time.UTC)
	out := make([]domain.DeployWithApp, n)
	for i := range out {
		out[i] = domain.DeployWithApp{
			Deploy:  domain.Deploy{ID: fmt.Sprintf("%s-%d", appID, i), AppID: appID, Time: base.Add(-time.Duration(i) * time.Hour)},
			AppName: appID,
		}
	}
	return out
}

func TestFilterDeploys(t *testing.T) {
	all := append(deploys(25, "a"), deploys(20, "b")...)

	if got := FilterDeploys(all, AllApps, 0); len(got) != DeployListLimit {
		t.Fatalf("len(all) = %d, want %d", len(got), DeployListLimit)
	}
	if got := FilterDeploys(all, "", 0); len(got) != DeployListLimit {
		t.Fatalf("len(blank) = %d, want %d", len(got), DeployListLimit)
	}

	onlyB := FilterDeploys(all, "b", 0)
	if len(onlyB) != 20 {
		t.Fatalf("len(b) = %d, want 20", len(onlyB))
	}
	for i, d := range onlyB {
		if d.AppID != "b" {
			t.Fatalf("deploy %s has AppID %q, want b", d.ID, d.AppID)
		}
		if d.ID != fmt.Sprintf("b-%d", i) {
			t.Fatalf("order changed: got %s at %d", d.ID, i)
		}
	}

	if got := FilterDeploys(all, "missing", 0); len(got) != 0 {
		t.Fatalf("len(missing) = %d, want 0", len(got))
	}
	if got := FilterDeploys(all, "a", 5); len(got) != 5 {
		t.Fatalf("len(limit 5) = %d, want 5", len(got))
	}
	if got := FilterDeploys(nil, AllApps, 0); got == nil || len(got) != 0 {
		t.Fatalf("FilterDeploys(nil) = %#v, want empty", got)
	}
}

func sampleLogs() []domain.LogEntry {
	return []domain.LogEntry{
		{Time: "10:00:01", Level: domain.LevelInfo, Message: "Server started on port 3000"},
		{Time: "10:00:02", Level: domain.LevelError, Message: "Database connection timeout"},
		{Time: "10:00:03", Level: domain.LevelWarn, Message: "Database pool near capacity"},
		{Time: "10:00:04", Level: domain.LevelError, Message: "Unhandled rejection in worker"},
	}
}

func TestFilterLogs_Conjunctive(t *testing.T) {
	logs := sampleLogs()

	cases := []struct {
		name   string
		filter LogFilter
		want   []string
	}{
		{"all", LogFilter{}, []string{"10:00:01", "10:00:02", "10:00:03", "10:00:04"}},
		{"errors", LogFilter{Level: LevelErrors}, []string{"10:00:02", "10:00:04"}},
		{"query", LogFilter{Query: "DATABASE"}, []string{"10:00:02", "10:00:03"}},
		{"errors_and_query", LogFilter{Level: LevelErrors, Query: "database"}, []string{"10:00:02"}},
		{"no_match", LogFilter{Level: LevelErrors, Query: "port"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterLogs(logs, tc.filter)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d (%v)", len(got), len(tc.want), got)
			}
			for i, ts := range tc.want {
				if got[i].Time != ts {
					t.Fatalf("got[%d].Time = %q, want %q", i, got[i].Time, ts)
				}
			}
		})
	}
}

func TestLogFilter_Active(t *testing.T) {
	if (LogFilter{}).Active() {
		t.Fatalf("zero filter reported active")
	}
	if !(LogFilter{Query: "x"}).Active() || !(LogFilter{Level: LevelErrors}).Active() {
		t.Fatalf("non-zero filter reported inactive")
	}
	if LevelAll.Next() != LevelErrors || LevelErrors.Next() != LevelAll {
		t.Fatalf("Next does not cycle")
	}
}

func TestCopyText(t *testing.T) {
	logs := FilterLogs(sampleLogs(), LogFilter{Level: LevelErrors})
	want := "[10:00:02] [error] Database connection timeout\n[10:00:04] [error] Unhandled rejection in worker"
	if got := CopyText(logs); got != want {
		t.Fatalf("CopyText = %q, want %q", got, want)
	}
	if got := CopyText(nil); got != "" {
		t.Fatalf("CopyText(nil) = %q, want empty", got)
	}
}

func TestAppOptions(t *testing.T) {
	opts := AppOptions([]domain.App{{ID: "app-1", Name: "portfolio-site"}})
	if len(opts) != 2 || opts[0].ID != AllApps || opts[1].Label != "portfolio-site" {
		t.Fatalf("AppOptions = %#v", opts)
	}
}
