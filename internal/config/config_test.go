package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Locale != defaultLocale || cfg.StartRoute != defaultStartRoute {
		t.Fatalf("Locale/StartRoute = %q/%q, want %q/%q", cfg.Locale, cfg.StartRoute, defaultLocale, defaultStartRoute)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.DeployListLimit != 30 {
		t.Fatalf("DeployListLimit = %d, want 30", cfg.DeployListLimit)
	}
	if cfg.LoginDelay != 800*time.Millisecond {
		t.Fatalf("LoginDelay = %s, want 800ms", cfg.LoginDelay)
	}
	if cfg.Simulator.LiveAfter != 5*time.Second || cfg.Simulator.NavigateAfter != 6500*time.Millisecond {
		t.Fatalf("Simulator = %+v, want default offsets", cfg.Simulator)
	}
	if !cfg.Now.IsZero() {
		t.Fatalf("Now = %v, want zero", cfg.Now)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
locale = "  pt-BR "
start_route = " /apps "
log_file = "  ~/logs/deckhand.log  "
log_level = "debug"
seed_file = "~/seed.yaml"
now = "2026-02-26T10:30:00Z"
deploy_list_limit = 10
login_delay_ms = 50
toast_ms = 1500

[simulator]
building_after_ms = 100
deploying_after_ms = 200
live_after_ms = 300
navigate_after_ms = 400
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Locale != "pt-BR" || cfg.StartRoute != "/apps" || cfg.LogLevel != "debug" {
		t.Fatalf("strings = %q %q %q", cfg.Locale, cfg.StartRoute, cfg.LogLevel)
	}
	if cfg.LogFile != filepath.Join(home, "logs/deckhand.log") {
		t.Fatalf("LogFile = %q, want under HOME %q", cfg.LogFile, home)
	}
	if !strings.HasPrefix(cfg.SeedFile, home) {
		t.Fatalf("SeedFile = %q, want it under HOME %q", cfg.SeedFile, home)
	}
	if want := time.Date(2026, 2, 26, 10, 30, 0, 0, time.UTC); !cfg.Now.Equal(want) {
		t.Fatalf("Now = %v, want %v", cfg.Now, want)
	}
	if cfg.DeployListLimit != 10 || cfg.LoginDelay != 50*time.Millisecond || cfg.ToastDuration != 1500*time.Millisecond {
		t.Fatalf("limits = %d %s %s", cfg.DeployListLimit, cfg.LoginDelay, cfg.ToastDuration)
	}
	want := Simulator{
		BuildingAfter:  100 * time.Millisecond,
		DeployingAfter: 200 * time.Millisecond,
		LiveAfter:      300 * time.Millisecond,
		NavigateAfter:  400 * time.Millisecond,
	}
	if cfg.Simulator != want {
		t.Fatalf("Simulator = %+v, want %+v", cfg.Simulator, want)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
locale = "   "
start_route = ""
deploy_list_limit = -4
login_delay_ms = 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Locale != defaultLocale || cfg.StartRoute != defaultStartRoute {
		t.Fatalf("Locale/StartRoute = %q/%q, want defaults", cfg.Locale, cfg.StartRoute)
	}
	if cfg.DeployListLimit != defaultDeployListLimit || cfg.LoginDelay != defaultLoginDelay {
		t.Fatalf("DeployListLimit/LoginDelay = %d/%s, want defaults", cfg.DeployListLimit, cfg.LoginDelay)
	}
	if cfg.LogFile == "" {
		t.Fatalf("LogFile empty, want default when key absent")
	}
}

func TestLoad_EmptyLogFileDisablesLogging(t *testing.T) {
	cfg, err := Load(writeConfig(t, `log_file = ""`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	_, err := Load(writeConfig(t, `locale = [`))
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidNowFails(t *testing.T) {
	_, err := Load(writeConfig(t, `now = "yesterday"`))
	if err == nil || !strings.Contains(err.Error(), "now") {
		t.Fatalf("Load error = %v, want now parse error", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
