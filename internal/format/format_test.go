package format

import (
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 2, 26, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		in   time.Time
		en   string
		pt   string
	}{
		{"thirty_seconds", time.Date(2026, 2, 26, 10, 29, 30, 0, time.UTC), "now", "agora"},
		{"future", now.Add(time.Hour), "now", "agora"},
		{"thirty_minutes", time.Date(2026, 2, 26, 10, 0, 0, 0, time.UTC), "30 min ago", "30min atrás"},
		{"hours", time.Date(2026, 2, 26, 7, 45, 0, 0, time.UTC), "2 h ago", "2h atrás"},
		{"one_day", time.Date(2026, 2, 25, 10, 30, 0, 0, time.UTC), "1 d ago", "1d atrás"},
		{"six_days", now.Add(-6*24*time.Hour - time.Hour), "6 d ago", "6d atrás"},
		{"calendar", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "Jan 1, 2026", "01/01/2026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RelativeTime(tc.in, now, English); got != tc.en {
				t.Fatalf("RelativeTime(en) = %q, want %q", got, tc.en)
			}
			if got := RelativeTime(tc.in, now, Portuguese); got != tc.pt {
				t.Fatalf("RelativeTime(pt-BR) = %q, want %q", got, tc.pt)
			}
		})
	}
}

func TestRelativeTime_DateUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	now := time.Date(2026, 2, 26, 10, 30, 0, 0, loc)
	in := time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)
	if got := RelativeTime(in, now, English); got != "Dec 31, 2025" {
		t.Fatalf("RelativeTime = %q, want Dec 31, 2025", got)
	}
}

func TestParseLocale(t *testing.T) {
	cases := map[string]Locale{
		"":       English,
		"en":     English,
		"fr":     English,
		"pt-BR":  Portuguese,
		" pt_br": Portuguese,
	}
	for in, want := range cases {
		if got := ParseLocale(in); got != want {
			t.Fatalf("ParseLocale(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStatusTone(t *testing.T) {
	cases := []struct {
		in   string
		want Tone
	}{
		{"live", ToneSuccess},
		{"building", ToneWarning},
		{"failed", ToneDanger},
		{"paused", ToneMuted},
		{"queued", ToneMuted},
		{"unknown", ToneMuted},
		{"LIVE", ToneSuccess},
	}
	for _, tc := range cases {
		if got := StatusTone(tc.in); got != tc.want {
			t.Fatalf("StatusTone(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEnvSummary(t *testing.T) {
	if got := EnvSummary(0, English); got != "No variables configured." {
		t.Fatalf("EnvSummary(0) = %q", got)
	}
	if got := EnvSummary(1, English); got != "1 variable configured." {
		t.Fatalf("EnvSummary(1) = %q", got)
	}
	if got := EnvSummary(3, English); got != "3 variables configured." {
		t.Fatalf("EnvSummary(3) = %q", got)
	}
	if got := EnvSummary(2, Portuguese); got != "2 variáveis configuradas." {
		t.Fatalf("EnvSummary(2, pt-BR) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("portfolio-site", 20); got != "portfolio-site" {
		t.Fatalf("Truncate short = %q", got)
	}
	if got := Truncate("portfolio-site", 6); got != "portf…" {
		t.Fatalf("Truncate = %q, want portf…", got)
	}
	if got := Truncate("abc", 0); got != "" {
		t.Fatalf("Truncate(0) = %q, want empty", got)
	}
	if got := ShortSHA("a1b2c3d4e5"); got != "a1b2c3d" {
		t.Fatalf("ShortSHA = %q, want a1b2c3d", got)
	}
}
