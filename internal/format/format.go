// Package format renders timestamps, statuses and counts for display.
//
// Every function here is pure: the reference time is passed in, so output is
// deterministic for fixed input.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Locale selects the language of rendered strings.
type Locale string

const (
	English    Locale = "en"
	Portuguese Locale = "pt-BR"
)

// ParseLocale maps a config value to a Locale. Unknown values fall back to English.
func ParseLocale(value string) Locale {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pt-br", "pt_br", "pt":
		return Portuguese
	default:
		return English
	}
}

type phrases struct {
	now     string
	minutes string
	hours   string
	days    string
	date    string
}

var table = map[Locale]phrases{
	English: {
		now:     "now",
		minutes: "%d min ago",
		hours:   "%d h ago",
		days:    "%d d ago",
		date:    "Jan 2, 2006",
	},
	Portuguese: {
		now:     "agora",
		minutes: "%dmin atrás",
		hours:   "%dh atrás",
		days:    "%dd atrás",
		date:    "02/01/2006",
	},
}

func phrasesFor(locale Locale) phrases {
	if p, ok := table[locale]; ok {
		return p
	}
	return table[English]
}

// RelativeTime describes t relative to now. Instants less than a week old get
// a coarse "N units ago" form; older ones fall back to a calendar date in the
// location of now. Future instants render as now.
func RelativeTime(t, now time.Time, locale Locale) string {
	p := phrasesFor(locale)
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}
	switch {
	case diff < time.Minute:
		return p.now
	case diff < time.Hour:
		return fmt.Sprintf(p.minutes, int(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf(p.hours, int(diff/time.Hour))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf(p.days, int(diff/(24*time.Hour)))
	}
	return t.In(now.Location()).Format(p.date)
}

// Tone is the semantic color class of a status.
type Tone int

const (
	ToneMuted Tone = iota
	ToneSuccess
	ToneWarning
	ToneDanger
)

func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	case ToneDanger:
		return "danger"
	default:
		return "muted"
	}
}

// StatusTone maps an app or deploy status to its tone. Unrecognized statuses
// are muted.
func StatusTone(status string) Tone {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "live":
		return ToneSuccess
	case "building":
		return ToneWarning
	case "failed":
		return ToneDanger
	default:
		return ToneMuted
	}
}

// EnvSummary describes how many environment variables an app has.
func EnvSummary(n int, locale Locale) string {
	if locale == Portuguese {
		switch {
		case n <= 0:
			return "Nenhuma variável configurada."
		case n == 1:
			return "1 variável configurada."
		default:
			return fmt.Sprintf("%d variáveis configuradas.", n)
		}
	}
	switch {
	case n <= 0:
		return "No variables configured."
	case n == 1:
		return "1 variable configured."
	default:
		return fmt.Sprintf("%d variables configured.", n)
	}
}

// ShortSHA trims a commit hash to seven characters.
func ShortSHA(sha string) string {
	sha = strings.TrimSpace(sha)
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// Truncate shortens s to at most limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
