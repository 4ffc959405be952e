package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/five82/deckhand/internal/format"
	"github.com/five82/deckhand/internal/logtail"
	"github.com/five82/deckhand/internal/prefs"
	"github.com/five82/deckhand/internal/state"
	"github.com/five82/deckhand/internal/store"
)

// activityRows is how many log entries the activity panel shows.
const activityRows = 8

// settingsState holds the settings form and the activity panel snapshot.
type settingsState struct {
	name     textinput.Model
	email    textinput.Model
	focus    int // -1 = nothing, 0 = name, 1 = email
	activity state.Snapshot
}

func newSettingsState(p prefs.Prefs) settingsState {
	name := newFormInput(prefs.DefaultName)
	name.SetValue(p.DisplayName())
	email := newFormInput(prefs.DefaultEmail)
	email.SetValue(p.DisplayEmail())
	return settingsState{name: name, email: email, focus: -1}
}

func (s settingsState) editing() bool {
	return s.focus >= 0
}

func (s *settingsState) setFocus(i int) {
	s.name.Blur()
	s.email.Blur()
	s.focus = i
	switch i {
	case 0:
		s.name.Focus()
	case 1:
		s.email.Focus()
	default:
		s.focus = -1
	}
}

// refreshActivity copies the latest activity feed snapshot.
func (m *Model) refreshActivity() {
	if m.activity == nil {
		return
	}
	m.settings.activity = m.activity.Snapshot()
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.settings

	if s.editing() {
		switch {
		case key.Matches(msg, m.keys.Back):
			s.setFocus(-1)
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			s.setFocus(-1)
			return m.saveProfile()
		case key.Matches(msg, m.keys.NextField):
			s.setFocus((s.focus + 1) % 2)
			return m, nil
		case key.Matches(msg, m.keys.PrevField):
			s.setFocus((s.focus + 1) % 2)
			return m, nil
		}
		var cmd tea.Cmd
		if s.focus == 0 {
			s.name, cmd = s.name.Update(msg)
		} else {
			s.email, cmd = s.email.Update(msg)
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.NextField), key.Matches(msg, m.keys.Open):
		s.setFocus(0)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Delete):
		m.modal = confirmModal{
			title:   "Delete account",
			body:    "Are you sure you want to delete your account? All apps and deploys will be permanently removed.",
			confirm: "Delete account",
			danger:  true,
			result:  confirmedMsg{action: actionDeleteAccount},
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m.navigate(Route{View: ViewApps})
	}
	return m, nil
}

// saveProfile stores the profile fields in the preferences file. Blank fields
// fall back to the demo profile.
func (m Model) saveProfile() (tea.Model, tea.Cmd) {
	s := &m.settings
	m.prefs.Name = strings.TrimSpace(s.name.Value())
	m.prefs.Email = strings.TrimSpace(s.email.Value())
	s.name.SetValue(m.prefs.DisplayName())
	s.email.SetValue(m.prefs.DisplayEmail())
	log.WithField("email", m.prefs.DisplayEmail()).Info("profile updated")

	toastCmd := m.toast("Profile updated", format.ToneSuccess)
	return m, tea.Batch(toastCmd, savePrefsCmd(m.prefsPath, m.prefs))
}

func (m Model) renderSettings() string {
	s := m.settings
	styles := m.theme.Styles()
	width := min(m.width, 90)

	field := func(label string, in textinput.Model, idx int) string {
		prefix := styles.MutedText.Render("  " + label)
		if s.focus == idx {
			prefix = styles.AccentText.Bold(true).Render("› " + label)
		}
		return prefix + "\n    " + in.View()
	}

	profile := styles.FaintText.Render("Your account information") + "\n" +
		field("Name", s.name, 0) + "\n" +
		field("Email", s.email, 1) + "\n" +
		styles.FaintText.Render("tab Edit · enter Save")

	workspace := styles.FaintText.Render("Project settings") + "\n" +
		styles.MutedText.Render("  Base domain  ") + styles.Text.Render("*"+store.DomainSuffix) +
		styles.FaintText.Render("  (read-only)") + "\n" +
		styles.MutedText.Render("  Theme        ") + styles.Text.Render(m.theme.Name) +
		styles.FaintText.Render("  (T to cycle)") + "\n" +
		styles.MutedText.Render("  Locale       ") + styles.Text.Render(string(m.locale))

	danger := styles.FaintText.Render("Irreversible actions") + "\n" +
		styles.Text.Render("  Delete account") + "  " + styles.DangerText.Render("x Delete")

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render("Settings"),
		"",
		m.renderTitledBox("Profile", profile, width, 0, s.editing()),
		m.renderTitledBox("Workspace", workspace, width, 0, false),
		m.renderTitledBox("Recent Activity", m.renderActivity(width-4), width, 0, false),
		m.renderTitledBox("Danger Zone", danger, width, 0, false),
	)
}

// renderActivity renders the tail of the session log, newest last.
func (m Model) renderActivity(width int) string {
	snap := m.settings.activity
	styles := m.theme.Styles()

	var lines []string
	if snap.LastError != nil {
		msg := "Log unavailable: " + snap.LastError.Error()
		if snap.IsStale() {
			msg += " (retrying)"
		}
		lines = append(lines, styles.WarningText.Render(format.Truncate(msg, width)))
	}
	if !snap.HasEntries {
		if m.cfg.LogFile == "" {
			return styles.FaintText.Render("Logging is disabled.")
		}
		lines = append(lines, styles.FaintText.Render("No activity yet."))
		return strings.Join(lines, "\n")
	}

	entries := snap.Entries
	if len(entries) > activityRows {
		entries = entries[len(entries)-activityRows:]
	}
	for _, e := range entries {
		lines = append(lines, m.formatActivityLine(e, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) formatActivityLine(e logtail.Entry, width int) string {
	styles := m.theme.Styles()

	ts := "--:--:--"
	if !e.Time.IsZero() {
		ts = e.Time.In(m.now().Location()).Format("15:04:05")
	}
	levelStyle := styles.InfoText
	switch e.Level {
	case "warning", "warn":
		levelStyle = styles.WarningText
	case "error", "fatal", "panic":
		levelStyle = styles.DangerText
	}

	text := e.Message
	for _, k := range []string{"app", "route", "stage", "run"} {
		if v, ok := e.Fields[k]; ok {
			text += " " + k + "=" + v
		}
	}
	level := padRight(strings.ToUpper(e.Level), 5)
	return styles.FaintText.Render(ts) + " " + levelStyle.Render(level) + " " +
		styles.Text.Render(format.Truncate(text, max(width-16, 10)))
}
