package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
)

// loginState holds the sign-in form.
type loginState struct {
	email    textinput.Model
	password textinput.Model
	focus    int // 0 = email, 1 = password
	loading  bool
	err      string
}

type loginDoneMsg struct{ method string }

func newLoginState() loginState {
	email := textinput.New()
	email.Placeholder = "you@email.com"
	email.Prompt = ""
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "********"
	password.Prompt = ""
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginState{email: email, password: password}
}

func (s *loginState) setFocus(i int) tea.Cmd {
	s.focus = (i + 2) % 2
	if s.focus == 0 {
		s.password.Blur()
		return s.email.Focus()
	}
	s.email.Blur()
	return s.password.Focus()
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.GitHub):
		return m.startLogin("github")
	case key.Matches(msg, m.keys.Submit):
		if m.login.focus == 0 {
			cmd := m.login.setFocus(1)
			return m, cmd
		}
		if strings.TrimSpace(m.login.email.Value()) == "" || m.login.password.Value() == "" {
			m.login.err = "Enter your email and password."
			return m, nil
		}
		return m.startLogin("password")
	case key.Matches(msg, m.keys.NextField):
		cmd := m.login.setFocus(m.login.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := m.login.setFocus(m.login.focus - 1)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	m.login.err = ""
	return m, cmd
}

// startLogin shows the loading state and completes after the login delay.
func (m Model) startLogin(method string) (tea.Model, tea.Cmd) {
	m.login.loading = true
	m.login.err = ""
	m.login.email.Blur()
	m.login.password.Blur()

	delay := m.cfg.LoginDelay
	if delay <= 0 {
		delay = defaultLoginDelay
	}
	return m, tea.Tick(delay, func(time.Time) tea.Msg {
		return loginDoneMsg{method: method}
	})
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if m.route.View != ViewLogin || !m.login.loading {
		return m, nil
	}
	log.WithField("method", msg.method).Info("login simulated")
	return m.navigate(Route{View: ViewApps})
}

func (m Model) renderLogin() string {
	styles := m.theme.Styles()

	field := func(label string, input textinput.Model, focused bool) string {
		border := m.theme.Border
		if focused {
			border = m.theme.BorderFocus
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 1).
			Width(34).
			Render(input.View())
		return styles.Text.Render(label) + "\n" + box
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("▲ deckhand"))
	b.WriteString("\n\n")
	b.WriteString(styles.Title.Render("Sign in"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Access your account to manage your deploys"))
	b.WriteString("\n\n")
	b.WriteString(field("Email", m.login.email, !m.login.loading && m.login.focus == 0))
	b.WriteString("\n")
	b.WriteString(field("Password", m.login.password, !m.login.loading && m.login.focus == 1))
	b.WriteString("\n\n")

	if m.login.loading {
		b.WriteString(styles.WarningText.Render("Signing in..."))
	} else {
		b.WriteString(styles.AccentText.Bold(true).Render("enter Sign in"))
		b.WriteString(styles.FaintText.Render("   or   "))
		b.WriteString(styles.Text.Render("ctrl+g Continue with GitHub"))
	}
	if m.login.err != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(m.login.err))
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(1, 3).
		Render(b.String())

	return placeCentered(m.theme, m.width, m.height-toastHeight, card)
}
