package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/deckhand/internal/domain"
	"github.com/five82/deckhand/internal/format"
)

// deploySheet shows one deploy with its build log.
type deploySheet struct {
	deploy  domain.DeployWithApp
	content string
	vp      viewport.Model
}

func newDeploySheet(d domain.DeployWithApp, theme Theme, locale format.Locale, now time.Time, width, height int) deploySheet {
	keys := DefaultKeyMap()
	w, h := sheetSize(width, height)
	vp := viewport.New(w-4, h-2)
	vp.KeyMap = viewport.KeyMap{
		Up:       keys.Up,
		Down:     keys.Down,
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d", " ")),
	}
	s := deploySheet{deploy: d, vp: vp}
	s.content = renderSheetContent(d, theme, locale, now, w-4)
	s.vp.SetContent(s.content)
	return s
}

func (s deploySheet) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Cancel):
		return s, nil, true
	case key.Matches(msg, keys.Top):
		s.vp.GotoTop()
		return s, nil, false
	case key.Matches(msg, keys.Bottom):
		s.vp.GotoBottom()
		return s, nil, false
	}
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd, false
}

func (s deploySheet) View(theme Theme, width, height int) string {
	w, h := sheetSize(width, height)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(0, 1).
		Width(w - 2).
		Height(h - 2).
		Render(s.vp.View())
	// The sheet is docked to the right edge.
	return lipgloss.Place(width, height, lipgloss.Right, lipgloss.Top, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)))
}

func sheetSize(width, height int) (int, int) {
	w := min(max(width/2, 60), width)
	return max(w, 24), max(height, 10)
}

func renderSheetContent(d domain.DeployWithApp, theme Theme, locale format.Locale, now time.Time, width int) string {
	styles := theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("Deploy details"))
	b.WriteString(styles.FaintText.Render("  esc Close"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render(format.Truncate(d.CommitMessage, width)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(d.AppName))
	b.WriteString("\n\n")
	b.WriteString(styles.StatusBadge(string(d.Status), d.Status.Label()))
	b.WriteString("  ")
	b.WriteString(styles.AccentText.Render(format.ShortSHA(d.SHA)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("by " + d.Author + " · " + format.RelativeTime(d.Time, now, locale)))
	b.WriteString("\n\n")
	b.WriteString(styles.Title.Render("Build log"))
	b.WriteString("\n")

	if len(d.BuildLog) == 0 {
		b.WriteString(styles.FaintText.Render("No build output."))
		return b.String()
	}
	for _, line := range d.BuildLog {
		style := styles.Text
		if domain.IsBuildErrorLine(line) {
			style = styles.DangerText
		}
		b.WriteString(style.Render(format.Truncate(line, width)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
