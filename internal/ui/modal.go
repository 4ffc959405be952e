package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmAction names what a confirmation dialog guards.
type confirmAction int

const (
	actionDeleteApp confirmAction = iota
	actionRollback
	actionDeleteAccount
)

// confirmedMsg is delivered when the user accepts a confirmation dialog.
type confirmedMsg struct {
	action confirmAction
	appID  string
	sha    string
}

// confirmModal asks a yes/no question before a destructive action.
type confirmModal struct {
	title   string
	body    string
	confirm string
	danger  bool
	result  confirmedMsg
}

func (c confirmModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Confirm):
		result := c.result
		return c, func() tea.Msg { return result }, true
	case key.Matches(msg, keys.Cancel), key.Matches(msg, keys.Back):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	border := theme.BorderFocus
	confirmStyle := styles.AccentText.Bold(true)
	if c.danger {
		border = theme.Danger
		confirmStyle = styles.DangerText
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(c.title))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(c.body))
	b.WriteString("\n\n")
	b.WriteString(confirmStyle.Render("y " + c.confirm))
	b.WriteString(styles.FaintText.Render("   n Cancel"))

	return placeCentered(theme, width, height, lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(min(56, max(width-4, 20))).
		Render(b.String()))
}

// renderModal renders the active modal over the screen.
func (m Model) renderModal() string {
	return m.modal.View(m.theme, m.width, m.height)
}

// placeCentered centers a rendered box in the terminal.
func placeCentered(theme Theme, width, height int, box string) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
