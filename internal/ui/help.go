package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"1/2/3", "Apps/Deploys/Settings"},
				{"esc", "Back"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"enter", "Open selection"},
			},
		},
		{
			title: "Apps",
			items: []helpItem{
				{"/", "Search by name"},
				{"n", "New app"},
				{"d", "Deploy"},
				{"p", "Pause/resume"},
				{"x", "Delete"},
				{"o", "Open domain"},
			},
		},
		{
			title: "App detail",
			items: []helpItem{
				{"tab", "Cycle tabs"},
				{"r", "Rollback"},
				{"f", "All/Errors"},
				{"c", "Copy visible logs"},
				{"t", "Toggle live tail"},
			},
		},
		{
			title: "Forms",
			items: []helpItem{
				{"tab/↑↓", "Move between fields"},
				{"←/→", "Change option"},
				{"space", "Toggle switch"},
				{"ctrl+n/x", "Add/remove variable"},
				{"ctrl+s", "Deploy"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(44).
		Render(b.String())

	return placeCentered(m.theme, m.width, m.height, box)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
