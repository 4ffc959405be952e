package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/deckhand/internal/format"
)

// renderHeader renders the navbar with the section tabs.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("deckhand", styles.Logo)}

	active := m.route.section()
	for _, tab := range []struct {
		key   string
		label string
		view  View
	}{
		{"1", "Apps", ViewApps},
		{"2", "Deploys", ViewDeploys},
		{"3", "Settings", ViewSettings},
	} {
		if tab.view == active {
			parts = append(parts, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Foreground(lipgloss.Color(m.theme.SelectionText)).
				Bold(true).
				Render(" "+tab.key+" "+tab.label+" "))
			continue
		}
		parts = append(parts, bg.Render(tab.key, styles.AccentText)+bg.Space()+bg.Render(tab.label, styles.MutedText))
	}

	left := bg.Join(parts, "  ")
	right := bg.Render(m.prefs.DisplayName(), styles.FaintText)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 || m.width < LayoutCompactWidth {
		return styles.Header.Width(m.width).Render(left)
	}
	return styles.Header.Width(m.width).Render(left + bg.Spaces(gap) + right)
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.route.View {
	case ViewApps:
		if m.apps.search.Focused() {
			commands = []cmd{{"enter", "Apply"}, {"esc", "Clear"}}
			break
		}
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"/", "Search"},
			{"n", "New app"},
			{"p", "Pause"},
			{"x", "Delete"},
			{"o", "Open"},
		}
	case ViewAppDetail:
		commands = []cmd{{"tab", "Tabs"}, {"d", "Deploy"}, {"o", "Open"}}
		switch m.detail.tab {
		case tabDeploys:
			commands = append(commands, cmd{"enter", "Details"})
		case tabOverview:
			commands = append(commands, cmd{"r", "Rollback"})
		case tabLogs:
			commands = append(commands,
				cmd{"f", m.detail.filter.Level.Label()},
				cmd{"/", "Search"},
				cmd{"c", "Copy"},
				cmd{"t", "Live tail"},
			)
		}
		commands = append(commands, cmd{"esc", "Back"})
	case ViewNewApp:
		commands = []cmd{
			{"tab", "Next field"},
			{"←/→", "Options"},
			{"ctrl+n", "Add var"},
			{"ctrl+s", "Deploy"},
			{"esc", "Cancel"},
		}
	case ViewDeploys:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Details"},
			{"f", m.deploys.filterLabel()},
		}
	case ViewSettings:
		commands = []cmd{
			{"tab", "Next field"},
			{"enter", "Save"},
			{"x", "Delete account"},
		}
	}
	commands = append(commands, cmd{"?", "More"})

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderTitledBox renders content in a box with the title set into the top
// border: ┌─── Title ───┐. A non-positive height sizes the box to its content.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 4)
	label := ""
	if title != "" {
		label = " " + format.Truncate(title, innerWidth-4) + " "
	}
	leftPad := (innerWidth - lipgloss.Width(label)) / 2
	rightPad := innerWidth - lipgloss.Width(label) - leftPad

	top := bg.Render("┌"+strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(label, titleStyle) +
		bg.Render(strings.Repeat("─", rightPad)+"┐", borderStyle)
	bottom := bg.Render("└"+strings.Repeat("─", innerWidth)+"┘", borderStyle)

	lines := strings.Split(content, "\n")
	rows := len(lines)
	if height > 0 {
		rows = max(height-2, 0)
	}
	body := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColor))
	padded := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		padded = append(padded, bg.Render("│", borderStyle)+body.Render(line)+bg.Render("│", borderStyle))
	}
	return top + "\n" + strings.Join(padded, "\n") + "\n" + bottom
}
