package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/deckhand/internal/domain"
	"github.com/five82/deckhand/internal/format"
	"github.com/five82/deckhand/internal/viewmodel"
)

// appsState holds the app list view.
type appsState struct {
	search textinput.Model
	list   viewmodel.AppList
	cursor listCursor
	height int
}

func newAppsState() appsState {
	search := textinput.New()
	search.Placeholder = "Search apps..."
	search.Prompt = "/ "
	search.CharLimit = 64
	return appsState{search: search}
}

func (s *appsState) resize(_, height int) {
	// Title, search line and box borders.
	s.height = max(height-5, 1)
}

// selected returns the app under the cursor.
func (s appsState) selected() (domain.App, bool) {
	if s.cursor.index < 0 || s.cursor.index >= len(s.list.Apps) {
		return domain.App{}, false
	}
	return s.list.Apps[s.cursor.index], true
}

// refreshApps re-reads the store and reapplies the search.
func (m *Model) refreshApps() {
	var apps []domain.App
	if m.store != nil {
		apps = m.store.Apps()
	}
	m.apps.list = viewmodel.FilterApps(apps, m.apps.search.Value())
	m.apps.cursor.setCount(len(m.apps.list.Apps))
}

func (m Model) handleAppsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.apps.search.Focused() {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.apps.search.SetValue("")
			m.apps.search.Blur()
			m.refreshApps()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.apps.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.apps.search, cmd = m.apps.search.Update(msg)
		m.refreshApps()
		m.apps.cursor.top()
		return m, cmd
	}

	if m.apps.cursor.navigate(msg, m.keys) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		cmd := m.apps.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Back):
		if m.apps.search.Value() != "" {
			m.apps.search.SetValue("")
			m.refreshApps()
		}
		return m, nil
	case key.Matches(msg, m.keys.NewApp):
		return m.navigate(Route{View: ViewNewApp})
	}

	app, ok := m.apps.selected()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Open):
		return m.navigate(Route{View: ViewAppDetail, AppID: app.ID})
	case key.Matches(msg, m.keys.ViewLogs):
		next, cmd := m.navigate(Route{View: ViewAppDetail, AppID: app.ID})
		model := next.(Model)
		model.detail.setTab(tabLogs)
		return model, tea.Batch(cmd, model.tailCmd())
	case key.Matches(msg, m.keys.Deploy):
		return m.deployApp(app)
	case key.Matches(msg, m.keys.TogglePause):
		return m.togglePause(app)
	case key.Matches(msg, m.keys.Delete):
		m.modal = confirmModal{
			title:   "Delete app",
			body:    fmt.Sprintf("Are you sure you want to delete %s? This cannot be undone.", app.Name),
			confirm: "Delete",
			danger:  true,
			result:  confirmedMsg{action: actionDeleteApp, appID: app.ID},
		}
		return m, nil
	case key.Matches(msg, m.keys.OpenDomain):
		return m, openCmd(m.openURL, app.URL())
	}
	return m, nil
}

// deployApp acknowledges a redeploy request. No pipeline runs.
func (m Model) deployApp(app domain.App) (tea.Model, tea.Cmd) {
	cmd := m.toast("Deploy started for "+app.Name, format.ToneSuccess)
	return m, cmd
}

func (m Model) togglePause(app domain.App) (tea.Model, tea.Cmd) {
	status, err := m.store.TogglePause(app.ID)
	if err != nil {
		cmd := m.toast(err.Error(), format.ToneDanger)
		return m, cmd
	}
	m.refreshApps()
	m.refreshDetail()
	text := app.Name + " paused"
	if status != domain.AppPaused {
		text = app.Name + " resumed"
	}
	cmd := m.toast(text, format.ToneSuccess)
	return m, cmd
}

func (m Model) handleConfirmed(msg confirmedMsg) (tea.Model, tea.Cmd) {
	switch msg.action {
	case actionDeleteApp:
		app, _ := m.store.App(msg.appID)
		if err := m.store.Delete(msg.appID); err != nil {
			cmd := m.toast(err.Error(), format.ToneDanger)
			return m, cmd
		}
		toastCmd := m.toast(app.Name+" removed", format.ToneSuccess)
		if m.route.View == ViewAppDetail && m.route.AppID == msg.appID {
			next, navCmd := m.navigate(Route{View: ViewApps})
			return next, tea.Batch(toastCmd, navCmd)
		}
		m.refreshApps()
		return m, toastCmd
	case actionRollback:
		cmd := m.toast("Rollback to "+format.ShortSHA(msg.sha)+" started", format.ToneSuccess)
		return m, cmd
	case actionDeleteAccount:
		cmd := m.toast("Account deleted (mock)", format.ToneSuccess)
		return m, cmd
	}
	return m, nil
}

func (m Model) renderApps() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Title.Render("Apps"))
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("  %d", len(m.apps.list.Apps))))
	b.WriteString("\n")
	if m.apps.search.Focused() || m.apps.search.Value() != "" {
		b.WriteString(m.apps.search.View())
	} else {
		b.WriteString(styles.FaintText.Render("/ Search apps..."))
	}
	b.WriteString("\n")

	bodyHeight := m.apps.height + 2
	switch m.apps.list.Empty {
	case viewmodel.EmptyNoApps:
		empty := styles.Text.Bold(true).Render("No apps yet") + "\n" +
			styles.MutedText.Render("Connect a repository and deploy in minutes.") + "\n\n" +
			styles.AccentText.Render("n New app")
		b.WriteString(lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, empty))
		return b.String()
	case viewmodel.EmptyNoMatches:
		empty := styles.MutedText.Render(fmt.Sprintf("No apps found for %q", m.apps.list.Query))
		b.WriteString(lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, empty))
		return b.String()
	}

	inner := m.width - 2
	start, end := m.apps.cursor.window(m.apps.height)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatAppRow(m.apps.list.Apps[i], inner, i == m.apps.cursor.index))
	}
	b.WriteString(m.renderTitledBox("", strings.Join(lines, "\n"), m.width, bodyHeight, true))
	return b.String()
}

// formatAppRow renders "name  Framework  domain · time  Status" padded to width.
func (m Model) formatAppRow(app domain.App, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	nameStyle, metaStyle, statusStyle := styles.Text.Bold(true), styles.MutedText, lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.ToneColor(format.StatusTone(string(app.Status)))))
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, metaStyle, statusStyle = sel.Bold(true), sel, sel.Bold(true)
	}

	status := app.Status.Label()
	left := bg.Render(format.Truncate(app.Name, 28), nameStyle) + bg.Spaces(2) +
		bg.Render(app.Framework.Label(), metaStyle)
	if width >= LayoutCompactWidth {
		left += bg.Spaces(2) + bg.Render(app.Domain+" · "+format.RelativeTime(app.LastDeployTime, m.now(), m.locale), metaStyle)
	}
	right := bg.Render(status, statusStyle)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	return bg.FillLine(bg.Space()+left+bg.Spaces(gap)+right, width)
}
