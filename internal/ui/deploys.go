package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/deckhand/internal/domain"
	"github.com/five82/deckhand/internal/viewmodel"
)

// deploysState holds the cross-app deploy list.
type deploysState struct {
	options []viewmodel.AppOption
	filter  string // app ID or viewmodel.AllApps
	visible []domain.DeployWithApp
	cursor  listCursor
	height  int
}

func newDeploysState() deploysState {
	return deploysState{filter: viewmodel.AllApps}
}

func (s *deploysState) resize(_, height int) {
	s.height = max(height-4, 2)
}

func (s deploysState) filterIndex() int {
	for i, opt := range s.options {
		if opt.ID == s.filter {
			return i
		}
	}
	return 0
}

func (s deploysState) filterLabel() string {
	if len(s.options) == 0 {
		return "All apps"
	}
	return s.options[s.filterIndex()].Label
}

// refreshDeploys re-reads the store and reapplies the app filter. A filter
// naming a deleted app falls back to all apps.
func (m *Model) refreshDeploys() {
	if m.store == nil {
		return
	}
	s := &m.deploys
	s.options = viewmodel.AppOptions(m.store.Apps())
	s.filter = s.options[s.filterIndex()].ID
	s.visible = viewmodel.FilterDeploys(m.store.AllDeploys(), s.filter, m.cfg.DeployListLimit)
	s.cursor.setCount(len(s.visible))
}

func (m Model) handleDeploysKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.deploys
	if s.cursor.navigate(msg, m.keys) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.CycleFilter), key.Matches(msg, m.keys.NextOpt):
		m.cycleDeployFilter(1)
	case key.Matches(msg, m.keys.PrevOpt):
		m.cycleDeployFilter(-1)
	case key.Matches(msg, m.keys.Back):
		if s.filter != viewmodel.AllApps {
			s.filter = viewmodel.AllApps
			m.refreshDeploys()
		}
	case key.Matches(msg, m.keys.Open):
		if len(s.visible) > 0 {
			m.modal = newDeploySheet(s.visible[s.cursor.index], m.theme, m.locale, m.now(), m.width, m.height)
		}
	}
	return m, nil
}

func (m *Model) cycleDeployFilter(delta int) {
	s := &m.deploys
	if len(s.options) == 0 {
		return
	}
	n := len(s.options)
	s.filter = s.options[(s.filterIndex()+delta+n)%n].ID
	s.cursor.top()
	m.refreshDeploys()
}

func (m Model) renderDeploys() string {
	s := m.deploys
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Title.Render("Deploys"))
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("  %d", len(s.visible))))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("App: "))
	b.WriteString(styles.AccentText.Render(s.filterLabel()))
	b.WriteString(styles.FaintText.Render("  (f to change)"))
	b.WriteString("\n")

	if len(s.visible) == 0 {
		b.WriteString(lipgloss.Place(m.width, s.height+2, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No deploys found.")))
		return b.String()
	}

	start, end := s.cursor.window(max(s.height/2, 1))
	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatDeployRow(s.visible[i], m.width-2, i == s.cursor.index, true)...)
	}
	b.WriteString(m.renderTitledBox("", strings.Join(lines, "\n"), m.width, 0, true))
	return b.String()
}
