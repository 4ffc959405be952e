package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/deckhand/internal/domain"
	"github.com/five82/deckhand/internal/format"
	"github.com/five82/deckhand/internal/viewmodel"
)

// detailTab is a tab of the app detail view.
type detailTab int

const (
	tabOverview detailTab = iota
	tabDeploys
	tabLogs
)

var detailTabs = []struct {
	tab   detailTab
	label string
}{
	{tabOverview, "Overview"},
	{tabDeploys, "Deploys"},
	{tabLogs, "Logs"},
}

// detailState holds the app detail view.
type detailState struct {
	appID string
	app   domain.App
	found bool
	tab   detailTab

	rollback listCursor
	deploys  listCursor

	logs      []domain.LogEntry
	visible   []domain.LogEntry
	filter    viewmodel.LogFilter
	logSearch textinput.Model
	logView   viewport.Model
	liveTail  bool
	spinner   spinner.Model

	width  int
	height int
}

func newDetailState(liveTail bool) detailState {
	search := textinput.New()
	search.Placeholder = "Search logs..."
	search.Prompt = "/ "
	search.CharLimit = 64

	keys := DefaultKeyMap()
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		Up:           keys.Up,
		Down:         keys.Down,
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}

	return detailState{
		logSearch: search,
		logView:   vp,
		liveTail:  liveTail,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// open resets per-app state for appID.
func (s *detailState) open(appID string) {
	s.appID = appID
	s.tab = tabOverview
	s.rollback = listCursor{}
	s.deploys = listCursor{}
	s.filter = viewmodel.LogFilter{}
	s.logSearch.SetValue("")
	s.logSearch.Blur()
	s.logView.GotoTop()
}

func (s *detailState) setTab(t detailTab) {
	s.tab = t
	s.logSearch.Blur()
}

func (s *detailState) resize(width, height int) {
	s.width = width
	s.height = height
	// Header, tabs, log toolbar and box borders.
	s.logView.Width = max(width-4, 10)
	s.logView.Height = max(height-9, 3)
}

// tailing reports whether the live-tail indicator is animating.
func (s detailState) tailing() bool {
	return s.found && s.tab == tabLogs && s.liveTail && len(s.visible) > 0
}

// refreshDetail reloads the shown app and reapplies the log filter.
func (m *Model) refreshDetail() {
	if m.route.View != ViewAppDetail || m.store == nil {
		return
	}
	d := &m.detail
	d.app, d.found = m.store.App(d.appID)
	d.rollback.setCount(len(d.app.RollbackCandidates()))
	d.deploys.setCount(len(d.app.Deploys))
	d.logs = m.store.Logs()
	m.applyLogFilter()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.detail
	if d.logSearch.Focused() {
		return m.handleLogSearchKey(msg)
	}
	if key.Matches(msg, m.keys.Back) {
		return m.navigate(Route{View: ViewApps})
	}
	if !d.found {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		d.setTab((d.tab + 1) % detailTab(len(detailTabs)))
		return m, m.tailCmd()
	case key.Matches(msg, m.keys.PrevTab):
		d.setTab((d.tab + detailTab(len(detailTabs)) - 1) % detailTab(len(detailTabs)))
		return m, m.tailCmd()
	case key.Matches(msg, m.keys.Deploy):
		return m.deployApp(d.app)
	case key.Matches(msg, m.keys.TogglePause):
		return m.togglePause(d.app)
	case key.Matches(msg, m.keys.OpenDomain):
		return m, openCmd(m.openURL, d.app.URL())
	}

	switch d.tab {
	case tabOverview:
		if d.rollback.navigate(msg, m.keys) {
			return m, nil
		}
		if key.Matches(msg, m.keys.Rollback) {
			candidates := d.app.RollbackCandidates()
			if len(candidates) == 0 {
				return m, nil
			}
			target := candidates[d.rollback.index]
			m.modal = confirmModal{
				title: "Confirm rollback",
				body: fmt.Sprintf("Roll back to %s (%s)? This will replace the current deploy.",
					format.ShortSHA(target.SHA), target.CommitMessage),
				confirm: "Confirm rollback",
				result:  confirmedMsg{action: actionRollback, appID: d.app.ID, sha: target.SHA},
			}
		}
	case tabDeploys:
		if d.deploys.navigate(msg, m.keys) {
			return m, nil
		}
		if key.Matches(msg, m.keys.Open) && len(d.app.Deploys) > 0 {
			deploy := d.app.Deploys[d.deploys.index]
			m.modal = newDeploySheet(domain.DeployWithApp{Deploy: deploy, AppName: d.app.Name},
				m.theme, m.locale, m.now(), m.width, m.height)
		}
	case tabLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

// tailCmd starts the live-tail spinner when it should be animating.
func (m Model) tailCmd() tea.Cmd {
	if m.detail.tailing() {
		return m.detail.spinner.Tick
	}
	return nil
}

func (m Model) renderDetail() string {
	d := m.detail
	styles := m.theme.Styles()

	if !d.found {
		msg := styles.Title.Render("App not found") + "\n" +
			styles.MutedText.Render(fmt.Sprintf("No app with id %q.", d.appID)) + "\n\n" +
			styles.AccentText.Render("esc Back to apps")
		return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, msg)
	}

	var b strings.Builder
	b.WriteString(styles.FaintText.Render("‹ Apps  "))
	b.WriteString(styles.Title.Render(d.app.Name))
	b.WriteString("  ")
	b.WriteString(styles.StatusBadge(string(d.app.Status), d.app.Status.Label()))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(d.app.Framework.Label() + " · " + d.app.Domain))
	b.WriteString("\n\n")
	b.WriteString(m.renderDetailTabs())
	b.WriteString("\n")

	switch d.tab {
	case tabOverview:
		b.WriteString(m.renderOverview())
	case tabDeploys:
		b.WriteString(m.renderDetailDeploys())
	case tabLogs:
		b.WriteString(m.renderDetailLogs())
	}
	return b.String()
}

func (m Model) renderDetailTabs() string {
	styles := m.theme.Styles()
	parts := make([]string, 0, len(detailTabs))
	for _, t := range detailTabs {
		if t.tab == m.detail.tab {
			parts = append(parts, styles.Selected.Bold(true).Padding(0, 1).Render(t.label))
			continue
		}
		parts = append(parts, styles.MutedText.Padding(0, 1).Render(t.label))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderOverview() string {
	d := m.detail
	styles := m.theme.Styles()
	now := m.now()

	var current strings.Builder
	if deploy, ok := d.app.CurrentDeploy(); ok {
		current.WriteString(styles.StatusBadge(string(deploy.Status), deploy.Status.Label()))
		current.WriteString(" ")
		current.WriteString(styles.Text.Render(deploy.CommitMessage))
		current.WriteString("\n")
		current.WriteString(styles.AccentText.Render(format.ShortSHA(deploy.SHA)))
		current.WriteString(styles.MutedText.Render(" · by " + deploy.Author + " · " + format.RelativeTime(deploy.Time, now, m.locale)))

		if candidates := d.app.RollbackCandidates(); len(candidates) > 0 {
			current.WriteString("\n\n")
			current.WriteString(styles.FaintText.Render("Rollback to a previous deploy (r)"))
			for i, c := range candidates {
				current.WriteString("\n")
				line := format.ShortSHA(c.SHA) + "  " + format.Truncate(c.CommitMessage, 48) + "  " +
					format.RelativeTime(c.Time, now, m.locale)
				if i == d.rollback.index {
					current.WriteString(styles.Selected.Render("› " + line))
				} else {
					current.WriteString(styles.MutedText.Render("  " + line))
				}
			}
		}
	} else {
		current.WriteString(styles.MutedText.Render("No deploys yet."))
	}

	var domainBox strings.Builder
	domainBox.WriteString(styles.Text.Render(d.app.Domain))
	domainBox.WriteString("\n")
	domainBox.WriteString(styles.AccentText.Render("o Open " + d.app.URL()))

	var env strings.Builder
	env.WriteString(styles.MutedText.Render(format.EnvSummary(len(d.app.EnvVars), m.locale)))
	for _, ev := range d.app.EnvVars {
		env.WriteString("\n")
		env.WriteString(styles.AccentText.Render(ev.Key))
		env.WriteString(styles.FaintText.Render("="))
		env.WriteString(styles.Text.Render(ev.Value))
	}

	width := m.width
	if m.width < LayoutWideWidth {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderTitledBox("Current Deploy", current.String(), width, 0, true),
			m.renderTitledBox("Domain", domainBox.String(), width, 0, false),
			m.renderTitledBox("Environment Variables", env.String(), width, 0, false),
		)
	}
	left := width * 60 / 100
	right := width - left
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderTitledBox("Current Deploy", current.String(), left, 0, true),
		lipgloss.JoinVertical(lipgloss.Left,
			m.renderTitledBox("Domain", domainBox.String(), right, 0, false),
			m.renderTitledBox("Environment Variables", env.String(), right, 0, false),
		),
	)
}

func (m Model) renderDetailDeploys() string {
	d := m.detail
	styles := m.theme.Styles()
	height := max(d.height-6, 3)

	if len(d.app.Deploys) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("No deploys yet."))
	}

	rows := max((height-2)/2, 1)
	start, end := d.deploys.window(rows)
	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		dep := domain.DeployWithApp{Deploy: d.app.Deploys[i], AppName: d.app.Name}
		lines = append(lines, m.formatDeployRow(dep, m.width-2, i == d.deploys.index, false)...)
	}
	return m.renderTitledBox(fmt.Sprintf("Deploys (%d)", len(d.app.Deploys)), strings.Join(lines, "\n"), m.width, 0, true)
}

// formatDeployRow renders a deploy as two lines: status and commit message,
// then sha, author and time. showApp adds the owning app name.
func (m Model) formatDeployRow(d domain.DeployWithApp, width int, selected, showApp bool) []string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)
	styles := m.theme.Styles()

	textStyle, metaStyle := styles.Text, styles.MutedText
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ToneColor(format.StatusTone(string(d.Status)))))
	if selected {
		sel := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		textStyle, metaStyle, statusStyle = sel, sel, sel.Bold(true)
	}

	status := fmt.Sprintf("%-9s", d.Status.Label())
	first := bg.Render(status, statusStyle) + bg.Space() + bg.Render(format.Truncate(d.CommitMessage, max(width-14, 10)), textStyle)

	meta := format.ShortSHA(d.SHA) + " · by " + d.Author + " · " + format.RelativeTime(d.Time, m.now(), m.locale)
	if showApp {
		meta = d.AppName + " · " + meta
	}
	second := bg.Spaces(10) + bg.Render(meta, metaStyle)

	return []string{
		bg.FillLine(bg.Space()+first, width),
		bg.FillLine(bg.Space()+second, width),
	}
}
