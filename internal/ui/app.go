package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/five82/deckhand/internal/config"
	"github.com/five82/deckhand/internal/format"
	"github.com/five82/deckhand/internal/prefs"
	"github.com/five82/deckhand/internal/simulator"
	"github.com/five82/deckhand/internal/state"
	"github.com/five82/deckhand/internal/store"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *store.Store
	Activity  *state.Store
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Route     Route
	Plan      simulator.Plan

	// Now is the reference clock for relative times. Nil uses time.Now.
	Now func() time.Time
	// Clipboard writes text to the system clipboard. Nil uses atotto/clipboard.
	Clipboard func(string) error
	// OpenURL opens a link outside the terminal. Nil uses the platform opener.
	OpenURL func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *store.Store
	activity  *state.Store
	cfg       config.Config
	prefs     prefs.Prefs
	prefsPath string
	plan      simulator.Plan
	locale    format.Locale
	now       func() time.Time
	clipboard func(string) error
	openURL   func(string) error

	// UI state
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	route    Route
	showHelp bool
	modal    Modal
	toasts   toastQueue

	// Per-view state
	login    loginState
	apps     appsState
	detail   detailState
	newApp   newAppState
	deploys  deploysState
	settings settingsState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	openFn := opts.OpenURL
	if openFn == nil {
		openFn = openInBrowser
	}
	plan := opts.Plan
	if plan == (simulator.Plan{}) {
		plan = simulator.DefaultPlan()
	}
	userPrefs := opts.Prefs
	if strings.TrimSpace(userPrefs.Theme) == "" {
		userPrefs = prefs.Default()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	keys := DefaultKeyMap()
	m := Model{
		ctx:       ctx,
		store:     opts.Store,
		activity:  opts.Activity,
		cfg:       opts.Config,
		prefs:     userPrefs,
		prefsPath: prefsPath,
		plan:      plan,
		locale:    format.ParseLocale(opts.Config.Locale),
		now:       now,
		clipboard: copyFn,
		openURL:   openFn,
		keys:      keys,
		theme:     GetTheme(userPrefs.Theme),
		route:     opts.Route,
	}
	m.login = newLoginState()
	m.apps = newAppsState()
	m.detail = newDetailState(userPrefs.LiveTail)
	m.newApp = newNewAppState()
	m.deploys = newDeploysState()
	m.settings = newSettingsState(userPrefs)
	m.enter(m.route)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(activityInterval)}
	if cmd := m.enterCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		return m.handleTick()

	case toastExpiredMsg:
		m.toasts.expire(msg.id)
		return m, nil

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case stageMsg:
		return m.handleStage(msg)

	case navigateMsg:
		return m.handleDeployNavigate(msg)

	case confirmedMsg:
		return m.handleConfirmed(msg)

	case clipboardMsg:
		if msg.err != nil {
			log.WithError(msg.err).Warn("copy logs failed")
			cmd := m.toast("Could not copy logs: "+msg.err.Error(), format.ToneDanger)
			return m, cmd
		}
		cmd := m.toast("Logs copied", format.ToneSuccess)
		return m, cmd

	case openedMsg:
		if msg.err != nil {
			log.WithError(msg.err).WithField("url", msg.url).Warn("open url failed")
			cmd := m.toast("Could not open "+msg.url, format.ToneDanger)
			return m, cmd
		}
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			log.WithError(msg.err).Warn("save prefs failed")
			cmd := m.toast("Could not save preferences", format.ToneDanger)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		if !m.detail.tailing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.detail.spinner, cmd = m.detail.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.renderModal()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		next, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = next
		}
		return m, cmd
	}

	// Text inputs consume printable keys, so global letters only apply
	// when nothing is being edited.
	if !m.editing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
			return m, nil
		case key.Matches(msg, m.keys.CycleTheme):
			return m.cycleTheme()
		}
		if m.route.View != ViewLogin {
			switch {
			case key.Matches(msg, m.keys.NavApps):
				return m.navigate(Route{View: ViewApps})
			case key.Matches(msg, m.keys.NavDeploys):
				return m.navigate(Route{View: ViewDeploys})
			case key.Matches(msg, m.keys.NavSettings):
				return m.navigate(Route{View: ViewSettings})
			}
		}
	}

	switch m.route.View {
	case ViewLogin:
		return m.handleLoginKey(msg)
	case ViewApps:
		return m.handleAppsKey(msg)
	case ViewAppDetail:
		return m.handleDetailKey(msg)
	case ViewNewApp:
		return m.handleNewAppKey(msg)
	case ViewDeploys:
		return m.handleDeploysKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

// editing reports whether a text input on the current view has focus.
func (m Model) editing() bool {
	switch m.route.View {
	case ViewLogin:
		return true
	case ViewApps:
		return m.apps.search.Focused()
	case ViewAppDetail:
		return m.detail.logSearch.Focused()
	case ViewNewApp:
		return m.newApp.editing()
	case ViewSettings:
		return m.settings.editing()
	}
	return false
}

// navigate leaves the current view and enters route.
func (m Model) navigate(route Route) (tea.Model, tea.Cmd) {
	if m.route == route {
		return m, nil
	}
	m.leave()
	log.WithField("route", route.Path()).WithField("from", m.route.Path()).Info("navigate")
	m.route = route
	m.enter(route)
	m.resize()
	return m, m.enterCmd()
}

// leave tears down state owned by the current view.
func (m *Model) leave() {
	switch m.route.View {
	case ViewNewApp:
		// Pending stage timers carry the old run token and are dropped.
		m.newApp.machine.Cancel()
	case ViewApps:
		m.apps.search.Blur()
	case ViewAppDetail:
		m.detail.logSearch.Blur()
	}
}

// enter prepares state for the view being shown.
func (m *Model) enter(route Route) {
	switch route.View {
	case ViewLogin:
		m.login = newLoginState()
	case ViewApps:
		m.refreshApps()
	case ViewAppDetail:
		m.detail.open(route.AppID)
		m.refreshDetail()
	case ViewNewApp:
		m.newApp.reset()
	case ViewDeploys:
		m.refreshDeploys()
	case ViewSettings:
		m.settings = newSettingsState(m.prefs)
		m.refreshActivity()
	}
}

// enterCmd returns the command a freshly entered view needs.
func (m Model) enterCmd() tea.Cmd {
	switch m.route.View {
	case ViewLogin:
		return textinput.Blink
	case ViewNewApp:
		return m.newApp.focusCmd()
	case ViewAppDetail:
		if m.detail.tailing() {
			return m.detail.spinner.Tick
		}
	}
	return nil
}

// resize propagates the window size to sized components.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	bodyHeight := m.bodyHeight()
	m.apps.resize(m.width, bodyHeight)
	m.detail.resize(m.width, bodyHeight)
	m.deploys.resize(m.width, bodyHeight)
}

// bodyHeight is the space left for view content below the header.
func (m Model) bodyHeight() int {
	h := m.height - headerHeight - toastHeight
	if h < minBodyHeight {
		return minBodyHeight
	}
	return h
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	m.refreshDetail()
	return m, savePrefsCmd(m.prefsPath, m.prefs)
}

// handleTick refreshes background-fed panels and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.route.View == ViewSettings {
		m.refreshActivity()
	}
	return m, tickCmd(activityInterval)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	if m.route.View != ViewLogin {
		b.WriteString(m.renderHeader())
		b.WriteString("\n")
		b.WriteString(m.renderCommandBar())
		b.WriteString("\n")
	}

	b.WriteString(m.renderContent())

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.route.View {
	case ViewLogin:
		return m.renderLogin()
	case ViewApps:
		return m.renderApps()
	case ViewAppDetail:
		return m.renderDetail()
	case ViewNewApp:
		return m.renderNewApp()
	case ViewDeploys:
		return m.renderDeploys()
	case ViewSettings:
		return m.renderSettings()
	default:
		return ""
	}
}

// Messages

type tickMsg time.Time

type clipboardMsg struct{ err error }

type openedMsg struct {
	url string
	err error
}

type prefsSavedMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func copyCmd(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{err: write(text)}
	}
}

func openCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return openedMsg{url: url, err: open(url)}
	}
}

func savePrefsCmd(path string, p prefs.Prefs) tea.Cmd {
	return func() tea.Msg {
		return prefsSavedMsg{err: prefs.Save(path, p)}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
