package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/five82/deckhand/internal/domain"
	"github.com/five82/deckhand/internal/format"
	"github.com/five82/deckhand/internal/simulator"
	"github.com/five82/deckhand/internal/store"
)

// formField identifies a focusable element of the new app form.
type formField int

const (
	fieldRepo formField = iota
	fieldBranch
	fieldFramework
	fieldAutoDetect
	fieldBuild
	fieldStart
	fieldOutput
	fieldPort
	fieldEnvKey
	fieldEnvValue
	fieldDeploy
)

// focusTarget is a field plus, for env rows, the row index.
type focusTarget struct {
	field formField
	row   int
}

type envRow struct {
	key   textinput.Model
	value textinput.Model
}

// newAppState holds the create form and the simulated deploy it starts.
type newAppState struct {
	repo       textinput.Model
	branch     textinput.Model
	framework  domain.Framework
	autoDetect bool
	build      textinput.Model
	start      textinput.Model
	output     textinput.Model
	port       textinput.Model
	env        []envRow
	focus      int
	err        string

	machine   *simulator.Machine
	createdID string
	created   string // name of the app created by the finished run
}

type stageMsg struct {
	run   simulator.Run
	stage simulator.Stage
}

type navigateMsg struct{ run simulator.Run }

func newFormInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.CharLimit = 256
	return in
}

func newNewAppState() newAppState {
	s := newAppState{machine: &simulator.Machine{}}
	s.reset()
	return s
}

// reset clears the form to its defaults and cancels any run in progress.
func (s *newAppState) reset() {
	if s.machine == nil {
		s.machine = &simulator.Machine{}
	}
	s.machine.Cancel()

	s.repo = newFormInput("https://github.com/user/repo")
	s.branch = newFormInput("main")
	s.branch.SetValue("main")
	s.build = newFormInput("")
	s.start = newFormInput("")
	s.output = newFormInput("")
	s.port = newFormInput("3000")
	s.port.SetValue("3000")
	s.port.CharLimit = 5
	s.env = nil
	s.autoDetect = true
	s.err = ""
	s.createdID = ""
	s.created = ""
	s.setFramework(domain.FrameworkNextJS)
	s.setFocus(0)
}

// setFramework selects f and resets the commands to its defaults.
func (s *newAppState) setFramework(f domain.Framework) {
	s.framework = f
	defaults := f.Defaults()
	s.build.SetValue(defaults.Build)
	s.start.SetValue(defaults.Start)
	s.output.SetValue(defaults.Output)
}

func (s *newAppState) cycleFramework(delta int) {
	all := domain.Frameworks()
	idx := 0
	for i, f := range all {
		if f == s.framework {
			idx = i
		}
	}
	s.setFramework(all[(idx+delta+len(all))%len(all)])
}

// targets lists the focusable elements in display order. Start and output
// fields appear only for frameworks that use them.
func (s newAppState) targets() []focusTarget {
	out := []focusTarget{
		{field: fieldRepo},
		{field: fieldBranch},
		{field: fieldFramework},
		{field: fieldAutoDetect},
		{field: fieldBuild},
	}
	if s.framework.UsesStartCommand() {
		out = append(out, focusTarget{field: fieldStart})
	}
	if s.framework.UsesOutputDir() {
		out = append(out, focusTarget{field: fieldOutput})
	}
	out = append(out, focusTarget{field: fieldPort})
	for i := range s.env {
		out = append(out, focusTarget{field: fieldEnvKey, row: i}, focusTarget{field: fieldEnvValue, row: i})
	}
	return append(out, focusTarget{field: fieldDeploy})
}

func (s newAppState) current() focusTarget {
	targets := s.targets()
	return targets[min(max(s.focus, 0), len(targets)-1)]
}

// input returns the text input behind t, or nil for non-text targets.
func (s *newAppState) input(t focusTarget) *textinput.Model {
	switch t.field {
	case fieldRepo:
		return &s.repo
	case fieldBranch:
		return &s.branch
	case fieldBuild:
		return &s.build
	case fieldStart:
		return &s.start
	case fieldOutput:
		return &s.output
	case fieldPort:
		return &s.port
	case fieldEnvKey:
		return &s.env[t.row].key
	case fieldEnvValue:
		return &s.env[t.row].value
	}
	return nil
}

// setFocus moves focus to target index i, wrapping around.
func (s *newAppState) setFocus(i int) {
	targets := s.targets()
	for _, t := range targets {
		if in := s.input(t); in != nil {
			in.Blur()
		}
	}
	s.focus = (i%len(targets) + len(targets)) % len(targets)
	if in := s.input(targets[s.focus]); in != nil {
		in.Focus()
	}
}

func (s *newAppState) focusField(f formField, row int) {
	for i, t := range s.targets() {
		if t.field == f && t.row == row {
			s.setFocus(i)
			return
		}
	}
}

// editing reports whether a text input has focus.
func (s newAppState) editing() bool {
	if s.deploying() {
		return false
	}
	return s.input(s.current()) != nil
}

func (s newAppState) deploying() bool {
	return s.machine.Stage() != simulator.Idle
}

func (s newAppState) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (s *newAppState) addEnvRow() {
	key := newFormInput("KEY")
	value := newFormInput("value")
	value.EchoMode = textinput.EchoPassword
	value.EchoCharacter = '•'
	s.env = append(s.env, envRow{key: key, value: value})
	s.focusField(fieldEnvKey, len(s.env)-1)
}

func (s *newAppState) removeEnvRow(row int) {
	if row < 0 || row >= len(s.env) {
		return
	}
	s.env = append(s.env[:row:row], s.env[row+1:]...)
	if len(s.env) == 0 {
		s.focusField(fieldPort, 0)
		return
	}
	s.focusField(fieldEnvKey, min(row, len(s.env)-1))
}

// request builds the store input from the form.
func (s newAppState) request() store.NewApp {
	req := store.NewApp{
		RepoURL:   strings.TrimSpace(s.repo.Value()),
		Branch:    strings.TrimSpace(s.branch.Value()),
		Framework: s.framework,
		Commands: domain.Commands{
			Build: strings.TrimSpace(s.build.Value()),
		},
		Port: strings.TrimSpace(s.port.Value()),
	}
	if s.framework.UsesStartCommand() {
		req.Commands.Start = strings.TrimSpace(s.start.Value())
	}
	if s.framework.UsesOutputDir() {
		req.Commands.Output = strings.TrimSpace(s.output.Value())
	}
	for _, row := range s.env {
		req.EnvVars = append(req.EnvVars, domain.EnvVar{Key: row.key.Value(), Value: row.value.Value()})
	}
	return req
}

func (m Model) handleNewAppKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.newApp

	if key.Matches(msg, m.keys.Back) {
		return m.navigate(Route{View: ViewApps})
	}
	if s.deploying() {
		return m, nil
	}

	target := s.current()
	switch {
	case key.Matches(msg, m.keys.StartRun):
		return m.startDeploy()
	case key.Matches(msg, m.keys.AddEnv):
		s.addEnvRow()
		return m, nil
	case key.Matches(msg, m.keys.RemoveEnv):
		if target.field == fieldEnvKey || target.field == fieldEnvValue {
			s.removeEnvRow(target.row)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		s.setFocus(s.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		s.setFocus(s.focus - 1)
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if target.field == fieldDeploy {
			return m.startDeploy()
		}
		s.setFocus(s.focus + 1)
		return m, nil
	}

	switch target.field {
	case fieldFramework:
		switch {
		case key.Matches(msg, m.keys.PrevOpt):
			s.cycleFramework(-1)
		case key.Matches(msg, m.keys.NextOpt), key.Matches(msg, m.keys.Toggle):
			s.cycleFramework(1)
		}
		return m, nil
	case fieldAutoDetect:
		if key.Matches(msg, m.keys.Toggle) || key.Matches(msg, m.keys.PrevOpt) || key.Matches(msg, m.keys.NextOpt) {
			s.autoDetect = !s.autoDetect
		}
		return m, nil
	case fieldDeploy:
		return m, nil
	}

	in := s.input(target)
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	s.err = ""
	return m, cmd
}

// startDeploy begins a simulated deploy. Each stage fires at its offset from
// now, tagged with the run token.
func (m Model) startDeploy() (tea.Model, tea.Cmd) {
	s := &m.newApp
	if strings.TrimSpace(s.repo.Value()) == "" {
		s.err = "Repository URL is required."
		s.focusField(fieldRepo, 0)
		return m, nil
	}
	s.err = ""
	for _, t := range s.targets() {
		if in := s.input(t); in != nil {
			in.Blur()
		}
	}

	run := s.machine.Start()
	log.WithField("run", run).WithField("repo", s.repo.Value()).WithField("framework", s.framework).Info("deploy invoked")

	cmds := []tea.Cmd{m.toast("Deploy started", format.ToneMuted)}
	for _, stage := range simulator.Steps[1:] {
		cmds = append(cmds, stageCmd(run, stage, m.plan.At(stage)))
	}
	cmds = append(cmds, tea.Tick(m.plan.Navigate, func(time.Time) tea.Msg {
		return navigateMsg{run: run}
	}))
	return m, tea.Batch(cmds...)
}

func stageCmd(run simulator.Run, stage simulator.Stage, at time.Duration) tea.Cmd {
	return tea.Tick(at, func(time.Time) tea.Msg {
		return stageMsg{run: run, stage: stage}
	})
}

func (m Model) handleStage(msg stageMsg) (tea.Model, tea.Cmd) {
	s := &m.newApp
	if !s.machine.Advance(msg.run, msg.stage) {
		return m, nil
	}
	if msg.stage != simulator.Live {
		return m, nil
	}

	app, err := m.store.Create(s.request())
	if err != nil {
		log.WithError(err).WithField("run", msg.run).Warn("create app failed")
		s.machine.Cancel()
		s.err = err.Error()
		cmd := m.toast("Deploy failed: "+err.Error(), format.ToneDanger)
		return m, cmd
	}
	s.createdID = app.ID
	s.created = app.Name
	cmd := m.toast("Deploy completed successfully", format.ToneSuccess)
	return m, cmd
}

func (m Model) handleDeployNavigate(msg navigateMsg) (tea.Model, tea.Cmd) {
	s := m.newApp
	if m.route.View != ViewNewApp || msg.run != s.machine.Current() || !s.machine.Done() || s.createdID == "" {
		return m, nil
	}
	return m.navigate(Route{View: ViewAppDetail, AppID: s.createdID})
}

func (m Model) renderNewApp() string {
	s := m.newApp
	styles := m.theme.Styles()

	header := styles.FaintText.Render("‹ Apps  ") + styles.Title.Render("New App")
	if s.deploying() {
		return header + "\n\n" + m.renderDeployProgress()
	}

	focus := s.current()
	width := min(m.width, 90)

	label := func(text string, t focusTarget) string {
		if focus == t {
			return styles.AccentText.Bold(true).Render("› " + text)
		}
		return styles.MutedText.Render("  " + text)
	}
	field := func(text string, f formField) string {
		in := (&s).input(focusTarget{field: f})
		return label(text, focusTarget{field: f}) + "\n    " + in.View()
	}

	// Source
	var source strings.Builder
	source.WriteString(styles.SuccessText.Render("●") + styles.Text.Render(" GitHub") + styles.FaintText.Render("  Connected"))
	source.WriteString("\n")
	source.WriteString(field("Repository URL", fieldRepo))
	source.WriteString("\n")
	source.WriteString(field("Branch", fieldBranch))

	// Framework
	var fw strings.Builder
	fw.WriteString(label("Project type", focusTarget{field: fieldFramework}))
	fw.WriteString("\n    ")
	for i, f := range domain.Frameworks() {
		if i > 0 {
			fw.WriteString("  ")
		}
		if f == s.framework {
			fw.WriteString(styles.Selected.Bold(true).Padding(0, 1).Render(f.Label()))
			continue
		}
		fw.WriteString(styles.MutedText.Padding(0, 1).Render(f.Label()))
	}
	fw.WriteString("\n    ")
	fw.WriteString(styles.FaintText.Render(s.framework.Description()))
	fw.WriteString("\n")
	fw.WriteString(label("Auto-detect", focusTarget{field: fieldAutoDetect}))
	fw.WriteString("  ")
	if s.autoDetect {
		fw.WriteString(styles.SuccessText.Render("[on]"))
	} else {
		fw.WriteString(styles.FaintText.Render("[off]"))
	}

	// Build
	var build strings.Builder
	build.WriteString(field("Build command", fieldBuild))
	if s.framework.UsesStartCommand() {
		build.WriteString("\n")
		build.WriteString(field("Start command", fieldStart))
	}
	if s.framework.UsesOutputDir() {
		build.WriteString("\n")
		build.WriteString(field("Output directory", fieldOutput))
	}
	build.WriteString("\n")
	build.WriteString(field("Port", fieldPort))

	// Environment
	var env strings.Builder
	if len(s.env) == 0 {
		env.WriteString(styles.MutedText.Render("No variables added."))
	}
	for i, row := range s.env {
		if i > 0 {
			env.WriteString("\n")
		}
		marker := "  "
		if (focus.field == fieldEnvKey || focus.field == fieldEnvValue) && focus.row == i {
			marker = styles.AccentText.Render("› ")
		}
		env.WriteString(marker + row.key.View() + styles.FaintText.Render(" = ") + row.value.View())
	}
	env.WriteString("\n")
	env.WriteString(styles.FaintText.Render("ctrl+n Add variable · ctrl+x Remove"))

	deploy := styles.MutedText.Padding(0, 1).Render("Deploy")
	if focus.field == fieldDeploy {
		deploy = styles.Selected.Bold(true).Padding(0, 1).Render("Deploy")
	}
	actions := styles.FaintText.Render("esc Cancel   ") + deploy
	if s.err != "" {
		actions += "   " + styles.DangerText.Render(s.err)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.renderTitledBox("Source", source.String(), width, 0, focus.field <= fieldBranch),
		m.renderTitledBox("Framework", fw.String(), width, 0, focus.field == fieldFramework || focus.field == fieldAutoDetect),
		m.renderTitledBox("Build", build.String(), width, 0, focus.field >= fieldBuild && focus.field <= fieldPort),
		m.renderTitledBox("Environment Variables", env.String(), width, 0, focus.field == fieldEnvKey || focus.field == fieldEnvValue),
		"",
		actions,
	)
}

func (m Model) renderDeployProgress() string {
	s := m.newApp
	styles := m.theme.Styles()
	stage := s.machine.Stage()

	parts := make([]string, 0, len(simulator.Steps))
	for i, step := range simulator.Progress(stage) {
		var mark string
		var style lipgloss.Style
		switch step.State {
		case simulator.StepComplete:
			mark, style = "✓", styles.SuccessText
		case simulator.StepCurrent:
			mark, style = "●", styles.AccentText.Bold(true)
		default:
			mark, style = string(rune('1'+i)), styles.FaintText
		}
		parts = append(parts, style.Render(mark+" "+step.Stage.Label()))
	}

	var b strings.Builder
	if stage == simulator.Live {
		b.WriteString(styles.SuccessText.Render("Deploy complete"))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Opening " + s.created + "..."))
	} else {
		b.WriteString(styles.Title.Render("Deploying..."))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Follow the progress of your deploy"))
	}
	b.WriteString("\n\n")
	b.WriteString(strings.Join(parts, styles.FaintText.Render(" ── ")))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("esc Cancel"))

	return m.renderTitledBox("", b.String(), min(m.width, 90), 0, true)
}
