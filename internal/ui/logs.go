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

// applyLogFilter recomputes the visible log entries and the viewport content.
func (m *Model) applyLogFilter() {
	d := &m.detail
	d.filter.Query = d.logSearch.Value()
	d.visible = viewmodel.FilterLogs(d.logs, d.filter)
	d.logView.SetContent(m.renderLogLines(d.visible))
}

func (m Model) handleLogSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.detail
	switch {
	case key.Matches(msg, m.keys.Back):
		d.logSearch.SetValue("")
		d.logSearch.Blur()
		m.applyLogFilter()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		d.logSearch.Blur()
		return m, nil
	}
	wasTailing := d.tailing()
	var cmd tea.Cmd
	d.logSearch, cmd = d.logSearch.Update(msg)
	m.applyLogFilter()
	if !wasTailing {
		return m, tea.Batch(cmd, m.tailCmd())
	}
	return m, cmd
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := &m.detail
	switch {
	case key.Matches(msg, m.keys.Search):
		cmd := d.logSearch.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.CycleFilter):
		wasTailing := d.tailing()
		d.filter.Level = d.filter.Level.Next()
		m.applyLogFilter()
		if !wasTailing {
			return m, m.tailCmd()
		}
		return m, nil
	case key.Matches(msg, m.keys.CopyLogs):
		if len(d.visible) == 0 {
			return m, nil
		}
		return m, copyCmd(m.clipboard, viewmodel.CopyText(d.visible))
	case key.Matches(msg, m.keys.LiveTail):
		d.liveTail = !d.liveTail
		m.prefs.LiveTail = d.liveTail
		return m, tea.Batch(m.tailCmd(), savePrefsCmd(m.prefsPath, m.prefs))
	case key.Matches(msg, m.keys.Top):
		d.logView.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		d.logView.GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	d.logView, cmd = d.logView.Update(msg)
	return m, cmd
}

// renderLogLines renders entries as "time LEVEL message" lines.
func (m Model) renderLogLines(entries []domain.LogEntry) string {
	styles := m.theme.Styles()
	if len(entries) == 0 {
		return styles.MutedText.Render("No logs found.")
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		levelStyle := styles.InfoText
		msgStyle := styles.Text
		switch e.Level {
		case domain.LevelWarn:
			levelStyle = styles.WarningText
		case domain.LevelError:
			levelStyle = styles.DangerText
			msgStyle = styles.DangerText.UnsetBold()
		}
		lines = append(lines,
			styles.FaintText.Render(e.Time)+" "+
				levelStyle.Render(padRight(strings.ToUpper(string(e.Level)), 5))+" "+
				msgStyle.Render(e.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetailLogs() string {
	d := m.detail
	styles := m.theme.Styles()

	var toolbar []string
	for _, lvl := range []viewmodel.LevelFilter{viewmodel.LevelAll, viewmodel.LevelErrors} {
		if lvl == d.filter.Level {
			toolbar = append(toolbar, styles.Selected.Bold(true).Padding(0, 1).Render(lvl.Label()))
		} else {
			toolbar = append(toolbar, styles.MutedText.Padding(0, 1).Render(lvl.Label()))
		}
	}
	if d.logSearch.Focused() || d.logSearch.Value() != "" {
		toolbar = append(toolbar, d.logSearch.View())
	} else {
		toolbar = append(toolbar, styles.FaintText.Render("/ Search logs..."))
	}
	tail := "off"
	tailStyle := styles.FaintText
	if d.liveTail {
		tail, tailStyle = "on", styles.SuccessText
	}
	toolbar = append(toolbar, styles.MutedText.Render("Live tail ")+tailStyle.Render(tail))

	body := d.logView.View()
	if d.tailing() {
		body += "\n" + styles.MutedText.Render(d.spinner.View()+" Waiting for new logs...")
	}

	title := "Runtime Logs"
	if d.filter.Active() {
		title += " · " + fmt.Sprintf("%d of %d", len(d.visible), len(d.logs))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(toolbar, " "),
		m.renderTitledBox(title, body, m.width, 0, true),
	)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
