package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/deckhand/internal/format"
)

// toast is a transient notification.
type toast struct {
	id   int
	text string
	tone format.Tone
}

// toastQueue holds visible notifications, oldest first.
type toastQueue struct {
	nextID int
	items  []toast
}

type toastExpiredMsg struct{ id int }

// push adds a toast and returns its id. The oldest toast is dropped once the
// stack is full.
func (q *toastQueue) push(text string, tone format.Tone) int {
	q.nextID++
	items := append([]toast(nil), q.items...)
	items = append(items, toast{id: q.nextID, text: text, tone: tone})
	if len(items) > maxToasts {
		items = items[len(items)-maxToasts:]
	}
	q.items = items
	return q.nextID
}

// expire removes the toast with id. Unknown ids are ignored.
func (q *toastQueue) expire(id int) {
	out := make([]toast, 0, len(q.items))
	for _, t := range q.items {
		if t.id != id {
			out = append(out, t)
		}
	}
	q.items = out
}

// latest returns the newest toast text, or "" when none is visible.
func (q toastQueue) latest() string {
	if len(q.items) == 0 {
		return ""
	}
	return q.items[len(q.items)-1].text
}

// toast shows a notification and schedules its removal.
func (m *Model) toast(text string, tone format.Tone) tea.Cmd {
	id := m.toasts.push(text, tone)
	d := m.cfg.ToastDuration
	if d <= 0 {
		d = defaultToastDuration
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// renderToasts renders the notification stack right-aligned.
func (m Model) renderToasts() string {
	if len(m.toasts.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.toasts.items))
	for _, t := range m.toasts.items {
		color := m.theme.Accent
		if t.tone != format.ToneMuted {
			color = m.theme.ToneColor(t.tone)
		}
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
		body := lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.SurfaceAlt)).
			Foreground(lipgloss.Color(m.theme.Text)).
			Padding(0, 1).
			Render(marker + " " + t.text)
		lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, body))
	}
	return strings.Join(lines, "\n")
}
