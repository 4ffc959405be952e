package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// listCursor tracks the selected row of a list.
type listCursor struct {
	index int
	count int
}

func (c *listCursor) setCount(n int) {
	c.count = max(n, 0)
	c.clamp()
}

func (c *listCursor) move(delta int) {
	c.index += delta
	c.clamp()
}

func (c *listCursor) top()    { c.index = 0; c.clamp() }
func (c *listCursor) bottom() { c.index = c.count - 1; c.clamp() }

func (c *listCursor) clamp() {
	if c.index >= c.count {
		c.index = c.count - 1
	}
	if c.index < 0 {
		c.index = 0
	}
}

// window returns the [start, end) range of rows to render so the selection
// stays visible within height rows.
func (c listCursor) window(height int) (int, int) {
	if height <= 0 || c.count <= height {
		return 0, c.count
	}
	start := min(max(c.index-height+1, 0), c.count-height)
	return start, start + height
}

// navigate applies the shared up/down/top/bottom bindings. It reports whether
// the key was consumed.
func (c *listCursor) navigate(msg tea.KeyMsg, keys keyMap) bool {
	switch {
	case key.Matches(msg, keys.Up):
		c.move(-1)
	case key.Matches(msg, keys.Down):
		c.move(1)
	case key.Matches(msg, keys.Top):
		c.top()
	case key.Matches(msg, keys.Bottom):
		c.bottom()
	default:
		return false
	}
	return true
}
