package ui

import "testing"

func TestListCursor_ClampsToCount(t *testing.T) {
	var c listCursor
	c.setCount(3)
	c.move(5)
	if c.index != 2 {
		t.Fatalf("index = %d, want 2", c.index)
	}
	c.move(-10)
	if c.index != 0 {
		t.Fatalf("index = %d, want 0", c.index)
	}
	c.bottom()
	c.setCount(1)
	if c.index != 0 {
		t.Fatalf("index = %d after shrinking, want 0", c.index)
	}
	c.setCount(0)
	c.bottom()
	if c.index != 0 {
		t.Fatalf("index = %d on empty list, want 0", c.index)
	}
}

func TestListCursor_WindowKeepsSelectionVisible(t *testing.T) {
	cases := []struct {
		name       string
		index      int
		count      int
		height     int
		start, end int
	}{
		{"fits", 2, 4, 10, 0, 4},
		{"top", 0, 20, 5, 0, 5},
		{"middle", 7, 20, 5, 3, 8},
		{"bottom", 19, 20, 5, 15, 20},
		{"no_height", 3, 20, 0, 0, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := listCursor{index: tc.index, count: tc.count}
			start, end := c.window(tc.height)
			if start != tc.start || end != tc.end {
				t.Fatalf("window = [%d,%d), want [%d,%d)", start, end, tc.start, tc.end)
			}
			if tc.index < start || tc.index >= end {
				t.Fatalf("selection %d outside window", tc.index)
			}
		})
	}
}
