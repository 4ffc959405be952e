package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which secondary columns are hidden.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width for the side-by-side detail layout.
	LayoutWideWidth = 140
)

// Vertical space reserved around view content.
const (
	headerHeight  = 2 // navbar + command bar
	toastHeight   = 3
	minBodyHeight = 8
)

// Timing constants.
const (
	// activityInterval is how often the settings activity panel re-reads its feed.
	activityInterval = time.Second

	// defaultToastDuration applies when the config leaves the duration unset.
	defaultToastDuration = 3 * time.Second

	// defaultLoginDelay applies when the config leaves the delay unset.
	defaultLoginDelay = 800 * time.Millisecond

	// maxToasts bounds the visible notification stack.
	maxToasts = 3
)
