package ui

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
)

// browserOpen is swapped in tests.
var browserOpen = browser.OpenURL

func init() {
	// The opener's output would land on the alt screen.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// openInBrowser hands url to the platform's default browser.
func openInBrowser(url string) error {
	if err := browserOpen(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}
