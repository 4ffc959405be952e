package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/five82/deckhand/internal/logtail"
	"github.com/five82/deckhand/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second

	// activityLines is how much of the log tail the activity panel keeps.
	activityLines = 50
)

// StartPoller launches a background goroutine that republishes the tail of
// logPath into feed. Consecutive read failures back off exponentially. It
// returns immediately; the goroutine exits when ctx is cancelled.
func StartPoller(ctx context.Context, feed *state.Store, logPath string, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			refresh(feed, logPath)
			timer.Reset(calculateBackoff(feed.Snapshot().ConsecutiveFailures, interval))
		}
	}()
}

// refresh reads and parses the log tail once.
func refresh(feed *state.Store, logPath string) error {
	lines, err := logtail.Read(logPath, activityLines)
	if err != nil {
		feed.Update(nil, err)
		log.WithError(err).Debug("activity poll failed")
		return err
	}
	entries := make([]logtail.Entry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, logtail.Parse(line))
	}
	feed.Update(entries, nil)
	return nil
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
