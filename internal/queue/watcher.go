package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/vmunix/ripped/internal/clipboard"
	"github.com/vmunix/ripped/internal/request"
)

// DefaultPollInterval is how often the clipboard is sampled.
const DefaultPollInterval = 250 * time.Millisecond

// Watcher enqueues URLs that newly appear on the clipboard.
// It only ever touches the controller's queue.
type Watcher struct {
	src      clipboard.Source
	ctrl     *Controller
	interval time.Duration
	log      *slog.Logger
	last     string

	// OnEnqueue, if set, is called after each clipboard capture.
	OnEnqueue func(e Entry, pending int)
}

// NewWatcher creates a watcher polling src every interval.
func NewWatcher(src clipboard.Source, ctrl *Controller, interval time.Duration, log *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{src: src, ctrl: ctrl, interval: interval, log: log}
}

// Prime records the current clipboard as already seen so that content
// present before the session started is never queued.
func (w *Watcher) Prime() {
	if text, ok := w.src.Poll(); ok {
		w.last = text
	}
}

// Check samples the clipboard once and enqueues its content if it changed
// and looks like a URL.
func (w *Watcher) Check() (Entry, bool) {
	text, ok := w.src.Poll()
	if !ok || text == w.last {
		return Entry{}, false
	}
	w.last = text

	cleaned := request.CleanInput(text)
	if !request.LooksLikeURL(cleaned) {
		return Entry{}, false
	}
	e, n, err := w.ctrl.EnqueueURL(cleaned)
	if err != nil {
		w.log.Debug("ignoring clipboard content", "error", err)
		return Entry{}, false
	}
	if w.OnEnqueue != nil {
		w.OnEnqueue(e, n)
	}
	return e, true
}

// Run polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Check()
		}
	}
}
