package queue

import (
	"context"
	"log/slog"

	"github.com/vmunix/ripped/internal/report"
	"github.com/vmunix/ripped/internal/request"
)

// Processor runs one request to completion.
type Processor interface {
	Run(ctx context.Context, req request.Request) report.Summary
}

// Controller owns the pending queue and drives the processor over it.
type Controller struct {
	queue Queue
	proc  Processor
	prefs request.Preferences
	log   *slog.Logger
}

// NewController creates a controller. prefs supplies mode and quality for
// URLs enqueued without an explicit request.
func NewController(proc Processor, prefs request.Preferences, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{proc: proc, prefs: prefs, log: log}
}

// Enqueue appends req and returns the new entry with the queue length.
func (c *Controller) Enqueue(req request.Request) (Entry, int) {
	e := newEntry(req)
	n := c.queue.Push(e)
	c.log.Debug("enqueued", "id", e.ID, "url", req.URL, "pending", n)
	return e, n
}

// EnqueueURL validates raw against the current preferences and enqueues it.
func (c *Controller) EnqueueURL(raw string) (Entry, int, error) {
	req, err := c.prefs.For(raw)
	if err != nil {
		return Entry{}, 0, err
	}
	e, n := c.Enqueue(req)
	return e, n, nil
}

// Pending returns the number of entries waiting.
func (c *Controller) Pending() int {
	return c.queue.Len()
}

// Drain processes every pending entry in insertion order. Entries that
// arrive during a drain wait for the next one. Cancellation is honored
// only between entries; entries not started are reported as skipped.
func (c *Controller) Drain(ctx context.Context) report.Summary {
	entries := c.queue.Take()
	var s report.Summary
	if len(entries) == 0 {
		c.log.Info("queue empty, nothing to drain")
		return s
	}

	c.log.Info("draining queue", "entries", len(entries))
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			s.Add(report.Item{
				Subject: e.Request.URL,
				Status:  report.StatusSkipped,
				Note:    "cancelled before start",
				Err:     err,
			})
			continue
		}
		c.log.Info("processing", "index", i+1, "total", len(entries), "url", e.Request.URL)
		s.Merge(c.proc.Run(ctx, e.Request))
	}
	c.log.Info("drain finished", "summary", s.Tally())
	return s
}
