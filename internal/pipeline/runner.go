// Package pipeline sequences probe, fetch, conversion and cleanup for one
// download request.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/ripped/internal/convert"
	"github.com/vmunix/ripped/internal/extract"
	"github.com/vmunix/ripped/internal/format"
	"github.com/vmunix/ripped/internal/report"
	"github.com/vmunix/ripped/internal/request"
)

// Defaults for Config.
const (
	DefaultOutputDir      = "downloads"
	DefaultOutputTemplate = "%(title)s.%(ext)s"
)

// Config controls where fetched files land.
type Config struct {
	OutputDir      string
	OutputTemplate string
	// StrictProbe fails the run when the probe fails instead of
	// continuing straight to fetch.
	StrictProbe bool
}

// Result is the detailed outcome of one run.
type Result struct {
	RunID       string
	StartedAt   time.Time
	Request     request.Request
	Stage       Stage
	FormatSpec  string
	Metadata    *extract.Metadata
	ProbeErr    error
	Downloaded  []string // raw files from the engine
	Outputs     []string // final files, raw ones kept where conversion failed
	Conversions []convert.Outcome
	Size        int64
	Err         error
}

// Item flattens r into a report item.
func (r *Result) Item() report.Item {
	it := report.Item{
		Subject: r.Request.URL,
		Outputs: r.Outputs,
		Size:    r.Size,
		Err:     r.Err,
	}
	if r.ProbeErr != nil {
		it.Note = "probe: " + r.ProbeErr.Error()
	}
	if r.Stage == StageCompleted {
		it.Status = report.StatusSucceeded
	} else {
		it.Status = report.StatusFailed
	}
	return it
}

// Runner executes requests one at a time.
type Runner struct {
	engine   extract.Engine
	gate     *convert.Gate
	cfg      Config
	log      *slog.Logger
	handlers []TransitionHandler
}

// NewRunner creates a pipeline runner.
func NewRunner(engine extract.Engine, gate *convert.Gate, cfg Config, log *slog.Logger) *Runner {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.OutputTemplate == "" {
		cfg.OutputTemplate = DefaultOutputTemplate
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{engine: engine, gate: gate, cfg: cfg, log: log}
}

// OnTransition registers a handler to be called on stage transitions.
func (r *Runner) OnTransition(h TransitionHandler) {
	r.handlers = append(r.handlers, h)
}

// Run executes req and returns a single-item summary.
func (r *Runner) Run(ctx context.Context, req request.Request) report.Summary {
	var s report.Summary
	s.Add(r.Execute(ctx, req).Item())
	return s
}

// Execute drives req through every stage and returns the detailed result.
// A fetch failure never triggers conversion; a conversion failure keeps the
// raw download in Outputs.
func (r *Runner) Execute(ctx context.Context, req request.Request) *Result {
	res := &Result{RunID: newRunID(), StartedAt: time.Now(), Request: req, Stage: StageValidated}
	log := r.log.With("run_id", res.RunID, "url", req.URL)
	log.Info("starting", "mode", req.Mode, "quality", req.Quality.String())

	// Probe is advisory unless StrictProbe is set.
	meta, err := r.engine.Probe(ctx, req.URL)
	if err != nil {
		res.ProbeErr = err
		if r.cfg.StrictProbe {
			return r.fail(res, err)
		}
		log.Warn("probe failed, continuing with fetch", "error", err)
	} else {
		res.Metadata = meta
		log.Info("probed", "title", meta.Title, "duration", meta.Duration, "formats", meta.Formats)
	}
	r.transition(res, StageProbed)

	res.FormatSpec = format.Select(req)
	log.Debug("format selected", "format", res.FormatSpec)
	r.transition(res, StageFormatSelected)

	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return r.fail(res, fmt.Errorf("%w: create output dir %s: %v", extract.ErrDownload, r.cfg.OutputDir, err))
	}
	template := filepath.Join(r.cfg.OutputDir, r.cfg.OutputTemplate)

	r.transition(res, StageFetching)
	fetched, err := r.engine.Fetch(ctx, req.URL, res.FormatSpec, template)
	if err != nil {
		log.Error("fetch failed", "error", err)
		if !errors.Is(err, extract.ErrDownload) && !errors.Is(err, extract.ErrEngineUnavailable) {
			err = fmt.Errorf("%w: %v", extract.ErrDownload, err)
		}
		return r.fail(res, err)
	}
	res.Downloaded = fetched.Paths
	r.transition(res, StageFetched)

	r.transition(res, StageConversionCheck)
	if err := r.convertAll(ctx, res); err != nil {
		res.Size = totalSize(res.Outputs)
		log.Error("conversion failed, raw download kept", "paths", res.Outputs, "error", err)
		return r.fail(res, err)
	}

	res.Size = totalSize(res.Outputs)
	r.transition(res, StageCompleted)
	log.Info("completed", "paths", res.Outputs, "size", res.Size)
	return res
}

// convertAll normalizes every downloaded file for the request's mode and
// returns the first conversion error. A missing tool stops the loop.
func (r *Runner) convertAll(ctx context.Context, res *Result) error {
	var firstErr error
	for i, path := range res.Downloaded {
		var out convert.Outcome
		if res.Request.Mode == request.ModeAudio {
			out = r.gate.ConvertAudio(ctx, path)
		} else {
			out = r.gate.Convert(ctx, path)
		}
		res.Conversions = append(res.Conversions, out)

		switch out.Status {
		case convert.StatusConverted:
			res.Outputs = append(res.Outputs, out.Target)
		case convert.StatusSkipped:
			res.Outputs = append(res.Outputs, out.Source)
		default:
			res.Outputs = append(res.Outputs, out.Source)
			if firstErr == nil {
				firstErr = out.Err
			}
			if errors.Is(out.Err, convert.ErrToolUnavailable) {
				res.Outputs = append(res.Outputs, res.Downloaded[i+1:]...)
				return firstErr
			}
		}
	}
	return firstErr
}

func (r *Runner) fail(res *Result, err error) *Result {
	res.Err = err
	r.transition(res, StageFailed)
	return res
}

func (r *Runner) transition(res *Result, to Stage) {
	from := res.Stage
	if !from.CanTransitionTo(to) {
		// Programming error; record it rather than silently continuing.
		r.log.Error("invalid pipeline transition", "from", from, "to", to)
	}
	res.Stage = to

	event := TransitionEvent{RunID: res.RunID, From: from, To: to, At: time.Now(), Result: res}
	for _, h := range r.handlers {
		h(event)
	}
}

func totalSize(paths []string) int64 {
	var n int64
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil {
			n += fi.Size()
		}
	}
	return n
}

// newRunID returns a time-ordered UUIDv7, or a timestamp if generation fails.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return id.String()
}
