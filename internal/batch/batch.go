// Package batch converts pre-existing legacy-container files under a path,
// independent of any download.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmunix/ripped/internal/convert"
	"github.com/vmunix/ripped/internal/report"
)

// ErrPathNotFound is returned when the target path does not exist.
var ErrPathNotFound = errors.New("path not found")

// Converter runs the conversion gate over a file or directory tree.
type Converter struct {
	gate *convert.Gate
	log  *slog.Logger
}

// New creates a batch converter.
func New(gate *convert.Gate, log *slog.Logger) *Converter {
	if log == nil {
		log = slog.Default()
	}
	return &Converter{gate: gate, log: log}
}

// ConvertPath converts path if it is a legacy file, or every legacy file
// below it if it is a directory. Individual failures are recorded and the
// scan continues. The conversion tool is checked once before the scan, so a
// missing tool is an error even when nothing needs converting.
func (c *Converter) ConvertPath(ctx context.Context, path string) (report.Summary, error) {
	var summary report.Summary

	root, err := filepath.Abs(path)
	if err != nil {
		return summary, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return summary, fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if err := c.gate.Available(); err != nil {
		return summary, err
	}

	var files []string
	if info.IsDir() {
		files, err = Discover(root)
		if err != nil {
			return summary, fmt.Errorf("scan %s: %w", root, err)
		}
	} else {
		if !convert.NeedsConversion(root) {
			c.log.Info("already compliant, nothing to convert", "path", root)
			summary.Add(outcomeItem(convert.Outcome{Source: root, Target: root, Status: convert.StatusSkipped}))
			return summary, nil
		}
		files = []string{root}
	}

	if len(files) == 0 {
		c.log.Info("no webm/mkv files found", "path", root)
		return summary, nil
	}

	c.log.Info("starting batch conversion", "path", root, "files", len(files))
	for i, file := range files {
		c.log.Info("converting", "index", i+1, "total", len(files), "path", file)
		summary.Add(outcomeItem(c.gate.Convert(ctx, file)))
	}
	return summary, nil
}

// outcomeItem maps a conversion outcome onto a report item.
func outcomeItem(o convert.Outcome) report.Item {
	it := report.Item{Subject: o.Source, Note: o.Reason, Err: o.Err}
	switch o.Status {
	case convert.StatusConverted:
		it.Status = report.StatusSucceeded
		it.Outputs = []string{o.Target}
		if fi, err := os.Stat(o.Target); err == nil {
			it.Size = fi.Size()
		}
	case convert.StatusSkipped:
		it.Status = report.StatusSkipped
	default:
		it.Status = report.StatusFailed
	}
	return it
}
