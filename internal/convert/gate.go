// Package convert decides which files need normalizing to editor-friendly
// containers and runs the ffmpeg conversions that do it.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Target extensions.
const (
	VideoExt = ".mp4"
	AudioExt = ".mp3"
)

// DefaultBitrate is used for AAC and MP3 audio when none is configured.
const DefaultBitrate = "192k"

// legacyExtensions are containers that must be rewritten to mp4.
var legacyExtensions = map[string]bool{
	".webm": true,
	".mkv":  true,
}

// IsLegacy reports whether ext (with leading dot, any case) is a legacy container.
func IsLegacy(ext string) bool {
	return legacyExtensions[strings.ToLower(ext)]
}

// NeedsConversion reports whether path has a legacy container extension.
// Everything else, notably mp4, is considered compliant.
func NeedsConversion(path string) bool {
	return IsLegacy(filepath.Ext(path))
}

// NeedsAudioConversion reports whether path is not already an mp3.
func NeedsAudioConversion(path string) bool {
	return !strings.EqualFold(filepath.Ext(path), AudioExt)
}

// Status is the terminal state of a conversion.
type Status string

const (
	StatusSkipped   Status = "skipped_already_compliant"
	StatusConverted Status = "converted"
	StatusFailed    Status = "failed"
)

// Outcome describes one file touched by the gate.
type Outcome struct {
	Source string
	Target string
	Status Status
	Reason string
	Err    error
}

// Options configures a Gate.
type Options struct {
	VideoAudioBitrate string // AAC bitrate for mp4 conversions
	AudioBitrate      string // MP3 bitrate for audio mode
}

// Gate converts legacy files, deleting a source only after its replacement
// has been written.
type Gate struct {
	tc   Transcoder
	opts Options
	log  *slog.Logger
}

// NewGate creates a gate around tc.
func NewGate(tc Transcoder, opts Options, log *slog.Logger) *Gate {
	if opts.VideoAudioBitrate == "" {
		opts.VideoAudioBitrate = DefaultBitrate
	}
	if opts.AudioBitrate == "" {
		opts.AudioBitrate = DefaultBitrate
	}
	if log == nil {
		log = slog.Default()
	}
	return &Gate{tc: tc, opts: opts, log: log}
}

// Available reports whether the underlying transcoder can run.
func (g *Gate) Available() error {
	return g.tc.Available()
}

// Convert rewrites a legacy-container file to mp4 with AAC audio.
// Compliant files are skipped. Failures leave the source untouched.
func (g *Gate) Convert(ctx context.Context, path string) Outcome {
	if !NeedsConversion(path) {
		g.log.Debug("already compliant, skipping", "path", path)
		return Outcome{Source: path, Target: path, Status: StatusSkipped}
	}
	return g.run(ctx, path, VideoExt, VideoArgs(g.opts.VideoAudioBitrate))
}

// ConvertAudio re-encodes path to mp3 unless it already is one.
func (g *Gate) ConvertAudio(ctx context.Context, path string) Outcome {
	if !NeedsAudioConversion(path) {
		return Outcome{Source: path, Target: path, Status: StatusSkipped}
	}
	return g.run(ctx, path, AudioExt, AudioArgs(g.opts.AudioBitrate))
}

func (g *Gate) run(ctx context.Context, src, ext string, args []string) Outcome {
	out := Outcome{Source: src, Status: StatusFailed}

	if _, err := os.Stat(src); err != nil {
		out.Err = fmt.Errorf("%w: %s", ErrSourceMissing, src)
		out.Reason = out.Err.Error()
		return out
	}
	if err := g.tc.Available(); err != nil {
		out.Err = err
		out.Reason = err.Error()
		return out
	}

	target := OutputPath(src, ext)
	out.Target = target
	g.log.Info("converting", "source", src, "target", target)

	if err := g.tc.Transcode(ctx, src, target, args); err != nil {
		removePartial(target)
		if errors.Is(err, ErrToolUnavailable) {
			out.Err = err
		} else {
			out.Err = fmt.Errorf("%w: %s: %v", ErrConversionFailed, src, err)
		}
		out.Reason = err.Error()
		g.log.Error("conversion failed", "source", src, "error", err)
		return out
	}

	if info, err := os.Stat(target); err != nil || info.Size() == 0 {
		removePartial(target)
		out.Err = fmt.Errorf("%w: %s: output not created", ErrConversionFailed, src)
		out.Reason = "output not created"
		g.log.Error("conversion produced no output", "source", src, "target", target)
		return out
	}

	// The replacement is on disk; only now is the original expendable.
	out.Status = StatusConverted
	if err := os.Remove(src); err != nil {
		out.Reason = fmt.Sprintf("converted, but could not delete original: %v", err)
		g.log.Warn("could not delete original", "source", src, "error", err)
		return out
	}
	g.log.Info("converted", "target", target)
	return out
}

func removePartial(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
