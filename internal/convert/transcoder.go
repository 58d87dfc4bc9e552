package convert

//go:generate mockgen -destination=mocks/transcoder.go -package=mocks github.com/vmunix/ripped/internal/convert Transcoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Transcoder runs media conversions.
type Transcoder interface {
	// Available returns ErrToolUnavailable if conversions cannot run at all.
	Available() error
	// Transcode converts input to output using the given codec arguments.
	Transcode(ctx context.Context, input, output string, codecArgs []string) error
}

// DefaultFFmpeg is the binary name looked up on PATH.
const DefaultFFmpeg = "ffmpeg"

// FFmpeg is a Transcoder backed by the ffmpeg binary.
type FFmpeg struct {
	path string
	log  *slog.Logger
}

// NewFFmpeg returns an ffmpeg Transcoder. An empty path means DefaultFFmpeg.
func NewFFmpeg(path string, log *slog.Logger) *FFmpeg {
	if path == "" {
		path = DefaultFFmpeg
	}
	if log == nil {
		log = slog.Default()
	}
	return &FFmpeg{path: path, log: log}
}

// Available checks that the ffmpeg binary resolves on PATH.
func (f *FFmpeg) Available() error {
	if _, err := exec.LookPath(f.path); err != nil {
		return fmt.Errorf("%w: %s not found, install ffmpeg and make sure it is on PATH", ErrToolUnavailable, f.path)
	}
	return nil
}

// Transcode runs ffmpeg once. Stderr is captured and the tail is returned
// in the error on a non-zero exit.
func (f *FFmpeg) Transcode(ctx context.Context, input, output string, codecArgs []string) error {
	args := BuildArgs(input, output, codecArgs)
	f.log.Debug("running ffmpeg", "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, f.path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrToolUnavailable, f.path)
		}
		return fmt.Errorf("ffmpeg: %v: %s", err, tail(stderr.String(), 5))
	}
	return nil
}

// BuildArgs assembles the ffmpeg argument list. Existing outputs are never
// overwritten (-n); callers choose a free output path.
func BuildArgs(input, output string, codecArgs []string) []string {
	args := []string{"-hide_banner", "-nostdin", "-loglevel", "error", "-n", "-i", input}
	args = append(args, codecArgs...)
	return append(args, output)
}

// VideoArgs copies the video stream and re-encodes audio to AAC.
func VideoArgs(audioBitrate string) []string {
	return []string{"-c:v", "copy", "-c:a", "aac", "-b:a", audioBitrate}
}

// AudioArgs drops video and encodes audio to MP3.
func AudioArgs(bitrate string) []string {
	return []string{"-vn", "-codec:a", "libmp3lame", "-b:a", bitrate}
}

// tail returns the last n non-empty lines of s.
func tail(s string, n int) string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	if len(lines) == 0 {
		return "no output"
	}
	return strings.Join(lines, "; ")
}
