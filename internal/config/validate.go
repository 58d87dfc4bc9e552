package config

import (
	"fmt"
	"regexp"
	"strings"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

var bitratePattern = regexp.MustCompile(`^[1-9][0-9]*k$`)

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if strings.TrimSpace(c.Output.Dir) == "" {
		errs = append(errs, "output.dir: required")
	}
	if !strings.Contains(c.Output.Template, "%(ext)s") {
		errs = append(errs, fmt.Sprintf("output.template: must contain %%(ext)s, got %q", c.Output.Template))
	}

	if c.Audio.Format != "mp3" {
		errs = append(errs, fmt.Sprintf("audio.format: only mp3 is supported, got %q", c.Audio.Format))
	}
	if !bitratePattern.MatchString(c.Audio.Bitrate) {
		errs = append(errs, fmt.Sprintf("audio.bitrate: must look like 192k, got %q", c.Audio.Bitrate))
	}
	if c.Video.Container != "mp4" {
		errs = append(errs, fmt.Sprintf("video.container: only mp4 is supported, got %q", c.Video.Container))
	}
	if !bitratePattern.MatchString(c.Video.AudioBitrate) {
		errs = append(errs, fmt.Sprintf("video.audio_bitrate: must look like 192k, got %q", c.Video.AudioBitrate))
	}

	if c.Tools.FFmpeg == "" {
		errs = append(errs, "tools.ffmpeg: required")
	}
	if c.Tools.YtDlp == "" {
		errs = append(errs, "tools.ytdlp: required")
	}

	if c.Clipboard.Enabled && c.Clipboard.PollInterval <= 0 {
		errs = append(errs, fmt.Sprintf("clipboard.poll_interval: must be positive, got %s", c.Clipboard.PollInterval))
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	return errs
}
