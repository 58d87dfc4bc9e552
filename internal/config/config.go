// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Output    OutputConfig    `toml:"output"`
	Audio     AudioConfig     `toml:"audio"`
	Video     VideoConfig     `toml:"video"`
	Tools     ToolsConfig     `toml:"tools"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Log       LogConfig       `toml:"log"`
	History   HistoryConfig   `toml:"history"`
}

type OutputConfig struct {
	Dir         string `toml:"dir"`
	Template    string `toml:"template"`
	StrictProbe bool   `toml:"strict_probe"`
}

type AudioConfig struct {
	Format  string `toml:"format"`
	Bitrate string `toml:"bitrate"`
}

type VideoConfig struct {
	Container    string `toml:"container"`
	AudioBitrate string `toml:"audio_bitrate"`
}

type ToolsConfig struct {
	FFmpeg string `toml:"ffmpeg"`
	YtDlp  string `toml:"ytdlp"`
}

type ClipboardConfig struct {
	Enabled      bool          `toml:"enabled"`
	PollInterval time.Duration `toml:"poll_interval"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// HistoryConfig points at the run history database. An empty path
// disables history.
type HistoryConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Output:    OutputConfig{Dir: "downloads", Template: "%(title)s.%(ext)s"},
		Audio:     AudioConfig{Format: "mp3", Bitrate: "192k"},
		Video:     VideoConfig{Container: "mp4", AudioBitrate: "192k"},
		Tools:     ToolsConfig{FFmpeg: "ffmpeg", YtDlp: "yt-dlp"},
		Clipboard: ClipboardConfig{Enabled: true, PollInterval: 250 * time.Millisecond},
		Log:       LogConfig{Level: "info"},
	}
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads, parses and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses path, substituting environment
// variables, without checking the result.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	// Keys absent from the file keep their default values.
	cfg := Default()
	if _, err := toml.Decode(content, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Resolve loads the config at explicit if given, otherwise the first file
// found by Discover. With nothing found, defaults apply and the returned
// path is empty.
func Resolve(explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		found, err := Discover()
		if errors.Is(err, ErrNotFound) {
			return Default(), "", nil
		}
		if err != nil {
			return nil, "", err
		}
		path = found
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// applyDefaults fills keys that were present but set to empty strings.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Output.Dir == "" {
		c.Output.Dir = d.Output.Dir
	}
	if c.Output.Template == "" {
		c.Output.Template = d.Output.Template
	}
	if c.Audio.Format == "" {
		c.Audio.Format = d.Audio.Format
	}
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = d.Audio.Bitrate
	}
	if c.Video.Container == "" {
		c.Video.Container = d.Video.Container
	}
	if c.Video.AudioBitrate == "" {
		c.Video.AudioBitrate = d.Video.AudioBitrate
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = d.Tools.FFmpeg
	}
	if c.Tools.YtDlp == "" {
		c.Tools.YtDlp = d.Tools.YtDlp
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// substituteEnvVars replaces variable references with their values and
// returns the names of unset variables that had no default. Unresolved
// references are left in place.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name, hasDefault, def := groups[1], groups[2] != "", groups[3]

		value, ok := os.LookupEnv(name)
		switch {
		case ok && value != "":
			return value
		case hasDefault:
			return def
		case ok:
			return value
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})
	return out, missing
}
