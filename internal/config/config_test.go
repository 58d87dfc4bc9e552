package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ripped.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	assert.Empty(t, Default().Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[output]
dir = "/srv/media"

[audio]
bitrate = "320k"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/media", cfg.Output.Dir)
	assert.Equal(t, "%(title)s.%(ext)s", cfg.Output.Template)
	assert.Equal(t, "320k", cfg.Audio.Bitrate)
	assert.Equal(t, "192k", cfg.Video.AudioBitrate)
	assert.True(t, cfg.Clipboard.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Clipboard.PollInterval)
}

func TestLoad_Duration(t *testing.T) {
	path := writeConfig(t, `
[clipboard]
enabled = false
poll_interval = "1s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Clipboard.Enabled)
	assert.Equal(t, time.Second, cfg.Clipboard.PollInterval)
}

func TestLoad_EmptyStringsFallBackToDefaults(t *testing.T) {
	path := writeConfig(t, `
[tools]
ffmpeg = ""
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ffmpeg", cfg.Tools.FFmpeg)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[output]
dir = "${RIPPED_TEST_NONEXISTENT_DIR_12345}"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, []string{"RIPPED_TEST_NONEXISTENT_DIR_12345"}, cfgErr.Missing)
	assert.Contains(t, err.Error(), "RIPPED_TEST_NONEXISTENT_DIR_12345")
}

func TestLoad_EnvVarSubstituted(t *testing.T) {
	t.Setenv("RIPPED_TEST_DIR", "/data/clips")
	path := writeConfig(t, `
[output]
dir = "${RIPPED_TEST_DIR}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/clips", cfg.Output.Dir)
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[output]
template = "%(title)s"

[log]
level = "verbose"
`)

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Len(t, cfgErr.Errors, 2)
	assert.Equal(t, path, cfgErr.Path)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, "[output\ndir = 1")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, LogConfig{Level: tt.level}.SlogLevel())
		})
	}
}
