package main

import (
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vmunix/ripped/internal/batch"
	"github.com/vmunix/ripped/internal/config"
	"github.com/vmunix/ripped/internal/convert"
	"github.com/vmunix/ripped/internal/extract"
	"github.com/vmunix/ripped/internal/history"
	"github.com/vmunix/ripped/internal/pipeline"
)

// app holds the components shared by the download, convert and menu commands.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	engine  *extract.YtDlp
	gate    *convert.Gate
	runner  *pipeline.Runner
	batch   *batch.Converter
	history *history.Store
}

// setup loads .env and the config and builds the logger.
func setup(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, path, err := config.Resolve(configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Log.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if path != "" {
		logger.Debug("loaded config", "path", path)
	} else {
		logger.Debug("no config file found, using defaults")
	}
	return cfg, logger, nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, logger, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	engine := extract.NewYtDlp(cfg.Tools.YtDlp, logger.With("component", "ytdlp"))
	ffmpeg := convert.NewFFmpeg(cfg.Tools.FFmpeg, logger.With("component", "ffmpeg"))
	gate := convert.NewGate(ffmpeg, convert.Options{
		VideoAudioBitrate: cfg.Video.AudioBitrate,
		AudioBitrate:      cfg.Audio.Bitrate,
	}, logger.With("component", "convert"))
	runner := pipeline.NewRunner(engine, gate, pipeline.Config{
		OutputDir:      cfg.Output.Dir,
		OutputTemplate: cfg.Output.Template,
		StrictProbe:    cfg.Output.StrictProbe,
	}, logger.With("component", "pipeline"))

	a := &app{
		cfg:    cfg,
		log:    logger,
		engine: engine,
		gate:   gate,
		runner: runner,
		batch:  batch.New(gate, logger.With("component", "batch")),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("history disabled", "path", cfg.History.Path, "error", err)
		} else {
			a.history = store
			runner.OnTransition(history.Recorder(store, logger.With("component", "history")))
		}
	}
	return a, nil
}

func (a *app) Close() {
	if a.history != nil {
		_ = a.history.Close()
	}
}
