package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// DefaultYtDlp is the binary name looked up on PATH.
const DefaultYtDlp = "yt-dlp"

// progressInterval throttles progress logging.
const progressInterval = 2 * time.Second

// YtDlp is an Engine backed by the yt-dlp binary.
type YtDlp struct {
	executable string
	log        *slog.Logger
}

// NewYtDlp creates a yt-dlp engine. An empty executable means DefaultYtDlp.
func NewYtDlp(executable string, log *slog.Logger) *YtDlp {
	if executable == "" {
		executable = DefaultYtDlp
	}
	if log == nil {
		log = slog.Default()
	}
	return &YtDlp{executable: executable, log: log}
}

// Available checks that the yt-dlp binary resolves on PATH.
func (y *YtDlp) Available() error {
	if _, err := exec.LookPath(y.executable); err != nil {
		return fmt.Errorf("%w: %s not found, install yt-dlp and make sure it is on PATH", ErrEngineUnavailable, y.executable)
	}
	return nil
}

func (y *YtDlp) command() *ytdlp.Command {
	return ytdlp.New().
		SetExecutable(y.executable).
		NoPlaylist().
		NoWarnings().
		PrintJSON()
}

// Probe runs yt-dlp without downloading and reads the info JSON.
func (y *YtDlp) Probe(ctx context.Context, url string) (*Metadata, error) {
	if err := y.Available(); err != nil {
		return nil, err
	}

	result, err := y.command().SkipDownload().Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProbe, url, engineError(result, err))
	}

	infos, err := result.GetExtractedInfo()
	if err != nil || len(infos) == 0 {
		return nil, fmt.Errorf("%w: %s: no metadata returned", ErrProbe, url)
	}

	info := infos[0]
	meta := &Metadata{Formats: len(info.Formats)}
	if info.Title != nil {
		meta.Title = *info.Title
	}
	if info.Duration != nil {
		meta.Duration = time.Duration(*info.Duration * float64(time.Second))
	}
	return meta, nil
}

// Fetch downloads url. A fetch that reports success but names no file is
// treated as a failure, as is any partial multi-stream result.
func (y *YtDlp) Fetch(ctx context.Context, url, formatSpec, outputTemplate string) (*FetchResult, error) {
	if err := y.Available(); err != nil {
		return nil, err
	}

	dl := y.command().
		Format(formatSpec).
		Output(outputTemplate)

	dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		if update.TotalBytes > 0 {
			y.log.Debug("download progress",
				"url", url,
				"percent", int(float64(update.DownloadedBytes)/float64(update.TotalBytes)*100),
				"eta", update.ETA().Round(time.Second))
		}
	})

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDownload, url, engineError(result, err))
	}

	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read result: %v", ErrDownload, url, err)
	}

	return fetchResult(url, infos)
}

// fetchResult collects the produced files from the engine's info records.
// Paths are made absolute and records without a filename are skipped.
func fetchResult(url string, infos []*ytdlp.ExtractedInfo) (*FetchResult, error) {
	fr := &FetchResult{}
	for _, info := range infos {
		if info == nil {
			continue
		}
		if info.Title != nil && fr.Title == "" {
			fr.Title = *info.Title
		}
		if info.Filename == nil || *info.Filename == "" {
			continue
		}
		abs, err := filepath.Abs(*info.Filename)
		if err != nil {
			abs = *info.Filename
		}
		fr.Paths = append(fr.Paths, abs)
	}
	if len(fr.Paths) == 0 {
		return nil, fmt.Errorf("%w: %s: engine reported no output file", ErrDownload, url)
	}
	return fr, nil
}

// engineError prefers the engine's last stderr line over the bare exit error.
func engineError(result *ytdlp.Result, err error) string {
	if result == nil || strings.TrimSpace(result.Stderr) == "" {
		return err.Error()
	}
	lines := strings.Split(strings.TrimSpace(result.Stderr), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
