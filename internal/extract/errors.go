package extract

import "errors"

// Sentinel errors for the extract package.
var (
	// ErrProbe is returned when metadata extraction fails.
	ErrProbe = errors.New("probe failed")

	// ErrDownload is returned when a fetch fails or produces no files.
	ErrDownload = errors.New("download failed")

	// ErrEngineUnavailable is returned when the yt-dlp binary cannot be found.
	ErrEngineUnavailable = errors.New("extraction engine unavailable")
)
