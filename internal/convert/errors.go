package convert

import "errors"

// Sentinel errors for the convert package.
var (
	// ErrToolUnavailable is returned when the ffmpeg binary cannot be found.
	ErrToolUnavailable = errors.New("conversion tool unavailable")

	// ErrConversionFailed is returned when a transcode did not produce a usable output.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrSourceMissing is returned when the file to convert does not exist.
	ErrSourceMissing = errors.New("source file missing")
)
