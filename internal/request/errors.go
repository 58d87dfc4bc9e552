package request

import "errors"

// Sentinel errors for the request package.
var (
	// ErrInvalidMode is returned when the mode is neither audio nor video.
	ErrInvalidMode = errors.New("invalid mode")

	// ErrInvalidQuality is returned when quality is not "max" or a positive integer.
	ErrInvalidQuality = errors.New("invalid quality")

	// ErrInvalidURL is returned when the URL is empty or lacks an http(s) scheme.
	ErrInvalidURL = errors.New("invalid url")
)
