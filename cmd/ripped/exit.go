package main

import (
	"errors"

	"github.com/vmunix/ripped/internal/convert"
	"github.com/vmunix/ripped/internal/extract"
)

// Exit codes.
const (
	exitOK         = 0
	exitUsage      = 1 // bad arguments, config, or paths
	exitDownload   = 2 // probe or fetch failed
	exitConversion = 3 // conversion failed or ffmpeg missing
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, extract.ErrProbe),
		errors.Is(err, extract.ErrDownload),
		errors.Is(err, extract.ErrEngineUnavailable):
		return exitDownload
	case errors.Is(err, convert.ErrToolUnavailable),
		errors.Is(err, convert.ErrConversionFailed),
		errors.Is(err, convert.ErrSourceMissing):
		return exitConversion
	default:
		return exitUsage
	}
}
