// Package extract wraps the media extraction engine behind a narrow interface.
package extract

//go:generate mockgen -destination=mocks/engine.go -package=mocks github.com/vmunix/ripped/internal/extract Engine

import (
	"context"
	"time"
)

// Metadata is what a probe reports about a source. It is used for display only.
type Metadata struct {
	Title    string
	Duration time.Duration
	Formats  int
}

// FetchResult lists the files a fetch produced.
type FetchResult struct {
	Paths []string // absolute, in production order
	Title string
}

// Engine resolves URLs into metadata and downloaded files.
type Engine interface {
	// Probe extracts metadata without downloading.
	Probe(ctx context.Context, url string) (*Metadata, error)
	// Fetch downloads url using formatSpec and writes files named by outputTemplate.
	Fetch(ctx context.Context, url, formatSpec, outputTemplate string) (*FetchResult, error)
}
