// Package format derives yt-dlp format-selection expressions from requests.
package format

import (
	"fmt"

	"github.com/vmunix/ripped/internal/request"
)

// Expressions understood by the extraction engine.
const (
	BestAudio      = "bestaudio/best"
	BestVideoAudio = "bestvideo+bestaudio/best"
)

// Select returns the format expression for r. The result depends only on
// mode and quality, and quality is ignored in audio mode.
func Select(r request.Request) string {
	if r.Mode == request.ModeAudio {
		return BestAudio
	}

	switch r.Quality.Kind {
	case request.QualityResolution:
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best", r.Quality.Height)
	default:
		return BestVideoAudio
	}
}
