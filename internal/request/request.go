// Package request validates and canonicalizes user input into download requests.
package request

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects between audio-only and video downloads.
type Mode string

const (
	ModeAudio Mode = "audio"
	ModeVideo Mode = "video"
)

// Modes lists the accepted modes in menu order.
var Modes = []Mode{ModeAudio, ModeVideo}

// QualityKind tags the Quality variant.
type QualityKind int

const (
	QualityMax        QualityKind = iota // best available
	QualityResolution                    // bounded vertical resolution
)

// Quality is either Max or a target vertical resolution.
// The zero value is Max.
type Quality struct {
	Kind   QualityKind
	Height int
}

// Max returns the unbounded quality.
func Max() Quality {
	return Quality{Kind: QualityMax}
}

// Resolution returns a quality bounded to height pixels.
func Resolution(height int) Quality {
	return Quality{Kind: QualityResolution, Height: height}
}

// IsMax reports whether q is the unbounded quality.
func (q Quality) IsMax() bool {
	return q.Kind == QualityMax
}

// String returns "max" or the height.
func (q Quality) String() string {
	if q.IsMax() {
		return "max"
	}
	return strconv.Itoa(q.Height)
}

// Presets are the qualities offered by the interactive menu.
var Presets = []Quality{
	Max(),
	Resolution(360),
	Resolution(480),
	Resolution(720),
	Resolution(1080),
	Resolution(1440),
	Resolution(2160),
}

// Request is an immutable, validated download request.
// Quality is kept for display in audio mode but does not affect format selection.
type Request struct {
	Mode    Mode
	Quality Quality
	URL     string
}

func (r Request) String() string {
	return fmt.Sprintf("%s/%s %s", r.Mode, r.Quality, r.URL)
}

// Normalize validates raw mode, quality and URL input and returns a Request.
// It performs no I/O.
func Normalize(modeRaw, qualityRaw, urlRaw string) (Request, error) {
	mode, err := ParseMode(modeRaw)
	if err != nil {
		return Request{}, err
	}
	quality, err := ParseQuality(qualityRaw)
	if err != nil {
		return Request{}, err
	}
	url, err := ValidateURL(urlRaw)
	if err != nil {
		return Request{}, err
	}
	return Request{Mode: mode, Quality: quality, URL: url}, nil
}

// ParseMode matches raw case-insensitively against the known modes.
func ParseMode(raw string) (Mode, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, m := range Modes {
		if s == string(m) {
			return m, nil
		}
	}
	if hint := suggestMode(s); hint != "" {
		return "", fmt.Errorf("%w: %q (did you mean %q?)", ErrInvalidMode, raw, hint)
	}
	return "", fmt.Errorf("%w: %q, must be \"audio\" or \"video\"", ErrInvalidMode, raw)
}

// ParseQuality accepts "max" (any case) or a positive integer.
func ParseQuality(raw string) (Quality, error) {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, "max") {
		return Max(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Quality{}, fmt.Errorf("%w: %q, must be \"max\" or a positive integer", ErrInvalidQuality, raw)
	}
	if n <= 0 {
		return Quality{}, fmt.Errorf("%w: %d, must be a positive integer", ErrInvalidQuality, n)
	}
	return Resolution(n), nil
}

// ValidateURL checks that raw is non-empty and starts with http:// or https://.
// Reachability is not checked.
func ValidateURL(raw string) (string, error) {
	url := CleanInput(raw)
	if url == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	lower := strings.ToLower(url)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", fmt.Errorf("%w: %q must start with http:// or https://", ErrInvalidURL, url)
	}
	return url, nil
}

// LooksLikeURL reports whether s would pass ValidateURL.
func LooksLikeURL(s string) bool {
	_, err := ValidateURL(s)
	return err == nil
}

// Preferences is the mode and quality currently selected in an interactive session.
type Preferences struct {
	Mode    Mode
	Quality Quality
}

// DefaultPreferences returns video at max quality.
func DefaultPreferences() Preferences {
	return Preferences{Mode: ModeVideo, Quality: Max()}
}

// For builds a Request for url using the current preferences.
func (p Preferences) For(url string) (Request, error) {
	valid, err := ValidateURL(url)
	if err != nil {
		return Request{}, err
	}
	mode := p.Mode
	if mode == "" {
		mode = ModeVideo
	}
	return Request{Mode: mode, Quality: p.Quality, URL: valid}, nil
}
