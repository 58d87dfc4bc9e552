package request

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CleanInput trims whitespace and strips invisible format characters
// (zero-width spaces, BOMs, direction marks) that clipboard text often carries.
func CleanInput(s string) string {
	t := transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cf)))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.TrimSpace(result)
}

// minSuggestScore is the Jaro-Winkler similarity needed to offer a suggestion.
const minSuggestScore = 0.7

// suggestMode returns the closest known mode to s, or "" if nothing is close.
func suggestMode(s string) Mode {
	if s == "" {
		return ""
	}
	var best Mode
	var bestScore float32
	for _, m := range Modes {
		score := edlib.JaroWinklerSimilarity(s, string(m))
		if score > bestScore {
			best, bestScore = m, score
		}
	}
	if bestScore < minSuggestScore {
		return ""
	}
	return best
}
