// Package clipboard reads the system clipboard for URL capture.
package clipboard

import (
	"log/slog"
	"sync"

	atotto "github.com/atotto/clipboard"
)

// Source yields the current clipboard text.
// ok is false when the clipboard could not be read.
type Source interface {
	Poll() (text string, ok bool)
}

// System reads the OS clipboard. Read failures are logged once and then
// reported as empty reads.
type System struct {
	log    *slog.Logger
	read   func() (string, error)
	warned sync.Once
}

// NewSystem creates a System source.
func NewSystem(log *slog.Logger) *System {
	if log == nil {
		log = slog.Default()
	}
	return &System{log: log, read: atotto.ReadAll}
}

// Poll returns the clipboard contents.
func (s *System) Poll() (string, bool) {
	text, err := s.read()
	if err != nil {
		s.warned.Do(func() {
			s.log.Warn("clipboard unavailable", "error", err)
		})
		return "", false
	}
	return text, true
}

// Static is a fixed-content source, used when the clipboard is disabled.
type Static struct {
	mu   sync.Mutex
	text string
}

// Set replaces the content.
func (s *Static) Set(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Poll returns the current content.
func (s *Static) Poll() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, true
}
