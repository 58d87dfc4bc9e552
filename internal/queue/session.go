package queue

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/ripped/internal/report"
	"github.com/vmunix/ripped/internal/request"
)

// ErrInterrupted is returned when a bulk session is aborted with Ctrl-C.
var ErrInterrupted = errors.New("bulk session interrupted")

// Control characters seen in raw terminal mode.
const (
	keyInterrupt = 0x03
	keyEOT       = 0x04
	keyBackspace = 0x08
	keyDelete    = 0x7f
)

// Session is an interactive bulk collection: URLs arrive from typed lines
// and, when a watcher is attached, from the clipboard. Typing q on an empty
// line ends collection and starts the drain.
type Session struct {
	ctrl    *Controller
	watcher *Watcher
	in      io.Reader
	out     *syncWriter
	log     *slog.Logger

	// Echo writes typed characters back to out. Set it when in is a
	// terminal in raw mode.
	Echo bool

	// AfterCollect, if set, runs once collection ends and before the drain.
	AfterCollect func()
}

// NewSession creates a bulk session. watcher may be nil; if set, the
// clipboard content at this moment is treated as already seen.
func NewSession(ctrl *Controller, watcher *Watcher, in io.Reader, out io.Writer, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	if watcher != nil {
		watcher.Prime()
	}
	return &Session{ctrl: ctrl, watcher: watcher, in: in, out: &syncWriter{w: out}, log: log}
}

// Run collects URLs until the sentinel, then drains the queue. After an
// interrupt the queue is drained with a cancelled context, so every
// collected entry is reported as skipped.
func (s *Session) Run(ctx context.Context) (report.Summary, error) {
	err := s.Collect(ctx)
	if s.AfterCollect != nil {
		s.AfterCollect()
	}
	if errors.Is(err, ErrInterrupted) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		return s.ctrl.Drain(cancelled), err
	}
	if err != nil {
		return report.Summary{}, err
	}

	s.printf("Starting downloads (%d queued)...\r\n", s.ctrl.Pending())
	return s.ctrl.Drain(ctx), nil
}

// Collect reads input until the sentinel or end of input while the
// watcher, if any, polls the clipboard in the background.
func (s *Session) Collect(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if s.watcher != nil {
		s.watcher.OnEnqueue = func(e Entry, n int) {
			s.printf("\r\n[+] Added from clipboard: %s (total %d)\r\n", e.Request.URL, n)
		}
		s.printf("Copy URLs to queue them automatically. ")
		g.Go(func() error {
			return s.watcher.Run(gctx)
		})
	}
	s.printf("Type or paste a URL and press Enter to add it. Press q to start downloads.\r\n")

	g.Go(func() error {
		defer cancel()
		return s.readKeys()
	})
	return g.Wait()
}

func (s *Session) readKeys() error {
	// Reuse a caller's buffered reader so nothing past the sentinel is lost.
	r, ok := s.in.(io.RuneReader)
	if !ok {
		r = bufio.NewReader(s.in)
	}
	var line []rune

	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.submit(string(line))
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		switch ch {
		case '\r', '\n':
			s.echo("\r\n")
			s.submit(string(line))
			line = line[:0]
		case keyBackspace, keyDelete:
			if len(line) > 0 {
				line = line[:len(line)-1]
				s.echo("\b \b")
			}
		case keyInterrupt:
			s.echo("\r\n")
			return ErrInterrupted
		case keyEOT:
			s.echo("\r\n")
			s.submit(string(line))
			return nil
		default:
			if len(line) == 0 && (ch == 'q' || ch == 'Q') {
				s.echo("\r\n")
				return nil
			}
			if unicode.IsPrint(ch) {
				line = append(line, ch)
				s.echo(string(ch))
			}
		}
	}
}

func (s *Session) submit(raw string) {
	raw = request.CleanInput(raw)
	if raw == "" {
		return
	}
	e, n, err := s.ctrl.EnqueueURL(raw)
	if err != nil {
		s.printf("%v\r\n", err)
		return
	}
	s.printf("[+] Added: %s (total %d)\r\n", e.Request.URL, n)
}

func (s *Session) echo(text string) {
	if s.Echo {
		s.printf("%s", text)
	}
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// syncWriter serializes writes from the key reader and the watcher.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
