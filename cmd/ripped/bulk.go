package main

import (
	"bufio"
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/vmunix/ripped/internal/clipboard"
	"github.com/vmunix/ripped/internal/queue"
	"github.com/vmunix/ripped/internal/report"
	"github.com/vmunix/ripped/internal/request"
)

// runBulk collects URLs from typed lines and, if enabled, the clipboard,
// then downloads them in order.
func (a *app) runBulk(ctx context.Context, prefs request.Preferences, in *bufio.Reader, out io.Writer) (report.Summary, error) {
	ctrl := queue.NewController(a.runner, prefs, a.log.With("component", "queue"))

	var watcher *queue.Watcher
	if a.cfg.Clipboard.Enabled {
		src := clipboard.NewSystem(a.log.With("component", "clipboard"))
		watcher = queue.NewWatcher(src, ctrl, a.cfg.Clipboard.PollInterval, a.log)
	}

	sess := queue.NewSession(ctrl, watcher, in, out, a.log)

	// Raw mode delivers single keypresses, so q works without Enter.
	// Only attempt it when stdin is a terminal with nothing buffered.
	if in.Buffered() == 0 {
		if restore, ok := rawStdin(); ok {
			sess.Echo = true
			sess.AfterCollect = restore
		}
	}
	return sess.Run(ctx)
}

// rawStdin switches stdin to raw mode if it is a terminal.
func rawStdin() (restore func(), ok bool) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, false
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, false
	}
	return func() { _ = term.Restore(fd, state) }, true
}
