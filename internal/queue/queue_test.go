package queue

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/ripped/internal/clipboard"
	"github.com/vmunix/ripped/internal/report"
	"github.com/vmunix/ripped/internal/request"
)

// recorder is a Processor that remembers the order of requests.
type recorder struct {
	mu   sync.Mutex
	urls []string
}

func (r *recorder) Run(_ context.Context, req request.Request) report.Summary {
	r.mu.Lock()
	r.urls = append(r.urls, req.URL)
	r.mu.Unlock()

	var s report.Summary
	s.Add(report.Item{Subject: req.URL, Status: report.StatusSucceeded})
	return s
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.urls...)
}

func newController(proc Processor) *Controller {
	return NewController(proc, request.DefaultPreferences(), nil)
}

func mustReq(t *testing.T, url string) request.Request {
	t.Helper()
	req, err := request.DefaultPreferences().For(url)
	require.NoError(t, err)
	return req
}

func TestController_DrainInOrder(t *testing.T) {
	proc := &recorder{}
	c := newController(proc)

	c.Enqueue(mustReq(t, "https://a.example/1"))
	_, n := c.Enqueue(mustReq(t, "https://b.example/2"))
	assert.Equal(t, 2, n)

	s := c.Drain(context.Background())

	assert.Equal(t, 2, s.Attempted)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, []string{"https://a.example/1", "https://b.example/2"}, proc.seen())
	assert.Equal(t, 0, c.Pending())
}

func TestController_DrainEmpty(t *testing.T) {
	c := newController(&recorder{})

	s := c.Drain(context.Background())

	assert.Equal(t, 0, s.Attempted)
	assert.NoError(t, s.FirstErr())
}

func TestController_DrainTwiceProcessesOnce(t *testing.T) {
	proc := &recorder{}
	c := newController(proc)
	c.Enqueue(mustReq(t, "https://a.example/1"))

	c.Drain(context.Background())
	s := c.Drain(context.Background())

	assert.Equal(t, 0, s.Attempted)
	assert.Len(t, proc.seen(), 1)
}

func TestController_CancelledEntriesAreSkipped(t *testing.T) {
	proc := &recorder{}
	c := newController(proc)
	c.Enqueue(mustReq(t, "https://a.example/1"))
	c.Enqueue(mustReq(t, "https://b.example/2"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := c.Drain(ctx)

	assert.Equal(t, 2, s.Attempted)
	assert.Equal(t, 2, s.Skipped)
	assert.Empty(t, proc.seen())
}

func TestController_EnqueueURLRejectsInvalid(t *testing.T) {
	c := newController(&recorder{})

	_, _, err := c.EnqueueURL("ftp://nope")
	assert.ErrorIs(t, err, request.ErrInvalidURL)
	assert.Equal(t, 0, c.Pending())
}

func TestController_EnqueueURLUsesPreferences(t *testing.T) {
	prefs := request.Preferences{Mode: request.ModeAudio, Quality: request.Resolution(480)}
	c := NewController(&recorder{}, prefs, nil)

	e, _, err := c.EnqueueURL("https://a.example/1")
	require.NoError(t, err)
	assert.Equal(t, request.ModeAudio, e.Request.Mode)
	assert.Equal(t, 480, e.Request.Quality.Height)
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.EnqueuedAt.IsZero())
}

func TestWatcher_SameContentEnqueuedOnce(t *testing.T) {
	c := newController(&recorder{})
	clip := &clipboard.Static{}
	w := NewWatcher(clip, c, time.Millisecond, nil)

	clip.Set("https://a.example/1")
	_, ok := w.Check()
	assert.True(t, ok)
	_, ok = w.Check()
	assert.False(t, ok)

	assert.Equal(t, 1, c.Pending())
}

func TestWatcher_IgnoresBaselineAndNonURLs(t *testing.T) {
	c := newController(&recorder{})
	clip := &clipboard.Static{}
	clip.Set("https://baseline.example/")
	w := NewWatcher(clip, c, time.Millisecond, nil)

	w.Prime()
	w.Check()
	assert.Equal(t, 0, c.Pending())

	clip.Set("just some text")
	w.Check()
	assert.Equal(t, 0, c.Pending())

	clip.Set("  https://new.example/\n")
	e, ok := w.Check()
	require.True(t, ok)
	assert.Equal(t, "https://new.example/", e.Request.URL)
}

func TestSession_ManualEntry(t *testing.T) {
	proc := &recorder{}
	c := newController(proc)
	var out bytes.Buffer
	in := bytes.NewBufferString("https://a.example/1\nnot a url\n\nhttps://b.example/2\nq")

	s, err := NewSession(c, nil, in, &out, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, s.Attempted)
	assert.Equal(t, []string{"https://a.example/1", "https://b.example/2"}, proc.seen())
	assert.Contains(t, out.String(), "invalid url")
}

func TestSession_BackspaceEditsLine(t *testing.T) {
	proc := &recorder{}
	c := newController(proc)
	in := bytes.NewBufferString("https://a.example/1X\x7f\r")

	_, err := NewSession(c, nil, in, io.Discard, nil).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example/1"}, proc.seen())
}

func TestSession_InterruptSkipsQueued(t *testing.T) {
	proc := &recorder{}
	c := newController(proc)
	in := bytes.NewBufferString("https://a.example/1\n\x03")

	s, err := NewSession(c, nil, in, io.Discard, nil).Run(context.Background())

	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, 1, s.Skipped)
	assert.Empty(t, proc.seen())
}

func TestSession_ClipboardCapture(t *testing.T) {
	proc := &recorder{}
	c := newController(proc)
	clip := &clipboard.Static{}
	clip.Set("https://baseline.example/")
	w := NewWatcher(clip, c, time.Millisecond, nil)

	pr, pw := io.Pipe()
	var out bytes.Buffer
	sess := NewSession(c, w, pr, &out, nil)

	done := make(chan report.Summary, 1)
	go func() {
		s, _ := sess.Run(context.Background())
		done <- s
	}()

	clip.Set("https://copied.example/")
	require.Eventually(t, func() bool { return c.Pending() == 1 }, time.Second, time.Millisecond)

	_, err := pw.Write([]byte("q"))
	require.NoError(t, err)

	select {
	case s := <-done:
		assert.Equal(t, 1, s.Attempted)
		assert.Equal(t, []string{"https://copied.example/"}, proc.seen())
	case <-time.After(2 * time.Second):
		t.Fatal("session did not finish")
	}
}

func TestSession_LeavesInputAfterSentinel(t *testing.T) {
	c := newController(&recorder{})
	in := bufio.NewReader(strings.NewReader("https://a.example/1\nq\nrest\n"))
	var after bool

	sess := NewSession(c, nil, in, io.Discard, nil)
	sess.AfterCollect = func() { after = true }
	_, err := sess.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, after)

	rest, err := in.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "\n", rest)
}
