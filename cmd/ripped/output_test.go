package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/ripped/internal/history"
	"github.com/vmunix/ripped/internal/report"
)

func TestPrintSummary(t *testing.T) {
	var s report.Summary
	s.Add(report.Item{Subject: "https://a", Status: report.StatusSucceeded, Outputs: []string{"/d/a.mp4"}, Size: 2048})
	s.Add(report.Item{Subject: "https://b", Status: report.StatusFailed, Err: errors.New("download failed: 403")})
	s.Add(report.Item{Subject: "/d/c.mp4", Status: report.StatusSkipped, Outputs: []string{"/d/c.mp4"}, Note: "already mp4"})

	var buf bytes.Buffer
	printSummary(&buf, s)
	out := buf.String()

	assert.Contains(t, out, "[ok] https://a -> /d/a.mp4")
	assert.Contains(t, out, "[FAIL] https://b")
	assert.Contains(t, out, "download failed: 403")
	assert.Contains(t, out, "[skip] /d/c.mp4\n")
	assert.Contains(t, out, "already mp4")
	assert.Contains(t, out, "Processed 3: 1 succeeded, 1 failed, 1 skipped")
}

func TestSummaryErr(t *testing.T) {
	var ok report.Summary
	ok.Add(report.Item{Status: report.StatusSucceeded})
	assert.NoError(t, summaryErr(ok))

	cause := errors.New("boom")
	var failed report.Summary
	failed.Add(report.Item{Status: report.StatusFailed, Err: cause})
	assert.ErrorIs(t, summaryErr(failed), cause)

	var bare report.Summary
	bare.Add(report.Item{Status: report.StatusFailed})
	assert.Error(t, summaryErr(bare))
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil)
	assert.Contains(t, buf.String(), "No downloads recorded")

	buf.Reset()
	printHistory(&buf, []history.Record{{
		URL: "https://a", Mode: "video", Quality: "1080", Status: "completed",
		Size: 5_000_000, FinishedAt: time.Now(),
	}, {
		URL: "https://b", Mode: "audio", Quality: "max", Status: "failed",
		Error: "download failed", FinishedAt: time.Now(),
	}})
	out := buf.String()
	assert.Contains(t, out, "Recent Downloads (2)")
	assert.Contains(t, out, "video/1080")
	assert.Contains(t, out, "5.0 MB")
	assert.Contains(t, out, "download failed")
}
