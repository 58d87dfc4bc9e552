package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/vmunix/ripped/internal/report"
)

// printSummary writes one line per item followed by the tally.
func printSummary(w io.Writer, s report.Summary) {
	for _, it := range s.Items {
		line := fmt.Sprintf("  [%s] %s", statusLabel(it.Status), it.Subject)
		if len(it.Outputs) > 0 && !(len(it.Outputs) == 1 && it.Outputs[0] == it.Subject) {
			line += " -> " + strings.Join(it.Outputs, ", ")
		}
		fmt.Fprintln(w, line)
		if it.Err != nil {
			fmt.Fprintf(w, "         %v\n", it.Err)
		} else if it.Note != "" {
			fmt.Fprintf(w, "         %s\n", it.Note)
		}
	}
	fmt.Fprintln(w, s.Tally())
}

func statusLabel(s report.Status) string {
	switch s {
	case report.StatusSucceeded:
		return "ok"
	case report.StatusFailed:
		return "FAIL"
	default:
		return "skip"
	}
}

// summaryErr returns the error a command should exit with for s.
func summaryErr(s report.Summary) error {
	if s.OK() {
		return nil
	}
	if err := s.FirstErr(); err != nil {
		return err
	}
	return fmt.Errorf("%d item(s) failed", s.Failed)
}
