// Package report aggregates per-item outcomes of a download or conversion run.
package report

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Status is the terminal state of one item.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Item is the outcome of one URL or file.
type Item struct {
	Subject string   // URL or source path
	Status  Status   // terminal state
	Outputs []string // final paths, in production order
	Size    int64    // total bytes of Outputs
	Note    string
	Err     error
}

// Summary holds aggregate counters plus the ordered item outcomes.
// A Summary lives only for the run that built it.
type Summary struct {
	Attempted int
	Succeeded int
	Failed    int
	Skipped   int
	Items     []Item
}

// Add appends an item and updates the counters.
func (s *Summary) Add(it Item) {
	s.Attempted++
	switch it.Status {
	case StatusSucceeded:
		s.Succeeded++
	case StatusFailed:
		s.Failed++
	case StatusSkipped:
		s.Skipped++
	}
	s.Items = append(s.Items, it)
}

// Merge appends all items of o, preserving their order.
func (s *Summary) Merge(o Summary) {
	for _, it := range o.Items {
		s.Add(it)
	}
}

// OK reports whether no item failed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// FirstErr returns the error of the first failed item, or nil.
func (s Summary) FirstErr() error {
	for _, it := range s.Items {
		if it.Status == StatusFailed && it.Err != nil {
			return it.Err
		}
	}
	return nil
}

// TotalSize returns the summed output size of all items.
func (s Summary) TotalSize() int64 {
	var n int64
	for _, it := range s.Items {
		n += it.Size
	}
	return n
}

// Tally renders the counters on one line.
func (s Summary) Tally() string {
	line := fmt.Sprintf("Processed %d: %d succeeded, %d failed, %d skipped",
		s.Attempted, s.Succeeded, s.Failed, s.Skipped)
	if size := s.TotalSize(); size > 0 {
		line += fmt.Sprintf(" (%s written)", humanize.Bytes(uint64(size)))
	}
	return line
}
