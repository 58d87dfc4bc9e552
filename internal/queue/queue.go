// Package queue accumulates download requests from manual entry and the
// clipboard and drains them through the pipeline one at a time.
package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vmunix/ripped/internal/request"
)

// Entry is a request waiting to be drained.
type Entry struct {
	ID         string
	Request    request.Request
	EnqueuedAt time.Time
}

func newEntry(req request.Request) Entry {
	id, err := uuid.NewV7()
	e := Entry{Request: req, EnqueuedAt: time.Now()}
	if err != nil {
		e.ID = fmt.Sprintf("entry-%d", e.EnqueuedAt.UnixNano())
	} else {
		e.ID = id.String()
	}
	return e
}

// Queue is an insertion-ordered, concurrency-safe list of entries.
type Queue struct {
	mu      sync.Mutex
	entries []Entry
}

// Push appends e.
func (q *Queue) Push(e Entry) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, e)
	return len(q.entries)
}

// Len returns the number of pending entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Take returns all pending entries and empties the queue in one step.
func (q *Queue) Take() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	taken := q.entries
	q.entries = nil
	return taken
}
