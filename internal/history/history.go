// Package history persists the outcome of each pipeline run to SQLite.
package history

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/ripped/internal/pipeline"
)

//go:embed schema.sql
var schemaSQL string

// Record is one finished run.
type Record struct {
	ID         int64
	RunID      string
	URL        string
	Mode       string
	Quality    string
	Status     string
	Title      string
	Outputs    []string
	Size       int64
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and applies the schema.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// One connection keeps :memory: databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts r and returns its row ID.
func (s *Store) Add(r Record) (int64, error) {
	outputs, err := json.Marshal(r.Outputs)
	if err != nil {
		return 0, fmt.Errorf("marshal outputs: %w", err)
	}
	if r.Outputs == nil {
		outputs = []byte("[]")
	}

	result, err := s.db.Exec(`
		INSERT INTO runs (run_id, url, mode, quality, status, title, outputs, size, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.URL, r.Mode, r.Quality, r.Status, r.Title, string(outputs), r.Size, r.Error,
		r.StartedAt.UTC(), r.FinishedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return result.LastInsertId()
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, run_id, url, mode, quality, status, title, outputs, size, error, started_at, finished_at
		FROM runs
		ORDER BY id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var outputs string
		if err := rows.Scan(&r.ID, &r.RunID, &r.URL, &r.Mode, &r.Quality, &r.Status, &r.Title,
			&outputs, &r.Size, &r.Error, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(outputs), &r.Outputs); err != nil {
			return nil, fmt.Errorf("decode outputs for %s: %w", r.RunID, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FromResult converts a finished pipeline result into a record.
func FromResult(res *pipeline.Result, finished time.Time) Record {
	r := Record{
		RunID:      res.RunID,
		URL:        res.Request.URL,
		Mode:       string(res.Request.Mode),
		Quality:    res.Request.Quality.String(),
		Status:     string(res.Stage),
		Outputs:    res.Outputs,
		Size:       res.Size,
		StartedAt:  res.StartedAt,
		FinishedAt: finished,
	}
	if res.Metadata != nil {
		r.Title = res.Metadata.Title
	}
	if res.Err != nil {
		r.Error = res.Err.Error()
	}
	return r
}

// Recorder returns a transition handler that stores every run reaching a
// terminal stage. Write errors are logged, never propagated.
func Recorder(s *Store, log *slog.Logger) pipeline.TransitionHandler {
	if log == nil {
		log = slog.Default()
	}
	return func(e pipeline.TransitionEvent) {
		if !e.To.IsTerminal() || e.Result == nil {
			return
		}
		if _, err := s.Add(FromResult(e.Result, e.At)); err != nil {
			log.Warn("failed to record history", "run_id", e.RunID, "error", err)
		}
	}
}
