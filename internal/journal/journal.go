// Copyright Electionwire Media, 2026. All rights reserved.

// Package journal persists one record per automation run in a SQLite
// database. The journal is the audit trail for unattended runs: every
// outcome lands here whether or not a post was created.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/electionwire/autopost/pkg/types"
)

const (
	dbFile     = "journal.db"
	exportFile = "export.yaml"
)

// Outcome classifies how a run ended.
type Outcome string

const (
	// OutcomeCreated means a post was written to the store.
	OutcomeCreated Outcome = "created"
	// OutcomeSkipped means the model declined to produce a profile.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeRejected means the gate refused the draft.
	OutcomeRejected Outcome = "rejected"
	// OutcomeFailed means the run aborted on an error.
	OutcomeFailed Outcome = "failed"
	// OutcomeDryRun means the draft passed the gate but the write was
	// suppressed.
	OutcomeDryRun Outcome = "dry-run"
)

// Entry is one journal record.
type Entry struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id" yaml:"run_id"`

	// StartedAt and FinishedAt bound the run, UTC.
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`

	// Model names the backend that generated the draft (e.g.
	// "gemini:gemini-2.5-pro").
	Model string `json:"model" yaml:"model"`

	// Outcome classifies the run result.
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Reason carries the skip or rejection reason, empty for created runs.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// PostID and PostURL identify the created post, zero/empty otherwise.
	PostID  int64  `json:"post_id,omitempty" yaml:"post_id,omitempty"`
	PostURL string `json:"post_url,omitempty" yaml:"post_url,omitempty"`

	// Title, Slug, and Candidate describe the draft, when one was produced.
	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Slug      string `json:"slug,omitempty" yaml:"slug,omitempty"`
	Candidate string `json:"candidate,omitempty" yaml:"candidate,omitempty"`

	// Payload is the raw generation payload JSON, kept for replaying
	// rejected drafts.
	Payload string `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Journal manages the run journal SQLite database.
type Journal struct {
	db  *sql.DB
	dir string
}

// Open opens or creates the journal database at cfg.Dir/journal.db,
// creating the schema if it does not exist.
func Open(cfg types.JournalConfig) (*Journal, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "journal"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	j := &Journal{db: db, dir: dir}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			model TEXT,
			outcome TEXT NOT NULL,
			reason TEXT,
			post_id INTEGER,
			post_url TEXT,
			title TEXT,
			slug TEXT,
			candidate TEXT,
			payload TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_outcome ON runs(outcome)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one run entry.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.RunID == "" {
		return fmt.Errorf("journal entry is missing a run id")
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, started_at, finished_at, model, outcome, reason,
			post_id, post_url, title, slug, candidate, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID,
		e.StartedAt.UTC().Format(time.RFC3339Nano),
		e.FinishedAt.UTC().Format(time.RFC3339Nano),
		e.Model,
		string(e.Outcome),
		e.Reason,
		e.PostID,
		e.PostURL,
		e.Title,
		e.Slug,
		e.Candidate,
		e.Payload,
	)
	if err != nil {
		return fmt.Errorf("inserting journal entry: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first. A limit of 0 means
// all entries.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT run_id, started_at, finished_at, model, outcome, reason,
			post_id, post_url, title, slug, candidate, payload
		FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal entries: %w", err)
	}
	return entries, nil
}

// Get returns one entry by run id.
func (j *Journal) Get(ctx context.Context, runID string) (Entry, error) {
	row := j.db.QueryRowContext(ctx,
		`SELECT run_id, started_at, finished_at, model, outcome, reason,
			post_id, post_url, title, slug, candidate, payload
		FROM runs WHERE run_id = ?`, runID)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return Entry{}, fmt.Errorf("run %s not found", runID)
	}
	return e, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var started, finished string
	if err := row.Scan(&e.RunID, &started, &finished, &e.Model, &e.Outcome,
		&e.Reason, &e.PostID, &e.PostURL, &e.Title, &e.Slug, &e.Candidate,
		&e.Payload); err != nil {
		if err == sql.ErrNoRows {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("scanning journal entry: %w", err)
	}

	var err error
	if e.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Entry{}, fmt.Errorf("parsing started_at: %w", err)
	}
	if e.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Entry{}, fmt.Errorf("parsing finished_at: %w", err)
	}
	return e, nil
}

// ExportYAML writes all entries to dir/export.yaml, newest first.
func (j *Journal) ExportYAML(ctx context.Context) error {
	entries, err := j.List(ctx, 0)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshalling journal export: %w", err)
	}

	exportPath := filepath.Join(j.dir, exportFile)
	if err := os.WriteFile(exportPath, data, 0o644); err != nil {
		return fmt.Errorf("writing journal export: %w", err)
	}
	return nil
}
