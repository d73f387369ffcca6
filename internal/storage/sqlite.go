// Package storage persists named alert drafts and a submission log in a
// local SQLite database. Drafts are stored as their JSON wire form so a
// saved draft round-trips exactly to what would have been submitted.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/quillbank/sarflow/internal/common"
	"github.com/quillbank/sarflow/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Store wraps the SQLite database holding drafts and submissions.
type Store struct {
	db     *sql.DB
	dbPath string
}

// DraftRecord is a saved draft plus its bookkeeping columns.
type DraftRecord struct {
	Name      string
	Draft     model.AlertDraft
	UpdatedAt time.Time
}

// SubmissionRecord is one row of the submission log.
type SubmissionRecord struct {
	ID          string
	AlertID     string
	Customer    string
	Action      string
	SubmittedAt time.Time
}

// Open opens (creating if necessary) the database at dbPath.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: database path", common.ErrMissingConfig)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	name       TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS submissions (
	id           TEXT PRIMARY KEY,
	alert_id     TEXT NOT NULL,
	customer     TEXT NOT NULL,
	action       TEXT NOT NULL,
	submitted_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_alert ON submissions(alert_id);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveDraft inserts or replaces the named draft.
func (s *Store) SaveDraft(ctx context.Context, name string, d model.AlertDraft) error {
	if name == "" {
		return fmt.Errorf("%w: draft name", common.ErrMissingConfig)
	}

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO drafts (name, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		name, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save draft %q: %w", name, err)
	}
	return nil
}

// GetDraft loads the named draft. Returns common.ErrDraftNotFound when
// no draft with that name exists.
func (s *Store) GetDraft(ctx context.Context, name string) (model.AlertDraft, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM drafts WHERE name = ?`, name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.AlertDraft{}, fmt.Errorf("%w: %q", common.ErrDraftNotFound, name)
	}
	if err != nil {
		return model.AlertDraft{}, fmt.Errorf("failed to load draft %q: %w", name, err)
	}

	var d model.AlertDraft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return model.AlertDraft{}, fmt.Errorf("failed to decode draft %q: %w", name, err)
	}
	return d, nil
}

// ListDrafts returns all saved drafts ordered by most recently updated.
func (s *Store) ListDrafts(ctx context.Context) ([]DraftRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, payload, updated_at FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []DraftRecord
	for rows.Next() {
		var rec DraftRecord
		var payload string
		if err := rows.Scan(&rec.Name, &payload, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &rec.Draft); err != nil {
			return nil, fmt.Errorf("failed to decode draft %q: %w", rec.Name, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drafts: %w", err)
	}
	return records, nil
}

// DeleteDraft removes the named draft. Deleting an absent draft returns
// common.ErrDraftNotFound.
func (s *Store) DeleteDraft(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete draft %q: %w", name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", common.ErrDraftNotFound, name)
	}
	return nil
}

// RecordSubmission appends a submission-log row for a successfully
// analyzed alert and returns the generated record ID.
func (s *Store) RecordSubmission(ctx context.Context, d model.AlertDraft, report *model.AnalysisReport) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO submissions (id, alert_id, customer, action, submitted_at) VALUES (?, ?, ?, ?, ?)`,
		id, d.AlertID, d.CustomerName, report.Analysis.Recommendation.Action, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to record submission: %w", err)
	}
	return id, nil
}

// ListSubmissions returns the submission log, newest first.
func (s *Store) ListSubmissions(ctx context.Context) ([]SubmissionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, alert_id, customer, action, submitted_at FROM submissions ORDER BY submitted_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []SubmissionRecord
	for rows.Next() {
		var rec SubmissionRecord
		if err := rows.Scan(&rec.ID, &rec.AlertID, &rec.Customer, &rec.Action, &rec.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}
	return records, nil
}
