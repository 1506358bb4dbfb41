// Package reportstore persists generated analysis reports to SQLite so
// earlier runs can be reloaded and re-exported.
package reportstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/trizworks/triz-engine/internal/report"
)

var ErrNotFound = errors.New("report not found")

// Store is a write-through SQLite store. A single connection with WAL mode
// keeps writers serialized.
type Store struct {
	db *sqlx.DB
	mu sync.Mutex
}

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	report_id    TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	problem_text TEXT NOT NULL DEFAULT '',
	industry     TEXT NOT NULL DEFAULT '',
	report_json  TEXT NOT NULL,
	markdown     TEXT NOT NULL DEFAULT ''
);
`

func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts a report along with its rendered Markdown.
func (s *Store) Save(r report.Report, problemText, industry, markdown string) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`INSERT OR REPLACE INTO reports (report_id, created_at, problem_text, industry, report_json, markdown)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID,
		time.Now().UTC().Format(time.RFC3339Nano),
		problemText,
		industry,
		string(payload),
		markdown,
	)
	if err != nil {
		return fmt.Errorf("save report %s: %w", r.ID, err)
	}
	return nil
}

func (s *Store) Load(id string) (report.Report, error) {
	var payload string
	err := s.db.QueryRow("SELECT report_json FROM reports WHERE report_id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return report.Report{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return report.Report{}, fmt.Errorf("load report %s: %w", id, err)
	}

	var r report.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return report.Report{}, fmt.Errorf("decode report %s: %w", id, err)
	}
	return r, nil
}

// Markdown returns the rendered Markdown stored alongside the report.
func (s *Store) Markdown(id string) (string, error) {
	var md string
	err := s.db.QueryRow("SELECT markdown FROM reports WHERE report_id = ?", id).Scan(&md)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("load markdown %s: %w", id, err)
	}
	return md, nil
}

type Summary struct {
	ID          string `db:"report_id"`
	CreatedAt   string `db:"created_at"`
	ProblemText string `db:"problem_text"`
	Industry    string `db:"industry"`
}

// List returns the most recent reports, newest first.
func (s *Store) List(limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []Summary
	err := s.db.Select(&out, "SELECT report_id, created_at, problem_text, industry FROM reports ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return out, nil
}

// Delete removes a stored report. Missing ids are not an error.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM reports WHERE report_id = ?", id); err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	return nil
}
