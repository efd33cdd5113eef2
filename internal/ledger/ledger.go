// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite history of written company reports. The
// pipeline only appends to it; nothing read back influences a run.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/contact-finder/pkg/types"
)

const defaultRecent = 20

// Ledger manages the run history database.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one recorded company report.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	Company   string    `json:"company" yaml:"company"`
	Location  string    `json:"location" yaml:"location"`
	Requested int       `json:"requested" yaml:"requested"`
	Written   int       `json:"written" yaml:"written"`
	Path      string    `json:"path" yaml:"path"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Open opens or creates the ledger database at path and creates the schema
// if it does not exist.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db, now: time.Now}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company TEXT NOT NULL,
			location TEXT,
			requested INTEGER NOT NULL,
			written INTEGER NOT NULL,
			path TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT,
			title TEXT,
			email TEXT,
			profile_url TEXT,
			grp TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_run_id ON contacts(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_company ON runs(company)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a written report and its contacts in one transaction and
// returns the new run ID.
func (l *Ledger) Record(ctx context.Context, report types.CompanyReport, location string, requested int, path string) (int64, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (company, location, requested, written, path, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		report.Company, location, requested, len(report.Contacts), path,
		l.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run for %s: %w", report.Company, err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO contacts (run_id, name, title, email, profile_url, grp) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing contact insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range report.Contacts {
		if _, err := stmt.ExecContext(ctx, runID, c.Name, c.TitleSnippet, c.InferredEmail, c.ProfileURL, string(c.Group)); err != nil {
			return 0, fmt.Errorf("inserting contact %s: %w", c.ProfileURL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Recent returns the most recent runs, newest first. A limit of zero or less
// uses the default (20).
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRecent
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, company, location, requested, written, path, created_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var location sql.NullString
		var created string
		if err := rows.Scan(&r.ID, &r.Company, &location, &r.Requested, &r.Written, &r.Path, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Location = location.String
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Contacts returns the contacts recorded for a run in insertion order.
func (l *Ledger) Contacts(ctx context.Context, runID int64) ([]types.Contact, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT r.company, c.name, c.title, c.email, c.profile_url, c.grp
		 FROM contacts c JOIN runs r ON r.id = c.run_id
		 WHERE c.run_id = ? ORDER BY c.rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying contacts for run %d: %w", runID, err)
	}
	defer rows.Close()

	var contacts []types.Contact
	for rows.Next() {
		var c types.Contact
		var grp string
		if err := rows.Scan(&c.Company, &c.Name, &c.TitleSnippet, &c.InferredEmail, &c.ProfileURL, &grp); err != nil {
			return nil, fmt.Errorf("scanning contact: %w", err)
		}
		c.Group = types.RoleGroupLabel(grp)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
