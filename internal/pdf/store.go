// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/cvsite/pkg/types"
)

// Status is the outcome of one build.
type Status string

const (
	StatusDone   Status = "done"
	StatusFailed Status = "failed"
)

// Build records one render attempt.
type Build struct {
	Lang          types.Lang
	SourcePath    string
	SourceModTime time.Time
	PDFPath       string
	Status        Status
	ExitCode      int
	Message       string
	BuiltAt       time.Time
}

// Store is the SQLite ledger of PDF builds. The builds table holds the
// latest attempt per language; build_log keeps every attempt.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the ledger database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			lang TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			source_mod_time TEXT NOT NULL,
			pdf_path TEXT NOT NULL,
			status TEXT NOT NULL,
			exit_code INTEGER NOT NULL DEFAULT 0,
			message TEXT,
			built_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS build_log (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			lang TEXT NOT NULL,
			source_path TEXT NOT NULL,
			source_mod_time TEXT NOT NULL,
			pdf_path TEXT NOT NULL,
			status TEXT NOT NULL,
			exit_code INTEGER NOT NULL DEFAULT 0,
			message TEXT,
			built_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_build_log_lang ON build_log(lang)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores b as the latest build for its language and appends it to
// the log.
func (s *Store) Record(ctx context.Context, b Build) error {
	if b.BuiltAt.IsZero() {
		b.BuiltAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	args := []any{
		string(b.Lang), b.SourcePath, formatTime(b.SourceModTime), b.PDFPath,
		string(b.Status), b.ExitCode, b.Message, formatTime(b.BuiltAt),
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO builds (lang, source_path, source_mod_time, pdf_path, status, exit_code, message, built_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(lang) DO UPDATE SET
			source_path=excluded.source_path, source_mod_time=excluded.source_mod_time,
			pdf_path=excluded.pdf_path, status=excluded.status, exit_code=excluded.exit_code,
			message=excluded.message, built_at=excluded.built_at`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("upserting build: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO build_log (lang, source_path, source_mod_time, pdf_path, status, exit_code, message, built_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("appending build log: %w", err)
	}

	return tx.Commit()
}

// Latest returns the most recent build for lang.
func (s *Store) Latest(ctx context.Context, lang types.Lang) (Build, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT lang, source_path, source_mod_time, pdf_path, status, exit_code, message, built_at
		 FROM builds WHERE lang = ?`, string(lang))
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, false, nil
	}
	if err != nil {
		return Build{}, false, fmt.Errorf("querying latest build: %w", err)
	}
	return b, true, nil
}

// History returns up to limit logged builds, newest first. limit <= 0
// returns all of them.
func (s *Store) History(ctx context.Context, limit int) ([]Build, error) {
	query := `SELECT lang, source_path, source_mod_time, pdf_path, status, exit_code, message, built_at
		FROM build_log ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying build log: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning build: %w", err)
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(sc scanner) (Build, error) {
	var (
		b                Build
		lang, status     string
		modTime, builtAt string
		message          sql.NullString
	)
	if err := sc.Scan(&lang, &b.SourcePath, &modTime, &b.PDFPath, &status, &b.ExitCode, &message, &builtAt); err != nil {
		return Build{}, err
	}
	b.Lang = types.Lang(lang)
	b.Status = Status(status)
	b.Message = message.String
	b.SourceModTime, _ = time.Parse(time.RFC3339Nano, modTime)
	b.BuiltAt, _ = time.Parse(time.RFC3339Nano, builtAt)
	return b, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
