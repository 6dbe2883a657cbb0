// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records srctools runs in a local SQLite ledger and
// exports them as YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/srctools/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20
)

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// DefaultDir returns the ledger directory used when none is configured.
func DefaultDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating user cache directory: %w", err)
	}
	return filepath.Join(cache, "srctools"), nil
}

// NewStore opens or creates the ledger at cfg.Dir/history.db and creates
// the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: dir, maxResults: maxResults}
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

// Path returns the database file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, dbFile)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tool TEXT NOT NULL,
			target TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			items INTEGER NOT NULL DEFAULT 0,
			elapsed_ns INTEGER NOT NULL DEFAULT 0,
			started_at_ns INTEGER NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_tool ON runs(tool)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at_ns)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts rec and returns its row ID. A zero StartedAt is recorded
// as the current time.
func (s *Store) Record(ctx context.Context, rec types.RunRecord) (int64, error) {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (tool, target, output, status, items, elapsed_ns, started_at_ns, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(rec.Tool), rec.Target, rec.Output, string(rec.Status),
		rec.Items, int64(rec.Elapsed), rec.StartedAt.UnixNano(), rec.Error,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return res.LastInsertId()
}

// QueryOptions filters ledger queries. Zero values match everything.
type QueryOptions struct {
	Tool       types.Tool
	Status     types.RunStatus
	MaxResults int
}

// List returns matching runs, newest first. When opts.MaxResults is zero
// the store default applies.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.RunRecord, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}
	return s.query(ctx, opts, limit)
}

// query runs the filtered select. A limit of zero or less returns all rows.
func (s *Store) query(ctx context.Context, opts QueryOptions, limit int) ([]types.RunRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.Tool != "" {
		where = append(where, "tool = ?")
		args = append(args, string(opts.Tool))
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}

	q := `SELECT id, tool, target, COALESCE(output, ''), status, items, elapsed_ns, started_at_ns, COALESCE(error, '') FROM runs`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY started_at_ns DESC, id DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []types.RunRecord
	for rows.Next() {
		var (
			r                  types.RunRecord
			tool, status       string
			elapsedNS, startNS int64
		)
		if err := rows.Scan(&r.ID, &tool, &r.Target, &r.Output, &status, &r.Items, &elapsedNS, &startNS, &r.Error); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Tool = types.Tool(tool)
		r.Status = types.RunStatus(status)
		r.Elapsed = time.Duration(elapsedNS)
		r.StartedAt = time.Unix(0, startNS).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

// ExportYAML writes matching runs to w as a YAML sequence. A zero
// opts.MaxResults exports every row.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions, w io.Writer) error {
	records, err := s.query(ctx, opts, opts.MaxResults)
	if err != nil {
		return err
	}
	if records == nil {
		records = []types.RunRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes matching runs to w as an indented JSON array. A zero
// opts.MaxResults exports every row.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions, w io.Writer) error {
	records, err := s.query(ctx, opts, opts.MaxResults)
	if err != nil {
		return err
	}
	if records == nil {
		records = []types.RunRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
