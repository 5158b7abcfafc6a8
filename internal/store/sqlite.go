package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spigell/interview-ranker/internal/evaluation"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS analysis_metrics (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	candidate_name TEXT NOT NULL,
	ai_model TEXT NOT NULL,
	ai_summary TEXT NOT NULL DEFAULT '',
	interview_score INTEGER NOT NULL,
	hiring_decision TEXT NOT NULL,
	latency_sec REAL NOT NULL,
	created_at TEXT NOT NULL
)`

// SQLite stores records in a local database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens path, which may also be a complete "file:" DSN.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite wants a single writer
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create %s: %w", metricsTable, err)
	}
	return nil
}

func (s *SQLite) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+metricsTable); err != nil {
		return fmt.Errorf("failed to drop %s: %w", metricsTable, err)
	}
	return s.EnsureSchema(ctx)
}

func (s *SQLite) Save(ctx context.Context, runID string, records []evaluation.CandidateRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO analysis_metrics
		 (run_id, candidate_name, ai_model, ai_summary, interview_score, hiring_decision, latency_sec, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			runID, rec.Name, rec.Model, rec.RawText, rec.Score, rec.Decision.String(), rec.LatencySeconds, now,
		); err != nil {
			return fmt.Errorf("failed to save record for %s: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context, runID string) ([]evaluation.CandidateRecord, error) {
	query := `SELECT candidate_name, ai_model, ai_summary, interview_score, hiring_decision, latency_sec
		FROM analysis_metrics`
	var args []any
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer rows.Close()

	var records []evaluation.CandidateRecord
	for rows.Next() {
		var (
			name, model, summary, decision string
			score                          int
			latency                        float64
		)
		if err := rows.Scan(&name, &model, &summary, &score, &decision, &latency); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, restore(name, model, summary, score, decision, latency))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return records, nil
}

func (s *SQLite) Drop(ctx context.Context) error {
	for _, table := range []string{metricsTable, summaryTable} {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
