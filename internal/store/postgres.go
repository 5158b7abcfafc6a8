package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spigell/interview-ranker/internal/evaluation"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS analysis_metrics (
	id BIGSERIAL PRIMARY KEY,
	run_id TEXT NOT NULL,
	candidate_name TEXT NOT NULL,
	ai_model TEXT NOT NULL,
	ai_summary TEXT NOT NULL DEFAULT '',
	interview_score INTEGER NOT NULL,
	hiring_decision TEXT NOT NULL,
	latency_sec DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Postgres stores records through a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres establishes a connection pool and verifies it.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create %s: %w", metricsTable, err)
	}
	return nil
}

func (p *Postgres) Reset(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, "DROP TABLE IF EXISTS "+metricsTable); err != nil {
		return fmt.Errorf("failed to drop %s: %w", metricsTable, err)
	}
	return p.EnsureSchema(ctx)
}

func (p *Postgres) Save(ctx context.Context, runID string, records []evaluation.CandidateRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(
			`INSERT INTO analysis_metrics
			 (run_id, candidate_name, ai_model, ai_summary, interview_score, hiring_decision, latency_sec, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			runID, rec.Name, rec.Model, rec.RawText, rec.Score, rec.Decision.String(), rec.LatencySeconds, now,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, runID string) ([]evaluation.CandidateRecord, error) {
	query := `SELECT candidate_name, ai_model, ai_summary, interview_score, hiring_decision, latency_sec
		FROM analysis_metrics`
	var args []any
	if runID != "" {
		query += ` WHERE run_id = $1`
		args = append(args, runID)
	}
	query += ` ORDER BY id`

	rows, err := p.pool.Query(ctx, query, args...)
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

func (p *Postgres) Drop(ctx context.Context) error {
	for _, table := range []string{metricsTable, summaryTable} {
		if _, err := p.pool.Exec(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
