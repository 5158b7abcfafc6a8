// Package store persists evaluation records in PostgreSQL or SQLite.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/interview-ranker/internal/evaluation"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	metricsTable = "analysis_metrics"
	// summaryTable is only ever dropped; older deployments created it next to the metrics.
	summaryTable = "project_summary"
)

// Store keeps the evaluation records of a run.
type Store interface {
	// EnsureSchema creates the metrics table when missing.
	EnsureSchema(ctx context.Context) error
	// Reset drops and recreates the metrics table.
	Reset(ctx context.Context) error
	Save(ctx context.Context, runID string, records []evaluation.CandidateRecord) error
	// Load returns the records of runID in insertion order. An empty runID loads every record.
	Load(ctx context.Context, runID string) ([]evaluation.CandidateRecord, error)
	// Drop removes every table the tool owns.
	Drop(ctx context.Context) error
	Close() error
}

// Open connects to the database selected by driver.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("%s dsn is not configured", driver)
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverPostgres:
		return OpenPostgres(ctx, dsn)
	case DriverSQLite:
		return OpenSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}

// restore rebuilds a record from its stored columns. Sections and confidence flags are
// derived again from the stored text; the stored score and decision win.
func restore(name, model, summary string, score int, decision string, latency float64) evaluation.CandidateRecord {
	rec := evaluation.Extract(name, model, summary, latency)
	rec.Score = evaluation.ClampScore(score)
	rec.Decision = evaluation.ParseDecision(decision)
	return rec
}
