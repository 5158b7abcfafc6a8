// Package pipeline evaluates every candidate with every configured model and extracts records.
package pipeline

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/interview-ranker/internal/ai"
	"github.com/spigell/interview-ranker/internal/evaluation"
	"github.com/spigell/interview-ranker/internal/ingest"
	"github.com/spigell/interview-ranker/internal/logger"
)

const defaultConcurrency = 4

var errEmptyEvaluation = errors.New("evaluator returned no result")

// Config controls a pipeline run.
type Config struct {
	Concurrency int
}

// Result is the outcome of one run. Records are ordered by candidate, then by evaluator.
type Result struct {
	RunID    string
	Records  []evaluation.CandidateRecord
	Failures int
}

// Run evaluates candidates with every evaluator. A failed model call does not stop the run:
// the pair is recorded with empty text and zero latency, which extracts to score 0 and PENDING.
func Run(ctx context.Context, cfg Config, candidates []ingest.Candidate, evaluators []ai.Evaluator, log *zap.Logger) (*Result, error) {
	if len(evaluators) == 0 {
		return nil, errors.New("at least one evaluator is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	workers := cfg.Concurrency
	if workers <= 0 {
		workers = defaultConcurrency
	}

	runID := uuid.NewString()
	log = logger.WithFields(log, zap.String(logger.FieldRunID, runID))

	raws := make([]evaluation.RawEvaluation, len(candidates)*len(evaluators))
	var failures atomic.Int64

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, candidate := range candidates {
		for j, evaluator := range evaluators {
			idx := i*len(evaluators) + j
			g.Go(func() error {
				if err := gCtx.Err(); err != nil {
					return err
				}

				raws[idx] = evaluation.RawEvaluation{Name: candidate.Name, Model: evaluator.Label()}

				result, err := evaluator.Evaluate(gCtx, candidate.Transcript)
				if err == nil && result == nil {
					err = errEmptyEvaluation
				}
				if err != nil {
					failures.Add(1)
					logger.WithCommonFields(log, evaluator.Label(), candidate.Name).
						Warn("AI evaluation failed", zap.Error(err))
					return nil
				}

				raws[idx].Text = result.Text
				raws[idx].LatencySeconds = result.LatencySeconds()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// failures caused by cancellation are not worth keeping
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := evaluation.ExtractAll(ctx, raws, workers)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		logger.WithCommonFields(log, rec.Model, rec.Name).Info("candidate evaluated",
			zap.Int("score", rec.Score),
			zap.String("decision", rec.Decision.String()),
			zap.Float64("latency_sec", rec.LatencySeconds),
		)
	}

	log.Info("evaluation completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("models", len(evaluators)),
		zap.Int("records", len(records)),
		zap.Int64("failures", failures.Load()),
	)

	return &Result{
		RunID:    runID,
		Records:  records,
		Failures: int(failures.Load()),
	}, nil
}
