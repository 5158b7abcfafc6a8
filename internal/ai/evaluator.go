package ai

import (
	"context"
	"time"
)

// Evaluation is the raw answer of a text-generation model for one transcript.
type Evaluation struct {
	Text    string
	Latency time.Duration
}

// LatencySeconds returns the latency rounded to milliseconds.
func (e *Evaluation) LatencySeconds() float64 {
	if e == nil {
		return 0
	}
	return float64(e.Latency.Milliseconds()) / 1000
}

// Evaluator asks a model to assess one interview transcript.
type Evaluator interface {
	Evaluate(ctx context.Context, transcript string) (*Evaluation, error)
	// Label is the name records produced by this evaluator are stored under.
	Label() string
}
