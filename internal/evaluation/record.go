// Package evaluation turns free-form model evaluations into structured candidate records.
package evaluation

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// CandidateRecord is the structured result of one evaluation of one candidate.
// Records are created by Extract and never mutated afterwards.
type CandidateRecord struct {
	Name           string     `json:"name" yaml:"name"`
	Model          string     `json:"model" yaml:"model"`
	RawText        string     `json:"raw_text" yaml:"raw_text"`
	Sections       Sections   `json:"sections" yaml:"sections"`
	Score          int        `json:"score" yaml:"score"`
	Decision       Decision   `json:"decision" yaml:"decision"`
	LatencySeconds float64    `json:"latency_seconds" yaml:"latency_seconds"`
	Confidence     Confidence `json:"confidence" yaml:"confidence"`
}

// Confidence tells which fields were extracted from the text and which were defaulted.
type Confidence struct {
	Summary  bool `json:"summary" yaml:"summary"`
	Pros     bool `json:"pros" yaml:"pros"`
	Cons     bool `json:"cons" yaml:"cons"`
	Score    bool `json:"score" yaml:"score"`
	Decision bool `json:"decision" yaml:"decision"`
}

// RawEvaluation is the unprocessed input for Extract.
type RawEvaluation struct {
	Name           string
	Model          string
	Text           string
	LatencySeconds float64
}

// Extract builds a CandidateRecord from raw evaluation text.
// Misses are never errors: sections default to empty, score to 0 and decision to PENDING.
func Extract(name, model, raw string, latencySeconds float64) CandidateRecord {
	normalized := Normalize(raw)
	sections, found := parseSections(normalized)
	score, scoreOK := MatchScore(raw)
	decision, decisionOK := MatchDecision(raw)

	if math.IsNaN(latencySeconds) || latencySeconds < 0 {
		latencySeconds = 0
	}

	return CandidateRecord{
		Name:           name,
		Model:          model,
		RawText:        raw,
		Sections:       sections,
		Score:          ClampScore(score),
		Decision:       decision,
		LatencySeconds: latencySeconds,
		Confidence: Confidence{
			Summary:  found[0] && sections.Summary != "",
			Pros:     found[1] && sections.Pros != "",
			Cons:     found[2] && sections.Cons != "",
			Score:    scoreOK,
			Decision: decisionOK,
		},
	}
}

// ExtractAll runs Extract for every input using at most workers goroutines.
// The output keeps the input order.
func ExtractAll(ctx context.Context, inputs []RawEvaluation, workers int) ([]CandidateRecord, error) {
	records := make([]CandidateRecord, len(inputs))
	if len(inputs) == 0 {
		return records, nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, in := range inputs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			records[i] = Extract(in.Name, in.Model, in.Text, in.LatencySeconds)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}
