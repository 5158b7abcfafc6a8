package report

import (
	"cmp"
	"math"
	"slices"

	"github.com/spigell/interview-ranker/internal/evaluation"
)

// ModelStats aggregates all records produced by one model.
type ModelStats struct {
	Model          string  `json:"model" yaml:"model"`
	Candidates     int     `json:"candidates" yaml:"candidates"`
	AverageScore   float64 `json:"average_score" yaml:"average_score"`
	AverageLatency float64 `json:"average_latency_seconds" yaml:"average_latency_seconds"`
}

// RankEntry is one row of the ranking table.
type RankEntry struct {
	Position int                 `json:"position" yaml:"position"`
	Name     string              `json:"name" yaml:"name"`
	Model    string              `json:"model" yaml:"model"`
	Score    int                 `json:"score" yaml:"score"`
	Decision evaluation.Decision `json:"decision" yaml:"decision"`
}

// View is everything a renderer needs.
type View struct {
	Bundle  *Bundle      `json:"report" yaml:"report"`
	Ranking []RankEntry  `json:"ranking" yaml:"ranking"`
	Models  []ModelStats `json:"models" yaml:"models"`
}

// Build assembles the full view for the records.
func Build(records []evaluation.CandidateRecord, primaryModel string) (*View, error) {
	bundle, err := Synthesize(records, primaryModel)
	if err != nil {
		return nil, err
	}

	return &View{
		Bundle:  bundle,
		Ranking: Ranking(records, primaryModel),
		Models:  CompareModels(records),
	}, nil
}

// Ranking numbers the output of Rank starting from 1.
func Ranking(records []evaluation.CandidateRecord, primaryModel string) []RankEntry {
	ranked := Rank(records, primaryModel)
	entries := make([]RankEntry, 0, len(ranked))
	for i, rec := range ranked {
		entries = append(entries, RankEntry{
			Position: i + 1,
			Name:     rec.Name,
			Model:    rec.Model,
			Score:    rec.Score,
			Decision: rec.Decision,
		})
	}
	return entries
}

// CompareModels averages score and latency per model, ordered by model label.
func CompareModels(records []evaluation.CandidateRecord) []ModelStats {
	byModel := make(map[string]*ModelStats)
	for _, rec := range records {
		s, ok := byModel[rec.Model]
		if !ok {
			s = &ModelStats{Model: rec.Model}
			byModel[rec.Model] = s
		}
		s.Candidates++
		s.AverageScore += float64(rec.Score)
		s.AverageLatency += rec.LatencySeconds
	}

	stats := make([]ModelStats, 0, len(byModel))
	for _, s := range byModel {
		n := float64(s.Candidates)
		s.AverageScore = round(s.AverageScore/n, 2)
		s.AverageLatency = round(s.AverageLatency/n, 3)
		stats = append(stats, *s)
	}

	slices.SortFunc(stats, func(a, b ModelStats) int {
		return cmp.Compare(a.Model, b.Model)
	})

	return stats
}

// Detail returns every record of the named candidate, best score first.
func Detail(records []evaluation.CandidateRecord, name string) []evaluation.CandidateRecord {
	var out []evaluation.CandidateRecord
	for _, rec := range records {
		if rec.Name == name {
			out = append(out, rec)
		}
	}

	slices.SortStableFunc(out, func(a, b evaluation.CandidateRecord) int {
		return b.Score - a.Score
	})

	return out
}

// CandidateNames returns the distinct candidate names in sorted order.
func CandidateNames(records []evaluation.CandidateRecord) []string {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
