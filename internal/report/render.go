package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/spigell/interview-ranker/internal/evaluation"
)

// Output formats understood by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// NoDataMessage is shown instead of a report when the store is empty.
const NoDataMessage = "분석 데이터 없음. evaluate 명령으로 후보 평가를 먼저 실행하세요."

// RenderOptions controls Render.
type RenderOptions struct {
	Format string
	// Color enables terminal styling for the text format.
	Color bool
}

type styleFunc func(strs ...string) string

type styles struct {
	heading styleFunc
	title   styleFunc
	muted   styleFunc
}

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}

func newStyles(color bool) styles {
	if !color {
		return styles{heading: plain, title: plain, muted: plain}
	}

	return styles{
		heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Render,
		title: lipgloss.NewStyle().
			Bold(true).
			Render,
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render,
	}
}

// Render writes the view in the requested format.
func Render(w io.Writer, view *View, opts RenderOptions) error {
	if view == nil || view.Bundle == nil {
		return ErrEmptyCandidateSet
	}

	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", FormatText:
		return renderText(w, view, newStyles(opts.Color))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(view)
	default:
		return fmt.Errorf("unsupported report format: %s", opts.Format)
	}
}

func renderText(w io.Writer, view *View, st styles) error {
	var b strings.Builder
	bundle := view.Bundle

	heading := func(s string) {
		b.WriteString(st.heading("## " + s))
		b.WriteString("\n\n")
	}

	heading("Interview Result Summary")
	b.WriteString(bundle.Intro)
	b.WriteString("\n\n")

	heading("Hire Recommendation")
	b.WriteString(st.title(bundle.HireTitle))
	b.WriteString("\n\n")
	b.WriteString(bundle.HireBody)
	b.WriteString("\n\n")

	heading("Rejection Reasons")
	for _, block := range bundle.RejectBlocks {
		b.WriteString(block)
		b.WriteString("\n\n")
	}

	heading("후보자 랭킹")
	for _, e := range view.Ranking {
		fmt.Fprintf(&b, "순위 %d  %s  %d/100  %s\n", e.Position, e.Name, e.Score, e.Decision)
	}
	b.WriteString("\n")

	heading("모델 비교")
	for _, m := range view.Models {
		fmt.Fprintf(&b, "%s  평균 점수 %.2f  평균 지연 %.3f초  (%d건)\n", m.Model, m.AverageScore, m.AverageLatency, m.Candidates)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderDetail writes every evaluation of one candidate.
func RenderDetail(w io.Writer, records []evaluation.CandidateRecord, color bool) error {
	st := newStyles(color)
	var b strings.Builder

	for _, rec := range records {
		b.WriteString(st.title(fmt.Sprintf("%s - %d%s - %s", rec.Model, rec.Score, pointsUnit, rec.Decision)))
		b.WriteString("\n")
		b.WriteString(evaluation.Normalize(rec.RawText))
		b.WriteString("\n")
		b.WriteString(st.muted(fmt.Sprintf("%g초", rec.LatencySeconds)))
		b.WriteString("\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
