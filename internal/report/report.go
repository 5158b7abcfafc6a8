// Package report builds the comparative hiring narrative from evaluation records.
package report

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/interview-ranker/internal/evaluation"
)

// ErrEmptyCandidateSet is returned when there is nothing to report on.
var ErrEmptyCandidateSet = errors.New("no candidate records available")

// DefaultPrimaryModel is the model label preferred for ranking.
const DefaultPrimaryModel = "GEMINI"

const pointsUnit = "점"

const (
	hireSummaryFiller = "주요 문제를 구조적으로 정의하고 해결 방향을 제시하는 역량이 돋보였습니다."
	hireProsFiller    = "업무 임팩트를 만드는 실행력과 문제 해결력이 확인되었습니다."
	hireConsFiller    = "실무 적용 과정에서 추가 검증이 필요한 영역이 일부 존재합니다."

	rejectSummaryFiller = "역량은 충분하지만 포지션 핏에서 차이가 있었습니다."
	rejectProsFiller    = "일정 수준 이상의 강점이 확인되었습니다."
	rejectConsFiller    = "핵심 요구사항과의 간극이 존재합니다."
)

// Bundle is the synthesized report.
type Bundle struct {
	Intro        string   `json:"intro" yaml:"intro"`
	HireTitle    string   `json:"hire_title" yaml:"hire_title"`
	HireBody     string   `json:"hire_body" yaml:"hire_body"`
	RejectBlocks []string `json:"reject_blocks" yaml:"reject_blocks"`
}

// Synthesize ranks the records of the primary model and writes one hire story for the top
// pick and one reject story for every other candidate.
//
// When no record belongs to primaryModel, all records are used. Equal scores keep their input
// order. Candidates sharing the top pick's name are left out of the reject list.
func Synthesize(records []evaluation.CandidateRecord, primaryModel string) (*Bundle, error) {
	ranked := Rank(records, primaryModel)
	if len(ranked) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	top := ranked[0]

	bundle := &Bundle{
		Intro:        intro(top),
		HireTitle:    title(top.Name, top.Score, string(top.Decision)),
		HireBody:     hireBody(top),
		RejectBlocks: make([]string, 0, len(ranked)-1),
	}

	for _, rec := range ranked[1:] {
		if rec.Name == top.Name {
			continue
		}
		bundle.RejectBlocks = append(bundle.RejectBlocks, rejectBlock(rec, top.Name))
	}

	return bundle, nil
}

// Rank returns the records of primaryModel, or all records when there are none,
// stably sorted by score descending.
func Rank(records []evaluation.CandidateRecord, primaryModel string) []evaluation.CandidateRecord {
	base := make([]evaluation.CandidateRecord, 0, len(records))
	for _, rec := range records {
		if rec.Model == primaryModel {
			base = append(base, rec)
		}
	}
	if len(base) == 0 {
		base = append(base, records...)
	}

	slices.SortStableFunc(base, func(a, b evaluation.CandidateRecord) int {
		return b.Score - a.Score
	})

	return base
}

func title(name string, score int, decision string) string {
	return fmt.Sprintf("%s (%d%s): %s", name, score, pointsUnit, decision)
}

func intro(top evaluation.CandidateRecord) string {
	return "후보자 평가 결과를 요약한 최종 결과입니다. " +
		"평가 기준에 따라 후보자들의 강점과 리스크를 비교했으며, " +
		fmt.Sprintf("가장 높은 점수를 받은 %s을(를) 최종 채용 추천 대상으로 선정했습니다. ", top.Name) +
		"다른 후보들은 역량이 충분함에도 불구하고, 현재 포지션에서 요구하는 핵심 역량 대비 " +
		"상대적으로 보완이 필요한 영역이 확인되어 보류/불합격으로 정리했습니다."
}

func hireBody(top evaluation.CandidateRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s은(는) 이번 포지션의 핵심 요구사항과 가장 직접적으로 맞닿아 있습니다.\n\n", top.Name)
	writeSection(&b, "요약", top.Sections.Summary, hireSummaryFiller)
	writeSection(&b, "장점", top.Sections.Pros, hireProsFiller)
	writeSection(&b, "단점", top.Sections.Cons, hireConsFiller)
	b.WriteString("그럼에도 불구하고, 강점이 직무 성공에 더 결정적으로 기여하며 ")
	b.WriteString("단점은 온보딩/협업 프로세스로 충분히 보완 가능한 범위라고 판단됩니다.")

	return b.String()
}

func rejectBlock(rec evaluation.CandidateRecord, topName string) string {
	var b strings.Builder

	b.WriteString(title(rec.Name, rec.Score, string(evaluation.DecisionReject)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s은(는) 기본 역량이 탄탄하고 실무 기여 가능성이 있으나, ", rec.Name)
	b.WriteString("이번 포지션에서 가장 중요한 핵심 역량 대비 우선순위가 낮게 평가되었습니다.\n\n")
	writeSection(&b, "요약", rec.Sections.Summary, rejectSummaryFiller)
	writeSection(&b, "강점", rec.Sections.Pros, rejectProsFiller)
	writeSection(&b, "보완 필요", rec.Sections.Cons, rejectConsFiller)
	fmt.Fprintf(&b, "종합적으로, %s 대비 직무 적합성과 즉시 전력감에서 차이가 확인되어 ", topName)
	b.WriteString("이번 라운드에서는 불합격으로 결정합니다.")

	return b.String()
}

func writeSection(b *strings.Builder, label, text, filler string) {
	if text == "" {
		text = filler
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", label, text)
}
