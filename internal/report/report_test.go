package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/interview-ranker/internal/evaluation"
)

func record(name, model string, score int, decision evaluation.Decision) evaluation.CandidateRecord {
	return evaluation.CandidateRecord{Name: name, Model: model, Score: score, Decision: decision}
}

func TestSynthesizeTwoCandidates(t *testing.T) {
	a := record("A", "GEMINI", 90, evaluation.DecisionHire)
	a.Sections = evaluation.Sections{Summary: "문제 해결", Pros: "빠름", Cons: "없음"}
	b := record("B", "GEMINI", 70, evaluation.DecisionReject)

	bundle, err := Synthesize([]evaluation.CandidateRecord{b, a}, "GEMINI")
	require.NoError(t, err)

	assert.Contains(t, bundle.Intro, "가장 높은 점수를 받은 A을(를) 최종 채용 추천 대상으로 선정했습니다.")
	assert.Equal(t, "A (90점): HIRE", bundle.HireTitle)
	assert.Contains(t, bundle.HireBody, "요약:\n문제 해결\n\n")
	assert.Contains(t, bundle.HireBody, "장점:\n빠름\n\n")
	assert.Contains(t, bundle.HireBody, "단점:\n없음\n\n")

	require.Len(t, bundle.RejectBlocks, 1)
	block := bundle.RejectBlocks[0]
	assert.True(t, strings.HasPrefix(block, "B (70점): REJECT\n\n"))
	assert.Contains(t, block, "종합적으로, A 대비")
	assert.Contains(t, block, "요약:\n"+rejectSummaryFiller)
	assert.Contains(t, block, "강점:\n"+rejectProsFiller)
	assert.Contains(t, block, "보완 필요:\n"+rejectConsFiller)
}

func TestSynthesizeForcesRejectLabel(t *testing.T) {
	records := []evaluation.CandidateRecord{
		record("A", "GEMINI", 95, evaluation.DecisionHire),
		record("B", "GEMINI", 91, evaluation.DecisionHire),
	}

	bundle, err := Synthesize(records, "GEMINI")
	require.NoError(t, err)
	require.Len(t, bundle.RejectBlocks, 1)
	assert.True(t, strings.HasPrefix(bundle.RejectBlocks[0], "B (91점): REJECT"))
}

func TestSynthesizeEmptyTopUsesFillers(t *testing.T) {
	empty := evaluation.Extract("C", "GEMINI", "", 0)

	bundle, err := Synthesize([]evaluation.CandidateRecord{empty}, "GEMINI")
	require.NoError(t, err)

	assert.Equal(t, "C (0점): PENDING", bundle.HireTitle)
	assert.Contains(t, bundle.HireBody, "요약:\n"+hireSummaryFiller)
	assert.Contains(t, bundle.HireBody, "장점:\n"+hireProsFiller)
	assert.Contains(t, bundle.HireBody, "단점:\n"+hireConsFiller)
	assert.Empty(t, bundle.RejectBlocks)
}

func TestSynthesizeTieKeepsInputOrder(t *testing.T) {
	records := []evaluation.CandidateRecord{
		record("low", "GEMINI", 60, evaluation.DecisionReject),
		record("first", "GEMINI", 88, evaluation.DecisionPending),
		record("second", "GEMINI", 88, evaluation.DecisionPending),
		record("third", "GEMINI", 88, evaluation.DecisionPending),
	}

	bundle, err := Synthesize(records, "GEMINI")
	require.NoError(t, err)

	assert.Equal(t, "first (88점): PENDING", bundle.HireTitle)
	require.Len(t, bundle.RejectBlocks, 3)
	assert.True(t, strings.HasPrefix(bundle.RejectBlocks[0], "second "))
	assert.True(t, strings.HasPrefix(bundle.RejectBlocks[1], "third "))
	assert.True(t, strings.HasPrefix(bundle.RejectBlocks[2], "low "))
}

func TestSynthesizeFallsBackToAllModels(t *testing.T) {
	records := []evaluation.CandidateRecord{
		record("A", "Y", 70, evaluation.DecisionReject),
		record("B", "Y", 85, evaluation.DecisionPending),
		record("C", "Y", 80, evaluation.DecisionReject),
	}

	bundle, err := Synthesize(records, "X")
	require.NoError(t, err)

	assert.Equal(t, "B (85점): PENDING", bundle.HireTitle)
	require.Len(t, bundle.RejectBlocks, 2)
	assert.True(t, strings.HasPrefix(bundle.RejectBlocks[0], "C (80점)"))
	assert.True(t, strings.HasPrefix(bundle.RejectBlocks[1], "A (70점)"))
}

func TestSynthesizePrefersPrimaryModel(t *testing.T) {
	records := []evaluation.CandidateRecord{
		record("A", "FLASH", 99, evaluation.DecisionHire),
		record("B", "GEMINI", 75, evaluation.DecisionHire),
		record("A", "GEMINI", 65, evaluation.DecisionReject),
	}

	bundle, err := Synthesize(records, "GEMINI")
	require.NoError(t, err)

	assert.Equal(t, "B (75점): HIRE", bundle.HireTitle)
	require.Len(t, bundle.RejectBlocks, 1)
	assert.True(t, strings.HasPrefix(bundle.RejectBlocks[0], "A (65점)"))
}

func TestSynthesizeDropsDuplicatesOfTopName(t *testing.T) {
	records := []evaluation.CandidateRecord{
		record("A", "GEMINI", 90, evaluation.DecisionHire),
		record("A", "GEMINI", 80, evaluation.DecisionHire),
		record("B", "GEMINI", 70, evaluation.DecisionReject),
	}

	bundle, err := Synthesize(records, "GEMINI")
	require.NoError(t, err)

	require.Len(t, bundle.RejectBlocks, 1)
	assert.True(t, strings.HasPrefix(bundle.RejectBlocks[0], "B (70점)"))
}

func TestSynthesizeEmptyInput(t *testing.T) {
	bundle, err := Synthesize(nil, "GEMINI")
	assert.Nil(t, bundle)
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	records := []evaluation.CandidateRecord{
		record("A", "GEMINI", 10, evaluation.DecisionReject),
		record("B", "GEMINI", 90, evaluation.DecisionHire),
	}

	ranked := Rank(records, "GEMINI")

	assert.Equal(t, "B", ranked[0].Name)
	assert.Equal(t, "A", records[0].Name)
}
