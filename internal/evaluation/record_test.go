package evaluation

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractWellFormed(t *testing.T) {
	raw := "1. 요약: 문제 해결\n2. 장점: 빠름\n3. 단점: 없음\n4. 점수: 92\n5. 판정: HIRE"

	rec := Extract("김철수", "GEMINI", raw, 1.25)

	assert.Equal(t, "김철수", rec.Name)
	assert.Equal(t, "GEMINI", rec.Model)
	assert.Equal(t, raw, rec.RawText)
	assert.Equal(t, Sections{Summary: "문제 해결", Pros: "빠름", Cons: "없음"}, rec.Sections)
	assert.Equal(t, 92, rec.Score)
	assert.Equal(t, DecisionHire, rec.Decision)
	assert.Equal(t, 1.25, rec.LatencySeconds)
	assert.Equal(t, Confidence{Summary: true, Pros: true, Cons: true, Score: true, Decision: true}, rec.Confidence)
}

func TestExtractPointsWithoutDecision(t *testing.T) {
	rec := Extract("이영희", "GEMINI", "좋은 후보입니다. 85점입니다.", 0.5)

	assert.Equal(t, 85, rec.Score)
	assert.Equal(t, DecisionPending, rec.Decision)
	assert.True(t, rec.Sections.IsEmpty())
	assert.True(t, rec.Confidence.Score)
	assert.False(t, rec.Confidence.Decision)
}

func TestExtractEmptyText(t *testing.T) {
	rec := Extract("박민수", "GEMINI", "", 0)

	assert.Equal(t, Sections{}, rec.Sections)
	assert.Equal(t, 0, rec.Score)
	assert.Equal(t, DecisionPending, rec.Decision)
	assert.Equal(t, Confidence{}, rec.Confidence)
}

func TestExtractMarkdownNoise(t *testing.T) {
	raw := "**1. 요약:** 구조적 사고\r\n- **2. 장점:** 실행력\r\n- **3. 단점:** 경험 부족\r\n**4. 점수:** 88\r\n**5. 판정:** REJECT"

	rec := Extract("A", "GEMINI", raw, 0)

	assert.Equal(t, "구조적 사고", rec.Sections.Summary)
	assert.Equal(t, "실행력", rec.Sections.Pros)
	assert.Equal(t, "경험 부족", rec.Sections.Cons)
	assert.Equal(t, 88, rec.Score)
	assert.Equal(t, DecisionReject, rec.Decision)
}

func TestExtractClampsLatency(t *testing.T) {
	assert.Equal(t, 0.0, Extract("A", "M", "", -2).LatencySeconds)
	assert.Equal(t, 0.0, Extract("A", "M", "", math.NaN()).LatencySeconds)
}

func TestExtractAllKeepsOrder(t *testing.T) {
	inputs := make([]RawEvaluation, 0, 20)
	for i := 0; i < 20; i++ {
		inputs = append(inputs, RawEvaluation{
			Name:  fmt.Sprintf("c%02d", i),
			Model: "GEMINI",
			Text:  fmt.Sprintf("점수: %d", i*5),
		})
	}

	records, err := ExtractAll(context.Background(), inputs, 3)
	require.NoError(t, err)
	require.Len(t, records, len(inputs))

	for i, rec := range records {
		assert.Equal(t, inputs[i].Name, rec.Name)
		assert.Equal(t, i*5, rec.Score)
	}
}

func TestExtractAllEmpty(t *testing.T) {
	records, err := ExtractAll(context.Background(), nil, 4)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExtractAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ExtractAll(ctx, []RawEvaluation{{Name: "a"}}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
