package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/interview-ranker/internal/ai"
	"github.com/spigell/interview-ranker/internal/evaluation"
	"github.com/spigell/interview-ranker/internal/ingest"
)

type fakeEvaluator struct {
	label     string
	nilFor    map[string]bool
	responses map[string]string
	failFor   map[string]error

	mu    sync.Mutex
	calls []string
}

func (f *fakeEvaluator) Label() string { return f.label }

func (f *fakeEvaluator) Evaluate(_ context.Context, transcript string) (*ai.Evaluation, error) {
	f.mu.Lock()
	f.calls = append(f.calls, transcript)
	f.mu.Unlock()

	if err, ok := f.failFor[transcript]; ok {
		return nil, err
	}
	if f.nilFor[transcript] {
		return nil, nil
	}
	return &ai.Evaluation{Text: f.responses[transcript], Latency: 1500 * time.Millisecond}, nil
}

var candidates = []ingest.Candidate{
	{Name: "김철수", Transcript: "t1"},
	{Name: "이영희", Transcript: "t2"},
}

func TestRunEvaluatesEveryPair(t *testing.T) {
	gemini := &fakeEvaluator{label: "GEMINI", responses: map[string]string{
		"t1": "1. 요약: 강함\n2. 장점: 설계\n3. 단점: 없음\n4. 점수: 92\n5. 판정: HIRE",
		"t2": "점수: 80\n판정: REJECT",
	}}
	gemma := &fakeEvaluator{label: "GEMMA", responses: map[string]string{
		"t1": "88점, REJECT",
		"t2": "70/100 REJECT",
	}}

	core, logs := observer.New(zapcore.InfoLevel)

	res, err := Run(context.Background(), Config{Concurrency: 2}, candidates, []ai.Evaluator{gemini, gemma}, zap.New(core))
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	require.NoError(t, err)
	assert.Zero(t, res.Failures)

	require.Len(t, res.Records, 4)
	got := make([][2]string, 0, len(res.Records))
	for _, rec := range res.Records {
		got = append(got, [2]string{rec.Name, rec.Model})
	}
	assert.Equal(t, [][2]string{
		{"김철수", "GEMINI"}, {"김철수", "GEMMA"},
		{"이영희", "GEMINI"}, {"이영희", "GEMMA"},
	}, got)

	first := res.Records[0]
	assert.Equal(t, 92, first.Score)
	assert.Equal(t, evaluation.DecisionHire, first.Decision)
	assert.Equal(t, "강함", first.Sections.Summary)
	assert.InDelta(t, 1.5, first.LatencySeconds, 1e-9)

	assert.Equal(t, 88, res.Records[1].Score)
	assert.Equal(t, 70, res.Records[3].Score)

	assert.Len(t, logs.FilterMessage("candidate evaluated").All(), 4)
	summary := logs.FilterMessage("evaluation completed").All()
	require.Len(t, summary, 1)
	assert.Equal(t, res.RunID, summary[0].ContextMap()["run_id"])
}

func TestRunAbsorbsFailures(t *testing.T) {
	eval := &fakeEvaluator{
		label:     "GEMINI",
		responses: map[string]string{"t2": "점수: 86 HIRE"},
		failFor:   map[string]error{"t1": errors.New("quota exceeded")},
	}

	core, logs := observer.New(zapcore.WarnLevel)

	res, err := Run(context.Background(), Config{}, candidates, []ai.Evaluator{eval}, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Failures)
	require.Len(t, res.Records, 2)

	failed := res.Records[0]
	assert.Equal(t, "김철수", failed.Name)
	assert.Equal(t, "GEMINI", failed.Model)
	assert.Empty(t, failed.RawText)
	assert.Zero(t, failed.Score)
	assert.Equal(t, evaluation.DecisionPending, failed.Decision)
	assert.Zero(t, failed.LatencySeconds)

	assert.Equal(t, 86, res.Records[1].Score)

	warnings := logs.FilterMessage("AI evaluation failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "김철수", warnings[0].ContextMap()["candidate"])
}

func TestRunRequiresEvaluators(t *testing.T) {
	_, err := Run(context.Background(), Config{}, candidates, nil, nil)
	assert.Error(t, err)
}

func TestRunWithoutCandidates(t *testing.T) {
	res, err := Run(context.Background(), Config{}, nil, []ai.Evaluator{&fakeEvaluator{label: "GEMINI"}}, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Records)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eval := &fakeEvaluator{label: "GEMINI"}
	_, err := Run(ctx, Config{}, candidates, []ai.Evaluator{eval}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunTreatsMissingResultAsFailure(t *testing.T) {
	eval := &fakeEvaluator{
		label:     "GEMINI",
		responses: map[string]string{"t2": "점수: 75 REJECT"},
		nilFor:    map[string]bool{"t1": true},
	}

	core, logs := observer.New(zapcore.WarnLevel)

	res, err := Run(context.Background(), Config{}, candidates, []ai.Evaluator{eval}, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Failures)
	require.Len(t, res.Records, 2)
	assert.Equal(t, evaluation.DecisionPending, res.Records[0].Decision)
	assert.Zero(t, res.Records[0].Score)
	assert.Equal(t, 75, res.Records[1].Score)

	warnings := logs.FilterMessage("AI evaluation failed").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "evaluator returned no result", warnings[0].ContextMap()["error"])
}
