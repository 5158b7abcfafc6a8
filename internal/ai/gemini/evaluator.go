package gemini

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spigell/interview-ranker/internal/ai"
	"github.com/spigell/interview-ranker/internal/logger"
	"github.com/spigell/interview-ranker/internal/utils"
)

//go:embed prompt.md
var systemPrompt string

const (
	transcriptHeader    = "[면접 내용]\n"
	defaultMaxLogLength = 200
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// Evaluator asks Gemini for a structured interview assessment.
type Evaluator struct {
	generator    contentGenerator
	label        string
	limiter      *rate.Limiter
	maxLogLength int
	logger       *zap.Logger
	now          func() time.Time
}

var _ ai.Evaluator = (*Evaluator)(nil)

// NewEvaluator wraps generator under label. A non-positive requestsPerMinute disables throttling.
func NewEvaluator(generator contentGenerator, label string, requestsPerMinute, maxLogLength int, log *zap.Logger) *Evaluator {
	limit := rate.Inf
	if requestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(requestsPerMinute))
	}

	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Evaluator{
		generator:    generator,
		label:        strings.TrimSpace(label),
		limiter:      rate.NewLimiter(limit, 1),
		maxLogLength: maxLogLength,
		logger:       logger.WithFields(log, zap.String(logger.FieldModel, label)),
		now:          time.Now,
	}
}

func (e *Evaluator) Label() string {
	return e.label
}

// Evaluate sends the transcript under the fixed evaluation prompt. Latency covers the model call only,
// not the time spent waiting for the rate limiter.
func (e *Evaluator) Evaluate(ctx context.Context, transcript string) (*ai.Evaluation, error) {
	if e == nil || e.generator == nil {
		return nil, errors.New("gemini evaluator is not initialized")
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, errors.New("transcript must not be empty")
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	e.logger.Debug("requesting evaluation",
		zap.String("transcript", utils.TruncateForLog(transcript, e.maxLogLength)),
	)

	start := e.now()
	text, err := e.generator.GenerateContent(ctx, systemPrompt, transcriptHeader+transcript)
	latency := e.now().Sub(start).Round(time.Millisecond)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("evaluation received",
		zap.Duration("latency", latency),
		zap.String("response", utils.TruncateForLog(text, e.maxLogLength)),
	)

	return &ai.Evaluation{Text: text, Latency: latency}, nil
}
