package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldRunID is the structured log field key for the evaluation run identifier.
	FieldRunID = "run_id"
	// FieldModel is the structured log field key for the evaluating model label.
	FieldModel = "ai_model"
	// FieldCandidate is the structured log field key for the candidate name.
	FieldCandidate = "candidate"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the fields that identify one evaluation: which model judged which candidate.
// Empty values are dropped.
func CommonFields(model, candidate string) []zap.Field {
	return StringFields(
		StringField{Key: FieldModel, Value: model},
		StringField{Key: FieldCandidate, Value: candidate},
	)
}

// WithCommonFields attaches the evaluation fields to the provided logger.
func WithCommonFields(logger *zap.Logger, model, candidate string) *zap.Logger {
	return WithFields(logger, CommonFields(model, candidate)...)
}
