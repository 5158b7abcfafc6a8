package evaluation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"labeled", "...점수: 97...", 97},
		{"labeled with bold", "4. **점수**: 97", 97},
		{"labeled fullwidth colon", "점수：88", 88},
		{"labeled with spaces", "점수 :  5", 5},
		{"points unit", "좋은 후보입니다. 85점입니다.", 85},
		{"points unit with space", "총 70 점", 70},
		{"fraction", "overall 85/100", 85},
		{"fraction with spaces and code span", "`92` / 100", 92},
		{"labeled wins over fraction", "점수: 60 (85/100)", 60},
		{"out of range label falls back", "점수: 150\n총 90점", 90},
		{"out of range everywhere", "점수: 101", 0},
		{"four digits split", "1234점", 0},
		{"no digits", "훌륭한 후보", 0},
		{"empty", "", 0},
		{"zero is valid", "점수: 0", 0},
		{"hundred is valid", "100/100", 100},
		{"underscores stripped", "__75__ 점", 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractScore(tt.input))
		})
	}
}

func TestMatchScoreReportsDefault(t *testing.T) {
	_, ok := MatchScore("no numbers here")
	assert.False(t, ok)

	_, ok = MatchScore("점수: 999")
	assert.False(t, ok)

	v, ok := MatchScore("점수: 0")
	assert.True(t, ok)
	assert.Equal(t, 0, v)
}

func TestExtractScoreAlwaysInRange(t *testing.T) {
	inputs := []string{
		"999점", "점수: 500", "-5점", "1000/100", "점수: -1",
		strings.Repeat("9", 50) + "점",
		"점수:999 888점 777/100",
		"12345/100",
	}

	for _, in := range inputs {
		got := ExtractScore(in)
		assert.GreaterOrEqual(t, got, MinScore, "input %q", in)
		assert.LessOrEqual(t, got, MaxScore, "input %q", in)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-3))
	assert.Equal(t, 100, ClampScore(140))
	assert.Equal(t, 42, ClampScore(42))
}
