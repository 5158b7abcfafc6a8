package evaluation

import (
	"regexp"
	"strconv"
)

const (
	MinScore = 0
	MaxScore = 100
)

var (
	markupNoise = regexp.MustCompile("[*_`]")

	labeledScore  = regexp.MustCompile(`점수\s*[:：]\s*(\d{1,3})`)
	pointsScore   = regexp.MustCompile(`(\d{1,3})\s*점`)
	fractionScore = regexp.MustCompile(`(\d{1,3})\s*/\s*100`)
)

// scoreMatcher returns a candidate score and whether its pattern matched at all.
type scoreMatcher func(text string) (int, bool)

// scoreMatchers are tried in order; a later matcher only runs when every earlier one
// failed to produce an in-range value.
var scoreMatchers = []scoreMatcher{
	firstNumber(labeledScore),
	firstNumber(pointsScore),
	firstNumber(fractionScore),
}

func firstNumber(re *regexp.Regexp) scoreMatcher {
	return func(text string) (int, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return 0, false
		}
		v, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return v, true
	}
}

// ExtractScore recovers the interview score from free text, 0 when none is found.
func ExtractScore(text string) int {
	score, _ := MatchScore(text)
	return score
}

// MatchScore is ExtractScore that also reports whether a pattern produced the value.
func MatchScore(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	text = markupNoise.ReplaceAllString(text, "")
	for _, match := range scoreMatchers {
		if v, ok := match(text); ok && inRange(v) {
			return v, true
		}
	}

	return 0, false
}

// ClampScore forces a score into the valid range.
func ClampScore(v int) int {
	switch {
	case v < MinScore:
		return MinScore
	case v > MaxScore:
		return MaxScore
	default:
		return v
	}
}

func inRange(v int) bool {
	return v >= MinScore && v <= MaxScore
}
