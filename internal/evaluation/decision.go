package evaluation

import (
	"fmt"
	"strings"
)

// Decision is the categorical hiring outcome.
type Decision string

const (
	DecisionHire    Decision = "HIRE"
	DecisionReject  Decision = "REJECT"
	DecisionPending Decision = "PENDING"
)

var (
	hireKeywords   = []string{"HIRE", "채용", "합격"}
	rejectKeywords = []string{"REJECT", "불합격", "탈락"}
)

// ClassifyDecision maps evaluation text to a Decision.
//
// Hire keywords are checked first and win over reject keywords when both are present.
// Note that "불합격" contains "합격", so it resolves to HIRE as well.
func ClassifyDecision(text string) Decision {
	d, _ := MatchDecision(text)
	return d
}

// MatchDecision is ClassifyDecision that also reports whether any keyword matched.
func MatchDecision(text string) (Decision, bool) {
	upper := strings.ToUpper(text)

	if containsAny(upper, hireKeywords) {
		return DecisionHire, true
	}
	if containsAny(upper, rejectKeywords) {
		return DecisionReject, true
	}

	return DecisionPending, false
}

// ParseDecision reads a stored decision label, falling back to PENDING for anything unknown.
func ParseDecision(s string) Decision {
	switch d := Decision(strings.ToUpper(strings.TrimSpace(s))); d {
	case DecisionHire, DecisionReject, DecisionPending:
		return d
	default:
		return DecisionPending
	}
}

func (d Decision) String() string {
	return string(d)
}

// Validate returns an error for values outside the fixed set.
func (d Decision) Validate() error {
	switch d {
	case DecisionHire, DecisionReject, DecisionPending:
		return nil
	default:
		return fmt.Errorf("unknown decision %q", string(d))
	}
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
