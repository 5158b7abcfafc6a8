package evaluation

import (
	"regexp"
	"strings"
)

// Sections holds the three narrative parts of an evaluation.
// Any field may be empty when the model skipped its label.
type Sections struct {
	Summary string `json:"summary" yaml:"summary"`
	Pros    string `json:"pros" yaml:"pros"`
	Cons    string `json:"cons" yaml:"cons"`
}

type sectionBoundary struct {
	label *regexp.Regexp
	next  *regexp.Regexp
}

var (
	summaryBoundary = sectionBoundary{
		label: regexp.MustCompile(`1\.\s*요약\s*:`),
		next:  regexp.MustCompile(`\n2\.\s*장점\s*:`),
	}
	prosBoundary = sectionBoundary{
		label: regexp.MustCompile(`2\.\s*장점\s*:`),
		next:  regexp.MustCompile(`\n3\.\s*단점\s*:`),
	}
	consBoundary = sectionBoundary{
		label: regexp.MustCompile(`3\.\s*단점\s*:`),
		next:  regexp.MustCompile(`\n4\.\s*점수\s*:`),
	}
)

// extract returns the text between the label and the following label,
// or up to the end of text when the following label is missing.
func (b sectionBoundary) extract(text string) (string, bool) {
	loc := b.label.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	body := text[loc[1]:]
	if end := b.next.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}

	return strings.TrimSpace(body), true
}

// ParseSections splits normalized evaluation text into summary, pros and cons.
// Every section is located independently, so a missing label only empties its own field.
func ParseSections(text string) Sections {
	sections, _ := parseSections(text)
	return sections
}

func parseSections(text string) (Sections, [3]bool) {
	var found [3]bool
	if text == "" {
		return Sections{}, found
	}

	var s Sections
	s.Summary, found[0] = summaryBoundary.extract(text)
	s.Pros, found[1] = prosBoundary.extract(text)
	s.Cons, found[2] = consBoundary.extract(text)

	return s, found
}

// IsEmpty reports whether no section carries text.
func (s Sections) IsEmpty() bool {
	return s.Summary == "" && s.Pros == "" && s.Cons == ""
}
