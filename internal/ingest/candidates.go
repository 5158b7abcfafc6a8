// Package ingest reads interview transcripts and splits them into candidates.
package ingest

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const separator = ":"

// Candidate is one interview transcript to evaluate.
type Candidate struct {
	Name       string `mapstructure:"name"`
	Transcript string `mapstructure:"transcript"`
}

// MalformedLine describes an input line that was skipped.
type MalformedLine struct {
	Line   int
	Reason string
}

func (m MalformedLine) String() string {
	return fmt.Sprintf("line %d: %s", m.Line, m.Reason)
}

// ParseCandidates splits a raw block into candidates, one per line, as "name: transcript".
// Blank lines are ignored. Lines without the separator or with an empty half are skipped
// and reported.
func ParseCandidates(raw string) ([]Candidate, []MalformedLine) {
	var (
		candidates []Candidate
		skipped    []MalformedLine
	)

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	for i, line := range strings.Split(raw, "\n") {
		n := i + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, content, ok := strings.Cut(line, separator)
		if !ok {
			skipped = append(skipped, MalformedLine{Line: n, Reason: "missing separator"})
			continue
		}

		name = strings.TrimSpace(name)
		content = strings.TrimSpace(content)
		if name == "" || content == "" {
			skipped = append(skipped, MalformedLine{Line: n, Reason: "empty name or transcript"})
			continue
		}

		candidates = append(candidates, Candidate{Name: name, Transcript: content})
	}

	return candidates, skipped
}

// ParseStructured reads a JSON or YAML list of {name, transcript} objects.
// Values are weakly typed so numeric names are accepted; entries with an empty field are skipped.
func ParseStructured(data []byte) ([]Candidate, []MalformedLine, error) {
	var items []map[string]any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, nil, fmt.Errorf("decode candidates list: %w", err)
	}

	var (
		candidates []Candidate
		skipped    []MalformedLine
	)

	for i, item := range items {
		var c Candidate
		if err := mapstructure.WeakDecode(item, &c); err != nil {
			skipped = append(skipped, MalformedLine{Line: i + 1, Reason: err.Error()})
			continue
		}

		c.Name = strings.TrimSpace(c.Name)
		c.Transcript = strings.TrimSpace(c.Transcript)
		if c.Name == "" || c.Transcript == "" {
			skipped = append(skipped, MalformedLine{Line: i + 1, Reason: "empty name or transcript"})
			continue
		}

		candidates = append(candidates, c)
	}

	return candidates, skipped, nil
}
