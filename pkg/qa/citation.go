package qa

import (
	"regexp"
	"strings"
)

type CitationKind string

const (
	CitationLecture  CitationKind = "lecture"
	CitationNotes    CitationKind = "notes"
	CitationResource CitationKind = "resource"
)

// Citation is one provenance tag found in an answer.
type Citation struct {
	Kind   CitationKind `json:"kind"`
	Target string       `json:"target,omitempty"`
	Raw    string       `json:"raw"`
}

// [Lecture], [Notes: Section], [Resource: Title]
var citationPattern = regexp.MustCompile(`\[(Lecture|Notes|Resource)(?::\s*([^\]]+))?\]`)

// ParseCitations lists the tags in answer in order of appearance, without duplicates.
// The answer text itself is never modified.
func ParseCitations(answer string) []Citation {
	matches := citationPattern.FindAllStringSubmatch(answer, -1)
	out := make([]Citation, 0, len(matches))
	seen := make(map[string]bool, len(matches))

	for _, match := range matches {
		c := Citation{
			Kind:   CitationKind(strings.ToLower(match[1])),
			Target: strings.TrimSpace(match[2]),
			Raw:    match[0],
		}
		// [Notes] and [Resource] without a target are not valid tags
		if c.Kind != CitationLecture && c.Target == "" {
			continue
		}
		key := string(c.Kind) + "|" + c.Target
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
