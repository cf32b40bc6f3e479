// Package budget reduces unbounded prompt inputs to fixed character ceilings.
//
// Lengths are measured in characters (runes), so truncation never splits a
// multi-byte sequence. Every function here is pure.
package budget

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"ai-lecture-notes-be/internal/entity"
)

const (
	SynthesisTranscriptMarker = "\n[...Transcript Truncated due to Length...]"
	QATranscriptMarker        = "... [Transcript Truncated]"
	ResourceMarker            = "... [Truncated]"
)

// Limits describes one use case. A zero ceiling disables that part.
type Limits struct {
	Transcript     int
	PerResource    int
	ResourcesTotal int
	Notes          int

	TranscriptMarker  string
	ResourceMarker    string
	ResourceSeparator string
	FormatResource    func(title, content string) string
}

// Context is the bounded material handed to prompt assembly.
type Context struct {
	Transcript string
	Resources  string
	Notes      string

	TranscriptTruncated bool
	ResourcesTruncated  bool
	NotesTruncated      bool
}

func SynthesisLimits() Limits {
	return Limits{
		Transcript:        1_500_000,
		PerResource:       300_000,
		ResourcesTotal:    1_500_000,
		TranscriptMarker:  SynthesisTranscriptMarker,
		ResourceMarker:    ResourceMarker,
		ResourceSeparator: "\n---\n",
		FormatResource: func(title, content string) string {
			return "Title: " + title + "\nContent: " + content
		},
	}
}

func QALimits() Limits {
	return Limits{
		Transcript:        1_000_000,
		PerResource:       200_000,
		ResourcesTotal:    1_000_000,
		Notes:             500_000,
		TranscriptMarker:  QATranscriptMarker,
		ResourceMarker:    ResourceMarker,
		ResourceSeparator: "\n\n",
		FormatResource: func(title, content string) string {
			return "[Resource: " + title + "] " + content
		},
	}
}

// WithCeilings returns a copy of l with the numeric ceilings replaced.
// Non-positive arguments keep the existing value.
func (l Limits) WithCeilings(transcript, perResource, resourcesTotal, notes int) Limits {
	if transcript > 0 {
		l.Transcript = transcript
	}
	if perResource > 0 {
		l.PerResource = perResource
	}
	if resourcesTotal > 0 {
		l.ResourcesTotal = resourcesTotal
	}
	if notes > 0 {
		l.Notes = notes
	}
	return l
}

// Build applies l to the inputs. notes may be nil.
func Build(transcript string, resources []entity.Resource, notes *entity.NoteDocument, l Limits) Context {
	var out Context

	out.Transcript, out.TranscriptTruncated = KeepSuffix(transcript, l.Transcript, l.TranscriptMarker)
	out.Resources, out.ResourcesTruncated = joinResources(resources, l)

	if notes != nil && l.Notes > 0 {
		out.Notes, out.NotesTruncated = KeepPrefix(SerializeNotes(notes), l.Notes, "")
	}
	return out
}

// SerializeNotes renders the document in its canonical compact JSON form.
func SerializeNotes(notes *entity.NoteDocument) string {
	raw, err := json.Marshal(notes)
	if err != nil {
		return ""
	}
	return string(raw)
}

func joinResources(resources []entity.Resource, l Limits) (string, bool) {
	if len(resources) == 0 {
		return "", false
	}

	format := l.FormatResource
	if format == nil {
		format = func(title, content string) string { return "[" + title + "] " + content }
	}

	truncated := false
	parts := make([]string, 0, len(resources))
	for _, r := range resources {
		content, cut := KeepPrefix(r.Content, l.PerResource, l.ResourceMarker)
		truncated = truncated || cut
		parts = append(parts, format(r.Title, content))
	}

	joined, cut := KeepPrefix(strings.Join(parts, l.ResourceSeparator), l.ResourcesTotal, "")
	return joined, truncated || cut
}

// KeepSuffix keeps the last max characters of s and appends marker when s is
// longer than max. max <= 0 means unlimited.
func KeepSuffix(s string, max int, marker string) (string, bool) {
	if !exceeds(s, max) {
		return s, false
	}
	n := utf8.RuneCountInString(s)
	return s[byteOffset(s, n-max):] + marker, true
}

// KeepPrefix keeps the first max characters of s and appends marker when s is
// longer than max. max <= 0 means unlimited.
func KeepPrefix(s string, max int, marker string) (string, bool) {
	if !exceeds(s, max) {
		return s, false
	}
	return s[:byteOffset(s, max)] + marker, true
}

func exceeds(s string, max int) bool {
	if max <= 0 || len(s) <= max {
		return false
	}
	return utf8.RuneCountInString(s) > max
}

// byteOffset returns the byte index of the rune at position runeIndex.
func byteOffset(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	i := 0
	for offset := range s {
		if i == runeIndex {
			return offset
		}
		i++
	}
	return len(s)
}
