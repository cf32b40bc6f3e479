package synthesis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ai-lecture-notes-be/internal/entity"
)

var ErrEmptyResponse = errors.New("empty response from model")

// ParseNoteDocument reads a generated document. Only unparseable text or a
// non-object top level is rejected; every missing or mistyped field becomes
// its zero value.
func ParseNoteDocument(raw string) (*entity.NoteDocument, error) {
	cleaned := stripCodeFence([]byte(raw))
	if len(cleaned) == 0 {
		return nil, ErrEmptyResponse
	}

	var decoded any
	if err := json.Unmarshal(cleaned, &decoded); err != nil {
		return nil, fmt.Errorf("parse notes json: %w", err)
	}
	root, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parse notes json: expected object, got %T", decoded)
	}

	metadata := object(root["metadata"])
	summary := object(root["summary"])

	return &entity.NoteDocument{
		Metadata: entity.NoteMetadata{
			LectureTitle:  text(metadata["lecture_title"]),
			Date:          text(metadata["date"]),
			TopicsCovered: textList(metadata["topics_covered"]),
		},
		Notes: entity.NoteBody{
			Sections: sections(root["notes"]),
		},
		Summary: entity.NoteSummary{
			KeyTakeaways:    textList(summary["key_takeaways"]),
			ExamFocusPoints: textList(summary["exam_focus_points"]),
		},
	}, nil
}

func stripCodeFence(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```JSON"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}

// sections accepts {"sections": [...]} and also a bare array.
func sections(v any) []entity.NoteSection {
	items, ok := v.([]any)
	if !ok {
		items = list(object(v)["sections"])
	}

	out := make([]entity.NoteSection, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		section := entity.NoteSection{
			Title:      text(m["title"]),
			Content:    text(m["content"]),
			References: references(m["references"]),
		}
		if aids, ok := m["visual_aids"].(map[string]any); ok {
			section.VisualAids = &entity.VisualAids{
				Diagrams: textList(aids["diagrams"]),
				Tables:   tables(aids["tables"]),
			}
		}
		out = append(out, section)
	}
	return out
}

func references(v any) []entity.NoteReference {
	items := list(v)
	out := make([]entity.NoteReference, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, entity.NoteReference{
			SourceType:  entity.ReferenceSourceType(strings.ToLower(strings.TrimSpace(text(m["source_type"])))),
			SourceTitle: text(m["source_title"]),
			Context:     text(m["context"]),
		})
	}
	return out
}

func tables(v any) [][]string {
	rows := list(v)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, textList(row))
	}
	return out
}

func object(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func list(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

// textList keeps scalars, wraps a lone string, and drops nested structures.
func textList(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			switch item.(type) {
			case nil, map[string]any, []any:
				continue
			}
			out = append(out, text(item))
		}
		return out
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}

func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
