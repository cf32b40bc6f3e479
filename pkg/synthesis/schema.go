package synthesis

import "ai-lecture-notes-be/pkg/llm"

func stringList() *llm.Schema {
	return &llm.Schema{Type: llm.TypeArray, Items: &llm.Schema{Type: llm.TypeString}}
}

// NoteDocumentSchema describes the structured output requested from the backend.
func NoteDocumentSchema() *llm.Schema {
	reference := &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"source_type":  {Type: llm.TypeString, Enum: []string{"pdf", "ppt", "video", "lecture"}},
			"source_title": {Type: llm.TypeString},
			"context":      {Type: llm.TypeString},
		},
	}

	section := &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"title":      {Type: llm.TypeString},
			"content":    {Type: llm.TypeString},
			"references": {Type: llm.TypeArray, Items: reference},
			"visual_aids": {
				Type: llm.TypeObject,
				Properties: map[string]*llm.Schema{
					"diagrams": stringList(),
					"tables":   {Type: llm.TypeArray, Items: stringList()},
				},
			},
		},
	}

	return &llm.Schema{
		Type: llm.TypeObject,
		Properties: map[string]*llm.Schema{
			"metadata": {
				Type: llm.TypeObject,
				Properties: map[string]*llm.Schema{
					"lecture_title":  {Type: llm.TypeString},
					"date":           {Type: llm.TypeString},
					"topics_covered": stringList(),
				},
			},
			"notes": {
				Type: llm.TypeObject,
				Properties: map[string]*llm.Schema{
					"sections": {Type: llm.TypeArray, Items: section},
				},
			},
			"summary": {
				Type: llm.TypeObject,
				Properties: map[string]*llm.Schema{
					"key_takeaways":     stringList(),
					"exam_focus_points": stringList(),
				},
			},
		},
	}
}
