// Package render presents a note document for reading and export.
// Every field of the document is optional; missing parts are skipped.
package render

import (
	"strings"

	"ai-lecture-notes-be/internal/entity"
)

const untitled = "Untitled Lecture"

func title(doc *entity.NoteDocument) string {
	if doc == nil || strings.TrimSpace(doc.Metadata.LectureTitle) == "" {
		return untitled
	}
	return doc.Metadata.LectureTitle
}

// Markdown renders doc as a markdown document.
func Markdown(doc *entity.NoteDocument) string {
	var sb strings.Builder

	sb.WriteString("# " + title(doc) + "\n\n")
	if doc == nil {
		return sb.String()
	}

	if doc.Metadata.Date != "" {
		sb.WriteString("_" + doc.Metadata.Date + "_\n\n")
	}
	if len(doc.Metadata.TopicsCovered) > 0 {
		tags := make([]string, len(doc.Metadata.TopicsCovered))
		for i, topic := range doc.Metadata.TopicsCovered {
			tags[i] = "`#" + topic + "`"
		}
		sb.WriteString(strings.Join(tags, " ") + "\n\n")
	}

	for _, section := range doc.Notes.Sections {
		writeSection(&sb, section)
	}

	writeList(&sb, "Key Takeaways", doc.Summary.KeyTakeaways)
	writeList(&sb, "Exam Focus Points", doc.Summary.ExamFocusPoints)

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeSection(sb *strings.Builder, section entity.NoteSection) {
	if section.Title != "" {
		sb.WriteString("## " + section.Title + "\n\n")
	}
	if section.Content != "" {
		sb.WriteString(section.Content + "\n\n")
	}

	for _, diagram := range section.Diagrams() {
		sb.WriteString("> Diagram: " + diagram + "\n\n")
	}
	writeTable(sb, section.Tables())

	if len(section.References) > 0 {
		sb.WriteString("**References**\n\n")
		for _, ref := range section.References {
			sb.WriteString("- " + ReferenceLabel(ref))
			if ref.Context != "" {
				sb.WriteString(": " + ref.Context)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
}

// ReferenceLabel formats a reference as "[PDF] Title".
func ReferenceLabel(ref entity.NoteReference) string {
	kind := strings.ToUpper(string(ref.SourceType))
	if kind == "" {
		kind = "SOURCE"
	}
	if ref.SourceTitle == "" {
		return "[" + kind + "]"
	}
	return "[" + kind + "] " + ref.SourceTitle
}

// writeTable treats the first row as the header. Short rows are padded.
func writeTable(sb *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return
	}

	writeRow := func(row []string) {
		cells := make([]string, width)
		for i := range cells {
			if i < len(row) {
				cells[i] = strings.ReplaceAll(row[i], "|", "\\|")
			}
		}
		sb.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	writeRow(rows[0])
	sb.WriteString("|" + strings.Repeat(" --- |", width) + "\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}
	sb.WriteString("\n")
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("## " + heading + "\n\n")
	for _, item := range items {
		sb.WriteString("- " + item + "\n")
	}
	sb.WriteString("\n")
}
