package render

import (
	"strings"
	"unicode/utf8"

	"ai-lecture-notes-be/internal/entity"
)

type Style int

const (
	StyleTitle Style = iota
	StyleMeta
	StyleHeading
	StyleBody
	StyleBullet
	StyleTableRow
	StyleSpacer
)

type Line struct {
	Text  string
	Style Style
}

type PlacedLine struct {
	Line
	Y float64
}

type Page struct {
	Lines []PlacedLine
}

// PageSpec is in PDF points. A new page starts when the next line would
// pass Height - MarginBottom.
type PageSpec struct {
	Width        float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	WrapChars    int
}

// DefaultPageSpec is A4 portrait.
func DefaultPageSpec() PageSpec {
	return PageSpec{
		Width:        595.28,
		Height:       841.89,
		MarginTop:    56,
		MarginBottom: 56,
		MarginLeft:   56,
		WrapChars:    90,
	}
}

func LineHeight(s Style) float64 {
	switch s {
	case StyleTitle:
		return 28
	case StyleHeading:
		return 22
	case StyleMeta:
		return 16
	case StyleSpacer:
		return 8
	default:
		return 14
	}
}

func FontSize(s Style) float64 {
	switch s {
	case StyleTitle:
		return 20
	case StyleHeading:
		return 14
	case StyleMeta:
		return 10
	default:
		return 10.5
	}
}

// Layout flattens doc into lines and paginates them.
func Layout(doc *entity.NoteDocument, spec PageSpec) []Page {
	return Paginate(Lines(doc, spec.WrapChars), spec)
}

// Paginate assigns a vertical offset to every line, breaking pages when the
// running offset would exceed the page height threshold.
func Paginate(lines []Line, spec PageSpec) []Page {
	limit := spec.Height - spec.MarginBottom
	pages := []Page{{}}
	y := spec.MarginTop

	for _, line := range lines {
		h := LineHeight(line.Style)
		current := &pages[len(pages)-1]
		if y+h > limit && len(current.Lines) > 0 {
			pages = append(pages, Page{})
			current = &pages[len(pages)-1]
			y = spec.MarginTop
		}
		// spacers never open a page
		if line.Style == StyleSpacer && len(current.Lines) == 0 {
			continue
		}
		current.Lines = append(current.Lines, PlacedLine{Line: line, Y: y})
		y += h
	}
	return pages
}

// Lines turns doc into styled, wrapped lines in reading order.
func Lines(doc *entity.NoteDocument, wrap int) []Line {
	var out []Line
	add := func(style Style, text string) {
		for _, l := range wrapText(text, wrap) {
			out = append(out, Line{Text: l, Style: style})
		}
	}
	spacer := func() { out = append(out, Line{Style: StyleSpacer}) }

	add(StyleTitle, title(doc))
	if doc == nil {
		return out
	}

	meta := doc.Metadata.Date
	if len(doc.Metadata.TopicsCovered) > 0 {
		topics := "Topics: " + strings.Join(doc.Metadata.TopicsCovered, ", ")
		if meta != "" {
			meta += "  |  "
		}
		meta += topics
	}
	if meta != "" {
		add(StyleMeta, meta)
	}
	spacer()

	for _, section := range doc.Notes.Sections {
		if section.Title != "" {
			add(StyleHeading, section.Title)
		}
		for _, paragraph := range strings.Split(section.Content, "\n") {
			if strings.TrimSpace(paragraph) != "" {
				add(StyleBody, paragraph)
			}
		}
		for _, diagram := range section.Diagrams() {
			add(StyleBullet, "Diagram: "+diagram)
		}
		for _, row := range section.Tables() {
			add(StyleTableRow, strings.Join(row, " | "))
		}
		for _, ref := range section.References {
			text := "- " + ReferenceLabel(ref)
			if ref.Context != "" {
				text += ": " + ref.Context
			}
			add(StyleBullet, text)
		}
		spacer()
	}

	summary := func(heading string, items []string) {
		if len(items) == 0 {
			return
		}
		add(StyleHeading, heading)
		for _, item := range items {
			add(StyleBullet, "- "+item)
		}
		spacer()
	}
	summary("Key Takeaways", doc.Summary.KeyTakeaways)
	summary("Exam Focus Points", doc.Summary.ExamFocusPoints)

	return out
}

// wrapText breaks text on spaces into lines of at most width characters.
// Words longer than width are split.
func wrapText(text string, width int) []string {
	text = strings.TrimSpace(text)
	if width <= 0 || utf8.RuneCountInString(text) <= width {
		return []string{text}
	}

	var lines []string
	var current []rune
	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > width {
			if len(current) > 0 {
				lines = append(lines, string(current))
				current = nil
			}
			lines = append(lines, string(runes[:width]))
			runes = runes[width:]
		}
		if len(runes) == 0 {
			continue
		}

		switch {
		case len(current) == 0:
			current = append(current, runes...)
		case len(current)+1+len(runes) <= width:
			current = append(current, ' ')
			current = append(current, runes...)
		default:
			lines = append(lines, string(current))
			current = append([]rune(nil), runes...)
		}
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	return lines
}
