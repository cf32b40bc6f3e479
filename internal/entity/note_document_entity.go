package entity

// NoteDocument is the structured result of a synthesis run.
// Any field may be missing in a generated document, so consumers must
// treat zero values and nil slices as empty rather than as errors.
type NoteDocument struct {
	Metadata NoteMetadata `json:"metadata"`
	Notes    NoteBody     `json:"notes"`
	Summary  NoteSummary  `json:"summary"`
}

type NoteMetadata struct {
	LectureTitle  string   `json:"lecture_title"`
	Date          string   `json:"date"`
	TopicsCovered []string `json:"topics_covered"`
}

type NoteBody struct {
	Sections []NoteSection `json:"sections"`
}

type NoteSection struct {
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	References []NoteReference `json:"references"`
	VisualAids *VisualAids     `json:"visual_aids,omitempty"`
}

type ReferenceSourceType string

const (
	SourceTypePdf     ReferenceSourceType = "pdf"
	SourceTypePpt     ReferenceSourceType = "ppt"
	SourceTypeVideo   ReferenceSourceType = "video"
	SourceTypeLecture ReferenceSourceType = "lecture"
)

type NoteReference struct {
	SourceType  ReferenceSourceType `json:"source_type"`
	SourceTitle string              `json:"source_title"`
	Context     string              `json:"context"`
}

// VisualAids tables are row-major; the first row is treated as the header.
type VisualAids struct {
	Diagrams []string   `json:"diagrams,omitempty"`
	Tables   [][]string `json:"tables,omitempty"`
}

type NoteSummary struct {
	KeyTakeaways    []string `json:"key_takeaways"`
	ExamFocusPoints []string `json:"exam_focus_points"`
}

// Diagrams returns the section diagrams, or nil when there are no visual aids.
func (s NoteSection) Diagrams() []string {
	if s.VisualAids == nil {
		return nil
	}
	return s.VisualAids.Diagrams
}

// Tables returns the section tables, or nil when there are no visual aids.
func (s NoteSection) Tables() [][]string {
	if s.VisualAids == nil {
		return nil
	}
	return s.VisualAids.Tables
}
