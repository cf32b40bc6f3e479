package session

import (
	"strings"
	"sync"
	"time"

	"ai-lecture-notes-be/internal/entity"

	"github.com/lithammer/shortuuid/v3"
)

type CaptureState string

const (
	CaptureIdle       CaptureState = "idle"
	CaptureListening  CaptureState = "listening"
	CaptureProcessing CaptureState = "processing"
)

// State is everything one student session owns. Components receive it by
// reference; every accessor copies so callers never alias internal slices.
type State struct {
	Id        string
	CreatedAt time.Time

	mu               sync.RWMutex
	resources        []entity.Resource
	preferences      entity.Preferences
	notes            *entity.NoteDocument
	notesGeneration  uint64
	transcript       string
	chat             []entity.ChatMessage
	capture          CaptureState
	questionInFlight bool
}

// Snapshot is a consistent read of the parts of State used to build prompts.
type Snapshot struct {
	Resources   []entity.Resource
	Preferences entity.Preferences
	Notes       *entity.NoteDocument
	Transcript  string
	// Generation changes every time the note document is replaced.
	Generation uint64
}

func New(id string) *State {
	return &State{
		Id:          id,
		CreatedAt:   time.Now(),
		preferences: entity.DefaultPreferences(),
		capture:     CaptureIdle,
	}
}

// NewResource validates the input and assigns a fresh id.
func NewResource(resourceType entity.ResourceType, title, content string) (entity.Resource, error) {
	if strings.TrimSpace(title) == "" {
		return entity.Resource{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(content) == "" {
		return entity.Resource{}, &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if resourceType == "" {
		resourceType = entity.ResourceTypePdf
	}

	return entity.Resource{
		Id:        shortuuid.New(),
		Type:      resourceType,
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}

func (s *State) AddResource(r entity.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = append(s.resources, r)
}

// RemoveResource drops the resource with id. Unknown ids are a no-op.
func (s *State) RemoveResource(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.resources {
		if r.Id == id {
			next := make([]entity.Resource, 0, len(s.resources)-1)
			next = append(next, s.resources[:i]...)
			s.resources = append(next, s.resources[i+1:]...)
			return true
		}
	}
	return false
}

func (s *State) Resources() []entity.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Resource(nil), s.resources...)
}

func (s *State) Preferences() entity.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferences.Clone()
}

func (s *State) SetPreferences(p entity.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = p.Clone()
}

// UpdatePreferences applies fn to a copy of the current profile and stores the result.
func (s *State) UpdatePreferences(fn func(entity.Preferences) entity.Preferences) entity.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences = fn(s.preferences.Clone()).Clone()
	return s.preferences.Clone()
}

// Notes returns the current document and the transcript it was built from.
// The document is never mutated after it is stored, so sharing the pointer is safe.
func (s *State) Notes() (*entity.NoteDocument, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes, s.transcript
}

func (s *State) HasNotes() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes != nil
}

// ReplaceNotes swaps in a new document and its transcript in one step.
// The chat history belongs to the previous document and is cleared.
func (s *State) ReplaceNotes(doc *entity.NoteDocument, transcript string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = doc
	s.notesGeneration++
	s.transcript = transcript
	s.chat = nil
}

func (s *State) Chat() []entity.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.ChatMessage(nil), s.chat...)
}

// BeginQuestion records the user's question and marks a question as in flight.
// It returns the snapshot the answer must be grounded on.
func (s *State) BeginQuestion(question string) (Snapshot, error) {
	if strings.TrimSpace(question) == "" {
		return Snapshot{}, &ValidationError{Field: "question", Reason: "must not be blank"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.notes == nil {
		return Snapshot{}, ErrNoNotes
	}
	if s.questionInFlight {
		return Snapshot{}, ErrQuestionInFlight
	}

	s.questionInFlight = true
	s.chat = append(s.chat, entity.ChatMessage{
		Role:      entity.ChatRoleUser,
		Content:   question,
		CreatedAt: time.Now(),
	})
	return s.snapshotLocked(), nil
}

// FinishQuestion appends the assistant reply and releases the in-flight flag.
// generation is the one returned by BeginQuestion. When the notes were
// replaced in the meantime the history has been reset, so the reply is not
// recorded and false is returned.
func (s *State) FinishQuestion(generation uint64, answer string) (entity.ChatMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := entity.ChatMessage{
		Role:      entity.ChatRoleAssistant,
		Content:   answer,
		CreatedAt: time.Now(),
	}
	s.questionInFlight = false
	if generation != s.notesGeneration {
		return msg, false
	}
	s.chat = append(s.chat, msg)
	return msg, true
}

func (s *State) QuestionInFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.questionInFlight
}

func (s *State) CaptureState() CaptureState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capture
}

// TransitionCapture moves from one capture state to another, failing with
// ErrCaptureBusy when the current state is not from.
func (s *State) TransitionCapture(from, to CaptureState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.capture != from {
		return ErrCaptureBusy
	}
	s.capture = to
	return nil
}

// ResetCapture forces the capture machine back to idle.
func (s *State) ResetCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capture = CaptureIdle
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Resources:   append([]entity.Resource(nil), s.resources...),
		Preferences: s.preferences.Clone(),
		Notes:       s.notes,
		Transcript:  s.transcript,
		Generation:  s.notesGeneration,
	}
}
