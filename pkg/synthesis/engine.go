// Package synthesis turns a transcript and a resource library into a
// structured note document.
package synthesis

import (
	"context"
	"strings"
	"time"

	"ai-lecture-notes-be/internal/entity"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/pkg/budget"
	"ai-lecture-notes-be/pkg/llm"
	"ai-lecture-notes-be/pkg/session"
)

const module = "SYNTHESIS"

// Result is what a successful run stored on the session.
type Result struct {
	Notes      *entity.NoteDocument
	Transcript string
	Mode       Mode
	Context    budget.Context
}

type Engine struct {
	provider llm.LLMProvider
	limits   budget.Limits
	timeout  time.Duration
	logger   logger.ILogger
}

func NewEngine(provider llm.LLMProvider, limits budget.Limits, timeout time.Duration, logger logger.ILogger) *Engine {
	return &Engine{
		provider: provider,
		limits:   limits,
		timeout:  timeout,
		logger:   logger,
	}
}

// ResolveMode picks the prompt mode, rejecting input with nothing to work from.
func ResolveMode(transcript string, resources []entity.Resource) (Mode, error) {
	if strings.TrimSpace(transcript) != "" {
		return ModeLecture, nil
	}
	if len(resources) > 0 {
		return ModeResourcesOnly, nil
	}
	return "", &session.ValidationError{Field: "input", Reason: "a transcript or at least one resource is required"}
}

// Synthesize builds notes from transcript plus the session's resources and
// preferences. On success the notes and the budgeted transcript replace the
// session's current ones in a single step; on failure the session is unchanged.
func (e *Engine) Synthesize(ctx context.Context, st *session.State, transcript string) (*Result, error) {
	snap := st.Snapshot()

	mode, err := ResolveMode(transcript, snap.Resources)
	if err != nil {
		return nil, err
	}

	budgeted := budget.Build(transcript, snap.Resources, nil, e.limits)
	if mode == ModeResourcesOnly {
		budgeted.Transcript = ""
	}
	prompt := NewPromptBuilder(mode, budgeted, snap.Preferences).Build()

	e.logger.Info(module, "Starting note synthesis", map[string]interface{}{
		"session_id":           st.Id,
		"mode":                 mode,
		"resources":            len(snap.Resources),
		"prompt_chars":         len(prompt),
		"transcript_truncated": budgeted.TranscriptTruncated,
		"resources_truncated":  budgeted.ResourcesTruncated,
	})

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.provider.Generate(ctx, prompt, llm.WithResponseSchema(NoteDocumentSchema()))
	if err != nil {
		return nil, e.fail(st.Id, err)
	}

	doc, err := ParseNoteDocument(raw)
	if err != nil {
		return nil, e.fail(st.Id, err)
	}

	st.ReplaceNotes(doc, budgeted.Transcript)

	e.logger.Info(module, "Notes synthesized", map[string]interface{}{
		"session_id": st.Id,
		"title":      doc.Metadata.LectureTitle,
		"sections":   len(doc.Notes.Sections),
	})

	return &Result{
		Notes:      doc,
		Transcript: budgeted.Transcript,
		Mode:       mode,
		Context:    budgeted,
	}, nil
}

func (e *Engine) fail(sessionID string, cause error) error {
	reqErr := &RequestError{Cause: cause}
	e.logger.Error(module, "Note synthesis failed", map[string]interface{}{
		"session_id": sessionID,
		"error":      cause.Error(),
	})
	return reqErr
}
