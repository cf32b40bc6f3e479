package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/mapper"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/internal/repository/contract"
	"ai-lecture-notes-be/pkg/events"
	"ai-lecture-notes-be/pkg/render"
	"ai-lecture-notes-be/pkg/session"
	"ai-lecture-notes-be/pkg/synthesis"
)

type NoteSynthesizer interface {
	Synthesize(ctx context.Context, st *session.State, transcript string) (*synthesis.Result, error)
}

type INoteService interface {
	Synthesize(ctx context.Context, sessionId string, req *dto.SynthesizeNotesRequest) (*dto.NotesResponse, error)
	Show(ctx context.Context, sessionId string) (*dto.NotesResponse, error)
	Markdown(ctx context.Context, sessionId string) (*dto.MarkdownNotesResponse, error)
	ExportPDF(ctx context.Context, sessionId string) ([]byte, string, error)
}

type noteService struct {
	sessionRepo      contract.SessionRepository
	synthesizer      NoteSynthesizer
	publisherService IPublisherService
	eventPublisher   events.Publisher
	mapper           *mapper.NoteMapper
	logger           logger.ILogger
}

func NewNoteService(
	sessionRepo contract.SessionRepository,
	synthesizer NoteSynthesizer,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) INoteService {
	return &noteService{
		sessionRepo:      sessionRepo,
		synthesizer:      synthesizer,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		mapper:           mapper.NewNoteMapper(),
		logger:           logger,
	}
}

// Synthesize builds notes right away from the library and an optional
// transcript. The session stays in processing until it returns, so no
// capture or second synthesis can start meanwhile.
func (s *noteService) Synthesize(ctx context.Context, sessionId string, req *dto.SynthesizeNotesRequest) (*dto.NotesResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	if err := st.TransitionCapture(session.CaptureIdle, session.CaptureProcessing); err != nil {
		return nil, err
	}
	s.notifyState(ctx, sessionId, session.CaptureProcessing)
	defer func() {
		st.ResetCapture()
		s.notifyState(ctx, sessionId, session.CaptureIdle)
	}()

	res, err := s.synthesizer.Synthesize(ctx, st, req.Transcript)
	if err != nil {
		return nil, err
	}

	notes := s.mapper.ToResultResponse(res)
	notify(ctx, s.publisherService, s.logger, dto.SessionEvent{
		Type:      dto.SessionEventNotesReady,
		SessionId: sessionId,
		Notes:     notes,
	})
	emit(ctx, s.eventPublisher, s.logger, synthesizedEvent(sessionId, res, "instant"))

	return notes, nil
}

func (s *noteService) notifyState(ctx context.Context, sessionId string, state session.CaptureState) {
	notify(ctx, s.publisherService, s.logger, dto.SessionEvent{
		Type:      dto.SessionEventState,
		SessionId: sessionId,
		State:     string(state),
	})
}

func (s *noteService) Show(ctx context.Context, sessionId string) (*dto.NotesResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	doc, transcript := st.Notes()
	if doc == nil {
		return nil, session.ErrNoNotes
	}
	return s.mapper.ToStoredResponse(doc, transcript), nil
}

func (s *noteService) Markdown(ctx context.Context, sessionId string) (*dto.MarkdownNotesResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	doc, _ := st.Notes()
	if doc == nil {
		return nil, session.ErrNoNotes
	}
	return &dto.MarkdownNotesResponse{Markdown: render.Markdown(doc)}, nil
}

// ExportPDF returns the rendered document and a download file name.
func (s *noteService) ExportPDF(ctx context.Context, sessionId string) ([]byte, string, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, "", err
	}
	doc, _ := st.Notes()
	if doc == nil {
		return nil, "", session.ErrNoNotes
	}

	var buf bytes.Buffer
	if err := render.PDF(&buf, doc); err != nil {
		s.logger.Error("NOTES", "PDF export failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, "", fmt.Errorf("export notes: %w", err)
	}

	fileName := fmt.Sprintf("lecture-notes-%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), fileName, nil
}

func synthesizedEvent(sessionId string, res *synthesis.Result, trigger string) events.BaseEvent {
	title := ""
	sections := 0
	if res.Notes != nil {
		title = res.Notes.Metadata.LectureTitle
		sections = len(res.Notes.Notes.Sections)
	}
	return events.New(events.NotesSynthesized, sessionId, map[string]interface{}{
		"mode":                 string(res.Mode),
		"trigger":              trigger,
		"lecture_title":        title,
		"section_count":        sections,
		"transcript_truncated": res.Context.TranscriptTruncated,
		"resources_truncated":  res.Context.ResourcesTruncated,
	})
}
