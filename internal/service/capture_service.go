package service

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/mapper"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/internal/repository/contract"
	"ai-lecture-notes-be/pkg/audio"
	"ai-lecture-notes-be/pkg/capture"
	"ai-lecture-notes-be/pkg/events"
	"ai-lecture-notes-be/pkg/session"
	"ai-lecture-notes-be/pkg/synthesis"
	"ai-lecture-notes-be/pkg/transcription"
)

type ICaptureService interface {
	Start(ctx context.Context, sessionId string, source audio.Source) error
	Stop(ctx context.Context, sessionId string) (*dto.NotesResponse, error)
	Transcript(ctx context.Context, sessionId string) (string, error)
}

// captureService keeps one recorder per session and relays recorder
// callbacks to websocket clients and the event bus.
type captureService struct {
	sessionRepo      contract.SessionRepository
	transcriber      transcription.Transcriber
	synthesizer      NoteSynthesizer
	publisherService IPublisherService
	eventPublisher   events.Publisher
	config           capture.Config
	mapper           *mapper.NoteMapper
	logger           logger.ILogger

	mu        sync.Mutex
	recorders map[string]*capture.Recorder
}

func NewCaptureService(
	sessionRepo contract.SessionRepository,
	transcriber transcription.Transcriber,
	synthesizer NoteSynthesizer,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	config capture.Config,
	logger logger.ILogger,
) ICaptureService {
	s := &captureService{
		sessionRepo:      sessionRepo,
		transcriber:      transcriber,
		synthesizer:      synthesizer,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		config:           config,
		mapper:           mapper.NewNoteMapper(),
		logger:           logger,
		recorders:        make(map[string]*capture.Recorder),
	}
	sessionRepo.OnEvict(s.discard)
	return s
}

func (s *captureService) recorder(st *session.State) *capture.Recorder {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recorders[st.Id]
	if !ok {
		rec = capture.NewRecorder(st, s.transcriber, s.synthesizer, s, s.config, s.logger)
		s.recorders[st.Id] = rec
	}
	return rec
}

func (s *captureService) Start(ctx context.Context, sessionId string, source audio.Source) error {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return err
	}
	return s.recorder(st).Start(ctx, source)
}

// Stop returns nil notes when no capture was running.
func (s *captureService) Stop(ctx context.Context, sessionId string) (*dto.NotesResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	res, err := s.recorder(st).Stop(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResultResponse(res), nil
}

func (s *captureService) Transcript(ctx context.Context, sessionId string) (string, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return "", err
	}
	return s.recorder(st).Transcript(), nil
}

// discard runs when a session leaves the repository.
func (s *captureService) discard(sessionId string) {
	s.mu.Lock()
	rec, ok := s.recorders[sessionId]
	delete(s.recorders, sessionId)
	s.mu.Unlock()

	if ok {
		go rec.Abort()
	}
}

func (s *captureService) OnFragment(sessionId, text string) {
	notify(context.Background(), s.publisherService, s.logger, dto.SessionEvent{
		Type:      dto.SessionEventTranscript,
		SessionId: sessionId,
		Text:      text,
	})
}

func (s *captureService) OnStateChange(sessionId string, state session.CaptureState) {
	ctx := context.Background()
	notify(ctx, s.publisherService, s.logger, dto.SessionEvent{
		Type:      dto.SessionEventState,
		SessionId: sessionId,
		State:     string(state),
	})

	if state == session.CaptureIdle {
		transcriptChars := 0
		s.mu.Lock()
		rec, ok := s.recorders[sessionId]
		s.mu.Unlock()
		if ok {
			transcriptChars = utf8.RuneCountInString(rec.Transcript())
		}
		emit(ctx, s.eventPublisher, s.logger, events.New(events.CaptureEnded, sessionId, map[string]interface{}{
			"transcript_chars": transcriptChars,
		}))
	}
}

func (s *captureService) OnNotes(sessionId string, res *synthesis.Result) {
	ctx := context.Background()
	notify(ctx, s.publisherService, s.logger, dto.SessionEvent{
		Type:      dto.SessionEventNotesReady,
		SessionId: sessionId,
		Notes:     s.mapper.ToResultResponse(res),
	})
	emit(ctx, s.eventPublisher, s.logger, synthesizedEvent(sessionId, res, "capture"))
}

func (s *captureService) OnError(sessionId string, err error) {
	message := err.Error()
	var reqErr *synthesis.RequestError
	if errors.As(err, &reqErr) {
		message = reqErr.UserMessage()
	}
	notify(context.Background(), s.publisherService, s.logger, dto.SessionEvent{
		Type:      dto.SessionEventError,
		SessionId: sessionId,
		Message:   message,
	})
}
