package service

import (
	"context"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/mapper"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/internal/repository/contract"
	"ai-lecture-notes-be/pkg/events"
	"ai-lecture-notes-be/pkg/qa"
	"ai-lecture-notes-be/pkg/session"
)

type QuestionAnswerer interface {
	Ask(ctx context.Context, st *session.State, question string) (*qa.Answer, error)
}

type IChatService interface {
	History(ctx context.Context, sessionId string) ([]dto.ChatMessageResponse, error)
	Ask(ctx context.Context, sessionId string, req *dto.AskQuestionRequest) (*dto.AskQuestionResponse, error)
}

type chatService struct {
	sessionRepo    contract.SessionRepository
	answerer       QuestionAnswerer
	eventPublisher events.Publisher
	mapper         *mapper.ChatMapper
	logger         logger.ILogger
}

func NewChatService(
	sessionRepo contract.SessionRepository,
	answerer QuestionAnswerer,
	eventPublisher events.Publisher,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		sessionRepo:    sessionRepo,
		answerer:       answerer,
		eventPublisher: eventPublisher,
		mapper:         mapper.NewChatMapper(),
		logger:         logger,
	}
}

func (s *chatService) History(ctx context.Context, sessionId string) ([]dto.ChatMessageResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToHistoryResponse(st.Chat()), nil
}

// Ask returns a reply even when generation fails; the reply then carries
// the failure message and Failed is set.
func (s *chatService) Ask(ctx context.Context, sessionId string, req *dto.AskQuestionRequest) (*dto.AskQuestionResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}

	answer, err := s.answerer.Ask(ctx, st, req.Question)
	if err != nil {
		return nil, err
	}

	emit(ctx, s.eventPublisher, s.logger, events.New(events.QuestionAnswered, sessionId, map[string]interface{}{
		"failed":         answer.Err != nil,
		"citation_count": len(answer.Citations),
	}))

	return s.mapper.ToAnswerResponse(answer), nil
}
