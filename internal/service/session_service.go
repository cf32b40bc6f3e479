package service

import (
	"context"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/repository/contract"
)

type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	Show(ctx context.Context, id string) (*dto.ShowSessionResponse, error)
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	sessionRepo contract.SessionRepository
}

func NewSessionService(sessionRepo contract.SessionRepository) ISessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
	}
}

func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	st := s.sessionRepo.Create()
	return &dto.CreateSessionResponse{
		Id:        st.Id,
		CreatedAt: st.CreatedAt,
	}, nil
}

func (s *sessionService) Show(ctx context.Context, id string) (*dto.ShowSessionResponse, error) {
	st, err := s.sessionRepo.Get(id)
	if err != nil {
		return nil, err
	}

	return &dto.ShowSessionResponse{
		Id:               st.Id,
		CaptureState:     string(st.CaptureState()),
		ResourceCount:    len(st.Resources()),
		HasNotes:         st.HasNotes(),
		ChatLength:       len(st.Chat()),
		QuestionInFlight: st.QuestionInFlight(),
		CreatedAt:        st.CreatedAt,
	}, nil
}

// Delete discards the session. Eviction hooks release any running capture.
func (s *sessionService) Delete(ctx context.Context, id string) error {
	if _, err := s.sessionRepo.Get(id); err != nil {
		return err
	}
	s.sessionRepo.Delete(id)
	return nil
}
