package service

import (
	"context"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/entity"
	"ai-lecture-notes-be/internal/mapper"
	"ai-lecture-notes-be/internal/repository/contract"
)

type IPreferenceService interface {
	Show(ctx context.Context, sessionId string) (*dto.PreferencesResponse, error)
	Replace(ctx context.Context, sessionId string, req *dto.PreferencesRequest) (*dto.PreferencesResponse, error)
	TogglePriority(ctx context.Context, sessionId string, req *dto.TogglePriorityRequest) (*dto.PreferencesResponse, error)
}

type preferenceService struct {
	sessionRepo contract.SessionRepository
	mapper      *mapper.PreferenceMapper
}

func NewPreferenceService(sessionRepo contract.SessionRepository) IPreferenceService {
	return &preferenceService{
		sessionRepo: sessionRepo,
		mapper:      mapper.NewPreferenceMapper(),
	}
}

func (s *preferenceService) Show(ctx context.Context, sessionId string) (*dto.PreferencesResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponse(st.Preferences()), nil
}

func (s *preferenceService) Replace(ctx context.Context, sessionId string, req *dto.PreferencesRequest) (*dto.PreferencesResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	prefs := s.mapper.ToEntity(req)
	st.SetPreferences(prefs)
	return s.mapper.ToResponse(prefs), nil
}

func (s *preferenceService) TogglePriority(ctx context.Context, sessionId string, req *dto.TogglePriorityRequest) (*dto.PreferencesResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	priority := entity.HighlightPriority(req.Priority)
	updated := st.UpdatePreferences(func(p entity.Preferences) entity.Preferences {
		return p.TogglePriority(priority)
	})
	return s.mapper.ToResponse(updated), nil
}
