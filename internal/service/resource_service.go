package service

import (
	"context"
	"io"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/entity"
	"ai-lecture-notes-be/internal/mapper"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/internal/repository/contract"
	"ai-lecture-notes-be/pkg/extract"
	"ai-lecture-notes-be/pkg/session"
)

type IResourceService interface {
	List(ctx context.Context, sessionId string) ([]dto.ResourceResponse, error)
	Create(ctx context.Context, sessionId string, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	Upload(ctx context.Context, sessionId, fileName string, r io.Reader) (*dto.ResourceResponse, error)
	Delete(ctx context.Context, sessionId, resourceId string) (*dto.DeleteResourceResponse, error)
}

type resourceService struct {
	sessionRepo contract.SessionRepository
	mapper      *mapper.ResourceMapper
	logger      logger.ILogger
}

func NewResourceService(sessionRepo contract.SessionRepository, logger logger.ILogger) IResourceService {
	return &resourceService{
		sessionRepo: sessionRepo,
		mapper:      mapper.NewResourceMapper(),
		logger:      logger,
	}
}

func (s *resourceService) List(ctx context.Context, sessionId string) ([]dto.ResourceResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToListResponse(st.Resources()), nil
}

func (s *resourceService) Create(ctx context.Context, sessionId string, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}

	resourceType := entity.ResourceTypePdf
	if req.Type != "" {
		parsed, ok := entity.ParseResourceType(req.Type)
		if !ok {
			return nil, &session.ValidationError{Field: "type", Reason: "must be pdf, ppt or video"}
		}
		resourceType = parsed
	}

	return s.add(st, resourceType, req.Title, req.Content)
}

func (s *resourceService) Upload(ctx context.Context, sessionId, fileName string, r io.Reader) (*dto.ResourceResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}

	extracted, err := extract.File(fileName, r)
	if err != nil {
		s.logger.Warn("RESOURCE", "Failed to read upload", map[string]interface{}{
			"session_id": sessionId,
			"file_name":  fileName,
			"error":      err.Error(),
		})
		return nil, &session.ValidationError{Field: "file", Reason: "could not be read"}
	}
	if extracted.Content == extract.EmptyContentPlaceholder {
		s.logger.Warn("RESOURCE", "No text extracted from upload", map[string]interface{}{
			"session_id": sessionId,
			"file_name":  fileName,
		})
	}

	return s.add(st, extracted.Type, extracted.Title, extracted.Content)
}

func (s *resourceService) add(st *session.State, resourceType entity.ResourceType, title, content string) (*dto.ResourceResponse, error) {
	resource, err := session.NewResource(resourceType, title, content)
	if err != nil {
		return nil, err
	}
	st.AddResource(resource)

	s.logger.Info("RESOURCE", "Resource added", map[string]interface{}{
		"session_id":  st.Id,
		"resource_id": resource.Id,
		"type":        resource.Type,
	})

	res := s.mapper.ToResponse(resource)
	return &res, nil
}

// Delete is a no-op for ids that are not in the library.
func (s *resourceService) Delete(ctx context.Context, sessionId, resourceId string) (*dto.DeleteResourceResponse, error) {
	st, err := s.sessionRepo.Get(sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteResourceResponse{Removed: st.RemoveResource(resourceId)}, nil
}
