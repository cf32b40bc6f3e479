package mapper

import (
	"unicode/utf8"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/entity"
)

type ResourceMapper struct{}

func NewResourceMapper() *ResourceMapper {
	return &ResourceMapper{}
}

func (m *ResourceMapper) ToResponse(r entity.Resource) dto.ResourceResponse {
	return dto.ResourceResponse{
		Id:             r.Id,
		Type:           string(r.Type),
		Title:          r.Title,
		CharacterCount: utf8.RuneCountInString(r.Content),
		CreatedAt:      r.CreatedAt,
	}
}

func (m *ResourceMapper) ToListResponse(resources []entity.Resource) []dto.ResourceResponse {
	res := make([]dto.ResourceResponse, 0, len(resources))
	for _, r := range resources {
		res = append(res, m.ToResponse(r))
	}
	return res
}
