package mapper

import (
	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/entity"
	"ai-lecture-notes-be/pkg/qa"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ToMessageResponse(msg entity.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) ToHistoryResponse(msgs []entity.ChatMessage) []dto.ChatMessageResponse {
	res := make([]dto.ChatMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		res = append(res, m.ToMessageResponse(msg))
	}
	return res
}

func (m *ChatMapper) ToAnswerResponse(answer *qa.Answer) *dto.AskQuestionResponse {
	citations := make([]dto.CitationResponse, 0, len(answer.Citations))
	for _, c := range answer.Citations {
		citations = append(citations, dto.CitationResponse{
			Kind:   string(c.Kind),
			Target: c.Target,
			Raw:    c.Raw,
		})
	}
	return &dto.AskQuestionResponse{
		Reply:     m.ToMessageResponse(answer.Reply),
		Citations: citations,
		Failed:    answer.Err != nil,
		Discarded: answer.Discarded,
	}
}
