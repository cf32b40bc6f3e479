// Package qa answers student questions grounded in a session's notes,
// transcript and resources.
package qa

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

const module = "QA"

// Answer is the outcome of one question. Err is set when the reply is a
// failure message; the chat history holds the reply either way, unless
// Discarded reports that the notes were replaced before it arrived.
type Answer struct {
	Reply     entity.ChatMessage
	Citations []Citation
	Err       *RequestError
	Discarded bool
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

// Ask answers question against the session's current state. It returns an
// error only when the question is refused before any generation call: no
// notes, blank input, or another question still outstanding.
func (e *Engine) Ask(ctx context.Context, st *session.State, question string) (*Answer, error) {
	question = strings.TrimSpace(question)

	snap, err := st.BeginQuestion(question)
	if err != nil {
		return nil, err
	}

	reply, reqErr := e.generate(ctx, st.Id, snap, question)
	msg, recorded := st.FinishQuestion(snap.Generation, reply)
	if !recorded {
		e.logger.Warn(module, "Notes replaced while answering, reply discarded", map[string]interface{}{
			"session_id": st.Id,
		})
	}

	answer := &Answer{Reply: msg, Err: reqErr, Discarded: !recorded}
	if reqErr == nil {
		answer.Citations = ParseCitations(reply)
	}
	return answer, nil
}

func (e *Engine) generate(ctx context.Context, sessionID string, snap session.Snapshot, question string) (string, *RequestError) {
	budgeted := budget.Build(snap.Transcript, snap.Resources, snap.Notes, e.limits)
	prompt := BuildPrompt(budgeted, question)

	e.logger.Debug(module, "Answering question", map[string]interface{}{
		"session_id":      sessionID,
		"prompt_chars":    len(prompt),
		"notes_truncated": budgeted.NotesTruncated,
	})

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	text, err := e.provider.Generate(ctx, prompt)
	if err != nil {
		reqErr := &RequestError{Cause: err}
		e.logger.Error(module, "Question answering failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return reqErr.ChatMessage(), reqErr
	}

	if strings.TrimSpace(text) == "" {
		return emptyAnswer, nil
	}
	return text, nil
}
