package transcription

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ai-lecture-notes-be/internal/pkg/logger"

	"google.golang.org/genai"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash-native-audio-preview-09-2025"

	geminiInstruction = "You are an AI Academic Note-Taking System. Transcribe the lecture audio accurately. Currently, just focus on capturing the transcript text."
)

// GeminiTranscriber uses a Live session with input transcription enabled.
type GeminiTranscriber struct {
	client *genai.Client
	model  string
	logger logger.ILogger
}

var _ Transcriber = (*GeminiTranscriber)(nil)

func NewGeminiTranscriber(ctx context.Context, apiKey, model string, logger logger.ILogger) (*GeminiTranscriber, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiTranscriber{client: client, model: model, logger: logger}, nil
}

func (t *GeminiTranscriber) Open(ctx context.Context) (Stream, error) {
	session, err := t.client.Live.Connect(ctx, t.model, &genai.LiveConnectConfig{
		ResponseModalities:      []genai.Modality{genai.ModalityAudio},
		InputAudioTranscription: &genai.AudioTranscriptionConfig{},
		SystemInstruction:       genai.NewContentFromText(geminiInstruction, genai.RoleUser),
	})
	if err != nil {
		return nil, &TransportError{Op: "connect", Err: err}
	}

	s := &geminiStream{
		session:   session,
		fragments: make(chan Fragment, 64),
		done:      make(chan struct{}),
		logger:    t.logger,
	}
	go s.receive()
	return s, nil
}

type geminiStream struct {
	session   *genai.Session
	fragments chan Fragment
	done      chan struct{}
	logger    logger.ILogger

	mu     sync.Mutex
	closed bool
	err    error
}

func (s *geminiStream) Send(ctx context.Context, frame Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pcm, err := frame.PCM()
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}

	err = s.session.SendRealtimeInput(genai.LiveRealtimeInput{
		Audio: &genai.Blob{Data: pcm, MIMEType: frame.MIMEType},
	})
	if err != nil {
		return &TransportError{Op: "send", Err: err}
	}
	return nil
}

func (s *geminiStream) receive() {
	defer close(s.fragments)

	for {
		msg, err := s.session.Receive()
		if err != nil {
			s.mu.Lock()
			if !s.closed {
				s.err = &TransportError{Op: "receive", Err: err}
			}
			s.mu.Unlock()
			return
		}

		if msg.ServerContent == nil || msg.ServerContent.InputTranscription == nil {
			continue
		}
		text := msg.ServerContent.InputTranscription.Text
		if text == "" {
			continue
		}

		s.logger.Debug("TRANSCRIPTION", "Fragment received", map[string]interface{}{"chars": len(text)})

		select {
		case s.fragments <- Fragment{Text: text}:
		case <-s.done:
			return
		}
	}
}

func (s *geminiStream) Fragments() <-chan Fragment {
	return s.fragments
}

func (s *geminiStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *geminiStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()
	return s.session.Close()
}
