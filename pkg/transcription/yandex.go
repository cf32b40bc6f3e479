package transcription

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"sync"

	"ai-lecture-notes-be/internal/pkg/logger"

	speechkit "github.com/yandex-cloud/go-genproto/yandex/cloud/ai/stt/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"
)

const yandexEndpoint = "stt.api.cloud.yandex.net:443"

type YandexConfig struct {
	IamToken   string
	FolderID   string
	Language   string
	SampleRate int64
}

// YandexTranscriber streams to SpeechKit v3 and emits final results only.
type YandexTranscriber struct {
	client speechkit.RecognizerClient
	conn   *grpc.ClientConn
	config YandexConfig
	logger logger.ILogger
}

var _ Transcriber = (*YandexTranscriber)(nil)

func NewYandexTranscriber(config YandexConfig, logger logger.ILogger) (*YandexTranscriber, error) {
	if config.IamToken == "" || config.FolderID == "" {
		return nil, errors.New("yandex iam token and folder id are required")
	}
	if config.SampleRate == 0 {
		config.SampleRate = 16000
	}

	conn, err := grpc.NewClient(yandexEndpoint, grpc.WithTransportCredentials(credentials.NewTLS(&tls.Config{})))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Yandex STT: %w", err)
	}

	return &YandexTranscriber{
		client: speechkit.NewRecognizerClient(conn),
		conn:   conn,
		config: config,
		logger: logger,
	}, nil
}

func (t *YandexTranscriber) Close() error {
	return t.conn.Close()
}

func (t *YandexTranscriber) Open(ctx context.Context) (Stream, error) {
	md := metadata.Pairs(
		"authorization", "Bearer "+t.config.IamToken,
		"x-folder-id", t.config.FolderID,
	)
	streamCtx, cancel := context.WithCancel(metadata.NewOutgoingContext(ctx, md))

	stream, err := t.client.RecognizeStreaming(streamCtx)
	if err != nil {
		cancel()
		return nil, &TransportError{Op: "connect", Err: err}
	}

	if err := stream.Send(t.sessionOptions()); err != nil {
		cancel()
		return nil, &TransportError{Op: "session options", Err: err}
	}

	s := &yandexStream{
		stream:    stream,
		cancel:    cancel,
		fragments: make(chan Fragment, 64),
		done:      make(chan struct{}),
		logger:    t.logger,
	}
	go s.receive()
	return s, nil
}

func (t *YandexTranscriber) sessionOptions() *speechkit.StreamingRequest {
	return &speechkit.StreamingRequest{
		Event: &speechkit.StreamingRequest_SessionOptions{
			SessionOptions: &speechkit.StreamingOptions{
				RecognitionModel: &speechkit.RecognitionModelOptions{
					AudioFormat: &speechkit.AudioFormatOptions{
						AudioFormat: &speechkit.AudioFormatOptions_RawAudio{
							RawAudio: &speechkit.RawAudio{
								AudioEncoding:     speechkit.RawAudio_LINEAR16_PCM,
								SampleRateHertz:   t.config.SampleRate,
								AudioChannelCount: 1,
							},
						},
					},
					TextNormalization: &speechkit.TextNormalizationOptions{
						TextNormalization: speechkit.TextNormalizationOptions_TEXT_NORMALIZATION_ENABLED,
						LiteratureText:    true,
					},
					LanguageRestriction: &speechkit.LanguageRestrictionOptions{
						RestrictionType: speechkit.LanguageRestrictionOptions_WHITELIST,
						LanguageCode:    []string{t.config.Language},
					},
					AudioProcessingType: speechkit.RecognitionModelOptions_REAL_TIME,
				},
			},
		},
	}
}

type yandexStream struct {
	stream    speechkit.Recognizer_RecognizeStreamingClient
	cancel    context.CancelFunc
	fragments chan Fragment
	done      chan struct{}
	logger    logger.ILogger

	mu     sync.Mutex
	closed bool
	err    error
}

func (s *yandexStream) Send(ctx context.Context, frame Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pcm, err := frame.PCM()
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}

	err = s.stream.Send(&speechkit.StreamingRequest{
		Event: &speechkit.StreamingRequest_Chunk{
			Chunk: &speechkit.AudioChunk{Data: pcm},
		},
	})
	if err != nil {
		return &TransportError{Op: "send", Err: err}
	}
	return nil
}

func (s *yandexStream) receive() {
	defer close(s.fragments)

	for {
		resp, err := s.stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			s.mu.Lock()
			if !s.closed {
				s.err = &TransportError{Op: "receive", Err: err}
				s.logger.Warn("TRANSCRIPTION", "SpeechKit stream ended unexpectedly", map[string]interface{}{
					"error": err.Error(),
				})
			}
			s.mu.Unlock()
			return
		}

		final := resp.GetFinal()
		if final == nil {
			continue
		}
		// first alternative is the best hypothesis
		alternatives := final.GetAlternatives()
		if len(alternatives) == 0 || alternatives[0].GetText() == "" {
			continue
		}

		select {
		case s.fragments <- Fragment{Text: alternatives[0].GetText()}:
		case <-s.done:
			return
		}
	}
}

func (s *yandexStream) Fragments() <-chan Fragment {
	return s.fragments
}

func (s *yandexStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *yandexStream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	err := s.stream.CloseSend()
	s.cancel()
	return err
}
