// Package transcriptiontest provides an in-memory Transcriber for tests.
package transcriptiontest

import (
	"context"
	"sync"

	"ai-lecture-notes-be/pkg/transcription"
)

// FakeTranscriber hands out FakeStreams and remembers the last one.
type FakeTranscriber struct {
	OpenErr error

	mu     sync.Mutex
	stream *FakeStream
}

var _ transcription.Transcriber = (*FakeTranscriber)(nil)

func (f *FakeTranscriber) Open(ctx context.Context) (transcription.Stream, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	s := NewFakeStream()
	f.mu.Lock()
	f.stream = s
	f.mu.Unlock()
	return s, nil
}

func (f *FakeTranscriber) Last() *FakeStream {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stream
}

// FakeStream records sent frames. Tests push fragments with Emit and end
// the session with Fail.
type FakeStream struct {
	mu       sync.Mutex
	frames   []transcription.Frame
	sendErr  error
	err      error
	closed   bool
	fragment chan transcription.Fragment
	sent     chan struct{}
}

var _ transcription.Stream = (*FakeStream)(nil)

func NewFakeStream() *FakeStream {
	return &FakeStream{
		fragment: make(chan transcription.Fragment, 64),
		sent:     make(chan struct{}, 1024),
	}
}

func (s *FakeStream) Send(ctx context.Context, frame transcription.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.frames = append(s.frames, frame)
	select {
	case s.sent <- struct{}{}:
	default:
	}
	return nil
}

// Sent is signalled once per accepted frame.
func (s *FakeStream) Sent() <-chan struct{} {
	return s.sent
}

func (s *FakeStream) Frames() []transcription.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]transcription.Frame(nil), s.frames...)
}

func (s *FakeStream) Emit(text string) {
	s.fragment <- transcription.Fragment{Text: text}
}

// FailSends makes every later Send return err.
func (s *FakeStream) FailSends(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErr = err
}

// Fail ends the session with err as if the transport dropped.
func (s *FakeStream) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.err = err
	close(s.fragment)
}

func (s *FakeStream) Fragments() <-chan transcription.Fragment {
	return s.fragment
}

func (s *FakeStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *FakeStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.fragment)
	}
	return nil
}

func (s *FakeStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
