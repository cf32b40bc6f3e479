package audio

import (
	"context"
	"errors"
	"sync"
)

var ErrSourceClosed = errors.New("audio source closed")

// StreamSource is fed by a remote client, one Push per received frame.
type StreamSource struct {
	frames chan []float32

	mu     sync.RWMutex
	closed bool
	once   sync.Once
	done   chan struct{}
}

var _ Source = (*StreamSource)(nil)

func NewStreamSource(buffer int) *StreamSource {
	return &StreamSource{
		frames: make(chan []float32, buffer),
		done:   make(chan struct{}),
	}
}

func (s *StreamSource) Open(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrDeviceUnavailable
	}
	return nil
}

// Push queues samples, blocking while the buffer is full.
func (s *StreamSource) Push(ctx context.Context, samples []float32) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSourceClosed
	}

	select {
	case s.frames <- samples:
		return nil
	case <-s.done:
		return ErrSourceClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *StreamSource) Stream(ctx context.Context, out chan<- []float32) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case samples := <-s.frames:
			select {
			case out <- samples:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (s *StreamSource) Close() error {
	// done is closed before taking the lock so a blocked Push can return.
	s.once.Do(func() { close(s.done) })
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
