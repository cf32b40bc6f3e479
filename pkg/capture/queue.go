package capture

import (
	"context"
	"errors"
	"sync"

	"ai-lecture-notes-be/pkg/transcription"
)

var ErrQueueClosed = errors.New("frame queue closed")

// FrameQueue delivers frames to a single consumer in enqueue order. The next
// frame is only dequeued after the previous send has returned.
type FrameQueue struct {
	frames chan transcription.Frame

	mu     sync.RWMutex
	closed bool
}

func NewFrameQueue(size int) *FrameQueue {
	if size <= 0 {
		size = 1
	}
	return &FrameQueue{frames: make(chan transcription.Frame, size)}
}

// Enqueue blocks while the queue is full.
func (q *FrameQueue) Enqueue(ctx context.Context, frame transcription.Frame) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.frames <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting frames. Run returns once the remaining ones are sent.
func (q *FrameQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.frames)
	}
}

// Run is the single consumer. It stops at the first send error or when ctx is
// done, dropping whatever is still queued.
func (q *FrameQueue) Run(ctx context.Context, send func(context.Context, transcription.Frame) error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-q.frames:
			if !ok {
				return nil
			}
			if err := send(ctx, frame); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}
