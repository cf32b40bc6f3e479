package capture

import (
	"strings"
	"sync"
)

// TranscriptBuffer is the append-only list of recognized fragments.
type TranscriptBuffer struct {
	mu     sync.RWMutex
	chunks []string
}

func (b *TranscriptBuffer) Append(chunk string) {
	if chunk == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chunks = append(b.chunks, chunk)
}

// Text joins the fragments with single spaces.
func (b *TranscriptBuffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.chunks, " ")
}

func (b *TranscriptBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.chunks)
}

func (b *TranscriptBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chunks = nil
}
