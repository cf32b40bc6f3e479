package memory

import (
	"sync"
	"testing"
	"time"

	"ai-lecture-notes-be/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	st := repo.Create()
	require.NotEmpty(t, st.Id)

	got, err := repo.Get(st.Id)
	require.NoError(t, err)
	assert.Same(t, st, got)

	_, err = repo.Get("missing")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	var mu sync.Mutex
	var evicted []string
	repo.OnEvict(func(id string) {
		mu.Lock()
		evicted = append(evicted, id)
		mu.Unlock()
	})

	repo.Delete(st.Id)
	_, err = repo.Get(st.Id)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	mu.Lock()
	assert.Equal(t, []string{st.Id}, evicted)
	mu.Unlock()
}

func TestSessionRepositoryExpires(t *testing.T) {
	repo := NewSessionRepository(50 * time.Millisecond)
	st := repo.Create()

	// reads refresh the expiry, so wait without touching the session
	time.Sleep(120 * time.Millisecond)

	_, err := repo.Get(st.Id)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
