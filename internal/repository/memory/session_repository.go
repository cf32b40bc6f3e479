package memory

import (
	"sync"
	"time"

	"ai-lecture-notes-be/internal/repository/contract"
	"ai-lecture-notes-be/pkg/session"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration

	mu      sync.RWMutex
	onEvict []func(id string)
}

// NewSessionRepository keeps sessions for ttl after their last access and
// purges expired ones every ttl/6 (at least once a minute).
func NewSessionRepository(ttl time.Duration) contract.SessionRepository {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	interval := ttl / 6
	if interval > time.Minute {
		interval = time.Minute
	}

	r := &SessionRepository{
		cache: cache.New(ttl, interval),
		ttl:   ttl,
	}
	r.cache.OnEvicted(func(id string, _ interface{}) {
		r.mu.RLock()
		hooks := append([]func(string){}, r.onEvict...)
		r.mu.RUnlock()
		for _, fn := range hooks {
			fn(id)
		}
	})
	return r
}

func (r *SessionRepository) Create() *session.State {
	st := session.New(uuid.NewString())
	r.cache.Set(st.Id, st, cache.DefaultExpiration)
	return st
}

// Get slides the expiry forward on every hit.
func (r *SessionRepository) Get(id string) (*session.State, error) {
	x, found := r.cache.Get(id)
	if !found {
		return nil, session.ErrSessionNotFound
	}
	st := x.(*session.State)
	r.cache.Set(id, st, cache.DefaultExpiration)
	return st, nil
}

func (r *SessionRepository) Delete(id string) {
	r.cache.Delete(id)
}

func (r *SessionRepository) OnEvict(fn func(id string)) {
	r.mu.Lock()
	r.onEvict = append(r.onEvict, fn)
	r.mu.Unlock()
}
