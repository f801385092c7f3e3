package memory

import (
	"sync"
	"time"

	"ai-support-chat-be/pkg/policy"

	"github.com/patrickmn/go-cache"
)

// SessionCache keeps recently active conversation state in memory so the
// policy engine does not hit the database on every turn. The database row
// remains the source of truth; entries here expire after an hour of
// inactivity.
type SessionCache struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionCache() *SessionCache {
	// Default expiration of 1 hour, purge expired items every 10 minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionCache{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *SessionCache) Save(sessionId string, state *policy.State) {
	r.cache.Set(sessionId, state, cache.DefaultExpiration)
}

func (r *SessionCache) Get(sessionId string) (*policy.State, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*policy.State), true
	}
	return nil, false
}

func (r *SessionCache) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}

// Lock returns a mutex dedicated to the given session so concurrent
// messages on the same session are serialized while different sessions
// proceed in parallel.
func (r *SessionCache) Lock(sessionId string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.locks[sessionId]; ok {
		return l
	}
	l := &sync.Mutex{}
	r.locks[sessionId] = l
	return l
}
