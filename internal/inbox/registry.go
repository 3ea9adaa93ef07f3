package inbox

import (
	"sync"
	"time"

	"itgirls-web/internal/events"
)

type registryEntry struct {
	inbox    *Inbox
	lastUsed time.Time
}

// Registry keeps one Inbox per session or visitor key.
type Registry struct {
	backend   Backend
	publisher events.EventPublisher
	now       func() time.Time

	mu      sync.Mutex
	inboxes map[string]*registryEntry
}

func NewRegistry(b Backend, publisher events.EventPublisher) *Registry {
	return &Registry{
		backend:   b,
		publisher: publisher,
		now:       time.Now,
		inboxes:   make(map[string]*registryEntry),
	}
}

func (r *Registry) For(key string) *Inbox {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.inboxes[key]
	if !ok {
		e = &registryEntry{inbox: New(r.backend, r.publisher)}
		r.inboxes[key] = e
	}
	e.lastUsed = r.now()
	return e.inbox
}

// Drop forgets the inbox of a session, at logout.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inboxes, key)
}

// Evict forgets inboxes unused for longer than idle and returns how many
// were removed.
func (r *Registry) Evict(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for key, e := range r.inboxes {
		if e.lastUsed.Before(cutoff) {
			delete(r.inboxes, key)
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inboxes)
}
