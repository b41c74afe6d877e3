package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Registry keeps one Cart per browsing session. Sessions idle for longer
// than the TTL are dropped the next time the registry is touched.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	log      *zap.SugaredLogger
}

// NewRegistry creates a session registry. A zero ttl keeps sessions forever.
func NewRegistry(ttl time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      time.Now,
		log:      logger.Sugar(),
	}
}

// SetClock replaces the registry's time source.
func (r *Registry) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// Get returns the cart of sessionID, creating a session when the id is
// empty, unknown or expired. The returned id must be handed back to the
// caller; it differs from sessionID when a new session was created.
func (r *Registry) Get(sessionID string) (string, *Cart) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictLocked(now)

	if s, ok := r.sessions[sessionID]; ok && sessionID != "" {
		s.lastSeen = now
		return sessionID, s.cart
	}

	id := uuid.NewString()
	r.sessions[id] = &session{cart: New(), lastSeen: now}
	r.log.Debugf("🛒 New cart session %s", id)
	return id, r.sessions[id].cart
}

// Lookup returns the cart of sessionID without creating one.
func (r *Registry) Lookup(sessionID string) (*Cart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictLocked(now)

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	s.lastSeen = now
	return s.cart, true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictLocked(r.now())
	return len(r.sessions)
}

func (r *Registry) evictLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
			r.log.Debugf("🛒 Cart session %s expired", id)
		}
	}
}
