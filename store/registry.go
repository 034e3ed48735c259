package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Registry owns one Store per browser session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	newStore func(sessionID string) *Store
	now      func() time.Time
	log      *zap.Logger
}

// NewRegistry returns a registry that builds stores with newStore and drops
// them after ttl without use. A ttl of zero keeps stores forever.
func NewRegistry(ttl time.Duration, newStore func(sessionID string) *Store, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		newStore: newStore,
		now:      time.Now,
		log:      log,
	}
}

// Get returns the store of session id, creating it on first use.
func (r *Registry) Get(id string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = now
		return s.store
	}
	s := &session{store: r.newStore(id), lastSeen: now}
	r.sessions[id] = s
	r.log.Debug("session store created", zap.String("session", id))
	return s.store
}

// Drop forgets session id.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops every session idle for longer than the ttl and returns how
// many were dropped.
func (r *Registry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := r.Sweep(now); n > 0 {
				r.log.Info("idle sessions dropped", zap.Int("dropped", n), zap.Int("live", r.Len()))
			}
		}
	}
}
