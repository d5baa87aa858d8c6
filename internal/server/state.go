package server

import (
	"sync"
	"time"
)

const stateTTL = 10 * time.Minute

// stateStore holds pending OAuth CSRF states. The flow is single-process and
// short-lived, so an expiring in-memory map stands in for a session layer.
type stateStore struct {
	mu     sync.Mutex
	states map[string]time.Time
}

func newStateStore() *stateStore {
	return &stateStore{states: map[string]time.Time{}}
}

func (s *stateStore) Put(state string) {
	now := time.Now()
	s.mu.Lock()
	for k, t := range s.states {
		if now.Sub(t) > stateTTL {
			delete(s.states, k)
		}
	}
	s.states[state] = now
	s.mu.Unlock()
}

// Take consumes a state, reporting whether it was issued and still fresh.
func (s *stateStore) Take(state string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	issued, ok := s.states[state]
	if !ok {
		return false
	}
	delete(s.states, state)
	return time.Since(issued) <= stateTTL
}
