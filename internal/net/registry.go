package net

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrMatchNotFound is returned for unknown or already-removed match ids.
var ErrMatchNotFound = errors.New("match not found")

// Registry tracks live matches by id. Matches are independent of each
// other; the registry lock covers only the map, never a session.
type Registry struct {
	mu      sync.RWMutex
	matches map[string]*Match
}

func NewRegistry() *Registry {
	return &Registry{matches: make(map[string]*Match)}
}

// CreateBotMatch starts a new match against the built-in opponent and
// registers it under a fresh id.
func (r *Registry) CreateBotMatch(cfg MatchConfig) (*Match, error) {
	m, err := NewBotMatch(uuid.NewString(), cfg)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.matches[m.ID] = m
	r.mu.Unlock()
	return m, nil
}

// Get finds a live match.
func (r *Registry) Get(id string) (*Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return m, nil
}

// Remove discards a match. Sessions are not reused after game end.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.matches, id)
	r.mu.Unlock()
}

// Len reports the number of live matches.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}

// Sweep removes ended matches and returns how many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, m := range r.matches {
		if m.Ended() {
			delete(r.matches, id)
			n++
		}
	}
	return n
}
