// Package store persists saved matches.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned when no match is stored under an id.
var ErrNotFound = errors.New("match not found")

// Match is one persisted game.
type Match struct {
	ID        string
	State     []byte // game.Game.Save output
	Turn      int
	Over      bool
	UpdatedAt time.Time
}

// Store defines the persistence of matches.
type Store interface {
	// Save inserts or replaces a match.
	Save(ctx context.Context, m Match) error

	// Load retrieves a match by id.
	Load(ctx context.Context, id string) (Match, error)

	// Delete removes a match.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored matches, sorted.
	List(ctx context.Context) ([]string, error)
}

// Memory keeps matches in a map. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	matches map[string]Match
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{matches: make(map[string]Match)}
}

func (s *Memory) Save(ctx context.Context, m Match) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.ID == "" {
		return errors.New("match id is required")
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = time.Now().UTC()
	}
	m.State = append([]byte(nil), m.State...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.ID] = m
	return nil
}

func (s *Memory) Load(ctx context.Context, id string) (Match, error) {
	if err := ctx.Err(); err != nil {
		return Match{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return Match{}, ErrNotFound
	}
	m.State = append([]byte(nil), m.State...)
	return m, nil
}

func (s *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[id]; !ok {
		return ErrNotFound
	}
	delete(s.matches, id)
	return nil
}

func (s *Memory) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.matches))
	for id := range s.matches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
