package store

import (
	"context"
	"sort"
	"sync"

	"github.com/kyiku/wordsearch-back/internal/model"
)

// MemoryStore keeps games in a map. State is lost when the process restarts.
type MemoryStore struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games: make(map[string]*model.Game),
	}
}

// Save adds or updates the game.
func (s *MemoryStore) Save(ctx context.Context, g *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, other := range s.games {
		if id != g.ID && other.Name == g.Name {
			return ErrDuplicateName
		}
	}
	s.games[g.ID] = clone(g)
	return nil
}

// Get looks up a game by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(g), nil
}

// List returns games ordered by creation time, newest first.
func (s *MemoryStore) List(ctx context.Context, page, limit int) (Page, error) {
	page, limit = normalizePage(page, limit)

	s.mu.RLock()
	all := make([]*model.Game, 0, len(s.games))
	for _, g := range s.games {
		all = append(all, clone(g))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	start := min((page-1)*limit, len(all))
	end := min(start+limit, len(all))
	return Page{
		Items: all[start:end],
		Total: len(all),
		Page:  page,
		Limit: limit,
	}, nil
}

// Count returns the number of stored games.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

// clone copies g so callers can modify what they saved or loaded without
// racing other requests. Puzzles are never mutated once built and are shared.
func clone(g *model.Game) *model.Game {
	cp := *g
	cp.Words = append([]string(nil), g.Words...)
	return &cp
}
