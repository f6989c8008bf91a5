// Package store provides PosStore implementations: an in-memory store for
// development and tests, and a PostgreSQL store for production.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campuscoffee/internal/pos/models"
	"campuscoffee/pkg/platform/sentinel"
)

// InMemory keeps POS records in process memory. It intentionally favors
// clarity over performance and mirrors the Postgres store's semantics:
// sequential IDs, timestamps assigned on write, case-insensitive name
// uniqueness.
type InMemory struct {
	mu     sync.RWMutex
	seq    int64
	byID   map[int64]models.Pos
	byName map[string]int64 // lowercased name -> id
}

// NewInMemory creates an empty in-memory POS store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[int64]models.Pos),
		byName: make(map[string]int64),
	}
}

func (s *InMemory) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[int64]models.Pos)
	s.byName = make(map[string]int64)
	return nil
}

func (s *InMemory) GetAll(_ context.Context) ([]models.Pos, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Pos, 0, len(s.byID))
	for _, p := range s.byID {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *InMemory) GetByID(_ context.Context, id int64) (models.Pos, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return models.Pos{}, sentinel.ErrNotFound
}

func (s *InMemory) Upsert(_ context.Context, pos models.Pos) (models.Pos, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(pos.Name)
	if holder, taken := s.byName[key]; taken && holder != pos.ID {
		return models.Pos{}, sentinel.ErrAlreadyUsed
	}

	now := time.Now()
	if pos.ID == 0 {
		s.seq++
		pos.ID = s.seq
		pos.CreatedAt = now
	} else if existing, ok := s.byID[pos.ID]; ok {
		pos.CreatedAt = existing.CreatedAt
		// The record may be renamed; drop the old name index entry.
		delete(s.byName, strings.ToLower(existing.Name))
	} else {
		pos.CreatedAt = now
	}
	pos.UpdatedAt = now

	s.byID[pos.ID] = pos
	s.byName[key] = pos.ID
	return pos, nil
}
