package memory

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/aretw0/randomizer/pkg/domain"
)

// Store implements ports.FixtureStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Fixture
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Fixture),
	}
}

// Save keeps a copy of the fixture.
func (s *Store) Save(ctx context.Context, fixture *domain.Fixture) error {
	if fixture == nil || fixture.ID == "" {
		return errors.New("fixture with an ID is required")
	}
	copied := *fixture
	copied.Values = slices.Clone(fixture.Values)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[fixture.ID] = copied
	return nil
}

// Load returns a copy so callers can't mutate the stored fixture.
func (s *Store) Load(ctx context.Context, id string) (*domain.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fixture, ok := s.data[id]
	if !ok {
		return nil, domain.ErrFixtureNotFound
	}
	fixture.Values = slices.Clone(fixture.Values)
	return &fixture, nil
}

// Delete removes the fixture.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
