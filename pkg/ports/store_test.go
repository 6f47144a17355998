package ports_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/ports"
)

// MockStore is a map backed FixtureStore used to exercise the contract suite.
type MockStore struct {
	data map[string]domain.Fixture
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]domain.Fixture),
	}
}

func (m *MockStore) Save(ctx context.Context, fixture *domain.Fixture) error {
	if fixture == nil || fixture.ID == "" {
		return errors.New("fixture with an ID is required")
	}
	copied := *fixture
	copied.Values = append([]any(nil), fixture.Values...)
	m.data[fixture.ID] = copied
	return nil
}

func (m *MockStore) Load(ctx context.Context, id string) (*domain.Fixture, error) {
	fixture, ok := m.data[id]
	if !ok {
		return nil, domain.ErrFixtureNotFound
	}
	return &fixture, nil
}

func (m *MockStore) Delete(ctx context.Context, id string) error {
	delete(m.data, id)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestFixtureStore_Contract(t *testing.T) {
	ports.RunFixtureStoreContract(t, NewMockStore())
}
