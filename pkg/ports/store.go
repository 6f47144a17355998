package ports

import (
	"context"

	"github.com/aretw0/randomizer/pkg/domain"
)

// FixtureStore defines the interface for persisting generated fixtures.
type FixtureStore interface {
	// Save persists a fixture under its ID, replacing any previous one.
	Save(ctx context.Context, fixture *domain.Fixture) error

	// Load retrieves a fixture by ID.
	// Returns domain.ErrFixtureNotFound if the fixture does not exist.
	Load(ctx context.Context, id string) (*domain.Fixture, error)

	// Delete removes a fixture. Deleting a missing fixture is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored fixtures.
	List(ctx context.Context) ([]string, error)
}

// TemplateLibrary provides named blueprints.
type TemplateLibrary interface {
	// Get returns the raw blueprint document for id.
	// Returns domain.ErrTemplateNotFound if there is none.
	Get(ctx context.Context, id string) ([]byte, error)

	// List describes every template in the library.
	List(ctx context.Context) ([]domain.TemplateInfo, error)
}
