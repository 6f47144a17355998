package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/randomizer/pkg/domain"
)

// RunFixtureStoreContract runs a suite of tests to verify that a FixtureStore
// implementation adheres to the defined interface contract.
func RunFixtureStoreContract(t *testing.T, store FixtureStore) {
	ctx := context.Background()
	prefix := "contract-test-fixture-" + time.Now().Format("20060102150405")

	newFixture := func(id string) *domain.Fixture {
		return &domain.Fixture{
			ID:        id,
			Blueprint: "contract",
			Seed:      "contract seed",
			Values:    []any{"a", 1.5, true},
			CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		fixture := newFixture(prefix)

		err := store.Save(ctx, fixture)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, prefix)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, fixture.ID, loaded.ID)
		assert.Equal(t, fixture.Blueprint, loaded.Blueprint)
		assert.Equal(t, fixture.Seed, loaded.Seed)
		assert.True(t, fixture.CreatedAt.Equal(loaded.CreatedAt))
		// Persistent stores go through JSON, so only compare the rendered values.
		assert.Len(t, loaded.Values, 3)
		assert.Equal(t, "a", loaded.Values[0])
		assert.EqualValues(t, 1.5, loaded.Values[1])
		assert.Equal(t, true, loaded.Values[2])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrFixtureNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, newFixture(prefix))
		require.NoError(t, err)

		err = store.Delete(ctx, prefix)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, prefix)
		assert.ErrorIs(t, err, domain.ErrFixtureNotFound, "Load after Delete should return ErrFixtureNotFound")

		assert.NoError(t, store.Delete(ctx, prefix), "Deleting twice should be a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := prefix + "-1"
		id2 := prefix + "-2"
		require.NoError(t, store.Save(ctx, newFixture(id1)))
		require.NoError(t, store.Save(ctx, newFixture(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})

	t.Run("Nil Fixture", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, nil))
		assert.Error(t, store.Save(ctx, &domain.Fixture{}))
	})
}
