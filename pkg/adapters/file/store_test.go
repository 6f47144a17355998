package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/randomizer/pkg/adapters/file"
	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/ports"
)

var _ ports.FixtureStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunFixtureStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, store.Save(ctx, &domain.Fixture{ID: "one", Values: []any{"x"}}))
	require.NoError(t, store.Save(ctx, &domain.Fixture{ID: "one", Values: []any{"y"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must be cleaned up")
	assert.Equal(t, "one.json", entries[0].Name())

	loaded, err := store.Load(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, []any{"y"}, loaded.Values)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, ids)
}

func TestFileStore_RejectsPathIDs(t *testing.T) {
	store := file.New(t.TempDir())
	_, err := store.Load(context.Background(), "../escape")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrFixtureNotFound)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
