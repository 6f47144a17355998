package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/randomizer/pkg/adapters/memory"
	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunFixtureStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	fixture := &domain.Fixture{ID: "f1", Values: []any{1}}
	require.NoError(t, store.Save(ctx, fixture))
	fixture.Values[0] = 99

	loaded, err := store.Load(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Values[0])

	loaded.Values[0] = 42
	again, _ := store.Load(ctx, "f1")
	assert.Equal(t, 1, again.Values[0])
}

func TestLibrary(t *testing.T) {
	ctx := context.Background()
	lib := memory.NewLibrary(map[string][]byte{
		"dice":   []byte("name: dice\ndescription: six sided\nroot: {kind: integers, min: 1, max: 6}"),
		"broken": []byte("root: ["),
	})

	infos, err := lib.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, domain.TemplateInfo{ID: "broken", Name: "broken"}, infos[0])
	assert.Equal(t, domain.TemplateInfo{ID: "dice", Name: "dice", Description: "six sided"}, infos[1])

	doc, err := lib.Get(ctx, "dice")
	require.NoError(t, err)
	assert.Contains(t, string(doc), "integers")

	_, err = lib.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}
