package loam

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/randomizer/internal/testutils"
	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/schema"
)

const productsTemplate = "---\nname: products\ndescription: storefront items\nseed: products seed\ncount: 3\n---\n" +
	"Catalogue entries for the storefront demo.\n\n" +
	"```yaml\nkind: objects\nfields:\n  id: {kind: integers, min: 1, max: 100000}\n  name: {kind: phrases, words: 2}\n```\n"

const diceTemplate = "---\ndescription: one die\n---\nkind: integers\nmin: 1\nmax: 6\n"

func setupLibrary(t *testing.T, files map[string]string) *Library {
	t.Helper()
	lib, err := Open(testutils.WriteFiles(t, files))
	require.NoError(t, err)
	return lib
}

func TestLibrary_Get(t *testing.T) {
	lib := setupLibrary(t, map[string]string{"products.md": productsTemplate})

	doc, err := lib.Get(context.Background(), "products")
	require.NoError(t, err)

	bp, err := schema.Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "products", bp.Name)
	assert.Equal(t, "products seed", bp.Seed)
	assert.Equal(t, 3, bp.Count)
	assert.Equal(t, schema.KindObjects, bp.Root.Kind)
	require.Len(t, bp.Root.Fields, 2)
	assert.Equal(t, "id", bp.Root.Fields[0].Key)
	assert.Equal(t, "name", bp.Root.Fields[1].Key)
}

func TestLibrary_GetBareBody(t *testing.T) {
	lib := setupLibrary(t, map[string]string{"dice.md": diceTemplate})

	doc, err := lib.Get(context.Background(), "dice")
	require.NoError(t, err)

	bp, err := schema.Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, "dice", bp.Name, "name falls back to the document ID")
	assert.Empty(t, bp.Seed)
	assert.Equal(t, schema.KindIntegers, bp.Root.Kind)
}

func TestLibrary_GetMissing(t *testing.T) {
	lib := setupLibrary(t, map[string]string{"dice.md": diceTemplate})
	_, err := lib.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestLibrary_List(t *testing.T) {
	lib := setupLibrary(t, map[string]string{
		"products.md": productsTemplate,
		"dice.md":     diceTemplate,
	})

	infos, err := lib.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.TemplateInfo{
		{ID: "dice", Name: "dice", Description: "one die"},
		{ID: "products", Name: "products", Description: "storefront items"},
	}, infos)
}

func TestSpecBlock(t *testing.T) {
	assert.Equal(t, "kind: seeds", specBlock("prose\n```yaml\nkind: seeds\n```\nmore"))
	assert.Equal(t, "kind: seeds\n", specBlock("kind: seeds\n"))
	assert.Equal(t, "x\n```yaml\nunterminated", specBlock("x\n```yaml\nunterminated"))
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "a/b", trimExtension("a/b.md"))
	assert.Equal(t, "plain", trimExtension("plain"))
}
