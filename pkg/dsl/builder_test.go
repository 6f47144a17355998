package dsl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/randomizer/pkg/dsl"
	"github.com/aretw0/randomizer/pkg/runner"
	"github.com/aretw0/randomizer/pkg/schema"
)

const categoriesYAML = `
name: categories
seed: categories seed 14
count: 2
root:
  kind: composites
  branches: {kind: integers, min: 2, max: 3}
  depth: 2
  children: subCategories
  fields:
    id: {kind: integers, min: 10000, max: 20000}
    name: {kind: phrases, words: {kind: integers, min: 3, max: 6}}
`

func categories() *dsl.Builder {
	return dsl.New("categories").
		Seed("categories seed 14").
		Count(2).
		Root(dsl.Composites(dsl.Integers(2, 3), 2, "subCategories").
			Field("id", dsl.Integers(10000, 20000)).
			Field("name", dsl.Phrases(dsl.Integers(3, 6))))
}

func TestBuilder_MatchesYAML(t *testing.T) {
	built, err := categories().Build()
	require.NoError(t, err)

	parsed, err := schema.Parse([]byte(categoriesYAML))
	require.NoError(t, err)
	assert.Equal(t, parsed, built)

	ctx := context.Background()
	r := runner.New()
	a, err := r.Run(ctx, built, runner.RunOptions{})
	require.NoError(t, err)
	b, err := r.Run(ctx, parsed, runner.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, a.Values, b.Values)
}

func TestBuilder_EveryKind(t *testing.T) {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	root := dsl.Objects().
		Field("const", dsl.Constant("x")).
		Field("price", dsl.Numbers(0.99, 99.99).Step(1)).
		Field("flag", dsl.Booleans().Split(0.25)).
		Field("seed", dsl.Seeds()).
		Field("color", dsl.Choices("red", "green")).
		Field("either", dsl.Alternatives(dsl.Integers(0, 9), dsl.Constant(100))).
		Field("tags", dsl.Arrays(dsl.Constant(3), dsl.Strings("hex", dsl.Constant(4)))).
		Field("order", dsl.Permutations(dsl.Integers(1, 2), "a", "b", "c")).
		Field("title", dsl.Sentences()).
		Field("body", dsl.Paragraphs()).
		Field("at", dsl.Dates(from, from.AddDate(1, 0, 0))).
		Field("id", dsl.UUIDs())

	bp, err := dsl.New("everything").Describe("all kinds").Root(root).Build()
	require.NoError(t, err)
	assert.Equal(t, "all kinds", bp.Description)
	require.Len(t, bp.Root.Fields, 12)
	assert.Equal(t, "2021-01-01T00:00:00Z", bp.Root.Fields[10].Spec.To)

	fixture, err := runner.New().Run(context.Background(), bp, runner.RunOptions{Seed: "s", Count: 3})
	require.NoError(t, err)
	assert.Len(t, fixture.Values, 3)
}

func TestBuilder_Invalid(t *testing.T) {
	_, err := dsl.New("bad").Root(dsl.Integers(6, 1)).Build()
	require.Error(t, err)
	assert.NotEmpty(t, schema.ValidationErrors(err))

	_, err = dsl.New("no fields").Root(dsl.Objects()).Build()
	assert.Error(t, err)

	_, err = dsl.New("no root").Build()
	assert.Error(t, err)
}

func TestNode_SpecCopies(t *testing.T) {
	n := dsl.Integers(1, 2)
	s := n.Spec()
	s.Depth = 9
	assert.Zero(t, n.Spec().Depth)

	var nilNode *dsl.Node
	assert.Nil(t, nilNode.Spec())
}
