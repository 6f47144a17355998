package randomizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/randomizer"
)

func newSession(t *testing.T, seed string, opts ...randomizer.Option) *randomizer.Session {
	t.Helper()
	s, err := randomizer.New(seed, opts...)
	require.NoError(t, err)
	return s
}

func draws(f randomizer.Factory[float64], n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f()
	}
	return out
}

func TestNew_RequiresSeed(t *testing.T) {
	_, err := randomizer.New("")
	require.Error(t, err)
	assert.ErrorIs(t, err, randomizer.ErrMissingArgument)

	var argErr *randomizer.ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "seed", argErr.Arg)
}

func TestSession_Determinism(t *testing.T) {
	build := func() []any {
		s := newSession(t, "determinism")
		n := randomizer.Must(s.Numbers(0, 100))
		i := randomizer.Must(s.Integers(1, 6))
		arr := randomizer.Must(randomizer.Arrays(s, randomizer.Derived(i.Factory()), n.Factory()))
		phrase := randomizer.Must(s.Phrases(randomizer.Constant(3)))

		var out []any
		for range 5 {
			out = append(out, n.Next(), i.Next(), arr(), phrase(), s.Seeds()())
		}
		return out
	}
	assert.Equal(t, build(), build())
}

func TestSession_SeedSensitivity(t *testing.T) {
	a := randomizer.Must(newSession(t, "seed one").Numbers(0, 1))
	b := randomizer.Must(newSession(t, "seed two").Numbers(0, 1))
	assert.NotEqual(t, draws(a.Factory(), 10), draws(b.Factory(), 10))
}

func TestSession_SourcesAreInterchangeable(t *testing.T) {
	pcg := newSession(t, "backend")
	chacha := newSession(t, "backend", randomizer.WithSource(randomizer.NewChaChaSource))
	chacha2 := newSession(t, "backend", randomizer.WithSource(randomizer.NewChaChaSource))

	pcgDraws := draws(randomizer.Must(pcg.Numbers(0, 1)).Factory(), 5)
	chachaDraws := draws(randomizer.Must(chacha.Numbers(0, 1)).Factory(), 5)
	assert.NotEqual(t, pcgDraws, chachaDraws)
	assert.Equal(t, chachaDraws, draws(randomizer.Must(chacha2.Numbers(0, 1)).Factory(), 5))
}

func TestSession_GroupUngroup(t *testing.T) {
	s := newSession(t, "stack")
	assert.Equal(t, 0, s.Depth())

	s.Group()
	s.Group()
	assert.Equal(t, 2, s.Depth())
	s.Ungroup()
	s.Ungroup()
	assert.Equal(t, 0, s.Depth())

	assert.Panics(t, s.Ungroup)
}

func TestSession_GroupRestoresParentStream(t *testing.T) {
	grouped := newSession(t, "restore")
	plain := newSession(t, "restore")

	grouped.Group()
	for range 10 {
		grouped.Uniform()
	}
	grouped.Ungroup()

	plain.Uniform() // the draw that seeded the group
	assert.Equal(t, plain.Uniform(), grouped.Uniform())
}

func TestSession_Hooks(t *testing.T) {
	var groups, ungroups []int
	var seeds []string
	s := newSession(t, "hooks", randomizer.WithHooks(randomizer.Hooks{
		OnGroup: func(depth int, seed string) {
			groups = append(groups, depth)
			seeds = append(seeds, seed)
		},
		OnUngroup: func(depth int) { ungroups = append(ungroups, depth) },
	}))

	inner := randomizer.Must(randomizer.Objects(s, randomizer.Template{randomizer.Static("k", 1)}))
	outer := randomizer.Must(randomizer.Arrays(s, randomizer.Constant(2), inner))
	outer()

	assert.Equal(t, []int{1, 2, 2}, groups)
	assert.Equal(t, []int{1, 1, 0}, ungroups)
	assert.Len(t, seeds, 3)
	assert.NotEmpty(t, seeds[0])
}

func TestSession_Fork(t *testing.T) {
	parent := newSession(t, "fork")
	fork := parent.Fork()
	assert.NotEqual(t, parent.Seed(), fork.Seed())

	again := newSession(t, "fork").Fork()
	assert.Equal(t, fork.Seed(), again.Seed())
	assert.Equal(t, fork.Uniform(), again.Uniform())

	// The fork consumed exactly one parent draw.
	ref := newSession(t, "fork")
	ref.Uniform()
	assert.Equal(t, ref.Uniform(), parent.Uniform())
}
