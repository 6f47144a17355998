package randomizer_test

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/randomizer"
)

// thirdDraw returns the third draw of n1 with composite invoked between the
// first and the last call.
func thirdDraw(t *testing.T, seed string, composite func(s *randomizer.Session, n1 *randomizer.NumberRange) func()) float64 {
	t.Helper()
	s := newSession(t, seed)
	n1 := randomizer.Must(s.Numbers(0, 1))
	invoke := composite(s, n1)
	n1.Next()
	invoke()
	return n1.Next()
}

func TestComposites_ConsumeOneParentDraw(t *testing.T) {
	plain := newSession(t, "X")
	ref := randomizer.Must(plain.Numbers(0, 1))
	ref.Next()
	ref.Next()
	want := ref.Next()

	tests := map[string]func(s *randomizer.Session, n1 *randomizer.NumberRange) func(){
		"objects": func(s *randomizer.Session, n1 *randomizer.NumberRange) func() {
			obj := randomizer.Must(randomizer.Objects(s, randomizer.Template{
				randomizer.Dynamic("a", n1.Factory()),
				randomizer.Dynamic("b", n1.Factory()),
			}))
			return func() { obj() }
		},
		"arrays": func(s *randomizer.Session, n1 *randomizer.NumberRange) func() {
			arr := randomizer.Must(randomizer.Arrays(s, randomizer.Constant(25), n1.Factory()))
			return func() { arr() }
		},
		"alternatives": func(s *randomizer.Session, n1 *randomizer.NumberRange) func() {
			other := randomizer.Must(s.Numbers(10, 20))
			alt := randomizer.Must(randomizer.Alternatives(s, n1.Factory(), other.Factory()))
			return func() { alt() }
		},
		"transformations": func(s *randomizer.Session, n1 *randomizer.NumberRange) func() {
			sum := randomizer.Must(randomizer.Transformations(s,
				[]randomizer.Resolvable[any]{
					randomizer.Derived(randomizer.Erase(n1.Factory())),
					randomizer.Constant[any](2.0),
				},
				func(values ...any) float64 {
					// Factories invoked here draw from the derived stream too.
					return values[0].(float64)*values[1].(float64) + n1.Next()
				}))
			return func() { sum() }
		},
		"permutations": func(s *randomizer.Session, _ *randomizer.NumberRange) func() {
			p := randomizer.Must(randomizer.Permutations(s, randomizer.Constant(3), []int{1, 2, 3, 4, 5}))
			return func() { p() }
		},
		"composites": func(s *randomizer.Session, n1 *randomizer.NumberRange) func() {
			tree := randomizer.Must(randomizer.Composites(s, randomizer.Constant(2), 2, "children",
				randomizer.Template{randomizer.Dynamic("v", n1.Factory())}))
			return func() { tree() }
		},
		"phrases": func(s *randomizer.Session, _ *randomizer.NumberRange) func() {
			p := randomizer.Must(s.Phrases(randomizer.Constant(12)))
			return func() { p() }
		},
	}

	for name, composite := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, thirdDraw(t, "X", composite))
		})
	}
}

func TestComposites_ScalarsDoNotGroup(t *testing.T) {
	grouped := 0
	s := newSession(t, "flat", randomizer.WithHooks(randomizer.Hooks{
		OnGroup: func(int, string) { grouped++ },
	}))
	randomizer.Must(s.Numbers(0, 1)).Next()
	randomizer.Must(s.Integers(0, 1)).Next()
	randomizer.Must(s.Booleans())()
	s.Seeds()()
	randomizer.Must(randomizer.Choices(s, []int{1, 2}))()
	randomizer.Transform(randomizer.Must(s.Numbers(0, 1)).Factory(), func(v float64) float64 { return v * 2 })()
	assert.Zero(t, grouped)
}

func TestTransform_ConsumesSameDraws(t *testing.T) {
	a := randomizer.Must(newSession(t, "transform").Numbers(0, 1)).Factory()
	b := randomizer.Must(newSession(t, "transform").Numbers(0, 1)).Factory()

	doubled := a.Map(func(v float64) float64 { return v * 2 })
	for range 5 {
		assert.Equal(t, b()*2, doubled())
	}

	label := randomizer.Transform(b, func(v float64) bool { return v < 0.5 })
	assert.IsType(t, true, label())
}

func TestAlternatives(t *testing.T) {
	s := newSession(t, "alternatives")
	low := randomizer.Must(s.Integers(0, 9))
	high := randomizer.Must(s.Integers(100, 109))
	alt, err := randomizer.Alternatives(s, low.Factory(), high.Factory())
	require.NoError(t, err)

	var sawLow, sawHigh bool
	for range 200 {
		v := alt()
		switch {
		case v <= 9:
			sawLow = true
		case v >= 100 && v <= 109:
			sawHigh = true
		default:
			t.Fatalf("unexpected value %d", v)
		}
	}
	assert.True(t, sawLow)
	assert.True(t, sawHigh)

	_, err = randomizer.Alternatives[int](s)
	assert.ErrorIs(t, err, randomizer.ErrMissingArgument)
	_, err = randomizer.Alternatives(s, low.Factory(), nil)
	assert.ErrorIs(t, err, randomizer.ErrInvalidArgument)
}

func TestArrays(t *testing.T) {
	s := newSession(t, "arrays")
	item := randomizer.Must(s.Integers(1, 3)).Factory()

	fixed := randomizer.Must(randomizer.Arrays(s, randomizer.Constant(4), item))
	assert.Len(t, fixed(), 4)

	empty := randomizer.Must(randomizer.Arrays(s, randomizer.Constant(0), item))
	assert.Empty(t, empty())

	count := randomizer.Must(s.Integers(2, 5))
	dynamic := randomizer.Must(randomizer.Arrays(s, randomizer.Derived(count.Factory()), item))
	for range 50 {
		n := len(dynamic())
		assert.GreaterOrEqual(t, n, 2)
		assert.LessOrEqual(t, n, 5)
	}

	_, err := randomizer.Arrays(s, randomizer.Constant(-1), item)
	assert.ErrorIs(t, err, randomizer.ErrInvalidArgument)
	_, err = randomizer.Arrays[int](s, randomizer.Constant(1), nil)
	assert.ErrorIs(t, err, randomizer.ErrMissingArgument)
	_, err = randomizer.Arrays(s, randomizer.Derived[int](nil), item)
	assert.ErrorIs(t, err, randomizer.ErrMissingArgument)
}

func TestArrays_NegativeDerivedCountSurfacesAtInvocation(t *testing.T) {
	s := newSession(t, "negative")
	bad := randomizer.Factory[int](func() int { return -2 })
	arr, err := randomizer.Arrays(s, randomizer.Derived(bad), randomizer.Must(s.Numbers(0, 1)).Factory())
	require.NoError(t, err)

	_, err = arr.Try()
	assert.ErrorIs(t, err, randomizer.ErrInvalidArgument)
	assert.Equal(t, 0, s.Depth(), "stack must be balanced after a failed invocation")
}

func TestTransformations_PanicKeepsStackBalanced(t *testing.T) {
	s := newSession(t, "panic")
	boom := errors.New("boom")
	inner := randomizer.Must(randomizer.Arrays(s, randomizer.Constant(2), randomizer.Must(s.Numbers(0, 1)).Factory()))
	f := randomizer.Must(randomizer.Transformations(s, nil, func(...any) int {
		inner()
		panic(boom)
	}))

	assert.PanicsWithValue(t, boom, func() { f() })
	assert.Equal(t, 0, s.Depth())

	// Try only recovers argument errors.
	assert.Panics(t, func() { _, _ = f.Try() })
	assert.Equal(t, 0, s.Depth())
}

func TestTransformations(t *testing.T) {
	s := newSession(t, "transformations")
	name := randomizer.Must(randomizer.Choices(s, []string{"ada", "grace"}))
	f, err := randomizer.Transformations(s,
		[]randomizer.Resolvable[any]{
			randomizer.Derived(randomizer.Erase(name)),
			randomizer.Constant[any]("@example.com"),
		},
		func(values ...any) string {
			return values[0].(string) + values[1].(string)
		})
	require.NoError(t, err)
	assert.Contains(t, []string{"ada@example.com", "grace@example.com"}, f())

	_, err = randomizer.Transformations[string](s, nil, nil)
	assert.ErrorIs(t, err, randomizer.ErrInvalidArgument)
}

func TestObjects_KeepTemplateOrder(t *testing.T) {
	s := newSession(t, "objects")
	obj, err := randomizer.Objects(s, randomizer.Template{
		randomizer.Dynamic("zeta", randomizer.Must(s.Integers(1, 3)).Factory()),
		randomizer.Static("alpha", "fixed"),
		randomizer.Dynamic("mid", randomizer.Must(s.Booleans())),
	})
	require.NoError(t, err)

	o := obj()
	var keys []string
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	alpha, _ := o.Get("alpha")
	assert.Equal(t, "fixed", alpha)

	raw, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Regexp(t, `^\{"zeta":\d,"alpha":"fixed","mid":(true|false)\}$`, string(raw))
}

func TestObjects_Validation(t *testing.T) {
	s := newSession(t, "objects validation")
	_, err := randomizer.Objects(s, nil)
	assert.ErrorIs(t, err, randomizer.ErrMissingArgument)

	_, err = randomizer.Objects(s, randomizer.Template{randomizer.Static("a", 1), randomizer.Static("a", 2)})
	assert.ErrorIs(t, err, randomizer.ErrInvalidArgument)

	_, err = randomizer.Objects(s, randomizer.Template{randomizer.Static("", 1)})
	assert.ErrorIs(t, err, randomizer.ErrInvalidArgument)

	_, err = randomizer.Objects(s, randomizer.Template{randomizer.Dynamic[int]("a", nil)})
	assert.ErrorIs(t, err, randomizer.ErrInvalidArgument)

	empty := randomizer.Must(randomizer.Objects(s, randomizer.Template{}))
	assert.Equal(t, 0, empty().Len())
}

func TestPermutations(t *testing.T) {
	s := newSession(t, "permutations")
	list := []string{"foo", "bar", "baz", "quux", "corge"}

	three := randomizer.Must(randomizer.Permutations(s, randomizer.Constant(3), list))
	for range 100 {
		out := three()
		require.Len(t, out, 3)
		assert.Len(t, uniq(out), 3)
		for _, v := range out {
			assert.Contains(t, list, v)
		}
	}

	all := randomizer.Must(randomizer.Permutations(s, randomizer.Constant(10), list))
	for range 20 {
		out := all()
		assert.ElementsMatch(t, list, out)
	}

	assert.Equal(t, []string{"foo", "bar", "baz", "quux", "corge"}, list, "source list must not be mutated")

	_, err := randomizer.Permutations(s, randomizer.Constant(1), []string{})
	assert.ErrorIs(t, err, randomizer.ErrMissingArgument)
}

func uniq[T comparable](in []T) []T {
	var out []T
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func TestDecode(t *testing.T) {
	type product struct {
		Name  string   `json:"name"`
		Price float64  `json:"price"`
		Tags  []string `json:"tags"`
	}

	s := newSession(t, "decode")
	tags := randomizer.Must(randomizer.Arrays(s, randomizer.Constant(2), randomizer.Must(s.Phrases(randomizer.Constant(1)))))
	obj := randomizer.Must(randomizer.Objects(s, randomizer.Template{
		randomizer.Static("name", "widget"),
		randomizer.Dynamic("price", randomizer.Must(s.Numbers(1, 2)).Factory()),
		randomizer.Dynamic("tags", tags),
	}))

	var p product
	require.NoError(t, randomizer.Decode(obj(), &p))
	assert.Equal(t, "widget", p.Name)
	assert.GreaterOrEqual(t, p.Price, 1.0)
	assert.Len(t, p.Tags, 2)
}
