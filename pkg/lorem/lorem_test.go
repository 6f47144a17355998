package lorem

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source(seed uint64) func() float64 {
	return rand.New(rand.NewPCG(seed, seed+1)).Float64
}

func TestGenerate_Words(t *testing.T) {
	out := Generate(Options{Count: 4, Units: Words, Random: source(1)})
	words := strings.Split(out, " ")
	require.Len(t, words, 4)
	for _, w := range words {
		assert.True(t, slices.Contains(dictionary, w), "unexpected word %q", w)
	}
}

func TestGenerate_DefaultsToWords(t *testing.T) {
	out := Generate(Options{Count: 3, Random: source(2)})
	assert.Len(t, strings.Fields(out), 3)
}

func TestGenerate_Sentence(t *testing.T) {
	for seed := range uint64(50) {
		out := Generate(Options{Count: 1, Units: Sentences, Random: source(seed)})
		require.True(t, strings.HasSuffix(out, "."), out)
		first := []rune(out)[0]
		assert.True(t, unicode.IsUpper(first), out)

		n := len(strings.Fields(out))
		assert.GreaterOrEqual(t, n, MinSentenceWords)
		assert.LessOrEqual(t, n, MaxSentenceWords)
	}
}

func TestGenerate_Paragraphs(t *testing.T) {
	out := Generate(Options{Count: 2, Units: Paragraphs, Random: source(3)})
	paragraphs := strings.Split(out, "\n\n")
	require.Len(t, paragraphs, 2)
	for _, p := range paragraphs {
		sentences := strings.Count(p, ".")
		assert.GreaterOrEqual(t, sentences, MinParagraphSentence)
		assert.LessOrEqual(t, sentences, MaxParagraphSentence)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(Options{Count: 2, Units: Paragraphs, Random: source(7)})
	b := Generate(Options{Count: 2, Units: Paragraphs, Random: source(7)})
	assert.Equal(t, a, b)
}

func TestGenerate_EdgeCases(t *testing.T) {
	assert.Empty(t, Generate(Options{Count: 0, Random: source(1)}))
	assert.Panics(t, func() { Generate(Options{Count: 1}) })
}
