// Package lorem generates placeholder Latin text from a caller supplied
// uniform random source.
package lorem

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Units selects what Count counts.
type Units string

const (
	Words      Units = "words"
	Sentences  Units = "sentences"
	Paragraphs Units = "paragraphs"
)

// Bounds of generated sentences and paragraphs.
const (
	MinSentenceWords     = 5
	MaxSentenceWords     = 15
	MinParagraphSentence = 3
	MaxParagraphSentence = 7
)

// Options configures Generate.
type Options struct {
	Count int
	Units Units
	// Random returns values in [0, 1). It is the only source of randomness.
	Random func() float64
}

// Generate returns Count units of text. An empty Units means Words and a
// non-positive Count yields "". Generate panics if Random is nil.
func Generate(opts Options) string {
	if opts.Random == nil {
		panic("lorem: Random is required")
	}
	if opts.Count <= 0 {
		return ""
	}

	g := generator{random: opts.Random}
	switch opts.Units {
	case Sentences:
		return g.join(opts.Count, " ", g.sentence)
	case Paragraphs:
		return g.join(opts.Count, "\n\n", g.paragraph)
	default:
		return g.join(opts.Count, " ", g.word)
	}
}

type generator struct {
	random func() float64
}

// between draws an integer in [lo, hi].
func (g generator) between(lo, hi int) int {
	n := hi - lo + 1
	i := int(g.random() * float64(n))
	if i >= n {
		i = n - 1
	}
	return lo + i
}

func (g generator) join(n int, sep string, unit func() string) string {
	var b strings.Builder
	for i := range n {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(unit())
	}
	return b.String()
}

func (g generator) word() string {
	return dictionary[g.between(0, len(dictionary)-1)]
}

func (g generator) sentence() string {
	text := g.join(g.between(MinSentenceWords, MaxSentenceWords), " ", g.word)
	return capitalize(text) + "."
}

func (g generator) paragraph() string {
	return g.join(g.between(MinParagraphSentence, MaxParagraphSentence), " ", g.sentence)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
