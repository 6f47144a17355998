package randomizer

import (
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/randomizer/pkg/lorem"
)

// WordUnits selects what a WordSource counts.
type WordUnits string

const (
	UnitWords      WordUnits = "words"
	UnitSentences  WordUnits = "sentences"
	UnitParagraphs WordUnits = "paragraphs"
)

// WordRequest is handed to a WordSource. Random is bound to the session's
// current stream and is the only randomness the source may use.
type WordRequest struct {
	Count  int
	Units  WordUnits
	Random func() float64
}

// WordSource is the word-list backend behind the text factories.
type WordSource interface {
	Generate(req WordRequest) string
}

// WordSourceFunc adapts a function to WordSource.
type WordSourceFunc func(req WordRequest) string

func (f WordSourceFunc) Generate(req WordRequest) string {
	return f(req)
}

var loremWords = WordSourceFunc(func(req WordRequest) string {
	return lorem.Generate(lorem.Options{
		Count:  req.Count,
		Units:  lorem.Units(req.Units),
		Random: req.Random,
	})
})

// Phrases produces a phrase of words words.
func (s *Session) Phrases(words Resolvable[int]) (Factory[string], error) {
	if words.broken() {
		return nil, missing("phrases", "words")
	}
	if !words.IsDerived() && words.value <= 0 {
		return nil, invalid("phrases", "words", "must be a positive integer, got %d", words.value)
	}
	return func() string {
		return scoped(s, func() string {
			n := words.Resolve()
			if n <= 0 {
				panic(invalid("phrases", "words", "resolved to a non-positive value %d", n))
			}
			return s.text(n, UnitWords)
		})
	}, nil
}

// Sentences produces one sentence per call.
func (s *Session) Sentences() Factory[string] {
	return func() string {
		return scoped(s, func() string {
			return s.text(1, UnitSentences)
		})
	}
}

// Paragraphs produces one paragraph per call.
func (s *Session) Paragraphs() Factory[string] {
	return func() string {
		return scoped(s, func() string {
			return s.text(1, UnitParagraphs)
		})
	}
}

func (s *Session) text(count int, units WordUnits) string {
	return s.words.Generate(WordRequest{Count: count, Units: units, Random: s.Uniform})
}

// Dates produces instants between min and max at millisecond precision.
// Results are in UTC. The zero time.Time is an ordinary bound
// (0001-01-01T00:00:00Z), not an absent one.
func (s *Session) Dates(min, max time.Time) (Factory[time.Time], error) {
	lo, hi := min.UnixMilli(), max.UnixMilli()
	if lo >= hi {
		return nil, badRange("dates", lo, hi)
	}
	ms, err := s.Integers(int(lo), int(hi))
	if err != nil {
		return nil, err
	}
	return func() time.Time {
		return time.UnixMilli(int64(ms.Next())).UTC()
	}, nil
}

// Character sets for Strings.
const (
	CharsetAlphaNumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CharsetDigits       = "0123456789"
	CharsetHex          = "0123456789abcdef"
	CharsetSpecial      = "!@#$%^&*()-_=+[]{}<>?"
)

// Strings produces strings of length characters drawn from charset.
func (s *Session) Strings(charset string, length Resolvable[int]) (Factory[string], error) {
	if charset == "" {
		return nil, missing("strings", "charset")
	}
	if err := checkCount("strings", "length", length); err != nil {
		return nil, err
	}
	pick := Must(Choices(s, []rune(charset)))
	return func() string {
		return scoped(s, func() string {
			n := resolveCount("strings", "length", length)
			out := make([]rune, 0, min(n, maxPrealloc))
			for range n {
				out = append(out, pick())
			}
			return string(out)
		})
	}, nil
}

// UUIDs produces version 4 UUIDs whose bytes come from the session stream.
func (s *Session) UUIDs() Factory[uuid.UUID] {
	return func() uuid.UUID {
		return scoped(s, func() uuid.UUID {
			return Must(uuid.NewRandomFromReader(streamReader{s}))
		})
	}
}

// streamReader turns draws into bytes, one draw per byte.
type streamReader struct {
	s *Session
}

func (r streamReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.s.index(256))
	}
	return len(p), nil
}
