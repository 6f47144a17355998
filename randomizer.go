package randomizer

import (
	"io"
	"log/slog"
)

// Session owns the current bit-stream and the stack of suspended streams.
// It is the seed-derivation authority for every factory built from it.
//
// A Session is not safe for concurrent use. Use Fork to hand each goroutine
// its own independently seeded session.
type Session struct {
	seed      string
	current   Source
	stack     []Source
	newSource SourceFactory
	words     WordSource
	hooks     Hooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithLogger sets a custom structured logger for the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithHooks registers observability hooks for stream derivation.
func WithHooks(hooks Hooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithSource replaces the bit-stream backend (default: NewPCGSource).
func WithSource(factory SourceFactory) Option {
	return func(s *Session) {
		s.newSource = factory
	}
}

// WithWords replaces the word-list backend used by text factories.
func WithWords(words WordSource) Option {
	return func(s *Session) {
		s.words = words
	}
}

// New creates a session whose current stream is derived from seed.
func New(seed string, opts ...Option) (*Session, error) {
	if seed == "" {
		return nil, missing("create", "seed")
	}

	s := &Session{seed: seed}
	for _, opt := range opts {
		opt(s)
	}

	if s.newSource == nil {
		s.newSource = NewPCGSource
	}
	if s.words == nil {
		s.words = loremWords
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s.current = s.newSource(seed)
	s.logger.Debug("session created", "seed", seed)
	return s, nil
}

// Seed returns the seed the session was created from.
func (s *Session) Seed() string {
	return s.seed
}

// Uniform draws the next value in [0, 1) from the current stream.
func (s *Session) Uniform() float64 {
	return s.current.Float64()
}

// Depth reports how many streams are suspended.
func (s *Session) Depth() int {
	return len(s.stack)
}

// Group derives a seed from one draw of the current stream, suspends the
// current stream and switches to a fresh stream built from that seed.
// Every Group must be matched by exactly one Ungroup.
func (s *Session) Group() {
	seed := formatSeed(s.current.Float64())
	s.stack = append(s.stack, s.current)
	s.current = s.newSource(seed)

	if s.hooks.OnGroup != nil {
		s.hooks.OnGroup(len(s.stack), seed)
	}
}

// Ungroup discards the current stream and restores the last suspended one.
// It panics when nothing is suspended: that is an unbalanced Group/Ungroup pair.
func (s *Session) Ungroup() {
	n := len(s.stack)
	if n == 0 {
		panic("randomizer: Ungroup called without a matching Group")
	}
	s.current = s.stack[n-1]
	s.stack[n-1] = nil
	s.stack = s.stack[:n-1]

	if s.hooks.OnUngroup != nil {
		s.hooks.OnUngroup(len(s.stack))
	}
}

// Fork returns an independent session seeded by one Seeds draw of s.
// The fork shares the backend, word source, hooks and logger of s but none
// of its streams, so it can be handed to another goroutine.
func (s *Session) Fork() *Session {
	seed := s.Seeds()()
	fork := &Session{
		seed:      seed,
		newSource: s.newSource,
		words:     s.words,
		hooks:     s.hooks,
		logger:    s.logger,
	}
	fork.current = fork.newSource(seed)
	s.logger.Debug("session forked", "seed", seed)
	return fork
}

// scoped runs fn inside its own derived stream.
// The stream is released on every exit path, panics included.
func scoped[T any](s *Session, fn func() T) T {
	s.Group()
	defer s.Ungroup()
	return fn()
}

// index maps one draw onto [0, n).
func (s *Session) index(n int) int {
	i := int(s.Uniform() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
