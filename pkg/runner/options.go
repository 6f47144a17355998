package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/randomizer"
	"github.com/aretw0/randomizer/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the FixtureStore used by saving runs.
func WithStore(store ports.FixtureStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithHooks observes stream derivation in every session the runner creates.
func WithHooks(hooks randomizer.Hooks) Option {
	return func(r *Runner) {
		r.Hooks = hooks
	}
}

// WithWorkers sets the default worker count.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.Workers = n
	}
}

// WithSource replaces the bit-stream backend of created sessions.
func WithSource(source randomizer.SourceFactory) Option {
	return func(r *Runner) {
		r.Source = source
	}
}

// WithLimits bounds the values and workers of a single run.
func WithLimits(maxCount, maxWorkers int) Option {
	return func(r *Runner) {
		r.MaxCount = maxCount
		r.MaxWorkers = maxWorkers
	}
}

// WithClock overrides the fixture timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.Now = now
	}
}

// RunOptions overrides blueprint settings for one run.
type RunOptions struct {
	// Seed replaces the blueprint seed when not empty.
	Seed string
	// Count replaces the blueprint count when positive.
	Count int
	// Workers replaces the runner default when positive.
	Workers int
	// Save stores the fixture in the runner's store.
	Save bool
}
