package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aretw0/randomizer"
	"github.com/aretw0/randomizer/internal/compiler"
	"github.com/aretw0/randomizer/pkg/domain"
	"github.com/aretw0/randomizer/pkg/ports"
	"github.com/aretw0/randomizer/pkg/schema"
)

// ErrNoStore is returned by saving runs on a runner without a store.
var ErrNoStore = errors.New("runner has no fixture store")

// ErrDrawPanicked wraps a panic raised by a factory during a run.
var ErrDrawPanicked = errors.New("factory panicked")

// ErrLimitExceeded is returned when a run asks for more values or workers
// than the runner allows.
var ErrLimitExceeded = errors.New("run limit exceeded")

// fixtureNamespace scopes the name-based fixture IDs.
var fixtureNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/aretw0/randomizer/fixtures"))

// Runner draws fixtures from blueprints.
type Runner struct {
	// Store receives fixtures of saving runs. Optional.
	Store ports.FixtureStore
	// Logger is used for run logging. If nil, a no-op logger is used.
	Logger *slog.Logger
	// Hooks are installed on every session the runner creates.
	Hooks randomizer.Hooks
	// Workers is the default worker count; values below 2 run sequentially.
	Workers int
	// Source is the bit-stream backend. If nil, the library default is used.
	Source randomizer.SourceFactory
	// Now stamps fixtures. If nil, time.Now is used.
	Now func() time.Time
	// MaxCount and MaxWorkers bound every run. Zero selects
	// DefaultMaxCount and DefaultMaxWorkers.
	MaxCount   int
	MaxWorkers int
}

// Default run limits.
const (
	DefaultMaxCount   = 100_000
	DefaultMaxWorkers = 64
)

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.MaxCount <= 0 {
		r.MaxCount = DefaultMaxCount
	}
	if r.MaxWorkers <= 0 {
		r.MaxWorkers = DefaultMaxWorkers
	}
	return r
}

// FixtureID derives the deterministic ID of a run.
func FixtureID(blueprint, seed string, count, workers int) string {
	name := fmt.Sprintf("%s\x00%s\x00%d\x00%d", blueprint, seed, count, workers)
	return uuid.NewSHA1(fixtureNamespace, []byte(name)).String()
}

// RunDocument parses a YAML or JSON blueprint and runs it.
func (r *Runner) RunDocument(ctx context.Context, doc []byte, opts RunOptions) (*domain.Fixture, error) {
	bp, err := schema.Parse(doc)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, bp, opts)
}

// RunTemplate loads a blueprint from lib and runs it.
func (r *Runner) RunTemplate(ctx context.Context, lib ports.TemplateLibrary, id string, opts RunOptions) (*domain.Fixture, error) {
	doc, err := lib.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %q: %w", id, err)
	}
	return r.RunDocument(ctx, doc, opts)
}

// Run draws a fixture from bp. The context is checked between draws.
func (r *Runner) Run(ctx context.Context, bp *schema.Blueprint, opts RunOptions) (*domain.Fixture, error) {
	if bp == nil || bp.Root == nil {
		return nil, errors.New("blueprint with a root spec is required")
	}

	seed := opts.Seed
	if seed == "" {
		seed = bp.Seed
	}
	count := opts.Count
	if count <= 0 {
		count = bp.Draws()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = r.Workers
	}
	if count > r.MaxCount {
		return nil, fmt.Errorf("%w: count %d is above %d", ErrLimitExceeded, count, r.MaxCount)
	}
	if workers > r.MaxWorkers {
		return nil, fmt.Errorf("%w: %d workers is above %d", ErrLimitExceeded, workers, r.MaxWorkers)
	}
	workers = min(workers, count)
	if workers < 2 {
		workers = 0
	}

	logger := r.Logger.With("blueprint", bp.Name, "seed", seed)

	s, err := randomizer.New(seed, r.sessionOptions(logger)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	start := r.Now()
	var values []any
	if workers == 0 {
		values, err = draw(ctx, s, bp.Root, count)
	} else {
		values, err = drawParallel(ctx, s, bp.Root, count, workers)
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		return nil, err
	}

	fixture := &domain.Fixture{
		ID:        FixtureID(bp.Name, seed, count, workers),
		Blueprint: bp.Name,
		Seed:      seed,
		Workers:   workers,
		Values:    values,
		CreatedAt: r.Now().UTC(),
	}
	logger.Debug("fixture generated", "id", fixture.ID, "values", count, "workers", workers, "duration", fixture.CreatedAt.Sub(start))

	if opts.Save {
		if r.Store == nil {
			return nil, ErrNoStore
		}
		if err := r.Store.Save(ctx, fixture); err != nil {
			return nil, fmt.Errorf("failed to save fixture: %w", err)
		}
		logger.Info("fixture saved", "id", fixture.ID)
	}

	return fixture, nil
}

func (r *Runner) sessionOptions(logger *slog.Logger) []randomizer.Option {
	opts := []randomizer.Option{
		randomizer.WithLogger(logger),
		randomizer.WithHooks(r.Hooks),
	}
	if r.Source != nil {
		opts = append(opts, randomizer.WithSource(r.Source))
	}
	return opts
}

// drawInto fills out with values produced by spec compiled against s.
// Any panic raised while drawing is returned as an error, so a failing
// worker goroutine never takes the process down.
func drawInto(ctx context.Context, s *randomizer.Session, spec *schema.Spec, out []any) (err error) {
	f, err := compiler.New(s).Compile(spec)
	if err != nil {
		return err
	}

	i := 0
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("value %d: %w: %v", i, ErrDrawPanicked, r)
		}
	}()

	for ; i < len(out); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		v, err := f.Try()
		if err != nil {
			return fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}
	return nil
}

func draw(ctx context.Context, s *randomizer.Session, spec *schema.Spec, count int) ([]any, error) {
	values := make([]any, count)
	if err := drawInto(ctx, s, spec, values); err != nil {
		return nil, err
	}
	return values, nil
}

// drawParallel gives worker i the i-th fork of s and the i-th contiguous
// share of the output.
func drawParallel(ctx context.Context, s *randomizer.Session, spec *schema.Spec, count, workers int) ([]any, error) {
	values := make([]any, count)
	forks := make([]*randomizer.Session, workers)
	for i := range forks {
		forks[i] = s.Fork()
	}

	g, ctx := errgroup.WithContext(ctx)
	base, extra := count/workers, count%workers
	offset := 0
	for i, fork := range forks {
		n := base
		if i < extra {
			n++
		}
		share := values[offset : offset+n]
		offset += n

		g.Go(func() error {
			if err := drawInto(ctx, fork, spec, share); err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}
