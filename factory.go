package randomizer

// Factory is a zero-argument producer of pseudo-random values.
// Building a factory consumes no randomness; every call does.
type Factory[T any] func() T

// Try invokes f and converts an invocation-time *ArgumentError panic
// (for example a derived count resolving to a negative number) into an error.
// Any other panic is propagated.
func (f Factory[T]) Try() (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			argErr, ok := r.(*ArgumentError)
			if !ok {
				panic(r)
			}
			err = argErr
		}
	}()
	return f(), nil
}

// Map returns a factory applying fn to every value of f.
func (f Factory[T]) Map(fn func(T) T) Factory[T] {
	return Transform(f, fn)
}

// Transform returns a factory that invokes f and applies fn to its result.
// It draws exactly what f draws and opens no group of its own.
func Transform[T, R any](f Factory[T], fn func(T) R) Factory[R] {
	return func() R {
		return fn(f())
	}
}

// Erase widens a typed factory to Factory[any].
func Erase[T any](f Factory[T]) Factory[any] {
	if f == nil {
		return nil
	}
	return func() any {
		return f()
	}
}

// Must panics if err is non-nil. It is meant for factories built from
// literal arguments known to be valid.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Resolvable is either a constant or a factory producing the value on demand.
// The zero value is the constant zero value of T.
type Resolvable[T any] struct {
	value   T
	factory Factory[T]
	derived bool
}

// Constant wraps a fixed value.
func Constant[T any](v T) Resolvable[T] {
	return Resolvable[T]{value: v}
}

// Derived wraps a factory invoked on every Resolve.
func Derived[T any](f Factory[T]) Resolvable[T] {
	return Resolvable[T]{factory: f, derived: true}
}

// Resolve returns the constant or invokes the factory.
func (r Resolvable[T]) Resolve() T {
	if r.derived {
		return r.factory()
	}
	return r.value
}

// IsDerived reports whether r wraps a factory.
func (r Resolvable[T]) IsDerived() bool {
	return r.derived
}

// broken reports a Derived built from a nil factory.
func (r Resolvable[T]) broken() bool {
	return r.derived && r.factory == nil
}

// Any widens a typed Resolvable to Resolvable[any].
func Any[T any](r Resolvable[T]) Resolvable[any] {
	if r.derived {
		return Resolvable[any]{factory: Erase(r.factory), derived: true}
	}
	return Constant[any](r.value)
}
