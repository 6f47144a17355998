package randomizer

import (
	"fmt"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a produced record. Keys keep the order of the Template that
// built it, including when marshalled to JSON.
type Object = *orderedmap.OrderedMap[string, any]

// NewObject returns an empty Object with room for n keys.
func NewObject(n int) Object {
	return orderedmap.New[string, any](orderedmap.WithCapacity[string, any](n))
}

// Field is one entry of a Template.
type Field struct {
	Key   string
	Value Resolvable[any]
}

// Template lists the fields of an Object in output order.
type Template []Field

// Dynamic declares a field filled by invoking f.
func Dynamic[T any](key string, f Factory[T]) Field {
	return Field{Key: key, Value: Derived(Erase(f))}
}

// Static declares a field holding v on every object.
func Static(key string, v any) Field {
	return Field{Key: key, Value: Constant(v)}
}

func (t Template) validate(op string) error {
	if t == nil {
		return missing(op, "template")
	}
	seen := make(map[string]struct{}, len(t))
	for i, f := range t {
		if f.Key == "" {
			return invalid(op, fmt.Sprintf("template[%d]", i), "key must not be empty")
		}
		if _, dup := seen[f.Key]; dup {
			return invalid(op, f.Key, "duplicate template key")
		}
		if f.Value.broken() {
			return invalid(op, f.Key, "derived value has a nil factory")
		}
		seen[f.Key] = struct{}{}
	}
	return nil
}

func (t Template) build() Object {
	obj := NewObject(len(t) + 1)
	for _, f := range t {
		obj.Set(f.Key, f.Value.Resolve())
	}
	return obj
}

// maxPrealloc caps the capacity reserved up front for a resolved count.
const maxPrealloc = 1024

func checkCount(op, arg string, c Resolvable[int]) error {
	if c.broken() {
		return missing(op, arg)
	}
	if !c.IsDerived() && c.value < 0 {
		return invalid(op, arg, "must not be negative, got %d", c.value)
	}
	return nil
}

// resolveCount panics with an *ArgumentError when a derived count is negative.
func resolveCount(op, arg string, c Resolvable[int]) int {
	n := c.Resolve()
	if n < 0 {
		panic(invalid(op, arg, "resolved to a negative value %d", n))
	}
	return n
}

// Alternatives picks one of options and invokes it. The pick and the
// production share one derived stream.
func Alternatives[T any](s *Session, options ...Factory[T]) (Factory[T], error) {
	if len(options) == 0 {
		return nil, missing("alternatives", "options")
	}
	if i := slices.IndexFunc(options, func(f Factory[T]) bool { return f == nil }); i >= 0 {
		return nil, invalid("alternatives", fmt.Sprintf("options[%d]", i), "factory is nil")
	}
	pick := Must(Choices(s, options))
	return func() T {
		return scoped(s, func() T {
			return pick()()
		})
	}, nil
}

// Arrays invokes item count times, count being resolved on every call.
func Arrays[T any](s *Session, count Resolvable[int], item Factory[T]) (Factory[[]T], error) {
	if err := checkCount("arrays", "count", count); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, missing("arrays", "item")
	}
	return arraysOf(s, count, item), nil
}

func arraysOf[T any](s *Session, count Resolvable[int], item Factory[T]) Factory[[]T] {
	return func() []T {
		return scoped(s, func() []T {
			n := resolveCount("arrays", "count", count)
			out := make([]T, 0, min(n, maxPrealloc))
			for range n {
				out = append(out, item())
			}
			return out
		})
	}
}

// Objects produces one Object per call following tmpl.
func Objects(s *Session, tmpl Template) (Factory[Object], error) {
	if err := tmpl.validate("objects"); err != nil {
		return nil, err
	}
	return objectsOf(s, slices.Clone(tmpl)), nil
}

func objectsOf(s *Session, tmpl Template) Factory[Object] {
	return func() Object {
		return scoped(s, tmpl.build)
	}
}

// Transformations resolves inputs in order and hands them to combine.
// Factories invoked by combine draw from the same derived stream.
func Transformations[R any](s *Session, inputs []Resolvable[any], combine func(values ...any) R) (Factory[R], error) {
	if combine == nil {
		return nil, invalid("transformations", "combine", "must be a function")
	}
	for i, in := range inputs {
		if in.broken() {
			return nil, invalid("transformations", fmt.Sprintf("inputs[%d]", i), "derived value has a nil factory")
		}
	}
	in := slices.Clone(inputs)
	return func() R {
		return scoped(s, func() R {
			values := make([]any, len(in))
			for i, r := range in {
				values[i] = r.Resolve()
			}
			return combine(values...)
		})
	}, nil
}

// Permutations draws count distinct elements of list without replacement.
// A count above len(list) yields a full permutation.
func Permutations[T any](s *Session, count Resolvable[int], list []T) (Factory[[]T], error) {
	if err := checkCount("permutations", "count", count); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, missing("permutations", "list")
	}
	src := slices.Clone(list)
	return func() []T {
		return scoped(s, func() []T {
			n := resolveCount("permutations", "count", count)
			pool := slices.Clone(src)
			out := make([]T, 0, min(n, len(pool)))
			for len(out) < n && len(pool) > 0 {
				i := Must(s.Integers(0, len(pool)-1)).Next()
				out = append(out, pool[i])
				pool = slices.Delete(pool, i, i+1)
			}
			return out
		})
	}, nil
}
