// Package compiler turns blueprint specs into factories bound to a session.
package compiler

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/randomizer"
	"github.com/aretw0/randomizer/pkg/schema"
)

// Named character sets accepted by the strings kind.
var charsets = map[string]string{
	"alphanumeric": randomizer.CharsetAlphaNumeric,
	"digits":       randomizer.CharsetDigits,
	"hex":          randomizer.CharsetHex,
	"special":      randomizer.CharsetSpecial,
}

// Compiler builds factories for one session.
type Compiler struct {
	s *randomizer.Session
}

// New creates a compiler bound to s.
func New(s *randomizer.Session) *Compiler {
	return &Compiler{s: s}
}

// Compile builds the factory described by spec. The spec is expected to be
// valid (see schema.Validate); construction errors are still reported with
// the path of the offending spec.
func (c *Compiler) Compile(spec *schema.Spec) (randomizer.Factory[any], error) {
	return c.compile("root", spec)
}

func (c *Compiler) compile(path string, spec *schema.Spec) (randomizer.Factory[any], error) {
	if spec == nil {
		return nil, fmt.Errorf("%s: spec is required", path)
	}

	f, err := c.build(path, spec)
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", path, spec.Kind, err)
	}
	return f, nil
}

func (c *Compiler) build(path string, spec *schema.Spec) (randomizer.Factory[any], error) {
	s := c.s
	switch spec.Kind {
	case schema.KindConstant:
		v := spec.Value
		return func() any { return v }, nil

	case schema.KindNumbers:
		r, err := s.Numbers(deref(spec.Min), deref(spec.Max), spec.Step)
		if err != nil {
			return nil, err
		}
		return randomizer.Erase(r.Factory()), nil

	case schema.KindIntegers:
		r, err := s.Integers(int(deref(spec.Min)), int(deref(spec.Max)))
		if err != nil {
			return nil, err
		}
		return randomizer.Erase(r.Factory()), nil

	case schema.KindBooleans:
		var split []float64
		if spec.Split != nil {
			split = append(split, *spec.Split)
		}
		return erased(s.Booleans(split...))

	case schema.KindSeeds:
		return randomizer.Erase(s.Seeds()), nil

	case schema.KindChoices:
		return erased(randomizer.Choices(s, spec.Values))

	case schema.KindAlternatives:
		options := make([]randomizer.Factory[any], len(spec.Options))
		for i, opt := range spec.Options {
			f, err := c.compile(fmt.Sprintf("%s.options[%d]", path, i), opt)
			if err != nil {
				return nil, err
			}
			options[i] = f
		}
		return randomizer.Alternatives(s, options...)

	case schema.KindArrays:
		count, err := c.count(path+".count", spec.Count)
		if err != nil {
			return nil, err
		}
		item, err := c.compile(path+".items", spec.Items)
		if err != nil {
			return nil, err
		}
		return erased(randomizer.Arrays(s, count, item))

	case schema.KindObjects:
		tmpl, err := c.template(path, spec.Fields)
		if err != nil {
			return nil, err
		}
		return erased(randomizer.Objects(s, tmpl))

	case schema.KindPermutations:
		count, err := c.count(path+".count", spec.Count)
		if err != nil {
			return nil, err
		}
		return erased(randomizer.Permutations(s, count, spec.Values))

	case schema.KindComposites:
		branches, err := c.count(path+".branches", spec.Branches)
		if err != nil {
			return nil, err
		}
		tmpl, err := c.template(path, spec.Fields)
		if err != nil {
			return nil, err
		}
		return erased(randomizer.Composites(s, branches, spec.Depth, spec.Children, tmpl))

	case schema.KindPhrases:
		words, err := c.count(path+".words", spec.Words)
		if err != nil {
			return nil, err
		}
		return erased(s.Phrases(words))

	case schema.KindSentences:
		return randomizer.Erase(s.Sentences()), nil

	case schema.KindParagraphs:
		return randomizer.Erase(s.Paragraphs()), nil

	case schema.KindStrings:
		length, err := c.count(path+".length", spec.Length)
		if err != nil {
			return nil, err
		}
		charset := spec.Charset
		if named, ok := charsets[charset]; ok {
			charset = named
		}
		return erased(s.Strings(charset, length))

	case schema.KindDates:
		from, err := time.Parse(time.RFC3339, spec.From)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		to, err := time.Parse(time.RFC3339, spec.To)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		return erased(s.Dates(from, to))

	case schema.KindUUIDs:
		return randomizer.Erase(randomizer.Transform(s.UUIDs(), uuid.UUID.String)), nil
	}
	return nil, fmt.Errorf("unknown kind %q", spec.Kind)
}

// count compiles an integer producing spec.
func (c *Compiler) count(path string, spec *schema.Spec) (randomizer.Resolvable[int], error) {
	if spec == nil {
		return randomizer.Resolvable[int]{}, fmt.Errorf("%s: spec is required", path)
	}

	switch spec.Kind {
	case schema.KindConstant:
		n, ok := schema.AsInt(spec.Value)
		if !ok {
			return randomizer.Resolvable[int]{}, fmt.Errorf("%s: %v is not an integer", path, spec.Value)
		}
		return randomizer.Constant(n), nil

	case schema.KindIntegers:
		r, err := c.s.Integers(int(deref(spec.Min)), int(deref(spec.Max)))
		if err != nil {
			return randomizer.Resolvable[int]{}, fmt.Errorf("%s: %w", path, err)
		}
		return randomizer.Derived(r.Factory()), nil

	case schema.KindChoices:
		values := make([]int, len(spec.Values))
		for i, v := range spec.Values {
			n, ok := schema.AsInt(v)
			if !ok {
				return randomizer.Resolvable[int]{}, fmt.Errorf("%s.values[%d]: %v is not an integer", path, i, v)
			}
			values[i] = n
		}
		pick, err := randomizer.Choices(c.s, values)
		if err != nil {
			return randomizer.Resolvable[int]{}, fmt.Errorf("%s: %w", path, err)
		}
		return randomizer.Derived(pick), nil
	}
	return randomizer.Resolvable[int]{}, fmt.Errorf("%s: kind %q does not produce integers", path, spec.Kind)
}

func (c *Compiler) template(path string, fields []schema.NamedSpec) (randomizer.Template, error) {
	if fields == nil {
		return nil, fmt.Errorf("%s.fields: required", path)
	}
	tmpl := make(randomizer.Template, 0, len(fields))
	for _, field := range fields {
		if field.Spec != nil && field.Spec.Kind == schema.KindConstant {
			tmpl = append(tmpl, randomizer.Static(field.Key, field.Spec.Value))
			continue
		}
		f, err := c.compile(path+".fields."+field.Key, field.Spec)
		if err != nil {
			return nil, err
		}
		tmpl = append(tmpl, randomizer.Dynamic(field.Key, f))
	}
	return tmpl, nil
}

func erased[T any](f randomizer.Factory[T], err error) (randomizer.Factory[any], error) {
	if err != nil {
		return nil, err
	}
	return randomizer.Erase(f), nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
