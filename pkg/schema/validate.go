package schema

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Validate checks a blueprint and every nested spec.
// Returns an error with all validation failures found.
func Validate(bp *Blueprint) error {
	v := &validator{}

	if bp.Name == "" {
		v.fail("name", "required", nil)
	}
	if bp.Count < 0 {
		v.fail("count", "must not be negative", bp.Count)
	}
	if bp.Root == nil {
		v.fail("root", "required", nil)
	} else {
		v.spec("root", bp.Root)
	}

	if len(v.errs) > 0 {
		return &AggregateError{Errors: v.errs}
	}
	return nil
}

// ValidateSpec checks a single spec tree rooted at path.
func ValidateSpec(path string, s *Spec) error {
	v := &validator{}
	v.spec(path, s)
	if len(v.errs) > 0 {
		return &AggregateError{Errors: v.errs}
	}
	return nil
}

type validator struct {
	errs []error
}

func (v *validator) fail(key, reason string, value any) {
	v.errs = append(v.errs, &ValidationError{Key: key, Reason: reason, Value: value})
}

func (v *validator) spec(path string, s *Spec) {
	if s == nil {
		v.fail(path, "required", nil)
		return
	}

	switch s.Kind {
	case KindConstant, KindSeeds, KindSentences, KindParagraphs, KindUUIDs:
	case KindNumbers:
		v.bounds(path, s, false)
		if s.Step < 0 || math.IsNaN(s.Step) {
			v.fail(path+".step", "must not be negative", s.Step)
		}
	case KindIntegers:
		v.bounds(path, s, true)
	case KindBooleans:
		if s.Split != nil && (*s.Split < 0 || *s.Split > 1) {
			v.fail(path+".split", "must be within [0, 1]", *s.Split)
		}
	case KindChoices:
		if len(s.Values) == 0 {
			v.fail(path+".values", "required", nil)
		}
	case KindAlternatives:
		if len(s.Options) == 0 {
			v.fail(path+".options", "required", nil)
		}
		for i, opt := range s.Options {
			v.spec(fmt.Sprintf("%s.options[%d]", path, i), opt)
		}
	case KindArrays:
		v.count(path+".count", s.Count)
		v.spec(path+".items", s.Items)
	case KindObjects:
		v.fields(path, s.Fields)
	case KindPermutations:
		v.count(path+".count", s.Count)
		if len(s.Values) == 0 {
			v.fail(path+".values", "required", nil)
		}
	case KindComposites:
		v.count(path+".branches", s.Branches)
		if s.Depth < 0 {
			v.fail(path+".depth", "must not be negative", s.Depth)
		}
		if s.Children == "" {
			v.fail(path+".children", "required", nil)
		}
		v.fields(path, s.Fields)
		if slices.ContainsFunc(s.Fields, func(f NamedSpec) bool { return f.Key == s.Children }) {
			v.fail(path+".children", "collides with a field name", s.Children)
		}
	case KindPhrases:
		v.count(path+".words", s.Words)
		if s.Words != nil && s.Words.Kind == KindConstant {
			if n, ok := AsInt(s.Words.Value); ok && n == 0 {
				v.fail(path+".words", "must be positive", n)
			}
		}
	case KindStrings:
		v.count(path+".length", s.Length)
		if s.Charset == "" {
			v.fail(path+".charset", "required", nil)
		}
	case KindDates:
		v.dates(path, s)
	case "":
		v.fail(path+".kind", "required", nil)
	default:
		v.fail(path+".kind", "unknown kind", s.Kind)
	}
}

func (v *validator) bounds(path string, s *Spec, integral bool) {
	if s.Min == nil {
		v.fail(path+".min", "required", nil)
	}
	if s.Max == nil {
		v.fail(path+".max", "required", nil)
	}
	if s.Min == nil || s.Max == nil {
		return
	}
	if integral {
		if *s.Min != math.Trunc(*s.Min) {
			v.fail(path+".min", "must be an integer", *s.Min)
		}
		if *s.Max != math.Trunc(*s.Max) {
			v.fail(path+".max", "must be an integer", *s.Max)
		}
		if math.Abs(*s.Min) > 1<<53 {
			v.fail(path+".min", "must be within ±2^53", *s.Min)
		}
		if math.Abs(*s.Max) > 1<<53 {
			v.fail(path+".max", "must be within ±2^53", *s.Max)
		}
		if *s.Min > *s.Max {
			v.fail(path, "min must not exceed max", nil)
		}
		return
	}
	if *s.Min >= *s.Max {
		v.fail(path, "min must be less than max", nil)
	}
}

// MaxCount bounds every count-like parameter (array lengths, permutation
// sizes, branch counts, word counts and string lengths).
const MaxCount = 100_000

// count accepts integer producing specs only.
func (v *validator) count(path string, s *Spec) {
	if s == nil {
		v.fail(path, "required", nil)
		return
	}
	switch s.Kind {
	case KindConstant:
		n, ok := AsInt(s.Value)
		if !ok {
			v.fail(path, "must be an integer", s.Value)
		} else if n < 0 {
			v.fail(path, "must not be negative", n)
		} else if n > MaxCount {
			v.fail(path, fmt.Sprintf("must not exceed %d", MaxCount), n)
		}
	case KindIntegers:
		v.spec(path, s)
		if s.Min != nil && *s.Min < 0 {
			v.fail(path+".min", "must not be negative", *s.Min)
		}
		if s.Max != nil && *s.Max > MaxCount {
			v.fail(path+".max", fmt.Sprintf("must not exceed %d", MaxCount), *s.Max)
		}
	case KindChoices:
		v.spec(path, s)
		for i, val := range s.Values {
			if n, ok := AsInt(val); !ok || n < 0 || n > MaxCount {
				v.fail(fmt.Sprintf("%s.values[%d]", path, i), fmt.Sprintf("must be an integer within [0, %d]", MaxCount), val)
			}
		}
	default:
		v.fail(path+".kind", "count must be a constant, integers or choices", s.Kind)
	}
}

func (v *validator) fields(path string, fields []NamedSpec) {
	if fields == nil {
		v.fail(path+".fields", "required", nil)
		return
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Key] {
			v.fail(path+".fields."+f.Key, "duplicate field", nil)
		}
		seen[f.Key] = true
		v.spec(path+".fields."+f.Key, f.Spec)
	}
}

func (v *validator) dates(path string, s *Spec) {
	from, errFrom := time.Parse(time.RFC3339, s.From)
	if errFrom != nil {
		v.fail(path+".from", "must be an RFC 3339 timestamp", s.From)
	}
	to, errTo := time.Parse(time.RFC3339, s.To)
	if errTo != nil {
		v.fail(path+".to", "must be an RFC 3339 timestamp", s.To)
	}
	if errFrom == nil && errTo == nil && !from.Before(to) {
		v.fail(path, "from must be before to", nil)
	}
}

// AsInt converts decoded YAML or JSON numbers to int.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n <= math.MaxInt64 {
			return int(n), true
		}
	case float64:
		if n == math.Trunc(n) && math.Abs(n) <= 1<<53 {
			return int(n), true
		}
	}
	return 0, false
}
