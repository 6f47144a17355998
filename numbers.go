package randomizer

import (
	"math"
	"slices"
)

// integerWidening turns a single-valued integer range into a valid one.
const integerWidening = 0.1

// maxExact is the largest magnitude below which every integer is a float64.
// Stepped ranges and integer bounds are limited to it.
const maxExact = 1 << 53

// NumberRange draws numbers from [min, max), optionally aligned on step.
type NumberRange struct {
	s         *Session
	min, max  float64
	step      float64
	inclusive bool
}

// Numbers returns a range over [min, max).
// With a positive step the values are min, min+step, min+2*step... below max.
func (s *Session) Numbers(min, max float64, step ...float64) (*NumberRange, error) {
	if len(step) > 1 {
		return nil, invalid("numbers", "step", "expected at most one step, got %d", len(step))
	}
	var st float64
	if len(step) == 1 {
		st = step[0]
	}
	return s.newRange("numbers", min, max, st)
}

func (s *Session) newRange(op string, min, max, step float64) (*NumberRange, error) {
	if !finite(min) {
		return nil, invalid(op, "min", "must be a finite number, got %v", min)
	}
	if !finite(max) {
		return nil, invalid(op, "max", "must be a finite number, got %v", max)
	}
	if !finite(step) || step < 0 {
		return nil, invalid(op, "step", "must be a finite non-negative number, got %v", step)
	}
	if min >= max {
		return nil, badRange(op, min, max)
	}
	if step > 0 && math.Floor((max-min)/step) >= maxExact {
		return nil, invalid(op, "step", "%v yields more than 2^53 steps over [%v, %v)", step, min, max)
	}
	return &NumberRange{s: s, min: min, max: max, step: step}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Min returns the lower bound.
func (r *NumberRange) Min() float64 { return r.min }

// Max returns the upper bound.
func (r *NumberRange) Max() float64 { return r.max }

// Step returns the step, 0 for a continuous range.
func (r *NumberRange) Step() float64 { return r.step }

// Next draws one value.
func (r *NumberRange) Next() float64 {
	if r.step > 0 {
		return float64(r.s.index(r.steps()))*r.step + r.min
	}
	v := r.s.Uniform()*(r.max-r.min) + r.min
	if v >= r.max {
		v = math.Nextafter(r.max, r.min)
	}
	return v
}

// Factory exposes Next as a Factory.
func (r *NumberRange) Factory() Factory[float64] {
	return r.Next
}

// steps counts the step-aligned values the range can produce.
func (r *NumberRange) steps() int {
	n := int(math.Floor((r.max-r.min)/r.step)) + 1
	if !r.inclusive && n > 1 && r.min+float64(n-1)*r.step >= r.max {
		n--
	}
	return n
}

// Shift returns the same range moved by offset, or nil if it collapsed.
func (r *NumberRange) Shift(offset float64) *NumberRange {
	return r.shift(offset, math.NaN())
}

// ShiftWithin moves the range by offset and clamps the moved bound against
// limit: the upper bound when offset > 0, the lower bound when offset < 0.
// It returns nil when the result is no longer a valid range.
func (r *NumberRange) ShiftWithin(offset, limit float64) *NumberRange {
	return r.shift(offset, limit)
}

func (r *NumberRange) shift(offset, limit float64) *NumberRange {
	min, max := r.min+offset, r.max+offset
	if !math.IsNaN(limit) {
		switch {
		case offset > 0:
			max = math.Min(max, limit)
		case offset < 0:
			min = math.Max(min, limit)
		}
	}
	if !(min < max) {
		return nil
	}
	shifted := *r
	shifted.min, shifted.max = min, max
	return &shifted
}

// IntegerRange draws integers from [min, max], both ends included.
type IntegerRange struct {
	r *NumberRange
}

// Integers returns a range over [min, max]. When min == max every draw
// yields min.
func (s *Session) Integers(min, max int) (*IntegerRange, error) {
	if min < -maxExact || min > maxExact {
		return nil, invalid("integers", "min", "must be within ±2^53, got %d", min)
	}
	if max < -maxExact || max > maxExact {
		return nil, invalid("integers", "max", "must be within ±2^53, got %d", max)
	}
	hi := float64(max)
	if min == max {
		hi += integerWidening
	}
	r, err := s.newRange("integers", float64(min), hi, 1)
	if err != nil {
		return nil, err
	}
	r.inclusive = true
	return &IntegerRange{r: r}, nil
}

// Min returns the lower bound.
func (i *IntegerRange) Min() int { return int(i.r.min) }

// Max returns the largest value the range can produce.
func (i *IntegerRange) Max() int { return int(i.r.min) + i.r.steps() - 1 }

// Next draws one integer.
func (i *IntegerRange) Next() int {
	return int(i.r.Next())
}

// Factory exposes Next as a Factory.
func (i *IntegerRange) Factory() Factory[int] {
	return i.Next
}

// Shift returns the same range moved by offset, or nil if it collapsed.
func (i *IntegerRange) Shift(offset int) *IntegerRange {
	return wrapIntegers(i.r.Shift(float64(offset)))
}

// ShiftWithin is the clamped form of Shift, see NumberRange.ShiftWithin.
func (i *IntegerRange) ShiftWithin(offset, limit int) *IntegerRange {
	return wrapIntegers(i.r.ShiftWithin(float64(offset), float64(limit)))
}

func wrapIntegers(r *NumberRange) *IntegerRange {
	if r == nil {
		return nil
	}
	return &IntegerRange{r: r}
}

// Booleans returns true with probability split (default 0.5).
func (s *Session) Booleans(split ...float64) (Factory[bool], error) {
	p := 0.5
	switch len(split) {
	case 0:
	case 1:
		p = split[0]
	default:
		return nil, invalid("booleans", "split", "expected at most one probability, got %d", len(split))
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, invalid("booleans", "split", "must be within [0, 1], got %v", p)
	}
	return func() bool {
		return s.Uniform() < p
	}, nil
}

// Seeds returns a factory of derived seed strings, one draw each.
func (s *Session) Seeds() Factory[string] {
	return func() string {
		return formatSeed(s.Uniform())
	}
}

// Choices picks one element of list uniformly.
func Choices[T any](s *Session, list []T) (Factory[T], error) {
	if len(list) == 0 {
		return nil, missing("choices", "list")
	}
	items := slices.Clone(list)
	idx := Must(s.Integers(0, len(items)-1))
	return func() T {
		return items[idx.Next()]
	}, nil
}
