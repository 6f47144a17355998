package randomizer

import (
	"errors"
	"fmt"
)

// ErrMissingArgument is returned when a required construction parameter is absent.
var ErrMissingArgument = errors.New("missing argument")

// ErrInvalidArgument is returned when a supplied value has the wrong shape.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrInvalidRange is returned when a bounded factory is built with min >= max.
var ErrInvalidRange = errors.New("invalid range")

// ArgumentError describes a rejected factory parameter.
// It wraps one of the sentinel errors so callers can use errors.Is.
type ArgumentError struct {
	Op     string // Factory or operation name, e.g. "numbers"
	Arg    string // Offending parameter
	Reason string
	Err    error
}

func (e *ArgumentError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Reason)
	}
	return fmt.Sprintf("%s: %v %q: %s", e.Op, e.Err, e.Arg, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

func missing(op, arg string) error {
	return &ArgumentError{Op: op, Arg: arg, Reason: "is required", Err: ErrMissingArgument}
}

func invalid(op, arg, format string, args ...any) error {
	return &ArgumentError{Op: op, Arg: arg, Reason: fmt.Sprintf(format, args...), Err: ErrInvalidArgument}
}

func badRange[T int | int64 | float64](op string, min, max T) error {
	return &ArgumentError{
		Op:     op,
		Reason: fmt.Sprintf("min (%v) must be less than max (%v)", min, max),
		Err:    ErrInvalidRange,
	}
}
