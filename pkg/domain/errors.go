package domain

import "errors"

// ErrFixtureNotFound is returned when a fixture ID cannot be found in the store.
var ErrFixtureNotFound = errors.New("fixture not found")

// ErrTemplateNotFound is returned when a library has no template with the given ID.
var ErrTemplateNotFound = errors.New("template not found")
