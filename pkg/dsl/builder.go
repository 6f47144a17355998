package dsl

import (
	"fmt"

	"github.com/aretw0/randomizer/pkg/schema"
)

// Builder manages the blueprint construction.
type Builder struct {
	bp schema.Blueprint
}

// New creates a new blueprint builder.
func New(name string) *Builder {
	return &Builder{bp: schema.Blueprint{Name: name}}
}

// Describe sets the blueprint description.
func (b *Builder) Describe(text string) *Builder {
	b.bp.Description = text
	return b
}

// Seed sets the default seed.
func (b *Builder) Seed(seed string) *Builder {
	b.bp.Seed = seed
	return b
}

// Count sets how many values a run draws.
func (b *Builder) Count(n int) *Builder {
	b.bp.Count = n
	return b
}

// Root sets the factory tree.
func (b *Builder) Root(n *Node) *Builder {
	b.bp.Root = n.Spec()
	return b
}

// Build validates the blueprint and returns a copy of it.
func (b *Builder) Build() (*schema.Blueprint, error) {
	bp := b.bp
	if err := schema.Validate(&bp); err != nil {
		return nil, fmt.Errorf("invalid blueprint %q: %w", bp.Name, err)
	}
	return &bp, nil
}
