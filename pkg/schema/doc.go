// Package schema describes blueprints: declarative factory trees written in
// YAML (or JSON, which is valid YAML).
//
// A blueprint names a seed, how many values to draw, and a root spec. Each
// spec has a kind and the parameters of that kind; composite kinds nest
// further specs.
//
//	name: categories
//	seed: categories seed 14
//	count: 1
//	root:
//	  kind: composites
//	  branches: {kind: integers, min: 2, max: 3}
//	  depth: 3
//	  children: subCategories
//	  fields:
//	    id: {kind: integers, min: 10000, max: 20000}
//	    name: {kind: phrases, words: {kind: integers, min: 3, max: 6}}
//
// Field order is kept as written. A plain scalar or list where a spec is
// expected is shorthand for a constant.
//
// Parse decodes and validates a blueprint. Validation failures are reported
// together as an *AggregateError of *ValidationError keyed by field path.
package schema
