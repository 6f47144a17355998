// Package memory provides in-process implementations of the fixture store and
// template library ports, for tests and single-process use.
package memory
