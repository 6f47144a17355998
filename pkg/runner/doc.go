/*
Package runner draws fixtures from blueprints.

A Runner compiles a blueprint against a fresh session, draws the requested
number of values and optionally saves the result in a FixtureStore.

# Parallel runs

With more than one worker, the root session forks one child session per
worker, in worker order, and each worker draws a contiguous share of the
values from its own child. The output therefore depends on the seed and the
worker count, never on scheduling: the same (seed, workers) pair always
yields the same fixture.

Hooks given to a Runner are shared by all workers and must be safe for
concurrent use.
*/
package runner
