/*
Package randomizer builds deterministic pseudo-random value factories from a seed.

A Session owns a seeded bit-stream. Builder functions and methods return
factories: zero-argument functions that produce one value per call. Building
a factory consumes no randomness; calling it does.

# Sub-seeding

Composite factories (arrays, objects, alternatives, transformations,
permutations, trees, text) never draw directly from the caller's stream.
Each invocation takes exactly one draw from the current stream, turns it
into a seed, and does all of its own work in a fresh stream derived from
that seed. The parent stream is restored when the invocation returns, on
every exit path.

As a consequence, adding or removing unrelated scalar draws around a
composite never changes what the composite itself produces, and a composite
always advances its parent stream by exactly one draw.

# Usage

	s, err := randomizer.New("my seed")
	if err != nil {
		log.Fatal(err)
	}

	price := randomizer.Must(s.Numbers(1, 100, 0.01))
	product := randomizer.Must(randomizer.Objects(s, randomizer.Template{
		randomizer.Dynamic("name", randomizer.Must(s.Phrases(randomizer.Constant(2)))),
		randomizer.Dynamic("price", price.Factory()),
		randomizer.Static("currency", "EUR"),
	}))

	fmt.Println(product())

The same seed and the same sequence of calls always reproduce the same values.

# Concurrency

A Session is single-threaded. Concurrent generation uses one Session per
goroutine, each obtained with Fork.
*/
package randomizer
