package randomizer

// Hooks observes sub-stream derivation. Both callbacks are optional.
// They run synchronously on the generating goroutine and must not call back
// into the session.
type Hooks struct {
	// OnGroup fires after a derived stream became current.
	// depth is the number of suspended streams, seed the derived seed.
	OnGroup func(depth int, seed string)
	// OnUngroup fires after the previous stream was restored.
	OnUngroup func(depth int)
}
