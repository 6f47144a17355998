package randomizer

import (
	"crypto/sha256"
	"math/rand/v2"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Source is a deterministic stream of uniform draws in [0, 1).
// Two sources built from the same seed string must yield identical sequences.
type Source interface {
	Float64() float64
}

// SourceFactory builds a Source from a seed string.
type SourceFactory func(seed string) Source

// pcgSalt separates the two halves of the PCG state so that they never coincide.
const pcgSalt = "randomizer/pcg:"

// NewPCGSource is the default bit-stream backend.
// The seed string is hashed with xxhash64 into the two PCG state words.
func NewPCGSource(seed string) Source {
	hi := xxhash.Sum64String(seed)
	lo := xxhash.Sum64String(pcgSalt + seed)
	return rand.New(rand.NewPCG(hi, lo))
}

// NewChaChaSource keys a ChaCha8 stream with the SHA-256 digest of the seed.
func NewChaChaSource(seed string) Source {
	return rand.New(rand.NewChaCha8(sha256.Sum256([]byte(seed))))
}

// formatSeed renders a draw as the shortest decimal that round-trips.
func formatSeed(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
