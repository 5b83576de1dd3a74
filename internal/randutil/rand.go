package randutil

import (
	cryptorand "crypto/rand"
	rand "math/rand/v2"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Tests and `--seed` runs use it so a shuffle can be replayed exactly.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewEntropy returns a *rand.Rand seeded from crypto/rand. Production shoes
// shuffle with it.
func NewEntropy() *rand.Rand {
	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		panic("randutil: failed to read entropy: " + err.Error())
	}
	return rand.New(rand.NewChaCha8(seed))
}

// ForSeed returns New(*seed) when a seed is configured and NewEntropy
// otherwise.
func ForSeed(seed *int64) *rand.Rand {
	if seed != nil {
		return New(*seed)
	}
	return NewEntropy()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
