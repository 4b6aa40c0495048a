package game

import "math/rand"

// Random is the only source of randomness inside the simulation. Production
// code seeds a math/rand generator; tests may script exact sequences.
type Random interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
}

// NewSeededRandom returns a deterministic generator.
func NewSeededRandom(seed int64) Random {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- gameplay randomness
}

// Uniform returns a value in [lo, hi).
func Uniform(r Random, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// UniformRange draws from a Range.
func UniformRange(r Random, rg Range) float64 {
	return Uniform(r, rg.Min, rg.Max)
}

// RandInt returns an integer in [lo, hi] inclusive.
func RandInt(r Random, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// RandAngle returns a uniformly random direction in degrees.
func RandAngle(r Random) float64 {
	return Uniform(r, 0, 360)
}

// Range is a closed [Min, Max] interval used by tunables.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Rng is shorthand for building a Range.
func Rng(lo, hi float64) Range { return Range{Min: lo, Max: hi} }

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }
