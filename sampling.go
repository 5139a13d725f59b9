package dpslam

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Rng is the process's single source of uniform randomness, threaded
// explicitly rather than relying on the package-level math/rand default, so
// tests can seed it deterministically (see Design Notes: "thread through an
// explicit random-number generator handle").
type Rng struct {
	*rand.Rand
}

// NewRng wraps a seeded source.
func NewRng(seed int64) *Rng {
	return &Rng{Rand: rand.New(rand.NewSource(seed))}
}

// sampleNormal draws one sample from N(mu, variance) via Box-Muller. The two
// underlying uniforms are drawn from (0, 1] rather than [0, 1) so the
// logarithm below never sees a zero.
func (r *Rng) sampleNormal(mu, variance float64) float64 {
	u1 := 1 - r.Float64() // (0, 1]
	u2 := 1 - r.Float64() // (0, 1]
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mu + z*math.Sqrt(variance)
}

// probNormal is the Gaussian pdf N(mu, variance) evaluated at v. Unlike
// sampleNormal, this has no specified sampling algorithm to preserve, so it
// is grounded directly on gonum's distuv rather than a hand-rolled formula.
func probNormal(v, mu, variance float64) float64 {
	if variance <= 0 {
		if v == mu {
			return math.Inf(1)
		}
		return 0
	}
	n := distuv.Normal{Mu: mu, Sigma: math.Sqrt(variance)}
	return n.Prob(v)
}
