package dpslam

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// weightSumFloor is the floor below which the weight sum is treated as catastrophic
// underflow and reset to uniform, rather than risking propagating NaN
// through normalization.
const weightSumFloor = 1e-10

// defaultEliminationFactor is the fraction of a uniform weight below which a
// particle is considered eliminated outright rather than merely low-weight.
const defaultEliminationFactor = 0.01

// FilterConfig configures a Filter's weight-elimination threshold.
type FilterConfig struct {
	// EliminationFactor scales the uniform weight n = 1/size to produce the
	// elimination threshold. Zero selects the default (0.01).
	EliminationFactor float64
}

func (c FilterConfig) eliminationFactor() float64 {
	if c.EliminationFactor <= 0 {
		return defaultEliminationFactor
	}
	return c.EliminationFactor
}

// Filter is a generic particle filter: predict, weight, effective-sample-
// size test, low-variance resample, and single-particle categorical sample.
// It knows nothing about poses, ancestry, or maps -- those live in the
// PredictOne/WeightOne callbacks the caller supplies, which is what lets the
// DP-SLAM driver reuse the same filter machinery over ancestry-tree
// particles instead of bare (x, y) points.
type Filter[P any] struct {
	size      int
	n         float64
	threshold float64
	weights   []float64
	rng       *Rng

	// PredictOne advances one particle through the motion model.
	PredictOne func(p P, c Control) P
	// WeightOne returns the observation likelihood of one particle.
	WeightOne func(p P, m Measurement) float64
}

// NewFilter builds a filter for size particles. PredictOne and WeightOne
// must be set by the caller before Predict/Weight are called.
func NewFilter[P any](size int, cfg FilterConfig, rng *Rng) (*Filter[P], error) {
	if size < 1 {
		return nil, fmt.Errorf("dpslam: filter size must be >= 1, got %d", size)
	}
	n := 1.0 / float64(size)
	weights := make([]float64, size)
	for i := range weights {
		weights[i] = n
	}
	return &Filter[P]{
		size:      size,
		n:         n,
		threshold: cfg.eliminationFactor() * n,
		weights:   weights,
		rng:       rng,
	}, nil
}

// Weights returns the current normalized weight vector. Callers must not
// mutate the returned slice.
func (f *Filter[P]) Weights() []float64 {
	return f.weights
}

// Predict returns a new particle slice whose i-th entry is
// PredictOne(particles[i], control). Weights are unchanged.
func (f *Filter[P]) Predict(particles []P, control Control) []P {
	out := make([]P, len(particles))
	for i, p := range particles {
		out[i] = f.PredictOne(p, control)
	}
	return out
}

// Weight multiplies each particle's weight by WeightOne(particle, m),
// except particles already below the elimination threshold, which are
// zeroed instead. The result is normalized; if the weight sum underflows
// weightSumFloor, all weights reset to uniform.
func (f *Filter[P]) Weight(particles []P, m Measurement) {
	for i, p := range particles {
		if f.weights[i] > f.threshold {
			f.weights[i] *= f.WeightOne(p, m)
		} else {
			f.weights[i] = 0
		}
	}

	sum := floats.Sum(f.weights)
	if sum < weightSumFloor {
		for i := range f.weights {
			f.weights[i] = f.n
		}
		return
	}
	floats.Scale(1/sum, f.weights)
}

// EffectiveSampleSize returns 1 / sum(w_i^2), a proxy for how many
// particles carry non-negligible weight.
func (f *Filter[P]) EffectiveSampleSize() float64 {
	sq := 0.0
	for _, w := range f.weights {
		sq += w * w
	}
	return 1 / sq
}

// Resample performs low-variance (systematic) resampling: draw a single
// r in [0, n), then walk the cumulative weight array at evenly spaced
// offsets r + m*n to pick each of the size survivors. Weights reset to
// uniform afterward.
func (f *Filter[P]) Resample(particles []P) []P {
	out := make([]P, f.size)
	r := f.rng.Float64() * f.n

	cum := f.weights[0]
	i := 0
	for m := 0; m < f.size; m++ {
		target := r + float64(m)*f.n
		for cum < target && i < f.size-1 {
			i++
			cum += f.weights[i]
		}
		out[m] = particles[i]
	}

	for i := range f.weights {
		f.weights[i] = f.n
	}
	return out
}

// Sample draws a single particle by categorical (roulette-wheel) selection
// according to the current weights. It is used for visualization, not for
// the filter's own recursion.
func (f *Filter[P]) Sample(particles []P) P {
	target := f.rng.Float64()
	cum := 0.0
	for i, w := range f.weights {
		cum += w
		if target <= cum {
			return particles[i]
		}
	}
	return particles[f.size-1]
}
