package dpslam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFilter(t *testing.T, size int) *Filter[int] {
	t.Helper()
	f, err := NewFilter[int](size, FilterConfig{}, NewRng(7))
	require.NoError(t, err)
	f.PredictOne = func(p int, c Control) int { return p + 1 }
	f.WeightOne = func(p int, m Measurement) float64 { return 1.0 }
	return f
}

func TestFilterPredictAppliesPredictOnePerParticle(t *testing.T) {
	f := newTestFilter(t, 3)
	out := f.Predict([]int{0, 10, 20}, Control{})
	assert.Equal(t, []int{1, 11, 21}, out)
}

func TestFilterWeightNormalizesToOne(t *testing.T) {
	f := newTestFilter(t, 4)
	f.WeightOne = func(p int, m Measurement) float64 { return float64(p + 1) }

	f.Weight([]int{0, 1, 2, 3}, Measurement{})

	sum := 0.0
	for _, w := range f.Weights() {
		assert.GreaterOrEqual(t, w, 0.0)
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestFilterWeightResetsOnCatastrophicUnderflow(t *testing.T) {
	f := newTestFilter(t, 4)
	f.WeightOne = func(p int, m Measurement) float64 { return 0 }

	f.Weight([]int{0, 1, 2, 3}, Measurement{})

	for _, w := range f.Weights() {
		assert.InDelta(t, 0.25, w, 1e-12)
	}
}

func TestFilterWeightZeroesBelowThreshold(t *testing.T) {
	f, err := NewFilter[int](4, FilterConfig{}, NewRng(1))
	require.NoError(t, err)
	f.WeightOne = func(p int, m Measurement) float64 { return 2 }

	// Drive one particle's weight below the elimination threshold before
	// calling Weight; it should be zeroed outright instead of updated.
	f.weights[0] = f.threshold / 2

	f.Weight([]int{1, 2, 3, 4}, Measurement{})
	assert.Equal(t, 0.0, f.Weights()[0])
}

func TestEffectiveSampleSizeUniformEqualsSize(t *testing.T) {
	f := newTestFilter(t, 5)
	assert.InDelta(t, 5.0, f.EffectiveSampleSize(), 1e-9)
}

func TestEffectiveSampleSizeSkewedIsLow(t *testing.T) {
	f, err := NewFilter[int](4, FilterConfig{}, NewRng(1))
	require.NoError(t, err)
	copy(f.weights, []float64{0.97, 0.01, 0.01, 0.01})

	ess := f.EffectiveSampleSize()
	assert.InDelta(t, 1.06, ess, 0.01)
	assert.Less(t, ess, 2.0)
}

func TestResampleUniformWeightsPreservesMultiset(t *testing.T) {
	f, err := NewFilter[int](6, FilterConfig{}, NewRng(123))
	require.NoError(t, err)

	particles := []int{10, 11, 12, 13, 14, 15}
	out := f.Resample(particles)

	require.Len(t, out, len(particles))
	counts := map[int]int{}
	for _, v := range out {
		counts[v]++
	}
	for _, v := range particles {
		assert.GreaterOrEqual(t, counts[v], 1, "every original particle should survive at least once under uniform weights")
	}

	for _, w := range f.Weights() {
		assert.InDelta(t, f.n, w, 1e-12)
	}
}

func TestResampleSkewedWeightsFavorsHeaviest(t *testing.T) {
	f, err := NewFilter[int](4, FilterConfig{}, NewRng(9))
	require.NoError(t, err)
	copy(f.weights, []float64{0.97, 0.01, 0.01, 0.01})

	out := f.Resample([]int{0, 1, 2, 3})

	count0 := 0
	for _, v := range out {
		if v == 0 {
			count0++
		}
	}
	assert.GreaterOrEqual(t, count0, 3)
}
