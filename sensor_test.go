package dpslam

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alwaysFree(cx, cy int32) Occupancy { return Free }

func TestSensorModelRejectsBadSizeRatio(t *testing.T) {
	_, err := NewSensorModel(SensorConfig{Variance: 1, MaxRay: 10, Samples: 7, Size: 10})
	assert.Error(t, err)
}

func TestSensorModelRejectsZeroSamples(t *testing.T) {
	_, err := NewSensorModel(SensorConfig{Variance: 1, MaxRay: 10, Samples: 0, Size: 10})
	assert.Error(t, err)
}

func TestProbRayNoEvidenceWhenNothingOccupied(t *testing.T) {
	s, err := NewSensorModel(SensorConfig{Variance: 1, MaxRay: 10, Samples: 4, Size: 360})
	require.NoError(t, err)

	p := s.probRay(Pose{}, 5, 0, alwaysFree)
	assert.Equal(t, 1.0, p)
}

func TestProbRayScoresAgainstOccupiedCell(t *testing.T) {
	s, err := NewSensorModel(SensorConfig{Variance: 1, MaxRay: 10, Samples: 4, Size: 360})
	require.NoError(t, err)

	occupiedAt := func(cx, cy int32) Occupancy {
		if cx == 3 && cy == 0 {
			return Occupied
		}
		return Free
	}

	// beam travels along +X; the occupied cell (3,0) has center (3.5, 0.5),
	// so the expected range is hypot(3.5, 0.5).
	expected := math.Hypot(3.5, 0.5)
	pAtExpected := s.probRay(Pose{}, expected, 0, occupiedAt)
	pFar := s.probRay(Pose{}, expected+5, 0, occupiedAt)
	assert.Greater(t, pAtExpected, pFar)
}

func TestSensorModelIncrementCyclesStartIndex(t *testing.T) {
	s, err := NewSensorModel(SensorConfig{Variance: 1, MaxRay: 10, Samples: 4, Size: 8})
	require.NoError(t, err)
	require.Equal(t, 2, s.rangeSize)

	assert.Equal(t, 0, s.startIndex)
	s.increment()
	assert.Equal(t, 1, s.startIndex)
	s.increment()
	assert.Equal(t, 0, s.startIndex)
}

func TestSensorModelUpdateMarksTerminalCellOccupied(t *testing.T) {
	s, err := NewSensorModel(SensorConfig{Variance: 1, MaxRay: 10, Samples: 1, Size: 4})
	require.NoError(t, err)

	scan := Measurement{Ranges: []float64{3.5, 0, 0, 0}}

	type write struct {
		v      Occupancy
		cx, cy int32
	}
	var writes []write
	s.update(Pose{}, scan, func(v Occupancy, cx, cy int32) {
		writes = append(writes, write{v, cx, cy})
	})

	require.NotEmpty(t, writes)
	last := writes[len(writes)-1]
	assert.Equal(t, Occupied, last.v)
	for _, w := range writes[:len(writes)-1] {
		assert.Equal(t, Free, w.v)
	}
}

func TestSensorModelUpdateSkipsZeroRangeBeams(t *testing.T) {
	s, err := NewSensorModel(SensorConfig{Variance: 1, MaxRay: 10, Samples: 4, Size: 4})
	require.NoError(t, err)

	scan := Measurement{Ranges: []float64{0, 0, 0, 0}}
	called := false
	s.update(Pose{}, scan, func(v Occupancy, cx, cy int32) { called = true })
	assert.False(t, called)
}
