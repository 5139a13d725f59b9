package dpslam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceHorizontalSegment(t *testing.T) {
	type visit struct {
		cx, cy int32
		n      int
	}
	var visits []visit

	trace(Pose{X: 0.5, Y: 0.5}, Pose{X: 3.5, Y: 0.5}, func(cx, cy int32, n int) bool {
		visits = append(visits, visit{cx, cy, n})
		return false
	})

	require.Len(t, visits, 4)
	want := []visit{{0, 0, 3}, {1, 0, 2}, {2, 0, 1}, {3, 0, 0}}
	assert.Equal(t, want, visits)
}

func TestTraceZeroLengthSegmentVisitsOnce(t *testing.T) {
	count := 0
	trace(Pose{X: 1.2, Y: 3.4}, Pose{X: 1.2, Y: 3.4}, func(cx, cy int32, n int) bool {
		count++
		assert.Equal(t, int32(1), cx)
		assert.Equal(t, int32(3), cy)
		assert.Equal(t, 0, n)
		return false
	})
	assert.Equal(t, 1, count)
}

func TestTraceVerticalSegment(t *testing.T) {
	cells := traceCells(Pose{X: 0.5, Y: 0.5}, Pose{X: 0.5, Y: 3.5})
	want := []CellCoord{{0, 0}, {0, 1}, {0, 2}, {0, 3}}
	assert.Equal(t, want, cells)
}

func TestTraceEarlyTermination(t *testing.T) {
	var visited []CellCoord
	trace(Pose{X: 0.5, Y: 0.5}, Pose{X: 5.5, Y: 0.5}, func(cx, cy int32, n int) bool {
		visited = append(visited, CellCoord{cx, cy})
		return cx == 1
	})
	assert.Equal(t, []CellCoord{{0, 0}, {1, 0}}, visited)
}

func TestTraceDiagonalReachesEndpoint(t *testing.T) {
	cells := traceCells(Pose{X: 0.5, Y: 0.5}, Pose{X: 2.5, Y: 2.5})
	require.NotEmpty(t, cells)
	assert.Equal(t, CellCoord{0, 0}, cells[0])
	assert.Equal(t, CellCoord{2, 2}, cells[len(cells)-1])
}
