package dpslam

import "math"

// CellCoord is an integer grid coordinate reached by flooring world
// coordinates. Map cells are unit-sized.
type CellCoord struct {
	X, Y int32
}

func floorCell(x, y float64) CellCoord {
	return CellCoord{X: int32(math.Floor(x)), Y: int32(math.Floor(y))}
}

// traceCells walks every unit grid cell that the segment from->to enters, in
// order from "from" toward "to", using an Amanatides-Woo style integer-grid
// line walk. The endpoints are world coordinates, not cell coordinates.
//
// A zero-length segment still yields its single starting cell. Purely
// horizontal or vertical segments carry an infinite "next crossing" distance
// on the degenerate axis so the walk only ever advances along the live one.
func traceCells(from, to Pose) []CellCoord {
	dx := to.X - from.X
	dy := to.Y - from.Y

	start := floorCell(from.X, from.Y)
	end := floorCell(to.X, to.Y)

	if dx == 0 && dy == 0 {
		return []CellCoord{start}
	}

	stepX, tDeltaX, tMaxX := axisWalk(from.X, dx, float64(start.X))
	stepY, tDeltaY, tMaxY := axisWalk(from.Y, dy, float64(start.Y))

	cells := []CellCoord{start}
	cx, cy := start.X, start.Y

	for cx != end.X || cy != end.Y {
		if tMaxX < tMaxY {
			cx += stepX
			tMaxX += tDeltaX
		} else if tMaxY < tMaxX {
			cy += stepY
			tMaxY += tDeltaY
		} else {
			// simultaneous crossing: a single new cell consumes both budgets.
			cx += stepX
			cy += stepY
			tMaxX += tDeltaX
			tMaxY += tDeltaY
		}
		cells = append(cells, CellCoord{X: cx, Y: cy})
	}

	return cells
}

// axisWalk returns the per-axis step direction, the parametric distance
// between successive grid-line crossings, and the parametric distance to the
// first crossing, for one axis of a segment walk starting at "origin" with
// delta "d" and whose starting cell boundary is at "cellFloor".
func axisWalk(origin, d, cellFloor float64) (step int32, tDelta, tMax float64) {
	switch {
	case d > 0:
		return 1, 1 / d, (cellFloor + 1 - origin) / d
	case d < 0:
		return -1, 1 / -d, (cellFloor - origin) / d
	default:
		return 0, math.Inf(1), math.Inf(1)
	}
}

// trace visits every cell the segment from->to enters via visit(cx, cy, n),
// where n is the number of cells still remaining after the current one.
// Returning true from visit terminates the walk early.
func trace(from, to Pose, visit func(cx, cy int32, n int) bool) {
	cells := traceCells(from, to)
	last := len(cells) - 1
	for i, c := range cells {
		if visit(c.X, c.Y, last-i) {
			return
		}
	}
}
