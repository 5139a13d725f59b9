package dpslam

import "gonum.org/v1/gonum/mat"

// Region is a materialized rectangular window of one particle's occupancy
// belief, [xMin,xMax) x [yMin,yMax). It is backed by a mat.Dense of 0/1
// values rather than a bare [][]bool so downstream numeric tooling (e.g. a
// covariance or coverage-fraction pass over the sampled cloud) can consume
// it without a second conversion.
type Region struct {
	XMin, XMax int32
	YMin, YMax int32
	occ        *mat.Dense
}

func newRegion(xMin, xMax, yMin, yMax int32) *Region {
	w := int(xMax - xMin)
	h := int(yMax - yMin)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r := &Region{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
	if w > 0 && h > 0 {
		r.occ = mat.NewDense(h, w, nil)
	}
	return r
}

func (r *Region) set(x, y int32, occupied bool) {
	if r.occ == nil {
		return
	}
	v := 0.0
	if occupied {
		v = 1.0
	}
	r.occ.Set(int(y-r.YMin), int(x-r.XMin), v)
}

// At reports whether the cell at world coordinate (x, y) is occupied. x and
// y must fall within the region's bounds.
func (r *Region) At(x, y int32) bool {
	if r.occ == nil {
		return false
	}
	return r.occ.At(int(y-r.YMin), int(x-r.XMin)) != 0
}

// Grid materializes the region into a [xMax-xMin][yMax-yMin] bool slice,
// indexed grid[x-XMin][y-YMin], matching the external interface's
// "grid[x_min..x_max][y_min..y_max] of bool" contract.
func (r *Region) Grid() [][]bool {
	w := int(r.XMax - r.XMin)
	h := int(r.YMax - r.YMin)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	grid := make([][]bool, w)
	for i := range grid {
		grid[i] = make([]bool, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			grid[x][y] = r.occ.At(y, x) != 0
		}
	}
	return grid
}

// Dense exposes the underlying occupancy matrix for numeric consumers.
func (r *Region) Dense() *mat.Dense {
	return r.occ
}
