package main

import (
	"fmt"
	"image/color"
	"path/filepath"

	dpslam "github.com/jhoydich/dpslam"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// renderStep dumps one PNG per step showing the sampled occupancy grid as a
// scatter of occupied cells and the estimated pose as a marker, the same per-iteration
// diagnostic the UWB particle-filter fork produces via gonum/plot.
func renderStep(outDir string, step int, pose dpslam.Pose, region *dpslam.Region) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("DP-SLAM step %d", step)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	grid := region.Grid()
	occ := make(plotter.XYs, 0, len(grid))
	for x := range grid {
		for y := range grid[x] {
			if grid[x][y] {
				occ = append(occ, plotter.XY{
					X: float64(region.XMin + int32(x)),
					Y: float64(region.YMin + int32(y)),
				})
			}
		}
	}

	if len(occ) > 0 {
		s, err := plotter.NewScatter(occ)
		if err != nil {
			return fmt.Errorf("dpslam-sim: build occupancy scatter: %w", err)
		}
		s.GlyphStyle.Color = color.RGBA{R: 0, G: 0, B: 0, A: 255}
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
	}

	poseXY := plotter.XYs{{X: pose.X, Y: pose.Y}}
	poseMark, err := plotter.NewScatter(poseXY)
	if err != nil {
		return fmt.Errorf("dpslam-sim: build pose marker: %w", err)
	}
	poseMark.GlyphStyle.Color = color.RGBA{R: 220, A: 255}
	poseMark.GlyphStyle.Radius = vg.Points(4)
	p.Add(poseMark)

	p.X.Min = float64(region.XMin)
	p.X.Max = float64(region.XMax)
	p.Y.Min = float64(region.YMin)
	p.Y.Max = float64(region.YMax)

	fname := filepath.Join(outDir, fmt.Sprintf("step-%03d.png", step))
	return p.Save(6*vg.Inch, 6*vg.Inch, fname)
}
