package main

import (
	"math"
	"math/rand"

	dpslam "github.com/jhoydich/dpslam"
)

// world is a synthetic rectangular room used to drive the demo: it knows the
// robot's true trajectory and can render true (noise-free) range scans
// against its four walls. Synthesizing scans and odometry is explicitly an
// external-collaborator concern (see spec.md section 1); dpslam itself only
// ever sees the Control/Measurement values this produces.
type world struct {
	width, height float64
	rng           *rand.Rand
}

func newWorld(width, height float64, seed int64) *world {
	return &world{width: width, height: height, rng: rand.New(rand.NewSource(seed))}
}

// trueTrajectory returns the robot's ground-truth pose at step i out of
// steps, walking a circle centred in the room (radius 0.3 of its shorter
// side) so every wall gets swept by
// the scanner over the course of a run.
func (w *world) trueTrajectory(i, steps int) dpslam.Pose {
	cx, cy := w.width/2, w.height/2
	radius := math.Min(w.width, w.height) * 0.3
	theta := 2 * math.Pi * float64(i) / float64(steps)
	return dpslam.Pose{
		X:     cx + radius*math.Cos(theta),
		Y:     cy + radius*math.Sin(theta),
		Theta: theta + math.Pi/2,
	}
}

// noisyControl adds odometry noise to the true pose delta between two
// consecutive steps.
func (w *world) noisyControl(prevTrue, curTrue dpslam.Pose, stdd float64) dpslam.Control {
	jitter := func(p dpslam.Pose) dpslam.Pose {
		return dpslam.Pose{
			X:     p.X + w.rng.NormFloat64()*stdd,
			Y:     p.Y + w.rng.NormFloat64()*stdd,
			Theta: p.Theta + w.rng.NormFloat64()*stdd*0.1,
		}
	}
	return dpslam.Control{Last: jitter(prevTrue), Current: jitter(curTrue)}
}

// rangeToWalls casts a ray from pose along angle and returns the distance to
// the nearest of the room's four walls, or maxRay if none is hit first.
func (w *world) rangeToWalls(pose dpslam.Pose, angle, maxRay float64) float64 {
	dx, dy := math.Cos(angle), math.Sin(angle)
	best := maxRay

	tryAxis := func(pos, d, lo, hi float64) {
		if d == 0 {
			return
		}
		for _, bound := range [2]float64{lo, hi} {
			t := (bound - pos) / d
			if t > 0 && t < best {
				best = t
			}
		}
	}
	tryAxis(pose.X, dx, 0, w.width)
	tryAxis(pose.Y, dy, 0, w.height)

	return best
}

// scan synthesizes a full Measurement from pose: the true range to the
// nearest wall on every beam, perturbed by Gaussian noise with std dev
// noiseStd.
func (w *world) scan(pose dpslam.Pose, size int, maxRay, noiseStd float64) dpslam.Measurement {
	ranges := make([]float64, size)
	deltaRot := 2 * math.Pi / float64(size)
	for i := range ranges {
		angle := pose.Theta + float64(i)*deltaRot
		r := w.rangeToWalls(pose, angle, maxRay)
		r += w.rng.NormFloat64() * noiseStd
		if r < 0 {
			r = 0
		}
		ranges[i] = r
	}
	return dpslam.Measurement{Ranges: ranges}
}
