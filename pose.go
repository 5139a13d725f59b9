package dpslam

import "math"

// Pose is a 2-D position and heading. Poses are value objects: the motion
// model always returns a freshly constructed Pose rather than mutating one
// in place.
type Pose struct {
	X, Y  float64
	Theta float64
}

// Add combines two poses component-wise, including angle. It does not
// normalize the resulting angle into a canonical range.
func (p Pose) Add(o Pose) Pose {
	return Pose{X: p.X + o.X, Y: p.Y + o.Y, Theta: p.Theta + o.Theta}
}

// Distance is the Euclidean distance between two poses' (X, Y) components;
// heading does not participate.
func (p Pose) Distance(o Pose) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// polarToPose builds a pose whose (X, Y) is the Cartesian projection of the
// polar coordinate (r, theta) and whose heading is theta.
func polarToPose(r, theta float64) Pose {
	return Pose{X: r * math.Cos(theta), Y: r * math.Sin(theta), Theta: theta}
}

// Advance rotates the heading by headingDelta and then moves forward by
// dist along the new heading, returning the resulting pose. This is the
// "advance in polar form" step of the odometry motion model: rotate first,
// then translate along the rotated heading.
func (p Pose) Advance(dist, headingDelta float64) Pose {
	theta := p.Theta + headingDelta
	return Pose{
		X:     p.X + dist*math.Cos(theta),
		Y:     p.Y + dist*math.Sin(theta),
		Theta: theta,
	}
}

// Control is a pair of consecutive odometry poses reported by the robot.
type Control struct {
	Last    Pose
	Current Pose
}

// Still reports whether the odometry reading indicates no motion at all.
func (c Control) Still() bool {
	return c.Current == c.Last
}

// Measurement is one full-rotation laser scan: size beam ranges, indexed
// 0..size-1. A value of 0 in slot i means beam i had no return.
type Measurement struct {
	Ranges []float64
}

// Size is the number of beams in the scan.
func (m Measurement) Size() int {
	return len(m.Ranges)
}
