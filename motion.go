package dpslam

import (
	"fmt"
	"math"
)

// MotionConfig holds the four non-negative odometry noise coefficients used
// to turn a raw odometry delta into a distribution over perturbed deltas.
type MotionConfig struct {
	A1, A2, A3, A4 float64
}

// validate rejects negative variance coefficients, per spec ("Programmer
// errors ... are contract violations; the implementation should assert and
// abort"). Constructors surface this as a plain error, matching the
// teacher's convention of validating parameters where they are first
// assembled rather than deep inside a hot loop.
func (c MotionConfig) validate() error {
	if c.A1 < 0 || c.A2 < 0 || c.A3 < 0 || c.A4 < 0 {
		return fmt.Errorf("dpslam: motion config coefficients must be non-negative, got %+v", c)
	}
	return nil
}

// MotionModel samples a new pose from an odometry delta with additive
// Gaussian noise, following the standard odometry motion model: decompose
// the delta into rotate-translate-rotate, perturb each leg, and recompose.
type MotionModel struct {
	cfg MotionConfig
	rng *Rng
}

// NewMotionModel builds a motion model with the given noise coefficients. It
// returns an error if any coefficient is negative.
func NewMotionModel(cfg MotionConfig, rng *Rng) (*MotionModel, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &MotionModel{cfg: cfg, rng: rng}, nil
}

// Sample draws a new pose given the odometry control and the particle's
// prior pose. If control.Still() holds, priorPose is returned unchanged.
func (m *MotionModel) Sample(control Control, priorPose Pose) Pose {
	if control.Still() {
		return priorPose
	}

	dx := control.Current.X - control.Last.X
	dy := control.Current.Y - control.Last.Y

	rot1 := math.Atan2(dy, dx) - control.Last.Theta
	trans := math.Sqrt(dx*dx + dy*dy)
	rot2 := control.Current.Theta - control.Last.Theta - rot1

	rot1Var := m.cfg.A1*rot1*rot1 + m.cfg.A2*trans*trans
	transVar := m.cfg.A3*trans*trans + m.cfg.A4*(rot1*rot1+rot2*rot2)
	rot2Var := m.cfg.A1*rot2*rot2 + m.cfg.A2*trans*trans

	hatRot1 := rot1 + m.rng.sampleNormal(0, rot1Var)
	hatTrans := trans + m.rng.sampleNormal(0, transVar)
	hatRot2 := rot2 + m.rng.sampleNormal(0, rot2Var)

	advanced := priorPose.Advance(hatTrans, hatRot1)
	return Pose{X: advanced.X, Y: advanced.Y, Theta: advanced.Theta + hatRot2}
}
