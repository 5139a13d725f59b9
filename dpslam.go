package dpslam

import (
	"fmt"

	"github.com/edaniels/golog"
)

const defaultResampleFrac = 0.5

// DPSLAM composes the motion model, sensor model, generic particle filter,
// ancestry tree, and distributed map into a single online SLAM estimator.
// One Update call is one predict/weight/(resample)/sensor-update cycle.
type DPSLAM struct {
	tree   *Tree
	dmap   *DistributedMap
	motion *MotionModel
	sensor *SensorModel
	filter *Filter[*Node]

	particles    []*Node
	resampleSize float64
	logger       golog.Logger
	step         uint64
}

// New builds a DP-SLAM estimator with size particles, all starting at pose
// (0,0,0). resampleFrac is the fraction of size below which effective
// sample size triggers a resample; zero selects the default (0.5). A nil
// logger installs a development logger so callers never need a nil check.
func New(size int, motion *MotionModel, sensor *SensorModel, filterCfg FilterConfig, resampleFrac float64, rng *Rng, logger golog.Logger) (*DPSLAM, error) {
	if size < 1 {
		return nil, fmt.Errorf("dpslam: particle count must be >= 1, got %d", size)
	}
	if resampleFrac <= 0 {
		resampleFrac = defaultResampleFrac
	}
	if logger == nil {
		logger = golog.NewDevelopmentLogger("dpslam")
	}

	tree := NewTree()
	dmap := NewDistributedMap()

	filter, err := NewFilter[*Node](size, filterCfg, rng)
	if err != nil {
		return nil, err
	}

	d := &DPSLAM{
		tree:         tree,
		dmap:         dmap,
		motion:       motion,
		sensor:       sensor,
		filter:       filter,
		resampleSize: resampleFrac * float64(size),
		logger:       logger,
	}

	filter.PredictOne = func(p *Node, c Control) *Node {
		pose := motion.Sample(c, p.Pose)
		return tree.NewChild(p.ID, pose)
	}
	filter.WeightOne = func(p *Node, m Measurement) float64 {
		lookup := func(cx, cy int32) Occupancy {
			return dmap.Lookup(tree, cx, cy, p.ID)
		}
		return sensor.prob(p.Pose, m, lookup)
	}

	particles := make([]*Node, size)
	for i := range particles {
		particles[i] = tree.NewChild(RootID, Pose{})
	}
	d.particles = particles

	return d, nil
}

// Update runs one predict/weight/resample/sensor-update cycle against the
// given odometry control and scan. It panics if the scan's length differs
// from the sensor model's configured size.
func (d *DPSLAM) Update(control Control, scan Measurement) {
	if scan.Size() != d.sensor.cfg.Size {
		panic(fmt.Sprintf("dpslam: scan has %d ranges, sensor expects %d", scan.Size(), d.sensor.cfg.Size))
	}
	predicted := d.filter.Predict(d.particles, control)
	d.filter.Weight(predicted, scan)

	ess := d.filter.EffectiveSampleSize()
	d.logger.Debugw("weighted particles", "step", d.step, "ess", ess)

	var survivors []*Node
	if ess < d.resampleSize {
		survivors = d.filter.Resample(predicted)
		d.logger.Infow("resampled", "step", d.step, "ess", ess, "threshold", d.resampleSize)

		for _, n := range predicted {
			n.Leaf = false
		}
		for _, n := range survivors {
			n.Leaf = true
		}
		for _, n := range predicted {
			d.tree.Trim(n.ID, d.dmap)
		}
	} else {
		survivors = predicted
		for _, n := range predicted {
			n.Leaf = true
			d.tree.Trim(n.ID, d.dmap)
		}
	}
	d.particles = survivors

	for _, n := range d.particles {
		d.sensor.update(n.Pose, scan, func(v Occupancy, cx, cy int32) {
			if d.dmap.Update(d.tree, n, v, cx, cy) {
				n.AddCell(cx, cy)
			}
		})
	}
	d.sensor.increment()
	d.step++
}

// EffectiveSampleSize returns the filter's current effective sample size.
func (d *DPSLAM) EffectiveSampleSize() float64 {
	return d.filter.EffectiveSampleSize()
}

// Sample draws one particle by weight and materializes its map belief over
// the rectangular region [xMin,xMax) x [yMin,yMax), returning its pose
// alongside the region.
func (d *DPSLAM) Sample(xMin, xMax, yMin, yMax int32) (Pose, *Region) {
	p := d.filter.Sample(d.particles)
	region := newRegion(xMin, xMax, yMin, yMax)
	for y := yMin; y < yMax; y++ {
		for x := xMin; x < xMax; x++ {
			occ := d.dmap.Lookup(d.tree, x, y, p.ID)
			region.set(x, y, occ == Occupied)
		}
	}
	return p.Pose, region
}
