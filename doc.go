// Package dpslam implements Distributed-Particle SLAM (DP-SLAM): a
// Rao-Blackwellized particle filter over robot pose, where each particle's
// occupancy grid is stored as a set of per-cell overrides keyed to that
// particle's ancestry rather than as a fully independent grid. Ancestors
// share unmodified cells, so memory grows with the number of distinct edits
// across live particles instead of with particles times cells.
//
// The package has no I/O of its own. Callers push odometry (Control) and
// laser scans (Measurement) into Update and pull pose/grid samples back out
// via Sample; everything else -- simulation, rendering, persistence -- lives
// outside this package.
package dpslam
