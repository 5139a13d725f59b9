package main

import (
	"fmt"
	"os"

	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	dpslam "github.com/jhoydich/dpslam"
)

var (
	cfgFile string
	logger  = golog.NewDevelopmentLogger("dpslam-sim")

	rootCmd = &cobra.Command{
		Use:   "dpslam-sim",
		Short: "Reference driver for the dpslam DP-SLAM estimator",
		Long:  `Synthesizes odometry and laser scans against a small rectangular room and drives dpslam.DPSLAM end to end, rendering the estimated map and pose each step.`,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a simulated DP-SLAM session and write per-step PNGs",
		RunE:  runSimulation,
	}

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Run a simulated session without rendering, printing final ESS",
		RunE:  runBench,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().Int("particles", 0, "override particle count")
	rootCmd.PersistentFlags().Int("steps", 0, "override step count")
	viper.BindPFlag("particles", rootCmd.PersistentFlags().Lookup("particles"))
	viper.BindPFlag("steps", rootCmd.PersistentFlags().Lookup("steps"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(benchCmd)
}

func loadConfig() (SimConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return SimConfig{}, fmt.Errorf("dpslam-sim: read config %s: %w", cfgFile, err)
		}
	}
	if p := viper.GetInt("particles"); p > 0 {
		v.Set("particles", p)
	}
	if s := viper.GetInt("steps"); s > 0 {
		v.Set("steps", s)
	}
	return loadSimConfig(v)
}

func buildEstimator(cfg SimConfig, rng *dpslam.Rng) (*dpslam.DPSLAM, error) {
	motion, err := dpslam.NewMotionModel(dpslam.MotionConfig{
		A1: cfg.MotionA1, A2: cfg.MotionA2, A3: cfg.MotionA3, A4: cfg.MotionA4,
	}, rng)
	if err != nil {
		return nil, fmt.Errorf("dpslam-sim: build motion model: %w", err)
	}

	sensor, err := dpslam.NewSensorModel(dpslam.SensorConfig{
		Variance: cfg.SensorVariance,
		MaxRay:   cfg.SensorMaxRay,
		Samples:  cfg.SensorSamples,
		Size:     cfg.SensorSize,
	})
	if err != nil {
		return nil, fmt.Errorf("dpslam-sim: build sensor model: %w", err)
	}

	filterCfg := dpslam.FilterConfig{EliminationFactor: cfg.EliminationFactor}
	est, err := dpslam.New(cfg.Particles, motion, sensor, filterCfg, cfg.ResampleFrac, rng, logger)
	if err != nil {
		return nil, fmt.Errorf("dpslam-sim: build estimator: %w", err)
	}
	return est, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	logger.Infow("starting run", "run_id", runID, "particles", cfg.Particles, "steps", cfg.Steps)

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("dpslam-sim: create output dir: %w", err)
	}

	rng := dpslam.NewRng(cfg.Seed)
	est, err := buildEstimator(cfg, rng)
	if err != nil {
		return err
	}
	w := newWorld(cfg.WorldW, cfg.WorldH, cfg.Seed)

	prevTrue := w.trueTrajectory(0, cfg.Steps)
	for i := 1; i <= cfg.Steps; i++ {
		curTrue := w.trueTrajectory(i, cfg.Steps)
		control := w.noisyControl(prevTrue, curTrue, 0.05)
		measurement := w.scan(curTrue, cfg.SensorSize, cfg.SensorMaxRay, 0.1)

		est.Update(control, measurement)

		pose, region := est.Sample(0, int32(cfg.WorldW), 0, int32(cfg.WorldH))
		if err := renderStep(cfg.OutDir, i, pose, region); err != nil {
			return err
		}
		logger.Infow("step complete", "run_id", runID, "step", i, "ess", est.EffectiveSampleSize())

		prevTrue = curTrue
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rng := dpslam.NewRng(cfg.Seed)
	est, err := buildEstimator(cfg, rng)
	if err != nil {
		return err
	}
	w := newWorld(cfg.WorldW, cfg.WorldH, cfg.Seed)

	prevTrue := w.trueTrajectory(0, cfg.Steps)
	for i := 1; i <= cfg.Steps; i++ {
		curTrue := w.trueTrajectory(i, cfg.Steps)
		control := w.noisyControl(prevTrue, curTrue, 0.05)
		measurement := w.scan(curTrue, cfg.SensorSize, cfg.SensorMaxRay, 0.1)
		est.Update(control, measurement)
		prevTrue = curTrue
	}
	fmt.Printf("final ESS: %.2f / %d particles\n", est.EffectiveSampleSize(), cfg.Particles)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
}
