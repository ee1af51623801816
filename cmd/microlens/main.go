// Command microlens drives a binary-lens configuration from a YAML
// RunConfig: magmap scans a magnification map over a trajectory-frame
// rectangle, curve samples a trajectory through time and prints the
// resulting light curve.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lensforge/microlens"
	"github.com/lensforge/microlens/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "microlens",
	Short: "Evaluate binary-lens microlensing trajectories and magnification maps",
}

var (
	magXMin, magXMax, magYMin, magYMax float64
	magNX, magNY                       int
	magT                               float64
	magVerbose                         bool
)

var magmapCmd = &cobra.Command{
	Use:   "magmap",
	Short: "Write a magnification map for the configured lens at a fixed time",
	Run:   runMagmap,
}

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Sample the configured trajectory and print its light curve",
	Run:   runCurve,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a RunConfig YAML file (required)")

	magmapCmd.Flags().Float64Var(&magXMin, "x-min", -2, "scan rectangle x minimum, trajectory frame")
	magmapCmd.Flags().Float64Var(&magXMax, "x-max", 2, "scan rectangle x maximum, trajectory frame")
	magmapCmd.Flags().Float64Var(&magYMin, "y-min", -2, "scan rectangle y minimum, trajectory frame")
	magmapCmd.Flags().Float64Var(&magYMax, "y-max", 2, "scan rectangle y maximum, trajectory frame")
	magmapCmd.Flags().IntVar(&magNX, "nx", 200, "scan grid columns")
	magmapCmd.Flags().IntVar(&magNY, "ny", 200, "scan grid rows")
	magmapCmd.Flags().Float64Var(&magT, "t", 0, "physical time at which to evaluate the lens")
	magmapCmd.Flags().BoolVar(&magVerbose, "verbose", false, "append image count and positions to each record")

	rootCmd.AddCommand(magmapCmd, curveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("microlens: command failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.RunConfig, bool) {
	if configPath == "" {
		slog.Error("microlens: --config is required")
		return nil, false
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("microlens: failed to load config", "path", configPath, "error", err)
		return nil, false
	}
	return cfg, true
}

func runMagmap(cmd *cobra.Command, _ []string) {
	cfg, ok := loadConfig()
	if !ok {
		os.Exit(1)
	}
	l := cfg.BuildLens()

	mapCfg := lens.MagMapConfig{
		XMin: magXMin, XMax: magXMax,
		YMin: magYMin, YMax: magYMax,
		NX: magNX, NY: magNY,
		Verbose: magVerbose,
	}
	if err := lens.WriteMagMap(os.Stdout, l, magT, mapCfg); err != nil {
		slog.Error("microlens: magmap failed", "error", err)
		os.Exit(1)
	}
}

func runCurve(cmd *cobra.Command, _ []string) {
	cfg, ok := loadConfig()
	if !ok {
		os.Exit(1)
	}
	l := cfg.BuildLens()
	traj, times := cfg.BuildTrajectory()

	driverCfg := lens.DriverConfig{
		FiniteSource:       cfg.FiniteSource.Enabled,
		RhoStar:            cfg.FiniteSource.RhoStar,
		FiniteSourceConfig: cfg.FiniteSource.ToFiniteSourceConfig(),
	}
	driver := lens.NewDriver(driverCfg)
	samples := driver.Run(l, traj, times)

	fmt.Println("# t beta_x beta_y mu n_images status")
	for _, s := range samples {
		fmt.Printf("%g %g %g %g %d %s\n",
			s.T, s.Beta.X, s.Beta.Y, s.Mu, len(s.Images.Images), s.Status.String())
	}
}
