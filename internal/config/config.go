// Package config loads the YAML run configuration consumed by the batch
// runner and the CLI: a parameter vector, trajectory sampling grid,
// finite-source toggle, and output mode.
package config

import (
	"fmt"
	"os"

	"github.com/lensforge/microlens"
	"gopkg.in/yaml.v3"
)

// ParamVectorConfig is the YAML/JSON form of a lens.ParamVector.
type ParamVectorConfig struct {
	LogS             float64 `yaml:"log_s" json:"log_s"`
	QAxis            float64 `yaml:"q_axis" json:"q_axis"`
	Parameterization string  `yaml:"parameterization" json:"parameterization"` // "log_q" or "remapped_f"
	QRef             float64 `yaml:"q_ref" json:"q_ref"`
	Phi0             float64 `yaml:"phi0" json:"phi0"`
	LogRhoStar       float64 `yaml:"log_rho_star" json:"log_rho_star"`
	LogChi           float64 `yaml:"log_chi" json:"log_chi"`
	LonA             float64 `yaml:"lona" json:"lona"`
	Inc              float64 `yaml:"inc" json:"inc"`
	LogA             float64 `yaml:"log_a" json:"log_a"`
}

// TrajectoryConfig describes the concrete LinearTrajectory and its sample
// grid.
type TrajectoryConfig struct {
	U0      float64 `yaml:"u0" json:"u0"`
	Alpha   float64 `yaml:"alpha" json:"alpha"`
	T0      float64 `yaml:"t0" json:"t0"`
	TE      float64 `yaml:"te" json:"te"`
	TStart  float64 `yaml:"t_start" json:"t_start"`
	TEnd    float64 `yaml:"t_end" json:"t_end"`
	NSample int     `yaml:"n_samples" json:"n_samples"`
}

// OrbitConfig describes an optional circular orbit of the binary axis.
type OrbitConfig struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	Omega   float64 `yaml:"omega" json:"omega"`
	Inc     float64 `yaml:"inc" json:"inc"`
	Chi     float64 `yaml:"chi" json:"chi"`
	A       float64 `yaml:"a" json:"a"`
}

// FiniteSourceConfig describes finite-source evaluation.
type FiniteSourceConfig struct {
	Enabled bool    `yaml:"enabled" json:"enabled"`
	RhoStar float64 `yaml:"rho_star" json:"rho_star"`
	// Flavor selects the brute-force fallback strategy used when contour
	// integration degenerates: "map_mag" (default) or "area_mag", per
	// spec.md §4.4(B).
	Flavor string `yaml:"flavor" json:"flavor"`
}

// ToFiniteSourceConfig converts the YAML form into a lens.FiniteSourceConfig
// built on the package defaults, overriding only the fallback flavor.
func (c FiniteSourceConfig) ToFiniteSourceConfig() lens.FiniteSourceConfig {
	fsCfg := lens.DefaultFiniteSourceConfig()
	if c.Flavor == "area_mag" {
		fsCfg.Flavor = lens.AreaMag
	}
	return fsCfg
}

// RunConfig is the top-level run description: a lens parameter vector,
// its trajectory and sampling grid, finite-source and orbit toggles, the
// wide-binary threshold, and the output mode ("magmap" or "curve").
type RunConfig struct {
	Params       ParamVectorConfig  `yaml:"params" json:"params"`
	Trajectory   TrajectoryConfig   `yaml:"trajectory" json:"trajectory"`
	Orbit        OrbitConfig        `yaml:"orbit" json:"orbit"`
	FiniteSource FiniteSourceConfig `yaml:"finite_source" json:"finite_source"`
	RWide        float64            `yaml:"r_wide" json:"r_wide"`
	OutputMode   string             `yaml:"output_mode" json:"output_mode"`
}

// ToParamVector converts the YAML form into a lens.ParamVector, resolving
// the parameterization string into its enum once.
func (c ParamVectorConfig) ToParamVector() lens.ParamVector {
	p := lens.LogQ
	if c.Parameterization == "remapped_f" {
		p = lens.RemappedF
	}
	return lens.ParamVector{
		LogS:             c.LogS,
		QAxis:            c.QAxis,
		Parameterization: p,
		QRef:             c.QRef,
		Phi0:             c.Phi0,
		LogRhoStar:       c.LogRhoStar,
		LogChi:           c.LogChi,
		LonA:             c.LonA,
		Inc:              c.Inc,
		LogA:             c.LogA,
	}
}

// BuildLens constructs the configured Lens: a BinaryOrbitLens when orbit
// motion is enabled, otherwise a static BinaryLens.
func (c *RunConfig) BuildLens() lens.Lens {
	pv := c.Params.ToParamVector()
	if c.Orbit.Enabled {
		orbit := lens.OrbitState{
			Omega: c.Orbit.Omega,
			Inc:   c.Orbit.Inc,
			Chi:   c.Orbit.Chi,
			A:     c.Orbit.A,
		}
		l := lens.NewBinaryOrbitLens(pv, orbit)
		if c.RWide > 0 {
			l.RWide = c.RWide
		}
		return l
	}
	l := lens.NewBinaryLens(pv)
	if c.RWide > 0 {
		l.RWide = c.RWide
	}
	return l
}

// BuildTrajectory constructs the configured LinearTrajectory and its
// sample grid.
func (c *RunConfig) BuildTrajectory() (*lens.LinearTrajectory, []float64) {
	tr := &lens.LinearTrajectory{
		U0:         c.Trajectory.U0,
		Alpha:      c.Trajectory.Alpha,
		T0:         c.Trajectory.T0,
		TE:         c.Trajectory.TE,
		TStartPhys: c.Trajectory.TStart,
		TEndPhys:   c.Trajectory.TEnd,
		N:          c.Trajectory.NSample,
	}
	times := make([]float64, c.Trajectory.NSample)
	for i := range times {
		if c.Trajectory.NSample == 1 {
			times[i] = c.Trajectory.TStart
			continue
		}
		frac := float64(i) / float64(c.Trajectory.NSample-1)
		times[i] = c.Trajectory.TStart + frac*(c.Trajectory.TEnd-c.Trajectory.TStart)
	}
	tr.SetTimes(times, 0)
	return tr, times
}

// Load reads and parses a RunConfig from a YAML file at path.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the structural invariants Load relies on: a positive
// Einstein-crossing time, a non-empty sample grid, and a recognized
// parameterization and output mode.
func (c *RunConfig) Validate() error {
	if c.Trajectory.TE <= 0 {
		return fmt.Errorf("trajectory.te must be positive, got %g", c.Trajectory.TE)
	}
	if c.Trajectory.NSample <= 0 {
		return fmt.Errorf("trajectory.n_samples must be positive, got %d", c.Trajectory.NSample)
	}
	switch c.Params.Parameterization {
	case "", "log_q", "remapped_f":
	default:
		return fmt.Errorf("params.parameterization must be log_q or remapped_f, got %q", c.Params.Parameterization)
	}
	switch c.OutputMode {
	case "", "magmap", "curve":
	default:
		return fmt.Errorf("output_mode must be magmap or curve, got %q", c.OutputMode)
	}
	if c.FiniteSource.Enabled && c.FiniteSource.RhoStar <= 0 {
		return fmt.Errorf("finite_source.rho_star must be positive when finite_source is enabled")
	}
	switch c.FiniteSource.Flavor {
	case "", "map_mag", "area_mag":
	default:
		return fmt.Errorf("finite_source.flavor must be map_mag or area_mag, got %q", c.FiniteSource.Flavor)
	}
	return nil
}
