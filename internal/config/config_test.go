package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lensforge/microlens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
params:
  log_s: 0
  q_axis: 0
  parameterization: log_q
  phi0: 0
trajectory:
  u0: 0.1
  alpha: 0.5
  t0: 0
  te: 1
  t_start: -2
  t_end: 2
  n_samples: 5
output_mode: curve
`

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadValid(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.1, cfg.Trajectory.U0)
	assert.Equal(t, 5, cfg.Trajectory.NSample)
	assert.Equal(t, "curve", cfg.OutputMode)
}

func TestLoadRejectsZeroTE(t *testing.T) {
	path := writeTempConfig(t, `
trajectory:
  te: 0
  n_samples: 5
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingRhoStar(t *testing.T) {
	path := writeTempConfig(t, `
trajectory:
  te: 1
  n_samples: 5
finite_source:
  enabled: true
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFlavor(t *testing.T) {
	path := writeTempConfig(t, `
trajectory:
  te: 1
  n_samples: 5
finite_source:
  enabled: true
  rho_star: 0.01
  flavor: bogus
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestFiniteSourceConfigToFiniteSourceConfigSelectsFlavor(t *testing.T) {
	fsCfg := FiniteSourceConfig{Flavor: "area_mag"}.ToFiniteSourceConfig()
	assert.Equal(t, lens.AreaMag, fsCfg.Flavor)

	defaultCfg := FiniteSourceConfig{}.ToFiniteSourceConfig()
	assert.Equal(t, lens.MapMag, defaultCfg.Flavor)
}

func TestBuildLensAndTrajectory(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	l := cfg.BuildLens()
	require.NotNil(t, l)

	tr, times := cfg.BuildTrajectory()
	require.Len(t, times, 5)
	assert.Equal(t, cfg.Trajectory.TStart, times[0])
	assert.Equal(t, cfg.Trajectory.TEnd, times[len(times)-1])
	assert.Equal(t, cfg.Trajectory.NSample, tr.NSamples())
}
