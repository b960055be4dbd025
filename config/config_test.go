package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arrhenius/config"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// TestDefaultIsValid pins the solver defaults and validates them.
func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100.0, cfg.Fit.InitialPrefactor)
	assert.Equal(t, 10.0, cfg.Fit.InitialActivationEnergy)
	assert.Equal(t, 100000, cfg.Fit.MaxEvaluations)
	assert.Equal(t, hclog.Info, cfg.LogLevel())
	assert.Len(t, cfg.FitOptions(hclog.NewNullLogger()), 4)
	assert.Equal(t, 1200, cfg.PlotOptions().Width)
}

// TestLoadYAML overrides some keys and keeps the rest.
func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "run.yaml", `
fit:
  initial_prefactor: 45
  max_evaluations: 500
plot:
  output_dir: plots
log:
  level: debug
`)
	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 45.0, cfg.Fit.InitialPrefactor)
	assert.Equal(t, 10.0, cfg.Fit.InitialActivationEnergy)
	assert.Equal(t, 500, cfg.Fit.MaxEvaluations)
	assert.Equal(t, "plots", cfg.Plot.OutputDir)
	assert.Equal(t, 1200, cfg.Plot.Width)
	assert.Equal(t, hclog.Debug, cfg.LogLevel())
}

// TestLoadTOML decodes the same shape from TOML.
func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "run.toml", `
[fit]
initial_activation_energy = 14.8
ftol = 1e-10

[plot]
disabled = true
`)
	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 14.8, cfg.Fit.InitialActivationEnergy)
	assert.Equal(t, 1e-10, cfg.Fit.FTol)
	assert.True(t, cfg.Plot.Disabled)
}

// TestLoadRejects covers unknown extensions and invalid values.
func TestLoadRejects(t *testing.T) {
	_, err := config.LoadFromPath(writeFile(t, "run.ini", "x=1"))
	require.ErrorIs(t, err, config.ErrUnsupportedFormat)

	_, err = config.LoadFromPath(writeFile(t, "bad.yaml", "fit:\n  max_evaluations: 0\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "fit.max_evaluations")

	_, err = config.LoadFromPath(writeFile(t, "bad.toml", "[log]\nlevel = \"loud\"\n"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

// TestValidateCollectsAll reports every bad field.
func TestValidateCollectsAll(t *testing.T) {
	cfg := config.Default()
	cfg.Fit.FTol = -1
	cfg.Plot.Width = 0
	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	var verrs config.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

// TestValidateOrderIsStable lists tolerance errors in field order on every run.
func TestValidateOrderIsStable(t *testing.T) {
	cfg := config.Default()
	cfg.Fit.FTol, cfg.Fit.XTol, cfg.Fit.GTol = -1, -2, math.NaN()

	for i := 0; i < 20; i++ {
		var verrs config.ValidationErrors
		require.ErrorAs(t, cfg.Validate(), &verrs)
		require.Len(t, verrs, 3)
		assert.Equal(t, "fit.ftol", verrs[0].Field)
		assert.Equal(t, "fit.xtol", verrs[1].Field)
		assert.Equal(t, "fit.gtol", verrs[2].Field)
	}
}

// TestEnvOverrides applies ARRHENIUS_* variables over a file.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("ARRHENIUS_GUESS_A", "60")
	t.Setenv("ARRHENIUS_MAX_EVALS", "2000")
	t.Setenv("ARRHENIUS_NO_PLOT", "true")
	t.Setenv("ARRHENIUS_PLOT_DIR", "/tmp/out")
	t.Setenv("ARRHENIUS_LOG_LEVEL", "trace")

	path := writeFile(t, "run.yaml", "fit:\n  initial_prefactor: 45\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.Fit.InitialPrefactor)
	assert.Equal(t, 2000, cfg.Fit.MaxEvaluations)
	assert.True(t, cfg.Plot.Disabled)
	assert.Equal(t, "/tmp/out", cfg.Plot.OutputDir)
	assert.Equal(t, hclog.Trace, cfg.LogLevel())
}

// TestEnvOverridesParseError reports unparsable variables.
func TestEnvOverridesParseError(t *testing.T) {
	t.Setenv("ARRHENIUS_PLOT_WIDTH", "wide")
	err := config.Default().ApplyEnvOverrides()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "ARRHENIUS_PLOT_WIDTH")
}

// TestLoadDotEnv seeds the environment from a file.
func TestLoadDotEnv(t *testing.T) {
	t.Setenv("ARRHENIUS_GUESS_EA", "")
	require.NoError(t, os.Unsetenv("ARRHENIUS_GUESS_EA"))
	path := writeFile(t, "test.env", "ARRHENIUS_GUESS_EA=12.5\n")

	require.NoError(t, config.LoadDotEnv(path))
	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnvOverrides())
	assert.Equal(t, 12.5, cfg.Fit.InitialActivationEnergy)

	require.Error(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
