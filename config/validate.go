package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ValidationError names one offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and returns ErrInvalidConfig wrapping the
// full list of problems, or nil.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !finite(c.Fit.InitialPrefactor) {
		add("fit.initial_prefactor", "must be finite, got %g", c.Fit.InitialPrefactor)
	}
	if !finite(c.Fit.InitialActivationEnergy) {
		add("fit.initial_activation_energy", "must be finite, got %g", c.Fit.InitialActivationEnergy)
	}
	if c.Fit.MaxEvaluations <= 0 {
		add("fit.max_evaluations", "must be positive, got %d", c.Fit.MaxEvaluations)
	}
	tolerances := []struct {
		field string
		v     float64
	}{
		{"fit.ftol", c.Fit.FTol},
		{"fit.xtol", c.Fit.XTol},
		{"fit.gtol", c.Fit.GTol},
	}
	for _, tol := range tolerances {
		if math.IsNaN(tol.v) || tol.v < 0 {
			add(tol.field, "must be non-negative, got %g", tol.v)
		}
	}

	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		add("plot.width/height", "must be positive, got %dx%d", c.Plot.Width, c.Plot.Height)
	}
	if !(c.Plot.DPI > 0) {
		add("plot.dpi", "must be positive, got %g", c.Plot.DPI)
	}

	if hclog.LevelFromString(c.Log.Level) == hclog.NoLevel {
		add("log.level", "unknown level %q", c.Log.Level)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
}

// ApplyEnvOverrides overrides fields from ARRHENIUS_* variables:
//
//   - ARRHENIUS_GUESS_A, ARRHENIUS_GUESS_EA: fit initial guess
//   - ARRHENIUS_MAX_EVALS: fit.max_evaluations
//   - ARRHENIUS_FTOL, ARRHENIUS_XTOL, ARRHENIUS_GTOL: tolerances
//   - ARRHENIUS_PLOT_DIR, ARRHENIUS_PLOT_WIDTH, ARRHENIUS_PLOT_HEIGHT,
//     ARRHENIUS_PLOT_DPI, ARRHENIUS_NO_PLOT: plot section
//   - ARRHENIUS_LOG_LEVEL, ARRHENIUS_LOG_JSON: log section
//
// Unparsable values yield ErrInvalidConfig.
func (c *Config) ApplyEnvOverrides() error {
	var errs ValidationErrors
	env := envReader{errs: &errs}

	env.readFloat("ARRHENIUS_GUESS_A", &c.Fit.InitialPrefactor)
	env.readFloat("ARRHENIUS_GUESS_EA", &c.Fit.InitialActivationEnergy)
	env.readInt("ARRHENIUS_MAX_EVALS", &c.Fit.MaxEvaluations)
	env.readFloat("ARRHENIUS_FTOL", &c.Fit.FTol)
	env.readFloat("ARRHENIUS_XTOL", &c.Fit.XTol)
	env.readFloat("ARRHENIUS_GTOL", &c.Fit.GTol)

	if dir := os.Getenv("ARRHENIUS_PLOT_DIR"); dir != "" {
		c.Plot.OutputDir = dir
	}
	env.readInt("ARRHENIUS_PLOT_WIDTH", &c.Plot.Width)
	env.readInt("ARRHENIUS_PLOT_HEIGHT", &c.Plot.Height)
	env.readFloat("ARRHENIUS_PLOT_DPI", &c.Plot.DPI)
	env.readBool("ARRHENIUS_NO_PLOT", &c.Plot.Disabled)

	if level := os.Getenv("ARRHENIUS_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	env.readBool("ARRHENIUS_LOG_JSON", &c.Log.JSON)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
}

type envReader struct{ errs *ValidationErrors }

func (r envReader) fail(key, raw string, err error) {
	*r.errs = append(*r.errs, ValidationError{Field: key, Message: fmt.Sprintf("cannot parse %q: %v", raw, err)})
}

func (r envReader) readFloat(key string, dst *float64) {
	if raw := os.Getenv(key); raw != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			r.fail(key, raw, err)
			return
		}
		*dst = v
	}
}

func (r envReader) readInt(key string, dst *int) {
	if raw := os.Getenv(key); raw != "" {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			r.fail(key, raw, err)
			return
		}
		*dst = v
	}
}

func (r envReader) readBool(key string, dst *bool) {
	if raw := os.Getenv(key); raw != "" {
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			r.fail(key, raw, err)
			return
		}
		*dst = v
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
