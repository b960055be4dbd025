package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/arrhenius/fit"
	"github.com/katalvlaran/arrhenius/model"
	"github.com/katalvlaran/arrhenius/observation"
	"github.com/katalvlaran/arrhenius/plot"
	"github.com/katalvlaran/arrhenius/report"
)

var errNoModel = errors.New("choose a model with --model or fit all of them with --all")

type fitFlags struct {
	model    string
	all      bool
	outDir   string
	noPlot   bool
	format   string
	guessA   float64
	guessEa  float64
	maxEvals int
}

func newFitCmd(root *rootFlags) *cobra.Command {
	var flags fitFlags

	cmd := &cobra.Command{
		Use:   "fit <data.csv|data.xlsx>",
		Short: "Fit a kinetics model to an observation file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, root)
			if err != nil {
				return err
			}
			if err = applyFitFlags(cmd, a, &flags); err != nil {
				return err
			}
			set, err := observation.Load(args[0])
			if err != nil {
				return err
			}
			a.log.Info("observations loaded", "path", args[0], "records", set.Len(),
				"mean_temperature", set.MeanTemperature())

			if flags.all {
				outcomes := fit.FitAll(set, model.All(), a.cfg.FitOptions(a.log.Named("fit"))...)
				return writeOutcomes(cmd.OutOrStdout(), outcomes, flags.format)
			}
			if flags.model == "" {
				return errNoModel
			}
			m, err := model.ByName(flags.model)
			if err != nil {
				return err
			}
			rep, err := fitAndReport(a, m, set)
			if err != nil {
				return err
			}
			if err = writeReport(cmd.OutOrStdout(), rep, flags.format); err != nil {
				return err
			}
			return savePlot(cmd.ErrOrStderr(), a, rep)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.model, "model", "m", "", "model number, name or label (see `arrhenius models`)")
	f.BoolVar(&flags.all, "all", false, "fit every catalog model and print the summaries")
	f.StringVarP(&flags.outDir, "out", "o", "", "directory for the plot (default from config)")
	f.BoolVar(&flags.noPlot, "no-plot", false, "skip the PNG plot")
	f.StringVarP(&flags.format, "format", "f", "text", "summary format: text|yaml|json")
	f.Float64Var(&flags.guessA, "guess-a", fit.DefaultInitialPrefactor, "initial prefactor A")
	f.Float64Var(&flags.guessEa, "guess-ea", fit.DefaultInitialActivationEnergy, "initial activation energy Ea (kcal/mol)")
	f.IntVar(&flags.maxEvals, "max-evals", fit.DefaultMaxEvaluations, "model evaluation budget")
	cmd.MarkFlagsMutuallyExclusive("model", "all")

	return cmd
}

// applyFitFlags layers explicitly set flags over the loaded config.
func applyFitFlags(cmd *cobra.Command, a *app, flags *fitFlags) error {
	f := cmd.Flags()
	if f.Changed("guess-a") {
		a.cfg.Fit.InitialPrefactor = flags.guessA
	}
	if f.Changed("guess-ea") {
		a.cfg.Fit.InitialActivationEnergy = flags.guessEa
	}
	if f.Changed("max-evals") {
		a.cfg.Fit.MaxEvaluations = flags.maxEvals
	}
	if f.Changed("out") {
		a.cfg.Plot.OutputDir = flags.outDir
	}
	if flags.noPlot {
		a.cfg.Plot.Disabled = true
	}
	switch strings.ToLower(flags.format) {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unknown --format %q: want text, yaml or json", flags.format)
	}
	return a.cfg.Validate()
}

// fitAndReport runs one fit and builds its report.
func fitAndReport(a *app, m model.Model, set *observation.Set) (*report.Report, error) {
	res, err := fit.FitSet(m, set, a.cfg.FitOptions(a.log.Named("fit"))...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Label, err)
	}
	a.log.Info("fit complete", "model", m.Name, "A", res.Prefactor, "Ea", res.ActivationEnergy,
		"evaluations", res.Evaluations, "reason", res.Reason.String())
	return report.Build(res, set)
}

func writeReport(w io.Writer, rep *report.Report, format string) error {
	switch strings.ToLower(format) {
	case "yaml":
		return rep.WriteYAML(w)
	case "json":
		return rep.WriteJSON(w)
	default:
		return rep.WriteText(w)
	}
}

func writeOutcomes(w io.Writer, outcomes []fit.Outcome, format string) error {
	switch strings.ToLower(format) {
	case "yaml":
		return report.WriteOutcomesYAML(w, outcomes)
	case "json":
		return report.WriteOutcomesJSON(w, outcomes)
	default:
		return report.WriteOutcomes(w, outcomes)
	}
}

// savePlot writes the PNG unless plotting is disabled and reports the path.
func savePlot(w io.Writer, a *app, rep *report.Report) error {
	if a.cfg.Plot.Disabled {
		return nil
	}
	path, err := plot.Save(a.cfg.Plot.OutputDir, rep, a.cfg.PlotOptions())
	if err != nil {
		return err
	}
	a.log.Named("plot").Debug("plot written", "path", path)
	_, err = fmt.Fprintf(w, "plot saved to %s\n", path)
	return err
}
