// Command arrhenius fits solid-state decomposition kinetics models to
// time/temperature/conversion data and plots the normalized result.
//
// Usage:
//
//	arrhenius models
//	arrhenius fit data.csv --model first-order
//	arrhenius fit data.xlsx --all
//	arrhenius simulate --model avrami-erofeyev-1 --sigma 0.005 --out synth.csv
//	arrhenius session [data.csv]
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/arrhenius/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	dotEnv     string
	logLevel   string
	logJSON    bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "arrhenius",
		Short:         "Arrhenius kinetics curve fitting for solid-state decomposition",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (.yaml, .yml or .toml)")
	pf.StringVar(&flags.dotEnv, "env-file", "", "dotenv file with ARRHENIUS_* variables (default .env if present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace|debug|info|warn|error")
	pf.BoolVar(&flags.logJSON, "log-json", false, "emit JSON logs")

	root.AddCommand(newModelsCmd())
	root.AddCommand(newFitCmd(&flags))
	root.AddCommand(newSimulateCmd(&flags))
	root.AddCommand(newSessionCmd(&flags))
	return root
}

// app is the resolved configuration and root logger of one command.
type app struct {
	cfg *config.Config
	log hclog.Logger
}

// loadApp resolves config from file, .env, environment and flags, in
// increasing precedence, and builds the root logger on stderr.
func loadApp(cmd *cobra.Command, flags *rootFlags) (*app, error) {
	var err error
	if flags.dotEnv != "" {
		err = config.LoadDotEnv(flags.dotEnv)
	} else {
		err = config.LoadDotEnv()
	}
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	pf := cmd.Flags()
	if pf.Changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if pf.Changed("log-json") {
		cfg.Log.JSON = flags.logJSON
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:       "arrhenius",
		Level:      cfg.LogLevel(),
		JSONFormat: cfg.Log.JSON,
		Output:     cmd.ErrOrStderr(),
	})
	log.Debug("configuration loaded", "config", flags.configPath,
		"max_evaluations", cfg.Fit.MaxEvaluations, "plot_dir", cfg.Plot.OutputDir)

	return &app{cfg: cfg, log: log}, nil
}
