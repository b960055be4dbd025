package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/arrhenius/model"
	"github.com/katalvlaran/arrhenius/observation"
)

// prompter reads one line of user input; *liner.State satisfies it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// session is the interactive fit loop. It owns the current data set; the
// current model lives only for one pass of the loop.
type session struct {
	app  *app
	in   prompter
	out  io.Writer
	log  hclog.Logger
	path string
	set  *observation.Set
}

func newSessionCmd(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "session [data.csv|data.xlsx]",
		Short: "Interactively fit models to one data set at a time",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd, root)
			if err != nil {
				return err
			}
			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			s := &session{app: a, in: line, out: cmd.OutOrStdout(), log: a.log.Named("session")}
			if len(args) == 1 {
				s.path = args[0]
			}
			return s.run()
		},
	}
}

// run loops until the user quits or input ends:
//
//	1. load a data file if none is current
//	2. pick a model, fit it, print the summary and save the plot
//	3. Y: same data, N: quit, C: change file, anything else: same data
func (s *session) run() error {
	for {
		// Stage 1
		if s.set == nil {
			if err := s.load(); err != nil {
				return ignoreEnd(err)
			}
			continue
		}

		// Stage 2
		fmt.Fprintln(s.out, titleStyle.Render("Models"))
		fmt.Fprintln(s.out, catalogTable())
		sel, err := s.in.Prompt("Model number or name: ")
		if err != nil {
			return ignoreEnd(err)
		}
		s.fitOne(sel)

		// Stage 3
		ans, err := s.in.Prompt("Enter Y to continue with the same data, N to stop, or C to change the input file: ")
		if err != nil {
			return ignoreEnd(err)
		}
		switch strings.ToUpper(strings.TrimSpace(ans)) {
		case "Y":
			fmt.Fprintln(s.out)
		case "N":
			return nil
		case "C":
			s.set, s.path = nil, ""
		default:
			fmt.Fprintln(s.out, "Invalid user input. Returning to model selection screen with same data.")
		}
	}
}

// load reads s.path, prompting for it when empty. Unreadable files are
// reported and the path is cleared so the next pass asks again.
func (s *session) load() error {
	if s.path == "" {
		p, err := s.in.Prompt("Enter the path of your data file (.csv or .xlsx): ")
		if err != nil {
			return err
		}
		s.path = strings.TrimSpace(p)
	}
	set, err := observation.Load(s.path)
	if err != nil {
		fmt.Fprintln(s.out, warnStyle.Render(fmt.Sprintf("Cannot load %s: %v", s.path, err)))
		s.path = ""
		return nil
	}
	s.set = set
	s.log.Info("observations loaded", "path", s.path, "records", set.Len())
	fmt.Fprintf(s.out, "Loaded %d records from %s (mean temperature %.2f K)\n\n",
		set.Len(), s.path, set.MeanTemperature())
	return nil
}

// fitOne fits the selected model and prints its summary; every failure is
// printed and the session continues.
func (s *session) fitOne(selector string) {
	m, err := model.ByName(selector)
	if err != nil {
		fmt.Fprintln(s.out, "\nInvalid entry.")
		return
	}
	rep, err := fitAndReport(s.app, m, s.set)
	if err != nil {
		fmt.Fprintln(s.out, warnStyle.Render("Fit failed: "+err.Error()))
		return
	}
	fmt.Fprintf(s.out, "\n%s\n", titleStyle.Render(m.String()))
	if err = rep.WriteText(s.out); err != nil {
		s.log.Error("cannot print summary", "error", err)
		return
	}
	if err = savePlot(s.out, s.app, rep); err != nil {
		fmt.Fprintln(s.out, warnStyle.Render("Plot failed: "+err.Error()))
	}
	fmt.Fprintln(s.out)
}

// ignoreEnd treats Ctrl+C and end of input as a normal exit.
func ignoreEnd(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
