package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/arrhenius/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the kinetics model catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), catalogTable())
			return err
		},
	}
}

// catalogTable renders the fifteen models as a bordered table.
func catalogTable() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Name", "Label", "α(x), x = k·t").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, m := range model.All() {
		t.Row(strconv.Itoa(int(m.ID)), m.Name, m.Label, m.Formula)
	}
	return t.Render()
}
