package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/srgsearch/pkg/config"
)

func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in and configured presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), presetTable(c.cfg.AllPresets()))
			if c.cfg.Path != "" {
				printDetail("Config: %s", c.cfg.Path)
			}
			printNextStep("Solve one", "srgsearch solve petersen")
			return nil
		},
	}
}

func presetTable(presets []config.Preset) string {
	rows := make([][]string, len(presets))
	for i, p := range presets {
		source := "config"
		if p.BuiltIn {
			source = "built-in"
		}
		rows[i] = []string{p.Name, p.Spec().String(), fmt.Sprintf("%d", len(p.Seeds)), source, p.Description}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Parameters", "Seeds", "Source", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return base.Foreground(colorCyan)
			case col >= 3:
				return base.Foreground(colorDim)
			}
			return base
		}).
		Render()
}

// completePresets completes preset names for the first argument.
func (c *CLI) completePresets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, p := range c.cfg.AllPresets() {
		if strings.HasPrefix(p.Name, toComplete) {
			names = append(names, p.Name+"\t"+p.Spec().String())
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
