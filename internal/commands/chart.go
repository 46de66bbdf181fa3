package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balanco-dev/balanco/internal/decoder"
	"github.com/balanco-dev/balanco/internal/mapping"
)

func newChartCommand() *cobra.Command {
	var sheet string
	var configPath string
	var out string
	var fromList bool

	cmd := &cobra.Command{
		Use:   "chart <file>",
		Short: "Generate a reusable chart-of-accounts template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(args[0], sheet, configPath, out, fromList)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (default: first sheet)")
	cmd.Flags().StringVar(&configPath, "config", "", "balanco.yaml with column/mapping overrides")
	cmd.Flags().StringVarP(&out, "output", "o", "chart-of-accounts.csv", "output CSV path")
	cmd.Flags().BoolVar(&fromList, "list", false, "input is a standalone account list, not a full ledger")

	return cmd
}

func runChart(path, sheet, configPath, out string, fromList bool) error {
	var chart *mapping.Chart
	if fromList {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		grid, err := decoder.Decode(data, sheet)
		if err != nil {
			return err
		}
		chart = mapping.ChartFromRows(grid.Rows)
	} else {
		parsed, mappings, err := importLedger(path, sheet, configPath)
		if err != nil {
			return err
		}
		chart = mapping.BuildChart(parsed, mappings)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	if err := mapping.WriteChart(f, chart); err != nil {
		return err
	}
	fmt.Printf("wrote %d accounts to %s\n", len(chart.All()), out)
	return nil
}
