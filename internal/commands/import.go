package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/balanco-dev/balanco/internal/auditlog"
	"github.com/balanco-dev/balanco/internal/config"
	"github.com/balanco-dev/balanco/internal/decoder"
	"github.com/balanco-dev/balanco/internal/detect"
	"github.com/balanco-dev/balanco/internal/ledger"
	"github.com/balanco-dev/balanco/internal/mapping"
	"github.com/balanco-dev/balanco/internal/model"
	"github.com/balanco-dev/balanco/internal/statements"
)

func newImportCommand() *cobra.Command {
	var sheet string
	var configPath string
	var logDir string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a ledger export and list the recovered accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0], sheet, configPath, logDir)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (default: first sheet)")
	cmd.Flags().StringVar(&configPath, "config", "", "balanco.yaml with column/mapping overrides")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory to append the import log under")

	return cmd
}

func runImport(path, sheet, configPath, logDir string) error {
	parsed, mappings, err := importLedger(path, sheet, configPath)
	if err != nil {
		return err
	}

	printSummaries(os.Stdout, statements.Summarize(parsed.Accounts), mappings)
	for _, w := range parsed.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if logDir != "" {
		entry := auditlog.Entry{
			Timestamp:   time.Now().UTC(),
			File:        path,
			Sheet:       sheet,
			RowsScanned: parsed.RowsScanned,
			Accounts:    len(parsed.Accounts),
			Warnings:    auditlog.JoinWarnings(parsed.Warnings),
		}
		if err := auditlog.Append(logDir, entry); err != nil {
			return fmt.Errorf("logging import: %w", err)
		}
	}
	return nil
}

// importLedger runs the full pipeline shared by the import and
// statements commands: decode, detect or override columns, parse, map.
func importLedger(path, sheet, configPath string) (*model.ParsedLedger, []model.LedgerMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, nil, err
		}
		if sheet == "" {
			sheet = cfg.Sheet
		}
	}

	grid, err := decoder.Decode(data, sheet)
	if err != nil {
		return nil, nil, err
	}

	columns := model.EmptyColumnConfig()
	configured := false
	if cfg != nil {
		columns, configured = cfg.ColumnConfig()
	}
	if !configured {
		var ok bool
		columns, ok = detect.Columns(grid.Rows)
		if !ok {
			return nil, nil, fmt.Errorf("could not detect column layout in %s; configure columns manually", path)
		}
	}

	parsed := ledger.Parse(grid.Rows, columns, nil)
	if cfg != nil && parsed.Company == "" {
		parsed.Company = cfg.Company
	}

	mappings := mapping.AutoMap(parsed.Accounts)
	if cfg != nil {
		mappings = cfg.Apply(mappings)
	}
	return parsed, mappings, nil
}

func printSummaries(w *os.File, summaries []model.LedgerAccountSummary, mappings []model.LedgerMapping) {
	byCode := make(map[string]model.LedgerMapping, len(mappings))
	for _, m := range mappings {
		byCode[m.AccountCode] = m
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tDEBITS\tCREDITS\tBALANCE\tENTRIES\tMAPPED TO")
	for _, s := range summaries {
		target := "-"
		if m, ok := byCode[s.Code]; ok && m.Statement != model.TargetIgnore {
			target = fmt.Sprintf("%s/%s", m.Statement, m.Field)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			s.Code, s.Name, s.Type,
			s.TotalDebits.StringFixed(2), s.TotalCredits.StringFixed(2),
			s.ClosingBalance.StringFixed(2), s.EntryCount, target)
	}
	tw.Flush()
}
