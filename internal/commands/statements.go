package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/balanco-dev/balanco/internal/model"
	"github.com/balanco-dev/balanco/internal/statements"
)

func newStatementsCommand() *cobra.Command {
	var sheet string
	var configPath string
	var monthly bool
	var annual bool

	cmd := &cobra.Command{
		Use:   "statements <file>",
		Short: "Aggregate a ledger export into financial statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatements(args[0], sheet, configPath, monthly, annual)
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet name (default: first sheet)")
	cmd.Flags().StringVar(&configPath, "config", "", "balanco.yaml with column/mapping overrides")
	cmd.Flags().BoolVar(&monthly, "monthly", false, "emit one statement per month")
	cmd.Flags().BoolVar(&annual, "annual", false, "roll monthly statements up per year")

	return cmd
}

func runStatements(path, sheet, configPath string, monthly, annual bool) error {
	parsed, mappings, err := importLedger(path, sheet, configPath)
	if err != nil {
		return err
	}

	switch {
	case annual:
		income := statements.AnnualFromMonthlyIncome(statements.MonthlyIncomeStatements(parsed, mappings))
		balance := statements.AnnualFromMonthlyBalance(statements.MonthlyBalanceSheets(parsed, mappings))
		for i := range income {
			printIncomeStatement(income[i])
		}
		for i := range balance {
			printBalanceSheet(balance[i])
		}
	case monthly:
		for _, st := range statements.MonthlyIncomeStatements(parsed, mappings) {
			printIncomeStatement(st)
		}
		for _, st := range statements.MonthlyBalanceSheets(parsed, mappings) {
			printBalanceSheet(st)
		}
	default:
		printIncomeStatement(statements.ToIncomeStatement(parsed, mappings))
		printBalanceSheet(statements.ToBalanceSheet(parsed, mappings))
	}
	return nil
}

func periodLabel(p model.StatementPeriod) string {
	if p.Month > 0 {
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	}
	return fmt.Sprintf("%04d", p.Year)
}

func printIncomeStatement(st model.IncomeStatement) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "INCOME STATEMENT %s\n", periodLabel(st.Period))
	fmt.Fprintf(tw, "  Gross revenue\t%s\n", st.GrossRevenue.StringFixed(2))
	fmt.Fprintf(tw, "  Deductions\t%s\n", st.Deductions.StringFixed(2))
	fmt.Fprintf(tw, "  Net revenue\t%s\n", st.NetRevenue.StringFixed(2))
	fmt.Fprintf(tw, "  COGS\t%s\n", st.COGS.StringFixed(2))
	fmt.Fprintf(tw, "  Gross profit\t%s\n", st.GrossProfit.StringFixed(2))
	fmt.Fprintf(tw, "  SG&A\t%s\n", st.SGAExpenses.StringFixed(2))
	fmt.Fprintf(tw, "  Depreciation\t%s\n", st.Depreciation.StringFixed(2))
	fmt.Fprintf(tw, "  Other operating\t%s\n", st.OtherOperating.StringFixed(2))
	fmt.Fprintf(tw, "  EBIT\t%s\n", st.EBIT.StringFixed(2))
	fmt.Fprintf(tw, "  Financial result\t%s\n", st.FinancialResult.StringFixed(2))
	fmt.Fprintf(tw, "  Income tax\t%s\n", st.IncomeTax.StringFixed(2))
	fmt.Fprintf(tw, "  Net income\t%s\n", st.NetIncome.StringFixed(2))
	tw.Flush()
	fmt.Println()
}

func printBalanceSheet(st model.BalanceSheet) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "BALANCE SHEET %s\n", periodLabel(st.Period))
	fmt.Fprintf(tw, "  Cash\t%s\n", st.Cash.StringFixed(2))
	fmt.Fprintf(tw, "  Receivables\t%s\n", st.Receivables.StringFixed(2))
	fmt.Fprintf(tw, "  Inventory\t%s\n", st.Inventory.StringFixed(2))
	fmt.Fprintf(tw, "  Other current assets\t%s\n", st.OtherCurrentAssets.StringFixed(2))
	fmt.Fprintf(tw, "  PP&E\t%s\n", st.PPE.StringFixed(2))
	fmt.Fprintf(tw, "  Intangibles\t%s\n", st.Intangibles.StringFixed(2))
	fmt.Fprintf(tw, "  Other non-current assets\t%s\n", st.OtherNonCurrentAssets.StringFixed(2))
	fmt.Fprintf(tw, "  TOTAL ASSETS\t%s\n", st.TotalAssets.StringFixed(2))
	fmt.Fprintf(tw, "  Payables\t%s\n", st.Payables.StringFixed(2))
	fmt.Fprintf(tw, "  Short-term debt\t%s\n", st.ShortTermDebt.StringFixed(2))
	fmt.Fprintf(tw, "  Other current liabilities\t%s\n", st.OtherCurrentLiabilities.StringFixed(2))
	fmt.Fprintf(tw, "  Long-term debt\t%s\n", st.LongTermDebt.StringFixed(2))
	fmt.Fprintf(tw, "  Other non-current liabilities\t%s\n", st.OtherNonCurrentLiabilities.StringFixed(2))
	fmt.Fprintf(tw, "  TOTAL LIABILITIES\t%s\n", st.TotalLiabilities.StringFixed(2))
	fmt.Fprintf(tw, "  Equity\t%s\n", st.Equity.StringFixed(2))
	tw.Flush()
	fmt.Println()
}
