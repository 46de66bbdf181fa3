package model

// StatementTarget names which statement a mapped account feeds.
type StatementTarget string

const (
	TargetIncomeStatement StatementTarget = "income_statement"
	TargetBalanceSheet    StatementTarget = "balance_sheet"
	TargetIgnore          StatementTarget = "ignore"
)

// Income statement field names addressable by a LedgerMapping.
const (
	FieldGrossRevenue    = "gross_revenue"
	FieldDeductions      = "deductions"
	FieldCOGS            = "cogs"
	FieldSGAExpenses     = "sga_expenses"
	FieldDepreciation    = "depreciation"
	FieldOtherOperating  = "other_operating"
	FieldFinancialResult = "financial_result"
	FieldIncomeTax       = "income_tax"
)

// Balance sheet field names addressable by a LedgerMapping.
const (
	FieldCash                       = "cash"
	FieldReceivables                = "receivables"
	FieldInventory                  = "inventory"
	FieldOtherCurrentAssets         = "other_current_assets"
	FieldPPE                        = "ppe"
	FieldIntangibles                = "intangibles"
	FieldOtherNonCurrentAssets      = "other_non_current_assets"
	FieldPayables                   = "payables"
	FieldShortTermDebt              = "short_term_debt"
	FieldOtherCurrentLiabilities    = "other_current_liabilities"
	FieldLongTermDebt               = "long_term_debt"
	FieldOtherNonCurrentLiabilities = "other_non_current_liabilities"
	FieldEquity                     = "equity"
)

// LedgerMapping assigns one account to a statement line. Sign is a +1/-1
// multiplier applied to the account's contribution.
type LedgerMapping struct {
	AccountCode  string
	Statement    StatementTarget
	Field        string
	Sign         int
	AutoDetected bool
}

// ChartOfAccountsEntry is one row of a persisted code-to-field template,
// reapplied to future imports of the same company's ledger.
type ChartOfAccountsEntry struct {
	Code      string
	Name      string
	Type      AccountType
	Statement StatementTarget
	Field     string
	Sign      int
}
