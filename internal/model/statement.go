package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementPeriod identifies the span a statement covers. Month is zero
// for annual or whole-ledger statements.
type StatementPeriod struct {
	Year  int
	Month int
	Start time.Time
	End   time.Time
}

// IncomeStatement holds one period's result figures. Expense fields are
// stored as positive magnitudes; the derived fields subtract them.
type IncomeStatement struct {
	Period StatementPeriod

	GrossRevenue    decimal.Decimal
	Deductions      decimal.Decimal
	NetRevenue      decimal.Decimal
	COGS            decimal.Decimal
	GrossProfit     decimal.Decimal
	SGAExpenses     decimal.Decimal
	Depreciation    decimal.Decimal
	OtherOperating  decimal.Decimal
	EBIT            decimal.Decimal
	FinancialResult decimal.Decimal
	EBT             decimal.Decimal
	IncomeTax       decimal.Decimal
	NetIncome       decimal.Decimal
}

// Recalc recomputes the derived lines from the input lines.
func (s *IncomeStatement) Recalc() {
	s.NetRevenue = s.GrossRevenue.Sub(s.Deductions)
	s.GrossProfit = s.NetRevenue.Sub(s.COGS)
	s.EBIT = s.GrossProfit.Sub(s.SGAExpenses).Sub(s.Depreciation).Add(s.OtherOperating)
	s.EBT = s.EBIT.Add(s.FinancialResult)
	s.NetIncome = s.EBT.Sub(s.IncomeTax)
}

// BalanceSheet holds one period-end snapshot. Totals are sums of their
// constituent fields; equity is not forced to balance the sheet.
type BalanceSheet struct {
	Period StatementPeriod

	Cash                  decimal.Decimal
	Receivables           decimal.Decimal
	Inventory             decimal.Decimal
	OtherCurrentAssets    decimal.Decimal
	PPE                   decimal.Decimal
	Intangibles           decimal.Decimal
	OtherNonCurrentAssets decimal.Decimal
	TotalAssets           decimal.Decimal

	Payables                   decimal.Decimal
	ShortTermDebt              decimal.Decimal
	OtherCurrentLiabilities    decimal.Decimal
	LongTermDebt               decimal.Decimal
	OtherNonCurrentLiabilities decimal.Decimal
	TotalLiabilities           decimal.Decimal

	Equity decimal.Decimal
}

// Recalc recomputes the asset and liability totals.
func (s *BalanceSheet) Recalc() {
	s.TotalAssets = s.Cash.Add(s.Receivables).Add(s.Inventory).Add(s.OtherCurrentAssets).
		Add(s.PPE).Add(s.Intangibles).Add(s.OtherNonCurrentAssets)
	s.TotalLiabilities = s.Payables.Add(s.ShortTermDebt).Add(s.OtherCurrentLiabilities).
		Add(s.LongTermDebt).Add(s.OtherNonCurrentLiabilities)
}
