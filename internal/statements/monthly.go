package statements

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/balanco-dev/balanco/internal/model"
)

// MonthlyIncomeStatements emits one income statement per calendar month
// in the ledger's period, gap months included with all-zero values.
func MonthlyIncomeStatements(ledger *model.ParsedLedger, mappings []model.LedgerMapping) []model.IncomeStatement {
	byCode := accountIndex(ledger)

	var out []model.IncomeStatement
	for _, period := range monthPeriods(ledger) {
		st := model.IncomeStatement{Period: period}
		for _, m := range mappings {
			if m.Statement != model.TargetIncomeStatement {
				continue
			}
			acct, ok := byCode[m.AccountCode]
			if !ok {
				continue
			}
			field := incomeField(&st, m.Field)
			if field == nil {
				continue
			}
			*field = field.Add(monthMovement(acct, period).Mul(signOf(m)))
		}
		st.Recalc()
		out = append(out, st)
	}
	return out
}

// MonthlyBalanceSheets emits one balance sheet per calendar month. A
// balance is a point-in-time snapshot: each month carries the
// cumulative balance as of month end (opening balance plus every entry
// up to and including that month), so gap months repeat the last known
// balance rather than dropping to zero.
func MonthlyBalanceSheets(ledger *model.ParsedLedger, mappings []model.LedgerMapping) []model.BalanceSheet {
	byCode := accountIndex(ledger)

	var out []model.BalanceSheet
	for _, period := range monthPeriods(ledger) {
		st := model.BalanceSheet{Period: period}
		for _, m := range mappings {
			if m.Statement != model.TargetBalanceSheet {
				continue
			}
			acct, ok := byCode[m.AccountCode]
			if !ok {
				continue
			}
			field := balanceField(&st, m.Field)
			if field == nil {
				continue
			}
			cumulative := cumulativeBalance(acct, period.End)
			*field = field.Add(balanceValue(acct, cumulative).Mul(signOf(m)))
		}
		st.Recalc()
		out = append(out, st)
	}
	return out
}

// AnnualFromMonthlyIncome rolls monthly income statements up per year
// by summing each field over the year's months.
func AnnualFromMonthlyIncome(months []model.IncomeStatement) []model.IncomeStatement {
	byYear := map[int]*model.IncomeStatement{}
	var years []int
	for _, m := range months {
		year := m.Period.Year
		st, ok := byYear[year]
		if !ok {
			st = &model.IncomeStatement{Period: model.StatementPeriod{Year: year, Start: m.Period.Start, End: m.Period.End}}
			byYear[year] = st
			years = append(years, year)
		}
		st.GrossRevenue = st.GrossRevenue.Add(m.GrossRevenue)
		st.Deductions = st.Deductions.Add(m.Deductions)
		st.COGS = st.COGS.Add(m.COGS)
		st.SGAExpenses = st.SGAExpenses.Add(m.SGAExpenses)
		st.Depreciation = st.Depreciation.Add(m.Depreciation)
		st.OtherOperating = st.OtherOperating.Add(m.OtherOperating)
		st.FinancialResult = st.FinancialResult.Add(m.FinancialResult)
		st.IncomeTax = st.IncomeTax.Add(m.IncomeTax)
		if m.Period.End.After(st.Period.End) {
			st.Period.End = m.Period.End
		}
	}

	out := make([]model.IncomeStatement, 0, len(years))
	for _, year := range years {
		st := byYear[year]
		st.Recalc()
		out = append(out, *st)
	}
	return out
}

// AnnualFromMonthlyBalance takes each year's last available month as
// the annual snapshot; balances are not additive across months.
func AnnualFromMonthlyBalance(months []model.BalanceSheet) []model.BalanceSheet {
	byYear := map[int]model.BalanceSheet{}
	var years []int
	for _, m := range months {
		year := m.Period.Year
		if _, ok := byYear[year]; !ok {
			years = append(years, year)
		}
		byYear[year] = m
	}

	out := make([]model.BalanceSheet, 0, len(years))
	for _, year := range years {
		st := byYear[year]
		st.Period.Month = 0
		out = append(out, st)
	}
	return out
}

// monthMovement sums an account's entries falling inside the period.
func monthMovement(acct model.LedgerAccount, period model.StatementPeriod) decimal.Decimal {
	total := decimal.Zero
	for _, e := range acct.Entries {
		if e.Date.IsZero() || e.Date.Before(period.Start) || e.Date.After(period.End) {
			continue
		}
		if acct.Type == model.AccountTypeRevenue {
			total = total.Add(e.Credit.Sub(e.Debit))
		} else {
			total = total.Add(e.Debit.Sub(e.Credit))
		}
	}
	return total
}

// cumulativeBalance is the opening balance plus every entry dated on or
// before cutoff, using the account's debit/credit nature.
func cumulativeBalance(acct model.LedgerAccount, cutoff time.Time) decimal.Decimal {
	balance := acct.OpeningBalance
	for _, e := range acct.Entries {
		if e.Date.IsZero() || e.Date.After(cutoff) {
			continue
		}
		balance = balance.Add(e.Delta(acct.Type))
	}
	return balance
}

// monthPeriods enumerates every calendar month between the ledger's
// period bounds, inclusive. Gap months are never skipped.
func monthPeriods(ledger *model.ParsedLedger) []model.StatementPeriod {
	if ledger.PeriodStart.IsZero() || ledger.PeriodEnd.IsZero() {
		return nil
	}

	var periods []model.StatementPeriod
	cur := time.Date(ledger.PeriodStart.Year(), ledger.PeriodStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(ledger.PeriodEnd.Year(), ledger.PeriodEnd.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		end := cur.AddDate(0, 1, -1)
		periods = append(periods, model.StatementPeriod{
			Year:  cur.Year(),
			Month: int(cur.Month()),
			Start: cur,
			End:   end,
		})
		cur = cur.AddDate(0, 1, 0)
	}
	return periods
}
