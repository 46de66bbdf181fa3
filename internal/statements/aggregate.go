// Package statements folds mapped ledger accounts into income
// statements and balance sheets at whole-period, monthly, and annual
// granularity. All functions are pure and total: mappings without a
// backing account, and accounts without a mapping, contribute nothing.
package statements

import (
	"github.com/shopspring/decimal"

	"github.com/balanco-dev/balanco/internal/model"
)

// ToIncomeStatement aggregates one statement spanning the ledger's
// whole period. Each mapped account contributes its signed net
// movement: credits minus debits for revenue-natured accounts, debits
// minus credits otherwise, times the mapping's sign.
func ToIncomeStatement(ledger *model.ParsedLedger, mappings []model.LedgerMapping) model.IncomeStatement {
	st := model.IncomeStatement{Period: wholePeriod(ledger)}
	byCode := accountIndex(ledger)

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
		*field = field.Add(resultMovement(acct).Mul(signOf(m)))
	}
	st.Recalc()
	return st
}

// ToBalanceSheet aggregates one period-end snapshot from each mapped
// account's closing balance. Asset balances are taken as stored;
// liability and equity balances are taken as magnitudes, since sources
// commonly store them negative by convention.
func ToBalanceSheet(ledger *model.ParsedLedger, mappings []model.LedgerMapping) model.BalanceSheet {
	st := model.BalanceSheet{Period: wholePeriod(ledger)}
	byCode := accountIndex(ledger)

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
		*field = field.Add(balanceValue(acct, acct.ClosingBalance).Mul(signOf(m)))
	}
	st.Recalc()
	return st
}

// Summarize projects accounts into read-only display rows.
func Summarize(accounts []model.LedgerAccount) []model.LedgerAccountSummary {
	summaries := make([]model.LedgerAccountSummary, 0, len(accounts))
	for _, acct := range accounts {
		summaries = append(summaries, model.LedgerAccountSummary{
			Code:           acct.Code,
			Name:           acct.Name,
			Type:           acct.Type,
			TotalDebits:    acct.TotalDebits,
			TotalCredits:   acct.TotalCredits,
			NetMovement:    acct.NetMovement(),
			ClosingBalance: acct.ClosingBalance,
			EntryCount:     len(acct.Entries),
		})
	}
	return summaries
}

// resultMovement is an account's whole-period income-statement
// contribution before sign: credits minus debits only for
// revenue-natured accounts.
func resultMovement(acct model.LedgerAccount) decimal.Decimal {
	if acct.Type == model.AccountTypeRevenue {
		return acct.TotalCredits.Sub(acct.TotalDebits)
	}
	return acct.TotalDebits.Sub(acct.TotalCredits)
}

// balanceValue applies the nature-aware sign convention to a stored
// balance: liabilities and equity are folded to magnitudes.
func balanceValue(acct model.LedgerAccount, balance decimal.Decimal) decimal.Decimal {
	switch acct.Type {
	case model.AccountTypeLiability, model.AccountTypeEquity:
		return balance.Abs()
	}
	return balance
}

func signOf(m model.LedgerMapping) decimal.Decimal {
	if m.Sign < 0 {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

func accountIndex(ledger *model.ParsedLedger) map[string]model.LedgerAccount {
	byCode := make(map[string]model.LedgerAccount, len(ledger.Accounts))
	for _, acct := range ledger.Accounts {
		byCode[acct.Code] = acct
	}
	return byCode
}

func wholePeriod(ledger *model.ParsedLedger) model.StatementPeriod {
	return model.StatementPeriod{
		Year:  ledger.PeriodStart.Year(),
		Start: ledger.PeriodStart,
		End:   ledger.PeriodEnd,
	}
}

// incomeField maps a mapping field name onto the statement's line.
// Unknown names return nil and the contribution is dropped.
func incomeField(s *model.IncomeStatement, name string) *decimal.Decimal {
	switch name {
	case model.FieldGrossRevenue:
		return &s.GrossRevenue
	case model.FieldDeductions:
		return &s.Deductions
	case model.FieldCOGS:
		return &s.COGS
	case model.FieldSGAExpenses:
		return &s.SGAExpenses
	case model.FieldDepreciation:
		return &s.Depreciation
	case model.FieldOtherOperating:
		return &s.OtherOperating
	case model.FieldFinancialResult:
		return &s.FinancialResult
	case model.FieldIncomeTax:
		return &s.IncomeTax
	}
	return nil
}

func balanceField(s *model.BalanceSheet, name string) *decimal.Decimal {
	switch name {
	case model.FieldCash:
		return &s.Cash
	case model.FieldReceivables:
		return &s.Receivables
	case model.FieldInventory:
		return &s.Inventory
	case model.FieldOtherCurrentAssets:
		return &s.OtherCurrentAssets
	case model.FieldPPE:
		return &s.PPE
	case model.FieldIntangibles:
		return &s.Intangibles
	case model.FieldOtherNonCurrentAssets:
		return &s.OtherNonCurrentAssets
	case model.FieldPayables:
		return &s.Payables
	case model.FieldShortTermDebt:
		return &s.ShortTermDebt
	case model.FieldOtherCurrentLiabilities:
		return &s.OtherCurrentLiabilities
	case model.FieldLongTermDebt:
		return &s.LongTermDebt
	case model.FieldOtherNonCurrentLiabilities:
		return &s.OtherNonCurrentLiabilities
	case model.FieldEquity:
		return &s.Equity
	}
	return nil
}
