package statements

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balanco-dev/balanco/internal/mapping"
	"github.com/balanco-dev/balanco/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testLedger() *model.ParsedLedger {
	return &model.ParsedLedger{
		Company:     "ACME Ltda",
		PeriodStart: date(2023, 1, 1),
		PeriodEnd:   date(2023, 3, 31),
		Accounts: []model.LedgerAccount{
			{
				Code: "3.1.01", Name: "Receita de Vendas", Type: model.AccountTypeRevenue,
				Entries: []model.LedgerEntry{
					{Date: date(2023, 1, 5), Credit: dec("100")},
					{Date: date(2023, 1, 10), Credit: dec("200")},
					{Date: date(2023, 1, 15), Credit: dec("300")},
				},
				TotalCredits: dec("600"),
			},
			{
				Code: "4.1.01", Name: "CMV", Type: model.AccountTypeExpense,
				Entries: []model.LedgerEntry{
					{Date: date(2023, 1, 8), Debit: dec("250")},
				},
				TotalDebits: dec("250"),
			},
			{
				Code: "1.1.01", Name: "Caixa Geral", Type: model.AccountTypeAsset,
				Entries: []model.LedgerEntry{
					{Date: date(2023, 1, 5), Debit: dec("100")},
					{Date: date(2023, 3, 20), Debit: dec("50")},
				},
				OpeningBalance: dec("1000"),
				TotalDebits:    dec("150"),
				ClosingBalance: dec("1150"),
			},
			{
				Code: "2.1.01", Name: "Fornecedores", Type: model.AccountTypeLiability,
				TotalCredits:   dec("400"),
				ClosingBalance: dec("-400"),
			},
		},
	}
}

func testMappings() []model.LedgerMapping {
	return []model.LedgerMapping{
		{AccountCode: "3.1.01", Statement: model.TargetIncomeStatement, Field: model.FieldGrossRevenue, Sign: 1},
		{AccountCode: "4.1.01", Statement: model.TargetIncomeStatement, Field: model.FieldCOGS, Sign: 1},
		{AccountCode: "1.1.01", Statement: model.TargetBalanceSheet, Field: model.FieldCash, Sign: 1},
		{AccountCode: "2.1.01", Statement: model.TargetBalanceSheet, Field: model.FieldPayables, Sign: 1},
	}
}

func TestToIncomeStatement(t *testing.T) {
	st := ToIncomeStatement(testLedger(), testMappings())

	assert.True(t, dec("600").Equal(st.GrossRevenue))
	assert.True(t, dec("250").Equal(st.COGS))
	assert.True(t, dec("600").Equal(st.NetRevenue))
	assert.True(t, dec("350").Equal(st.GrossProfit))
	assert.True(t, dec("350").Equal(st.NetIncome))
	assert.Equal(t, 2023, st.Period.Year)
}

func TestToIncomeStatement_MappingWithoutAccount(t *testing.T) {
	mappings := append(testMappings(), model.LedgerMapping{
		AccountCode: "3.9.99", Statement: model.TargetIncomeStatement, Field: model.FieldGrossRevenue, Sign: 1,
	})

	st := ToIncomeStatement(testLedger(), mappings)
	assert.True(t, dec("600").Equal(st.GrossRevenue))
}

func TestToIncomeStatement_UnknownFieldDropped(t *testing.T) {
	mappings := []model.LedgerMapping{
		{AccountCode: "3.1.01", Statement: model.TargetIncomeStatement, Field: "linha_inexistente", Sign: 1},
	}

	st := ToIncomeStatement(testLedger(), mappings)
	assert.True(t, st.GrossRevenue.IsZero())
	assert.True(t, st.NetIncome.IsZero())
}

func TestToBalanceSheet(t *testing.T) {
	st := ToBalanceSheet(testLedger(), testMappings())

	assert.True(t, dec("1150").Equal(st.Cash))
	// The liability balance is stored negative; the sheet shows magnitude.
	assert.True(t, dec("400").Equal(st.Payables))
	assert.True(t, dec("1150").Equal(st.TotalAssets))
	assert.True(t, dec("400").Equal(st.TotalLiabilities))
}

func TestToIncomeStatement_AutoMappedDeductions(t *testing.T) {
	ledger := &model.ParsedLedger{
		PeriodStart: date(2023, 1, 1),
		PeriodEnd:   date(2023, 1, 31),
		Accounts: []model.LedgerAccount{
			{
				Code: "3.1.01", Name: "Receita de Vendas", Type: model.AccountTypeRevenue,
				TotalCredits: dec("1000"),
			},
			// Contra-revenue: classified as revenue by code prefix, but
			// accumulating debits.
			{
				Code: "3.1.02", Name: "(-) Deduções da Receita - ICMS", Type: model.AccountTypeRevenue,
				TotalDebits: dec("100"),
			},
			{
				Code: "4.9.01", Name: "Impostos sobre Vendas", Type: model.AccountTypeExpense,
				TotalDebits: dec("50"),
			},
		},
	}

	st := ToIncomeStatement(ledger, mapping.AutoMap(ledger.Accounts))

	assert.True(t, dec("1000").Equal(st.GrossRevenue))
	assert.True(t, dec("150").Equal(st.Deductions))
	assert.True(t, dec("850").Equal(st.NetRevenue))
	assert.True(t, st.GrossRevenue.Sub(st.Deductions).Equal(st.NetRevenue))
}

func TestSummarize(t *testing.T) {
	summaries := Summarize(testLedger().Accounts)

	require.Len(t, summaries, 4)
	assert.Equal(t, "3.1.01", summaries[0].Code)
	assert.True(t, dec("600").Equal(summaries[0].NetMovement))
	assert.Equal(t, 3, summaries[0].EntryCount)
}
