package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balanco-dev/balanco/internal/model"
)

func acct(code, name string, typ model.AccountType) model.LedgerAccount {
	return model.LedgerAccount{Code: code, Name: name, Type: typ}
}

func TestAutoMap_IncomeStatementFields(t *testing.T) {
	tests := []struct {
		account model.LedgerAccount
		field   string
		sign    int
	}{
		{acct("3.1.01", "Receita de Vendas", model.AccountTypeRevenue), model.FieldGrossRevenue, 1},
		{acct("3.9.01", "Outra Receita Qualquer", model.AccountTypeRevenue), model.FieldGrossRevenue, 1},
		// Deductions carry the inverse convention: the statement
		// subtracts the line, so contra-revenue accounts (negative
		// movement) get -1 and debit-natured ones +1.
		{acct("3.1.02", "(-) Deduções da Receita", model.AccountTypeRevenue), model.FieldDeductions, -1},
		{acct("4.9.01", "Impostos sobre Vendas", model.AccountTypeExpense), model.FieldDeductions, 1},
		{acct("4.1.01", "Custo das Mercadorias Vendidas", model.AccountTypeExpense), model.FieldCOGS, 1},
		{acct("5.1.01", "Despesas com Salários", model.AccountTypeExpense), model.FieldSGAExpenses, 1},
		{acct("5.2.01", "Depreciação Acumulada do Período", model.AccountTypeExpense), model.FieldDepreciation, 1},
		{acct("5.3.01", "Despesas Financeiras", model.AccountTypeExpense), model.FieldFinancialResult, -1},
		{acct("6.1.01", "Receitas Financeiras", model.AccountTypeRevenue), model.FieldFinancialResult, 1},
		{acct("5.4.01", "Provisão para IRPJ", model.AccountTypeExpense), model.FieldIncomeTax, 1},
	}
	for _, tt := range tests {
		ms := AutoMap([]model.LedgerAccount{tt.account})
		require.Len(t, ms, 1)
		assert.Equal(t, model.TargetIncomeStatement, ms[0].Statement, tt.account.Name)
		assert.Equal(t, tt.field, ms[0].Field, tt.account.Name)
		assert.Equal(t, tt.sign, ms[0].Sign, tt.account.Name)
		assert.True(t, ms[0].AutoDetected)
	}
}

func TestAutoMap_BalanceSheetFields(t *testing.T) {
	tests := []struct {
		account model.LedgerAccount
		field   string
	}{
		{acct("1.1.01", "Caixa Geral", model.AccountTypeAsset), model.FieldCash},
		{acct("1.1.02", "Bancos Conta Movimento", model.AccountTypeAsset), model.FieldCash},
		{acct("1.1.05", "Aplicações Financeiras", model.AccountTypeAsset), model.FieldCash},
		{acct("1.1.03", "Clientes", model.AccountTypeAsset), model.FieldReceivables},
		{acct("1.1.04", "Estoques", model.AccountTypeAsset), model.FieldInventory},
		{acct("1.2.01", "Imobilizado", model.AccountTypeAsset), model.FieldPPE},
		{acct("1.2.02", "Software Licenciado", model.AccountTypeAsset), model.FieldIntangibles},
		{acct("2.1.01", "Fornecedores Nacionais", model.AccountTypeLiability), model.FieldPayables},
		{acct("2.1.02", "Empréstimos Bancários", model.AccountTypeLiability), model.FieldShortTermDebt},
		{acct("2.2.01", "Financiamentos BNDES", model.AccountTypeLiability), model.FieldLongTermDebt},
	}
	for _, tt := range tests {
		ms := AutoMap([]model.LedgerAccount{tt.account})
		require.Len(t, ms, 1)
		assert.Equal(t, model.TargetBalanceSheet, ms[0].Statement, tt.account.Name)
		assert.Equal(t, tt.field, ms[0].Field, tt.account.Name)
	}
}

func TestAutoMap_CatchAllBuckets(t *testing.T) {
	tests := []struct {
		account model.LedgerAccount
		field   string
	}{
		{acct("1.1.09", "Adiantamentos Diversos", model.AccountTypeAsset), model.FieldOtherCurrentAssets},
		{acct("1.3.01", "Depósitos Judiciais", model.AccountTypeAsset), model.FieldOtherNonCurrentAssets},
		{acct("2.1.09", "Obrigações Trabalhistas", model.AccountTypeLiability), model.FieldOtherCurrentLiabilities},
		// Tax liabilities share keywords with revenue deductions but
		// must stay on the balance sheet.
		{acct("2.1.05", "ICMS a Recolher", model.AccountTypeLiability), model.FieldOtherCurrentLiabilities},
		{acct("2.1.06", "ISS a Recolher", model.AccountTypeLiability), model.FieldOtherCurrentLiabilities},
		{acct("2.2.09", "Provisões Diversas", model.AccountTypeLiability), model.FieldOtherNonCurrentLiabilities},
		{acct("2.3.01", "Capital Integralizado", model.AccountTypeEquity), model.FieldEquity},
	}
	for _, tt := range tests {
		ms := AutoMap([]model.LedgerAccount{tt.account})
		require.Len(t, ms, 1)
		assert.Equal(t, model.TargetBalanceSheet, ms[0].Statement, tt.account.Name)
		assert.Equal(t, tt.field, ms[0].Field, tt.account.Name)
	}
}

func TestAutoMap_UnmatchedIgnored(t *testing.T) {
	ms := AutoMap([]model.LedgerAccount{acct("9.1.01", "Compensações Ativas", model.AccountTypeUnknown)})
	require.Len(t, ms, 1)
	assert.Equal(t, model.TargetIgnore, ms[0].Statement)
	assert.True(t, ms[0].AutoDetected)
}

func TestOverride(t *testing.T) {
	ms := AutoMap([]model.LedgerAccount{
		acct("3.1.01", "Receita de Vendas", model.AccountTypeRevenue),
		acct("1.1.01", "Caixa Geral", model.AccountTypeAsset),
	})

	out := Override(ms, "3.1.01", model.TargetIncomeStatement, model.FieldOtherOperating, -1)

	assert.Equal(t, model.FieldOtherOperating, out[0].Field)
	assert.Equal(t, -1, out[0].Sign)
	assert.False(t, out[0].AutoDetected)
	// Untouched mapping keeps its heuristic state; the input is unchanged.
	assert.True(t, out[1].AutoDetected)
	assert.Equal(t, model.FieldGrossRevenue, ms[0].Field)
	assert.True(t, ms[0].AutoDetected)
}
