// Package mapping assigns ledger accounts to financial-statement lines
// and manages reusable chart-of-accounts templates.
package mapping

import (
	"strings"

	"github.com/balanco-dev/balanco/internal/code"
	"github.com/balanco-dev/balanco/internal/model"
	"github.com/balanco-dev/balanco/internal/norm"
)

// signConvention selects how a rule derives the mapping sign from the
// account's nature.
type signConvention int

const (
	// signPositive always maps with +1.
	signPositive signConvention = iota
	// signNet is +1 for credit-natured accounts, -1 otherwise. For net
	// lines the statement adds (financial result, other operating), so
	// income raises the line and expense lowers it.
	signNet
	// signContra is -1 for credit-natured accounts, +1 otherwise. For
	// lines the statement subtracts (deductions), so a contra-revenue
	// account's negative movement still lands as a positive magnitude.
	signContra
)

// rule is one auto-mapping heuristic: keywords against the folded
// account name, optional code-prefix and nature restrictions, and the
// target.
type rule struct {
	keywords  []string
	prefix    string
	natures   []model.AccountType
	statement model.StatementTarget
	field     string
	sign      signConvention
}

// rules are evaluated per account in order; the first match wins.
var rules = []rule{
	// Income statement.
	// Restricted to result accounts so tax liabilities such as "ICMS a
	// Recolher" stay on the balance sheet.
	{keywords: []string{"deducao", "deducoes", "impostos sobre venda", "icms", "iss", "devolucao", "abatimento"}, natures: []model.AccountType{model.AccountTypeRevenue, model.AccountTypeExpense}, statement: model.TargetIncomeStatement, field: model.FieldDeductions, sign: signContra},
	{keywords: []string{"depreciacao", "amortizacao", "exaustao"}, statement: model.TargetIncomeStatement, field: model.FieldDepreciation},
	{keywords: []string{"imposto de renda", "irpj", "csll", "contribuicao social sobre o lucro"}, statement: model.TargetIncomeStatement, field: model.FieldIncomeTax},
	// Restricted to result accounts so "Aplicações Financeiras" and
	// similar balance-sheet names fall through to the rules below.
	{keywords: []string{"financeir", "juros", "variacao cambial"}, natures: []model.AccountType{model.AccountTypeRevenue, model.AccountTypeExpense}, statement: model.TargetIncomeStatement, field: model.FieldFinancialResult, sign: signNet},
	{keywords: []string{"custo", "cmv", "cpv", "csp"}, statement: model.TargetIncomeStatement, field: model.FieldCOGS},
	{keywords: []string{"receita de venda", "receita bruta", "receita operacional", "vendas de", "prestacao de servico", "receita de servico"}, statement: model.TargetIncomeStatement, field: model.FieldGrossRevenue},
	{keywords: []string{"receita"}, prefix: "3", statement: model.TargetIncomeStatement, field: model.FieldGrossRevenue},
	{keywords: []string{"outras receitas", "outras despesas", "resultado nao operacional"}, statement: model.TargetIncomeStatement, field: model.FieldOtherOperating, sign: signNet},
	{keywords: []string{"despesa", "salario", "pessoal", "aluguel", "honorario", "energia", "telefone", "marketing", "propaganda"}, statement: model.TargetIncomeStatement, field: model.FieldSGAExpenses},

	// Balance sheet.
	// "banco" would also match "Empréstimos Bancários"; the asset
	// restriction keeps this rule off liability accounts.
	{keywords: []string{"caixa", "banco", "aplicacao financeira", "aplicacoes financeiras"}, natures: []model.AccountType{model.AccountTypeAsset}, statement: model.TargetBalanceSheet, field: model.FieldCash},
	{keywords: []string{"clientes", "contas a receber", "duplicatas a receber"}, statement: model.TargetBalanceSheet, field: model.FieldReceivables},
	{keywords: []string{"estoque", "mercadorias para revenda"}, statement: model.TargetBalanceSheet, field: model.FieldInventory},
	{keywords: []string{"imobilizado", "maquinas", "equipamentos", "veiculos", "moveis e utensilios", "edificacoes", "terrenos"}, statement: model.TargetBalanceSheet, field: model.FieldPPE},
	{keywords: []string{"intangivel", "software", "marcas e patentes", "fundo de comercio"}, statement: model.TargetBalanceSheet, field: model.FieldIntangibles},
	{keywords: []string{"fornecedores", "contas a pagar", "duplicatas a pagar"}, statement: model.TargetBalanceSheet, field: model.FieldPayables},
	{keywords: []string{"emprestimo", "financiamento", "debentures"}, prefix: "2.1", statement: model.TargetBalanceSheet, field: model.FieldShortTermDebt},
	{keywords: []string{"emprestimo", "financiamento", "debentures"}, statement: model.TargetBalanceSheet, field: model.FieldLongTermDebt},
}

// AutoMap produces one mapping per account, in order. Unmatched
// accounts map to ignore. All results carry AutoDetected=true.
func AutoMap(accounts []model.LedgerAccount) []model.LedgerMapping {
	mappings := make([]model.LedgerMapping, 0, len(accounts))
	for _, acct := range accounts {
		mappings = append(mappings, autoMapAccount(acct))
	}
	return mappings
}

func autoMapAccount(acct model.LedgerAccount) model.LedgerMapping {
	m := model.LedgerMapping{
		AccountCode:  acct.Code,
		Statement:    model.TargetIgnore,
		Sign:         1,
		AutoDetected: true,
	}

	folded := norm.Fold(acct.Name)
	for _, r := range rules {
		if r.prefix != "" && !code.HasPrefix(acct.Code, r.prefix) {
			continue
		}
		if len(r.natures) > 0 && !natureIn(acct.Type, r.natures) {
			continue
		}
		if !matchesAny(folded, r.keywords) {
			continue
		}
		m.Statement = r.statement
		m.Field = r.field
		switch r.sign {
		case signNet:
			if !acct.Type.CreditNatured() {
				m.Sign = -1
			}
		case signContra:
			if acct.Type.CreditNatured() {
				m.Sign = -1
			}
		}
		return m
	}

	// Catch-all buckets for classified balance-sheet accounts.
	switch acct.Type {
	case model.AccountTypeAsset:
		m.Statement = model.TargetBalanceSheet
		if code.HasPrefix(acct.Code, "1.1") {
			m.Field = model.FieldOtherCurrentAssets
		} else {
			m.Field = model.FieldOtherNonCurrentAssets
		}
	case model.AccountTypeLiability:
		m.Statement = model.TargetBalanceSheet
		if code.HasPrefix(acct.Code, "2.1") {
			m.Field = model.FieldOtherCurrentLiabilities
		} else {
			m.Field = model.FieldOtherNonCurrentLiabilities
		}
	case model.AccountTypeEquity:
		m.Statement = model.TargetBalanceSheet
		m.Field = model.FieldEquity
	}
	return m
}

// Override replaces the mapped target for one account and marks the
// mapping user-confirmed. The input slice is not modified.
func Override(mappings []model.LedgerMapping, accountCode string, statement model.StatementTarget, field string, sign int) []model.LedgerMapping {
	out := make([]model.LedgerMapping, len(mappings))
	copy(out, mappings)
	for i := range out {
		if out[i].AccountCode != accountCode {
			continue
		}
		out[i].Statement = statement
		out[i].Field = field
		out[i].Sign = sign
		out[i].AutoDetected = false
	}
	return out
}

func natureIn(t model.AccountType, natures []model.AccountType) bool {
	for _, n := range natures {
		if t == n {
			return true
		}
	}
	return false
}

func matchesAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}
