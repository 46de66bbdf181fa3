package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies the accounting nature of a ledger account.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeUnknown   AccountType = "unknown"
)

// CreditNatured reports whether the account's normal balance increases
// with credits (liabilities, equity, revenue).
func (t AccountType) CreditNatured() bool {
	switch t {
	case AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue:
		return true
	}
	return false
}

// BalanceTag marks whether a running balance was reported as a debit or
// credit balance by the source export.
type BalanceTag string

const (
	BalanceTagNone   BalanceTag = ""
	BalanceTagDebit  BalanceTag = "D"
	BalanceTagCredit BalanceTag = "C"
)

// LedgerEntry is one transaction line under an account. The date is zero
// for synthetic summary rows that carry only amounts.
type LedgerEntry struct {
	Date        time.Time
	Description string
	Debit       decimal.Decimal // always >= 0
	Credit      decimal.Decimal // always >= 0
	Balance     decimal.Decimal // running balance as reported by the source
	BalanceTag  BalanceTag
}

// Delta returns the entry's effect on a balance of the given nature:
// credits minus debits for credit-natured accounts, debits minus credits
// otherwise.
func (e LedgerEntry) Delta(t AccountType) decimal.Decimal {
	if t.CreditNatured() {
		return e.Credit.Sub(e.Debit)
	}
	return e.Debit.Sub(e.Credit)
}

// LedgerAccount groups the entries posted to one account code. Accounts
// are assembled by the ledger parser and read-only afterwards.
type LedgerAccount struct {
	Code           string // hierarchical, dot-separated: "1.1.01.001"
	Name           string
	Level          int // number of code segments
	Type           AccountType
	Entries        []LedgerEntry
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal // raw signed value as parsed from the source
	TotalDebits    decimal.Decimal
	TotalCredits   decimal.Decimal
}

// NetMovement returns total credits minus total debits for credit-natured
// accounts, total debits minus total credits otherwise.
func (a LedgerAccount) NetMovement() decimal.Decimal {
	if a.Type.CreditNatured() {
		return a.TotalCredits.Sub(a.TotalDebits)
	}
	return a.TotalDebits.Sub(a.TotalCredits)
}

// LedgerAccountSummary is a read-only display projection of an account.
type LedgerAccountSummary struct {
	Code           string
	Name           string
	Type           AccountType
	TotalDebits    decimal.Decimal
	TotalCredits   decimal.Decimal
	NetMovement    decimal.Decimal
	ClosingBalance decimal.Decimal
	EntryCount     int
}
