// Package ledger reconstructs structured accounts from the raw row grid
// of a general-ledger export.
package ledger

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balanco-dev/balanco/internal/classify"
	"github.com/balanco-dev/balanco/internal/code"
	"github.com/balanco-dev/balanco/internal/model"
	"github.com/balanco-dev/balanco/internal/norm"
)

// Progress receives coarse parse progress. It is invoked synchronously
// and carries no cancellation contract.
type Progress func(percent int, stage string)

// progressInterval is how many rows pass between progress callbacks.
const progressInterval = 200

// boilerplateKeywords mark page/report header rows emitted by the
// accounting software around the actual ledger data.
var boilerplateKeywords = []string{
	"cnpj",
	"empresa:",
	"razao social",
	"livro razao",
	"livro diario",
	"folha:",
	"pagina:",
	"pagina ",
	"periodo:",
	"data da emissao",
	"emissao:",
}

// saldoKeywords classify summary rows. Order matters: the first phrase
// found in the row text wins.
var (
	openingKeywords = []string{"saldo anterior", "saldo inicial"}
	closingKeywords = []string{"saldo final", "saldo atual"}
	totalsKeywords  = []string{"totais do periodo", "total do periodo", "totais do mes", "total do mes", "movimento do periodo"}
)

var (
	combinedHeader = regexp.MustCompile(`^(\d{1,4}(?:\.\d{1,4})+)\s*[-–]\s*(.+)$`)
	companyLabel   = regexp.MustCompile(`(?i)empresa:\s*`)
	periodRange    = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s*(?:a|à|ate|até)\s*(\d{2}/\d{2}/\d{4})`)
)

// parser carries the row-classification state machine: either between
// accounts or assembling the current one.
type parser struct {
	cfg      model.ColumnConfig
	current  *building
	accounts []model.LedgerAccount
	company  string
	start    time.Time
	end      time.Time
}

// building is an account under assembly plus flags recording which
// figures the source stated explicitly.
type building struct {
	account         model.LedgerAccount
	explicitTotals  bool
	explicitClosing bool
}

// rowRule is one (predicate, action) pair of the classification
// priority list, evaluated top to bottom; the first match wins.
type rowRule struct {
	name  string
	match func(p *parser, row model.RawRow) bool
	apply func(p *parser, row model.RawRow)
}

var rowRules = []rowRule{
	{
		name:  "blank",
		match: func(_ *parser, row model.RawRow) bool { return isBlank(row) },
		apply: func(_ *parser, _ model.RawRow) {},
	},
	{
		name:  "page header",
		match: func(_ *parser, row model.RawRow) bool { return isBoilerplate(row) },
		apply: (*parser).captureHeader,
	},
	{
		name:  "column header",
		match: func(_ *parser, row model.RawRow) bool { return isColumnHeader(row) },
		apply: func(_ *parser, _ model.RawRow) {},
	},
	{
		name: "account header",
		match: func(_ *parser, row model.RawRow) bool {
			c, _ := accountHeader(row)
			return c != ""
		},
		apply: (*parser).startAccount,
	},
	{
		name: "saldo/totals",
		match: func(_ *parser, row model.RawRow) bool {
			return saldoKind(row) != saldoNone
		},
		apply: (*parser).applySaldo,
	},
	{
		name: "transaction",
		match: func(p *parser, row model.RawRow) bool {
			return !ParseDateCell(row.At(p.cfg.Date)).IsZero()
		},
		apply: (*parser).appendEntry,
	},
}

// Parse runs the row-classification state machine over the raw grid and
// assembles the deduplicated ledger. It is total: malformed rows are
// skipped, never fatal. progress may be nil.
func Parse(rows []model.RawRow, cfg model.ColumnConfig, progress Progress) *model.ParsedLedger {
	p := &parser{cfg: cfg}

	for i, row := range rows {
		if progress != nil && i%progressInterval == 0 && len(rows) > 0 {
			progress(i*100/len(rows), "classifying rows")
		}
		for _, rule := range rowRules {
			if rule.match(p, row) {
				rule.apply(p, row)
				break
			}
		}
		// Anything matching no rule is file noise; skip it.
	}
	p.finalize()

	merged := mergeDuplicates(p.accounts)

	ledger := &model.ParsedLedger{
		Company:     p.company,
		PeriodStart: p.start,
		PeriodEnd:   p.end,
		Accounts:    merged,
		RowsScanned: len(rows),
	}
	inferPeriod(ledger)
	if len(merged) == 0 {
		ledger.Warnings = append(ledger.Warnings, fmt.Sprintf("no accounts detected in %d rows", len(rows)))
	}
	if progress != nil {
		progress(100, "done")
	}
	return ledger
}

// captureHeader pulls company name and period range out of boilerplate
// rows when present. The label is located in the raw text: folded
// offsets drift when accented cells precede it in the row.
func (p *parser) captureHeader(row model.RawRow) {
	text := rowText(row)

	if p.company == "" {
		if loc := companyLabel.FindStringIndex(text); loc != nil {
			rest := strings.TrimSpace(text[loc[1]:])
			if cut := strings.IndexAny(rest, "|;"); cut > 0 {
				rest = rest[:cut]
			}
			p.company = strings.TrimSpace(rest)
		}
	}
	if p.start.IsZero() {
		if m := periodRange.FindStringSubmatch(text); m != nil {
			p.start = ParseDateCell(m[1])
			p.end = ParseDateCell(m[2])
		}
	}
}

// startAccount finalizes any account in progress and begins a new one.
func (p *parser) startAccount(row model.RawRow) {
	p.finalize()

	c, name := accountHeader(row)
	p.current = &building{account: model.LedgerAccount{
		Code:  c,
		Name:  name,
		Level: code.Level(c),
		Type:  classify.Nature(c, name),
	}}
}

type saldoRowKind int

const (
	saldoNone saldoRowKind = iota
	saldoOpening
	saldoClosing
	saldoTotals
)

func saldoKind(row model.RawRow) saldoRowKind {
	folded := norm.Fold(rowText(row))
	for _, kw := range openingKeywords {
		if strings.Contains(folded, kw) {
			return saldoOpening
		}
	}
	for _, kw := range closingKeywords {
		if strings.Contains(folded, kw) {
			return saldoClosing
		}
	}
	for _, kw := range totalsKeywords {
		if strings.Contains(folded, kw) {
			return saldoTotals
		}
	}
	return saldoNone
}

// applySaldo folds a summary row into the current account. Summary rows
// outside any account are ignored.
func (p *parser) applySaldo(row model.RawRow) {
	if p.current == nil {
		return
	}
	acct := &p.current.account

	switch saldoKind(row) {
	case saldoOpening:
		if v := p.balanceValue(row); !v.IsZero() {
			acct.OpeningBalance = v
		}
	case saldoClosing:
		if v := p.balanceValue(row); !v.IsZero() {
			acct.ClosingBalance = v
			p.current.explicitClosing = true
		}
	case saldoTotals:
		debit := ParseNumericCell(row.At(p.cfg.Debit))
		credit := ParseNumericCell(row.At(p.cfg.Credit))
		if !debit.IsZero() || !credit.IsZero() {
			acct.TotalDebits = debit.Abs()
			acct.TotalCredits = credit.Abs()
			p.current.explicitTotals = true
		}
	}
}

// balanceValue reads a summary row's amount: the alternate balance
// column, then the balance column, then the last numeric cell.
func (p *parser) balanceValue(row model.RawRow) decimal.Decimal {
	if v := ParseNumericCell(row.At(p.cfg.PreviousBalance)); !v.IsZero() {
		return v
	}
	if v := ParseNumericCell(row.At(p.cfg.Balance)); !v.IsZero() {
		return v
	}
	for i := len(row) - 1; i >= 0; i-- {
		if i == p.cfg.Date || i == p.cfg.Description {
			continue
		}
		if v := ParseNumericCell(row.At(i)); !v.IsZero() {
			return v
		}
	}
	return decimal.Zero
}

// appendEntry adds a transaction row to the current account. Entries
// outside any account are ignored.
func (p *parser) appendEntry(row model.RawRow) {
	if p.current == nil {
		return
	}

	date := ParseDateCell(row.At(p.cfg.Date))
	desc := ""
	if s, ok := row.At(p.cfg.Description).(string); ok {
		desc = strings.TrimSpace(s)
	}

	debit := ParseNumericCell(row.At(p.cfg.Debit)).Abs()
	credit := ParseNumericCell(row.At(p.cfg.Credit)).Abs()

	// The alternate balance column wins over the primary when both exist.
	balCell := row.At(p.cfg.PreviousBalance)
	if balCell == nil {
		balCell = row.At(p.cfg.Balance)
	}
	balance, tag := parseAmount(balCell)

	p.current.account.Entries = append(p.current.account.Entries, model.LedgerEntry{
		Date:        date,
		Description: desc,
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
		BalanceTag:  tag,
	})
}

// finalize derives totals and closing balance for the account under
// assembly, unless the source stated them explicitly, and emits it.
func (p *parser) finalize() {
	if p.current == nil {
		return
	}
	acct := &p.current.account

	if !p.current.explicitTotals {
		debits, credits := decimal.Zero, decimal.Zero
		for _, e := range acct.Entries {
			debits = debits.Add(e.Debit)
			credits = credits.Add(e.Credit)
		}
		acct.TotalDebits = debits
		acct.TotalCredits = credits
	}
	if !p.current.explicitClosing && len(acct.Entries) > 0 {
		if last := acct.Entries[len(acct.Entries)-1].Balance; !last.IsZero() {
			acct.ClosingBalance = last
		}
	}

	p.accounts = append(p.accounts, *acct)
	p.current = nil
}

// inferPeriod fills missing period bounds from the entry date extremes.
func inferPeriod(ledger *model.ParsedLedger) {
	if !ledger.PeriodStart.IsZero() && !ledger.PeriodEnd.IsZero() {
		return
	}
	var first, last time.Time
	for _, a := range ledger.Accounts {
		for _, e := range a.Entries {
			if e.Date.IsZero() {
				continue
			}
			if first.IsZero() || e.Date.Before(first) {
				first = e.Date
			}
			if last.IsZero() || e.Date.After(last) {
				last = e.Date
			}
		}
	}
	if ledger.PeriodStart.IsZero() {
		ledger.PeriodStart = first
	}
	if ledger.PeriodEnd.IsZero() {
		ledger.PeriodEnd = last
	}
}

// isBlank reports whether every cell is nil or whitespace.
func isBlank(row model.RawRow) bool {
	for _, cell := range row {
		switch v := cell.(type) {
		case nil:
		case string:
			if strings.TrimSpace(v) != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isBoilerplate(row model.RawRow) bool {
	folded := norm.Fold(rowText(row))
	if folded == "" {
		return true
	}
	for _, kw := range boilerplateKeywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

// isColumnHeader matches a repeated header row: a "data" cell together
// with a debit or credit cell. Kept distinct from boilerplate so it is
// never misread as a transaction.
func isColumnHeader(row model.RawRow) bool {
	hasDate, hasMovement := false, false
	for _, cell := range row {
		s, ok := cell.(string)
		if !ok {
			continue
		}
		switch norm.Fold(s) {
		case "data":
			hasDate = true
		case "debito", "credito":
			hasMovement = true
		}
	}
	return hasDate && hasMovement
}

// accountHeader recognizes the three header conventions: a bare code
// cell with the name alongside, a "Conta:" label preceding code and
// name, and a combined "1.1.01 - Caixa" cell.
func accountHeader(row model.RawRow) (string, string) {
	for i, cell := range row {
		s, ok := cell.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)

		if m := combinedHeader.FindStringSubmatch(s); m != nil {
			return m[1], strings.TrimSpace(m[2])
		}
		if !code.IsCode(s) {
			continue
		}
		// Name is the next non-empty text cell.
		for j := i + 1; j < len(row); j++ {
			if name, ok := row[j].(string); ok && strings.TrimSpace(name) != "" {
				return s, strings.TrimSpace(name)
			}
		}
		return s, ""
	}
	return "", ""
}

// rowText joins a row's text cells for keyword matching.
func rowText(row model.RawRow) string {
	var parts []string
	for _, cell := range row {
		if s, ok := cell.(string); ok && strings.TrimSpace(s) != "" {
			parts = append(parts, strings.TrimSpace(s))
		}
	}
	return strings.Join(parts, " ")
}
