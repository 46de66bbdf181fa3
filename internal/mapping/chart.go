package mapping

import (
	"strings"

	"github.com/balanco-dev/balanco/internal/classify"
	"github.com/balanco-dev/balanco/internal/code"
	"github.com/balanco-dev/balanco/internal/model"
)

// Chart provides in-memory lookup over a chart-of-accounts template.
type Chart struct {
	entries []model.ChartOfAccountsEntry
	byCode  map[string]model.ChartOfAccountsEntry
}

// NewChart creates a Chart from a slice of entries.
func NewChart(entries []model.ChartOfAccountsEntry) *Chart {
	byCode := make(map[string]model.ChartOfAccountsEntry, len(entries))
	for _, e := range entries {
		byCode[e.Code] = e
	}
	return &Chart{entries: entries, byCode: byCode}
}

// All returns all entries.
func (c *Chart) All() []model.ChartOfAccountsEntry {
	return c.entries
}

// Get returns an entry by account code.
func (c *Chart) Get(accountCode string) (model.ChartOfAccountsEntry, bool) {
	e, ok := c.byCode[accountCode]
	return e, ok
}

// BuildChart derives a persistable code-to-field template from a parsed
// ledger and its mappings, for reapplication to future imports of the
// same company's ledger.
func BuildChart(ledger *model.ParsedLedger, mappings []model.LedgerMapping) *Chart {
	byCode := make(map[string]model.LedgerMapping, len(mappings))
	for _, m := range mappings {
		byCode[m.AccountCode] = m
	}

	entries := make([]model.ChartOfAccountsEntry, 0, len(ledger.Accounts))
	for _, acct := range ledger.Accounts {
		entry := model.ChartOfAccountsEntry{
			Code:      acct.Code,
			Name:      acct.Name,
			Type:      acct.Type,
			Statement: model.TargetIgnore,
			Sign:      1,
		}
		if m, ok := byCode[acct.Code]; ok {
			entry.Statement = m.Statement
			entry.Field = m.Field
			entry.Sign = m.Sign
		}
		entries = append(entries, entry)
	}
	return NewChart(entries)
}

// ChartFromRows builds a chart from a standalone account-list file: any
// row holding an account code and a name, classified and auto-mapped
// through the same heuristics used for full ledgers.
func ChartFromRows(rows []model.RawRow) *Chart {
	var entries []model.ChartOfAccountsEntry
	for _, row := range rows {
		c, name := chartRow(row)
		if c == "" {
			continue
		}
		acct := model.LedgerAccount{
			Code:  c,
			Name:  name,
			Level: code.Level(c),
			Type:  classify.Nature(c, name),
		}
		m := autoMapAccount(acct)
		entries = append(entries, model.ChartOfAccountsEntry{
			Code:      c,
			Name:      name,
			Type:      acct.Type,
			Statement: m.Statement,
			Field:     m.Field,
			Sign:      m.Sign,
		})
	}
	return NewChart(entries)
}

// Apply reapplies a persisted template to freshly parsed accounts. The
// resulting mappings are user-confirmed, not heuristic; accounts absent
// from the chart fall back to the auto-mapper.
func (c *Chart) Apply(accounts []model.LedgerAccount) []model.LedgerMapping {
	mappings := make([]model.LedgerMapping, 0, len(accounts))
	for _, acct := range accounts {
		e, ok := c.Get(acct.Code)
		if !ok {
			mappings = append(mappings, autoMapAccount(acct))
			continue
		}
		mappings = append(mappings, model.LedgerMapping{
			AccountCode:  acct.Code,
			Statement:    e.Statement,
			Field:        e.Field,
			Sign:         e.Sign,
			AutoDetected: false,
		})
	}
	return mappings
}

// chartRow extracts (code, name) from a chart file row.
func chartRow(row model.RawRow) (string, string) {
	for i, cell := range row {
		s, ok := cell.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if !code.IsCode(s) {
			continue
		}
		for j := i + 1; j < len(row); j++ {
			if name, ok := row[j].(string); ok && strings.TrimSpace(name) != "" {
				return s, strings.TrimSpace(name)
			}
		}
		return s, ""
	}
	return "", ""
}
