package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/balanco-dev/balanco/internal/model"
)

const (
	numFields    = 6
	colCode      = 0
	colName      = 1
	colType      = 2
	colStatement = 3
	colField     = 4
	colSign      = 5
)

// ReadChart reads a chart-of-accounts.csv template.
func ReadChart(r io.Reader) (*Chart, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chart CSV: %w", err)
	}

	if len(records) == 0 {
		return NewChart(nil), nil
	}

	var entries []model.ChartOfAccountsEntry
	for i, rec := range records[1:] {
		entry, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}
	return NewChart(entries), nil
}

// WriteChart writes a chart-of-accounts.csv template.
func WriteChart(w io.Writer, chart *Chart) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"account_code", "account_name", "account_type", "statement", "field", "sign"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, entry := range chart.All() {
		if err := cw.Write(MarshalEntry(entry)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts a ChartOfAccountsEntry to a CSV row.
func MarshalEntry(e model.ChartOfAccountsEntry) []string {
	row := make([]string, numFields)
	row[colCode] = e.Code
	row[colName] = e.Name
	row[colType] = string(e.Type)
	row[colStatement] = string(e.Statement)
	row[colField] = e.Field
	row[colSign] = strconv.Itoa(e.Sign)
	return row
}

// UnmarshalEntry converts a CSV row to a ChartOfAccountsEntry.
func UnmarshalEntry(record []string) (model.ChartOfAccountsEntry, error) {
	if len(record) != numFields {
		return model.ChartOfAccountsEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	sign, err := strconv.Atoi(record[colSign])
	if err != nil {
		return model.ChartOfAccountsEntry{}, fmt.Errorf("parsing sign %q: %w", record[colSign], err)
	}

	return model.ChartOfAccountsEntry{
		Code:      record[colCode],
		Name:      record[colName],
		Type:      model.AccountType(record[colType]),
		Statement: model.StatementTarget(record[colStatement]),
		Field:     record[colField],
		Sign:      sign,
	}, nil
}
