package model

import "time"

// RawRow is one decoded spreadsheet row. Cells are string, float64, or
// nil for blanks; rows are ragged (missing trailing cells are absent).
type RawRow []any

// At returns the cell at index i, or nil when i is out of range or negative.
func (r RawRow) At(i int) any {
	if i < 0 || i >= len(r) {
		return nil
	}
	return r[i]
}

// ColumnConfig holds the zero-based column index for each recognized
// role. -1 means the column is not present in the file, a common and
// valid state.
type ColumnConfig struct {
	Date            int
	Description     int
	Debit           int
	Credit          int
	Balance         int
	PreviousBalance int // prior-period / alternate balance column
}

// EmptyColumnConfig returns a ColumnConfig with every column absent.
func EmptyColumnConfig() ColumnConfig {
	return ColumnConfig{Date: -1, Description: -1, Debit: -1, Credit: -1, Balance: -1, PreviousBalance: -1}
}

// ParsedLedger is the result of one import run.
type ParsedLedger struct {
	Company     string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Accounts    []LedgerAccount // deduplicated, in first-seen order
	RowsScanned int
	Warnings    []string
}
