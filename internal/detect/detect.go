// Package detect infers which spreadsheet column plays which role in an
// unlabeled or inconsistently labeled ledger export.
package detect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/balanco-dev/balanco/internal/model"
	"github.com/balanco-dev/balanco/internal/norm"
)

var datePattern = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)

// Date serials for roughly 1990..2070 under the 1900 epoch. Serials
// outside this window are treated as plain numbers.
const (
	serialMin = 32874
	serialMax = 62093
)

// Columns inspects the raw grid and returns the detected ColumnConfig.
// The second result is false when no qualifying row exists.
//
// Two passes, first match wins: explicit header labels, then positional
// shape (a date-like cell plus at least two numeric non-date cells).
func Columns(rows []model.RawRow) (model.ColumnConfig, bool) {
	if cfg, ok := labeledColumns(rows); ok {
		return cfg, true
	}
	return positionalColumns(rows)
}

// labeledColumns looks for a header row naming the columns. A row
// qualifies when it labels a date column and at least one of
// debit/credit. Labels are matched case- and diacritic-insensitively.
func labeledColumns(rows []model.RawRow) (model.ColumnConfig, bool) {
	for _, row := range rows {
		cfg := model.EmptyColumnConfig()
		for i, cell := range row {
			s, ok := cell.(string)
			if !ok {
				continue
			}
			switch label := norm.Fold(s); {
			case label == "data":
				cfg.Date = i
			case label == "debito":
				cfg.Debit = i
			case label == "credito":
				cfg.Credit = i
			case label == "historico":
				cfg.Description = i
			case strings.Contains(label, "saldo") && strings.Contains(label, "exercicio"):
				cfg.PreviousBalance = i
			case strings.HasPrefix(label, "saldo"):
				cfg.Balance = i
			}
		}
		if cfg.Date >= 0 && (cfg.Debit >= 0 || cfg.Credit >= 0) {
			return cfg, true
		}
	}
	return model.EmptyColumnConfig(), false
}

// positionalColumns scans for a row shaped like a transaction: one
// date-like cell and two or more numeric cells that are not themselves
// date-like. The description is assumed to follow the date column; the
// numeric columns become debit, credit, balance, and previous balance
// in order of appearance.
func positionalColumns(rows []model.RawRow) (model.ColumnConfig, bool) {
	for _, row := range rows {
		dateCol := -1
		var numeric []int
		for i, cell := range row {
			switch {
			case IsDateCell(cell):
				if dateCol < 0 {
					dateCol = i
				}
			case isNumericCell(cell):
				numeric = append(numeric, i)
			}
		}
		if dateCol < 0 || len(numeric) < 2 {
			continue
		}

		cfg := model.EmptyColumnConfig()
		cfg.Date = dateCol
		cfg.Description = dateCol + 1
		cfg.Debit = numeric[0]
		cfg.Credit = numeric[1]
		if len(numeric) > 2 {
			cfg.Balance = numeric[2]
		}
		if len(numeric) > 3 {
			cfg.PreviousBalance = numeric[3]
		}
		return cfg, true
	}
	return model.EmptyColumnConfig(), false
}

// IsDateCell reports whether a cell is recognizable as a calendar date:
// a dd/mm/yyyy-shaped string or a numeric serial in a plausible range.
func IsDateCell(cell any) bool {
	switch v := cell.(type) {
	case string:
		s := strings.TrimSpace(v)
		if datePattern.MatchString(s) {
			return true
		}
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n >= serialMin && n <= serialMax
		}
	case float64:
		return v >= serialMin && v <= serialMax
	}
	return false
}

// isNumericCell reports whether a cell holds a plain number, excluding
// date-like values.
func isNumericCell(cell any) bool {
	if IsDateCell(cell) {
		return false
	}
	switch v := cell.(type) {
	case float64:
		return true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return false
		}
		// Brazilian-formatted amounts count as numeric.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
		_, err := strconv.ParseFloat(s, 64)
		return err == nil
	}
	return false
}
