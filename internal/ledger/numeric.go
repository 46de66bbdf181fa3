package ledger

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balanco-dev/balanco/internal/model"
)

var (
	dateShape   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
	markerShape = regexp.MustCompile(`\s*([DCdc])$`)
)

// serialEpoch is day zero of the 1900 date system.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseNumericCell converts a raw cell to an amount using the Brazilian
// convention: comma as decimal separator with dots as thousands marks,
// parentheses for negatives, and an optional trailing debit/credit
// marker letter. Unparseable cells yield zero; this never fails.
func ParseNumericCell(cell any) decimal.Decimal {
	v, _ := parseAmount(cell)
	return v
}

// parseAmount additionally returns the trailing D/C marker, when present.
func parseAmount(cell any) (decimal.Decimal, model.BalanceTag) {
	switch v := cell.(type) {
	case float64:
		return decimal.NewFromFloat(v), model.BalanceTagNone
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, model.BalanceTagNone
		}

		tag := model.BalanceTagNone
		if m := markerShape.FindStringSubmatch(s); m != nil {
			switch strings.ToUpper(m[1]) {
			case "D":
				tag = model.BalanceTagDebit
			case "C":
				tag = model.BalanceTagCredit
			}
			s = strings.TrimSpace(s[:len(s)-len(m[0])])
		}

		negative := false
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			negative = true
			s = strings.TrimSpace(s[1 : len(s)-1])
		}

		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}

		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, model.BalanceTagNone
		}
		if negative {
			d = d.Neg()
		}
		return d, tag
	}
	return decimal.Zero, model.BalanceTagNone
}

// ParseDateCell converts a raw cell to a date: dd/mm/yyyy-shaped
// strings (two-digit years resolve to 20xx) or 1900-system serial
// numbers. The zero time means "not a date".
func ParseDateCell(cell any) time.Time {
	switch v := cell.(type) {
	case float64:
		return serialDate(v)
	case string:
		s := strings.TrimSpace(v)
		if m := dateShape.FindStringSubmatch(s); m != nil {
			day := atoi(m[1])
			month := atoi(m[2])
			year := atoi(m[3])
			if year < 100 {
				year += 2000
			}
			if month < 1 || month > 12 || day < 1 || day > 31 {
				return time.Time{}
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
		var f float64
		if d, err := decimal.NewFromString(s); err == nil {
			f, _ = d.Float64()
			return serialDate(f)
		}
	}
	return time.Time{}
}

// serialDate maps an Excel serial in a plausible year window onto a
// calendar date; anything else is treated as a plain number.
func serialDate(serial float64) time.Time {
	if serial < 32874 || serial > 62093 { // ~1990..2070
		return time.Time{}
	}
	return serialEpoch.AddDate(0, 0, int(serial))
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
