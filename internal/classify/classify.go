// Package classify maps account codes to their accounting nature.
package classify

import (
	"strconv"
	"strings"

	"github.com/balanco-dev/balanco/internal/code"
	"github.com/balanco-dev/balanco/internal/model"
	"github.com/balanco-dev/balanco/internal/norm"
)

// equityKeywords force equity classification regardless of code prefix.
var equityKeywords = []string{
	"patrimonio liquido",
	"capital social",
	"reservas de lucro",
	"reservas de capital",
	"lucros acumulados",
	"prejuizos acumulados",
}

// Nature returns the accounting nature for an account code and display
// name. Pure: same inputs always yield the same result.
//
// Brazilian chart convention: leading segment 1 = ativo, 2 = passivo
// (with equity sub-ranges), 3 and 6 = resultado credor, 4 and 5 =
// resultado devedor.
func Nature(accountCode, name string) model.AccountType {
	folded := norm.Fold(name)
	for _, kw := range equityKeywords {
		if strings.Contains(folded, kw) {
			return model.AccountTypeEquity
		}
	}

	segs := code.Segments(accountCode)
	if len(segs) == 0 {
		// Single-segment codes still carry a leading digit.
		segs = []string{strings.TrimSpace(accountCode)}
	}
	switch segs[0] {
	case "1":
		return model.AccountTypeAsset
	case "2":
		if len(segs) > 1 && secondSegmentIsEquity(segs[1]) {
			return model.AccountTypeEquity
		}
		return model.AccountTypeLiability
	case "3", "6":
		return model.AccountTypeRevenue
	case "4", "5":
		return model.AccountTypeExpense
	}
	return model.AccountTypeUnknown
}

// secondSegmentIsEquity reports whether a 2.x second segment falls in
// the range conventionally reserved for patrimônio líquido (>= 3).
func secondSegmentIsEquity(seg string) bool {
	n, err := strconv.Atoi(seg)
	if err != nil {
		return false
	}
	return n >= 3
}
