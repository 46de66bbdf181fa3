package ledger

import (
	"sort"

	"github.com/balanco-dev/balanco/internal/model"
)

// mergeDuplicates collapses accounts sharing a code, as produced by
// paginated exports that restart an account on every page. First-seen
// order is preserved.
func mergeDuplicates(accounts []model.LedgerAccount) []model.LedgerAccount {
	byCode := make(map[string]int, len(accounts))
	var merged []model.LedgerAccount
	for _, acct := range accounts {
		i, seen := byCode[acct.Code]
		if !seen {
			byCode[acct.Code] = len(merged)
			merged = append(merged, acct)
			continue
		}
		merged[i] = Merge(merged[i], acct)
	}
	return merged
}

// Merge combines two fragments of the same account: entries are
// concatenated and re-sorted by date, totals are summed, the first
// non-zero opening balance is kept, the later non-zero closing balance
// wins, and the longer display name wins.
func Merge(a, b model.LedgerAccount) model.LedgerAccount {
	out := a

	out.Entries = make([]model.LedgerEntry, 0, len(a.Entries)+len(b.Entries))
	out.Entries = append(out.Entries, a.Entries...)
	out.Entries = append(out.Entries, b.Entries...)
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Date.Before(out.Entries[j].Date)
	})

	out.TotalDebits = a.TotalDebits.Add(b.TotalDebits)
	out.TotalCredits = a.TotalCredits.Add(b.TotalCredits)

	if out.OpeningBalance.IsZero() {
		out.OpeningBalance = b.OpeningBalance
	}
	if !b.ClosingBalance.IsZero() {
		out.ClosingBalance = b.ClosingBalance
	}
	if len(b.Name) > len(out.Name) {
		out.Name = b.Name
	}
	return out
}
