package report

import (
	"slices"

	"laporan/internal/core"
)

// AvailableMonths returns the distinct months present in txs, most recent
// first. Transactions without a valid date are ignored.
func AvailableMonths(txs []core.Transaction) []core.MonthKey {
	seen := make(map[core.MonthKey]struct{}, len(txs))
	months := make([]core.MonthKey, 0)
	for _, tx := range txs {
		if !tx.HasValidDate() {
			continue
		}
		k := tx.Month()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		months = append(months, k)
	}
	slices.SortFunc(months, func(a, b core.MonthKey) int {
		switch {
		case b.Before(a):
			return -1
		case a.Before(b):
			return 1
		}
		return 0
	})
	return months
}

// MonthTotals aggregates one month of the ledger.
type MonthTotals struct {
	Month   core.MonthKey
	Income  float64
	Expense float64
}

// MonthlySeries sums income and expense per available month, oldest first.
func MonthlySeries(txs []core.Transaction) []MonthTotals {
	months := AvailableMonths(txs)
	idx := make(map[core.MonthKey]int, len(months))
	out := make([]MonthTotals, len(months))
	for i, k := range months {
		pos := len(months) - 1 - i
		idx[k] = pos
		out[pos].Month = k
	}
	for _, tx := range txs {
		if !tx.HasValidDate() {
			continue
		}
		i := idx[tx.Month()]
		switch tx.Type {
		case core.Income:
			out[i].Income += tx.Amount
		case core.Expense:
			out[i].Expense += tx.Amount
		}
	}
	return out
}
