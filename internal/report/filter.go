package report

import (
	"slices"
	"strings"

	"laporan/internal/core"
)

// FilterType narrows the report to one transaction type.
type FilterType string

const (
	FilterAll     FilterType = "all"
	FilterIncome  FilterType = "income"
	FilterExpense FilterType = "expense"
)

// ParseFilterType maps user input to a FilterType; unknown values mean all.
func ParseFilterType(s string) FilterType {
	switch FilterType(strings.ToLower(strings.TrimSpace(s))) {
	case FilterIncome:
		return FilterIncome
	case FilterExpense:
		return FilterExpense
	}
	return FilterAll
}

func (f FilterType) matches(t core.TransactionType) bool {
	return f == FilterAll || f == "" || core.TransactionType(f) == t
}

// Criteria is the selection the filter pipeline applies. A nil Month
// matches nothing.
type Criteria struct {
	Month  *core.MonthKey
	Type   FilterType
	Search string
}

// Filter returns the transactions matching c, most recent first. Ties keep
// their input order. txs is not modified.
func Filter(txs []core.Transaction, c Criteria) []core.Transaction {
	out := make([]core.Transaction, 0)
	if c.Month == nil {
		return out
	}
	needle := strings.ToLower(strings.TrimSpace(c.Search))
	for _, tx := range txs {
		if !tx.HasValidDate() || tx.Month() != *c.Month {
			continue
		}
		if !c.Type.matches(tx.Type) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(tx.Title), needle) &&
			!strings.Contains(strings.ToLower(tx.Category), needle) {
			continue
		}
		out = append(out, tx)
	}
	slices.SortStableFunc(out, func(a, b core.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}
