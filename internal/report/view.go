package report

import (
	"laporan/internal/core"
)

// EmptyMessage is shown when the ledger has no dated transactions.
const EmptyMessage = "Belum ada data transaksi untuk laporan bulanan"

// View holds the user's selection over a ledger snapshot. It is not safe for
// concurrent use; each request or session owns its own View.
type View struct {
	txs       []core.Transaction
	months    []core.MonthKey
	selected  *core.MonthKey
	userChose bool
	filter    FilterType
	search    string
}

// NewView creates a view with an empty selection and runs Sync on txs.
func NewView(txs []core.Transaction) *View {
	v := &View{filter: FilterAll}
	v.Sync(txs)
	return v
}

// Sync replaces the ledger snapshot and recomputes the month index. If the
// user has not picked a month yet and months are available, the most recent
// one becomes selected. An explicit choice is never overwritten.
func (v *View) Sync(txs []core.Transaction) {
	v.txs = txs
	v.months = AvailableMonths(txs)
	if !v.userChose && v.selected == nil && len(v.months) > 0 {
		m := v.months[0]
		v.selected = &m
	}
}

// SelectMonth records an explicit month choice.
func (v *View) SelectMonth(k core.MonthKey) {
	v.selected = &k
	v.userChose = true
}

// ClearMonth unsets the month on the user's behalf. The default selection
// does not come back on later syncs.
func (v *View) ClearMonth() {
	v.selected = nil
	v.userChose = true
}

func (v *View) SetFilterType(f FilterType) {
	if f == "" {
		f = FilterAll
	}
	v.filter = f
}

func (v *View) SetSearch(s string) {
	v.search = s
}

// Months returns the available months, most recent first.
func (v *View) Months() []core.MonthKey {
	return append([]core.MonthKey(nil), v.months...)
}

// Selected returns the selected month, if any.
func (v *View) Selected() (core.MonthKey, bool) {
	if v.selected == nil {
		return core.MonthKey{}, false
	}
	return *v.selected, true
}

// Empty reports whether the no-data state applies.
func (v *View) Empty() bool {
	return len(v.months) == 0
}

// Criteria returns the current selection as filter criteria.
func (v *View) Criteria() Criteria {
	c := Criteria{Type: v.filter, Search: v.search}
	if v.selected != nil {
		m := *v.selected
		c.Month = &m
	}
	return c
}

// Transactions runs the filter pipeline for the current selection.
func (v *View) Transactions() []core.Transaction {
	if v.Empty() {
		return nil
	}
	return Filter(v.txs, v.Criteria())
}
