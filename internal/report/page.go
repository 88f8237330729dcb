package report

import (
	"laporan/internal/core"
)

// Page is the display-ready form of a View.
type Page struct {
	Empty        bool          `json:"empty"`
	EmptyMessage string        `json:"empty_message,omitempty"`
	Months       []MonthOption `json:"months"`
	Selected     string        `json:"selected,omitempty"`
	SelectedName string        `json:"selected_label,omitempty"`
	FilterType   FilterType    `json:"filter_type"`
	Search       string        `json:"search"`
	Rows         []Row         `json:"rows"`
	Totals       Totals        `json:"totals"`
}

type MonthOption struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type Row struct {
	ID        string               `json:"id"`
	Date      string               `json:"date"`
	Title     string               `json:"title"`
	Category  string               `json:"category"`
	Type      core.TransactionType `json:"type"`
	TypeLabel string               `json:"type_label"`
	Amount    float64              `json:"amount"`
	Formatted string               `json:"amount_formatted"`
}

// Totals summarize the filtered rows.
type Totals struct {
	Income           float64 `json:"income"`
	Expense          float64 `json:"expense"`
	Balance          float64 `json:"balance"`
	IncomeFormatted  string  `json:"income_formatted"`
	ExpenseFormatted string  `json:"expense_formatted"`
	BalanceFormatted string  `json:"balance_formatted"`
}

// id-ID short date, e.g. 15/1/2024.
const rowDateLayout = "2/1/2006"

// Render produces the page for the current selection. When no months are
// available only the empty state is filled in.
func (v *View) Render() Page {
	if v.Empty() {
		return Page{Empty: true, EmptyMessage: EmptyMessage, FilterType: v.filter, Search: v.search}
	}

	p := Page{
		FilterType: v.filter,
		Search:     v.search,
		Months:     make([]MonthOption, 0, len(v.months)),
		Rows:       make([]Row, 0),
	}
	sel, hasSel := v.Selected()
	if hasSel {
		p.Selected = sel.String()
		p.SelectedName = sel.Label()
	}
	for _, k := range v.months {
		p.Months = append(p.Months, MonthOption{
			Key:      k.String(),
			Label:    k.Label(),
			Selected: hasSel && k == sel,
		})
	}

	txs := v.Transactions()
	for _, tx := range txs {
		p.Rows = append(p.Rows, Row{
			ID:        tx.ID,
			Date:      tx.Date.Format(rowDateLayout),
			Title:     tx.Title,
			Category:  tx.Category,
			Type:      tx.Type,
			TypeLabel: tx.Type.Label(),
			Amount:    tx.Amount,
			Formatted: core.FormatRupiah(tx.Amount),
		})
	}
	p.Totals = Summarize(txs)
	return p
}

// Summarize totals income and expense over txs.
func Summarize(txs []core.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			t.Income += tx.Amount
		case core.Expense:
			t.Expense += tx.Amount
		}
	}
	t.Balance = t.Income - t.Expense
	t.IncomeFormatted = core.FormatRupiah(t.Income)
	t.ExpenseFormatted = core.FormatRupiah(t.Expense)
	t.BalanceFormatted = core.FormatRupiah(t.Balance)
	return t
}
