package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	// Transaction is a financial record owned by the ledger. The report
	// never mutates it.
	Transaction struct {
		ID       string
		Date     time.Time
		Title    string
		Category string
		Type     TransactionType
		Amount   float64
	}
)

var (
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
)

// ParseTransactionType accepts "income" or "expense", case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", ErrInvalidType
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Label returns the Indonesian badge text for the type.
func (t TransactionType) Label() string {
	switch t {
	case Income:
		return "Pemasukan"
	case Expense:
		return "Pengeluaran"
	}
	return string(t)
}

// GenerateID assigns a random UUID when the transaction has none.
func (t *Transaction) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// HasValidDate reports whether the transaction carries a usable date.
// Sources map unparseable dates to the zero time.
func (t Transaction) HasValidDate() bool {
	return !t.Date.IsZero()
}

// Month returns the calendar month the transaction falls in.
func (t Transaction) Month() MonthKey {
	return MonthOf(t.Date)
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseDate parses a ledger date. Date-only layouts are interpreted in loc;
// instants carrying an offset are converted to loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
