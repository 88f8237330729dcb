package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"laporan/internal/core"
	"laporan/internal/ledger"
)

var _ ledger.TransactionReader = (*Store)(nil)

// SeedFile is the ledger file read from the data directory.
const SeedFile = "transactions.json"

type Store struct {
	mu    sync.Mutex
	items []core.Transaction

	// set by NewFromFiles so Reload can re-read the seed
	base string
	loc  *time.Location
}

// record is the on-disk shape of a seeded transaction.
type record struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
}

func New(items []core.Transaction) *Store {
	return &Store{items: append([]core.Transaction(nil), items...)}
}

// NewFromFiles loads base/transactions.json. A missing file gives an empty
// ledger; unknown types are skipped and unparseable dates are kept as zero.
func NewFromFiles(base string, loc *time.Location) (*Store, error) {
	items, err := readSeed(base, loc)
	if err != nil {
		return nil, err
	}
	return &Store{items: items, base: base, loc: loc}, nil
}

// Reload re-reads the seed file. Stores built with New have nothing to reload.
func (s *Store) Reload(_ context.Context) error {
	if s.base == "" {
		return nil
	}
	items, err := readSeed(s.base, s.loc)
	if err != nil {
		return err
	}
	s.Replace(items)
	return nil
}

func readSeed(base string, loc *time.Location) ([]core.Transaction, error) {
	b, err := os.ReadFile(filepath.Join(base, SeedFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var recs []record
	if err := json.Unmarshal(b, &recs); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	items := make([]core.Transaction, 0, len(recs))
	for i, r := range recs {
		typ, err := core.ParseTransactionType(r.Type)
		if err != nil {
			slog.Warn("Skipping seeded transaction with unknown type", "index", i, "type", r.Type)
			continue
		}
		date, err := core.ParseDate(r.Date, loc)
		if err != nil {
			slog.Warn("Seeded transaction has unparseable date", "index", i, "date", r.Date)
		}
		tx := core.Transaction{
			ID:       r.ID,
			Date:     date,
			Title:    r.Title,
			Category: r.Category,
			Type:     typ,
			Amount:   r.Amount,
		}
		tx.GenerateID()
		items = append(items, tx)
	}
	return items, nil
}

// ListTransactions returns a copy of the ledger.
func (s *Store) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

// Replace swaps the ledger contents, as an external owner would.
func (s *Store) Replace(items []core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Transaction(nil), items...)
}
