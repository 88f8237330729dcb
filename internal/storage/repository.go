package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"laporan/internal/core"
	"laporan/internal/ledger"

	_ "modernc.org/sqlite"
)

var _ ledger.TransactionReader = (*SQLiteRepository)(nil)

// SQLiteRepository reads the ledger kept in a SQLite file by its owner.
type SQLiteRepository struct {
	db  *sql.DB
	loc *time.Location
}

func NewSQLiteRepository(dbPath string, loc *time.Location) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if loc == nil {
		loc = time.UTC
	}
	return &SQLiteRepository{db: db, loc: loc}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const listTransactions = `SELECT id, date, title, category, type, amount FROM transactions ORDER BY date DESC, id`

// ListTransactions implements ledger.TransactionReader
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			tx            core.Transaction
			date, typeStr string
		)
		if err := rows.Scan(&tx.ID, &date, &tx.Title, &tx.Category, &typeStr, &tx.Amount); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		typ, err := core.ParseTransactionType(typeStr)
		if err != nil {
			slog.WarnContext(ctx, "Skipping transaction with unknown type", "id", tx.ID, "type", typeStr)
			continue
		}
		tx.Type = typ
		tx.Date, err = core.ParseDate(date, r.loc)
		if err != nil {
			slog.WarnContext(ctx, "Transaction has unparseable date", "id", tx.ID, "date", date)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// Ping checks the database connection for readiness probes.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
