package ledger

import (
	"context"

	"laporan/internal/core"
)

// Ports for the read-only ledger boundary. The report never writes back.
type (
	// TransactionReader returns the full ledger snapshot.
	TransactionReader interface {
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
	}
)
