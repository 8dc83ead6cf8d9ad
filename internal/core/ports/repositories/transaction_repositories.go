package repositories

import (
	"context"

	"github.com/ryumonX/uangku/internal/core/domain"
)

// TransactionRepository defines persistence operations for ledger transactions.
// Every operation is scoped to an owner user ID; rows belonging to other users
// are invisible to it.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	// SaveTransactions inserts one batch of transactions. Used by bulk import;
	// each call is atomic but consecutive calls are independent.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	// ListTransactions returns one window of the filtered ledger, sorted by
	// date descending with transaction_id descending as tie-break.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error)
	// CountTransactions counts the rows matching the same predicate as
	// ListTransactions, ignoring pagination bounds.
	CountTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (int64, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
	ListCategories(ctx context.Context, userID string) ([]string, error)
	GetSummary(ctx context.Context, userID string) (*domain.TransactionSummary, error)
}
