package services

import (
	"context"

	"github.com/ryumonX/uangku/internal/core/domain"
	"github.com/ryumonX/uangku/internal/dto"
)

// TransactionSvcFacade defines the business operations over a user's ledger.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	// ListTransactions serves one ledger page. The requested page is clamped
	// to the last valid page under the filter, so a page emptied by a delete
	// falls back rather than returning an empty window.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, page int) (*dto.ListTransactionsResponse, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
	ListCategories(ctx context.Context, userID string) ([]string, error)
	GetSummary(ctx context.Context, userID string) (*domain.TransactionSummary, error)
}
