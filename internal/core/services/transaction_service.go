package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ryumonX/uangku/internal/apperrors"
	"github.com/ryumonX/uangku/internal/core/domain"
	portsrepo "github.com/ryumonX/uangku/internal/core/ports/repositories"
	portssvc "github.com/ryumonX/uangku/internal/core/ports/services"
	"github.com/ryumonX/uangku/internal/dto"
	"github.com/ryumonX/uangku/internal/utils/pagination"
)

const dateLayout = "2006-01-02"

type transactionService struct {
	txnRepo portsrepo.TransactionRepository
}

// NewTransactionService creates the ledger service backed by the given repository.
func NewTransactionService(txnRepo portsrepo.TransactionRepository) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo}
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Date:          date,
		Amount:        req.Amount,
		Type:          domain.TransactionType(req.Type),
		Category:      req.Category,
		Pos:           req.Pos,
		Country:       req.Country,
		Note:          req.Note,
		InvoiceURL:    req.InvoiceURL,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
}

// ListTransactions serves one ledger page under the given filter. The count
// runs first so the requested page can be clamped onto the last valid page
// before the rows are fetched.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, page int) (*dto.ListTransactionsResponse, error) {
	count, err := s.txnRepo.CountTransactions(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	totalPages := pagination.TotalPages(count)
	page = pagination.Clamp(page, totalPages)

	txns, err := s.txnRepo.ListTransactions(ctx, userID, filter, pagination.PageSize, pagination.Offset(page))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	out := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		out[i] = dto.ToTransactionResponse(&txns[i])
	}

	return &dto.ListTransactionsResponse{
		Transactions: out,
		TotalCount:   count,
		Page:         page,
		PageSize:     pagination.PageSize,
		TotalPages:   totalPages,
		PageNumbers:  pagination.Window(page, totalPages),
	}, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, *req.Date)
		}
		txn.Date = date
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
	}
	if req.Type != nil {
		t := domain.TransactionType(*req.Type)
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: invalid transaction type %q", apperrors.ErrValidation, *req.Type)
		}
		txn.Type = t
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.Pos != nil {
		txn.Pos = *req.Pos
	}
	if req.Country != nil {
		txn.Country = *req.Country
	}
	if req.Note != nil {
		txn.Note = *req.Note
	}
	if req.InvoiceURL != nil {
		txn.InvoiceURL = *req.InvoiceURL
	}
	txn.LastUpdatedAt = time.Now()

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return s.txnRepo.DeleteTransaction(ctx, userID, transactionID)
}

func (s *transactionService) ListCategories(ctx context.Context, userID string) ([]string, error) {
	return s.txnRepo.ListCategories(ctx, userID)
}

func (s *transactionService) GetSummary(ctx context.Context, userID string) (*domain.TransactionSummary, error) {
	return s.txnRepo.GetSummary(ctx, userID)
}
