package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ryumonX/uangku/internal/apperrors"
	"github.com/ryumonX/uangku/internal/core/domain"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// CreateTransactionRequest defines the payload for recording a transaction.
type CreateTransactionRequest struct {
	Date       string          `json:"date" binding:"required,datetime=2006-01-02"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=pemasukan pengeluaran"`
	Category   string          `json:"category"`
	Pos        string          `json:"pos"`
	Country    string          `json:"country"`
	Note       string          `json:"note"`
	InvoiceURL string          `json:"invoiceUrl"`
}

// UpdateTransactionRequest defines the fields editable on an existing transaction.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateTransactionRequest struct {
	Date       *string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Amount     *decimal.Decimal `json:"amount"`
	Type       *string          `json:"type" binding:"omitempty,oneof=pemasukan pengeluaran lainnya"`
	Category   *string          `json:"category"`
	Pos        *string          `json:"pos"`
	Country    *string          `json:"country"`
	Note       *string          `json:"note"`
	InvoiceURL *string          `json:"invoiceUrl"`
}

// ListTransactionsParams defines the query parameters of the ledger view.
// Absent fields apply no filter; Type "all" matches every type.
type ListTransactionsParams struct {
	Page     int    `form:"page,default=1"`
	Type     string `form:"type"`
	Category string `form:"category"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
	Search   string `form:"search"`
	Pos      string `form:"pos"`
	Country  string `form:"country"`
}

// ToFilter converts the query parameters into a domain filter, validating the
// date bounds.
func (p ListTransactionsParams) ToFilter() (domain.TransactionFilter, error) {
	f := domain.TransactionFilter{
		Type:     p.Type,
		Category: p.Category,
		Search:   p.Search,
		Pos:      p.Pos,
		Country:  p.Country,
	}
	if p.DateFrom != "" {
		from, err := time.Parse(dateLayout, p.DateFrom)
		if err != nil {
			return f, fmt.Errorf("%w: invalid dateFrom %q", apperrors.ErrValidation, p.DateFrom)
		}
		f.DateFrom = &from
	}
	if p.DateTo != "" {
		to, err := time.Parse(dateLayout, p.DateTo)
		if err != nil {
			return f, fmt.Errorf("%w: invalid dateTo %q", apperrors.ErrValidation, p.DateTo)
		}
		f.DateTo = &to
	}
	return f, nil
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionId"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category,omitempty"`
	Pos           string          `json:"pos,omitempty"`
	Country       string          `json:"country,omitempty"`
	Note          string          `json:"note,omitempty"`
	InvoiceURL    string          `json:"invoiceUrl,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Date:          t.Date.Format(dateLayout),
		Amount:        t.Amount,
		Type:          string(t.Type),
		Category:      t.Category,
		Pos:           t.Pos,
		Country:       t.Country,
		Note:          t.Note,
		InvoiceURL:    t.InvoiceURL,
		CreatedAt:     t.CreatedAt,
	}
}

// ListTransactionsResponse wraps one ledger page with its pagination metadata.
// Page is the effective page after clamping; PageNumbers is the display strip
// with "..." markers for collapsed runs.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalCount   int64                 `json:"totalCount"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"pageSize"`
	TotalPages   int                   `json:"totalPages"`
	PageNumbers  []string              `json:"pageNumbers"`
}

// CategoriesResponse lists the distinct categories a user has recorded.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// SummaryResponse carries the dashboard counters.
type SummaryResponse struct {
	Total     int64 `json:"total"`
	ThisMonth int64 `json:"thisMonth"`
	Income    int64 `json:"income"`
	Expense   int64 `json:"expense"`
}

// ToSummaryResponse converts a domain summary to its API representation.
func ToSummaryResponse(s *domain.TransactionSummary) SummaryResponse {
	return SummaryResponse{
		Total:     s.Total,
		ThisMonth: s.ThisMonth,
		Income:    s.Income,
		Expense:   s.Expense,
	}
}
