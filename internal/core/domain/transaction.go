package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
// "lainnya" only arises from bulk imports where neither money column held a value.
type TransactionType string

const (
	Income       TransactionType = "pemasukan"
	Expense      TransactionType = "pengeluaran"
	Unclassified TransactionType = "lainnya"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense, Unclassified:
		return true
	}
	return false
}

// Transaction is a single income or expense entry in a user's ledger.
// Amount is always a positive magnitude; direction is carried by Type.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // Owner; every read/write is scoped to this
	Date          time.Time       `json:"date"`          // Calendar date, no time component
	Amount        decimal.Decimal `json:"amount"`        // Positive value; precise decimal type
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`   // Free-form label (e.g., Gaji, Operasional)
	Pos           string          `json:"pos"`        // Cost-center label, optional
	Country       string          `json:"country"`    // Country-program partition (e.g., Jepang, Turki, Kuwait)
	Note          string          `json:"note"`       // Optional free text
	InvoiceURL    string          `json:"invoiceURL"` // Optional link to the uploaded proof of transaction
	AuditFields
}

// TransactionFilter is the transient filter state driving a ledger query.
// Zero-valued fields are not applied; Type "all" (or empty) matches both types.
type TransactionFilter struct {
	Type     string
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string // case-insensitive substring match against Note
	Pos      string
	Country  string
}

// TransactionSummary holds the dashboard counters for one user.
type TransactionSummary struct {
	Total     int64 `json:"total"`
	ThisMonth int64 `json:"thisMonth"`
	Income    int64 `json:"income"`
	Expense   int64 `json:"expense"`
}
