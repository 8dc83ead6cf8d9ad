package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database row shape for the transactions table.
// Nullable text columns use sql.Null* so the scan layer matches the schema;
// mapping to the domain collapses NULL and empty string.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Date          time.Time       `db:"date"`
	Amount        decimal.Decimal `db:"amount"`
	Type          string          `db:"type_transaction"`
	Category      sql.NullString  `db:"category"`
	Pos           sql.NullString  `db:"pos"`
	Country       sql.NullString  `db:"country"`
	Note          sql.NullString  `db:"note"`
	InvoiceURL    sql.NullString  `db:"invoice_url"`
	AuditFields
}
