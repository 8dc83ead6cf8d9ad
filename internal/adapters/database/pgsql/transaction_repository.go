package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ryumonX/uangku/internal/apperrors"
	"github.com/ryumonX/uangku/internal/core/domain"
	portsrepo "github.com/ryumonX/uangku/internal/core/ports/repositories"
	"github.com/ryumonX/uangku/internal/models"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepository
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Helper to convert domain.Transaction to models.Transaction
func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		UserID:        d.UserID,
		Date:          d.Date,
		Amount:        d.Amount,
		Type:          string(d.Type),
		Category:      nullable(d.Category),
		Pos:           nullable(d.Pos),
		Country:       nullable(d.Country),
		Note:          nullable(d.Note),
		InvoiceURL:    nullable(d.InvoiceURL),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// Helper to convert models.Transaction to domain.Transaction
func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		UserID:        m.UserID,
		Date:          m.Date,
		Amount:        m.Amount,
		Type:          domain.TransactionType(m.Type),
		Category:      m.Category.String,
		Pos:           m.Pos.String,
		Country:       m.Country.String,
		Note:          m.Note.String,
		InvoiceURL:    m.InvoiceURL.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const transactionColumns = `transaction_id, user_id, date, amount, type_transaction, category, pos, country, note, invoice_url, created_at, last_updated_at`

// buildFilterClause translates the owner identity plus the user-supplied
// filter state into one conjunctive WHERE clause and its arguments. List and
// Count both go through here, so a page query and its count query always run
// under the identical predicate.
func buildFilterClause(userID string, f domain.TransactionFilter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.Type != "" && f.Type != "all" {
		add("type_transaction = $%d", f.Type)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.DateFrom != nil {
		add("date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("date <= $%d", *f.DateTo)
	}
	if f.Search != "" {
		add("note ILIKE '%%' || $%d || '%%'", f.Search)
	}
	if f.Pos != "" {
		add("pos = $%d", f.Pos)
	}
	if f.Country != "" {
		add("country = $%d", f.Country)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.UserID,
		m.Date,
		m.Amount,
		m.Type,
		m.Category,
		m.Pos,
		m.Country,
		m.Note,
		m.InvoiceURL,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// SaveTransactions inserts one import batch atomically. Separate batches are
// separate calls; an earlier committed batch is not rolled back when a later
// one fails.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, txn := range txns {
		m := toModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID, m.UserID, m.Date, m.Amount, m.Type,
			m.Category, m.Pos, m.Country, m.Note, m.InvoiceURL,
			m.CreatedAt, m.LastUpdatedAt,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert transaction batch of %d: %w", len(txns), err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND transaction_id = $2;
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, userID, transactionID).Scan(
		&m.TransactionID,
		&m.UserID,
		&m.Date,
		&m.Amount,
		&m.Type,
		&m.Category,
		&m.Pos,
		&m.Country,
		&m.Note,
		&m.InvoiceURL,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

// ListTransactions retrieves one window of the filtered ledger, newest date
// first. transaction_id descending is the deterministic tie-break for rows
// sharing a date.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter, limit, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	whereClause, args := buildFilterClause(userID, filter)
	query := `SELECT ` + transactionColumns + ` FROM transactions ` + whereClause +
		` ORDER BY date DESC, transaction_id DESC` +
		` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;`
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		var m models.Transaction
		err := rows.Scan(
			&m.TransactionID,
			&m.UserID,
			&m.Date,
			&m.Amount,
			&m.Type,
			&m.Category,
			&m.Pos,
			&m.Country,
			&m.Note,
			&m.InvoiceURL,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return txns, nil
}

// CountTransactions counts the rows matching the filter, ignoring pagination
// bounds but respecting every predicate ListTransactions applies.
func (r *PgxTransactionRepository) CountTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (int64, error) {
	whereClause, args := buildFilterClause(userID, filter)
	query := `SELECT COUNT(*) FROM transactions ` + whereClause + `;`

	var count int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
		UPDATE transactions SET
			date = $3,
			amount = $4,
			type_transaction = $5,
			category = $6,
			pos = $7,
			country = $8,
			note = $9,
			invoice_url = $10,
			last_updated_at = $11
		WHERE user_id = $1 AND transaction_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.TransactionID,
		m.Date,
		m.Amount,
		m.Type,
		m.Category,
		m.Pos,
		m.Country,
		m.Note,
		m.InvoiceURL,
		m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE user_id = $1 AND transaction_id = $2;`
	tag, err := r.Pool.Exec(ctx, query, userID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListCategories returns the distinct non-empty categories the user has used,
// feeding the filter dropdown.
func (r *PgxTransactionRepository) ListCategories(ctx context.Context, userID string) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM transactions
		WHERE user_id = $1 AND category IS NOT NULL AND category <> ''
		ORDER BY category;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

// GetSummary computes the dashboard counters in a single pass.
func (r *PgxTransactionRepository) GetSummary(ctx context.Context, userID string) (*domain.TransactionSummary, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE date >= date_trunc('month', CURRENT_DATE)) AS this_month,
			COUNT(*) FILTER (WHERE type_transaction = 'pemasukan') AS income,
			COUNT(*) FILTER (WHERE type_transaction = 'pengeluaran') AS expense
		FROM transactions
		WHERE user_id = $1;
	`
	var s domain.TransactionSummary
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&s.Total, &s.ThisMonth, &s.Income, &s.Expense)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction summary: %w", err)
	}
	return &s, nil
}
