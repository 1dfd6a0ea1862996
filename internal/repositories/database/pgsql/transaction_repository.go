package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pft-app/pft_backend/internal/apperrors"
	"github.com/pft-app/pft_backend/internal/core/domain"
	portsrepo "github.com/pft-app/pft_backend/internal/core/ports/repositories"
	"github.com/pft-app/pft_backend/internal/models"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository persists transactions. Every write runs inside a
// database transaction that locks the affected accounts before touching their
// balances, so a row and its balance effects land (or fail) together.
type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountBalanceSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountBalanceSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// Helper to convert domain.Transaction to models.Transaction for DB storage
func toModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		Description:     d.Description,
		TransactionType: string(d.TransactionType),
		TransactionDate: d.TransactionDate,
		ReferenceNumber: d.ReferenceNumber,
		Notes:           d.Notes,
		Status:          string(d.Status),
		IsRecurring:     d.IsRecurring,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
	if d.ToAccountID != "" {
		m.ToAccountID = sql.NullString{String: d.ToAccountID, Valid: true}
	}
	if d.CategoryID != "" {
		m.CategoryID = sql.NullString{String: d.CategoryID, Valid: true}
	}
	if d.RecurringFrequency != "" {
		m.RecurringFrequency = sql.NullString{String: string(d.RecurringFrequency), Valid: true}
	}
	if d.NextRecurringDate != nil {
		m.NextRecurringDate = sql.NullTime{Time: *d.NextRecurringDate, Valid: true}
	}
	return m
}

// Helper to convert models.Transaction from DB to domain.Transaction
func toDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		Description:     m.Description,
		TransactionType: domain.TransactionType(m.TransactionType),
		TransactionDate: m.TransactionDate,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		Status:          domain.TransactionStatus(m.Status),
		IsRecurring:     m.IsRecurring,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
	if m.ToAccountID.Valid {
		d.ToAccountID = m.ToAccountID.String
	}
	if m.CategoryID.Valid {
		d.CategoryID = m.CategoryID.String
	}
	if m.RecurringFrequency.Valid {
		d.RecurringFrequency = domain.RecurringFrequency(m.RecurringFrequency.String)
	}
	if m.NextRecurringDate.Valid {
		t := m.NextRecurringDate.Time
		d.NextRecurringDate = &t
	}
	return d
}

const transactionColumns = `transaction_id, account_id, to_account_id, category_id, amount, description, transaction_type, transaction_date, reference_number, notes, status, is_recurring, recurring_frequency, next_recurring_date, created_at, updated_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.ToAccountID,
		&m.CategoryID,
		&m.Amount,
		&m.Description,
		&m.TransactionType,
		&m.TransactionDate,
		&m.ReferenceNumber,
		&m.Notes,
		&m.Status,
		&m.IsRecurring,
		&m.RecurringFrequency,
		&m.NextRecurringDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// accountIDsOf returns the keys of a balance change map.
func accountIDsOf(balanceChanges map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(balanceChanges))
	for id := range balanceChanges {
		ids = append(ids, id)
	}
	return ids
}

// SaveTransaction inserts the transaction row and applies its balance deltas
// to the affected accounts under row locks.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	modelTxn := toModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDsOf(balanceChanges)); err != nil {
		return fmt.Errorf("failed to lock accounts for transaction %s: %w", modelTxn.TransactionID, err)
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.ToAccountID,
		modelTxn.CategoryID,
		modelTxn.Amount,
		modelTxn.Description,
		modelTxn.TransactionType,
		modelTxn.TransactionDate,
		modelTxn.ReferenceNumber,
		modelTxn.Notes,
		modelTxn.Status,
		modelTxn.IsRecurring,
		modelTxn.RecurringFrequency,
		modelTxn.NextRecurringDate,
		modelTxn.CreatedAt,
		modelTxn.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, modelTxn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", modelTxn.TransactionID, err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, txn.UpdatedAt); err != nil {
		return fmt.Errorf("failed to apply balance changes for transaction %s: %w", modelTxn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction updates the mutable fields of a transaction row and
// applies the supplied balance deltas (empty when the amount did not change).
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	modelTxn := toModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDsOf(balanceChanges)); err != nil {
		return fmt.Errorf("failed to lock accounts for transaction %s: %w", modelTxn.TransactionID, err)
	}

	query := `
		UPDATE transactions
		SET category_id = $2, amount = $3, description = $4, transaction_date = $5,
		    reference_number = $6, notes = $7, status = $8, is_recurring = $9,
		    recurring_frequency = $10, next_recurring_date = $11, updated_at = $12
		WHERE transaction_id = $1;
	`
	// account_id, to_account_id and transaction_type are fixed at creation.
	cmdTag, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.CategoryID,
		modelTxn.Amount,
		modelTxn.Description,
		modelTxn.TransactionDate,
		modelTxn.ReferenceNumber,
		modelTxn.Notes,
		modelTxn.Status,
		modelTxn.IsRecurring,
		modelTxn.RecurringFrequency,
		modelTxn.NextRecurringDate,
		modelTxn.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update transaction %s: %w", modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, txn.UpdatedAt); err != nil {
		return fmt.Errorf("failed to apply balance changes for transaction %s: %w", modelTxn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction applies the reversal deltas and removes the row.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDsOf(balanceChanges)); err != nil {
		return fmt.Errorf("failed to lock accounts for transaction %s: %w", txn.TransactionID, err)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, time.Now()); err != nil {
		return fmt.Errorf("failed to apply balance changes for transaction %s: %w", txn.TransactionID, err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, txn.TransactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	domainTxn := toDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactionsByUser retrieves transactions across a user's accounts,
// newest first. Transactions carry no owner column; ownership goes through
// the source or destination account.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	query := `
		SELECT DISTINCT t.transaction_id, t.account_id, t.to_account_id, t.category_id, t.amount, t.description, t.transaction_type, t.transaction_date, t.reference_number, t.notes, t.status, t.is_recurring, t.recurring_frequency, t.next_recurring_date, t.created_at, t.updated_at
		FROM transactions t
		JOIN accounts a ON a.account_id IN (t.account_id, t.to_account_id)
		WHERE a.user_id = $1`
	args := []any{userID}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += fmt.Sprintf(" AND (t.account_id = $%d OR t.to_account_id = $%d)", len(args), len(args))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND t.category_id = $%d", len(args))
	}
	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		query += fmt.Sprintf(" AND t.transaction_type = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND t.transaction_date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND t.transaction_date < $%d", len(args))
	}

	query += " ORDER BY t.transaction_date DESC, t.created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	query += ";"

	return r.queryTransactions(ctx, query, args...)
}

// FindDueRecurringByUser retrieves recurring transactions whose next
// occurrence is at or before asOf.
func (r *PgxTransactionRepository) FindDueRecurringByUser(ctx context.Context, userID string, asOf time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT t.transaction_id, t.account_id, t.to_account_id, t.category_id, t.amount, t.description, t.transaction_type, t.transaction_date, t.reference_number, t.notes, t.status, t.is_recurring, t.recurring_frequency, t.next_recurring_date, t.created_at, t.updated_at
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.user_id = $1 AND t.is_recurring = TRUE AND t.next_recurring_date IS NOT NULL AND t.next_recurring_date <= $2
		ORDER BY t.next_recurring_date;
	`
	return r.queryTransactions(ctx, query, userID, asOf)
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		modelTxn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, toDomainTransaction(modelTxn))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return transactions, nil
}

// CountTransactionsByAccount returns how many transactions reference the
// account as source or destination.
func (r *PgxTransactionRepository) CountTransactionsByAccount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM transactions WHERE account_id = $1 OR to_account_id = $1;`
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for account %s: %w", accountID, err)
	}
	return count, nil
}

// CountTransactionsByCategory returns how many transactions reference the category.
func (r *PgxTransactionRepository) CountTransactionsByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM transactions WHERE category_id = $1;`
	err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for category %s: %w", categoryID, err)
	}
	return count, nil
}

// SumAmountByUserTypeAndDateRange sums transaction magnitudes for a user and
// type within [from, to).
func (r *PgxTransactionRepository) SumAmountByUserTypeAndDateRange(ctx context.Context, userID string, txType domain.TransactionType, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(t.amount), 0)
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.user_id = $1 AND t.transaction_type = $2 AND t.transaction_date >= $3 AND t.transaction_date < $4;
	`
	err := r.Pool.QueryRow(ctx, query, userID, string(txType), from, to).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s transactions for user %s: %w", txType, userID, err)
	}
	return total, nil
}
