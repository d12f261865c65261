package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"custodial-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, reference, account_id, source_wallet_id, destination_wallet_id,
		type, amount, fee, currency, status, description, failure_reason, external_reference,
		payment_gateway, ip_address, original_transaction_id, created_at, updated_at, completed_at`

const insertTransactionQuery = `INSERT INTO transactions (id, reference, account_id, source_wallet_id, destination_wallet_id,
		type, amount, fee, currency, status, description, failure_reason, external_reference,
		payment_gateway, ip_address, original_transaction_id, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a transaction within the caller's database transaction.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	if _, err := tx.Exec(ctx, insertTransactionQuery, transactionArgs(t)...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// CreateStandalone inserts a transaction outside any caller transaction.
// Used for the FAILED audit record after the money movement rolled back.
func (r *TransactionRepo) CreateStandalone(ctx context.Context, t *domain.Transaction) error {
	if _, err := r.pool.Exec(ctx, insertTransactionQuery, transactionArgs(t)...); err != nil {
		return fmt.Errorf("insert standalone transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by its UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	return t, nil
}

// GetByReference fetches a transaction by its public reference.
func (r *TransactionRepo) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference = $1`

	t, err := scanTransaction(r.pool.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by reference: %w", err)
	}
	return t, nil
}

// UpdateStatus finalizes a transaction within the caller's database
// transaction. completedAt is set only when the status is terminal.
func (r *TransactionRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus, completedAt *time.Time) error {
	query := `UPDATE transactions SET status = $1, completed_at = $2, updated_at = $3 WHERE id = $4`

	tag, err := tx.Exec(ctx, query, status, completedAt, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update transaction status: transaction %s not found", id)
	}
	return nil
}

// MarkReversed flips a SUCCESS transaction to REVERSED within the caller's
// database transaction. The status guard in the WHERE clause decides which of
// two concurrent reversals claims the original: the loser matches zero rows.
// completed_at keeps the original completion timestamp.
func (r *TransactionRepo) MarkReversed(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	query := `UPDATE transactions SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	tag, err := tx.Exec(ctx, query, domain.TransactionStatusReversed, time.Now().UTC(), id, domain.TransactionStatusSuccess)
	if err != nil {
		return false, fmt.Errorf("mark transaction reversed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// SumSuccessfulByAccount totals SUCCESS transactions initiated by the account
// within [from, to). Deposits do not consume the daily limit.
func (r *TransactionRepo) SumSuccessfulByAccount(ctx context.Context, accountID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE account_id = $1 AND status = $2 AND type IN ($3, $4)
		AND created_at >= $5 AND created_at < $6`

	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, query,
		accountID, domain.TransactionStatusSuccess,
		domain.TransactionTypeTransfer, domain.TransactionTypeWithdrawal,
		from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum successful transactions: %w", err)
	}
	return total, nil
}

// ListByAccount returns a page of the account's transactions, newest first,
// along with the total count for pagination.
func (r *TransactionRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error) {
	countQuery := `SELECT COUNT(*) FROM transactions WHERE account_id = $1`

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, accountID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE account_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction row: %w", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return transactions, total, nil
}

func transactionArgs(t *domain.Transaction) []any {
	return []any{
		t.ID, t.Reference, t.AccountID, t.SourceWalletID, t.DestinationWalletID,
		t.Type, t.Amount, t.Fee, t.Currency, t.Status, t.Description,
		t.FailureReason, t.ExternalReference, t.PaymentGateway, t.IPAddress,
		t.OriginalTransactionID, t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.Reference, &t.AccountID, &t.SourceWalletID, &t.DestinationWalletID,
		&t.Type, &t.Amount, &t.Fee, &t.Currency, &t.Status, &t.Description,
		&t.FailureReason, &t.ExternalReference, &t.PaymentGateway, &t.IPAddress,
		&t.OriginalTransactionID, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}
