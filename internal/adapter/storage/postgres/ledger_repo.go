package postgres

import (
	"context"
	"errors"
	"fmt"

	"custodial-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const ledgerColumns = `id, wallet_id, entry_type, amount, balance_before, balance_after,
		transaction_reference, idempotency_key, description, external_reference, ip_address, created_at`

// LedgerRepo implements ports.LedgerRepository. The journal is append-only:
// there are no UPDATE or DELETE statements in this file.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Insert appends a journal entry within the caller's transaction. The unique
// index on idempotency_key absorbs replays: a conflicting insert writes
// nothing and returns false.
func (r *LedgerRepo) Insert(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (bool, error) {
	query := `INSERT INTO ledger_entries (id, wallet_id, entry_type, amount, balance_before, balance_after,
		transaction_reference, idempotency_key, description, external_reference, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (idempotency_key) DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		entry.ID, entry.WalletID, entry.EntryType, entry.Amount,
		entry.BalanceBefore, entry.BalanceAfter,
		entry.TransactionReference, entry.IdempotencyKey,
		entry.Description, entry.ExternalReference, entry.IPAddress,
		entry.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert ledger entry: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByIdempotencyKey fetches the entry previously written under the key.
// Runs in the caller's transaction so a concurrent writer's committed entry
// is visible after its conflict.
func (r *LedgerRepo) GetByIdempotencyKey(ctx context.Context, tx pgx.Tx, key string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE idempotency_key = $1`

	e, err := scanLedgerEntry(tx.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry by idempotency key: %w", err)
	}
	return e, nil
}

// SumByWalletAndType totals entry amounts of one type for a wallet.
func (r *LedgerRepo) SumByWalletAndType(ctx context.Context, walletID uuid.UUID, entryType domain.EntryType) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE wallet_id = $1 AND entry_type = $2`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, walletID, entryType).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum ledger entries: %w", err)
	}
	return total, nil
}

// ListByWallet returns a page of the wallet's entries, newest first.
func (r *LedgerRepo) ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE wallet_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger entry rows: %w", err)
	}
	return entries, nil
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	e := &domain.LedgerEntry{}
	err := row.Scan(
		&e.ID, &e.WalletID, &e.EntryType, &e.Amount,
		&e.BalanceBefore, &e.BalanceAfter,
		&e.TransactionReference, &e.IdempotencyKey,
		&e.Description, &e.ExternalReference, &e.IPAddress,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}
