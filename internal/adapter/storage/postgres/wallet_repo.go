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

const walletColumns = `id, account_id, wallet_number, currency, balance, available_balance, status, pin_hash, created_at, updated_at`

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Create inserts a new wallet into the database.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (id, account_id, wallet_number, currency, balance, available_balance, status, pin_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.AccountID, w.WalletNumber, w.Currency,
		w.Balance, w.AvailableBalance, w.Status, w.PinHash,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wallet: %w", err)
	}
	return nil
}

// GetByID fetches a wallet by its UUID (without locking).
func (r *WalletRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by id: %w", err)
	}
	return w, nil
}

// GetByNumber fetches a wallet by its public wallet number (non-locking read).
func (r *WalletRepo) GetByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE wallet_number = $1`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, walletNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by number: %w", err)
	}
	return w, nil
}

// GetByAccountID lists every wallet owned by the account.
func (r *WalletRepo) GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE account_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list wallets by account: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		wallets = append(wallets, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}
	return wallets, nil
}

// GetByAccountAndCurrency fetches the account's wallet in the given currency
// (non-locking read).
func (r *WalletRepo) GetByAccountAndCurrency(ctx context.Context, accountID uuid.UUID, currency string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE account_id = $1 AND currency = $2`

	w, err := scanWallet(r.pool.QueryRow(ctx, query, accountID, currency))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by account and currency: %w", err)
	}
	return w, nil
}

// GetByIDForUpdate fetches a wallet with pessimistic locking.
// This MUST be called within a transaction.
func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`

	w, err := scanWallet(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return w, nil
}

// UpdateBalance persists both balance fields within the caller's transaction.
// The caller must hold the wallet's row lock.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, availableBalance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1, available_balance = $2, updated_at = $3 WHERE id = $4`

	tag, err := tx.Exec(ctx, query, balance, availableBalance, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("update wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update wallet balance: wallet %s not found", walletID)
	}
	return nil
}

// UpdateStatus changes the wallet lifecycle status.
func (r *WalletRepo) UpdateStatus(ctx context.Context, walletID uuid.UUID, status domain.WalletStatus) error {
	query := `UPDATE wallets SET status = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("update wallet status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update wallet status: wallet %s not found", walletID)
	}
	return nil
}

// UpdatePinHash stores the wallet's transaction PIN hash.
func (r *WalletRepo) UpdatePinHash(ctx context.Context, walletID uuid.UUID, pinHash string) error {
	query := `UPDATE wallets SET pin_hash = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, pinHash, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("update wallet pin hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update wallet pin hash: wallet %s not found", walletID)
	}
	return nil
}

// ExistsByNumber reports whether a wallet number is already taken.
func (r *WalletRepo) ExistsByNumber(ctx context.Context, walletNumber string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM wallets WHERE wallet_number = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, walletNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check wallet number exists: %w", err)
	}
	return exists, nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	w := &domain.Wallet{}
	err := row.Scan(
		&w.ID, &w.AccountID, &w.WalletNumber, &w.Currency,
		&w.Balance, &w.AvailableBalance, &w.Status, &w.PinHash,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}
