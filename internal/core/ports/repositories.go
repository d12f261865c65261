package ports

import (
	"context"
	"time"

	"custodial-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside a storage transaction and rely on
// row-level pessimistic locking.
type WalletRepository interface {
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error)
	GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]domain.Wallet, error)
	GetByAccountAndCurrency(ctx context.Context, accountID uuid.UUID, currency string) (*domain.Wallet, error)
	// GetByIDForUpdate acquires the wallet's exclusive row lock (SELECT ... FOR
	// UPDATE). MUST be called within a transaction; the returned snapshot is
	// the one all subsequent writes in that transaction must be derived from.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance, availableBalance decimal.Decimal) error
	UpdateStatus(ctx context.Context, walletID uuid.UUID, status domain.WalletStatus) error
	UpdatePinHash(ctx context.Context, walletID uuid.UUID, pinHash string) error
	ExistsByNumber(ctx context.Context, walletNumber string) (bool, error)
}

// LedgerRepository defines persistence for the append-only journal.
type LedgerRepository interface {
	// Insert appends an entry. Returns false when an entry with the same
	// idempotency key already exists (nothing written).
	Insert(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (bool, error)
	GetByIdempotencyKey(ctx context.Context, tx pgx.Tx, key string) (*domain.LedgerEntry, error)
	SumByWalletAndType(ctx context.Context, walletID uuid.UUID, entryType domain.EntryType) (decimal.Decimal, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]domain.LedgerEntry, error)
}

// TransactionRepository defines persistence operations for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	// CreateStandalone writes outside any caller transaction. Used for the
	// best-effort FAILED audit record after the money movement rolled back.
	CreateStandalone(ctx context.Context, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.TransactionStatus, completedAt *time.Time) error
	// MarkReversed flips the transaction to REVERSED only while it is still
	// SUCCESS, reporting whether this caller won the flip. Must run inside
	// the compensation's database transaction; completed_at is left at the
	// original completion timestamp.
	MarkReversed(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)
	// SumSuccessfulByAccount totals SUCCESS transactions initiated by the
	// account within [from, to). Backs the daily tier limit.
	SumSuccessfulByAccount(ctx context.Context, accountID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error)
}

// AccountRepository is the read-only view of the account/KYC provider.
type AccountRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
