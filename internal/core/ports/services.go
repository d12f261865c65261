package ports

import (
	"context"
	"time"

	"custodial-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerAppendRequest holds one posting leg. Wallet must be the locked
// snapshot from the surrounding transaction: BalanceBefore is read from it.
type LedgerAppendRequest struct {
	Wallet               *domain.Wallet
	EntryType            domain.EntryType
	Amount               decimal.Decimal
	TransactionReference string
	IdempotencyKey       string
	Description          string
	ExternalReference    *string
	IPAddress            string
}

// LedgerService is the append-only journal contract.
type LedgerService interface {
	// Append writes one entry within the caller's transaction. applied is
	// false when the idempotency key was already present; the pre-existing
	// entry is returned unchanged and the caller must treat the leg as
	// already applied (no balance mutation).
	Append(ctx context.Context, tx pgx.Tx, req LedgerAppendRequest) (entry *domain.LedgerEntry, applied bool, err error)
	// CalculateBalance recomputes sum(credits) - sum(debits) from the
	// journal, as an audit cross-check against the cached wallet balance.
	CalculateBalance(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error)
	GetWalletLedger(ctx context.Context, walletID uuid.UUID, page, pageSize int) ([]domain.LedgerEntry, error)
}

// WalletService manages wallet lifecycle and the locked balance mutation.
type WalletService interface {
	CreateWallet(ctx context.Context, accountID uuid.UUID, currency string) (*domain.Wallet, error)
	GetAccountWallets(ctx context.Context, accountID uuid.UUID) ([]domain.Wallet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error)
	GetByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error)
	// ApplyBalanceChange mutates the locked wallet snapshot and persists both
	// balance fields within tx. A debit requires sufficient available
	// balance. Returned events must be published only after commit.
	ApplyBalanceChange(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet, amount decimal.Decimal, credit bool) ([]domain.WalletEvent, error)
	Freeze(ctx context.Context, walletID uuid.UUID) error
	Unfreeze(ctx context.Context, walletID uuid.UUID) error
	// DailySpent sums the account's SUCCESS transactions since local midnight.
	DailySpent(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
	SetPin(ctx context.Context, walletID, accountID uuid.UUID, pin string) error
	VerifyPin(ctx context.Context, walletID uuid.UUID, pin string) (bool, error)
}

// TransferRequest holds validated input for a wallet-to-wallet transfer.
type TransferRequest struct {
	AccountID               uuid.UUID
	SourceWalletID          uuid.UUID
	DestinationWalletNumber string
	Amount                  decimal.Decimal
	Description             string
	IPAddress               string
}

// DepositRequest holds input for crediting a wallet from an external gateway.
type DepositRequest struct {
	WalletID          uuid.UUID
	Amount            decimal.Decimal
	ExternalReference string
	Gateway           string
	IPAddress         string
}

// WithdrawRequest holds input for debiting a wallet to an external destination.
type WithdrawRequest struct {
	AccountID   uuid.UUID
	WalletID    uuid.UUID
	Amount      decimal.Decimal
	Destination string
	IPAddress   string
}

// ReverseRequest holds input for an admin-initiated reversal.
type ReverseRequest struct {
	Reference string
	AdminID   uuid.UUID
	Reason    string
}

// TransactionService orchestrates money movements.
type TransactionService interface {
	Transfer(ctx context.Context, req TransferRequest) (*domain.Transaction, error)
	Deposit(ctx context.Context, req DepositRequest) (*domain.Transaction, error)
	Withdraw(ctx context.Context, req WithdrawRequest) (*domain.Transaction, error)
	Reverse(ctx context.Context, req ReverseRequest) (*domain.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	ListAccountTransactions(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]domain.Transaction, int64, error)
}

// EventPublisher is the fire-and-forget event sink. Publish failures are
// logged by callers and never fail the committed money movement.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, event domain.TransactionEvent) error
	PublishWalletEvent(ctx context.Context, event domain.WalletEvent) error
	Close() error
}

// TokenService handles JWT token operations for the thin API surface.
type TokenService interface {
	Generate(accountID uuid.UUID, role string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	AccountID uuid.UUID
	Role      string
}

// HashService handles wallet PIN hashing (Argon2id).
type HashService interface {
	Hash(pin string) (string, error)
	Verify(pin string, hash string) (bool, error)
}
