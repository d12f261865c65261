package service

import (
	"context"
	"fmt"
	"time"

	"custodial-wallet/internal/core/domain"
	"custodial-wallet/internal/core/ports"
	"custodial-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerServiceImpl implements ports.LedgerService.
type LedgerServiceImpl struct {
	ledgerRepo ports.LedgerRepository
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(ledgerRepo ports.LedgerRepository, log zerolog.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		ledgerRepo: ledgerRepo,
		log:        log,
	}
}

// Append writes one journal entry within the caller's transaction.
// BalanceBefore is taken from the locked wallet snapshot, so Append must run
// while the wallet's row lock is held. A duplicate idempotency key returns
// the pre-existing entry with applied=false: the storage unique index makes
// retried legs at-most-once.
func (s *LedgerServiceImpl) Append(ctx context.Context, tx pgx.Tx, req ports.LedgerAppendRequest) (*domain.LedgerEntry, bool, error) {
	if !req.Amount.IsPositive() {
		return nil, false, apperror.ErrInvalidAmount()
	}
	if req.IdempotencyKey == "" {
		return nil, false, apperror.Validation("idempotency key is required")
	}

	balanceBefore := req.Wallet.Balance
	entry := &domain.LedgerEntry{
		ID:                   uuid.New(),
		WalletID:             req.Wallet.ID,
		EntryType:            req.EntryType,
		Amount:               req.Amount,
		BalanceBefore:        balanceBefore,
		BalanceAfter:         domain.NewBalanceAfter(balanceBefore, req.Amount, req.EntryType),
		TransactionReference: req.TransactionReference,
		IdempotencyKey:       req.IdempotencyKey,
		Description:          req.Description,
		ExternalReference:    req.ExternalReference,
		IPAddress:            req.IPAddress,
		CreatedAt:            time.Now().UTC(),
	}

	inserted, err := s.ledgerRepo.Insert(ctx, tx, entry)
	if err != nil {
		return nil, false, apperror.ErrDatabaseError(fmt.Errorf("insert ledger entry: %w", err))
	}
	if !inserted {
		existing, err := s.ledgerRepo.GetByIdempotencyKey(ctx, tx, req.IdempotencyKey)
		if err != nil {
			return nil, false, apperror.ErrDatabaseError(fmt.Errorf("load existing ledger entry: %w", err))
		}
		if existing == nil {
			return nil, false, apperror.InternalError(fmt.Errorf("idempotency key %s conflicted but no entry found", req.IdempotencyKey))
		}
		s.log.Warn().
			Str("idempotency_key", req.IdempotencyKey).
			Str("wallet_id", req.Wallet.ID.String()).
			Msg("duplicate ledger append, returning existing entry")
		return existing, false, nil
	}

	return entry, true, nil
}

// CalculateBalance recomputes the wallet balance from the journal:
// sum(credits) - sum(debits). Used as an audit cross-check against the
// cached wallet balance, which must always match.
func (s *LedgerServiceImpl) CalculateBalance(ctx context.Context, walletID uuid.UUID) (decimal.Decimal, error) {
	credits, err := s.ledgerRepo.SumByWalletAndType(ctx, walletID, domain.EntryTypeCredit)
	if err != nil {
		return decimal.Zero, apperror.ErrDatabaseError(fmt.Errorf("sum credits: %w", err))
	}
	debits, err := s.ledgerRepo.SumByWalletAndType(ctx, walletID, domain.EntryTypeDebit)
	if err != nil {
		return decimal.Zero, apperror.ErrDatabaseError(fmt.Errorf("sum debits: %w", err))
	}
	return credits.Sub(debits), nil
}

// GetWalletLedger returns a page of the wallet's statement, newest first.
func (s *LedgerServiceImpl) GetWalletLedger(ctx context.Context, walletID uuid.UUID, page, pageSize int) ([]domain.LedgerEntry, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	entries, err := s.ledgerRepo.ListByWallet(ctx, walletID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list ledger entries: %w", err))
	}
	return entries, nil
}
