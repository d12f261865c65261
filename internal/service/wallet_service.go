package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"custodial-wallet/internal/core/domain"
	"custodial-wallet/internal/core/ports"
	"custodial-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo  ports.WalletRepository
	txRepo      ports.TransactionRepository
	accountRepo ports.AccountRepository
	hashSvc     ports.HashService
	publisher   ports.EventPublisher
	lowBalance  decimal.Decimal
	log         zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl. lowBalanceThreshold
// triggers the advisory LOW_BALANCE event when a debit drops the available
// balance below it.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	accountRepo ports.AccountRepository,
	hashSvc ports.HashService,
	publisher ports.EventPublisher,
	lowBalanceThreshold decimal.Decimal,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo:  walletRepo,
		txRepo:      txRepo,
		accountRepo: accountRepo,
		hashSvc:     hashSvc,
		publisher:   publisher,
		lowBalance:  lowBalanceThreshold,
		log:         log,
	}
}

// CreateWallet creates the single wallet for (account, currency).
func (s *WalletServiceImpl) CreateWallet(ctx context.Context, accountID uuid.UUID, currency string) (*domain.Wallet, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return nil, apperror.ErrAccountNotFound()
	}

	existing, err := s.walletRepo.GetByAccountAndCurrency(ctx, accountID, currency)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("check existing wallet: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrWalletExists(currency)
	}

	number, err := s.generateWalletNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	wallet := &domain.Wallet{
		ID:               uuid.New(),
		AccountID:        accountID,
		WalletNumber:     number,
		Currency:         currency,
		Balance:          decimal.Zero,
		AvailableBalance: decimal.Zero,
		Status:           domain.WalletStatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create wallet: %w", err))
	}

	s.log.Info().
		Str("wallet_number", wallet.WalletNumber).
		Str("account_id", accountID.String()).
		Str("currency", currency).
		Msg("wallet created")

	s.publish(ctx, domain.WalletEvent{
		Action:     domain.WalletEventCreated,
		WalletID:   wallet.ID,
		AccountID:  accountID,
		Currency:   currency,
		NewBalance: wallet.Balance,
		Timestamp:  now,
	})

	return wallet, nil
}

// GetAccountWallets lists the account's wallets.
func (s *WalletServiceImpl) GetAccountWallets(ctx context.Context, accountID uuid.UUID) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, nil
}

// GetByID fetches a wallet without locking.
func (s *WalletServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// GetByNumber resolves a human-readable wallet number.
func (s *WalletServiceImpl) GetByNumber(ctx context.Context, walletNumber string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByNumber(ctx, walletNumber)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet by number: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	return wallet, nil
}

// ApplyBalanceChange mutates the locked wallet snapshot and persists both
// balance fields within tx. The wallet pointer must come from
// GetByIDForUpdate in the same transaction; reading a fresh unlocked copy
// here would reintroduce lost updates. Events are returned for post-commit
// publication, never published while locks are held.
func (s *WalletServiceImpl) ApplyBalanceChange(ctx context.Context, tx pgx.Tx, wallet *domain.Wallet, amount decimal.Decimal, credit bool) ([]domain.WalletEvent, error) {
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	oldBalance := wallet.AvailableBalance
	if credit {
		wallet.Credit(amount)
	} else {
		if wallet.AvailableBalance.LessThan(amount) {
			return nil, apperror.ErrInsufficientBalance()
		}
		wallet.Debit(amount)
	}

	if err := s.walletRepo.UpdateBalance(ctx, tx, wallet.ID, wallet.Balance, wallet.AvailableBalance); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update balance: %w", err))
	}

	now := time.Now().UTC()
	events := []domain.WalletEvent{{
		Action:     domain.WalletEventBalanceUpdated,
		WalletID:   wallet.ID,
		AccountID:  wallet.AccountID,
		Currency:   wallet.Currency,
		OldBalance: &oldBalance,
		NewBalance: wallet.AvailableBalance,
		Timestamp:  now,
	}}
	if wallet.AvailableBalance.LessThan(s.lowBalance) {
		events = append(events, domain.WalletEvent{
			Action:     domain.WalletEventLowBalance,
			WalletID:   wallet.ID,
			AccountID:  wallet.AccountID,
			Currency:   wallet.Currency,
			NewBalance: wallet.AvailableBalance,
			Timestamp:  now,
		})
	}
	return events, nil
}

// Freeze transitions the wallet to FROZEN.
func (s *WalletServiceImpl) Freeze(ctx context.Context, walletID uuid.UUID) error {
	return s.setStatus(ctx, walletID, domain.WalletStatusFrozen, domain.WalletEventFrozen)
}

// Unfreeze transitions the wallet back to ACTIVE.
func (s *WalletServiceImpl) Unfreeze(ctx context.Context, walletID uuid.UUID) error {
	return s.setStatus(ctx, walletID, domain.WalletStatusActive, domain.WalletEventUnfrozen)
}

func (s *WalletServiceImpl) setStatus(ctx context.Context, walletID uuid.UUID, status domain.WalletStatus, action string) error {
	wallet, err := s.GetByID(ctx, walletID)
	if err != nil {
		return err
	}
	if wallet.Status == domain.WalletStatusClosed {
		return apperror.ErrInvalidWalletState("wallet is closed")
	}
	if err := s.walletRepo.UpdateStatus(ctx, walletID, status); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update wallet status: %w", err))
	}

	s.log.Info().
		Str("wallet_number", wallet.WalletNumber).
		Str("status", string(status)).
		Msg("wallet status changed")

	s.publish(ctx, domain.WalletEvent{
		Action:     action,
		WalletID:   wallet.ID,
		AccountID:  wallet.AccountID,
		Currency:   wallet.Currency,
		NewBalance: wallet.AvailableBalance,
		Timestamp:  time.Now().UTC(),
	})
	return nil
}

// DailySpent sums the account's SUCCESS transactions since local midnight.
// Wall-clock day boundary, not a rolling 24h window.
func (s *WalletServiceImpl) DailySpent(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	total, err := s.txRepo.SumSuccessfulByAccount(ctx, accountID, startOfDay, startOfDay.Add(24*time.Hour))
	if err != nil {
		return decimal.Zero, apperror.ErrDatabaseError(fmt.Errorf("sum daily transactions: %w", err))
	}
	return total, nil
}

// SetPin hashes and stores the wallet's transaction PIN.
func (s *WalletServiceImpl) SetPin(ctx context.Context, walletID, accountID uuid.UUID, pin string) error {
	wallet, err := s.GetByID(ctx, walletID)
	if err != nil {
		return err
	}
	if wallet.AccountID != accountID {
		return apperror.ErrUnauthorizedWallet()
	}
	hash, err := s.hashSvc.Hash(pin)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("hash pin: %w", err))
	}
	if err := s.walletRepo.UpdatePinHash(ctx, walletID, hash); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("store pin hash: %w", err))
	}
	return nil
}

// VerifyPin checks a PIN against the stored hash.
func (s *WalletServiceImpl) VerifyPin(ctx context.Context, walletID uuid.UUID, pin string) (bool, error) {
	wallet, err := s.GetByID(ctx, walletID)
	if err != nil {
		return false, err
	}
	if wallet.PinHash == nil {
		return false, nil
	}
	ok, err := s.hashSvc.Verify(pin, *wallet.PinHash)
	if err != nil {
		return false, apperror.InternalError(fmt.Errorf("verify pin: %w", err))
	}
	return ok, nil
}

func (s *WalletServiceImpl) generateWalletNumber(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		number := fmt.Sprintf("WLT%010d", rand.Int63n(10_000_000_000))
		exists, err := s.walletRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", apperror.ErrDatabaseError(fmt.Errorf("check wallet number: %w", err))
		}
		if !exists {
			return number, nil
		}
	}
	return "", apperror.InternalError(fmt.Errorf("could not allocate a unique wallet number"))
}

func (s *WalletServiceImpl) publish(ctx context.Context, event domain.WalletEvent) {
	if err := s.publisher.PublishWalletEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).
			Str("wallet_id", event.WalletID.String()).
			Str("action", event.Action).
			Msg("failed to publish wallet event")
	}
}
