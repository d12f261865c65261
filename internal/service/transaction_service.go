package service

import (
	"bytes"
	"context"
	"errors"
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

// TransactionServiceImpl implements ports.TransactionService. Every money
// movement runs inside one storage transaction: wallet locks, ledger legs,
// balance mutations and the status finalize either all commit or all roll
// back. Events are published strictly after commit.
type TransactionServiceImpl struct {
	txRepo      ports.TransactionRepository
	walletRepo  ports.WalletRepository
	accountRepo ports.AccountRepository
	ledgerSvc   ports.LedgerService
	walletSvc   ports.WalletService
	transactor  ports.DBTransactor
	publisher   ports.EventPublisher
	log         zerolog.Logger
}

// NewTransactionService creates a new TransactionServiceImpl.
func NewTransactionService(
	txRepo ports.TransactionRepository,
	walletRepo ports.WalletRepository,
	accountRepo ports.AccountRepository,
	ledgerSvc ports.LedgerService,
	walletSvc ports.WalletService,
	transactor ports.DBTransactor,
	publisher ports.EventPublisher,
	log zerolog.Logger,
) *TransactionServiceImpl {
	return &TransactionServiceImpl{
		txRepo:      txRepo,
		walletRepo:  walletRepo,
		accountRepo: accountRepo,
		ledgerSvc:   ledgerSvc,
		walletSvc:   walletSvc,
		transactor:  transactor,
		publisher:   publisher,
		log:         log,
	}
}

// Transfer moves amount between two wallets of the same currency as one
// debit and one matching credit referencing the same transaction.
func (s *TransactionServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	destination, err := s.walletRepo.GetByNumber(ctx, req.DestinationWalletNumber)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("resolve destination wallet: %w", err))
	}
	if destination == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	// Tier limits are the cheapest check: evaluated before any lock is taken.
	if err := s.checkTierLimit(ctx, req.AccountID, req.Amount); err != nil {
		return nil, err
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Ascending-id lock order prevents deadlock between two concurrent
	// transfers with swapped source and destination.
	locked, err := s.lockWallets(ctx, dbTx, req.SourceWalletID, destination.ID)
	if err != nil {
		return nil, err
	}
	source, destination := locked[req.SourceWalletID], locked[destination.ID]

	if source.AccountID != req.AccountID {
		return nil, apperror.ErrUnauthorizedWallet()
	}
	if source.Currency != destination.Currency {
		return nil, apperror.ErrCurrencyMismatch()
	}
	if !source.CanTransact() {
		return nil, apperror.ErrWalletFrozen()
	}
	if source.AvailableBalance.LessThan(req.Amount) {
		return nil, apperror.ErrInsufficientBalance()
	}

	now := time.Now().UTC()
	reference := generateReference("TXN")
	idempotencyKey := generateIdempotencyKey(reference)
	txn := &domain.Transaction{
		ID:                  uuid.New(),
		Reference:           reference,
		AccountID:           req.AccountID,
		SourceWalletID:      &source.ID,
		DestinationWalletID: &destination.ID,
		Type:                domain.TransactionTypeTransfer,
		Amount:              req.Amount,
		Fee:                 decimal.Zero,
		Currency:            source.Currency,
		Status:              domain.TransactionStatusProcessing,
		Description:         req.Description,
		IPAddress:           req.IPAddress,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create transaction: %w", err))
	}

	var walletEvents []domain.WalletEvent
	fail := func(cause error) (*domain.Transaction, error) {
		return nil, s.recordFailure(ctx, dbTx, txn, cause)
	}

	// Debit leg on source.
	if _, applied, err := s.ledgerSvc.Append(ctx, dbTx, ports.LedgerAppendRequest{
		Wallet:               source,
		EntryType:            domain.EntryTypeDebit,
		Amount:               req.Amount,
		TransactionReference: reference,
		IdempotencyKey:       idempotencyKey + "_DEBIT",
		Description:          "Transfer to " + destination.WalletNumber,
		IPAddress:            req.IPAddress,
	}); err != nil {
		return fail(err)
	} else if applied {
		events, err := s.walletSvc.ApplyBalanceChange(ctx, dbTx, source, req.Amount, false)
		if err != nil {
			return fail(err)
		}
		walletEvents = append(walletEvents, events...)
	}

	// Credit leg on destination.
	if _, applied, err := s.ledgerSvc.Append(ctx, dbTx, ports.LedgerAppendRequest{
		Wallet:               destination,
		EntryType:            domain.EntryTypeCredit,
		Amount:               req.Amount,
		TransactionReference: reference,
		IdempotencyKey:       idempotencyKey + "_CREDIT",
		Description:          "Transfer from " + source.WalletNumber,
		IPAddress:            req.IPAddress,
	}); err != nil {
		return fail(err)
	} else if applied {
		events, err := s.walletSvc.ApplyBalanceChange(ctx, dbTx, destination, req.Amount, true)
		if err != nil {
			return fail(err)
		}
		walletEvents = append(walletEvents, events...)
	}

	completed := time.Now().UTC()
	if err := s.txRepo.UpdateStatus(ctx, dbTx, txn.ID, domain.TransactionStatusSuccess, &completed); err != nil {
		return fail(err)
	}
	txn.Status = domain.TransactionStatusSuccess
	txn.CompletedAt = &completed

	if err := dbTx.Commit(ctx); err != nil {
		return nil, s.recordFailure(ctx, dbTx, txn, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err)))
	}

	s.log.Info().
		Str("reference", reference).
		Str("source", source.WalletNumber).
		Str("destination", destination.WalletNumber).
		Str("amount", req.Amount.String()).
		Msg("transfer completed")

	s.publishWalletEvents(ctx, walletEvents)
	s.publishTransactionEvent(ctx, txn, req.AccountID, domain.TransactionEventCompleted, txn.Description)
	s.publishTransactionEvent(ctx, txn, destination.AccountID, domain.TransactionEventReceived,
		fmt.Sprintf("You received %s %s from %s", req.Amount.String(), txn.Currency, source.WalletNumber))

	return txn, nil
}

// Deposit credits a wallet from an external payment gateway.
func (s *TransactionServiceImpl) Deposit(ctx context.Context, req ports.DepositRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	wallet, err := s.walletRepo.GetByID(ctx, req.WalletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if err := s.checkTierLimit(ctx, wallet.AccountID, req.Amount); err != nil {
		return nil, err
	}

	description := "Deposit via " + req.Gateway
	return s.singleLeg(ctx, singleLegRequest{
		walletID:          req.WalletID,
		amount:            req.Amount,
		entryType:         domain.EntryTypeCredit,
		txType:            domain.TransactionTypeDeposit,
		referencePrefix:   "DEP",
		description:       description,
		externalReference: &req.ExternalReference,
		gateway:           &req.Gateway,
		ipAddress:         req.IPAddress,
	})
}

// Withdraw debits a wallet toward an external destination.
func (s *TransactionServiceImpl) Withdraw(ctx context.Context, req ports.WithdrawRequest) (*domain.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	wallet, err := s.walletRepo.GetByID(ctx, req.WalletID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if wallet.AccountID != req.AccountID {
		return nil, apperror.ErrUnauthorizedWallet()
	}
	if err := s.checkTierLimit(ctx, wallet.AccountID, req.Amount); err != nil {
		return nil, err
	}

	return s.singleLeg(ctx, singleLegRequest{
		walletID:        req.WalletID,
		amount:          req.Amount,
		entryType:       domain.EntryTypeDebit,
		txType:          domain.TransactionTypeWithdrawal,
		referencePrefix: "WTH",
		description:     "Withdrawal to " + req.Destination,
		ipAddress:       req.IPAddress,
	})
}

type singleLegRequest struct {
	walletID          uuid.UUID
	amount            decimal.Decimal
	entryType         domain.EntryType
	txType            domain.TransactionType
	referencePrefix   string
	description       string
	externalReference *string
	gateway           *string
	ipAddress         string
}

// singleLeg runs a one-wallet movement (deposit or withdrawal): lock, write
// the single ledger leg, mutate the balance, finalize, commit.
func (s *TransactionServiceImpl) singleLeg(ctx context.Context, req singleLegRequest) (*domain.Transaction, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, req.walletID)
	if err != nil {
		return nil, apperror.ErrLockTimeout(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}
	if !wallet.CanTransact() {
		return nil, apperror.ErrWalletFrozen()
	}
	credit := req.entryType == domain.EntryTypeCredit
	if !credit && wallet.AvailableBalance.LessThan(req.amount) {
		return nil, apperror.ErrInsufficientBalance()
	}

	now := time.Now().UTC()
	reference := generateReference(req.referencePrefix)
	txn := &domain.Transaction{
		ID:                uuid.New(),
		Reference:         reference,
		AccountID:         wallet.AccountID,
		Type:              req.txType,
		Amount:            req.amount,
		Fee:               decimal.Zero,
		Currency:          wallet.Currency,
		Status:            domain.TransactionStatusProcessing,
		Description:       req.description,
		ExternalReference: req.externalReference,
		PaymentGateway:    req.gateway,
		IPAddress:         req.ipAddress,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if credit {
		txn.DestinationWalletID = &wallet.ID
	} else {
		txn.SourceWalletID = &wallet.ID
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create transaction: %w", err))
	}

	var walletEvents []domain.WalletEvent
	if _, applied, err := s.ledgerSvc.Append(ctx, dbTx, ports.LedgerAppendRequest{
		Wallet:               wallet,
		EntryType:            req.entryType,
		Amount:               req.amount,
		TransactionReference: reference,
		IdempotencyKey:       generateIdempotencyKey(reference),
		Description:          req.description,
		ExternalReference:    req.externalReference,
		IPAddress:            req.ipAddress,
	}); err != nil {
		return nil, s.recordFailure(ctx, dbTx, txn, err)
	} else if applied {
		events, err := s.walletSvc.ApplyBalanceChange(ctx, dbTx, wallet, req.amount, credit)
		if err != nil {
			return nil, s.recordFailure(ctx, dbTx, txn, err)
		}
		walletEvents = append(walletEvents, events...)
	}

	completed := time.Now().UTC()
	if err := s.txRepo.UpdateStatus(ctx, dbTx, txn.ID, domain.TransactionStatusSuccess, &completed); err != nil {
		return nil, s.recordFailure(ctx, dbTx, txn, err)
	}
	txn.Status = domain.TransactionStatusSuccess
	txn.CompletedAt = &completed

	if err := dbTx.Commit(ctx); err != nil {
		return nil, s.recordFailure(ctx, dbTx, txn, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err)))
	}

	s.log.Info().
		Str("reference", reference).
		Str("wallet_number", wallet.WalletNumber).
		Str("type", string(req.txType)).
		Str("amount", req.amount.String()).
		Msg("transaction completed")

	s.publishWalletEvents(ctx, walletEvents)
	s.publishTransactionEvent(ctx, txn, wallet.AccountID, domain.TransactionEventCompleted, txn.Description)

	return txn, nil
}

// Reverse compensates a successful transaction: it posts inverse ledger
// entries, restores the involved wallet balances and marks the original
// REVERSED, all in one storage transaction. Flipping only the status flag
// would leave the wallets out of sync with their journals.
func (s *TransactionServiceImpl) Reverse(ctx context.Context, req ports.ReverseRequest) (*domain.Transaction, error) {
	original, err := s.txRepo.GetByReference(ctx, req.Reference)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("find original transaction: %w", err))
	}
	if original == nil {
		return nil, apperror.ErrTransactionNotFound()
	}
	if !original.IsReversible() {
		return nil, apperror.ErrNotReversible()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	var walletIDs []uuid.UUID
	if original.SourceWalletID != nil {
		walletIDs = append(walletIDs, *original.SourceWalletID)
	}
	if original.DestinationWalletID != nil {
		walletIDs = append(walletIDs, *original.DestinationWalletID)
	}
	locked, err := s.lockWallets(ctx, dbTx, walletIDs...)
	if err != nil {
		return nil, err
	}

	// The reversibility read above ran before the locks. The guarded flip is
	// what actually claims the original: a concurrent reversal that committed
	// first leaves nothing to flip, and no compensation is posted here.
	claimed, err := s.txRepo.MarkReversed(ctx, dbTx, original.ID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("mark original reversed: %w", err))
	}
	if !claimed {
		return nil, apperror.ErrNotReversible()
	}

	now := time.Now().UTC()
	reference := generateReference("REV")
	idempotencyKey := generateIdempotencyKey(reference)
	reversal := &domain.Transaction{
		ID:                    uuid.New(),
		Reference:             reference,
		AccountID:             original.AccountID,
		Type:                  domain.TransactionTypeReversal,
		Amount:                original.Amount,
		Fee:                   decimal.Zero,
		Currency:              original.Currency,
		Status:                domain.TransactionStatusProcessing,
		Description:           fmt.Sprintf("Reversal of %s: %s", original.Reference, req.Reason),
		OriginalTransactionID: &original.ID,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	// Money flows back: out of the originally credited wallet, into the
	// originally debited one.
	reversal.SourceWalletID = original.DestinationWalletID
	reversal.DestinationWalletID = original.SourceWalletID
	if err := s.txRepo.Create(ctx, dbTx, reversal); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create reversal transaction: %w", err))
	}

	var walletEvents []domain.WalletEvent

	// Pull the amount back out of the wallet the original credited.
	if original.DestinationWalletID != nil {
		wallet := locked[*original.DestinationWalletID]
		if _, applied, err := s.ledgerSvc.Append(ctx, dbTx, ports.LedgerAppendRequest{
			Wallet:               wallet,
			EntryType:            domain.EntryTypeDebit,
			Amount:               original.Amount,
			TransactionReference: reference,
			IdempotencyKey:       idempotencyKey + "_DEBIT",
			Description:          "Reversal of " + original.Reference,
		}); err != nil {
			return nil, s.recordFailure(ctx, dbTx, reversal, err)
		} else if applied {
			events, err := s.walletSvc.ApplyBalanceChange(ctx, dbTx, wallet, original.Amount, false)
			if err != nil {
				return nil, s.recordFailure(ctx, dbTx, reversal, err)
			}
			walletEvents = append(walletEvents, events...)
		}
	}

	// Restore the wallet the original debited.
	if original.SourceWalletID != nil {
		wallet := locked[*original.SourceWalletID]
		if _, applied, err := s.ledgerSvc.Append(ctx, dbTx, ports.LedgerAppendRequest{
			Wallet:               wallet,
			EntryType:            domain.EntryTypeCredit,
			Amount:               original.Amount,
			TransactionReference: reference,
			IdempotencyKey:       idempotencyKey + "_CREDIT",
			Description:          "Reversal of " + original.Reference,
		}); err != nil {
			return nil, s.recordFailure(ctx, dbTx, reversal, err)
		} else if applied {
			events, err := s.walletSvc.ApplyBalanceChange(ctx, dbTx, wallet, original.Amount, true)
			if err != nil {
				return nil, s.recordFailure(ctx, dbTx, reversal, err)
			}
			walletEvents = append(walletEvents, events...)
		}
	}

	completed := time.Now().UTC()
	if err := s.txRepo.UpdateStatus(ctx, dbTx, reversal.ID, domain.TransactionStatusSuccess, &completed); err != nil {
		return nil, s.recordFailure(ctx, dbTx, reversal, err)
	}
	reversal.Status = domain.TransactionStatusSuccess
	reversal.CompletedAt = &completed

	if err := dbTx.Commit(ctx); err != nil {
		return nil, s.recordFailure(ctx, dbTx, reversal, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err)))
	}

	s.log.Info().
		Str("reference", reference).
		Str("original_reference", original.Reference).
		Str("admin_id", req.AdminID.String()).
		Msg("transaction reversed")

	s.publishWalletEvents(ctx, walletEvents)
	s.publishTransactionEvent(ctx, reversal, original.AccountID, domain.TransactionEventReversed,
		"Transaction "+original.Reference+" was reversed")

	return reversal, nil
}

// GetByReference fetches a transaction by its human-readable reference.
func (s *TransactionServiceImpl) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound()
	}
	return txn, nil
}

// ListAccountTransactions returns a page of the account's transaction history.
func (s *TransactionServiceImpl) ListAccountTransactions(ctx context.Context, accountID uuid.UUID, page, pageSize int) ([]domain.Transaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	items, total, err := s.txRepo.ListByAccount(ctx, accountID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, apperror.ErrDatabaseError(fmt.Errorf("list transactions: %w", err))
	}
	return items, total, nil
}

// checkTierLimit enforces the account's KYC tier caps. Runs before locks so
// over-limit requests are rejected without touching any wallet row.
func (s *TransactionServiceImpl) checkTierLimit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) error {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("load account: %w", err))
	}
	if account == nil {
		return apperror.ErrAccountNotFound()
	}

	tier := account.Tier()
	if tier.Unlimited {
		return nil
	}
	spent, err := s.walletSvc.DailySpent(ctx, accountID)
	if err != nil {
		return err
	}
	switch err := tier.CheckLimit(amount, spent); {
	case errors.Is(err, domain.ErrPerTransactionLimitExceeded):
		return apperror.ErrPerTransactionLimit(tier.Name)
	case errors.Is(err, domain.ErrDailyLimitExceeded):
		return apperror.ErrDailyLimit(tier.Name)
	default:
		return err
	}
}

// lockWallets acquires FOR UPDATE locks in ascending wallet-id order and
// returns the locked snapshots keyed by id.
func (s *TransactionServiceImpl) lockWallets(ctx context.Context, dbTx pgx.Tx, ids ...uuid.UUID) (map[uuid.UUID]*domain.Wallet, error) {
	ordered := make([]uuid.UUID, len(ids))
	copy(ordered, ids)
	for i := range ordered {
		for j := i + 1; j < len(ordered); j++ {
			if bytes.Compare(ordered[j][:], ordered[i][:]) < 0 {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	locked := make(map[uuid.UUID]*domain.Wallet, len(ordered))
	for _, id := range ordered {
		if _, ok := locked[id]; ok {
			continue
		}
		w, err := s.walletRepo.GetByIDForUpdate(ctx, dbTx, id)
		if err != nil {
			return nil, apperror.ErrLockTimeout(fmt.Errorf("lock wallet %s: %w", id, err))
		}
		if w == nil {
			return nil, apperror.ErrWalletNotFound()
		}
		locked[id] = w
	}
	return locked, nil
}

// recordFailure rolls the money movement back, persists the FAILED audit
// record and surfaces the cause. The record must be written after the
// rollback: the aborted transaction still holds the unique reference index
// claim until then. Best-effort: losing the record must not mask the error.
func (s *TransactionServiceImpl) recordFailure(ctx context.Context, dbTx pgx.Tx, txn *domain.Transaction, cause error) error {
	_ = dbTx.Rollback(ctx)

	reason := cause.Error()
	failed := *txn
	failed.Status = domain.TransactionStatusFailed
	failed.FailureReason = &reason
	failed.UpdatedAt = time.Now().UTC()

	if err := s.txRepo.CreateStandalone(ctx, &failed); err != nil {
		s.log.Error().Err(err).
			Str("reference", txn.Reference).
			Msg("failed to persist FAILED transaction record")
	}

	s.log.Error().Err(cause).
		Str("reference", txn.Reference).
		Str("type", string(txn.Type)).
		Msg("transaction failed")

	s.publishTransactionEvent(ctx, &failed, txn.AccountID, domain.TransactionEventFailed,
		string(txn.Type)+" failed: "+reason)

	return cause
}

func (s *TransactionServiceImpl) publishTransactionEvent(ctx context.Context, txn *domain.Transaction, accountID uuid.UUID, eventType, description string) {
	event := domain.TransactionEvent{
		EventType:           eventType,
		TransactionID:       txn.ID,
		Reference:           txn.Reference,
		SourceWalletID:      txn.SourceWalletID,
		DestinationWalletID: txn.DestinationWalletID,
		AccountID:           accountID,
		Type:                txn.Type,
		Status:              txn.Status,
		Amount:              txn.Amount,
		Currency:            txn.Currency,
		Description:         description,
		IPAddress:           txn.IPAddress,
		Timestamp:           time.Now().UTC(),
	}
	if err := s.publisher.PublishTransactionEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).
			Str("reference", txn.Reference).
			Str("event_type", eventType).
			Msg("failed to publish transaction event")
	}
}

func (s *TransactionServiceImpl) publishWalletEvents(ctx context.Context, events []domain.WalletEvent) {
	for _, event := range events {
		if err := s.publisher.PublishWalletEvent(ctx, event); err != nil {
			s.log.Warn().Err(err).
				Str("wallet_id", event.WalletID.String()).
				Str("action", event.Action).
				Msg("failed to publish wallet event")
		}
	}
}

func generateReference(prefix string) string {
	return fmt.Sprintf("%s%d%06d", prefix, time.Now().UnixMilli(), rand.Intn(1_000_000))
}

func generateIdempotencyKey(reference string) string {
	return reference + "_" + uuid.NewString()
}
