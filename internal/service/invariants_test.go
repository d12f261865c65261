package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"custodial-wallet/internal/core/domain"
	"custodial-wallet/internal/core/ports"
	"custodial-wallet/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory backing store for exercising the real service
// stack end to end. A store-wide mutex held for the duration of each
// transaction stands in for Postgres row locks: coarser, but it preserves the
// serialization the services rely on. Rollback restores a snapshot taken at
// Begin.
type memStore struct {
	mu       sync.Mutex
	wallets  map[uuid.UUID]domain.Wallet
	accounts map[uuid.UUID]domain.Account
	entries  []domain.LedgerEntry
	txns     map[uuid.UUID]domain.Transaction
	byRef    map[string]uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		wallets:  make(map[uuid.UUID]domain.Wallet),
		accounts: make(map[uuid.UUID]domain.Account),
		txns:     make(map[uuid.UUID]domain.Transaction),
		byRef:    make(map[string]uuid.UUID),
	}
}

type memSnapshot struct {
	wallets map[uuid.UUID]domain.Wallet
	entries []domain.LedgerEntry
	txns    map[uuid.UUID]domain.Transaction
	byRef   map[string]uuid.UUID
}

func (s *memStore) snapshot() *memSnapshot {
	snap := &memSnapshot{
		wallets: make(map[uuid.UUID]domain.Wallet, len(s.wallets)),
		entries: append([]domain.LedgerEntry(nil), s.entries...),
		txns:    make(map[uuid.UUID]domain.Transaction, len(s.txns)),
		byRef:   make(map[string]uuid.UUID, len(s.byRef)),
	}
	for k, v := range s.wallets {
		snap.wallets[k] = v
	}
	for k, v := range s.txns {
		snap.txns[k] = v
	}
	for k, v := range s.byRef {
		snap.byRef[k] = v
	}
	return snap
}

func (s *memStore) restore(snap *memSnapshot) {
	s.wallets = snap.wallets
	s.entries = snap.entries
	s.txns = snap.txns
	s.byRef = snap.byRef
}

// memTx implements just enough of pgx.Tx: Commit releases the store lock,
// Rollback restores the Begin-time snapshot first.
type memTx struct {
	pgx.Tx
	store *memStore
	snap  *memSnapshot
	done  bool
}

func (t *memTx) Commit(_ context.Context) error {
	t.finish(true)
	return nil
}

func (t *memTx) Rollback(_ context.Context) error {
	t.finish(false)
	return nil
}

func (t *memTx) finish(commit bool) {
	if t.done {
		return
	}
	t.done = true
	if !commit {
		t.store.restore(t.snap)
	}
	t.store.mu.Unlock()
}

type memTransactor struct{ s *memStore }

func (m *memTransactor) Begin(_ context.Context) (pgx.Tx, error) {
	m.s.mu.Lock()
	return &memTx{store: m.s, snap: m.s.snapshot()}, nil
}

// Repository fakes. Methods taking a pgx.Tx run with the store lock already
// held by the surrounding transaction; the rest lock on their own.

type memWalletRepo struct{ s *memStore }

func (r *memWalletRepo) Create(_ context.Context, w *domain.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.wallets[w.ID] = *w
	return nil
}

func (r *memWalletRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.wallets[id]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}

func (r *memWalletRepo) GetByNumber(_ context.Context, number string) (*domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.wallets {
		if w.WalletNumber == number {
			cp := w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWalletRepo) GetByAccountID(_ context.Context, accountID uuid.UUID) ([]domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Wallet
	for _, w := range r.s.wallets {
		if w.AccountID == accountID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memWalletRepo) GetByAccountAndCurrency(_ context.Context, accountID uuid.UUID, currency string) (*domain.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.wallets {
		if w.AccountID == accountID && w.Currency == currency {
			cp := w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWalletRepo) GetByIDForUpdate(_ context.Context, _ pgx.Tx, id uuid.UUID) (*domain.Wallet, error) {
	if w, ok := r.s.wallets[id]; ok {
		cp := w
		return &cp, nil
	}
	return nil, nil
}

func (r *memWalletRepo) UpdateBalance(_ context.Context, _ pgx.Tx, walletID uuid.UUID, balance, available decimal.Decimal) error {
	w, ok := r.s.wallets[walletID]
	if !ok {
		return fmt.Errorf("wallet %s not found", walletID)
	}
	w.Balance = balance
	w.AvailableBalance = available
	r.s.wallets[walletID] = w
	return nil
}

func (r *memWalletRepo) UpdateStatus(_ context.Context, walletID uuid.UUID, status domain.WalletStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w := r.s.wallets[walletID]
	w.Status = status
	r.s.wallets[walletID] = w
	return nil
}

func (r *memWalletRepo) UpdatePinHash(_ context.Context, walletID uuid.UUID, pinHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w := r.s.wallets[walletID]
	w.PinHash = &pinHash
	r.s.wallets[walletID] = w
	return nil
}

func (r *memWalletRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, w := range r.s.wallets {
		if w.WalletNumber == number {
			return true, nil
		}
	}
	return false, nil
}

type memLedgerRepo struct{ s *memStore }

func (r *memLedgerRepo) Insert(_ context.Context, _ pgx.Tx, entry *domain.LedgerEntry) (bool, error) {
	for _, e := range r.s.entries {
		if e.IdempotencyKey == entry.IdempotencyKey {
			return false, nil
		}
	}
	r.s.entries = append(r.s.entries, *entry)
	return true, nil
}

func (r *memLedgerRepo) GetByIdempotencyKey(_ context.Context, _ pgx.Tx, key string) (*domain.LedgerEntry, error) {
	for _, e := range r.s.entries {
		if e.IdempotencyKey == key {
			cp := e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLedgerRepo) SumByWalletAndType(_ context.Context, walletID uuid.UUID, entryType domain.EntryType) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, e := range r.s.entries {
		if e.WalletID == walletID && e.EntryType == entryType {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (r *memLedgerRepo) ListByWallet(_ context.Context, walletID uuid.UUID, limit, offset int) ([]domain.LedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.LedgerEntry
	for i := len(r.s.entries) - 1; i >= 0; i-- {
		if r.s.entries[i].WalletID == walletID {
			out = append(out, r.s.entries[i])
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memTransactionRepo struct{ s *memStore }

func (r *memTransactionRepo) Create(_ context.Context, _ pgx.Tx, txn *domain.Transaction) error {
	if _, exists := r.s.byRef[txn.Reference]; exists {
		return fmt.Errorf("duplicate reference %s", txn.Reference)
	}
	r.s.txns[txn.ID] = *txn
	r.s.byRef[txn.Reference] = txn.ID
	return nil
}

func (r *memTransactionRepo) CreateStandalone(_ context.Context, txn *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.byRef[txn.Reference]; exists {
		return fmt.Errorf("duplicate reference %s", txn.Reference)
	}
	r.s.txns[txn.ID] = *txn
	r.s.byRef[txn.Reference] = txn.ID
	return nil
}

func (r *memTransactionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if txn, ok := r.s.txns[id]; ok {
		cp := txn
		return &cp, nil
	}
	return nil, nil
}

func (r *memTransactionRepo) GetByReference(_ context.Context, reference string) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if id, ok := r.s.byRef[reference]; ok {
		cp := r.s.txns[id]
		return &cp, nil
	}
	return nil, nil
}

func (r *memTransactionRepo) UpdateStatus(_ context.Context, _ pgx.Tx, id uuid.UUID, status domain.TransactionStatus, completedAt *time.Time) error {
	txn, ok := r.s.txns[id]
	if !ok {
		return fmt.Errorf("transaction %s not found", id)
	}
	txn.Status = status
	txn.CompletedAt = completedAt
	r.s.txns[id] = txn
	return nil
}

func (r *memTransactionRepo) MarkReversed(_ context.Context, _ pgx.Tx, id uuid.UUID) (bool, error) {
	txn, ok := r.s.txns[id]
	if !ok || txn.Status != domain.TransactionStatusSuccess {
		return false, nil
	}
	txn.Status = domain.TransactionStatusReversed
	r.s.txns[id] = txn
	return true, nil
}

func (r *memTransactionRepo) SumSuccessfulByAccount(_ context.Context, accountID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, txn := range r.s.txns {
		if txn.AccountID != accountID || txn.Status != domain.TransactionStatusSuccess {
			continue
		}
		if txn.Type != domain.TransactionTypeTransfer && txn.Type != domain.TransactionTypeWithdrawal {
			continue
		}
		if txn.CreatedAt.Before(from) || !txn.CreatedAt.Before(to) {
			continue
		}
		total = total.Add(txn.Amount)
	}
	return total, nil
}

func (r *memTransactionRepo) ListByAccount(_ context.Context, accountID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Transaction
	for _, txn := range r.s.txns {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

type memAccountRepo struct{ s *memStore }

func (r *memAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.accounts[id]; ok {
		cp := a
		return &cp, nil
	}
	return nil, nil
}

type nopPublisher struct{}

func (nopPublisher) PublishTransactionEvent(context.Context, domain.TransactionEvent) error {
	return nil
}
func (nopPublisher) PublishWalletEvent(context.Context, domain.WalletEvent) error { return nil }
func (nopPublisher) Close() error { return nil }

type memFixture struct {
	store     *memStore
	ledgerSvc *LedgerServiceImpl
	walletSvc *WalletServiceImpl
	txSvc     *TransactionServiceImpl
}

func newMemFixture(t *testing.T) *memFixture {
	t.Helper()
	store := newMemStore()
	walletRepo := &memWalletRepo{s: store}
	ledgerRepo := &memLedgerRepo{s: store}
	txRepo := &memTransactionRepo{s: store}
	accountRepo := &memAccountRepo{s: store}

	log := zerolog.Nop()
	ledgerSvc := NewLedgerService(ledgerRepo, log)
	walletSvc := NewWalletService(walletRepo, txRepo, accountRepo, NewArgon2HashService(), nopPublisher{}, decimal.NewFromInt(0), log)
	txSvc := NewTransactionService(txRepo, walletRepo, accountRepo, ledgerSvc, walletSvc, &memTransactor{s: store}, nopPublisher{}, log)

	return &memFixture{store: store, ledgerSvc: ledgerSvc, walletSvc: walletSvc, txSvc: txSvc}
}

func (f *memFixture) addAccount(tier string) uuid.UUID {
	id := uuid.New()
	f.store.accounts[id] = domain.Account{ID: id, KycTier: tier, Status: domain.AccountStatusActive, CreatedAt: time.Now().UTC()}
	return id
}

// addWallet seeds a wallet along with the journal entry funding its opening
// balance, so the cached balance and the ledger agree from the start.
func (f *memFixture) addWallet(accountID uuid.UUID, number string, balance int64) *domain.Wallet {
	w := activeWallet(accountID, number, "USD", balance)
	f.store.wallets[w.ID] = *w
	if balance != 0 {
		f.store.entries = append(f.store.entries, domain.LedgerEntry{
			ID:                   uuid.New(),
			WalletID:             w.ID,
			EntryType:            domain.EntryTypeCredit,
			Amount:               decimal.NewFromInt(balance),
			BalanceBefore:        decimal.Zero,
			BalanceAfter:         decimal.NewFromInt(balance),
			TransactionReference: "OPEN-" + number,
			IdempotencyKey:       "OPEN-" + number,
			Description:          "Opening balance",
			CreatedAt:            time.Now().UTC(),
		})
	}
	return w
}

func (f *memFixture) walletBalance(id uuid.UUID) decimal.Decimal {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.wallets[id].Balance
}

// auditConsistent verifies the wallet's cached balance against its journal.
func (f *memFixture) auditConsistent(t *testing.T, walletID uuid.UUID) {
	t.Helper()
	journal, err := f.ledgerSvc.CalculateBalance(context.Background(), walletID)
	require.NoError(t, err)
	cached := f.walletBalance(walletID)
	assert.True(t, cached.Equal(journal),
		"wallet %s cached balance %s != journal balance %s", walletID, cached, journal)
}

func TestConcurrentTransfers_ConserveTotalBalance(t *testing.T) {
	f := newMemFixture(t)
	ctx := context.Background()

	acctA := f.addAccount("TIER_3")
	acctB := f.addAccount("TIER_3")
	a := f.addWallet(acctA, "WLT0000000001", 10_000)
	b := f.addWallet(acctB, "WLT0000000002", 10_000)

	const rounds = 20
	amount := decimal.NewFromInt(100)

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.txSvc.Transfer(ctx, ports.TransferRequest{
				AccountID:               acctA,
				SourceWalletID:          a.ID,
				DestinationWalletNumber: b.WalletNumber,
				Amount:                  amount,
			})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := f.txSvc.Transfer(ctx, ports.TransferRequest{
				AccountID:               acctB,
				SourceWalletID:          b.ID,
				DestinationWalletNumber: a.WalletNumber,
				Amount:                  amount,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	total := f.walletBalance(a.ID).Add(f.walletBalance(b.ID))
	assert.True(t, total.Equal(decimal.NewFromInt(20_000)),
		"money created or destroyed: total is %s", total)
	f.auditConsistent(t, a.ID)
	f.auditConsistent(t, b.ID)
}

func TestConcurrentTransfers_OnlyAffordableCountSucceeds(t *testing.T) {
	f := newMemFixture(t)
	ctx := context.Background()

	acctA := f.addAccount("TIER_3")
	acctB := f.addAccount("TIER_3")
	source := f.addWallet(acctA, "WLT0000000001", 500)
	destination := f.addWallet(acctB, "WLT0000000002", 0)

	const attempts = 10
	amount := decimal.NewFromInt(100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, insufficient := 0, 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.txSvc.Transfer(ctx, ports.TransferRequest{
				AccountID:               acctA,
				SourceWalletID:          source.ID,
				DestinationWalletNumber: destination.WalletNumber,
				Amount:                  amount,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			var appErr *apperror.AppError
			if assert.ErrorAs(t, err, &appErr) {
				assert.Equal(t, "PAY_001", appErr.Code)
				insufficient++
			}
		}()
	}
	wg.Wait()

	// 500 / 100: exactly five transfers can be funded.
	assert.Equal(t, 5, successes)
	assert.Equal(t, attempts-5, insufficient)
	assert.True(t, f.walletBalance(source.ID).IsZero())
	assert.True(t, f.walletBalance(destination.ID).Equal(decimal.NewFromInt(500)))
	f.auditConsistent(t, source.ID)
	f.auditConsistent(t, destination.ID)
}

func TestMixedOperations_LedgerMatchesWallets(t *testing.T) {
	f := newMemFixture(t)
	ctx := context.Background()

	acctA := f.addAccount("TIER_2")
	acctB := f.addAccount("TIER_2")
	a := f.addWallet(acctA, "WLT0000000001", 0)
	b := f.addWallet(acctB, "WLT0000000002", 0)

	_, err := f.txSvc.Deposit(ctx, ports.DepositRequest{
		WalletID: a.ID, Amount: decimal.NewFromInt(5000), ExternalReference: "ch_1", Gateway: "stripe",
	})
	require.NoError(t, err)

	transfer, err := f.txSvc.Transfer(ctx, ports.TransferRequest{
		AccountID: acctA, SourceWalletID: a.ID,
		DestinationWalletNumber: b.WalletNumber, Amount: decimal.NewFromInt(1500),
	})
	require.NoError(t, err)

	_, err = f.txSvc.Withdraw(ctx, ports.WithdrawRequest{
		AccountID: acctA, WalletID: a.ID, Amount: decimal.NewFromInt(400), Destination: "bank:0123",
	})
	require.NoError(t, err)

	_, err = f.txSvc.Reverse(ctx, ports.ReverseRequest{
		Reference: transfer.Reference, AdminID: uuid.New(), Reason: "dispute",
	})
	require.NoError(t, err)

	// a: 5000 deposit - 1500 transfer - 400 withdrawal + 1500 reversal = 4600.
	assert.True(t, f.walletBalance(a.ID).Equal(decimal.NewFromInt(4600)))
	assert.True(t, f.walletBalance(b.ID).IsZero())
	f.auditConsistent(t, a.ID)
	f.auditConsistent(t, b.ID)

	original, err := f.txSvc.GetByReference(ctx, transfer.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusReversed, original.Status)
	assert.NotNil(t, original.CompletedAt)
}

func TestConcurrentReversals_OnlyOneApplies(t *testing.T) {
	f := newMemFixture(t)
	ctx := context.Background()

	acct := f.addAccount("TIER_3")
	w := f.addWallet(acct, "WLT0000000001", 1000)

	withdrawal, err := f.txSvc.Withdraw(ctx, ports.WithdrawRequest{
		AccountID: acct, WalletID: w.ID, Amount: decimal.NewFromInt(300), Destination: "bank:0123",
	})
	require.NoError(t, err)

	// A withdrawal reversal has only a credit leg, so a double-applied
	// compensation would mint 300 out of nothing.
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, rejected := 0, 0
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.txSvc.Reverse(ctx, ports.ReverseRequest{
				Reference: withdrawal.Reference, AdminID: uuid.New(), Reason: "dispute",
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			var appErr *apperror.AppError
			if assert.ErrorAs(t, err, &appErr) {
				assert.Equal(t, "PAY_006", appErr.Code)
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, rejected)
	assert.True(t, f.walletBalance(w.ID).Equal(decimal.NewFromInt(1000)),
		"double-applied reversal: balance is %s", f.walletBalance(w.ID))
	f.auditConsistent(t, w.ID)

	original, err := f.txSvc.GetByReference(ctx, withdrawal.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusReversed, original.Status)
	assert.NotNil(t, original.CompletedAt)
}

// failOnSecondInsert makes the credit leg of a transfer fail after the debit
// leg already applied, forcing the whole movement to roll back.
type failOnSecondInsert struct {
	ports.LedgerRepository
	calls int
}

func (r *failOnSecondInsert) Insert(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) (bool, error) {
	r.calls++
	if r.calls == 2 {
		return false, fmt.Errorf("connection reset")
	}
	return r.LedgerRepository.Insert(ctx, tx, entry)
}

func TestTransfer_CreditLegFailure_RollsBackDebit(t *testing.T) {
	store := newMemStore()
	walletRepo := &memWalletRepo{s: store}
	ledgerRepo := &failOnSecondInsert{LedgerRepository: &memLedgerRepo{s: store}}
	txRepo := &memTransactionRepo{s: store}
	accountRepo := &memAccountRepo{s: store}

	log := zerolog.Nop()
	ledgerSvc := NewLedgerService(ledgerRepo, log)
	walletSvc := NewWalletService(walletRepo, txRepo, accountRepo, NewArgon2HashService(), nopPublisher{}, decimal.Zero, log)
	txSvc := NewTransactionService(txRepo, walletRepo, accountRepo, ledgerSvc, walletSvc, &memTransactor{s: store}, nopPublisher{}, log)

	acctA := uuid.New()
	store.accounts[acctA] = domain.Account{ID: acctA, KycTier: "TIER_3", Status: domain.AccountStatusActive}
	acctB := uuid.New()
	store.accounts[acctB] = domain.Account{ID: acctB, KycTier: "TIER_3", Status: domain.AccountStatusActive}
	source := activeWallet(acctA, "WLT0000000001", "USD", 1000)
	store.wallets[source.ID] = *source
	destination := activeWallet(acctB, "WLT0000000002", "USD", 0)
	store.wallets[destination.ID] = *destination

	_, err := txSvc.Transfer(context.Background(), ports.TransferRequest{
		AccountID:               acctA,
		SourceWalletID:          source.ID,
		DestinationWalletNumber: destination.WalletNumber,
		Amount:                  decimal.NewFromInt(300),
	})
	require.Error(t, err)

	// The applied debit leg must have been rolled back with everything else.
	store.mu.Lock()
	sourceBalance := store.wallets[source.ID].Balance
	destBalance := store.wallets[destination.ID].Balance
	entryCount := len(store.entries)
	store.mu.Unlock()

	assert.True(t, sourceBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, destBalance.IsZero())
	assert.Zero(t, entryCount)

	// Only the FAILED audit record survives.
	var failed int
	store.mu.Lock()
	for _, txn := range store.txns {
		require.Equal(t, domain.TransactionStatusFailed, txn.Status)
		require.NotNil(t, txn.FailureReason)
		failed++
	}
	store.mu.Unlock()
	assert.Equal(t, 1, failed)
}
