package service

import (
	"context"
	"testing"
	"time"

	"custodial-wallet/internal/core/domain"
	"custodial-wallet/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type walletTestDeps struct {
	ctrl        *gomock.Controller
	walletRepo  *mocks.MockWalletRepository
	txRepo      *mocks.MockTransactionRepository
	accountRepo *mocks.MockAccountRepository
	hashSvc     *mocks.MockHashService
	publisher   *mocks.MockEventPublisher
}

func setupWalletService(t *testing.T) (*WalletServiceImpl, *walletTestDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := &walletTestDeps{
		ctrl:        ctrl,
		walletRepo:  mocks.NewMockWalletRepository(ctrl),
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		accountRepo: mocks.NewMockAccountRepository(ctrl),
		hashSvc:     mocks.NewMockHashService(ctrl),
		publisher:   mocks.NewMockEventPublisher(ctrl),
	}
	svc := NewWalletService(
		d.walletRepo, d.txRepo, d.accountRepo, d.hashSvc, d.publisher,
		decimal.NewFromInt(1000), // low balance threshold
		zerolog.Nop(),
	)
	return svc, d
}

func TestCreateWallet_Success(t *testing.T) {
	svc, d := setupWalletService(t)
	accountID := uuid.New()

	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).
		Return(accountWithTier(accountID, "TIER_1"), nil)
	d.walletRepo.EXPECT().GetByAccountAndCurrency(gomock.Any(), accountID, "USD").
		Return(nil, nil)
	d.walletRepo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Return(false, nil)
	d.walletRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, w *domain.Wallet) error {
			assert.Equal(t, accountID, w.AccountID)
			assert.Equal(t, "USD", w.Currency)
			assert.Equal(t, domain.WalletStatusActive, w.Status)
			assert.True(t, w.Balance.IsZero())
			assert.True(t, w.AvailableBalance.IsZero())
			assert.Regexp(t, `^WLT\d{10}$`, w.WalletNumber)
			return nil
		})
	d.publisher.EXPECT().PublishWalletEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event domain.WalletEvent) error {
			assert.Equal(t, domain.WalletEventCreated, event.Action)
			return nil
		})

	wallet, err := svc.CreateWallet(context.Background(), accountID, "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", wallet.Currency)
}

func TestCreateWallet_AccountNotFound(t *testing.T) {
	svc, d := setupWalletService(t)
	accountID := uuid.New()

	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).Return(nil, nil)

	_, err := svc.CreateWallet(context.Background(), accountID, "USD")
	assertAppError(t, err, "PAY_007")
}

func TestCreateWallet_DuplicateCurrency(t *testing.T) {
	svc, d := setupWalletService(t)
	accountID := uuid.New()

	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).
		Return(accountWithTier(accountID, "TIER_1"), nil)
	d.walletRepo.EXPECT().GetByAccountAndCurrency(gomock.Any(), accountID, "USD").
		Return(activeWallet(accountID, "WLT0000000001", "USD", 0), nil)

	_, err := svc.CreateWallet(context.Background(), accountID, "USD")
	assertAppError(t, err, "WAL_004")
}

func TestCreateWallet_RetriesCollidingNumber(t *testing.T) {
	svc, d := setupWalletService(t)
	accountID := uuid.New()

	d.accountRepo.EXPECT().GetByID(gomock.Any(), accountID).
		Return(accountWithTier(accountID, "TIER_1"), nil)
	d.walletRepo.EXPECT().GetByAccountAndCurrency(gomock.Any(), accountID, "USD").
		Return(nil, nil)
	gomock.InOrder(
		d.walletRepo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Return(true, nil),
		d.walletRepo.EXPECT().ExistsByNumber(gomock.Any(), gomock.Any()).Return(false, nil),
	)
	d.walletRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	d.publisher.EXPECT().PublishWalletEvent(gomock.Any(), gomock.Any()).Return(nil)

	_, err := svc.CreateWallet(context.Background(), accountID, "USD")
	require.NoError(t, err)
}

func TestApplyBalanceChange_Credit(t *testing.T) {
	svc, d := setupWalletService(t)

	wallet := activeWallet(uuid.New(), "WLT0000000001", "USD", 2000)
	amount := decimal.NewFromInt(500)

	d.walletRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), wallet.ID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ pgx.Tx, _ uuid.UUID, balance, available decimal.Decimal) error {
			assert.True(t, balance.Equal(decimal.NewFromInt(2500)))
			assert.True(t, available.Equal(decimal.NewFromInt(2500)))
			return nil
		})

	events, err := svc.ApplyBalanceChange(context.Background(), &mockTx{}, wallet, amount, true)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.WalletEventBalanceUpdated, events[0].Action)
	require.NotNil(t, events[0].OldBalance)
	assert.True(t, events[0].OldBalance.Equal(decimal.NewFromInt(2000)))
	assert.True(t, events[0].NewBalance.Equal(decimal.NewFromInt(2500)))
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(2500)))
}

func TestApplyBalanceChange_DebitBelowThreshold_EmitsLowBalance(t *testing.T) {
	svc, d := setupWalletService(t)

	wallet := activeWallet(uuid.New(), "WLT0000000001", "USD", 1200)
	amount := decimal.NewFromInt(500)

	d.walletRepo.EXPECT().UpdateBalance(gomock.Any(), gomock.Any(), wallet.ID, gomock.Any(), gomock.Any()).
		Return(nil)

	// 1200 - 500 = 700, below the 1000 threshold.
	events, err := svc.ApplyBalanceChange(context.Background(), &mockTx{}, wallet, amount, false)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.WalletEventBalanceUpdated, events[0].Action)
	assert.Equal(t, domain.WalletEventLowBalance, events[1].Action)
	assert.True(t, wallet.AvailableBalance.Equal(decimal.NewFromInt(700)))
}

func TestApplyBalanceChange_InsufficientBalance(t *testing.T) {
	svc, _ := setupWalletService(t)

	wallet := activeWallet(uuid.New(), "WLT0000000001", "USD", 100)

	_, err := svc.ApplyBalanceChange(context.Background(), &mockTx{}, wallet, decimal.NewFromInt(101), false)
	assertAppError(t, err, "PAY_001")
	// Balance untouched on rejection.
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(100)))
}

func TestApplyBalanceChange_InvalidAmount(t *testing.T) {
	svc, _ := setupWalletService(t)

	wallet := activeWallet(uuid.New(), "WLT0000000001", "USD", 100)

	_, err := svc.ApplyBalanceChange(context.Background(), &mockTx{}, wallet, decimal.NewFromInt(-5), true)
	assertAppError(t, err, "PAY_002")
}

func TestFreeze(t *testing.T) {
	svc, d := setupWalletService(t)

	wallet := activeWallet(uuid.New(), "WLT0000000001", "USD", 100)
	d.walletRepo.EXPECT().GetByID(gomock.Any(), wallet.ID).Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateStatus(gomock.Any(), wallet.ID, domain.WalletStatusFrozen).Return(nil)
	d.publisher.EXPECT().PublishWalletEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event domain.WalletEvent) error {
			assert.Equal(t, domain.WalletEventFrozen, event.Action)
			return nil
		})

	require.NoError(t, svc.Freeze(context.Background(), wallet.ID))
}

func TestFreeze_ClosedWallet(t *testing.T) {
	svc, d := setupWalletService(t)

	wallet := activeWallet(uuid.New(), "WLT0000000001", "USD", 0)
	wallet.Status = domain.WalletStatusClosed
	d.walletRepo.EXPECT().GetByID(gomock.Any(), wallet.ID).Return(wallet, nil)

	err := svc.Freeze(context.Background(), wallet.ID)
	assertAppError(t, err, "WAL_006")
}

func TestUnfreeze(t *testing.T) {
	svc, d := setupWalletService(t)

	wallet := activeWallet(uuid.New(), "WLT0000000001", "USD", 100)
	wallet.Status = domain.WalletStatusFrozen
	d.walletRepo.EXPECT().GetByID(gomock.Any(), wallet.ID).Return(wallet, nil)
	d.walletRepo.EXPECT().UpdateStatus(gomock.Any(), wallet.ID, domain.WalletStatusActive).Return(nil)
	d.publisher.EXPECT().PublishWalletEvent(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, svc.Unfreeze(context.Background(), wallet.ID))
}

func TestDailySpent_UsesWallClockDay(t *testing.T) {
	svc, d := setupWalletService(t)
	accountID := uuid.New()

	d.txRepo.EXPECT().SumSuccessfulByAccount(gomock.Any(), accountID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
			assert.Equal(t, 0, from.Hour())
			assert.Equal(t, 0, from.Minute())
			assert.Equal(t, from.Add(24*time.Hour), to)
			return decimal.NewFromInt(12_345), nil
		})

	spent, err := svc.DailySpent(context.Background(), accountID)
	require.NoError(t, err)
	assert.True(t, spent.Equal(decimal.NewFromInt(12_345)))
}

func TestSetPin(t *testing.T) {
	svc, d := setupWalletService(t)

	accountID := uuid.New()
	wallet := activeWallet(accountID, "WLT0000000001", "USD", 0)

	t.Run("success", func(t *testing.T) {
		d.walletRepo.EXPECT().GetByID(gomock.Any(), wallet.ID).Return(wallet, nil)
		d.hashSvc.EXPECT().Hash("123456").Return("argon2-hash", nil)
		d.walletRepo.EXPECT().UpdatePinHash(gomock.Any(), wallet.ID, "argon2-hash").Return(nil)

		require.NoError(t, svc.SetPin(context.Background(), wallet.ID, accountID, "123456"))
	})

	t.Run("not the owner", func(t *testing.T) {
		d.walletRepo.EXPECT().GetByID(gomock.Any(), wallet.ID).Return(wallet, nil)

		err := svc.SetPin(context.Background(), wallet.ID, uuid.New(), "123456")
		assertAppError(t, err, "WAL_002")
	})
}

func TestVerifyPin(t *testing.T) {
	svc, d := setupWalletService(t)

	wallet := activeWallet(uuid.New(), "WLT0000000001", "USD", 0)

	t.Run("no pin set", func(t *testing.T) {
		d.walletRepo.EXPECT().GetByID(gomock.Any(), wallet.ID).Return(wallet, nil)

		ok, err := svc.VerifyPin(context.Background(), wallet.ID, "123456")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("matching pin", func(t *testing.T) {
		hash := "argon2-hash"
		wallet.PinHash = &hash
		d.walletRepo.EXPECT().GetByID(gomock.Any(), wallet.ID).Return(wallet, nil)
		d.hashSvc.EXPECT().Verify("123456", hash).Return(true, nil)

		ok, err := svc.VerifyPin(context.Background(), wallet.ID, "123456")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
