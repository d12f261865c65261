package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestWallet_CreditDebit(t *testing.T) {
	w := &Wallet{
		Balance:          decimal.NewFromInt(1000),
		AvailableBalance: decimal.NewFromInt(1000),
	}

	w.Credit(decimal.NewFromInt(250))
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(1250)))
	assert.True(t, w.AvailableBalance.Equal(decimal.NewFromInt(1250)))

	w.Debit(decimal.NewFromInt(500))
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(750)))
	assert.True(t, w.AvailableBalance.Equal(decimal.NewFromInt(750)))

	// No hold model: both fields always move together.
	assert.True(t, w.Balance.Equal(w.AvailableBalance))
}

func TestWallet_CanTransact(t *testing.T) {
	w := &Wallet{Status: WalletStatusActive}
	assert.True(t, w.CanTransact())

	w.Status = WalletStatusFrozen
	assert.False(t, w.CanTransact())

	w.Status = WalletStatusClosed
	assert.False(t, w.CanTransact())
}

func TestNewBalanceAfter(t *testing.T) {
	before := decimal.NewFromInt(100)
	amount := decimal.RequireFromString("25.5")

	assert.True(t, NewBalanceAfter(before, amount, EntryTypeCredit).Equal(decimal.RequireFromString("125.5")))
	assert.True(t, NewBalanceAfter(before, amount, EntryTypeDebit).Equal(decimal.RequireFromString("74.5")))
}
