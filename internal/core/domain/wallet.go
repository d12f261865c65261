package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletStatus represents the lifecycle state of a wallet.
type WalletStatus string

const (
	WalletStatusActive WalletStatus = "ACTIVE"
	WalletStatusFrozen WalletStatus = "FROZEN"
	WalletStatusClosed WalletStatus = "CLOSED"
)

// Wallet is the per-(account, currency) balance cache. The ledger is the
// source of truth; Balance must always equal the signed sum of the wallet's
// ledger entries.
type Wallet struct {
	ID               uuid.UUID       `json:"id"`
	AccountID        uuid.UUID       `json:"account_id"`
	WalletNumber     string          `json:"wallet_number"`
	Currency         string          `json:"currency"`
	Balance          decimal.Decimal `json:"balance"`
	AvailableBalance decimal.Decimal `json:"available_balance"`
	Status           WalletStatus    `json:"status"`
	PinHash          *string         `json:"-"` // Argon2id, never exposed
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CanTransact reports whether the wallet may participate in a money movement.
func (w *Wallet) CanTransact() bool {
	return w.Status == WalletStatusActive
}

// Credit adds amount to both balance fields. No hold model exists, so the two
// fields move in lockstep.
func (w *Wallet) Credit(amount decimal.Decimal) {
	w.Balance = w.Balance.Add(amount)
	w.AvailableBalance = w.AvailableBalance.Add(amount)
}

// Debit subtracts amount from both balance fields. Callers must check
// AvailableBalance first; Debit does not re-validate.
func (w *Wallet) Debit(amount decimal.Decimal) {
	w.Balance = w.Balance.Sub(amount)
	w.AvailableBalance = w.AvailableBalance.Sub(amount)
}
