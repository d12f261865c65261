package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType is the side of a ledger posting.
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

// LedgerEntry is one immutable, signed balance movement on one wallet.
// Entries are append-only: never updated, never deleted.
type LedgerEntry struct {
	ID                   uuid.UUID       `json:"id"`
	WalletID             uuid.UUID       `json:"wallet_id"`
	EntryType            EntryType       `json:"entry_type"`
	Amount               decimal.Decimal `json:"amount"` // Strictly positive
	BalanceBefore        decimal.Decimal `json:"balance_before"`
	BalanceAfter         decimal.Decimal `json:"balance_after"`
	TransactionReference string          `json:"transaction_reference"`
	IdempotencyKey       string          `json:"idempotency_key"` // Globally unique
	Description          string          `json:"description,omitempty"`
	ExternalReference    *string         `json:"external_reference,omitempty"`
	IPAddress            string          `json:"ip_address,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
}

// NewBalanceAfter computes the post-entry balance for the given side.
func NewBalanceAfter(balanceBefore, amount decimal.Decimal, entryType EntryType) decimal.Decimal {
	if entryType == EntryTypeCredit {
		return balanceBefore.Add(amount)
	}
	return balanceBefore.Sub(amount)
}
