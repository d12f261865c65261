package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction event types emitted after commit.
const (
	TransactionEventCompleted = "COMPLETED"
	TransactionEventFailed    = "FAILED"
	TransactionEventReceived  = "RECEIVED"
	TransactionEventReversed  = "REVERSED"
)

// Wallet event actions.
const (
	WalletEventCreated        = "CREATED"
	WalletEventBalanceUpdated = "BALANCE_UPDATED"
	WalletEventLowBalance     = "LOW_BALANCE"
	WalletEventFrozen         = "FROZEN"
	WalletEventUnfrozen       = "UNFROZEN"
)

// TransactionEvent is published to downstream consumers (notifications,
// analytics, fraud detection) after a transaction reaches a terminal state.
// Delivery is best-effort and must never affect the committed movement.
type TransactionEvent struct {
	EventType           string            `json:"event_type"`
	TransactionID       uuid.UUID         `json:"transaction_id"`
	Reference           string            `json:"reference"`
	SourceWalletID      *uuid.UUID        `json:"source_wallet_id,omitempty"`
	DestinationWalletID *uuid.UUID        `json:"destination_wallet_id,omitempty"`
	AccountID           uuid.UUID         `json:"account_id"`
	Type                TransactionType   `json:"type"`
	Status              TransactionStatus `json:"status"`
	Amount              decimal.Decimal   `json:"amount"`
	Currency            string            `json:"currency"`
	Description         string            `json:"description,omitempty"`
	IPAddress           string            `json:"ip_address,omitempty"`
	Timestamp           time.Time         `json:"timestamp"`
}

// WalletEvent is published on wallet lifecycle and balance changes.
type WalletEvent struct {
	Action     string           `json:"action"`
	WalletID   uuid.UUID        `json:"wallet_id"`
	AccountID  uuid.UUID        `json:"account_id"`
	Currency   string           `json:"currency"`
	OldBalance *decimal.Decimal `json:"old_balance,omitempty"`
	NewBalance decimal.Decimal  `json:"new_balance"`
	Timestamp  time.Time        `json:"timestamp"`
}
