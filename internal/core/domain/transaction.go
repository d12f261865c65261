package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement.
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionType = "TRANSFER"
	TransactionTypeRefund     TransactionType = "REFUND"
	TransactionTypeFee        TransactionType = "FEE"
	TransactionTypeReversal   TransactionType = "REVERSAL"
)

// TransactionStatus represents the lifecycle state of a transaction.
// Legal transitions: PENDING/PROCESSING -> SUCCESS, PENDING/PROCESSING ->
// FAILED, SUCCESS -> REVERSED. REVERSED is terminal.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "PENDING"
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusSuccess    TransactionStatus = "SUCCESS"
	TransactionStatusFailed     TransactionStatus = "FAILED"
	TransactionStatusReversed   TransactionStatus = "REVERSED"
)

// Transaction records one money movement. Transfers populate both wallet ids,
// deposits only the destination, withdrawals only the source.
type Transaction struct {
	ID                    uuid.UUID         `json:"id"`
	Reference             string            `json:"reference"`
	AccountID             uuid.UUID         `json:"account_id"` // Initiating account
	SourceWalletID        *uuid.UUID        `json:"source_wallet_id,omitempty"`
	DestinationWalletID   *uuid.UUID        `json:"destination_wallet_id,omitempty"`
	Type                  TransactionType   `json:"type"`
	Amount                decimal.Decimal   `json:"amount"`
	Fee                   decimal.Decimal   `json:"fee"`
	Currency              string            `json:"currency"`
	Status                TransactionStatus `json:"status"`
	Description           string            `json:"description,omitempty"`
	FailureReason         *string           `json:"failure_reason,omitempty"`
	ExternalReference     *string           `json:"external_reference,omitempty"`
	PaymentGateway        *string           `json:"payment_gateway,omitempty"`
	IPAddress             string            `json:"ip_address,omitempty"`
	OriginalTransactionID *uuid.UUID        `json:"original_transaction_id,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	UpdatedAt             time.Time         `json:"updated_at"`
	CompletedAt           *time.Time        `json:"completed_at,omitempty"`
}

// IsTerminal returns true if the transaction is in a final state.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusSuccess ||
		t.Status == TransactionStatusFailed ||
		t.Status == TransactionStatusReversed
}

// IsReversible returns true if this transaction can still be reversed.
// A reversal can never itself be reversed.
func (t *Transaction) IsReversible() bool {
	return t.Status == TransactionStatusSuccess &&
		t.Type != TransactionTypeReversal
}
