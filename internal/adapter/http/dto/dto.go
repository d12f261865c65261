package dto

import (
	"math"

	"custodial-wallet/internal/core/domain"

	"github.com/shopspring/decimal"
)

// CreateWalletRequest is the request body for opening a wallet.
type CreateWalletRequest struct {
	Currency string `json:"currency" binding:"required,len=3,uppercase"`
}

// SetPinRequest is the request body for setting the wallet transaction PIN.
type SetPinRequest struct {
	Pin string `json:"pin" binding:"required,len=6,numeric"`
}

// TransferRequest is the request body for a wallet-to-wallet transfer.
// Amount is a decimal string; float JSON numbers lose precision.
type TransferRequest struct {
	SourceWalletID          string `json:"source_wallet_id" binding:"required,uuid"`
	DestinationWalletNumber string `json:"destination_wallet_number" binding:"required,safe_id,max=20"`
	Amount                  string `json:"amount" binding:"required,max=30"`
	Description             string `json:"description,omitempty" binding:"max=255"`
}

// DepositRequest is the request body for crediting a wallet from an
// external payment gateway.
type DepositRequest struct {
	WalletID          string `json:"wallet_id" binding:"required,uuid"`
	Amount            string `json:"amount" binding:"required,max=30"`
	ExternalReference string `json:"external_reference" binding:"required,safe_id,max=100"`
	Gateway           string `json:"gateway" binding:"required,safe_id,max=50"`
}

// WithdrawRequest is the request body for debiting a wallet to an external
// destination.
type WithdrawRequest struct {
	WalletID    string `json:"wallet_id" binding:"required,uuid"`
	Amount      string `json:"amount" binding:"required,max=30"`
	Destination string `json:"destination" binding:"required,max=100"`
}

// ReverseRequest is the request body for an admin-initiated reversal.
type ReverseRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// WalletResponse is the API view of a wallet.
type WalletResponse struct {
	ID               string `json:"id"`
	WalletNumber     string `json:"wallet_number"`
	Currency         string `json:"currency"`
	Balance          string `json:"balance"`
	AvailableBalance string `json:"available_balance"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}

// BalanceAuditResponse compares the cached wallet balance against the
// balance recomputed from the journal.
type BalanceAuditResponse struct {
	WalletID       string `json:"wallet_id"`
	CachedBalance  string `json:"cached_balance"`
	JournalBalance string `json:"journal_balance"`
	Consistent     bool   `json:"consistent"`
}

// LedgerEntryResponse is the API view of a journal entry.
type LedgerEntryResponse struct {
	ID                   string `json:"id"`
	EntryType            string `json:"entry_type"`
	Amount               string `json:"amount"`
	BalanceBefore        string `json:"balance_before"`
	BalanceAfter         string `json:"balance_after"`
	TransactionReference string `json:"transaction_reference"`
	Description          string `json:"description,omitempty"`
	CreatedAt            string `json:"created_at"`
}

// TransactionResponse is the API view of a transaction.
type TransactionResponse struct {
	ID                  string  `json:"id"`
	Reference           string  `json:"reference"`
	Type                string  `json:"type"`
	Status              string  `json:"status"`
	Amount              string  `json:"amount"`
	Fee                 string  `json:"fee"`
	Currency            string  `json:"currency"`
	SourceWalletID      *string `json:"source_wallet_id,omitempty"`
	DestinationWalletID *string `json:"destination_wallet_id,omitempty"`
	Description         string  `json:"description,omitempty"`
	FailureReason       *string `json:"failure_reason,omitempty"`
	CreatedAt           string  `json:"created_at"`
	CompletedAt         *string `json:"completed_at,omitempty"`
}

// TransactionListResponse wraps a paginated transaction list.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// ParseAmount parses a positive decimal amount string with at most 4
// fractional digits, matching the NUMERIC(19,4) storage precision.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	if !amount.IsPositive() || amount.Exponent() < -4 {
		return decimal.Zero, false
	}
	return amount, true
}

// TotalPages computes the page count for a list response.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// FromWallet maps a domain wallet to its API view.
func FromWallet(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:               w.ID.String(),
		WalletNumber:     w.WalletNumber,
		Currency:         w.Currency,
		Balance:          w.Balance.String(),
		AvailableBalance: w.AvailableBalance.String(),
		Status:           string(w.Status),
		CreatedAt:        w.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromLedgerEntry maps a domain ledger entry to its API view.
func FromLedgerEntry(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:                   e.ID.String(),
		EntryType:            string(e.EntryType),
		Amount:               e.Amount.String(),
		BalanceBefore:        e.BalanceBefore.String(),
		BalanceAfter:         e.BalanceAfter.String(),
		TransactionReference: e.TransactionReference,
		Description:          e.Description,
		CreatedAt:            e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// FromTransaction maps a domain transaction to its API view.
func FromTransaction(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            t.ID.String(),
		Reference:     t.Reference,
		Type:          string(t.Type),
		Status:        string(t.Status),
		Amount:        t.Amount.String(),
		Fee:           t.Fee.String(),
		Currency:      t.Currency,
		Description:   t.Description,
		FailureReason: t.FailureReason,
		CreatedAt:     t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if t.SourceWalletID != nil {
		s := t.SourceWalletID.String()
		resp.SourceWalletID = &s
	}
	if t.DestinationWalletID != nil {
		d := t.DestinationWalletID.String()
		resp.DestinationWalletID = &d
	}
	if t.CompletedAt != nil {
		c := t.CompletedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		resp.CompletedAt = &c
	}
	return resp
}
