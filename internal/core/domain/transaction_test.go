package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_IsTerminal(t *testing.T) {
	tests := []struct {
		status TransactionStatus
		want   bool
	}{
		{TransactionStatusPending, false},
		{TransactionStatusProcessing, false},
		{TransactionStatusSuccess, true},
		{TransactionStatusFailed, true},
		{TransactionStatusReversed, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			txn := &Transaction{Status: tt.status}
			assert.Equal(t, tt.want, txn.IsTerminal())
		})
	}
}

func TestTransaction_IsReversible(t *testing.T) {
	assert.True(t, (&Transaction{Type: TransactionTypeTransfer, Status: TransactionStatusSuccess}).IsReversible())
	assert.True(t, (&Transaction{Type: TransactionTypeDeposit, Status: TransactionStatusSuccess}).IsReversible())

	// Only SUCCESS transactions can be reversed, and never a reversal itself.
	assert.False(t, (&Transaction{Type: TransactionTypeTransfer, Status: TransactionStatusFailed}).IsReversible())
	assert.False(t, (&Transaction{Type: TransactionTypeTransfer, Status: TransactionStatusReversed}).IsReversible())
	assert.False(t, (&Transaction{Type: TransactionTypeReversal, Status: TransactionStatusSuccess}).IsReversible())
}
