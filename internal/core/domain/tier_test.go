package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTierByName(t *testing.T) {
	assert.Equal(t, Tier1, TierByName("TIER_1"))
	assert.Equal(t, Tier2, TierByName("TIER_2"))
	assert.Equal(t, Tier3, TierByName("TIER_3"))
	assert.Equal(t, TierNone, TierByName("NONE"))
	// Unknown names fall back to the most restrictive tier.
	assert.Equal(t, TierNone, TierByName("TIER_99"))
	assert.Equal(t, TierNone, TierByName(""))
}

func TestKycTier_CheckLimit(t *testing.T) {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	tests := []struct {
		name    string
		tier    KycTier
		amount  decimal.Decimal
		spent   decimal.Decimal
		wantErr error
	}{
		{"within limits", Tier1, d("100"), d("0"), nil},
		{"exactly at per-transaction limit", Tier1, d("50000"), d("0"), nil},
		{"one cent over per-transaction limit", Tier1, d("50000.01"), d("0"), ErrPerTransactionLimitExceeded},
		{"exactly at daily limit", Tier1, d("50000"), d("150000"), nil},
		{"one cent over daily limit", Tier1, d("10000"), d("190000.01"), ErrDailyLimitExceeded},
		{"unverified per-transaction cap", TierNone, d("10000.01"), d("0"), ErrPerTransactionLimitExceeded},
		{"unlimited tier ignores amounts", Tier3, d("999999999"), d("999999999"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tier.CheckLimit(tt.amount, tt.spent)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
