package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Limit check failures. Both are rejected before any wallet lock is taken.
var (
	ErrPerTransactionLimitExceeded = errors.New("per-transaction limit exceeded")
	ErrDailyLimitExceeded          = errors.New("daily transaction limit exceeded")
)

// KycTier classifies an account's verification level. Each tier bounds the
// value of a single transaction and the rolling wall-clock-day total. Nil
// limits are only legal on the unlimited top tier.
type KycTier struct {
	Name                  string
	PerTransactionLimit   *decimal.Decimal
	DailyTransactionLimit *decimal.Decimal
	Unlimited             bool
}

var (
	TierNone = KycTier{
		Name:                  "NONE",
		PerTransactionLimit:   dec(10_000),
		DailyTransactionLimit: dec(50_000),
	}
	Tier1 = KycTier{
		Name:                  "TIER_1",
		PerTransactionLimit:   dec(50_000),
		DailyTransactionLimit: dec(200_000),
	}
	Tier2 = KycTier{
		Name:                  "TIER_2",
		PerTransactionLimit:   dec(500_000),
		DailyTransactionLimit: dec(2_000_000),
	}
	Tier3 = KycTier{
		Name:      "TIER_3",
		Unlimited: true,
	}
)

// TierByName resolves a stored tier name to its policy. Unknown names fall
// back to the most restrictive tier.
func TierByName(name string) KycTier {
	switch name {
	case Tier1.Name:
		return Tier1
	case Tier2.Name:
		return Tier2
	case Tier3.Name:
		return Tier3
	default:
		return TierNone
	}
}

// CheckLimit validates a requested amount against the tier's caps given the
// account's already-spent total for the current day. Pure; evaluated by the
// orchestrator before locks are acquired.
func (t KycTier) CheckLimit(amount, spentToday decimal.Decimal) error {
	if t.Unlimited {
		return nil
	}
	if t.PerTransactionLimit != nil && amount.GreaterThan(*t.PerTransactionLimit) {
		return ErrPerTransactionLimitExceeded
	}
	if t.DailyTransactionLimit != nil && spentToday.Add(amount).GreaterThan(*t.DailyTransactionLimit) {
		return ErrDailyLimitExceeded
	}
	return nil
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
