package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountStatus mirrors the owning platform's user state.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// Account is the read-only projection the core needs from the account/KYC
// provider: identity, current tier and status. Tier transitions are managed
// elsewhere.
type Account struct {
	ID        uuid.UUID     `json:"id"`
	KycTier   string        `json:"kyc_tier"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Tier resolves the account's tier policy.
func (a *Account) Tier() KycTier {
	return TierByName(a.KycTier)
}
