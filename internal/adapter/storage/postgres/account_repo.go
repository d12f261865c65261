package postgres

import (
	"context"
	"errors"
	"fmt"

	"custodial-wallet/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository. Accounts and KYC tiers are
// owned by the onboarding system; this module only reads them.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

// GetByID fetches an account by its UUID.
func (r *AccountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, kyc_tier, status, created_at FROM accounts WHERE id = $1`

	a := &domain.Account{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.KycTier, &a.Status, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account by id: %w", err)
	}
	return a, nil
}
