package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Transactor hands out database transactions to the money-movement services,
// which own commit and rollback themselves. It implements ports.DBTransactor.
type Transactor struct {
	pool Pool
}

func NewTransactor(pool Pool) *Transactor {
	return &Transactor{pool: pool}
}

// Begin opens a transaction on the underlying pool.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return t.pool.Begin(ctx)
}
