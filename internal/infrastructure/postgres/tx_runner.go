package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tagihan-api/internal/application/billing"
	"github.com/jhoicas/tagihan-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.CustomerTxRunner.
var _ billing.CustomerTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCustomers inicia una transacción, ejecuta fn con un repo atado a la tx (las lecturas
// por ID bloquean la fila) y hace Commit o Rollback.
func (r *TxRunner) RunCustomers(ctx context.Context, fn func(repo repository.CustomerRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newLockingCustomerRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
