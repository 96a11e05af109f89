package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/tagihan-api/internal/domain/repository"
)

// TxRunner serializa los callbacks sobre el repo en memoria. No hay rollback:
// el caso de uso solo escribe como último paso del callback.
type TxRunner struct {
	mu   sync.Mutex
	repo *CustomerRepo
}

// NewTxRunner construye el runner sobre el repo dado.
func NewTxRunner(repo *CustomerRepo) *TxRunner {
	return &TxRunner{repo: repo}
}

// RunCustomers ejecuta fn con exclusión mutua respecto a otros callbacks.
func (r *TxRunner) RunCustomers(_ context.Context, fn func(repo repository.CustomerRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.repo)
}
