package billing

import (
	"context"

	"github.com/jhoicas/tagihan-api/internal/domain/repository"
)

// CustomerTxRunner ejecuta una función dentro de una transacción con el repo de clientes.
// Se usa en la edición para que la lectura del subject y la escritura sean consistentes.
type CustomerTxRunner interface {
	RunCustomers(ctx context.Context, fn func(repo repository.CustomerRepository) error) error
}
