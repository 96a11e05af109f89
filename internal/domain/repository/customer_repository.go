package repository

import (
	"context"

	"github.com/jhoicas/tagihan-api/internal/domain/entity"
)

// CustomerFilter filtros de listado. Query filtra por nombre (sin distinguir mayúsculas).
type CustomerFilter struct {
	Query  string
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia del roster.
// Create asigna ID y deja Bills vacío; Update nunca toca ID ni Bills.
// GetByID devuelve (nil, nil) si el cliente no existe.
type CustomerRepository interface {
	Create(ctx context.Context, in entity.CustomerInput) (*entity.Customer, error)
	Update(ctx context.Context, id int64, in entity.CustomerInput) (*entity.Customer, error)
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	List(ctx context.Context, f CustomerFilter) ([]*entity.Customer, error)
}
