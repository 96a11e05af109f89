// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory (desarrollo) y en los tests de aplicación y HTTP.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/tagihan-api/internal/domain"
	"github.com/jhoicas/tagihan-api/internal/domain/entity"
	"github.com/jhoicas/tagihan-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo roster en memoria con IDs autoincrementales.
type CustomerRepo struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*entity.Customer
	now    func() time.Time
}

// NewCustomerRepository construye el store vacío.
func NewCustomerRepository() *CustomerRepo {
	return &CustomerRepo{
		nextID: 1,
		rows:   make(map[int64]*entity.Customer),
		now:    time.Now,
	}
}

// Create asigna ID y deja el historial vacío.
func (r *CustomerRepo) Create(_ context.Context, in entity.CustomerInput) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	c := &entity.Customer{
		ID:        r.nextID,
		Bills:     []entity.Bill{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Apply(in)
	r.rows[c.ID] = c
	r.nextID++
	return clone(c), nil
}

// Update sobrescribe los campos editables; ID y Bills se conservan.
func (r *CustomerRepo) Update(_ context.Context, id int64, in entity.CustomerInput) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	c.Apply(in)
	c.UpdatedAt = r.now()
	return clone(c), nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return clone(c), nil
}

// List filtra por nombre y ordena con la collation indonesia.
func (r *CustomerRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(f.Query))
	r.mu.RLock()
	list := make([]*entity.Customer, 0, len(r.rows))
	for _, c := range r.rows {
		if q != "" && !strings.Contains(fold.String(c.Name), q) {
			continue
		}
		list = append(list, clone(c))
	}
	r.mu.RUnlock()

	col := collate.New(language.Indonesian, collate.IgnoreCase)
	sort.SliceStable(list, func(i, j int) bool {
		if cmp := col.CompareString(list[i].Name, list[j].Name); cmp != 0 {
			return cmp < 0
		}
		return list[i].ID < list[j].ID
	})

	if f.Offset >= len(list) {
		return []*entity.Customer{}, nil
	}
	list = list[f.Offset:]
	if f.Limit > 0 && f.Limit < len(list) {
		list = list[:f.Limit]
	}
	return list, nil
}

// AddBill agrega un periodo al historial. Pertenece a la capa de facturación, no al
// formulario; se usa para cargar datos de desarrollo y en tests.
func (r *CustomerRepo) AddBill(id int64, b entity.Bill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
	}
	if !b.Status.Valid() {
		return fmt.Errorf("estado de factura %q: %w", b.Status, domain.ErrInvalidInput)
	}
	for _, existing := range c.Bills {
		if existing.PaymentMonth == b.PaymentMonth {
			return fmt.Errorf("periodo %s: %w", b.PaymentMonth, domain.ErrConflict)
		}
	}
	c.Bills = append(c.Bills, b)
	return nil
}

func clone(c *entity.Customer) *entity.Customer {
	out := *c
	out.Bills = make([]entity.Bill, len(c.Bills))
	copy(out.Bills, c.Bills)
	return &out
}
