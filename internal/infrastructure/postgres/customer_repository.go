package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tagihan-api/internal/domain"
	"github.com/jhoicas/tagihan-api/internal/domain/entity"
	"github.com/jhoicas/tagihan-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, base_bill, whatsapp_number, due_date_day, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q         Querier
	forUpdate bool
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// newLockingCustomerRepository bloquea la fila leída por GetByID hasta el fin de la tx.
func newLockingCustomerRepository(tx pgx.Tx) *CustomerRepo {
	return &CustomerRepo{q: tx, forUpdate: true}
}

// Create persiste un nuevo cliente; el ID lo asigna la secuencia.
func (r *CustomerRepo) Create(ctx context.Context, in entity.CustomerInput) (*entity.Customer, error) {
	query := `
		INSERT INTO customers (name, base_bill, whatsapp_number, due_date_day, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + customerColumns
	c, err := scanCustomer(r.q.QueryRow(ctx, query, in.Name, in.BaseBill, in.WhatsappNumber, in.DueDateDay, time.Now()))
	if err != nil {
		if isCheckViolation(err) {
			return nil, fmt.Errorf("insert customer: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	c.Bills = []entity.Bill{}
	return c, nil
}

// Update actualiza los campos editables. customer_bills no se toca.
func (r *CustomerRepo) Update(ctx context.Context, id int64, in entity.CustomerInput) (*entity.Customer, error) {
	query := `
		UPDATE customers SET name = $2, base_bill = $3, whatsapp_number = $4, due_date_day = $5, updated_at = $6
		WHERE id = $1
		RETURNING ` + customerColumns
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id, in.Name, in.BaseBill, in.WhatsappNumber, in.DueDateDay, time.Now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cliente %d: %w", id, domain.ErrNotFound)
		}
		if isCheckViolation(err) {
			return nil, fmt.Errorf("update customer: %w", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	if c.Bills, err = r.billsOf(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID obtiene un cliente con su historial. (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	if r.forUpdate {
		query += ` FOR UPDATE`
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if c.Bills, err = r.billsOf(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// List lista clientes por nombre con filtro opcional y paginación.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE ($1 = '' OR LOWER(name) LIKE '%' || LOWER($1) || '%')
		ORDER BY LOWER(name), id
		LIMIT $2 OFFSET $3`
	limit := any(nil)
	if f.Limit > 0 {
		limit = f.Limit
	}
	rows, err := r.q.Query(ctx, query, f.Query, limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	list := []*entity.Customer{}
	byID := make(map[int64]*entity.Customer)
	ids := []int64{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.Bills = []entity.Bill{}
		list = append(list, c)
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}

	billRows, err := r.q.Query(ctx, `
		SELECT customer_id, payment_month, status, payment_date, due_date, base_bill
		FROM customer_bills WHERE customer_id = ANY($1)
		ORDER BY customer_id, payment_month`, ids)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer billRows.Close()
	for billRows.Next() {
		var customerID int64
		b, err := scanBill(billRows, &customerID)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		if c, ok := byID[customerID]; ok {
			c.Bills = append(c.Bills, b)
		}
	}
	return list, billRows.Err()
}

func (r *CustomerRepo) billsOf(ctx context.Context, customerID int64) ([]entity.Bill, error) {
	rows, err := r.q.Query(ctx, `
		SELECT customer_id, payment_month, status, payment_date, due_date, base_bill
		FROM customer_bills WHERE customer_id = $1
		ORDER BY payment_month`, customerID)
	if err != nil {
		return nil, fmt.Errorf("get bills: %w", err)
	}
	defer rows.Close()
	bills := []entity.Bill{}
	for rows.Next() {
		var owner int64
		b, err := scanBill(rows, &owner)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.BaseBill, &c.WhatsappNumber, &c.DueDateDay, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanBill(row pgx.Row, customerID *int64) (entity.Bill, error) {
	var (
		b      entity.Bill
		status string
	)
	if err := row.Scan(customerID, &b.PaymentMonth, &status, &b.PaymentDate, &b.DueDate, &b.BaseBill); err != nil {
		return entity.Bill{}, err
	}
	b.Status = entity.BillStatus(status)
	return b, nil
}
