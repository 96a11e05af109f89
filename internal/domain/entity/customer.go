package entity

import (
	"fmt"
	"time"
)

// MinDueDateDay y MaxDueDateDay delimitan el día de vencimiento mensual.
const (
	MinDueDateDay = 1
	MaxDueDateDay = 31
)

// Customer representa un cliente del roster con su cobro mensual recurrente.
// ID lo asigna el store; Bills pertenece exclusivamente al cliente.
type Customer struct {
	ID             int64
	Name           string
	BaseBill       int64 // unidad mínima de moneda (rupiah)
	WhatsappNumber string
	DueDateDay     int
	Bills          []Bill
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CustomerInput es la salida validada del formulario: todo lo necesario para crear o
// actualizar un Customer salvo ID y Bills.
type CustomerInput struct {
	Name           string
	BaseBill       int64
	WhatsappNumber string
	DueDateDay     int
}

// Apply copia los campos editables sobre el cliente. ID y Bills no se tocan.
func (c *Customer) Apply(in CustomerInput) {
	c.Name = in.Name
	c.BaseBill = in.BaseBill
	c.WhatsappNumber = in.WhatsappNumber
	c.DueDateDay = in.DueDateDay
}

// DueDateFor calcula el vencimiento del periodo "YYYY-MM" para el día dado.
// Si el mes es más corto que day, vence el último día del mes.
func DueDateFor(period string, day int) (time.Time, error) {
	if day < MinDueDateDay || day > MaxDueDateDay {
		return time.Time{}, fmt.Errorf("día de vencimiento fuera de rango: %d", day)
	}
	start, err := time.Parse(PaymentMonthLayout, period)
	if err != nil {
		return time.Time{}, fmt.Errorf("periodo inválido %q: %w", period, err)
	}
	last := start.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(start.Year(), start.Month(), day, 0, 0, 0, 0, time.UTC), nil
}
