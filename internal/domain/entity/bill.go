package entity

import "time"

// PaymentMonthLayout formato del periodo de facturación (año-mes).
const PaymentMonthLayout = "2006-01"

// BillStatus estado de pago de una factura mensual. Solo dos estados.
type BillStatus string

const (
	BillStatusPaid   BillStatus = "PAID"
	BillStatusUnpaid BillStatus = "UNPAID"
)

// Valid indica si el estado pertenece al enum.
func (s BillStatus) Valid() bool {
	return s == BillStatusPaid || s == BillStatusUnpaid
}

// Bill registro de un periodo. BaseBill se captura por factura para que el historial
// sobreviva a cambios posteriores en el cobro base del cliente.
type Bill struct {
	PaymentMonth string
	Status       BillStatus
	PaymentDate  *time.Time // nil mientras no esté pagada
	DueDate      time.Time
	BaseBill     int64
}

// IsPaid reporta si la factura está liquidada.
func (b Bill) IsPaid() bool {
	return b.Status == BillStatusPaid
}
