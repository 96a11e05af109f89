package dto

import "time"

// CustomerFormRequest body para POST /api/customers y PUT /api/customers/:id.
// Los valores llegan como texto tal cual los escribió el usuario. En PUT un campo
// ausente (o null) conserva el valor sembrado desde el cliente existente.
type CustomerFormRequest struct {
	Name           *string `json:"name"`
	BaseBill       *string `json:"base_bill"`
	WhatsappNumber *string `json:"whatsapp_number"`
	DueDateDay     *string `json:"due_date_day"`
}

// WorkingFieldsResponse campos de trabajo del formulario (texto).
type WorkingFieldsResponse struct {
	Name           string `json:"name"`
	BaseBill       string `json:"base_bill"`
	WhatsappNumber string `json:"whatsapp_number"`
	DueDateDay     string `json:"due_date_day"`
}

// CustomerFormResponse formulario sembrado para GET /api/customers/form y /api/customers/:id/form.
type CustomerFormResponse struct {
	Mode     string                `json:"mode"` // CREATE | EDIT
	TargetID *int64                `json:"target_id,omitempty"`
	Fields   WorkingFieldsResponse `json:"fields"`
}

// BillResponse factura mensual en respuestas. Fechas en formato YYYY-MM-DD.
type BillResponse struct {
	PaymentMonth string  `json:"payment_month"`
	Status       string  `json:"status"` // PAID | UNPAID
	PaymentDate  *string `json:"payment_date"`
	DueDate      string  `json:"due_date"`
	BaseBill     int64   `json:"base_bill"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	BaseBill       int64          `json:"base_bill"`
	WhatsappNumber string         `json:"whatsapp_number"`
	DueDateDay     int            `json:"due_date_day"`
	Bills          []BillResponse `json:"bills"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CustomerListResponse página de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
