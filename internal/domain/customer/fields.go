// Package customer contiene el núcleo del formulario de clientes: campos de trabajo,
// validación y la sesión de edición que reconcilia los modos CREATE y EDIT.
// No depende de la capa de persistencia ni de HTTP.
package customer

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jhoicas/tagihan-api/internal/domain/entity"
)

// Field identifica un campo editable del formulario.
type Field string

const (
	FieldName           Field = "name"
	FieldBaseBill       Field = "baseBill"
	FieldWhatsappNumber Field = "whatsappNumber"
	FieldDueDateDay     Field = "dueDateDay"
)

// ErrUnknownField se devuelve al intentar editar un campo que no existe.
var ErrUnknownField = errors.New("campo desconocido")

// WorkingFields representación en texto de un cliente mientras se edita.
type WorkingFields struct {
	Name           string
	BaseBill       string
	WhatsappNumber string
	DueDateDay     string
}

// Set actualiza un único campo.
func (w *WorkingFields) Set(field Field, value string) error {
	switch field {
	case FieldName:
		w.Name = value
	case FieldBaseBill:
		w.BaseBill = value
	case FieldWhatsappNumber:
		w.WhatsappNumber = value
	case FieldDueDateDay:
		w.DueDateDay = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Get devuelve el valor actual de un campo.
func (w WorkingFields) Get(field Field) (string, error) {
	switch field {
	case FieldName:
		return w.Name, nil
	case FieldBaseBill:
		return w.BaseBill, nil
	case FieldWhatsappNumber:
		return w.WhatsappNumber, nil
	case FieldDueDateDay:
		return w.DueDateDay, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Seed calcula los campos de trabajo para un subject (nil = alta nueva).
// Con la sesión cerrada o sin subject todos los campos quedan vacíos.
func Seed(subject *entity.Customer, open bool) WorkingFields {
	if subject == nil || !open {
		return WorkingFields{}
	}
	return WorkingFields{
		Name:           subject.Name,
		BaseBill:       strconv.FormatInt(subject.BaseBill, 10),
		WhatsappNumber: subject.WhatsappNumber, // texto ausente ya es ""
		DueDateDay:     strconv.Itoa(subject.DueDateDay),
	}
}
