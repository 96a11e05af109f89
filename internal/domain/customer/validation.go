package customer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/tagihan-api/internal/domain"
	"github.com/jhoicas/tagihan-api/internal/domain/entity"
)

// Causas de rechazo del formulario. Todas son corregibles por el usuario.
var (
	ErrMissingRequiredField = errors.New("nombre, cobro base y día de vencimiento son requeridos")
	ErrDueDateOutOfRange    = fmt.Errorf("el día de vencimiento debe estar entre %d y %d", entity.MinDueDateDay, entity.MaxDueDateDay)
	ErrNotANumber           = errors.New("el valor no es un número entero")
)

// ValidationError rechazo del formulario: la causa y el primer campo que la provocó.
// errors.Is funciona tanto con la causa como con domain.ErrInvalidInput.
type ValidationError struct {
	Field Field
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap expone la causa y el error genérico de entrada inválida.
func (e *ValidationError) Unwrap() []error {
	return []error{e.Err, domain.ErrInvalidInput}
}

func reject(field Field, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// Validate comprueba y normaliza los campos de trabajo. Orden fijo, gana el primer fallo:
// requeridos, día de vencimiento, cobro base. No valida el signo del cobro base.
func Validate(w WorkingFields) (entity.CustomerInput, error) {
	switch {
	case w.Name == "":
		return entity.CustomerInput{}, reject(FieldName, ErrMissingRequiredField)
	case w.BaseBill == "":
		return entity.CustomerInput{}, reject(FieldBaseBill, ErrMissingRequiredField)
	case w.DueDateDay == "":
		return entity.CustomerInput{}, reject(FieldDueDateDay, ErrMissingRequiredField)
	}

	day, err := parseInt(w.DueDateDay)
	if errors.Is(err, strconv.ErrRange) {
		return entity.CustomerInput{}, reject(FieldDueDateDay, ErrDueDateOutOfRange)
	}
	if err != nil {
		return entity.CustomerInput{}, reject(FieldDueDateDay, ErrNotANumber)
	}
	if day < entity.MinDueDateDay || day > entity.MaxDueDateDay {
		return entity.CustomerInput{}, reject(FieldDueDateDay, ErrDueDateOutOfRange)
	}

	baseBill, err := parseInt(w.BaseBill)
	if err != nil {
		return entity.CustomerInput{}, reject(FieldBaseBill, ErrNotANumber)
	}

	return entity.CustomerInput{
		Name:           w.Name,
		BaseBill:       baseBill,
		WhatsappNumber: w.WhatsappNumber,
		DueDateDay:     int(day),
	}, nil
}

// parseInt entero base 10 estricto; solo ignora espacios alrededor.
func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
