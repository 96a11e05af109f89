package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tagihan-api/internal/application/billing"
	"github.com/jhoicas/tagihan-api/internal/application/dto"
	"github.com/jhoicas/tagihan-api/internal/domain"
	"github.com/jhoicas/tagihan-api/internal/domain/customer"
)

// formFieldNames nombre JSON de cada campo del formulario.
var formFieldNames = map[customer.Field]string{
	customer.FieldName:           "name",
	customer.FieldBaseBill:       "base_bill",
	customer.FieldWhatsappNumber: "whatsapp_number",
	customer.FieldDueDateDay:     "due_date_day",
}

// CustomerHandler maneja las peticiones HTTP del roster (protegido).
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Alta de cliente (modo CREATE)
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerFormRequest  true  "campos del formulario en texto"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerFormRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeCustomerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Edición de cliente (modo EDIT); los campos omitidos conservan su valor
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del cliente"
// @Param        body  body  dto.CustomerFormRequest  true  "campos editados"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	var in dto.CustomerFormRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeCustomerError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeCustomerError(c, err)
	}
	return c.JSON(out)
}

// List GET /api/customers?q=&limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.UserContext(), c.Query("q"), page)
	if err != nil {
		return writeCustomerError(c, err)
	}
	return c.JSON(out)
}

// NewForm GET /api/customers/form: formulario vacío (modo CREATE).
func (h *CustomerHandler) NewForm(c *fiber.Ctx) error {
	out, err := h.uc.Form(c.UserContext(), nil)
	if err != nil {
		return writeCustomerError(c, err)
	}
	return c.JSON(out)
}

// EditForm GET /api/customers/:id/form: formulario sembrado desde el cliente (modo EDIT).
func (h *CustomerHandler) EditForm(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.uc.Form(c.UserContext(), &id)
	if err != nil {
		return writeCustomerError(c, err)
	}
	return c.JSON(out)
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeCustomerError traduce errores de dominio a respuestas HTTP.
func writeCustomerError(c *fiber.Ctx, err error) error {
	var verr *customer.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    validationCode(verr.Err),
			Message: verr.Err.Error(),
			Field:   formFieldNames[verr.Field],
		})
	case errors.Is(err, domain.ErrBaseBillNotPositive):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "BASE_BILL_NOT_POSITIVE",
			Message: domain.ErrBaseBillNotPositive.Error(),
			Field:   formFieldNames[customer.FieldBaseBill],
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func validationCode(cause error) string {
	switch {
	case errors.Is(cause, customer.ErrMissingRequiredField):
		return "MISSING_REQUIRED_FIELD"
	case errors.Is(cause, customer.ErrDueDateOutOfRange):
		return "DUE_DATE_OUT_OF_RANGE"
	case errors.Is(cause, customer.ErrNotANumber):
		return "NOT_A_NUMBER"
	}
	return "VALIDATION"
}
