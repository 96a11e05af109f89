package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tagihan-api/internal/application/dto"
	"github.com/jhoicas/tagihan-api/internal/domain"
	"github.com/jhoicas/tagihan-api/internal/domain/customer"
	"github.com/jhoicas/tagihan-api/internal/domain/entity"
	"github.com/jhoicas/tagihan-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// CustomerUseCase casos de uso del roster: formulario de alta/edición, consulta y listado.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	tx   CustomerTxRunner
	log  zerolog.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, tx CustomerTxRunner, log zerolog.Logger) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, tx: tx, log: log}
}

// Form devuelve los campos sembrados: id nil = CREATE, si no EDIT sobre ese cliente.
func (uc *CustomerUseCase) Form(ctx context.Context, id *int64) (*dto.CustomerFormResponse, error) {
	var subject *entity.Customer
	if id != nil {
		c, err := uc.repo.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrNotFound
		}
		subject = c
	}
	s := customer.NewSession()
	s.Open(subject)
	return toFormResponse(s), nil
}

// Create envía el formulario en modo CREATE. Los campos ausentes quedan vacíos.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerFormRequest) (*dto.CustomerResponse, error) {
	s := customer.NewSession()
	s.Open(nil)
	if err := applyForm(s, in); err != nil {
		return nil, err
	}
	var created *entity.Customer
	_, err := s.Submit(ctx, customer.SubmitFunc(func(ctx context.Context, input entity.CustomerInput, _ *int64) error {
		if err := checkBaseBill(input); err != nil {
			return err
		}
		c, err := uc.repo.Create(ctx, input)
		if err != nil {
			return err
		}
		created = c
		return nil
	}))
	if err != nil {
		uc.logRejected(err, customer.ModeCreate, nil)
		return nil, err
	}
	uc.log.Info().Int64("customer_id", created.ID).Msg("cliente creado")
	return toCustomerResponse(created), nil
}

// Update envía el formulario en modo EDIT sobre el cliente id. Los campos ausentes
// conservan el valor sembrado; ID y Bills no cambian.
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.CustomerFormRequest) (*dto.CustomerResponse, error) {
	var updated *entity.Customer
	err := uc.tx.RunCustomers(ctx, func(repo repository.CustomerRepository) error {
		subject, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if subject == nil {
			return domain.ErrNotFound
		}
		s := customer.NewSession()
		s.Open(subject)
		if err := applyForm(s, in); err != nil {
			return err
		}
		_, err = s.Submit(ctx, customer.SubmitFunc(func(ctx context.Context, input entity.CustomerInput, targetID *int64) error {
			if err := checkBaseBill(input); err != nil {
				return err
			}
			c, err := repo.Update(ctx, *targetID, input)
			if err != nil {
				return err
			}
			updated = c
			return nil
		}))
		return err
	})
	if err != nil {
		uc.logRejected(err, customer.ModeEdit, &id)
		return nil, err
	}
	uc.log.Info().Int64("customer_id", updated.ID).Msg("cliente actualizado")
	return toCustomerResponse(updated), nil
}

// Get obtiene un cliente con su historial.
func (uc *CustomerUseCase) Get(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// List lista clientes filtrando por nombre.
func (uc *CustomerUseCase) List(ctx context.Context, query string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.CustomerFilter{Query: query, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range list {
		out.Items = append(out.Items, *toCustomerResponse(c))
	}
	return out, nil
}

// checkBaseBill contrato del store: el validador acepta cualquier entero, el roster solo positivos.
func checkBaseBill(in entity.CustomerInput) error {
	if in.BaseBill <= 0 {
		return domain.ErrBaseBillNotPositive
	}
	return nil
}

func (uc *CustomerUseCase) logRejected(err error, mode customer.Mode, id *int64) {
	ev := uc.log.Debug()
	if !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrBaseBillNotPositive) && !errors.Is(err, domain.ErrNotFound) {
		ev = uc.log.Error()
	}
	if id != nil {
		ev = ev.Int64("customer_id", *id)
	}
	var verr *customer.ValidationError
	if errors.As(err, &verr) {
		ev = ev.Str("field", string(verr.Field))
	}
	ev.Err(err).Str("mode", string(mode)).Msg("envío de cliente rechazado")
}

func applyForm(s *customer.Session, in dto.CustomerFormRequest) error {
	for _, f := range []struct {
		field customer.Field
		value *string
	}{
		{customer.FieldName, in.Name},
		{customer.FieldBaseBill, in.BaseBill},
		{customer.FieldWhatsappNumber, in.WhatsappNumber},
		{customer.FieldDueDateDay, in.DueDateDay},
	} {
		if f.value == nil {
			continue
		}
		if err := s.Set(f.field, *f.value); err != nil {
			return fmt.Errorf("campo %s: %w", f.field, err)
		}
	}
	return nil
}

func toFormResponse(s *customer.Session) *dto.CustomerFormResponse {
	f := s.Fields()
	return &dto.CustomerFormResponse{
		Mode:     string(s.Mode()),
		TargetID: s.TargetID(),
		Fields: dto.WorkingFieldsResponse{
			Name:           f.Name,
			BaseBill:       f.BaseBill,
			WhatsappNumber: f.WhatsappNumber,
			DueDateDay:     f.DueDateDay,
		},
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	bills := make([]dto.BillResponse, 0, len(c.Bills))
	for _, b := range c.Bills {
		br := dto.BillResponse{
			PaymentMonth: b.PaymentMonth,
			Status:       string(b.Status),
			DueDate:      b.DueDate.Format(dateLayout),
			BaseBill:     b.BaseBill,
		}
		if b.PaymentDate != nil {
			paid := b.PaymentDate.Format(dateLayout)
			br.PaymentDate = &paid
		}
		bills = append(bills, br)
	}
	return &dto.CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		BaseBill:       c.BaseBill,
		WhatsappNumber: c.WhatsappNumber,
		DueDateDay:     c.DueDateDay,
		Bills:          bills,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
