package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tagihan-api/internal/application/billing"
	"github.com/jhoicas/tagihan-api/internal/application/dto"
	"github.com/jhoicas/tagihan-api/internal/domain"
	"github.com/jhoicas/tagihan-api/internal/domain/customer"
	"github.com/jhoicas/tagihan-api/internal/domain/entity"
	"github.com/jhoicas/tagihan-api/internal/domain/repository"
	"github.com/jhoicas/tagihan-api/internal/infrastructure/memory"
)

func str(s string) *string { return &s }

func newUseCase() (*billing.CustomerUseCase, *memory.CustomerRepo) {
	repo := memory.NewCustomerRepository()
	return billing.NewCustomerUseCase(repo, memory.NewTxRunner(repo), zerolog.Nop()), repo
}

func budiForm() dto.CustomerFormRequest {
	return dto.CustomerFormRequest{
		Name:           str("Budi"),
		BaseBill:       str("150000"),
		WhatsappNumber: str("6281234"),
		DueDateDay:     str("20"),
	}
}

func TestCreate_Aceptado(t *testing.T) {
	uc, _ := newUseCase()
	out, err := uc.Create(context.Background(), budiForm())
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Budi", out.Name)
	assert.Equal(t, int64(150000), out.BaseBill)
	assert.Equal(t, 20, out.DueDateDay)
	assert.Equal(t, "6281234", out.WhatsappNumber)
	assert.NotNil(t, out.Bills)
	assert.Empty(t, out.Bills)
}

func TestCreate_CamposAusentesSonVacios(t *testing.T) {
	uc, repo := newUseCase()
	form := budiForm()
	form.Name = nil

	_, err := uc.Create(context.Background(), form)
	assert.ErrorIs(t, err, customer.ErrMissingRequiredField)

	list, err := repo.List(context.Background(), repository.CustomerFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "un rechazo no llega al store")
}

func TestCreate_CobroBaseNoPositivo(t *testing.T) {
	uc, _ := newUseCase()
	for _, v := range []string{"0", "-100"} {
		form := budiForm()
		form.BaseBill = str(v)
		_, err := uc.Create(context.Background(), form)
		assert.ErrorIs(t, err, domain.ErrBaseBillNotPositive, "cobro %s", v)
	}
}

func TestCreate_DiaFueraDeRango(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Create(context.Background(), dto.CustomerFormRequest{
		Name: str("Ani"), BaseBill: str("50000"), DueDateDay: str("35"),
	})
	assert.ErrorIs(t, err, customer.ErrDueDateOutOfRange)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestForm_CreateYEdit(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	form, err := uc.Form(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "CREATE", form.Mode)
	assert.Nil(t, form.TargetID)
	assert.Equal(t, dto.WorkingFieldsResponse{}, form.Fields)

	created, err := uc.Create(ctx, budiForm())
	require.NoError(t, err)

	form, err = uc.Form(ctx, &created.ID)
	require.NoError(t, err)
	assert.Equal(t, "EDIT", form.Mode)
	require.NotNil(t, form.TargetID)
	assert.Equal(t, created.ID, *form.TargetID)
	assert.Equal(t, dto.WorkingFieldsResponse{
		Name: "Budi", BaseBill: "150000", WhatsappNumber: "6281234", DueDateDay: "20",
	}, form.Fields)

	missing := int64(99)
	_, err = uc.Form(ctx, &missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Editar sin enviar el WhatsApp conserva el valor sembrado; el historial no cambia.
func TestUpdate_CamposOmitidosConservanSembrado(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, budiForm())
	require.NoError(t, err)
	require.NoError(t, repo.AddBill(created.ID, entity.Bill{
		PaymentMonth: "2024-05",
		Status:       entity.BillStatusUnpaid,
		DueDate:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		BaseBill:     150000,
	}))

	out, err := uc.Update(ctx, created.ID, dto.CustomerFormRequest{BaseBill: str("175000")})
	require.NoError(t, err)

	assert.Equal(t, created.ID, out.ID)
	assert.Equal(t, "6281234", out.WhatsappNumber)
	assert.Equal(t, int64(175000), out.BaseBill)
	require.Len(t, out.Bills, 1)
	assert.Equal(t, int64(150000), out.Bills[0].BaseBill)
	assert.Equal(t, "2024-05-20", out.Bills[0].DueDate)
	assert.Nil(t, out.Bills[0].PaymentDate)
}

func TestUpdate_WhatsappBorradoExplicitamente(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, budiForm())
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.CustomerFormRequest{WhatsappNumber: str("")})
	require.NoError(t, err)
	assert.Equal(t, "", out.WhatsappNumber)
}

func TestUpdate_RechazoNoModifica(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, budiForm())
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.CustomerFormRequest{DueDateDay: str("0")})
	assert.ErrorIs(t, err, customer.ErrDueDateOutOfRange)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.DueDateDay)
}

func TestUpdate_NoExiste(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Update(context.Background(), 7, budiForm())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_PaginacionPorDefecto(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	for _, n := range []string{"Citra", "Ani", "Budi"} {
		form := budiForm()
		form.Name = str(n)
		_, err := uc.Create(ctx, form)
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Page.Limit)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "Ani", out.Items[0].Name)

	out, err = uc.List(ctx, "cit", dto.PageRequest{Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Page.Limit)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Citra", out.Items[0].Name)
}
