package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tagihan-api/internal/application/auth"
	"github.com/jhoicas/tagihan-api/internal/application/billing"
	"github.com/jhoicas/tagihan-api/internal/application/dto"
	"github.com/jhoicas/tagihan-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/tagihan-api/internal/interfaces/http"
)

// buildApp arma la API completa sobre el store en memoria.
func buildApp(t *testing.T) *fiber.App {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := memory.NewCustomerRepository()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC: billing.NewCustomerUseCase(repo, memory.NewTxRunner(repo), zerolog.Nop()),
		AuthUC: auth.NewAuthUseCase(
			auth.Operator{Email: testOperator, PasswordHash: string(hash)},
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
		),
		JWTSecret: testJWTSecret,
		Log:       zerolog.Nop(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

const budiBody = `{"name":"Budi","base_bill":"150000","due_date_day":"20","whatsapp_number":"6281234"}`

func TestLogin_YAccesoProtegido(t *testing.T) {
	app := buildApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", `{"email":"admin@roster.test","password":"rahasia123"}`, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.LoginResponse](t, resp)
	require.NotEmpty(t, login.Token)

	resp = doJSON(t, app, http.MethodGet, "/api/customers", "", "Bearer "+login.Token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := buildApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", `{"email":"admin@roster.test","password":"salah"}`, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCustomers_SinToken(t *testing.T) {
	app := buildApp(t)
	resp := doJSON(t, app, http.MethodGet, "/api/customers", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreate_EscenarioBudi(t *testing.T) {
	app := buildApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/customers", budiBody, bearer(t))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	out := decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Budi", out.Name)
	assert.Equal(t, int64(150000), out.BaseBill)
	assert.Equal(t, 20, out.DueDateDay)
	assert.Equal(t, "6281234", out.WhatsappNumber)
	assert.Empty(t, out.Bills)
}

func TestCreate_Rechazos(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  string
		field string
	}{
		{"nombre vacío", `{"name":"","base_bill":"100000","due_date_day":"10"}`, "MISSING_REQUIRED_FIELD", "name"},
		{"día fuera de rango", `{"name":"Ani","base_bill":"50000","due_date_day":"35"}`, "DUE_DATE_OUT_OF_RANGE", "due_date_day"},
		{"cobro no numérico", `{"name":"Ani","base_bill":"lima puluh","due_date_day":"5"}`, "NOT_A_NUMBER", "base_bill"},
		{"cobro cero", `{"name":"Ani","base_bill":"0","due_date_day":"5"}`, "BASE_BILL_NOT_POSITIVE", "base_bill"},
	}
	app := buildApp(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/customers", tc.body, bearer(t))
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			errBody := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, tc.code, errBody.Code)
			assert.Equal(t, tc.field, errBody.Field)
		})
	}
}

func TestCreate_CuerpoInvalido(t *testing.T) {
	app := buildApp(t)
	resp := doJSON(t, app, http.MethodPost, "/api/customers", `{"name":`, bearer(t))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestForm_CreateYEdit(t *testing.T) {
	app := buildApp(t)
	tok := bearer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/customers/form", "", tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	form := decode[dto.CustomerFormResponse](t, resp)
	assert.Equal(t, "CREATE", form.Mode)
	assert.Equal(t, dto.WorkingFieldsResponse{}, form.Fields)

	resp = doJSON(t, app, http.MethodPost, "/api/customers", budiBody, tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/customers/1/form", "", tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	form = decode[dto.CustomerFormResponse](t, resp)
	assert.Equal(t, "EDIT", form.Mode)
	require.NotNil(t, form.TargetID)
	assert.Equal(t, int64(1), *form.TargetID)
	assert.Equal(t, "150000", form.Fields.BaseBill)
	assert.Equal(t, "20", form.Fields.DueDateDay)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/9/form", "", tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdate_ConservaCamposOmitidos(t *testing.T) {
	app := buildApp(t)
	tok := bearer(t)
	resp := doJSON(t, app, http.MethodPost, "/api/customers", budiBody, tok)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPut, "/api/customers/1", `{"name":"Budi Santoso","whatsapp_number":null}`, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Budi Santoso", out.Name)
	assert.Equal(t, "6281234", out.WhatsappNumber)
	assert.Equal(t, int64(150000), out.BaseBill)

	resp = doJSON(t, app, http.MethodPut, "/api/customers/1", `{"whatsapp_number":""}`, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, "", out.WhatsappNumber)
}

func TestUpdate_ErroresDeRuta(t *testing.T) {
	app := buildApp(t)
	tok := bearer(t)

	resp := doJSON(t, app, http.MethodPut, "/api/customers/7", budiBody, tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp2 := doJSON(t, app, http.MethodPut, "/api/customers/abc", budiBody, tok)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestGetYList(t *testing.T) {
	app := buildApp(t)
	tok := bearer(t)
	for _, name := range []string{"Citra", "Ani"} {
		body, err := json.Marshal(map[string]string{"name": name, "base_bill": "90000", "due_date_day": "1"})
		require.NoError(t, err)
		resp := doJSON(t, app, http.MethodPost, "/api/customers", string(body), tok)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, "/api/customers/2", "", tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.CustomerResponse](t, resp)
	assert.Equal(t, "Ani", got.Name)

	resp = doJSON(t, app, http.MethodGet, "/api/customers?limit=1", "", tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.CustomerListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Ani", list.Items[0].Name)
	assert.Equal(t, 1, list.Page.Limit)

	resp = doJSON(t, app, http.MethodGet, "/api/customers?q=cit", "", tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decode[dto.CustomerListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Citra", list.Items[0].Name)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/99", "", tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
