package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sahil-erp/internal/application/actor"
	"github.com/jhoicas/sahil-erp/internal/application/auth"
	"github.com/jhoicas/sahil-erp/internal/application/billing"
	"github.com/jhoicas/sahil-erp/internal/application/bootstrap"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/queries"
	"github.com/jhoicas/sahil-erp/internal/application/query"
	"github.com/jhoicas/sahil-erp/internal/application/reports"
	"github.com/jhoicas/sahil-erp/internal/application/session"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/export"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/memory"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/redisstore"
	apphttp "github.com/jhoicas/sahil-erp/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "sahil-erp-test"
	testPassword  = "supersecret"
)

// testServer app completa sobre el backend en memoria.
type testServer struct {
	app   *fiber.App
	store *memory.Store
}

// buildTestApp construye la aplicación con las mismas rutas que main. Las lecturas
// quedan siempre vencidas para que cada petición vea el estado actual del backend.
func buildTestApp(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	log := zerolog.Nop()
	mgr := session.NewManager(func(_ context.Context, id actor.Identity) (backend.Backend, error) {
		return store.For(id.Principal), nil
	}, polling.NewTable(polling.GatingPerModule, polling.DefaultRules()), queries.Config{
		Tiers: query.Tiers{Short: time.Nanosecond, Medium: time.Nanosecond, Long: time.Nanosecond},
	}, log)
	t.Cleanup(mgr.CloseAll)

	authUC := auth.NewAuthUseCase(memory.NewIdentities(), redisstore.NewMemoryStore(), mgr,
		auth.JWTConfig{Secret: testJWTSecret, TTL: time.Hour, Issuer: testIssuer}, log)
	gen := pdf.NewMarotoPDFGenerator(pdf.Issuer{})

	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		Shell:         bootstrap.NewShell([]string{"second@sahil.in"}, log),
		CreateInvoice: billing.NewCreateInvoiceUseCase(log),
		InvoicePDF:    billing.NewPDFUseCase(gen),
		Summary:       reports.NewSummaryUseCase(),
		Replenishment: reports.NewReplenishmentUseCase(),
		Export:        reports.NewExportUseCase(export.NewXLSXWriter(), export.NewCSVWriter()),
		Labels:        reports.NewLabelUseCase(gen),
	})
	return &testServer{app: app, store: store}
}

// doRequest lanza una petición con body JSON opcional y token opcional.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode lee el body JSON de la respuesta en un mapa.
func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// login registra la identidad y devuelve su token y principal.
func (s *testServer) login(t *testing.T, email string) (token, principal string) {
	t.Helper()
	resp := doRequest(t, s.app, http.MethodPost, "/api/auth/register", "", fiber.Map{"email": email, "password": testPassword})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	principal = decode(t, resp)["principal"].(string)

	resp = doRequest(t, s.app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token = decode(t, resp)["token"].(string)
	return token, principal
}

// saveProfile crea el perfil y devuelve el estado resultante.
func (s *testServer) saveProfile(t *testing.T, token, name string) map[string]any {
	t.Helper()
	resp := doRequest(t, s.app, http.MethodPut, "/api/profile", token, fiber.Map{"name": name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode(t, resp)
}

// admin primer usuario del sistema: queda como admin activo.
func (s *testServer) admin(t *testing.T) (token, principal string) {
	t.Helper()
	token, principal = s.login(t, "owner@sahil.in")
	st := s.saveProfile(t, token, "Owner")
	require.Equal(t, "active", st["state"])
	return token, principal
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinToken(t *testing.T) {
	s := buildTestApp(t)
	resp := doRequest(t, s.app, http.MethodGet, "/api/bootstrap", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", decode(t, resp)["code"])
}

// Caso 2: formato distinto de "Bearer <token>" → 401 INVALID_TOKEN.
func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	s := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/bootstrap", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode(t, resp)["code"])
}

// Caso 3: token firmado con otro secreto o basura → 401.
func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	s := buildTestApp(t)
	resp := doRequest(t, s.app, http.MethodGet, "/api/bootstrap", "no-es-un-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", decode(t, resp)["code"])
}

// Caso 4: tras logout el mismo token deja de servir.
func TestAuthMiddleware_LogoutRevocaSesion(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.login(t, "a@sahil.in")

	resp := doRequest(t, s.app, http.MethodGet, "/api/bootstrap", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/bootstrap", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de auth pública
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_ValidacionYDuplicado(t *testing.T) {
	s := buildTestApp(t)

	resp := doRequest(t, s.app, http.MethodPost, "/api/auth/register", "", fiber.Map{"email": "no-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.Contains(t, body["message"], "email: email")
	assert.Contains(t, body["message"], "password: min=8")

	s.login(t, "dup@sahil.in")
	resp = doRequest(t, s.app, http.MethodPost, "/api/auth/register", "", fiber.Map{"email": "dup@sahil.in", "password": testPassword})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", decode(t, resp)["code"])
}

func TestLogin_CredencialesInvalidasYEstado(t *testing.T) {
	s := buildTestApp(t)
	s.login(t, "b@sahil.in")

	resp := doRequest(t, s.app, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "b@sahil.in", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/auth/status?email=b@sahil.in", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, auth.StatusError, decode(t, resp)["status"])

	resp = doRequest(t, s.app, http.MethodGet, "/api/auth/status", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
