package http_test

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sahil-erp/internal/domain"
)

// ─── Bootstrap y aprobaciones ─────────────────────────────────────────────────

// El primer perfil queda como admin activo; el segundo espera aprobación y no
// entra al dashboard hasta que el admin lo aprueba.
func TestBootstrap_FlujoDeAprobacion(t *testing.T) {
	s := buildTestApp(t)
	adminToken, _ := s.login(t, "owner@sahil.in")

	resp := doRequest(t, s.app, http.MethodGet, "/api/bootstrap", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "profileRequired", decode(t, resp)["state"])

	st := s.saveProfile(t, adminToken, "Owner")
	assert.Equal(t, "active", st["state"])
	access := st["access"].(map[string]any)
	assert.Equal(t, true, access["is_admin"])
	assert.Equal(t, true, access["can_manage_users"])
	assert.Len(t, access["modules"], 8)

	userToken, userPrincipal := s.login(t, "staff@sahil.in")
	st = s.saveProfile(t, userToken, "Staff")
	assert.Equal(t, "approvalPending", st["state"])

	resp = doRequest(t, s.app, http.MethodGet, "/api/dashboard/stats", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "NOT_ACTIVE", body["code"])
	assert.Equal(t, "approvalPending", body["state"])

	resp = doRequest(t, s.app, http.MethodPut, "/api/users/"+userPrincipal+"/approval", adminToken, fiber.Map{"status": "approved"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/dashboard/stats", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// Un usuario rechazado con perfil ve el estado rejected.
func TestBootstrap_Rechazado(t *testing.T) {
	s := buildTestApp(t)
	adminToken, _ := s.admin(t)
	userToken, userPrincipal := s.login(t, "staff@sahil.in")
	s.saveProfile(t, userToken, "Staff")

	resp := doRequest(t, s.app, http.MethodPut, "/api/users/"+userPrincipal+"/approval", adminToken, fiber.Map{"status": "rejected"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/bootstrap", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rejected", decode(t, resp)["state"])
}

// Un fallo de red en el bootstrap se informa como estado error con su clasificación,
// y las rutas del dashboard responden 503.
func TestBootstrap_ErrorDeRed(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)

	s.store.FailNext("GetBootstrapState", domain.ErrNetwork)
	resp := doRequest(t, s.app, http.MethodGet, "/api/bootstrap", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "error", body["state"])
	assert.Equal(t, "NETWORK", body["error"].(map[string]any)["code"])

	s.store.FailNext("GetBootstrapState", domain.ErrNetwork)
	resp = doRequest(t, s.app, http.MethodGet, "/api/products", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}

func TestBootstrap_RetryTrasError(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)

	s.store.FailNext("GetBootstrapState", domain.ErrNetwork)
	resp := doRequest(t, s.app, http.MethodGet, "/api/bootstrap", token, nil)
	require.Equal(t, "error", decode(t, resp)["state"])

	resp = doRequest(t, s.app, http.MethodPost, "/api/bootstrap/retry", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "active", decode(t, resp)["state"])
}

func TestProfileAccess_BanderasDelUsuario(t *testing.T) {
	s := buildTestApp(t)
	adminToken, _ := s.admin(t)
	resp := doRequest(t, s.app, http.MethodGet, "/api/profile/access", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["is_admin"])
	assert.Equal(t, true, body["is_approved"])

	userToken, _ := s.login(t, "staff@sahil.in")
	s.saveProfile(t, userToken, "Staff")
	resp = doRequest(t, s.app, http.MethodGet, "/api/profile/access", userToken, nil)
	body = decode(t, resp)
	assert.Equal(t, false, body["is_admin"])
	assert.Equal(t, false, body["is_approved"])
}

func TestSaveProfile_Validacion(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.login(t, "a@sahil.in")
	resp := doRequest(t, s.app, http.MethodPut, "/api/profile", token, fiber.Map{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode(t, resp)["code"])
}

// ─── Acceso por módulo ────────────────────────────────────────────────────────

func TestModuleAccess_RolDefineModulos(t *testing.T) {
	s := buildTestApp(t)
	adminToken, adminPrincipal := s.admin(t)
	userToken, userPrincipal := s.login(t, "staff@sahil.in")
	s.saveProfile(t, userToken, "Staff")
	resp := doRequest(t, s.app, http.MethodPut, "/api/users/"+userPrincipal+"/approval", adminToken, fiber.Map{"status": "approved"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Rol "user": sólo dashboard.
	resp = doRequest(t, s.app, http.MethodGet, "/api/orders", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MODULE_FORBIDDEN", decode(t, resp)["code"])

	resp = doRequest(t, s.app, http.MethodPut, "/api/users/"+userPrincipal+"/role", adminToken, fiber.Map{"role": "sales"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/orders", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Ventas no gestiona usuarios ni edita inventario, pero sí lee productos.
	resp = doRequest(t, s.app, http.MethodGet, "/api/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, s.app, http.MethodPost, "/api/products", userToken, fiber.Map{"name": "Kurta"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
	resp = doRequest(t, s.app, http.MethodGet, "/api/products", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Nadie cambia su propio rol.
	resp = doRequest(t, s.app, http.MethodPut, "/api/users/"+adminPrincipal+"/role", adminToken, fiber.Map{"role": "sales"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "SELF_ROLE_CHANGE", decode(t, resp)["code"])
}

func TestUsers_ListadoPaginado(t *testing.T) {
	s := buildTestApp(t)
	adminToken, _ := s.admin(t)
	userToken, _ := s.login(t, "staff@sahil.in")
	s.saveProfile(t, userToken, "Staff")

	resp := doRequest(t, s.app, http.MethodGet, "/api/users?limit=1", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Len(t, body["items"], 1)
	assert.EqualValues(t, 2, body["page"].(map[string]any)["total"])

	resp = doRequest(t, s.app, http.MethodGet, "/api/users?limit=9999", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// ─── Polling ──────────────────────────────────────────────────────────────────

func TestPolling_EnableModuloYDisable(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.login(t, "a@sahil.in")

	resp := doRequest(t, s.app, http.MethodGet, "/api/polling", token, nil)
	body := decode(t, resp)
	assert.Equal(t, false, body["is_active"])

	resp = doRequest(t, s.app, http.MethodPost, "/api/polling/enable", token, nil)
	assert.Equal(t, true, decode(t, resp)["is_active"])

	resp = doRequest(t, s.app, http.MethodPut, "/api/polling/module", token, fiber.Map{"module": "orders"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	assert.Equal(t, true, body["is_active"])
	assert.Equal(t, "orders", body["active_module"])
	intervals := map[string]float64{}
	for _, e := range body["entities"].([]any) {
		m := e.(map[string]any)
		intervals[m["entity"].(string)] = m["interval_seconds"].(float64)
	}
	assert.Len(t, intervals, 11)
	assert.Equal(t, float64(15), intervals["orders"])
	assert.Zero(t, intervals["inventoryRecords"], "fuera del módulo activo")

	resp = doRequest(t, s.app, http.MethodPut, "/api/polling/module", token, fiber.Map{"module": "payroll"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodPost, "/api/polling/disable", token, nil)
	body = decode(t, resp)
	assert.Equal(t, false, body["is_active"])
	assert.Equal(t, "orders", body["active_module"])
}

// ─── Productos y stock ────────────────────────────────────────────────────────

func createProduct(t *testing.T, s *testServer, token string, body fiber.Map) string {
	t.Helper()
	resp := doRequest(t, s.app, http.MethodPost, "/api/products", token, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode(t, resp)["productId"].(string)
}

func TestProducts_CRUDYValidacion(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)

	resp := doRequest(t, s.app, http.MethodPost, "/api/products", token, fiber.Map{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode(t, resp)["message"], "name: required")

	resp = doRequest(t, s.app, http.MethodPost, "/api/products", token, fiber.Map{"name": "Kurta", "price": "-1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	id := createProduct(t, s, token, fiber.Map{"name": "Kurta", "price": "1000", "stock_level": 4, "reorder_level": 5, "barcode": "890001"})

	resp = doRequest(t, s.app, http.MethodGet, "/api/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Kurta", decode(t, resp)["name"])

	resp = doRequest(t, s.app, http.MethodGet, "/api/barcode/lookup/890001", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, decode(t, resp)["productId"])

	resp = doRequest(t, s.app, http.MethodGet, "/api/products/low-stock", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/products/no-existe", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodDelete, "/api/products/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodDelete, "/api/products/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// El stock nunca baja de cero: el error trae las cantidades.
func TestAdjustStock_Insuficiente(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)
	id := createProduct(t, s, token, fiber.Map{"name": "Saree", "price": "2000", "stock_level": 3})

	resp := doRequest(t, s.app, http.MethodPost, "/api/products/"+id+"/stock", token, fiber.Map{"delta": -5})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.EqualValues(t, 3, body["available"])
	assert.EqualValues(t, 5, body["requested"])

	resp = doRequest(t, s.app, http.MethodPost, "/api/products/"+id+"/stock", token, fiber.Map{"delta": -2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, decode(t, resp)["stockLevel"])

	resp = doRequest(t, s.app, http.MethodPost, "/api/inventory/records", token, fiber.Map{"product_id": id, "quantity_change": -4, "reason": "merma"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodPost, "/api/inventory/records", token, fiber.Map{"product_id": id, "quantity_change": 10, "reason": "compra"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// Una entrada con costo recalcula el costo promedio del producto.
func TestInventoryRecord_CostoPromedio(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)
	id := createProduct(t, s, token, fiber.Map{"name": "Kurta", "price": "500", "cost_price": "100", "stock_level": 10})

	resp := doRequest(t, s.app, http.MethodPost, "/api/inventory/records", token, fiber.Map{
		"product_id": id, "quantity_change": 10, "reason": "compra", "unit_cost": "200",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/products/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode(t, resp)
	assert.Equal(t, "150", p["costPrice"])
	assert.EqualValues(t, 20, p["stockLevel"])
}

// ─── Pedidos y facturas ───────────────────────────────────────────────────────

func createCustomer(t *testing.T, s *testServer, token string) string {
	t.Helper()
	resp := doRequest(t, s.app, http.MethodPost, "/api/customers", token, fiber.Map{"name": "Asha Traders"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode(t, resp)["customerId"].(string)
}

func TestOrders_PrecioDeListaYEstado(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)
	pid := createProduct(t, s, token, fiber.Map{"name": "Kurta", "price": "500", "stock_level": 10})
	cid := createCustomer(t, s, token)

	resp := doRequest(t, s.app, http.MethodPost, "/api/orders", token, fiber.Map{
		"customer_id": cid,
		"items":       []fiber.Map{{"product_id": pid, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	order := decode(t, resp)
	assert.Equal(t, "1500", order["total"])
	assert.Equal(t, "pending", order["status"])
	oid := order["orderId"].(string)

	resp = doRequest(t, s.app, http.MethodPut, "/api/orders/"+oid+"/status", token, fiber.Map{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodPut, "/api/orders/"+oid+"/status", token, fiber.Map{"status": "shipped"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/orders/"+oid, token, nil)
	assert.Equal(t, "shipped", decode(t, resp)["status"])
}

// 1000 al 18% → impuesto 180, total 1180. Con adjust_stock el faltante se informa
// por línea sin deshacer la factura.
func TestInvoices_TotalesYAjusteDeStock(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)
	pid := createProduct(t, s, token, fiber.Map{"name": "Lehenga", "price": "500", "stock_level": 1})
	cid := createCustomer(t, s, token)

	resp := doRequest(t, s.app, http.MethodPost, "/api/invoices", token, fiber.Map{
		"customer_id":  cid,
		"items":        []fiber.Map{{"product_id": pid, "quantity": 2}},
		"tax_rate":     "18",
		"adjust_stock": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	inv := body["invoice"].(map[string]any)
	assert.Equal(t, "1000", inv["subtotal"])
	assert.Equal(t, "180", inv["tax"])
	assert.Equal(t, "1180", inv["total"])

	failures := body["stock_failures"].([]any)
	require.Len(t, failures, 1)
	f := failures[0].(map[string]any)
	assert.Equal(t, "INSUFFICIENT_STOCK", f["code"])
	assert.EqualValues(t, 1, f["available"])
	assert.EqualValues(t, 2, f["requested"])

	resp = doRequest(t, s.app, http.MethodGet, "/api/invoices/"+inv["invoiceId"].(string)+"/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	pdfBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF")))

	resp = doRequest(t, s.app, http.MethodGet, "/api/invoices/no-existe/pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ─── Reportes, analítica y etiquetas ──────────────────────────────────────────

func TestReports_ExportCSV(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)
	createProduct(t, s, token, fiber.Map{"name": "Kurta", "price": "500", "stock_level": 2, "warehouse": "Main", "rack": "A"})

	resp := doRequest(t, s.app, http.MethodGet, "/api/reports/export/products?format=csv", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Contains(t, string(raw), "Kurta")
	assert.Contains(t, string(raw), "Main / A")

	resp = doRequest(t, s.app, http.MethodGet, "/api/reports/export/payroll", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/reports/export/products?format=pdf", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAnalytics_ProfitLossRango(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)

	resp := doRequest(t, s.app, http.MethodGet, "/api/analytics/profit-loss?from=2026-10-01&to=2026-11-01", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/analytics/profit-loss?from=2026-11-01&to=2026-10-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/analytics/profit-loss?from=ayer", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/analytics/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, decode(t, resp), "stats")
}

func TestBarcode_HojaDeEtiquetas(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)
	pid := createProduct(t, s, token, fiber.Map{"name": "Dupatta", "price": "300", "size": "M"})

	resp := doRequest(t, s.app, http.MethodPost, "/api/barcode/labels", token, fiber.Map{"product_ids": []string{pid}, "copies": 2, "with_qr": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = doRequest(t, s.app, http.MethodPost, "/api/barcode/labels", token, fiber.Map{"product_ids": []string{"no-existe"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodPost, "/api/barcode/labels", token, fiber.Map{"product_ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestNotifications_MarcarLeida(t *testing.T) {
	s := buildTestApp(t)
	token, _ := s.admin(t)

	resp := doRequest(t, s.app, http.MethodPost, "/api/notifications", token, fiber.Map{"title": "Stock bajo", "message": "Kurta bajo reorden"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	n := decode(t, resp)
	assert.Equal(t, "info", n["kind"])

	resp = doRequest(t, s.app, http.MethodPut, "/api/notifications/"+n["notificationId"].(string)+"/read", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, s.app, http.MethodGet, "/api/notifications?unread=true", token, nil)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(raw))
}
