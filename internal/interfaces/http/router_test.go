package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/alerts"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/auth"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/billing"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/cart"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/catalog"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/notify"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/payment"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/reports"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/cache"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/memory/memtest"
	infrapdf "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/pdf"
	apphttp "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/interfaces/http"
	pkgjwt "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/pkg/jwt"
)

type outbox struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (o *outbox) Send(_ context.Context, msg notify.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, msg)
	return nil
}

type server struct {
	app    *fiber.App
	f      *memtest.Fixture
	outbox *outbox
}

// newServer arma la API completa sobre el almacén en memoria con el catálogo base,
// p1 (M=10) y p2 (L=3), un admin y un cliente.
func newServer(t *testing.T) *server {
	t.Helper()
	f := memtest.New(t)
	f.Product(t, "p1", "Camiseta", 50000)
	f.Product(t, "p2", "Buzo", 100000)
	f.Stock(t, "p1", memtest.SizeM, 10)
	f.Stock(t, "p2", memtest.SizeL, 3)
	f.User(t, "admin-1", "admin@tienda.test", entity.RoleAdmin)
	f.User(t, "u-1", "ana@example.com", entity.RoleCliente)

	log := zerolog.Nop()
	box := &outbox{}
	mailer := notify.NewMailer(box, "", log)
	store := f.DB.Store()
	alertSvc := alerts.NewService(f.DB, store, cache.NewMemoryCooldown(nil), mailer, alerts.Config{}, log)
	issuer := billing.NewIssuer(billing.Config{Currency: "COP", PaymentMethod: "mercadopago"})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, RefreshExpMinutes: 120, Issuer: testIssuer}),
		Catalog:   catalog.NewService(f.DB, store, inventory.NewProvisioner(), log),
		Inventory: inventory.NewUseCase(f.DB, store, alertSvc, log),
		Cart:      cart.NewService(f.DB, store, alertSvc, log),
		Payment:   payment.NewService(f.DB, store, issuer, alertSvc, mailer, log),
		Alerts:    alertSvc,
		Reports:   reports.NewService(f.DB, store, log),
		Invoices:  billing.NewUseCase(store, infrapdf.NewMarotoPDFGenerator(), "Tienda"),
		JWTSecret: testJWTSecret,
	})
	return &server{app: app, f: f, outbox: box}
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, pkgjwt.KindAccess, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (s *server) call(t *testing.T, method, path, auth string, body interface{}) (*http.Response, []byte) {
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
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m), string(raw))
	return m
}

func TestProductos_LecturaPublica(t *testing.T) {
	s := newServer(t)

	resp, body := s.call(t, http.MethodGet, "/api/products?limit=1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	list := decode(t, body)
	assert.Len(t, list["items"], 1)

	resp, _ = s.call(t, http.MethodGet, "/api/products/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogo_EscrituraSoloAdmin(t *testing.T) {
	s := newServer(t)
	in := map[string]string{"name": "Calzado"}

	resp, _ := s.call(t, http.MethodPost, "/api/categories", "", in)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.call(t, http.MethodPost, "/api/categories", bearer(t, "u-1", entity.RoleCliente), in)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.call(t, http.MethodPost, "/api/categories", bearer(t, "admin-1", entity.RoleAdmin), in)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "calzado", decode(t, body)["slug"])

	resp, _ = s.call(t, http.MethodPost, "/api/categories", bearer(t, "admin-1", entity.RoleAdmin), in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCatalogo_ValidacionNombraCampo(t *testing.T) {
	s := newServer(t)
	resp, body := s.call(t, http.MethodPost, "/api/products", bearer(t, "admin-1", entity.RoleAdmin),
		map[string]interface{}{"subcategory_id": memtest.SubcategoryID, "name": "Gorra", "price": 0})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "price", decode(t, body)["field"])
}

func TestCheckout_SinStockNombraProductoYTalla(t *testing.T) {
	s := newServer(t)
	cliente := bearer(t, "u-1", entity.RoleCliente)

	resp, body := s.call(t, http.MethodPost, "/api/carts", cliente, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	cartID := decode(t, body)["id"].(string)

	resp, body = s.call(t, http.MethodPost, "/api/carts/"+cartID+"/items", cliente,
		map[string]interface{}{"product_id": "p2", "size_id": memtest.SizeL, "quantity": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.call(t, http.MethodPost, "/api/carts/"+cartID+"/checkout", cliente, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	out := decode(t, body)
	assert.Equal(t, "INSUFFICIENT_STOCK", out["code"])
	assert.Equal(t, "p2", out["product_id"])
	assert.Equal(t, memtest.SizeL, out["size_id"])
	assert.Equal(t, 3, s.f.StockOf(t, "p2", memtest.SizeL))

	// Otro cliente no ve el carrito.
	resp, _ = s.call(t, http.MethodGet, "/api/carts/"+cartID, bearer(t, "u-2", entity.RoleCliente), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebhook_PagoAprobadoFacturaYReentrega(t *testing.T) {
	s := newServer(t)
	cliente := bearer(t, "u-1", entity.RoleCliente)
	admin := bearer(t, "admin-1", entity.RoleAdmin)

	_, body := s.call(t, http.MethodPost, "/api/carts", cliente, nil)
	cartID := decode(t, body)["id"].(string)
	_, _ = s.call(t, http.MethodPost, "/api/carts/"+cartID+"/items", cliente,
		map[string]interface{}{"product_id": "p1", "size_id": memtest.SizeM, "quantity": 2})
	resp, body := s.call(t, http.MethodPost, "/api/carts/"+cartID+"/checkout", cliente, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, 8, s.f.StockOf(t, "p1", memtest.SizeM))

	notification := map[string]interface{}{
		"transaction_id":     "tx-100",
		"status":             "approved",
		"external_reference": cartID,
		"amount":             "100000",
		"currency":           "COP",
	}
	resp, body = s.call(t, http.MethodPost, "/api/webhooks/payments", "", notification)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	first := decode(t, body)
	assert.Equal(t, "paid", first["internal_status"])
	assert.Equal(t, false, first["replayed"])
	orderID := first["order_id"].(string)
	invoiceID := first["invoice_id"].(string)
	require.NotEmpty(t, orderID)
	require.NotEmpty(t, invoiceID)

	resp, body = s.call(t, http.MethodPost, "/api/webhooks/payments", "", notification)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, true, decode(t, body)["replayed"])
	assert.Equal(t, 8, s.f.StockOf(t, "p1", memtest.SizeM))

	resp, body = s.call(t, http.MethodGet, "/api/orders/"+orderID, cliente, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, true, decode(t, body)["stock_committed"])

	resp, _ = s.call(t, http.MethodPost, "/api/orders/"+orderID+"/confirm", admin, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = s.call(t, http.MethodGet, "/api/orders/"+orderID+"/invoice", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, invoiceID, decode(t, body)["id"])

	resp, body = s.call(t, http.MethodGet, "/api/invoices/"+invoiceID+"/pdf", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, _ = s.call(t, http.MethodGet, "/api/invoices/"+invoiceID, cliente, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = s.call(t, http.MethodGet, "/api/carts/"+cartID+"/states", cliente, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var states []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &states))
	require.NotEmpty(t, states)
	assert.Equal(t, "pagado", states[len(states)-1]["state"])
}

func TestWebhook_CarritoDesconocido(t *testing.T) {
	s := newServer(t)
	resp, _ := s.call(t, http.MethodPost, "/api/webhooks/payments", "", map[string]interface{}{
		"transaction_id": "tx-1", "status": "approved", "external_reference": "no-existe",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := s.call(t, http.MethodPost, "/api/webhooks/payments", "", map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode(t, body)["code"])
}

func TestInventario_AjusteGeneraAlerta(t *testing.T) {
	s := newServer(t)
	admin := bearer(t, "admin-1", entity.RoleAdmin)

	resp, body := s.call(t, http.MethodPut, "/api/inventory/inv-p1-"+memtest.SizeM, admin, map[string]interface{}{"stock_for_size": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.EqualValues(t, 2, decode(t, body)["effective_stock"])

	resp, body = s.call(t, http.MethodGet, "/api/stock-alerts", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var active []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &active))
	require.Len(t, active, 1)
	assert.Equal(t, entity.StockAlertLow, active[0]["type"])
	assert.Len(t, s.outbox.sent, 1)

	resp, body = s.call(t, http.MethodGet, "/api/products/p1/inventory", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
}

func TestAuth_RegistroLoginYRefresh(t *testing.T) {
	s := newServer(t)

	resp, body := s.call(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "luis@example.com", "password": "secreto123", "name": "Luis"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, entity.RoleCliente, decode(t, body)["role"])

	resp, _ = s.call(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "luis@example.com", "password": "secreto123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = s.call(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "no-es-email", "password": "secreto123"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "email", decode(t, body)["field"])

	resp, _ = s.call(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "luis@example.com", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = s.call(t, http.MethodPost, "/api/auth/token", "", map[string]string{"email": "luis@example.com", "password": "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	refresh := decode(t, body)["refresh_token"].(string)

	resp, body = s.call(t, http.MethodPost, "/api/auth/token/refresh", "", map[string]string{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	access := decode(t, body)["access_token"].(string)

	resp, _ = s.call(t, http.MethodPost, "/api/carts", "Bearer "+access, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestReportes_GenerarYConsultar(t *testing.T) {
	s := newServer(t)
	admin := bearer(t, "admin-1", entity.RoleAdmin)

	resp, body := s.call(t, http.MethodPost, "/api/reports/sales", admin, map[string]interface{}{"start": "2025-03-01", "end": "2025-03-31"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	rep := decode(t, body)
	assert.EqualValues(t, 0, rep["ticket_count"])

	resp, _ = s.call(t, http.MethodGet, fmt.Sprintf("/api/reports/%s", rep["id"]), admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.call(t, http.MethodPost, "/api/reports/sales", admin, map[string]interface{}{"start": "marzo", "end": "2025-03-31"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
