package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/application/workspace"
	"github.com/jhoicas/orderly-console/internal/domain"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/infrastructure/prefs"
	httpRouter "github.com/jhoicas/orderly-console/internal/interfaces/http"
	"github.com/jhoicas/orderly-console/pkg/logger"
)

const cookieName = "orderly_session"

// fakeAPI doble de la API remota: solo implementa lo que usan las pruebas.
type fakeAPI struct {
	ports.API

	mu       sync.Mutex
	me       *entity.SessionUser
	meBlock  chan struct{}
	link     entity.LinkState
	orders   []entity.Order
	products []entity.Product
	listErr  error
	accepted []string
}

func (f *fakeAPI) Me(ctx context.Context) (*entity.SessionUser, error) {
	if f.meBlock != nil {
		select {
		case <-f.meBlock:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.me == nil {
		return nil, domain.ErrUnauthorized
	}
	u := *f.me
	return &u, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string, role entity.Role) (*entity.LoginResult, error) {
	if password != "secret123" {
		return nil, fmt.Errorf("%w: invalid_credentials", domain.ErrUnauthorized)
	}
	u := entity.SessionUser{ID: "u-" + string(role), Email: email, Role: role}
	f.mu.Lock()
	f.me = &u
	f.mu.Unlock()
	return &entity.LoginResult{User: u}, nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.mu.Lock()
	f.me = nil
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) ListNotifications(ctx context.Context, unread *bool) ([]entity.Notification, error) {
	return []entity.Notification{}, nil
}

func (f *fakeAPI) LinkStatus(ctx context.Context) (*entity.LinkStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &entity.LinkStatus{State: f.link}, nil
}

func (f *fakeAPI) MyOrders(ctx context.Context) ([]entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Order(nil), f.orders...), nil
}

func (f *fakeAPI) ForDistributorCurrent(ctx context.Context, q entity.OrderQuery) (*entity.OrderPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &entity.OrderPage{Total: len(f.orders), Orders: append([]entity.Order(nil), f.orders...)}, nil
}

func (f *fakeAPI) AcceptOrder(ctx context.Context, orderID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accepted = append(f.accepted, orderID)
	return "", nil
}

func (f *fakeAPI) ListProducts(ctx context.Context) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.Product(nil), f.products...), nil
}

func (f *fakeAPI) CreateProduct(ctx context.Context, in entity.ProductInput) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := entity.Product{ID: fmt.Sprintf("p%d", len(f.products)+1), Name: in.Name, Price: in.Price, Stock: in.Stock}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeAPI) setMe(u *entity.SessionUser) {
	f.mu.Lock()
	f.me = u
	f.mu.Unlock()
}

type harness struct {
	app *fiber.App
	api *fakeAPI
	reg *workspace.Registry
}

func newHarness(t *testing.T, api *fakeAPI, wait time.Duration) *harness {
	t.Helper()
	reg := workspace.NewRegistry(func() (ports.API, error) { return api, nil },
		workspace.Config{PollInterval: time.Hour, InitTimeout: 5 * time.Second}, workspace.Hooks{}, logger.Nop().Zerolog())
	t.Cleanup(reg.Shutdown)

	app := httpRouter.NewApp(httpRouter.AppConfig{Name: "test"}, nil, logger.Nop().Zerolog())
	httpRouter.Router(app, httpRouter.RouterDeps{
		Registry: reg,
		Session: httpRouter.SessionConfig{
			Secret:      "test-secret",
			CookieName:  cookieName,
			TTLMinutes:  60,
			Issuer:      "test",
			ResolveWait: wait,
		},
		Services: httpRouter.Services{Prefs: prefs.NewMemoryStore(), UpstreamBaseURL: "http://api.test"},
		Log:      logger.Nop().Zerolog(),
	})
	return &harness{app: app, api: api, reg: reg}
}

func (h *harness) do(t *testing.T, method, target string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := h.app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	return nil
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ─── Infraestructura ─────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, 50*time.Millisecond)
	resp := h.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ─── Guard de rutas ──────────────────────────────────────────────────────────

func TestGuard_SinUsuario_RedirigeALoginConFrom(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, time.Second)

	resp := h.do(t, http.MethodGet, "/wholesale/orders", nil, nil)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?from="+url.QueryEscape("/wholesale/orders"), resp.Header.Get("Location"))
	require.NotNil(t, sessionCookie(resp), "la primera visita emite la cookie de sesión")
	assert.True(t, sessionCookie(resp).HttpOnly)
}

func TestGuard_RolDistinto_RedirigeASuDashboard(t *testing.T) {
	h := newHarness(t, &fakeAPI{me: &entity.SessionUser{ID: "d1", Role: entity.RoleDistributor}}, time.Second)

	resp := h.do(t, http.MethodGet, "/shop/cart", nil, nil)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/wholesale/dashboard", resp.Header.Get("Location"))
}

func TestGuard_SesionSinResolver_RespondeLoading(t *testing.T) {
	api := &fakeAPI{meBlock: make(chan struct{})}
	defer close(api.meBlock)
	h := newHarness(t, api, 20*time.Millisecond)

	resp := h.do(t, http.MethodGet, "/shop/dashboard", nil, nil)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
	assert.Equal(t, "loading", decode[dto.LoadingResponse](t, resp).Status)
}

func TestGuard_RolPermitido_Renderiza(t *testing.T) {
	api := &fakeAPI{
		me:     &entity.SessionUser{ID: "s1", Role: entity.RoleShopkeeper},
		orders: []entity.Order{{ID: "o1", Status: entity.StatusPending, Items: []entity.OrderItem{{ProductID: "p1", Name: "Rice", Price: decimal.NewFromInt(2), Qty: 3}}}},
	}
	h := newHarness(t, api, time.Second)

	resp := h.do(t, http.MethodGet, "/shop/cart", nil, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart := decode[dto.CartView](t, resp)
	require.Len(t, cart.Pending, 1)
	assert.Equal(t, "Pending", cart.Pending[0].Status.Label)
	require.NotNil(t, cart.Pending[0].Action)
	assert.Equal(t, "Confirm Order", cart.Pending[0].Action.Label)
}

func TestAPI_SinUsuario_Responde401(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, time.Second)

	resp := h.do(t, http.MethodGet, "/api/me", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode[dto.ErrorResponse](t, resp).Code)
}

// ─── Vínculo del vendedor ────────────────────────────────────────────────────

func TestSalesLink_Pendiente_RedirigeALaPaginaDeVinculo(t *testing.T) {
	api := &fakeAPI{me: &entity.SessionUser{ID: "v1", Role: entity.RoleSalesperson}, link: entity.LinkPending}
	h := newHarness(t, api, time.Second)

	resp := h.do(t, http.MethodGet, "/sales/dashboard", nil, nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/sales/link-distributor?from="+url.QueryEscape("/sales/dashboard"), resp.Header.Get("Location"))

	page := h.do(t, http.MethodGet, "/sales/link-distributor?from=/sales/orders", nil, sessionCookie(resp))
	require.Equal(t, http.StatusOK, page.StatusCode, "la página de vínculo queda exenta")
	view := decode[dto.LinkPageView](t, page)
	assert.Equal(t, entity.LinkPending, view.Status.State)
	assert.False(t, view.CanProceed)
	assert.Equal(t, "/sales/orders", view.ReturnTo)
}

func TestSalesLink_Aprobado_Renderiza(t *testing.T) {
	api := &fakeAPI{me: &entity.SessionUser{ID: "v1", Role: entity.RoleSalesperson}, link: entity.LinkApproved}
	h := newHarness(t, api, time.Second)

	resp := h.do(t, http.MethodGet, "/sales/dashboard", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.LinkApproved, decode[dto.SalesDashboard](t, resp).Status.State)
}

// ─── Autenticación ───────────────────────────────────────────────────────────

func TestLogin_TiendaConFromAjeno_VaAlDashboardYQuedaLogueado(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, time.Second)

	resp := h.do(t, http.MethodPost, "/api/login", dto.LoginRequest{
		Email: "Shop@Test.co", Password: "secret123", Role: "shopkeeper", From: "/wholesale/orders",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	out := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, "/shop/dashboard", out.Location)
	assert.Equal(t, entity.RoleShopkeeper, out.User.Role)

	me := h.do(t, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, me.StatusCode)
	assert.Equal(t, "shop@test.co", decode[dto.SessionResponse](t, me).User.Email)

	prefsResp := h.do(t, http.MethodGet, "/api/preferences", nil, cookie)
	assert.Equal(t, "shopkeeper", decode[dto.PreferencesResponse](t, prefsResp).JoinAs, "se recuerda el rol elegido")

	loginPage := h.do(t, http.MethodGet, "/login", nil, cookie)
	assert.Equal(t, http.StatusFound, loginPage.StatusCode)
	assert.Equal(t, "/shop/dashboard", loginPage.Header.Get("Location"))
}

func TestLogin_CredencialesIncorrectas_401(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, time.Second)

	resp := h.do(t, http.MethodPost, "/api/login", dto.LoginRequest{
		Email: "shop@test.co", Password: "wrong-pass", Role: "shopkeeper",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_CamposVacios_400(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, time.Second)

	resp := h.do(t, http.MethodPost, "/api/login", dto.LoginRequest{Email: "shop@test.co"}, nil)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "Please fill in all fields", body.Message)
}

func TestLogout_LimpiaLaSesion(t *testing.T) {
	api := &fakeAPI{me: &entity.SessionUser{ID: "s1", Role: entity.RoleShopkeeper}}
	h := newHarness(t, api, time.Second)

	first := h.do(t, http.MethodGet, "/api/me", nil, nil)
	require.Equal(t, http.StatusOK, first.StatusCode)
	cookie := sessionCookie(first)

	out := h.do(t, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, out.StatusCode)
	assert.Equal(t, "/login", decode[dto.RedirectResponse](t, out).Location)

	again := h.do(t, http.MethodGet, "/api/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, again.StatusCode)
}

func TestPreferences_RolInvalido_400(t *testing.T) {
	h := newHarness(t, &fakeAPI{}, time.Second)

	resp := h.do(t, http.MethodPut, "/api/preferences", dto.PreferencesRequest{JoinAs: "admin"}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ─── Pedidos del distribuidor y mapeo de errores ─────────────────────────────

func distributorHarness(t *testing.T) *harness {
	api := &fakeAPI{
		me:     &entity.SessionUser{ID: "d1", Role: entity.RoleDistributor},
		orders: []entity.Order{{ID: "o1", Status: entity.StatusConfirmed}},
	}
	return newHarness(t, api, time.Second)
}

func TestAdvance_AccionSiguiente_Ok(t *testing.T) {
	h := distributorHarness(t)

	resp := h.do(t, http.MethodPost, "/wholesale/orders/o1/advance", dto.AdvanceOrderRequest{Status: "confirmed", Action: "accept"}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Order accepted", decode[dto.ActionResult](t, resp).Message)
	assert.Equal(t, []string{"o1"}, h.api.accepted)
}

func TestAdvance_AccionQueNoCorresponde_409(t *testing.T) {
	h := distributorHarness(t)

	resp := h.do(t, http.MethodPost, "/wholesale/orders/o1/advance", dto.AdvanceOrderRequest{Status: "accepted", Action: "accept"}, nil)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, resp).Code)
	assert.Empty(t, h.api.accepted, "no se llama al servidor")
}

func TestAdvance_EstadoDesconocido_400(t *testing.T) {
	h := distributorHarness(t)

	resp := h.do(t, http.MethodPost, "/wholesale/orders/o1/advance", dto.AdvanceOrderRequest{Status: "lost", Action: "accept"}, nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdvance_RelecturaFallida_NoReportaFallo(t *testing.T) {
	h := distributorHarness(t)
	h.api.listErr = fmt.Errorf("%w: connection reset", domain.ErrUpstreamUnavailable)

	resp := h.do(t, http.MethodPost, "/wholesale/orders/o1/advance", dto.AdvanceOrderRequest{Status: "confirmed", Action: "accept"}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode, "el pedido ya avanzó en el servidor")
	out := decode[dto.ActionResult](t, resp)
	assert.Equal(t, "Order accepted", out.Message)
	assert.Nil(t, out.Orders)
	assert.Contains(t, out.RefreshError, "connection reset")
	assert.Equal(t, []string{"o1"}, h.api.accepted)
}

func TestOrders_ServidorCaido_502(t *testing.T) {
	h := distributorHarness(t)
	h.api.listErr = fmt.Errorf("%w: dial tcp: connection refused", domain.ErrUpstreamUnavailable)

	resp := h.do(t, http.MethodGet, "/wholesale/orders", nil, nil)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", decode[dto.ErrorResponse](t, resp).Code)
}

// ─── Inventario ──────────────────────────────────────────────────────────────

func TestInventory_CrearYListar(t *testing.T) {
	h := distributorHarness(t)

	created := h.do(t, http.MethodPost, "/wholesale/inventory", dto.ProductRequest{
		Name: "Rice 1kg", Price: decimal.RequireFromString("2.50"), Stock: 40,
	}, nil)
	require.Equal(t, http.StatusCreated, created.StatusCode)
	cookie := sessionCookie(created)

	list := h.do(t, http.MethodGet, "/wholesale/inventory", nil, cookie)
	require.Equal(t, http.StatusOK, list.StatusCode)
	view := decode[dto.InventoryView](t, list)
	require.Len(t, view.Products, 1)
	assert.Equal(t, "Rice 1kg", view.Products[0].Name)
	assert.True(t, decimal.RequireFromString("2.50").Equal(view.Products[0].Price))
	assert.Equal(t, 40, view.Products[0].Stock)
}

func TestInventory_PrecioNegativo_400(t *testing.T) {
	h := distributorHarness(t)

	resp := h.do(t, http.MethodPost, "/wholesale/inventory", dto.ProductRequest{
		Name: "Rice", Price: decimal.NewFromInt(-1), Stock: 1,
	}, nil)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Price must be a positive number", decode[dto.ErrorResponse](t, resp).Message)
}
