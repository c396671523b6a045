package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa los puertos de la API.
var (
	_ ports.AuthAPI          = (*Client)(nil)
	_ ports.SessionAPI       = (*Client)(nil)
	_ ports.ProfileAPI       = (*Client)(nil)
	_ ports.LinkAPI          = (*Client)(nil)
	_ ports.SalesTeamAPI     = (*Client)(nil)
	_ ports.OrdersAPI        = (*Client)(nil)
	_ ports.InvoiceAPI       = (*Client)(nil)
	_ ports.ProductsAPI      = (*Client)(nil)
	_ ports.CatalogAPI       = (*Client)(nil)
	_ ports.UploadAPI        = (*Client)(nil)
	_ ports.NotificationsAPI = (*Client)(nil)
	_ ports.AnalyticsAPI     = (*Client)(nil)
	_ ports.API              = (*Client)(nil)
)

// maxBodyBytes límite de lectura de cualquier respuesta de la API (incluye PDFs de factura).
const maxBodyBytes = 16 << 20

// Config parámetros del cliente de la API remota.
type Config struct {
	BaseURL   string // URL absoluta, p. ej. https://orderly.example.com/api
	Timeout   time.Duration
	UserAgent string
	// Transport permite instrumentar las peticiones salientes (métricas). nil = http.DefaultTransport.
	Transport http.RoundTripper
}

// Client adaptador HTTP de la API remota. Cada sesión de consola tiene su propio Client:
// el cookie jar guarda las credenciales que emite el servidor en /auth/login.
type Client struct {
	base       string
	userAgent  string
	httpClient *http.Client
}

// NewClient construye el cliente. La URL base se normaliza quitando las barras finales.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("remote: base URL inválida %q", cfg.BaseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("remote: cookie jar: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:      base,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout:   timeout,
			Jar:       jar,
			Transport: cfg.Transport,
		},
	}, nil
}

// URL une la base con la ruta del recurso. Acepta rutas con o sin "/" inicial.
func (c *Client) URL(path string) string {
	if path == "" {
		return c.base
	}
	if strings.HasPrefix(path, "/") {
		return c.base + path
	}
	return c.base + "/" + path
}

// errorBody forma del cuerpo de error de la API: {"ok": false, "error": "..."}.
type errorBody struct {
	Error string `json:"error"`
}

// do envía una petición JSON y decodifica la respuesta en out (si no es nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: serializar request %s: %w", path, err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path), reader)
	if err != nil {
		return fmt.Errorf("remote: crear request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.send(req, out, "")
}

// send ejecuta la petición y aplica la política de errores común. Con out de tipo *[]byte
// se devuelve el cuerpo crudo. fallback reemplaza el
// mensaje genérico "Request failed: <status>" cuando el servidor no envía "error".
func (c *Client) send(req *http.Request, out any, fallback string) error {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s %s: %w", domain.ErrUpstreamUnavailable, req.Method, req.URL.Path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstreamUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, raw, fallback)
	}
	if p, ok := out.(*[]byte); ok {
		*p = raw
		return nil
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: respuesta no JSON en %s: %v", domain.ErrUpstream, req.URL.Path, err)
	}
	return nil
}

func newAPIError(status int, raw []byte, fallback string) *APIError {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil && strings.TrimSpace(eb.Error) != "" {
		return &APIError{Status: status, Message: eb.Error}
	}
	if fallback != "" {
		return &APIError{Status: status, Message: fallback}
	}
	return &APIError{Status: status, Message: fmt.Sprintf("Request failed: %d", status)}
}

// StatusOf devuelve el código HTTP de un *APIError envuelto, o 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func seg(id string) string { return url.PathEscape(id) }
