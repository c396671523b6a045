package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

type ordersEnvelope struct {
	Total  *int           `json:"total"`
	Orders []entity.Order `json:"orders"`
}

type orderEnvelope struct {
	Order entity.Order `json:"order"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

// ForDistributorCurrent GET /orders/for-distributor con filtros opcionales.
// Si el servidor no informa total se usa el tamaño de la página.
func (c *Client) ForDistributorCurrent(ctx context.Context, q entity.OrderQuery) (*entity.OrderPage, error) {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Q != "" {
		v.Set("q", q.Q)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Limit != nil {
		v.Set("limit", strconv.Itoa(*q.Limit))
	}
	if q.Offset != nil {
		v.Set("offset", strconv.Itoa(*q.Offset))
	}
	path := "/orders/for-distributor"
	if qs := v.Encode(); qs != "" {
		path += "?" + qs
	}
	var out ordersEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	page := &entity.OrderPage{Orders: out.Orders, Total: len(out.Orders)}
	if out.Total != nil {
		page.Total = *out.Total
	}
	return page, nil
}

// ForDistributor GET /orders/for-distributor/{id}.
func (c *Client) ForDistributor(ctx context.Context, distributorID string) ([]entity.Order, error) {
	var out ordersEnvelope
	if err := c.do(ctx, http.MethodGet, "/orders/for-distributor/"+seg(distributorID), nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// MyOrders GET /orders/my.
func (c *Client) MyOrders(ctx context.Context) ([]entity.Order, error) {
	var out ordersEnvelope
	if err := c.do(ctx, http.MethodGet, "/orders/my", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// AddToCart POST /orders/cart.
func (c *Client) AddToCart(ctx context.Context, lines []entity.CartLine) (*entity.Order, error) {
	var out orderEnvelope
	if err := c.do(ctx, http.MethodPost, "/orders/cart", map[string]any{"items": lines}, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// UpdateCart PUT /orders/cart.
func (c *Client) UpdateCart(ctx context.Context, orderID string, lines []entity.CartLine) (*entity.Order, error) {
	var out orderEnvelope
	if err := c.do(ctx, http.MethodPut, "/orders/cart", map[string]any{"orderId": orderID, "items": lines}, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// RemoveFromCart DELETE /orders/cart (el id viaja en el cuerpo).
func (c *Client) RemoveFromCart(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/orders/cart", map[string]string{"orderId": orderID}, nil)
}

// ConfirmOrder POST /orders/confirm.
func (c *Client) ConfirmOrder(ctx context.Context, orderID string) (string, error) {
	return c.transition(ctx, "/orders/confirm", orderID)
}

// AcceptOrder POST /orders/accept.
func (c *Client) AcceptOrder(ctx context.Context, orderID string) (string, error) {
	return c.transition(ctx, "/orders/accept", orderID)
}

// MarkPlaced POST /orders/mark-placed.
func (c *Client) MarkPlaced(ctx context.Context, orderID string) (string, error) {
	return c.transition(ctx, "/orders/mark-placed", orderID)
}

// MarkOutForDelivery POST /orders/mark-out-for-delivery.
func (c *Client) MarkOutForDelivery(ctx context.Context, orderID string) (string, error) {
	return c.transition(ctx, "/orders/mark-out-for-delivery", orderID)
}

// MarkDelivered POST /orders/mark-delivered.
func (c *Client) MarkDelivered(ctx context.Context, orderID string) (string, error) {
	return c.transition(ctx, "/orders/mark-delivered", orderID)
}

func (c *Client) transition(ctx context.Context, path, orderID string) (string, error) {
	var out messageEnvelope
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"orderId": orderID}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ── Facturas ─────────────────────────────────────────────────────────────────

// InvoiceHTML GET /orders/invoice/{id}.
func (c *Client) InvoiceHTML(ctx context.Context, orderID string) (string, error) {
	var out struct {
		HTML string `json:"html"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/invoice/"+seg(orderID), nil, &out); err != nil {
		return "", err
	}
	return out.HTML, nil
}

// InvoicePDFURL URL absoluta del PDF de la factura en la API.
func (c *Client) InvoicePDFURL(orderID string) string {
	return c.URL("/orders/invoice/" + seg(orderID) + "/pdf")
}

// InvoicePDF descarga el PDF generado por el servidor.
func (c *Client) InvoicePDF(ctx context.Context, orderID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.InvoicePDFURL(orderID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/pdf")
	var pdf []byte
	if err := c.send(req, &pdf, "Failed to download invoice PDF"); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// Este endpoint nunca expone el mensaje del servidor.
			apiErr.Message = "Failed to download invoice PDF"
		}
		return nil, err
	}
	return pdf, nil
}

// SendInvoiceEmail POST /orders/invoice/{id}/send. to vacío = correo registrado de la tienda.
func (c *Client) SendInvoiceEmail(ctx context.Context, orderID, to string) (*entity.InvoiceDelivery, error) {
	payload := map[string]string{}
	if to != "" {
		payload["to"] = to
	}
	var out entity.InvoiceDelivery
	if err := c.do(ctx, http.MethodPost, "/orders/invoice/"+seg(orderID)+"/send", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
