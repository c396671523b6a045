package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/domain/orderflow"
)

// OrderLineView línea de pedido con su total.
type OrderLineView struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// OrderView pedido listo para pintar: badge de estado y, si el rol puede, la acción siguiente.
type OrderView struct {
	ID        string            `json:"id"`
	ShortID   string            `json:"shortId"`
	ShopName  string            `json:"shopName,omitempty"`
	Status    orderflow.View    `json:"status"`
	Action    *orderflow.Action `json:"action,omitempty"`
	Items     []OrderLineView   `json:"items"`
	Units     int               `json:"units"`
	Total     decimal.Decimal   `json:"total"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CartView carrito de la tienda: pedidos pendientes y pedidos en curso.
type CartView struct {
	Pending    []OrderView `json:"pending"`
	InProgress []OrderView `json:"inProgress"`
}

// OrderListView listado de pedidos con conteo por estado.
type OrderListView struct {
	Orders   []OrderView                `json:"orders"`
	Total    int                        `json:"total"`
	ByStatus map[entity.OrderStatus]int `json:"byStatus"`
	Filter   string                     `json:"filter,omitempty"`
}

// ActionResult resultado de una transición y la lista refrescada.
// Si la acción se aplicó pero la relectura falló, Orders/Cart quedan nil y
// RefreshError lleva el motivo: la acción no se reporta como fallida.
type ActionResult struct {
	Message      string         `json:"message"`
	Orders       *OrderListView `json:"orders,omitempty"`
	Cart         *CartView      `json:"cart,omitempty"`
	RefreshError string         `json:"refreshError,omitempty"`
}

// CartLinesRequest líneas para crear o reemplazar un carrito.
type CartLinesRequest struct {
	Items []entity.CartLine `json:"items"`
}

// SetQuantityRequest cambio de cantidad de una línea del carrito.
type SetQuantityRequest struct {
	Qty int `json:"qty"`
}

// AdvanceOrderRequest transición pedida por el distribuidor.
// Status es el estado que el cliente tenía a la vista; el servidor revalida.
type AdvanceOrderRequest struct {
	Status string `json:"status"`
	Action string `json:"action"`
}

// OrderQueryRequest filtros del listado del distribuidor.
type OrderQueryRequest struct {
	Status string `query:"status"`
	Q      string `query:"q"`
	Sort   string `query:"sort"`
	PageRequest
}

// SendInvoiceRequest envío de factura por correo; To vacío = correo de la tienda.
type SendInvoiceRequest struct {
	To string `json:"to"`
}

// InvoiceHTMLResponse factura renderizada por el servidor.
type InvoiceHTMLResponse struct {
	HTML   string `json:"html"`
	PDFURL string `json:"pdfUrl"`
}
