package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de un pedido tal como lo expone la API.
type OrderStatus string

// Estados del ciclo de vida del pedido, en orden de avance.
const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusAccepted       OrderStatus = "accepted"
	StatusPlaced         OrderStatus = "placed"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
)

// OrderItem línea de pedido. Qty >= 1.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
}

// LineTotal = Price × Qty.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Order pedido. El estado solo avanza en el servidor; la consola nunca lo modifica localmente.
type Order struct {
	ID            string      `json:"id"`
	ShopID        string      `json:"shopId,omitempty"`
	ShopName      string      `json:"shopName,omitempty"`
	DistributorID string      `json:"distributorId,omitempty"`
	Status        OrderStatus `json:"status"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Total suma de las líneas.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Units total de unidades del pedido.
func (o Order) Units() int {
	n := 0
	for _, it := range o.Items {
		n += it.Qty
	}
	return n
}

// CartLine línea que se envía al crear o actualizar el carrito.
type CartLine struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// OrderQuery filtros del listado de pedidos del distribuidor.
type OrderQuery struct {
	Status string
	Q      string
	Sort   string
	Limit  *int
	Offset *int
}

// OrderPage página de pedidos del distribuidor.
type OrderPage struct {
	Total  int     `json:"total"`
	Orders []Order `json:"orders"`
}

// InvoiceDelivery resultado del envío de factura por correo.
type InvoiceDelivery struct {
	Message string `json:"message"`
	To      string `json:"to"`
}
