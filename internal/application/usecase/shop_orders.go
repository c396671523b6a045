package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/domain/orderflow"
)

const (
	msgCartUpdated    = "Cart updated!"
	msgOrderRemoved   = "Order removed from cart."
	msgOrderConfirmed = "Order confirmed!"
)

// ShopOrdersUseCase carrito e historial de la tienda (o del vendedor que compra por ella).
// Tras cada acción se vuelve a pedir la lista al servidor; nunca se cambia un estado localmente.
type ShopOrdersUseCase struct {
	api      ports.OrdersAPI
	exporter ports.OrderExporter
	role     entity.Role
}

// NewShopOrdersUseCase construye el caso de uso para el rol de la sesión.
func NewShopOrdersUseCase(api ports.OrdersAPI, exporter ports.OrderExporter, role entity.Role) *ShopOrdersUseCase {
	return &ShopOrdersUseCase{api: api, exporter: exporter, role: role}
}

// Cart separa los pedidos en carrito (pending) y en curso (confirmed..out_for_delivery).
func (uc *ShopOrdersUseCase) Cart(ctx context.Context) (*dto.CartView, error) {
	orders, err := uc.api.MyOrders(ctx)
	if err != nil {
		return nil, err
	}
	return uc.cartView(orders), nil
}

func (uc *ShopOrdersUseCase) cartView(orders []entity.Order) *dto.CartView {
	view := &dto.CartView{Pending: []dto.OrderView{}, InProgress: []dto.OrderView{}}
	for _, o := range orders {
		switch {
		case orderflow.IsCartStatus(o.Status):
			view.Pending = append(view.Pending, toOrderView(o, uc.role))
		case orderflow.IsInProgress(o.Status):
			view.InProgress = append(view.InProgress, toOrderView(o, uc.role))
		}
	}
	return view
}

// History lista los pedidos del usuario, más recientes primero. status vacío = todos.
func (uc *ShopOrdersUseCase) History(ctx context.Context, status string) (*dto.OrderListView, error) {
	orders, err := uc.api.MyOrders(ctx)
	if err != nil {
		return nil, err
	}
	filter := orderflow.Normalize(status)
	var selected []entity.Order
	for _, o := range orders {
		if filter == "" || o.Status == filter {
			selected = append(selected, o)
		}
	}
	selected = newestFirst(selected)
	return &dto.OrderListView{
		Orders:   toOrderViews(selected, uc.role),
		Total:    len(selected),
		ByStatus: orderflow.CountByStatus(orders),
		Filter:   string(filter),
	}, nil
}

// ExportHistory historial filtrado en XLSX.
func (uc *ShopOrdersUseCase) ExportHistory(ctx context.Context, status string) ([]byte, error) {
	orders, err := uc.api.MyOrders(ctx)
	if err != nil {
		return nil, err
	}
	filter := orderflow.Normalize(status)
	var selected []entity.Order
	for _, o := range orders {
		if filter == "" || o.Status == filter {
			selected = append(selected, o)
		}
	}
	return uc.exporter.ExportOrders(newestFirst(selected))
}

// AddToCart crea un pedido pendiente con las líneas dadas (qty ≥ 1).
func (uc *ShopOrdersUseCase) AddToCart(ctx context.Context, lines []entity.CartLine) (*entity.Order, error) {
	if len(lines) == 0 {
		return nil, domain.Invalid("Cart is empty")
	}
	for _, l := range lines {
		if strings.TrimSpace(l.ProductID) == "" {
			return nil, domain.Invalid("Product is required")
		}
		if l.Qty < 1 {
			return nil, domain.Invalid("Quantity must be at least 1")
		}
	}
	return uc.api.AddToCart(ctx, lines)
}

// SetQuantity cambia la cantidad de una línea. Valores menores que 1 se ajustan a 1.
func (uc *ShopOrdersUseCase) SetQuantity(ctx context.Context, orderID, productID string, qty int) (*dto.ActionResult, error) {
	if qty < 1 {
		qty = 1
	}
	order, err := uc.pendingOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	lines := make([]entity.CartLine, 0, len(order.Items))
	found := false
	for _, it := range order.Items {
		q := it.Qty
		if it.ProductID == productID {
			q = qty
			found = true
		}
		lines = append(lines, entity.CartLine{ProductID: it.ProductID, Qty: q})
	}
	if !found {
		return nil, fmt.Errorf("producto %s en pedido %s: %w", productID, orderID, domain.ErrNotFound)
	}
	if _, err := uc.api.UpdateCart(ctx, orderID, lines); err != nil {
		return nil, err
	}
	return uc.refreshed(ctx, msgCartUpdated)
}

// RemoveItem quita una línea; si era la última se elimina el pedido completo.
func (uc *ShopOrdersUseCase) RemoveItem(ctx context.Context, orderID, productID string) (*dto.ActionResult, error) {
	order, err := uc.pendingOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	lines := make([]entity.CartLine, 0, len(order.Items))
	for _, it := range order.Items {
		if it.ProductID != productID {
			lines = append(lines, entity.CartLine{ProductID: it.ProductID, Qty: it.Qty})
		}
	}
	if len(lines) == len(order.Items) {
		return nil, fmt.Errorf("producto %s en pedido %s: %w", productID, orderID, domain.ErrNotFound)
	}
	if len(lines) == 0 {
		if err := uc.api.RemoveFromCart(ctx, orderID); err != nil {
			return nil, err
		}
		return uc.refreshed(ctx, msgOrderRemoved)
	}
	if _, err := uc.api.UpdateCart(ctx, orderID, lines); err != nil {
		return nil, err
	}
	return uc.refreshed(ctx, msgCartUpdated)
}

// RemoveOrder elimina un pedido pendiente del carrito.
func (uc *ShopOrdersUseCase) RemoveOrder(ctx context.Context, orderID string) (*dto.ActionResult, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.Invalid("Order is required")
	}
	if err := uc.api.RemoveFromCart(ctx, orderID); err != nil {
		return nil, err
	}
	return uc.refreshed(ctx, msgOrderRemoved)
}

// Confirm confirma un pedido del carrito. Solo es válido en estado pending.
func (uc *ShopOrdersUseCase) Confirm(ctx context.Context, orderID string) (*dto.ActionResult, error) {
	orders, err := uc.api.MyOrders(ctx)
	if err != nil {
		return nil, err
	}
	order, ok := findOrder(orders, orderID)
	if !ok {
		return nil, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	if !orderflow.CanPerform(order.Status, orderflow.ActionConfirm) {
		return nil, fmt.Errorf("confirmar pedido en estado %s: %w", order.Status, domain.ErrInvalidTransition)
	}
	if orderflow.ActionFor(order.Status, uc.role) == nil {
		return nil, domain.ErrForbidden
	}
	msg, err := uc.api.ConfirmOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return uc.refreshed(ctx, orDefault(msg, msgOrderConfirmed))
}

// pendingOrder busca el pedido y exige que siga en el carrito.
func (uc *ShopOrdersUseCase) pendingOrder(ctx context.Context, orderID string) (entity.Order, error) {
	orders, err := uc.api.MyOrders(ctx)
	if err != nil {
		return entity.Order{}, err
	}
	order, ok := findOrder(orders, orderID)
	if !ok {
		return entity.Order{}, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	if !orderflow.IsCartStatus(order.Status) {
		return entity.Order{}, fmt.Errorf("editar pedido en estado %s: %w", order.Status, domain.ErrInvalidTransition)
	}
	return order, nil
}

// refreshed relee el carrito tras una acción ya aplicada en el servidor.
// Un fallo de la relectura no anula la acción.
func (uc *ShopOrdersUseCase) refreshed(ctx context.Context, msg string) (*dto.ActionResult, error) {
	res := &dto.ActionResult{Message: msg}
	cart, err := uc.Cart(ctx)
	if err != nil {
		res.RefreshError = err.Error()
		return res, nil
	}
	res.Cart = cart
	return res, nil
}
