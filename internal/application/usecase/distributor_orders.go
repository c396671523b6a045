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

type transitionFunc func(api ports.OrdersAPI, ctx context.Context, orderID string) (string, error)

// transitions llamada al servidor y mensaje por defecto de cada acción del distribuidor.
var transitions = map[orderflow.ActionKind]struct {
	call transitionFunc
	msg  string
}{
	orderflow.ActionAccept:             {ports.OrdersAPI.AcceptOrder, "Order accepted"},
	orderflow.ActionMarkPlaced:         {ports.OrdersAPI.MarkPlaced, "Order marked as placed"},
	orderflow.ActionMarkOutForDelivery: {ports.OrdersAPI.MarkOutForDelivery, "Order marked out for delivery"},
	orderflow.ActionMarkDelivered:      {ports.OrdersAPI.MarkDelivered, "Order marked as delivered"},
}

// DistributorOrdersUseCase gestión de pedidos entrantes del distribuidor.
type DistributorOrdersUseCase struct {
	api ports.OrdersAPI
}

// NewDistributorOrdersUseCase construye el caso de uso.
func NewDistributorOrdersUseCase(api ports.OrdersAPI) *DistributorOrdersUseCase {
	return &DistributorOrdersUseCase{api: api}
}

// List pedidos del distribuidor con los filtros del servidor (estado, búsqueda, orden, página).
func (uc *DistributorOrdersUseCase) List(ctx context.Context, q entity.OrderQuery) (*dto.OrderListView, error) {
	if q.Status != "" {
		q.Status = string(orderflow.Normalize(q.Status))
	}
	page, err := uc.api.ForDistributorCurrent(ctx, q)
	if err != nil {
		return nil, err
	}
	return &dto.OrderListView{
		Orders:   toOrderViews(page.Orders, entity.RoleDistributor),
		Total:    page.Total,
		ByStatus: orderflow.CountByStatus(page.Orders),
		Filter:   q.Status,
	}, nil
}

// ListFor pedidos de un distribuidor concreto (vista de administración).
func (uc *DistributorOrdersUseCase) ListFor(ctx context.Context, distributorID string) (*dto.OrderListView, error) {
	if strings.TrimSpace(distributorID) == "" {
		return nil, domain.Invalid("Distributor is required")
	}
	orders, err := uc.api.ForDistributor(ctx, distributorID)
	if err != nil {
		return nil, err
	}
	orders = newestFirst(orders)
	return &dto.OrderListView{
		Orders:   toOrderViews(orders, entity.RoleAdmin),
		Total:    len(orders),
		ByStatus: orderflow.CountByStatus(orders),
	}, nil
}

// Advance ejecuta la acción siguiente de un pedido. status es el estado que la vista tenía;
// si la acción no es la siguiente de ese estado no se llama al servidor. El servidor revalida.
func (uc *DistributorOrdersUseCase) Advance(ctx context.Context, orderID, status string, kind orderflow.ActionKind, q entity.OrderQuery) (*dto.ActionResult, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.Invalid("Order is required")
	}
	current := orderflow.Normalize(status)
	if !orderflow.Known(current) {
		return nil, domain.Invalid("Unknown order status")
	}
	if !orderflow.CanPerform(current, kind) {
		return nil, fmt.Errorf("%s desde %s: %w", kind, current, domain.ErrInvalidTransition)
	}
	t, ok := transitions[kind]
	if !ok || orderflow.ActionFor(current, entity.RoleDistributor) == nil {
		return nil, domain.ErrForbidden
	}
	msg, err := t.call(uc.api, ctx, orderID)
	if err != nil {
		return nil, err
	}
	res := &dto.ActionResult{Message: orDefault(msg, t.msg)}
	if res.Orders, err = uc.List(ctx, q); err != nil {
		res.RefreshError = err.Error()
	}
	return res, nil
}
