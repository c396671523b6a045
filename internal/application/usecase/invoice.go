package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// InvoiceOrdersAPI lo que necesita la factura: facturas del servidor y búsqueda del pedido.
type InvoiceOrdersAPI interface {
	ports.InvoiceAPI
	ports.OrdersAPI
}

// InvoiceUseCase facturas del servidor y resumen local en PDF.
type InvoiceUseCase struct {
	api  InvoiceOrdersAPI
	pdf  ports.OrderPDFGenerator
	role entity.Role
	now  func() time.Time
}

// NewInvoiceUseCase construye el caso de uso para el rol de la sesión.
func NewInvoiceUseCase(api InvoiceOrdersAPI, pdf ports.OrderPDFGenerator, role entity.Role) *InvoiceUseCase {
	return &InvoiceUseCase{api: api, pdf: pdf, role: role, now: time.Now}
}

// HTML factura renderizada por el servidor y enlace a su PDF.
func (uc *InvoiceUseCase) HTML(ctx context.Context, orderID string) (*dto.InvoiceHTMLResponse, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.Invalid("Order is required")
	}
	html, err := uc.api.InvoiceHTML(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceHTMLResponse{HTML: html, PDFURL: uc.api.InvoicePDFURL(orderID)}, nil
}

// PDF descarga la factura oficial.
func (uc *InvoiceUseCase) PDF(ctx context.Context, orderID string) ([]byte, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.Invalid("Order is required")
	}
	return uc.api.InvoicePDF(ctx, orderID)
}

// Send envía la factura por correo. Sin destinatario el servidor usa el correo de la tienda.
func (uc *InvoiceUseCase) Send(ctx context.Context, orderID, to string) (*entity.InvoiceDelivery, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.Invalid("Order is required")
	}
	to = strings.TrimSpace(to)
	if to != "" && !emailRe.MatchString(to) {
		return nil, domain.Invalid("Enter a valid email")
	}
	return uc.api.SendInvoiceEmail(ctx, orderID, to)
}

// Summary genera localmente un resumen imprimible del pedido.
func (uc *InvoiceUseCase) Summary(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.lookup(ctx, orderID)
	if err != nil {
		return nil, err
	}
	party := "My orders"
	if uc.role == entity.RoleDistributor {
		party = orDefault(order.ShopName, "Shop")
	}
	return uc.pdf.GenerateOrderPDF(ctx, ports.OrderDocument{
		Title:        "Order " + shortID(order.ID),
		Order:        order,
		Party:        party,
		ReferenceURL: uc.api.InvoicePDFURL(order.ID),
		GeneratedAt:  uc.now(),
	})
}

func (uc *InvoiceUseCase) lookup(ctx context.Context, orderID string) (entity.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return entity.Order{}, domain.Invalid("Order is required")
	}
	var orders []entity.Order
	if uc.role == entity.RoleDistributor {
		limit := dashboardOrderLimit
		page, err := uc.api.ForDistributorCurrent(ctx, entity.OrderQuery{Q: orderID, Limit: &limit})
		if err != nil {
			return entity.Order{}, err
		}
		orders = page.Orders
	} else {
		mine, err := uc.api.MyOrders(ctx)
		if err != nil {
			return entity.Order{}, err
		}
		orders = mine
	}
	order, ok := findOrder(orders, orderID)
	if !ok {
		return entity.Order{}, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}
	return order, nil
}
