package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/usecase"
	"github.com/jhoicas/orderly-console/internal/domain/orderflow"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OrdersHandler carrito e historial (tienda y vendedor) y pedidos del distribuidor.
type OrdersHandler struct {
	svc Services
	log zerolog.Logger
}

// NewOrdersHandler construye el handler.
func NewOrdersHandler(svc Services, log zerolog.Logger) *OrdersHandler {
	return &OrdersHandler{svc: svc, log: log}
}

// actionDone responde una acción ya aplicada. Una relectura fallida solo se registra.
func (h *OrdersHandler) actionDone(c *fiber.Ctx, out *dto.ActionResult, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	if out.RefreshError != "" {
		h.log.Warn().Str("path", c.Path()).Str("refresh_error", out.RefreshError).Msg("orders: acción aplicada, relectura fallida")
	}
	return c.JSON(out)
}

func (h *OrdersHandler) shop(c *fiber.Ctx) *usecase.ShopOrdersUseCase {
	return usecase.NewShopOrdersUseCase(sessionAPI(c), h.svc.Exporter, sessionRole(c))
}

// Cart godoc
// @Summary      Carrito: pedidos pendientes y en curso
// @Tags         shop
// @Produce      json
// @Success      200  {object}  dto.CartView
// @Router       /shop/cart [get]
func (h *OrdersHandler) Cart(c *fiber.Ctx) error {
	out, err := h.shop(c).Cart(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddToCart godoc
// @Summary      Añadir al carrito
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CartLinesRequest  true  "Líneas (qty >= 1)"
// @Success      201   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /shop/cart [post]
func (h *OrdersHandler) AddToCart(c *fiber.Ctx) error {
	var in dto.CartLinesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.shop(c).AddToCart(c.UserContext(), in.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        orderId    path  string                  true  "Pedido"
// @Param        productId  path  string                  true  "Producto"
// @Param        body       body  dto.SetQuantityRequest  true  "Cantidad (mínimo 1)"
// @Success      200        {object}  dto.ActionResult
// @Failure      404        {object}  dto.ErrorResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /shop/cart/{orderId}/items/{productId} [put]
func (h *OrdersHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.shop(c).SetQuantity(c.UserContext(), c.Params("orderId"), c.Params("productId"), in.Qty)
	return h.actionDone(c, out, err)
}

// RemoveItem godoc
// @Summary      Quitar una línea del carrito
// @Tags         shop
// @Produce      json
// @Param        orderId    path  string  true  "Pedido"
// @Param        productId  path  string  true  "Producto"
// @Success      200        {object}  dto.ActionResult
// @Router       /shop/cart/{orderId}/items/{productId} [delete]
func (h *OrdersHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.shop(c).RemoveItem(c.UserContext(), c.Params("orderId"), c.Params("productId"))
	return h.actionDone(c, out, err)
}

// RemoveOrder godoc
// @Summary      Quitar un pedido pendiente
// @Tags         shop
// @Produce      json
// @Param        orderId  path  string  true  "Pedido"
// @Success      200      {object}  dto.ActionResult
// @Router       /shop/cart/{orderId} [delete]
func (h *OrdersHandler) RemoveOrder(c *fiber.Ctx) error {
	out, err := h.shop(c).RemoveOrder(c.UserContext(), c.Params("orderId"))
	return h.actionDone(c, out, err)
}

// Confirm godoc
// @Summary      Confirmar pedido
// @Tags         shop
// @Produce      json
// @Param        orderId  path  string  true  "Pedido"
// @Success      200      {object}  dto.ActionResult
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /shop/cart/{orderId}/confirm [post]
func (h *OrdersHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.shop(c).Confirm(c.UserContext(), c.Params("orderId"))
	return h.actionDone(c, out, err)
}

// History godoc
// @Summary      Historial de pedidos
// @Tags         shop
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200     {object}  dto.OrderListView
// @Router       /shop/orders [get]
func (h *OrdersHandler) History(c *fiber.Ctx) error {
	out, err := h.shop(c).History(c.UserContext(), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportHistory godoc
// @Summary      Exportar historial a Excel
// @Tags         shop
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200
// @Router       /shop/orders/export [get]
func (h *OrdersHandler) ExportHistory(c *fiber.Ctx) error {
	data, err := h.shop(c).ExportHistory(c.UserContext(), c.Query("status"))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment("orders.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(data)
}

// DistributorOrders godoc
// @Summary      Pedidos del distribuidor
// @Tags         wholesale
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        q       query  string  false  "Buscar"
// @Param        sort    query  string  false  "Orden"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200     {object}  dto.OrderListView
// @Router       /wholesale/orders [get]
func (h *OrdersHandler) DistributorOrders(c *fiber.Ctx) error {
	q, err := orderQuery(c)
	if err != nil {
		return badBody(c)
	}
	out, err := usecase.NewDistributorOrdersUseCase(sessionAPI(c)).List(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Advance godoc
// @Summary      Avanzar el estado de un pedido
// @Description  Solo se admite la acción siguiente del estado mostrado.
// @Tags         wholesale
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "Pedido"
// @Param        body  body  dto.AdvanceOrderRequest  true  "Estado visto y acción"
// @Success      200   {object}  dto.ActionResult
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /wholesale/orders/{id}/advance [post]
func (h *OrdersHandler) Advance(c *fiber.Ctx) error {
	var in dto.AdvanceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	q, err := orderQuery(c)
	if err != nil {
		return badBody(c)
	}
	out, err := usecase.NewDistributorOrdersUseCase(sessionAPI(c)).
		Advance(c.UserContext(), c.Params("id"), in.Status, orderflow.ActionKind(in.Action), q)
	return h.actionDone(c, out, err)
}

// AdminDistributorOrders godoc
// @Summary      Pedidos de un distribuidor (admin)
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "Distribuidor"
// @Success      200  {object}  dto.OrderListView
// @Router       /admin/distributors/{id}/orders [get]
func (h *OrdersHandler) AdminDistributorOrders(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "ID")
	}
	out, err := usecase.NewDistributorOrdersUseCase(sessionAPI(c)).ListFor(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
