package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/usecase"
)

// InvoiceHandler facturas del servidor y resumen local, montado bajo /shop, /sales y /wholesale.
type InvoiceHandler struct {
	svc Services
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(svc Services) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

func (h *InvoiceHandler) uc(c *fiber.Ctx) *usecase.InvoiceUseCase {
	return usecase.NewInvoiceUseCase(sessionAPI(c), h.svc.PDF, sessionRole(c))
}

// HTML godoc
// @Summary      Factura (HTML del servidor)
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "Pedido"
// @Success      200  {object}  dto.InvoiceHTMLResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /shop/orders/{id}/invoice [get]
func (h *InvoiceHandler) HTML(c *fiber.Ctx) error {
	out, err := h.uc(c).HTML(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar factura PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "Pedido"
// @Success      200
// @Router       /shop/orders/{id}/invoice/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc(c).PDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, "invoice-"+id+".pdf", data)
}

// Send godoc
// @Summary      Enviar factura por correo
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "Pedido"
// @Param        body  body  dto.SendInvoiceRequest  false "Destinatario (vacío = correo de la tienda)"
// @Success      200   {object}  entity.InvoiceDelivery
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /shop/orders/{id}/invoice/send [post]
func (h *InvoiceHandler) Send(c *fiber.Ctx) error {
	var in dto.SendInvoiceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc(c).Send(c.UserContext(), c.Params("id"), in.To)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen imprimible del pedido (generado localmente)
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "Pedido"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /shop/orders/{id}/summary.pdf [get]
func (h *InvoiceHandler) Summary(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.uc(c).Summary(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, "order-"+id+".pdf", data)
}

func sendPDF(c *fiber.Ctx, filename string, data []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(data)
}
