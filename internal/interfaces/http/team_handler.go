package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/saleslink"
	"github.com/jhoicas/orderly-console/internal/application/usecase"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// TeamHandler vínculo vendedor ↔ distribuidor desde ambos lados.
type TeamHandler struct{}

// NewTeamHandler construye el handler.
func NewTeamHandler() *TeamHandler { return &TeamHandler{} }

// SalesTeam godoc
// @Summary      Solicitudes y vendedores vinculados
// @Tags         wholesale
// @Produce      json
// @Success      200  {object}  dto.SalesTeamView
// @Router       /wholesale/sales-team [get]
func (h *TeamHandler) SalesTeam(c *fiber.Ctx) error {
	out, err := usecase.NewSalesTeamUseCase(sessionAPI(c)).View(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud de vendedor
// @Tags         wholesale
// @Produce      json
// @Param        id   path  string  true  "Solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Router       /wholesale/sales-team/requests/{id}/approve [post]
func (h *TeamHandler) Approve(c *fiber.Ctx) error {
	out, err := usecase.NewSalesTeamUseCase(sessionAPI(c)).Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar solicitud de vendedor
// @Tags         wholesale
// @Produce      json
// @Param        id   path  string  true  "Solicitud"
// @Success      200  {object}  dto.MessageResponse
// @Router       /wholesale/sales-team/requests/{id}/reject [post]
func (h *TeamHandler) Reject(c *fiber.Ctx) error {
	out, err := usecase.NewSalesTeamUseCase(sessionAPI(c)).Reject(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Unlink godoc
// @Summary      Desvincular vendedor
// @Tags         wholesale
// @Produce      json
// @Param        id   path  string  true  "Vendedor"
// @Success      200  {object}  dto.MessageResponse
// @Router       /wholesale/sales-team/salespersons/{id} [delete]
func (h *TeamHandler) Unlink(c *fiber.Ctx) error {
	out, err := usecase.NewSalesTeamUseCase(sessionAPI(c)).Unlink(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LinkPage godoc
// @Summary      Estado del vínculo del vendedor
// @Tags         sales
// @Produce      json
// @Param        from  query  string  false  "Página a la que volver tras la aprobación"
// @Success      200   {object}  dto.LinkPageView
// @Router       /sales/link-distributor [get]
func (h *TeamHandler) LinkPage(c *fiber.Ctx) error {
	st, err := GetWorkspace(c).Links.Status(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LinkPageView{
		Status:     *st,
		ReturnTo:   saleslink.ReturnTarget(c.Query("from")),
		CanProceed: st.State == entity.LinkApproved,
	})
}

// RequestLink godoc
// @Summary      Solicitar vínculo con un distribuidor
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LinkDistributorRequest  true  "Email del distribuidor"
// @Success      201   {object}  entity.LinkRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /sales/link-distributor [post]
func (h *TeamHandler) RequestLink(c *fiber.Ctx) error {
	var in dto.LinkDistributorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := GetWorkspace(c).Links.RequestLink(c.UserContext(), GetUser(c).ID, in.DistributorEmail)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
