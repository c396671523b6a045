package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orderly-console/internal/application/usecase"
)

// DashboardHandler tableros por rol y reportes.
type DashboardHandler struct{}

// NewDashboardHandler construye el handler.
func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// Wholesale godoc
// @Summary      Tablero del distribuidor
// @Tags         wholesale
// @Produce      json
// @Success      200  {object}  dto.DistributorDashboard
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /wholesale/dashboard [get]
func (h *DashboardHandler) Wholesale(c *fiber.Ctx) error {
	out, err := usecase.NewDashboardUseCase(sessionAPI(c)).Distributor(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Shop godoc
// @Summary      Tablero de la tienda
// @Tags         shop
// @Produce      json
// @Param        q    query  string  false  "Buscar producto por nombre"
// @Success      200  {object}  dto.ShopDashboard
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /shop/dashboard [get]
func (h *DashboardHandler) Shop(c *fiber.Ctx) error {
	out, err := usecase.NewDashboardUseCase(sessionAPI(c)).Shop(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Tablero del vendedor
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.SalesDashboard
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /sales/dashboard [get]
func (h *DashboardHandler) Sales(c *fiber.Ctx) error {
	out, err := usecase.NewDashboardUseCase(sessionAPI(c)).Sales(c.UserContext(), *GetUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Admin godoc
// @Summary      Resumen de la plataforma
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.AdminOverview
// @Router       /admin/overview [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	out, err := usecase.NewDashboardUseCase(sessionAPI(c)).Admin(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WholesaleAnalytics godoc
// @Summary      Reportes del distribuidor
// @Tags         wholesale
// @Produce      json
// @Param        range  query  string  false  "7d, 30d, 90d (por defecto 30d)"
// @Success      200    {object}  dto.DistributorAnalyticsView
// @Router       /wholesale/analytics [get]
func (h *DashboardHandler) WholesaleAnalytics(c *fiber.Ctx) error {
	out, err := usecase.NewAnalyticsUseCase(sessionAPI(c)).Distributor(c.UserContext(), c.Query("range"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ShopAnalytics godoc
// @Summary      Reportes de la tienda
// @Tags         shop
// @Produce      json
// @Param        month  query  string  false  "YYYY-MM (por defecto el mes actual)"
// @Success      200    {object}  dto.ShopAnalyticsView
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /shop/analytics [get]
func (h *DashboardHandler) ShopAnalytics(c *fiber.Ctx) error {
	out, err := usecase.NewAnalyticsUseCase(sessionAPI(c)).Shop(c.UserContext(), c.Query("month"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
