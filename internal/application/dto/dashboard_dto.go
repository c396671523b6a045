package dto

import (
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// Stat tarjeta numérica del dashboard.
type Stat struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// DistributorDashboard tablero del distribuidor.
type DistributorDashboard struct {
	Stats        []Stat      `json:"stats"`
	RecentOrders []OrderView `json:"recentOrders"`
}

// ShopDashboard tablero de la tienda.
type ShopDashboard struct {
	Stats        []Stat               `json:"stats"`
	Products     []entity.Product     `json:"products"`
	Distributors []entity.Distributor `json:"distributors"`
	Query        string               `json:"query,omitempty"`
}

// SalesDashboard tablero del vendedor.
type SalesDashboard struct {
	User   entity.SessionUser `json:"user"`
	Status entity.LinkStatus  `json:"status"`
}

// AdminOverview resumen de la plataforma.
type AdminOverview struct {
	Stats        []Stat               `json:"stats"`
	Distributors []entity.Distributor `json:"distributors"`
}

// SalesTeamView solicitudes de vendedores y vendedores vinculados.
type SalesTeamView struct {
	Pending      []entity.LinkRequest `json:"pending"`
	Decided      []entity.LinkRequest `json:"decided"`
	Salespersons []entity.LinkRequest `json:"salespersons"`
}
