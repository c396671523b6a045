package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
	"github.com/jhoicas/orderly-console/internal/domain/orderflow"
)

const (
	dashboardOrderLimit = 100
	recentOrders        = 5
)

// DashboardAPI lo que leen los tableros de cada rol.
type DashboardAPI interface {
	ports.OrdersAPI
	ports.ProductsAPI
	ports.SalesTeamAPI
	ports.CatalogAPI
	ports.LinkAPI
}

// DashboardUseCase tableros por rol.
type DashboardUseCase struct {
	api DashboardAPI
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(api DashboardAPI) *DashboardUseCase {
	return &DashboardUseCase{api: api}
}

// Distributor pedidos recientes, catálogo y solicitudes de vendedores.
func (uc *DashboardUseCase) Distributor(ctx context.Context) (*dto.DistributorDashboard, error) {
	var (
		page     *entity.OrderPage
		products []entity.Product
		requests []entity.LinkRequest
	)
	limit := dashboardOrderLimit
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page, err = uc.api.ForDistributorCurrent(gctx, entity.OrderQuery{Limit: &limit})
		return err
	})
	g.Go(func() (err error) {
		products, err = uc.api.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		requests, err = uc.api.SalesRequests(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byStatus := orderflow.CountByStatus(page.Orders)
	pendingRequests := 0
	for _, r := range requests {
		if r.Status == entity.LinkPending {
			pendingRequests++
		}
	}
	recent := newestFirst(page.Orders)
	if len(recent) > recentOrders {
		recent = recent[:recentOrders]
	}
	return &dto.DistributorDashboard{
		Stats: []dto.Stat{
			{Label: "Total orders", Value: len(page.Orders)},
			{Label: "Pending confirmations", Value: byStatus[entity.StatusConfirmed]},
			{Label: "Accepted orders", Value: byStatus[entity.StatusAccepted]},
			{Label: "SKUs in inventory", Value: len(products)},
			{Label: "Salesperson requests", Value: pendingRequests},
		},
		RecentOrders: toOrderViews(recent, entity.RoleDistributor),
	}, nil
}

// Shop catálogo público filtrado por nombre, distribuidores y estado del carrito.
func (uc *DashboardUseCase) Shop(ctx context.Context, query string) (*dto.ShopDashboard, error) {
	var (
		products     []entity.Product
		distributors []entity.Distributor
		orders       []entity.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = uc.api.PublicProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		distributors, err = uc.api.Distributors(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = uc.api.MyOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	visible := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if q == "" || containsFold(p.Name, q) {
			visible = append(visible, p)
		}
	}
	cartUnits, inProgress := 0, 0
	for _, o := range orders {
		switch {
		case orderflow.IsCartStatus(o.Status):
			cartUnits += o.Units()
		case orderflow.IsInProgress(o.Status):
			inProgress++
		}
	}
	return &dto.ShopDashboard{
		Stats: []dto.Stat{
			{Label: "Items in cart", Value: cartUnits},
			{Label: "Orders in progress", Value: inProgress},
			{Label: "Distributors", Value: len(distributors)},
		},
		Products:     visible,
		Distributors: nonNil(distributors),
		Query:        strings.TrimSpace(query),
	}, nil
}

// Sales estado del vínculo del vendedor.
func (uc *DashboardUseCase) Sales(ctx context.Context, user entity.SessionUser) (*dto.SalesDashboard, error) {
	st, err := uc.api.LinkStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SalesDashboard{User: user, Status: *st}, nil
}

// Admin resumen de la plataforma a partir de los listados públicos.
func (uc *DashboardUseCase) Admin(ctx context.Context) (*dto.AdminOverview, error) {
	var (
		distributors []entity.Distributor
		products     []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		distributors, err = uc.api.Distributors(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = uc.api.PublicProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.AdminOverview{
		Stats: []dto.Stat{
			{Label: "Distributors", Value: len(distributors)},
			{Label: "Products listed", Value: len(products)},
		},
		Distributors: nonNil(distributors),
	}, nil
}
