package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain"
)

const (
	DefaultRange        = "30d"
	topLimit            = 10
	frequentItemsMonths = 3
)

var (
	rangeRe = regexp.MustCompile(`^\d+d$`)
	monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// AnalyticsUseCase reportes de distribuidor y de tienda. Las lecturas independientes se
// lanzan en paralelo; cualquier fallo hace fallar la página.
type AnalyticsUseCase struct {
	api ports.AnalyticsAPI
	now func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(api ports.AnalyticsAPI) *AnalyticsUseCase {
	return &AnalyticsUseCase{api: api, now: time.Now}
}

// NormalizeRange acepta rangos "<n>d" ("7d", "30d", "90d"); cualquier otro valor cae a 30d.
func NormalizeRange(rng string) string {
	rng = strings.ToLower(strings.TrimSpace(rng))
	if !rangeRe.MatchString(rng) || rng == "0d" {
		return DefaultRange
	}
	return rng
}

// Distributor resumen, productos y tiendas principales del rango.
func (uc *AnalyticsUseCase) Distributor(ctx context.Context, rng string) (*dto.DistributorAnalyticsView, error) {
	rng = NormalizeRange(rng)
	view := &dto.DistributorAnalyticsView{Range: rng}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.api.DistributorSummary(gctx, rng)
		if err != nil {
			return err
		}
		view.Summary = *s
		return nil
	})
	g.Go(func() error {
		items, err := uc.api.DistributorTopProducts(gctx, rng, topLimit)
		view.TopProducts = nonNil(items)
		return err
	})
	g.Go(func() error {
		shops, err := uc.api.DistributorTopShops(gctx, rng, topLimit)
		view.TopShops = nonNil(shops)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// Shop resumen del mes (YYYY-MM; vacío = mes actual) y artículos frecuentes de los últimos 3 meses.
func (uc *AnalyticsUseCase) Shop(ctx context.Context, month string) (*dto.ShopAnalyticsView, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		month = uc.now().Format("2006-01")
	}
	if !monthRe.MatchString(month) {
		return nil, domain.Invalid("Month must use the YYYY-MM format")
	}
	view := &dto.ShopAnalyticsView{Month: month}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.api.ShopSummary(gctx, month)
		if err != nil {
			return err
		}
		view.Summary = *s
		return nil
	})
	g.Go(func() error {
		items, err := uc.api.ShopFrequentItems(gctx, frequentItemsMonths, topLimit)
		view.FrequentItems = nonNil(items)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
