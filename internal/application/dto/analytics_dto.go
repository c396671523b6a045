package dto

import "github.com/jhoicas/orderly-console/internal/domain/entity"

// DistributorAnalyticsView reportes del distribuidor para un rango.
type DistributorAnalyticsView struct {
	Range       string                    `json:"range"`
	Summary     entity.DistributorSummary `json:"summary"`
	TopProducts []entity.TopProduct       `json:"topProducts"`
	TopShops    []entity.TopShop          `json:"topShops"`
}

// ShopAnalyticsView reportes de la tienda para un mes.
type ShopAnalyticsView struct {
	Month         string                `json:"month"`
	Summary       entity.ShopSummary    `json:"summary"`
	FrequentItems []entity.FrequentItem `json:"frequentItems"`
}
