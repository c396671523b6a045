package entity

import "github.com/shopspring/decimal"

// DistributorTotals agregados del distribuidor en un rango de días.
type DistributorTotals struct {
	Orders        int             `json:"orders"`
	Items         int             `json:"items"`
	Revenue       decimal.Decimal `json:"revenue"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
}

// DistributorTrendPoint punto diario de la serie.
type DistributorTrendPoint struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Items   int             `json:"items"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DistributorSummary respuesta de /analytics/distributor/summary.
type DistributorSummary struct {
	RangeDays int                     `json:"rangeDays"`
	Totals    DistributorTotals       `json:"totals"`
	Trend     []DistributorTrendPoint `json:"trend"`
}

// TopProduct producto más vendido.
type TopProduct struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// TopShop tienda con más compras.
type TopShop struct {
	ShopID  string          `json:"shopId"`
	Name    string          `json:"name"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ShopTotals agregados mensuales de la tienda.
type ShopTotals struct {
	Orders        int             `json:"orders"`
	Items         int             `json:"items"`
	Spend         decimal.Decimal `json:"spend"`
	AvgOrderValue decimal.Decimal `json:"avgOrderValue"`
}

// ShopTrendPoint punto diario de gasto.
type ShopTrendPoint struct {
	Date   string          `json:"date"`
	Orders int             `json:"orders"`
	Items  int             `json:"items"`
	Spend  decimal.Decimal `json:"spend"`
}

// ShopSummary respuesta de /analytics/shop/summary.
type ShopSummary struct {
	Month  string           `json:"month"`
	Totals ShopTotals       `json:"totals"`
	Trend  []ShopTrendPoint `json:"trend"`
}

// FrequentItem artículo comprado con frecuencia.
type FrequentItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Count     int             `json:"count"`
	Qty       int             `json:"qty"`
	Spend     decimal.Decimal `json:"spend"`
}
