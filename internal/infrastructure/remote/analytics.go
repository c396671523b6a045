package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// DistributorSummary GET /analytics/distributor/summary?range=.
func (c *Client) DistributorSummary(ctx context.Context, rng string) (*entity.DistributorSummary, error) {
	var out entity.DistributorSummary
	if err := c.do(ctx, http.MethodGet, "/analytics/distributor/summary?range="+url.QueryEscape(rng), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DistributorTopProducts GET /analytics/distributor/top-products.
func (c *Client) DistributorTopProducts(ctx context.Context, rng string, limit int) ([]entity.TopProduct, error) {
	var out struct {
		Items []entity.TopProduct `json:"items"`
	}
	path := fmt.Sprintf("/analytics/distributor/top-products?range=%s&limit=%d", url.QueryEscape(rng), limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// DistributorTopShops GET /analytics/distributor/top-shops.
func (c *Client) DistributorTopShops(ctx context.Context, rng string, limit int) ([]entity.TopShop, error) {
	var out struct {
		Shops []entity.TopShop `json:"shops"`
	}
	path := fmt.Sprintf("/analytics/distributor/top-shops?range=%s&limit=%d", url.QueryEscape(rng), limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Shops, nil
}

// ShopSummary GET /analytics/shop/summary[?month=YYYY-MM].
func (c *Client) ShopSummary(ctx context.Context, month string) (*entity.ShopSummary, error) {
	path := "/analytics/shop/summary"
	if month != "" {
		path += "?month=" + url.QueryEscape(month)
	}
	var out entity.ShopSummary
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ShopFrequentItems GET /analytics/shop/frequent-items.
func (c *Client) ShopFrequentItems(ctx context.Context, months, limit int) ([]entity.FrequentItem, error) {
	var out struct {
		Items []entity.FrequentItem `json:"items"`
	}
	path := fmt.Sprintf("/analytics/shop/frequent-items?months=%d&limit=%d", months, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
