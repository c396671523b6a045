package remote

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// productPayload forma de escritura: el precio viaja como número JSON, no como string.
type productPayload struct {
	Name        string      `json:"name"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	Image       *string     `json:"image"`
	Description string      `json:"description"`
}

func toPayload(in entity.ProductInput) productPayload {
	return productPayload{
		Name:        in.Name,
		Price:       json.Number(in.Price.String()),
		Stock:       in.Stock,
		Image:       in.Image,
		Description: in.Description,
	}
}

type productPatchPayload struct {
	Name        *string     `json:"name,omitempty"`
	Price       json.Number `json:"price,omitempty"`
	Stock       *int        `json:"stock,omitempty"`
	Image       *string     `json:"image,omitempty"`
	Description *string     `json:"description,omitempty"`
}

type productEnvelope struct {
	Product entity.Product `json:"product"`
}

type productsEnvelope struct {
	Products []entity.Product `json:"products"`
}

// ListProducts GET /products (catálogo del distribuidor autenticado).
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var out productsEnvelope
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// GetProduct GET /products/{id}.
func (c *Client) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var out productEnvelope
	if err := c.do(ctx, http.MethodGet, "/products/"+seg(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// CreateProduct POST /products.
func (c *Client) CreateProduct(ctx context.Context, in entity.ProductInput) (*entity.Product, error) {
	var out productEnvelope
	if err := c.do(ctx, http.MethodPost, "/products", toPayload(in), &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// UpdateProduct PUT /products/{id} con los campos presentes en el patch.
func (c *Client) UpdateProduct(ctx context.Context, id string, in entity.ProductPatch) (*entity.Product, error) {
	payload := productPatchPayload{
		Name:        in.Name,
		Stock:       in.Stock,
		Image:       in.Image,
		Description: in.Description,
	}
	if in.Price != nil {
		payload.Price = json.Number(in.Price.String())
	}
	var out productEnvelope
	if err := c.do(ctx, http.MethodPut, "/products/"+seg(id), payload, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// DeleteProduct DELETE /products/{id}.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+seg(id), nil, nil)
}

// BulkCreateProducts POST /products/bulk.
func (c *Client) BulkCreateProducts(ctx context.Context, items []entity.ProductInput) (*entity.BulkResult, error) {
	payload := make([]productPayload, 0, len(items))
	for _, it := range items {
		payload = append(payload, toPayload(it))
	}
	var out entity.BulkResult
	if err := c.do(ctx, http.MethodPost, "/products/bulk", map[string]any{"products": payload}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PublicProducts GET /products/public.
func (c *Client) PublicProducts(ctx context.Context) ([]entity.Product, error) {
	var out productsEnvelope
	if err := c.do(ctx, http.MethodGet, "/products/public", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}
