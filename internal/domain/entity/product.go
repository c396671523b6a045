package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de un distribuidor.
type Product struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"ownerId,omitempty"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock"`
	Image           *string         `json:"image"`
	Description     string          `json:"description"`
	DistributorName string          `json:"distributorName,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProductInput datos para crear un producto.
type ProductInput struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       *string         `json:"image"`
	Description string          `json:"description"`
}

// ProductPatch actualización parcial (nil = sin cambio).
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// BulkResult respuesta de /products/bulk.
type BulkResult struct {
	Created  int       `json:"created"`
	Products []Product `json:"products"`
}
