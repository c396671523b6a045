package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// ProductRequest alta de producto desde el formulario.
type ProductRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// ProductPatchRequest edición parcial.
type ProductPatchRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Image       *string          `json:"image"`
	Description *string          `json:"description"`
}

// InventoryView catálogo del distribuidor con alerta de stock bajo.
type InventoryView struct {
	Products      []entity.Product `json:"products"`
	Total         int              `json:"total"`
	LowStock      []entity.Product `json:"lowStock"`
	LowStockLimit int              `json:"lowStockLimit"`
	Query         string           `json:"query,omitempty"`
}

// ImportPreview filas leídas de un archivo antes de crear nada.
type ImportPreview struct {
	Rows []ports.CatalogRow `json:"rows"`
}

// ImportRequest filas a crear (todas o una).
type ImportRequest struct {
	Rows []ports.CatalogRow `json:"rows"`
}

// UploadResponse URL de la imagen subida.
type UploadResponse struct {
	URL string `json:"url"`
}
