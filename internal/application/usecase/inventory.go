package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// LowStockThreshold unidades por debajo de las cuales un producto se marca como stock bajo.
const LowStockThreshold = 30

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// InventoryUseCase catálogo del distribuidor: CRUD, imágenes e importación desde archivo.
type InventoryUseCase struct {
	products ports.ProductsAPI
	uploads  ports.UploadAPI
	parser   ports.CatalogParser
	baseURL  string // base de la API remota para resolver URLs de imagen relativas
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(products ports.ProductsAPI, uploads ports.UploadAPI, parser ports.CatalogParser, baseURL string) *InventoryUseCase {
	return &InventoryUseCase{
		products: products,
		uploads:  uploads,
		parser:   parser,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// List catálogo filtrado por id o nombre (sin distinguir mayúsculas) y alerta de stock bajo.
// La alerta se calcula sobre el catálogo completo, no sobre el filtrado.
func (uc *InventoryUseCase) List(ctx context.Context, query string) (*dto.InventoryView, error) {
	all, err := uc.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	visible := make([]entity.Product, 0, len(all))
	low := []entity.Product{}
	for _, p := range all {
		p.Image = uc.resolveImage(p.Image)
		if p.Stock < LowStockThreshold {
			low = append(low, p)
		}
		if q == "" || containsFold(p.ID, q) || containsFold(p.Name, q) {
			visible = append(visible, p)
		}
	}
	return &dto.InventoryView{
		Products:      visible,
		Total:         len(all),
		LowStock:      low,
		LowStockLimit: LowStockThreshold,
		Query:         strings.TrimSpace(query),
	}, nil
}

// Get producto por id.
func (uc *InventoryUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Invalid("Product is required")
	}
	p, err := uc.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Image = uc.resolveImage(p.Image)
	return p, nil
}

// Create alta de producto desde el formulario.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.ProductRequest) (*entity.Product, error) {
	input := entity.ProductInput{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Stock:       in.Stock,
		Image:       optional(in.Image),
		Description: strings.TrimSpace(in.Description),
	}
	if err := validateProduct(input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}
	return uc.products.CreateProduct(ctx, input)
}

// Update edición parcial; solo se validan los campos presentes.
func (uc *InventoryUseCase) Update(ctx context.Context, id string, in dto.ProductPatchRequest) (*entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Invalid("Product is required")
	}
	patch := entity.ProductPatch{Price: in.Price, Stock: in.Stock}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("Product name is required")
		}
		patch.Name = &name
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.Invalid("Price must be a positive number")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, domain.Invalid("Stock cannot be negative")
	}
	if in.Image != nil {
		img := strings.TrimSpace(*in.Image)
		patch.Image = &img
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		patch.Description = &desc
	}
	return uc.products.UpdateProduct(ctx, id, patch)
}

// Delete elimina un producto.
func (uc *InventoryUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Invalid("Product is required")
	}
	return uc.products.DeleteProduct(ctx, id)
}

// UploadImage sube la imagen y devuelve su URL absoluta.
func (uc *InventoryUseCase) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	if !imageExts[strings.ToLower(path.Ext(filename))] {
		return "", domain.Invalid("Please choose an image file")
	}
	url, err := uc.uploads.UploadImage(ctx, filename, r)
	if err != nil {
		return "", err
	}
	return uc.ResolveImageURL(url), nil
}

// ResolveImageURL deja intactas las URLs absolutas o con ruta absoluta; las relativas se
// cuelgan de la base de la API.
func (uc *InventoryUseCase) ResolveImageURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "/") {
		return u
	}
	return uc.baseURL + "/" + u
}

func (uc *InventoryUseCase) resolveImage(img *string) *string {
	if img == nil {
		return nil
	}
	resolved := uc.ResolveImageURL(*img)
	return &resolved
}

// PreviewImport lee el archivo sin crear nada.
func (uc *InventoryUseCase) PreviewImport(filename string, r io.Reader) (*dto.ImportPreview, error) {
	rows, err := uc.parser.ParseCatalog(filename, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	if rows == nil {
		rows = []ports.CatalogRow{}
	}
	return &dto.ImportPreview{Rows: rows}, nil
}

// ImportAll crea en bloque las filas con nombre y precio mayor que cero.
func (uc *InventoryUseCase) ImportAll(ctx context.Context, rows []ports.CatalogRow) (*entity.BulkResult, error) {
	items := ImportableRows(rows)
	if len(items) == 0 {
		return nil, domain.Invalid("Nothing to import. Ensure rows have valid name and price.")
	}
	return uc.products.BulkCreateProducts(ctx, items)
}

// ImportRow crea un único producto a partir de una fila del archivo.
func (uc *InventoryUseCase) ImportRow(ctx context.Context, row ports.CatalogRow) (*entity.Product, error) {
	in := importInput(row)
	if in.Name == "" || !in.Price.IsPositive() {
		return nil, domain.Invalid("Ensure the row has a valid name and price.")
	}
	return uc.products.CreateProduct(ctx, in)
}

// ImportableRows convierte filas a altas descartando las que no tienen nombre o precio.
func ImportableRows(rows []ports.CatalogRow) []entity.ProductInput {
	items := make([]entity.ProductInput, 0, len(rows))
	for _, r := range rows {
		in := importInput(r)
		if in.Name == "" || !in.Price.IsPositive() {
			continue
		}
		items = append(items, in)
	}
	return items
}

func importInput(r ports.CatalogRow) entity.ProductInput {
	stock := r.Input.Stock
	if stock < 0 {
		stock = 0
	}
	return entity.ProductInput{
		Name:  strings.TrimSpace(r.Input.Name),
		Price: r.Input.Price,
		Stock: stock,
	}
}

func validateProduct(name string, price decimal.Decimal, stock int) error {
	if name == "" {
		return domain.Invalid("Product name is required")
	}
	if price.IsNegative() {
		return domain.Invalid("Price must be a positive number")
	}
	if stock < 0 {
		return domain.Invalid("Stock cannot be negative")
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
