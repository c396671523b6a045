package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/application/usecase"
)

// InventoryHandler catálogo del distribuidor (protegido, /wholesale).
type InventoryHandler struct {
	svc Services
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc Services) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func (h *InventoryHandler) uc(c *fiber.Ctx) *usecase.InventoryUseCase {
	api := sessionAPI(c)
	return usecase.NewInventoryUseCase(api, api, h.svc.Parser, h.svc.UpstreamBaseURL)
}

// List godoc
// @Summary      Listar inventario
// @Tags         wholesale
// @Produce      json
// @Param        q    query  string  false  "Buscar por id o nombre"
// @Success      200  {object}  dto.InventoryView
// @Router       /wholesale/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc(c).List(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         wholesale
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  entity.Product
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /wholesale/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc(c).Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         wholesale
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductRequest  true  "name, price, stock, image, description"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /wholesale/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc(c).Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar producto
// @Tags         wholesale
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.ProductPatchRequest  true  "Campos a cambiar"
// @Success      200   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /wholesale/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductPatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc(c).Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         wholesale
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Router       /wholesale/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc(c).Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage godoc
// @Summary      Subir imagen de producto
// @Tags         wholesale
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen"
// @Success      201   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /wholesale/inventory/images [post]
func (h *InventoryHandler) UploadImage(c *fiber.Ctx) error {
	return withFormFile(c, func(name string, r io.Reader) error {
		url, err := h.uc(c).UploadImage(c.UserContext(), name, r)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{URL: url})
	})
}

// PreviewImport godoc
// @Summary      Previsualizar importación CSV/XLSX
// @Tags         wholesale
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo .csv o .xlsx"
// @Success      200   {object}  dto.ImportPreview
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /wholesale/inventory/import/preview [post]
func (h *InventoryHandler) PreviewImport(c *fiber.Ctx) error {
	return withFormFile(c, func(name string, r io.Reader) error {
		out, err := h.uc(c).PreviewImport(name, r)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	})
}

// ImportAll godoc
// @Summary      Importar todas las filas válidas
// @Tags         wholesale
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportRequest  true  "Filas de la previsualización"
// @Success      201   {object}  entity.BulkResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /wholesale/inventory/import [post]
func (h *InventoryHandler) ImportAll(c *fiber.Ctx) error {
	var in dto.ImportRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc(c).ImportAll(c.UserContext(), in.Rows)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ImportRow godoc
// @Summary      Importar una fila
// @Tags         wholesale
// @Accept       json
// @Produce      json
// @Param        body  body  ports.CatalogRow  true  "Fila"
// @Success      201   {object}  entity.Product
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /wholesale/inventory/import/row [post]
func (h *InventoryHandler) ImportRow(c *fiber.Ctx) error {
	var row ports.CatalogRow
	if err := c.BodyParser(&row); err != nil {
		return badBody(c)
	}
	out, err := h.uc(c).ImportRow(c.UserContext(), row)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
