package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orderly-console/internal/application/usecase"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// ProfileHandler perfil del usuario, común a todos los roles.
type ProfileHandler struct{}

// NewProfileHandler construye el handler.
func NewProfileHandler() *ProfileHandler { return &ProfileHandler{} }

func (h *ProfileHandler) uc(c *fiber.Ctx) *usecase.ProfileUseCase {
	api := sessionAPI(c)
	return usecase.NewProfileUseCase(api, api)
}

// Get godoc
// @Summary      Perfil
// @Tags         profile
// @Produce      json
// @Success      200  {object}  entity.Profile
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc(c).Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar perfil
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body  entity.ProfileUpdate  true  "Campos a cambiar"
// @Success      200   {object}  entity.Profile
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in entity.ProfileUpdate
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc(c).Update(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UploadPhoto godoc
// @Summary      Subir foto de perfil
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen"
// @Success      200   {object}  entity.Profile
// @Router       /api/profile/photo [post]
func (h *ProfileHandler) UploadPhoto(c *fiber.Ctx) error {
	return withFormFile(c, func(name string, r io.Reader) error {
		out, err := h.uc(c).UploadPhoto(c.UserContext(), name, r)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	})
}
