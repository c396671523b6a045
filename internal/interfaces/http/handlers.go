package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orderly-console/internal/application/dto"
	"github.com/jhoicas/orderly-console/internal/application/ports"
	"github.com/jhoicas/orderly-console/internal/domain/entity"
)

// Services adaptadores locales compartidos por todas las sesiones. La API remota no está aquí:
// cada petición usa el cliente de su propio workspace.
type Services struct {
	Exporter        ports.OrderExporter
	PDF             ports.OrderPDFGenerator
	Parser          ports.CatalogParser
	Prefs           ports.PreferenceStore
	UpstreamBaseURL string
}

func sessionAPI(c *fiber.Ctx) ports.API {
	return GetWorkspace(c).API
}

func sessionRole(c *fiber.Ctx) entity.Role {
	if u := GetUser(c); u != nil {
		return u.Role
	}
	return entity.RoleNone
}

// orderQuery lee los filtros del listado del distribuidor. Limit/Offset solo se envían si vienen.
func orderQuery(c *fiber.Ctx) (entity.OrderQuery, error) {
	var in dto.OrderQueryRequest
	if err := c.QueryParser(&in); err != nil {
		return entity.OrderQuery{}, err
	}
	q := entity.OrderQuery{Status: in.Status, Q: in.Q, Sort: in.Sort}
	if c.Query("limit") != "" || c.Query("offset") != "" {
		in.DefaultPage()
		q.Limit, q.Offset = &in.Limit, &in.Offset
	}
	return q, nil
}
