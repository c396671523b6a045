package http

import (
	"github.com/gofiber/fiber/v2"
)

// NotificationsHandler expone el estado de notificaciones del poller de la sesión.
type NotificationsHandler struct{}

// NewNotificationsHandler construye el handler.
func NewNotificationsHandler() *NotificationsHandler { return &NotificationsHandler{} }

// List godoc
// @Summary      Notificaciones (última copia del poller)
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notifications.Snapshot
// @Router       /api/notifications [get]
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	return c.JSON(GetWorkspace(c).Notifications.Snapshot())
}

// Refresh godoc
// @Summary      Refrescar notificaciones ahora
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notifications.Snapshot
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/notifications/refresh [post]
func (h *NotificationsHandler) Refresh(c *fiber.Ctx) error {
	p := GetWorkspace(c).Notifications
	if err := p.Refresh(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(p.Snapshot())
}

// MarkRead godoc
// @Summary      Marcar como leída
// @Tags         notifications
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  notifications.Snapshot
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "ID")
	}
	p := GetWorkspace(c).Notifications
	if err := p.MarkRead(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(p.Snapshot())
}

// MarkUnread godoc
// @Summary      Marcar como no leída
// @Tags         notifications
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  notifications.Snapshot
// @Router       /api/notifications/{id}/unread [post]
func (h *NotificationsHandler) MarkUnread(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingParam(c, "ID")
	}
	p := GetWorkspace(c).Notifications
	if err := p.MarkUnread(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(p.Snapshot())
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notifications.Snapshot
// @Router       /api/notifications/mark-all-read [post]
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	p := GetWorkspace(c).Notifications
	if err := p.MarkAllRead(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(p.Snapshot())
}

// Clear godoc
// @Summary      Borrar todas
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notifications.Snapshot
// @Router       /api/notifications/clear [post]
func (h *NotificationsHandler) Clear(c *fiber.Ctx) error {
	p := GetWorkspace(c).Notifications
	if err := p.ClearAll(c.UserContext()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(p.Snapshot())
}
