package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// DashboardHandler pantalla principal: indicadores y notificaciones.
type DashboardHandler struct{}

// NewDashboardHandler construye el handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Stats godoc
// @Summary      Indicadores del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.DashboardStats
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := queriesOf(c).DashboardStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		out = &entity.DashboardStats{}
	}
	return c.JSON(out)
}

// Notifications godoc
// @Summary      Notificaciones del usuario
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Sólo no leídas"
// @Success      200     {array}  entity.Notification
// @Router       /api/notifications [get]
func (h *DashboardHandler) Notifications(c *fiber.Ctx) error {
	all, err := queriesOf(c).Notifications(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	if !c.QueryBool("unread", false) {
		return c.JSON(all)
	}
	unread := make([]entity.Notification, 0, len(all))
	for _, n := range all {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return c.JSON(unread)
}

// CreateNotification godoc
// @Summary      Crear notificación
// @Description  Sin recipient la notificación es para todos.
// @Tags         dashboard
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNotificationRequest  true  "Notificación"
// @Success      201   {object}  entity.Notification
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications [post]
func (h *DashboardHandler) CreateNotification(c *fiber.Ctx) error {
	var in dto.CreateNotificationRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	kind := in.Kind
	if kind == "" {
		kind = "info"
	}
	out, err := queriesOf(c).CreateNotification(c.Context(), entity.Notification{
		Recipient: in.Recipient,
		Title:     in.Title,
		Message:   in.Message,
		Kind:      kind,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MarkNotificationRead godoc
// @Summary      Marcar notificación como leída
// @Tags         dashboard
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *DashboardHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := queriesOf(c).MarkNotificationRead(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteNotification godoc
// @Summary      Eliminar notificación
// @Tags         dashboard
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      204
// @Router       /api/notifications/{id} [delete]
func (h *DashboardHandler) DeleteNotification(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := queriesOf(c).DeleteNotification(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
