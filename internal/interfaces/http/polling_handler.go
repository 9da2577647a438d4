package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/session"
)

// PollingHandler expone el controlador de polling de la sesión: el dashboard lo
// enciende al montarse, lo apaga al desmontarse e informa la pestaña visible.
type PollingHandler struct{}

// NewPollingHandler construye el handler.
func NewPollingHandler() *PollingHandler {
	return &PollingHandler{}
}

// Get godoc
// @Summary      Política de polling vigente
// @Tags         polling
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PollingResponse
// @Router       /api/polling [get]
func (h *PollingHandler) Get(c *fiber.Ctx) error {
	return c.JSON(toPollingResponse(GetWorkspace(c)))
}

// Enable godoc
// @Summary      Activar polling
// @Tags         polling
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PollingResponse
// @Router       /api/polling/enable [post]
func (h *PollingHandler) Enable(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	ws.Polling.EnablePolling()
	return c.JSON(toPollingResponse(ws))
}

// Disable godoc
// @Summary      Desactivar polling
// @Tags         polling
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PollingResponse
// @Router       /api/polling/disable [post]
func (h *PollingHandler) Disable(c *fiber.Ctx) error {
	ws := GetWorkspace(c)
	ws.Polling.DisablePolling()
	return c.JSON(toPollingResponse(ws))
}

// SetModule godoc
// @Summary      Informar la pestaña visible
// @Tags         polling
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PollingModuleRequest  true  "Módulo"
// @Success      200   {object}  dto.PollingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/polling/module [put]
func (h *PollingHandler) SetModule(c *fiber.Ctx) error {
	var in dto.PollingModuleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	m, ok := polling.ParseModule(in.Module)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "módulo desconocido"})
	}
	ws := GetWorkspace(c)
	ws.Polling.SetActiveModule(m)
	return c.JSON(toPollingResponse(ws))
}

func toPollingResponse(ws *session.Workspace) dto.PollingResponse {
	p := ws.Polling.Policy()
	status := ws.Queries.SyncStatus()
	entities := make([]dto.PollingEntityResponse, 0, len(status))
	for _, s := range status {
		entities = append(entities, dto.PollingEntityResponse{
			Entity:          string(s.Entity),
			IntervalSeconds: int(s.Interval / time.Second),
			Stale:           s.Stale,
			Invalidations:   s.Invalidations,
		})
	}
	return dto.PollingResponse{IsActive: p.IsActive, ActiveModule: string(p.ActiveModule), Entities: entities}
}
