package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/application/reports"
)

// summaryService lo implementa *reports.SummaryUseCase.
type summaryService interface {
	GetSummary(ctx context.Context, src reports.Source) (*dto.SummaryDTO, error)
}

// AnalyticsHandler maneja los endpoints de analítica: resumen y pérdidas y ganancias.
type AnalyticsHandler struct {
	summaryUC summaryService
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(summaryUC summaryService) *AnalyticsHandler {
	return &AnalyticsHandler{summaryUC: summaryUC}
}

// Summary godoc
// @Summary      Resumen de analítica
// @Description  Indicadores del dashboard más el resultado de hoy y del mes en curso.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.summaryUC.GetSummary(c.Context(), queriesOf(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProfitLoss godoc
// @Summary      Pérdidas y ganancias
// @Description  Facturas pagadas en [from, to). Fechas en formato YYYY-MM-DD.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Inicio (YYYY-MM-DD)"
// @Param        to    query  string  true  "Fin exclusivo (YYYY-MM-DD)"
// @Success      200   {object}  entity.ProfitLoss
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/analytics/profit-loss [get]
func (h *AnalyticsHandler) ProfitLoss(c *fiber.Ctx) error {
	var q dto.ProfitLossQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	from, to, err := q.Range()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "fechas inválidas"})
	}
	if !from.Before(to) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAMS", Message: "from debe ser anterior a to"})
	}
	out, err := queriesOf(c).ProfitLoss(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
