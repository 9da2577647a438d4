package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/application/reports"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// replenishmentService lo implementa *reports.ReplenishmentUseCase.
type replenishmentService interface {
	GenerateReplenishmentList(ctx context.Context, src reports.Source) ([]dto.ReplenishmentSuggestionDTO, error)
}

// exportService lo implementa *reports.ExportUseCase.
type exportService interface {
	Export(ctx context.Context, src reports.Source, kind, format string) ([]byte, string, string, error)
}

// ReportHandler módulo de reportes: reposición, exportaciones y registros libres.
type ReportHandler struct {
	replenishUC replenishmentService
	exportUC    exportService
}

// NewReportHandler construye el handler.
func NewReportHandler(replenishUC replenishmentService, exportUC exportService) *ReportHandler {
	return &ReportHandler{replenishUC: replenishUC, exportUC: exportUC}
}

// Replenishment godoc
// @Summary      Lista de reposición sugerida
// @Description  Productos bajo su punto de reorden, priorizados por margen bruto.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/replenishment [get]
func (h *ReportHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishUC.GenerateReplenishmentList(c.Context(), queriesOf(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar tabla
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        kind    path   string  true   "products | invoices | orders"
// @Param        format  query  string  false  "xlsx (por defecto) | csv"
// @Success      200     {file}    binary
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports/export/{kind} [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	kind, err := pathParam(c, "kind")
	if err != nil {
		return respondError(c, err)
	}
	var q dto.ExportQuery
	if err := parseQuery(c, &q); err != nil {
		return respondError(c, err)
	}
	data, filename, contentType, err := h.exportUC.Export(c.Context(), queriesOf(c), kind, q.Format)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ListEntries godoc
// @Summary      Listar registros libres
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        limit     query  int     false  "Límite"  default(100)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200       {object}  dto.ListResponse[entity.DataEntry]
// @Router       /api/reports/entries [get]
func (h *ReportHandler) ListEntries(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return respondError(c, err)
	}
	all, err := queriesOf(c).DataEntries(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	category := c.Query("category")
	if category == "" {
		return c.JSON(dto.Paginate(all, page))
	}
	filtered := make([]entity.DataEntry, 0, len(all))
	for _, e := range all {
		if e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return c.JSON(dto.Paginate(filtered, page))
}

// CreateEntry godoc
// @Summary      Crear registro libre
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDataEntryRequest  true  "Registro"
// @Success      201   {object}  entity.DataEntry
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/entries [post]
func (h *ReportHandler) CreateEntry(c *fiber.Ctx) error {
	var in dto.CreateDataEntryRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).CreateDataEntry(c.Context(), entity.DataEntry{Category: in.Category, Payload: in.Payload})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteEntry godoc
// @Summary      Eliminar registro libre
// @Tags         reports
// @Security     Bearer
// @Param        id   path  string  true  "ID del registro"
// @Success      204
// @Router       /api/reports/entries/{id} [delete]
func (h *ReportHandler) DeleteEntry(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := queriesOf(c).DeleteDataEntry(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
