package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/application/reports"
)

// labelService lo implementa *reports.LabelUseCase.
type labelService interface {
	BuildLabelSheet(ctx context.Context, src reports.Source, in dto.LabelSheetRequest) ([]byte, string, error)
}

// BarcodeHandler módulo de códigos de barras: hojas de etiquetas.
type BarcodeHandler struct {
	labelUC labelService
}

// NewBarcodeHandler construye el handler.
func NewBarcodeHandler(labelUC labelService) *BarcodeHandler {
	return &BarcodeHandler{labelUC: labelUC}
}

// Labels godoc
// @Summary      Generar hoja de etiquetas
// @Description  PDF con Code128 (y QR opcional) de cada producto; el código cae al ID si el producto no tiene uno.
// @Tags         barcode
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.LabelSheetRequest  true  "Productos y copias"
// @Success      200   {file}    binary
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/barcode/labels [post]
func (h *BarcodeHandler) Labels(c *fiber.Ctx) error {
	var in dto.LabelSheetRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.labelUC.BuildLabelSheet(c.Context(), queriesOf(c), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
