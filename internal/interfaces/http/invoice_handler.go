package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/billing"
	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// invoiceCreator lo implementa *billing.CreateInvoiceUseCase.
type invoiceCreator interface {
	CreateInvoice(ctx context.Context, w billing.InvoiceWriter, in dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error)
}

// invoicePDF lo implementa *billing.PDFUseCase.
type invoicePDF interface {
	DownloadInvoicePDF(ctx context.Context, r billing.InvoiceReader, invoiceID string) ([]byte, string, error)
}

// InvoiceHandler maneja las peticiones HTTP de facturas.
type InvoiceHandler struct {
	createUC invoiceCreator
	pdfUC    invoicePDF
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(createUC invoiceCreator, pdfUC invoicePDF) *InvoiceHandler {
	return &InvoiceHandler{createUC: createUC, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear factura
// @Description  Calcula subtotal, impuesto y total antes de enviarla. Con adjust_stock descuenta
// @Description  el stock de cada línea; un fallo se informa en stock_failures sin deshacer la factura.
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "Factura"
// @Success      201   {object}  dto.CreateInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.createUC.CreateInvoice(c.Context(), queriesOf(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar facturas
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ListResponse[entity.Invoice]
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).Invoices(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Paginate(out, page))
}

// GetByID godoc
// @Summary      Obtener factura por ID
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  entity.Invoice
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := queriesOf(c).Invoice(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return notFoundResponse(c, "factura no encontrada")
	}
	return c.JSON(out)
}

// GetPDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) GetPDF(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), queriesOf(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la factura
// @Tags         invoices
// @Security     Bearer
// @Accept       json
// @Param        id    path  string                   true  "ID de la factura"
// @Param        body  body  dto.UpdateStatusRequest  true  "draft | sent | paid | overdue"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/status [put]
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateStatusRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if !entity.ValidInvoiceStatus(in.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado de factura desconocido"})
	}
	if err := queriesOf(c).UpdateInvoiceStatus(c.Context(), id, in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar factura
// @Tags         invoices
// @Security     Bearer
// @Param        id   path  string  true  "ID de la factura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	id, err := pathParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := queriesOf(c).DeleteInvoice(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
