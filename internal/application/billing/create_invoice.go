package billing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// CreateInvoiceUseCase arma la factura, calcula sus totales antes de enviarla y,
// si se pide, descuenta el stock línea por línea con llamadas separadas.
type CreateInvoiceUseCase struct {
	log zerolog.Logger
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(log zerolog.Logger) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{log: log.With().Str("component", "billing").Logger()}
}

// CreateInvoice crea la factura. Un fallo al ajustar stock no deshace la factura:
// se informa por línea en StockFailures.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, w InvoiceWriter, in dto.CreateInvoiceRequest) (*dto.CreateInvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: tax_rate debe estar entre 0 y 100", domain.ErrInvalidInput)
	}

	items := make([]entity.InvoiceItem, 0, len(in.Items))
	productIDs := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		price := it.UnitPrice
		if price.IsZero() {
			p, err := w.Product(ctx, it.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
			}
			price = p.Price
		}
		items = append(items, entity.InvoiceItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: price})
		productIDs = append(productIDs, it.ProductID)
	}

	totals := ComputeTotals(items, in.TaxRate)
	inv, err := w.CreateInvoice(ctx, entity.Invoice{
		CustomerID: in.CustomerID,
		OrderID:    in.OrderID,
		ProductIDs: productIDs,
		Items:      items,
		Subtotal:   totals.Subtotal,
		TaxRate:    in.TaxRate,
		Tax:        totals.Tax,
		Total:      totals.Total,
		Status:     entity.InvoiceStatusDraft,
		DueDate:    in.DueDate,
	})
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: el backend no devolvió la factura", domain.ErrNetwork)
	}

	resp := &dto.CreateInvoiceResponse{Invoice: *inv}
	if !in.AdjustStock {
		return resp, nil
	}
	for _, it := range items {
		if _, err := w.AdjustStock(ctx, it.ProductID, -it.Quantity); err != nil {
			c := domain.ClassifyStockError(err)
			uc.log.Warn().Err(err).Str("invoice", inv.ID).Str("product", it.ProductID).Msg("ajuste de stock fallido")
			resp.StockFailures = append(resp.StockFailures, dto.StockFailure{
				ProductID:           it.ProductID,
				Code:                c.Code(),
				Message:             c.Message,
				IsInsufficientStock: c.IsInsufficientStock,
				Available:           c.Available,
				Requested:           c.Requested,
			})
			continue
		}
		resp.StockAdjusted = append(resp.StockAdjusted, it.ProductID)
	}
	return resp, nil
}

