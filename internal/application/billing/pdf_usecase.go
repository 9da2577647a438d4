package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sahil-erp/internal/domain"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{generator: generator}
}

// DownloadInvoicePDF reúne factura, cliente y nombres de producto y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura o su cliente no existen.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, r InvoiceReader, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := r.Invoice(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	customer, err := r.Customer(ctx, inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, "", fmt.Errorf("%w: cliente %s", domain.ErrNotFound, inv.CustomerID)
	}

	lines := make([]InvoiceLine, 0, len(inv.Items))
	for _, it := range inv.Items {
		name := "Producto " + it.ProductID // fallback
		if p, pErr := r.Product(ctx, it.ProductID); pErr == nil && p != nil {
			name = p.Name
		}
		lines = append(lines, InvoiceLine{
			ProductName: name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)),
		})
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, InvoiceDocument{Invoice: *inv, Customer: *customer, Lines: lines})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", inv.ID), nil
}
