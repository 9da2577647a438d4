package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sahil-erp/internal/application/billing"
	"github.com/jhoicas/sahil-erp/internal/application/reports"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/pdf"
)

var (
	_ billing.InvoicePDFGenerator = (*pdf.MarotoPDFGenerator)(nil)
	_ reports.LabelSheetGenerator = (*pdf.MarotoPDFGenerator)(nil)
)

func TestGenerateInvoicePDF_DocumentoValido(t *testing.T) {
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	doc := billing.InvoiceDocument{
		Invoice: entity.Invoice{
			ID: "INV-00001", CustomerID: "c1", Status: entity.InvoiceStatusSent,
			Subtotal: decimal.NewFromInt(1000), TaxRate: decimal.NewFromInt(18),
			Tax: decimal.NewFromInt(180), Total: decimal.NewFromInt(1180),
			DueDate: &due, CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		Customer: entity.Customer{ID: "c1", Name: "Asha"},
		Lines: []billing.InvoiceLine{
			{ProductName: "Kurta", Quantity: 2, UnitPrice: decimal.NewFromInt(500), Amount: decimal.NewFromInt(1000)},
		},
	}

	out, err := pdf.NewMarotoPDFGenerator(pdf.Issuer{GSTIN: "27AAAAA0000A1Z5"}).GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateLabelSheet_ConYSinQR(t *testing.T) {
	labels := []reports.Label{
		{Name: "Kurta", Barcode: "890001", Price: "1000.00", Detail: "M · Rojo"},
		{Name: "Saree", Barcode: "890002", Price: "2000.00"},
		{Name: "Dupatta", Barcode: "890003", Price: "500.00"},
		{Name: "Lehenga", Barcode: "890004", Price: "4500.00"},
	}
	g := pdf.NewMarotoPDFGenerator(pdf.Issuer{})

	for _, qr := range []bool{false, true} {
		out, err := g.GenerateLabelSheet(context.Background(), labels, qr)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "withQR=%v", qr)
	}
}
