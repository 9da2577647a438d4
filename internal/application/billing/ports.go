package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// InvoiceWriter operaciones que necesita la creación de facturas (las cumple queries.Queries).
type InvoiceWriter interface {
	Product(ctx context.Context, id string) (*entity.Product, error)
	CreateInvoice(ctx context.Context, inv entity.Invoice) (*entity.Invoice, error)
	AdjustStock(ctx context.Context, productID string, delta int64) (*entity.Product, error)
}

// InvoiceReader lecturas para armar el PDF de una factura.
type InvoiceReader interface {
	Invoice(ctx context.Context, id string) (*entity.Invoice, error)
	Customer(ctx context.Context, id string) (*entity.Customer, error)
	Product(ctx context.Context, id string) (*entity.Product, error)
}

// InvoiceLine línea de factura enriquecida con el nombre del producto.
type InvoiceLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// InvoiceDocument datos completos para la representación gráfica.
type InvoiceDocument struct {
	Invoice  entity.Invoice
	Customer entity.Customer
	Lines    []InvoiceLine
}

// InvoicePDFGenerator genera el PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}
