package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// InvoiceItemRequest línea de factura (producto, cantidad, precio unitario).
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// AdjustStock: descuenta del inventario cada línea tras crear la factura.
type CreateInvoiceRequest struct {
	CustomerID  string               `json:"customer_id" validate:"required"`
	OrderID     string               `json:"order_id,omitempty"`
	Items       []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate     decimal.Decimal      `json:"tax_rate"` // porcentaje, ej. 18
	DueDate     *time.Time           `json:"due_date,omitempty"`
	AdjustStock bool                 `json:"adjust_stock"`
}

// StockFailure ajuste de stock que falló tras crear la factura.
type StockFailure struct {
	ProductID           string `json:"product_id"`
	Code                string `json:"code"`
	Message             string `json:"message"`
	IsInsufficientStock bool   `json:"is_insufficient_stock"`
	Available           *int64 `json:"available,omitempty"`
	Requested           *int64 `json:"requested,omitempty"`
}

// CreateInvoiceResponse factura creada y, si se pidió, el resultado del ajuste de stock.
type CreateInvoiceResponse struct {
	Invoice       entity.Invoice `json:"invoice"`
	StockAdjusted []string       `json:"stock_adjusted,omitempty"`
	StockFailures []StockFailure `json:"stock_failures,omitempty"`
}
