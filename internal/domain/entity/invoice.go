package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft   = "draft"
	InvoiceStatusSent    = "sent"
	InvoiceStatusPaid    = "paid"
	InvoiceStatusOverdue = "overdue"
)

// ValidInvoiceStatus informa si s es un estado de factura conocido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// InvoiceItem línea de factura.
type InvoiceItem struct {
	ProductID string          `json:"productId"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Invoice factura. Total = Subtotal + Tax, calculado antes de enviarla al backend.
// El ajuste de stock es una llamada aparte, no un efecto de crear la factura.
type Invoice struct {
	ID         string          `json:"invoiceId"`
	CustomerID string          `json:"customerId"`
	OrderID    string          `json:"orderId,omitempty"`
	ProductIDs []string        `json:"productIds"`
	Items      []InvoiceItem   `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxRate    decimal.Decimal `json:"taxRate"` // porcentaje, ej. 18
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
	CreatedBy  string          `json:"createdBy"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
