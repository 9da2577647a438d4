package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals importes de una factura.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals subtotal = Σ cantidad×precio; impuesto = subtotal×tasa/100 redondeado a
// la unidad (mitades se alejan de cero); total = subtotal + impuesto.
func ComputeTotals(items []entity.InvoiceItem, taxRatePercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	tax := subtotal.Mul(taxRatePercent).Div(hundred).Round(0)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}
