package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// ProfitLossQuery rango del reporte de pérdidas y ganancias (fechas YYYY-MM-DD, To exclusivo).
type ProfitLossQuery struct {
	From string `query:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" validate:"required,datetime=2006-01-02"`
}

// Range convierte el rango a time.Time en UTC.
func (q ProfitLossQuery) Range() (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", q.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse("2006-01-02", q.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

// ExportQuery formato de exportación.
type ExportQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=xlsx csv"`
}

// SummaryDTO resumen del dashboard de analítica: indicadores y resultados de hoy y del mes.
type SummaryDTO struct {
	Stats     entity.DashboardStats `json:"stats"`
	Today     entity.ProfitLoss     `json:"today"`
	Month     entity.ProfitLoss     `json:"month"`
	DateLabel string                `json:"date_label"`
}

// ReplenishmentSuggestionDTO producto bajo punto de reorden con la cantidad sugerida.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	ProductName        string          `json:"product_name"`
	Barcode            string          `json:"barcode,omitempty"`
	CurrentStock       int64           `json:"current_stock"`
	ReorderLevel       int64           `json:"reorder_level"`
	IdealStock         int64           `json:"ideal_stock"`
	SuggestedOrderQty  int64           `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	GrossMarginPct     decimal.Decimal `json:"gross_margin_pct"`
	Priority           int             `json:"priority"`
}
