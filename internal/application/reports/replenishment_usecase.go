package reports

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sahil-erp/internal/application/dto"
)

var hundred = decimal.NewFromInt(100)

// ReplenishmentUseCase lista de reposición: productos en o bajo su punto de reorden.
type ReplenishmentUseCase struct{}

// NewReplenishmentUseCase construye el caso de uso.
func NewReplenishmentUseCase() *ReplenishmentUseCase {
	return &ReplenishmentUseCase{}
}

// GenerateReplenishmentList sugiere pedir hasta 1.5× el punto de reorden (mínimo 1 unidad)
// y prioriza por margen bruto unitario y luego por déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, src Source) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := src.LowStockProducts(ctx, 0)
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		ideal := p.ReorderLevel + p.ReorderLevel/2
		if ideal < 1 {
			ideal = 1
		}
		qty := ideal - p.StockLevel
		if qty < 0 {
			qty = 0
		}
		var margin decimal.Decimal
		if p.Price.GreaterThan(decimal.Zero) {
			margin = p.Price.Sub(p.CostPrice).Div(p.Price).Mul(hundred).Round(2)
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			ProductName:        p.Name,
			Barcode:            p.Barcode,
			CurrentStock:       p.StockLevel,
			ReorderLevel:       p.ReorderLevel,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           p.CostPrice,
			EstimatedOrderCost: p.CostPrice.Mul(decimal.NewFromInt(qty)),
			GrossMarginPct:     margin,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		return a.ReorderLevel-a.CurrentStock > b.ReorderLevel-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
