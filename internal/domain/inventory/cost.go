package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo unitario tras una entrada de mercadería.
// nuevo = (stock*costo + entrada*costoEntrada) / (stock + entrada)
func WeightedAverageCost(stock int64, cost decimal.Decimal, received int64, receivedCost decimal.Decimal) decimal.Decimal {
	if stock < 0 {
		stock = 0
	}
	total := stock + received
	if total <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(stock).Mul(cost).Add(decimal.NewFromInt(received).Mul(receivedCost))
	return num.Div(decimal.NewFromInt(total)).Round(2)
}
