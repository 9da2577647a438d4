package dto

import "github.com/shopspring/decimal"

// OrderItemRequest línea de pedido.
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes      string             `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateStatusRequest body para PUT .../status (pedidos y facturas).
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
