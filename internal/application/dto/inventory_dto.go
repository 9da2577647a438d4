package dto

import "github.com/shopspring/decimal"

// CreateInventoryRecordRequest body para POST /api/inventory/records.
// UnitCost sólo aplica a entradas: recalcula el costo promedio del producto.
type CreateInventoryRecordRequest struct {
	ProductID      string          `json:"product_id" validate:"required"`
	QuantityChange int64           `json:"quantity_change" validate:"required"`
	Reason         string          `json:"reason" validate:"required,max=200"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
}

// CreateNotificationRequest body para POST /api/notifications.
type CreateNotificationRequest struct {
	Recipient string `json:"recipient,omitempty"`
	Title     string `json:"title" validate:"required,max=200"`
	Message   string `json:"message" validate:"required,max=2000"`
	Kind      string `json:"kind" validate:"omitempty,oneof=info warning low_stock approval"`
}

// CreateDataEntryRequest body para POST /api/data-entries.
type CreateDataEntryRequest struct {
	Category string `json:"category" validate:"required,max=100"`
	Payload  string `json:"payload" validate:"required"`
}
