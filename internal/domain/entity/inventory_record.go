package entity

import "time"

// InventoryRecord movimiento de inventario registrado manualmente o por un ajuste.
type InventoryRecord struct {
	ID             string    `json:"recordId"`
	ProductID      string    `json:"productId"`
	QuantityChange int64     `json:"quantityChange"`
	Reason         string    `json:"reason"`
	RecordedBy     string    `json:"recordedBy"`
	CreatedAt      time.Time `json:"createdAt"`
}
