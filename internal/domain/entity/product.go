package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product prenda o artículo del inventario. StockLevel nunca baja de cero (lo garantiza el backend).
type Product struct {
	ID           string          `json:"productId"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	StockLevel   int64           `json:"stockLevel"`
	ReorderLevel int64           `json:"reorderLevel"`
	Barcode      string          `json:"barcode"`
	// Ubicación física en bodega.
	Warehouse string    `json:"warehouse"`
	Rack      string    `json:"rack"`
	Shelf     string    `json:"shelf"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsLowStock informa si el stock está en o por debajo del punto de reorden.
func (p Product) IsLowStock() bool {
	return p.StockLevel <= p.ReorderLevel
}
