package dto

import "github.com/shopspring/decimal"

// ProductRequest body para POST/PUT /api/products.
type ProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category" validate:"omitempty,max=100"`
	Description  string          `json:"description" validate:"omitempty,max=1000"`
	Size         string          `json:"size" validate:"omitempty,max=20"`
	Color        string          `json:"color" validate:"omitempty,max=50"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	StockLevel   int64           `json:"stock_level" validate:"min=0"`
	ReorderLevel int64           `json:"reorder_level" validate:"min=0"`
	Barcode      string          `json:"barcode" validate:"omitempty,max=64"`
	Warehouse    string          `json:"warehouse" validate:"omitempty,max=100"`
	Rack         string          `json:"rack" validate:"omitempty,max=50"`
	Shelf        string          `json:"shelf" validate:"omitempty,max=50"`
}

// AdjustStockRequest body para POST /api/products/:id/stock. Delta negativo descuenta.
type AdjustStockRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

// LabelSheetRequest body para POST /api/barcode/labels.
type LabelSheetRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1,dive,required"`
	Copies     int      `json:"copies" validate:"omitempty,min=1,max=100"`
	WithQR     bool     `json:"with_qr"`
}

// StockErrorResponse error de stock insuficiente con las cantidades, si el backend las informó.
type StockErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available *int64 `json:"available,omitempty"`
	Requested *int64 `json:"requested,omitempty"`
}
