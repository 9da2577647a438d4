package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats indicadores de la pantalla principal.
type DashboardStats struct {
	TotalProducts  int64           `json:"totalProducts"`
	LowStockCount  int64           `json:"lowStockCount"`
	TotalCustomers int64           `json:"totalCustomers"`
	TotalOrders    int64           `json:"totalOrders"`
	PendingOrders  int64           `json:"pendingOrders"`
	TotalInvoices  int64           `json:"totalInvoices"`
	UnpaidInvoices int64           `json:"unpaidInvoices"`
	Revenue        decimal.Decimal `json:"revenue"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
}

// ProfitLoss resultado del periodo [From, To).
type ProfitLoss struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Revenue     decimal.Decimal `json:"revenue"`
	Tax         decimal.Decimal `json:"tax"`
	CostOfGoods decimal.Decimal `json:"costOfGoods"`
	GrossProfit decimal.Decimal `json:"grossProfit"`
}
