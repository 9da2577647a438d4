package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// GetDashboardStats indicadores de la pantalla principal en una sola consulta.
func (c *caller) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	const query = `
	SELECT
	    (SELECT count(*) FROM products)                                            AS total_products,
	    (SELECT count(*) FROM products WHERE stock_level <= reorder_level)         AS low_stock,
	    (SELECT count(*) FROM customers)                                           AS total_customers,
	    (SELECT count(*) FROM orders)                                              AS total_orders,
	    (SELECT count(*) FROM orders WHERE status = 'pending')                     AS pending_orders,
	    (SELECT count(*) FROM invoices)                                            AS total_invoices,
	    (SELECT count(*) FROM invoices WHERE status <> 'paid')                     AS unpaid_invoices,
	    (SELECT COALESCE(sum(total), 0) FROM invoices WHERE status = 'paid')       AS revenue,
	    (SELECT COALESCE(sum(cost_price * stock_level), 0) FROM products)          AS inventory_value`

	var st entity.DashboardStats
	err := c.s.pool.QueryRow(ctx, query).Scan(
		&st.TotalProducts, &st.LowStockCount, &st.TotalCustomers, &st.TotalOrders, &st.PendingOrders,
		&st.TotalInvoices, &st.UnpaidInvoices, &st.Revenue, &st.InventoryValue,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.GetDashboardStats: %w", err)
	}
	return &st, nil
}

// GetProfitLoss facturas pagadas en [from, to). El costo usa el cost_price actual de cada producto.
func (c *caller) GetProfitLoss(ctx context.Context, from, to time.Time) (*entity.ProfitLoss, error) {
	const query = `
	WITH paid AS (
	    SELECT id, subtotal, tax, items
	    FROM invoices
	    WHERE status = 'paid' AND created_at >= $1 AND created_at < $2
	)
	SELECT
	    COALESCE((SELECT sum(subtotal) FROM paid), 0)                              AS revenue,
	    COALESCE((SELECT sum(tax) FROM paid), 0)                                   AS tax,
	    COALESCE((
	        SELECT sum((it->>'quantity')::bigint * p.cost_price)
	        FROM paid, jsonb_array_elements(paid.items) AS it
	        JOIN products p ON p.id = it->>'productId'
	    ), 0)                                                                      AS cogs`

	pl := entity.ProfitLoss{From: from, To: to}
	if err := c.s.pool.QueryRow(ctx, query, from, to).Scan(&pl.Revenue, &pl.Tax, &pl.CostOfGoods); err != nil {
		return nil, fmt.Errorf("reports.GetProfitLoss: %w", err)
	}
	pl.GrossProfit = pl.Revenue.Sub(pl.CostOfGoods)
	return &pl, nil
}
