package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

const orderColumns = `id, customer_id, items, total, status, notes, created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.Items, &o.Total, &o.Status, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if o.Items == nil {
		o.Items = []entity.OrderItem{}
	}
	return &o, nil
}

func (c *caller) ListOrders(ctx context.Context) ([]entity.Order, error) {
	rows, err := c.s.pool.Query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, *o)
	}
	return list, rows.Err()
}

func (c *caller) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(c.s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// CreateOrder valida cliente y productos y recalcula el total; no toca el stock.
func (c *caller) CreateOrder(ctx context.Context, o entity.Order) (*entity.Order, error) {
	err := c.s.tx.Run(ctx, func(tx pgx.Tx) error {
		cu, err := getCustomer(ctx, tx, o.CustomerID)
		if err != nil {
			return err
		}
		if cu == nil {
			return notFound("customer", o.CustomerID)
		}
		total := decimal.Zero
		for _, it := range o.Items {
			p, err := getProduct(ctx, tx, `SELECT `+productColumns+` FROM products WHERE id = $1`, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return notFound("product", it.ProductID)
			}
			total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
		}
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		if o.Status == "" {
			o.Status = entity.OrderStatusPending
		}
		if o.Items == nil {
			o.Items = []entity.OrderItem{}
		}
		o.Total = total
		o.CreatedBy = c.principal
		now := c.now()
		o.CreatedAt, o.UpdatedAt = now, now
		_, err = tx.Exec(ctx, `INSERT INTO orders (`+orderColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			o.ID, o.CustomerID, o.Items, o.Total, o.Status, o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *caller) UpdateOrderStatus(ctx context.Context, id, status string) error {
	cmd, err := c.s.pool.Exec(ctx, `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`, id, status, c.now())
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("order", id)
	}
	return nil
}

func (c *caller) DeleteOrder(ctx context.Context, id string) error {
	cmd, err := c.s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("order", id)
	}
	return nil
}
