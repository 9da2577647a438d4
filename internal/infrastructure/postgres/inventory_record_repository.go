package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

func (c *caller) insertRecord(ctx context.Context, q Querier, r entity.InventoryRecord) (*entity.InventoryRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.RecordedBy = c.principal
	r.CreatedAt = c.now()
	_, err := q.Exec(ctx, `
		INSERT INTO inventory_records (id, product_id, quantity_change, reason, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.ProductID, r.QuantityChange, r.Reason, r.RecordedBy, r.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("inventory record " + r.ID + " already exists")
		}
		return nil, fmt.Errorf("insert inventory record: %w", err)
	}
	return &r, nil
}

func (c *caller) ListInventoryRecords(ctx context.Context) ([]entity.InventoryRecord, error) {
	rows, err := c.s.pool.Query(ctx, `
		SELECT id, product_id, quantity_change, reason, recorded_by, created_at
		FROM inventory_records ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	list := make([]entity.InventoryRecord, 0)
	for rows.Next() {
		var r entity.InventoryRecord
		if err := rows.Scan(&r.ID, &r.ProductID, &r.QuantityChange, &r.Reason, &r.RecordedBy, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

// CreateInventoryRecord aplica QuantityChange al stock del producto en la misma transacción.
func (c *caller) CreateInventoryRecord(ctx context.Context, r entity.InventoryRecord) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := c.s.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := c.applyStockChange(ctx, tx, r.ProductID, r.QuantityChange); err != nil {
			return err
		}
		rec, err := c.insertRecord(ctx, tx, r)
		out = rec
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *caller) DeleteInventoryRecord(ctx context.Context, id string) error {
	cmd, err := c.s.pool.Exec(ctx, `DELETE FROM inventory_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory record: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("inventory record", id)
	}
	return nil
}
