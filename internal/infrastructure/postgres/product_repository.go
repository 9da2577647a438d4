package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

const productColumns = `id, name, category, description, size, color, price, cost_price, stock_level, reorder_level,
	barcode, warehouse, rack, shelf, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Size, &p.Color, &p.Price, &p.CostPrice,
		&p.StockLevel, &p.ReorderLevel, &p.Barcode, &p.Warehouse, &p.Rack, &p.Shelf, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func getProduct(ctx context.Context, q Querier, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func listProducts(ctx context.Context, q Querier, query string, args ...any) ([]entity.Product, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

func (c *caller) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return listProducts(ctx, c.s.pool, `SELECT `+productColumns+` FROM products ORDER BY name`)
}

func (c *caller) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return getProduct(ctx, c.s.pool, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (c *caller) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	if barcode == "" {
		return nil, nil
	}
	return getProduct(ctx, c.s.pool, `SELECT `+productColumns+` FROM products WHERE barcode = $1 LIMIT 1`, barcode)
}

func (c *caller) CreateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	if p.StockLevel < 0 {
		return nil, invalid("stock level must be >= 0")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := c.now()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := c.s.pool.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.Name, p.Category, p.Description, p.Size, p.Color, p.Price, p.CostPrice, p.StockLevel, p.ReorderLevel,
		p.Barcode, p.Warehouse, p.Rack, p.Shelf, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("product " + p.ID + " already exists")
		}
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &p, nil
}

func (c *caller) UpdateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	if p.StockLevel < 0 {
		return nil, invalid("stock level must be >= 0")
	}
	p.UpdatedAt = c.now()
	out, err := getProduct(ctx, c.s.pool, `
		UPDATE products SET name = $2, category = $3, description = $4, size = $5, color = $6, price = $7,
			cost_price = $8, stock_level = $9, reorder_level = $10, barcode = $11, warehouse = $12, rack = $13,
			shelf = $14, updated_at = $15
		WHERE id = $1
		RETURNING `+productColumns,
		p.ID, p.Name, p.Category, p.Description, p.Size, p.Color, p.Price, p.CostPrice, p.StockLevel, p.ReorderLevel,
		p.Barcode, p.Warehouse, p.Rack, p.Shelf, p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, notFound("product", p.ID)
	}
	return out, nil
}

func (c *caller) DeleteProduct(ctx context.Context, id string) error {
	cmd, err := c.s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("product", id)
	}
	return nil
}

// AdjustStock bloquea la fila, valida que el stock no quede negativo y deja un movimiento.
func (c *caller) AdjustStock(ctx context.Context, productID string, delta int64) (*entity.Product, error) {
	var out *entity.Product
	err := c.s.tx.Run(ctx, func(tx pgx.Tx) error {
		p, err := c.applyStockChange(ctx, tx, productID, delta)
		if err != nil {
			return err
		}
		out = p
		_, err = c.insertRecord(ctx, tx, entity.InventoryRecord{
			ProductID: productID, QuantityChange: delta, Reason: "stock adjustment",
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyStockChange núcleo compartido por AdjustStock y CreateInventoryRecord; corre dentro de tx.
func (c *caller) applyStockChange(ctx context.Context, tx pgx.Tx, productID string, delta int64) (*entity.Product, error) {
	p, err := getProduct(ctx, tx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("product", productID)
	}
	if p.StockLevel+delta < 0 {
		return nil, insufficientStock(p.Name, p.StockLevel, -delta)
	}
	p.StockLevel += delta
	p.UpdatedAt = c.now()
	if _, err := tx.Exec(ctx, `UPDATE products SET stock_level = $2, updated_at = $3 WHERE id = $1`,
		p.ID, p.StockLevel, p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}
	return p, nil
}

// ListLowStockProducts threshold <= 0 usa el punto de reorden de cada producto.
func (c *caller) ListLowStockProducts(ctx context.Context, threshold int64) ([]entity.Product, error) {
	if threshold > 0 {
		return listProducts(ctx, c.s.pool,
			`SELECT `+productColumns+` FROM products WHERE stock_level <= $1 ORDER BY stock_level, name`, threshold)
	}
	return listProducts(ctx, c.s.pool,
		`SELECT `+productColumns+` FROM products WHERE stock_level <= reorder_level ORDER BY stock_level, name`)
}
