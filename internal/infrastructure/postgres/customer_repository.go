package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

const customerColumns = `id, name, email, phone, address, gstin, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var cu entity.Customer
	if err := row.Scan(&cu.ID, &cu.Name, &cu.Email, &cu.Phone, &cu.Address, &cu.GSTIN, &cu.CreatedAt, &cu.UpdatedAt); err != nil {
		return nil, err
	}
	return &cu, nil
}

func (c *caller) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	rows, err := c.s.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Customer, 0)
	for rows.Next() {
		cu, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, *cu)
	}
	return list, rows.Err()
}

func (c *caller) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	return getCustomer(ctx, c.s.pool, id)
}

func getCustomer(ctx context.Context, q Querier, id string) (*entity.Customer, error) {
	cu, err := scanCustomer(q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return cu, nil
}

func (c *caller) CreateCustomer(ctx context.Context, cu entity.Customer) (*entity.Customer, error) {
	if cu.ID == "" {
		cu.ID = uuid.NewString()
	}
	now := c.now()
	cu.CreatedAt, cu.UpdatedAt = now, now
	_, err := c.s.pool.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cu.ID, cu.Name, cu.Email, cu.Phone, cu.Address, cu.GSTIN, cu.CreatedAt, cu.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	return &cu, nil
}

func (c *caller) UpdateCustomer(ctx context.Context, cu entity.Customer) (*entity.Customer, error) {
	out, err := scanCustomer(c.s.pool.QueryRow(ctx, `
		UPDATE customers SET name = $2, email = $3, phone = $4, address = $5, gstin = $6, updated_at = $7
		WHERE id = $1 RETURNING `+customerColumns,
		cu.ID, cu.Name, cu.Email, cu.Phone, cu.Address, cu.GSTIN, c.now()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("customer", cu.ID)
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return out, nil
}

func (c *caller) DeleteCustomer(ctx context.Context, id string) error {
	cmd, err := c.s.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("customer", id)
	}
	return nil
}
