package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

func (c *caller) ListDataEntries(ctx context.Context) ([]entity.DataEntry, error) {
	rows, err := c.s.pool.Query(ctx,
		`SELECT id, category, payload, created_by, created_at FROM data_entries ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list data entries: %w", err)
	}
	defer rows.Close()
	list := make([]entity.DataEntry, 0)
	for rows.Next() {
		var e entity.DataEntry
		if err := rows.Scan(&e.ID, &e.Category, &e.Payload, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan data entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (c *caller) CreateDataEntry(ctx context.Context, e entity.DataEntry) (*entity.DataEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedBy = c.principal
	e.CreatedAt = c.now()
	_, err := c.s.pool.Exec(ctx,
		`INSERT INTO data_entries (id, category, payload, created_by, created_at) VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Category, e.Payload, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert data entry: %w", err)
	}
	return &e, nil
}

func (c *caller) DeleteDataEntry(ctx context.Context, id string) error {
	if _, err := c.s.pool.Exec(ctx, `DELETE FROM data_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete data entry: %w", err)
	}
	return nil
}
