package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

const invoiceColumns = `id, customer_id, order_id, product_ids, items, subtotal, tax_rate, tax, total, status,
	due_date, created_by, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	if err := row.Scan(&inv.ID, &inv.CustomerID, &inv.OrderID, &inv.ProductIDs, &inv.Items, &inv.Subtotal, &inv.TaxRate,
		&inv.Tax, &inv.Total, &inv.Status, &inv.DueDate, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	if inv.ProductIDs == nil {
		inv.ProductIDs = []string{}
	}
	if inv.Items == nil {
		inv.Items = []entity.InvoiceItem{}
	}
	return &inv, nil
}

func (c *caller) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	rows, err := c.s.pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Invoice, 0)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, *inv)
	}
	return list, rows.Err()
}

func (c *caller) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(c.s.pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// CreateInvoice persiste la factura tal como llega (los totales ya vienen calculados).
// Sin ID se numera INV-00001, INV-00002, ...
func (c *caller) CreateInvoice(ctx context.Context, inv entity.Invoice) (*entity.Invoice, error) {
	err := c.s.tx.Run(ctx, func(tx pgx.Tx) error {
		cu, err := getCustomer(ctx, tx, inv.CustomerID)
		if err != nil {
			return err
		}
		if cu == nil {
			return notFound("customer", inv.CustomerID)
		}
		if inv.ID == "" {
			if err := tx.QueryRow(ctx,
				`SELECT 'INV-' || lpad(nextval('invoice_number_seq')::text, 5, '0')`).Scan(&inv.ID); err != nil {
				return fmt.Errorf("next invoice number: %w", err)
			}
		}
		if inv.Status == "" {
			inv.Status = entity.InvoiceStatusDraft
		}
		if inv.ProductIDs == nil {
			inv.ProductIDs = []string{}
		}
		if inv.Items == nil {
			inv.Items = []entity.InvoiceItem{}
		}
		inv.CreatedBy = c.principal
		now := c.now()
		inv.CreatedAt, inv.UpdatedAt = now, now
		_, err = tx.Exec(ctx, `
			INSERT INTO invoices (`+invoiceColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			inv.ID, inv.CustomerID, inv.OrderID, inv.ProductIDs, inv.Items, inv.Subtotal, inv.TaxRate, inv.Tax,
			inv.Total, inv.Status, inv.DueDate, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return conflict("invoice " + inv.ID + " already exists")
			}
			return fmt.Errorf("insert invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *caller) UpdateInvoiceStatus(ctx context.Context, id, status string) error {
	cmd, err := c.s.pool.Exec(ctx, `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1`, id, status, c.now())
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("invoice", id)
	}
	return nil
}

func (c *caller) DeleteInvoice(ctx context.Context, id string) error {
	cmd, err := c.s.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("invoice", id)
	}
	return nil
}
