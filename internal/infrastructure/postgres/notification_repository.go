package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// ListNotifications las del caller más las dirigidas a todos (recipient vacío).
func (c *caller) ListNotifications(ctx context.Context) ([]entity.Notification, error) {
	rows, err := c.s.pool.Query(ctx, `
		SELECT id, recipient, title, message, kind, read, created_at
		FROM notifications WHERE recipient = '' OR recipient = $1
		ORDER BY created_at DESC`, c.principal)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.Recipient, &n.Title, &n.Message, &n.Kind, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (c *caller) CreateNotification(ctx context.Context, n entity.Notification) (*entity.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Kind == "" {
		n.Kind = "info"
	}
	n.CreatedAt = c.now()
	_, err := c.s.pool.Exec(ctx, `
		INSERT INTO notifications (id, recipient, title, message, kind, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.Recipient, n.Title, n.Message, n.Kind, n.Read, n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	return &n, nil
}

func (c *caller) MarkNotificationRead(ctx context.Context, id string) error {
	cmd, err := c.s.pool.Exec(ctx, `UPDATE notifications SET read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return notFound("notification", id)
	}
	return nil
}

func (c *caller) DeleteNotification(ctx context.Context, id string) error {
	if _, err := c.s.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
