package repository

import (
	"context"
	"time"
)

// Session sesión viva asociada a un jti.
type Session struct {
	ID        string `json:"id"`
	Principal string `json:"principal"`
	Email     string `json:"email"`
}

// SessionStore registra las sesiones activas; borrar una sesión la revoca.
type SessionStore interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
