package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
	"github.com/jhoicas/sahil-erp/internal/domain/repository"
)

var _ repository.IdentityRepository = (*IdentityRepo)(nil)

// IdentityRepo credenciales de login sobre PostgreSQL.
type IdentityRepo struct {
	pool *pgxpool.Pool
}

// NewIdentityRepository construye el adaptador de persistencia para identidades.
func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepo {
	return &IdentityRepo{pool: pool}
}

// Create persiste una nueva identidad.
func (r *IdentityRepo) Create(ctx context.Context, identity *entity.Identity) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO identities (principal, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		identity.Principal, identity.Email, identity.PasswordHash, identity.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

// FindByEmail obtiene una identidad por email; (nil, nil) si no existe.
func (r *IdentityRepo) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	var id entity.Identity
	err := r.pool.QueryRow(ctx,
		`SELECT principal, email, password_hash, created_at FROM identities WHERE email = $1`, email,
	).Scan(&id.Principal, &id.Email, &id.PasswordHash, &id.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity by email: %w", err)
	}
	return &id, nil
}
