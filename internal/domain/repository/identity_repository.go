package repository

import (
	"context"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// IdentityRepository define el puerto de persistencia de credenciales de login (DIP).
type IdentityRepository interface {
	Create(ctx context.Context, identity *entity.Identity) error
	FindByEmail(ctx context.Context, email string) (*entity.Identity, error)
}
