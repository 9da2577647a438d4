package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
	"github.com/jhoicas/sahil-erp/internal/domain/repository"
)

var _ repository.IdentityRepository = (*Identities)(nil)

// Identities credenciales de login en memoria.
type Identities struct {
	mu      sync.RWMutex
	byEmail map[string]entity.Identity
}

// NewIdentities crea el repositorio vacío.
func NewIdentities() *Identities {
	return &Identities{byEmail: make(map[string]entity.Identity)}
}

func (r *Identities) Create(ctx context.Context, id *entity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[id.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	r.byEmail[id.Email] = *id
	return nil
}

// FindByEmail devuelve (nil, nil) si no existe.
func (r *Identities) FindByEmail(ctx context.Context, email string) (*entity.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &id, nil
}
