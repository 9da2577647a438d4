// Package actor enlaza el cliente tipado del backend con la identidad de la sesión.
package actor

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/sahil-erp/internal/domain/backend"
)

// Identity identidad autenticada que invoca al backend.
type Identity struct {
	Principal string
	Email     string
}

// Factory construye el actor para una identidad (puede contactar al backend).
type Factory func(ctx context.Context, id Identity) (backend.Backend, error)

// Accessor expone el actor de la identidad actual. Actor() devuelve false hasta
// que Bind termina con éxito.
type Accessor struct {
	mu       sync.RWMutex
	factory  Factory
	identity *Identity
	actor    backend.Backend
	fetching bool
	log      zerolog.Logger
}

// NewAccessor construye un accessor sin identidad.
func NewAccessor(factory Factory, log zerolog.Logger) *Accessor {
	return &Accessor{factory: factory, log: log}
}

// Bind construye el actor para id y lo deja disponible.
func (a *Accessor) Bind(ctx context.Context, id Identity) error {
	if id.Principal == "" {
		return fmt.Errorf("actor: principal vacío")
	}
	a.mu.Lock()
	a.fetching = true
	a.mu.Unlock()

	b, err := a.factory(ctx, id)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.fetching = false
	if err != nil {
		a.log.Warn().Err(err).Str("principal", id.Principal).Msg("no se pudo crear el actor")
		return fmt.Errorf("actor: %w", err)
	}
	a.identity = &id
	a.actor = b
	return nil
}

// Actor devuelve el actor si ya está disponible.
func (a *Accessor) Actor() (backend.Backend, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.actor, a.actor != nil
}

// Identity devuelve la identidad enlazada.
func (a *Accessor) Identity() (Identity, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.identity == nil {
		return Identity{}, false
	}
	return *a.identity, true
}

// IsFetching informa si el actor se está construyendo.
func (a *Accessor) IsFetching() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.fetching
}

// Reset olvida identidad y actor (logout).
func (a *Accessor) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.identity = nil
	a.actor = nil
}
