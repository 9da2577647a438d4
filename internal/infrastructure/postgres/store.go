package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
)

// Store backend del ERP sobre PostgreSQL. Aplica las mismas reglas que el servicio remoto:
// el primer perfil es admin, el stock nunca queda negativo y los registros inexistentes son (nil, nil).
type Store struct {
	pool *pgxpool.Pool
	tx   *TxRunner
	now  func() time.Time
}

// NewStore construye el backend con el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, tx: NewTxRunner(pool), now: time.Now}
}

// For devuelve el backend visto por principal.
func (s *Store) For(principal string) backend.Backend {
	return &caller{s: s, principal: principal}
}

var _ backend.Backend = (*caller)(nil)

type caller struct {
	s         *Store
	principal string
}

func (c *caller) now() time.Time { return c.s.now().UTC() }

func notFound(what, id string) error {
	return &domain.RemoteError{Code: domain.CodeNotFound, Message: fmt.Sprintf("%s %s not found", what, id)}
}

func invalid(msg string) error {
	return &domain.RemoteError{Code: domain.CodeValidation, Message: msg}
}

func insufficientStock(name string, available, requested int64) error {
	return &domain.RemoteError{
		Code:    domain.CodeInsufficientStock,
		Message: fmt.Sprintf("insufficient stock for %s: available %d, requested %d", name, available, requested),
	}
}

func conflict(msg string) error {
	return &domain.RemoteError{Code: domain.CodeConflict, Message: msg}
}
