package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/sahil-erp/internal/application/actor"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/queries"
)

// Manager registro de workspaces por id de sesión (jti del token).
type Manager struct {
	mu      sync.Mutex
	spaces  map[string]*Workspace
	factory actor.Factory
	table   *polling.Table
	cfg     queries.Config
	log     zerolog.Logger
}

// NewManager construye el registro.
func NewManager(factory actor.Factory, table *polling.Table, cfg queries.Config, log zerolog.Logger) *Manager {
	return &Manager{
		spaces:  make(map[string]*Workspace),
		factory: factory,
		table:   table,
		cfg:     cfg,
		log:     log.With().Str("component", "session").Logger(),
	}
}

// Open devuelve el workspace de la sesión, creándolo si no existe.
func (m *Manager) Open(ctx context.Context, sessionID string, ident actor.Identity) (*Workspace, error) {
	m.mu.Lock()
	if w, ok := m.spaces[sessionID]; ok {
		m.mu.Unlock()
		if err := w.wait(ctx); err != nil {
			return nil, err
		}
		return w, nil
	}
	w := newWorkspace(sessionID, ident, m.factory, m.table, m.cfg, m.log)
	m.spaces[sessionID] = w
	m.mu.Unlock()

	if err := w.start(ctx); err != nil {
		m.mu.Lock()
		delete(m.spaces, sessionID)
		m.mu.Unlock()
		w.Close()
		return nil, err
	}
	m.log.Debug().Str("session", sessionID).Msg("workspace abierto")
	return w, nil
}

// Get devuelve el workspace abierto, si existe.
func (m *Manager) Get(sessionID string) (*Workspace, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.spaces[sessionID]
	return w, ok
}

// Close cierra y olvida el workspace de la sesión.
func (m *Manager) Close(sessionID string) {
	m.mu.Lock()
	w, ok := m.spaces[sessionID]
	delete(m.spaces, sessionID)
	m.mu.Unlock()
	if ok {
		w.Close()
	}
}

// Len número de workspaces abiertos.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.spaces)
}

// CloseAll cierra todos los workspaces (apagado del servidor).
func (m *Manager) CloseAll() {
	m.mu.Lock()
	spaces := m.spaces
	m.spaces = make(map[string]*Workspace)
	m.mu.Unlock()
	for _, w := range spaces {
		w.Close()
	}
	m.log.Info().Int("workspaces", len(spaces)).Msg("workspaces cerrados")
}

// LiveFunc informa si la sesión sigue registrada en el almacén de sesiones.
type LiveFunc func(ctx context.Context, sessionID string) (bool, error)

// Reap cierra los workspaces cuya sesión ya no está viva y devuelve cuántos cerró.
// Si live falla para una sesión, su workspace se conserva hasta la próxima pasada.
func (m *Manager) Reap(ctx context.Context, live LiveFunc) int {
	m.mu.Lock()
	ids := make([]string, 0, len(m.spaces))
	for id := range m.spaces {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	closed := 0
	for _, id := range ids {
		ok, err := live(ctx, id)
		if err != nil {
			m.log.Warn().Err(err).Str("session", id).Msg("no se pudo comprobar la sesión")
			continue
		}
		if ok {
			continue
		}
		m.Close(id)
		closed++
	}
	if closed > 0 {
		m.log.Info().Int("workspaces", closed).Msg("workspaces de sesiones expiradas cerrados")
	}
	return closed
}

// RunReaper ejecuta Reap cada intervalo hasta que se cancela ctx.
func (m *Manager) RunReaper(ctx context.Context, every time.Duration, live LiveFunc) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Reap(ctx, live)
		}
	}
}
