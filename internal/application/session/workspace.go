// Package session mantiene un espacio de trabajo por sesión autenticada: actor,
// política de polling, caché de consultas y sus observadores.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jhoicas/sahil-erp/internal/application/actor"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/queries"
	"github.com/jhoicas/sahil-erp/internal/application/query"
)

// Workspace estado en memoria de una sesión.
type Workspace struct {
	ID       string
	Identity actor.Identity
	Actors   *actor.Accessor
	Polling  *polling.Controller
	Queries  *queries.Queries

	cache     *query.Cache
	ready     chan struct{}
	startErr  error
	closeOnce sync.Once
	log       zerolog.Logger

	routeMu  sync.Mutex
	route    int
	hasRoute bool
}

func newWorkspace(id string, ident actor.Identity, factory actor.Factory, table *polling.Table, cfg queries.Config, log zerolog.Logger) *Workspace {
	wlog := log.With().Str("session", id).Str("principal", ident.Principal).Logger()
	cache := query.New(wlog)
	actors := actor.NewAccessor(factory, wlog)
	ctrl := polling.NewController()
	return &Workspace{
		ID:       id,
		Identity: ident,
		Actors:   actors,
		Polling:  ctrl,
		Queries:  queries.New(cache, actors, ctrl, table, cfg, wlog),
		cache:    cache,
		ready:    make(chan struct{}),
		log:      wlog,
	}
}

// start enlaza el actor y registra el polling. Sólo lo llama quien creó el workspace.
func (w *Workspace) start(ctx context.Context) error {
	defer close(w.ready)
	if err := w.Actors.Bind(ctx, w.Identity); err != nil {
		w.startErr = err
		return err
	}
	w.Queries.StartPolling()
	return nil
}

// wait espera a que start termine.
func (w *Workspace) wait(ctx context.Context) error {
	select {
	case <-w.ready:
		return w.startErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SwapRoute guarda el último estado de enrutamiento resuelto y devuelve el
// anterior; ok es false en la primera resolución.
func (w *Workspace) SwapRoute(state int) (prev int, ok bool) {
	w.routeMu.Lock()
	defer w.routeMu.Unlock()
	prev, ok = w.route, w.hasRoute
	w.route, w.hasRoute = state, true
	return prev, ok
}

// Close detiene el polling, vacía la caché y olvida el actor. Idempotente.
func (w *Workspace) Close() {
	w.closeOnce.Do(func() {
		w.Polling.DisablePolling()
		w.Queries.StopPolling()
		w.cache.Clear()
		w.cache.Close()
		w.Actors.Reset()
		w.log.Debug().Msg("workspace cerrado")
	})
}
