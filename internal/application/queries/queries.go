// Package queries expone una operación por cada llamada remota: lecturas cacheadas
// con frescura y polling declarados, escrituras que invalidan las claves afectadas.
package queries

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/sahil-erp/internal/application/actor"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/query"
	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
)

// Config frescura y reintentos de las lecturas.
type Config struct {
	Tiers query.Tiers
	Retry int
	// LowStockThreshold umbral usado por el polling de stock bajo; 0 = punto de reorden.
	LowStockThreshold int64
}

// Queries capa de consultas de una sesión.
type Queries struct {
	cache  *query.Cache
	actors *actor.Accessor
	ctrl   *polling.Controller
	table  *polling.Table
	cfg    Config
	log    zerolog.Logger

	mu    sync.Mutex
	stops []func()
}

// New construye la capa de consultas sobre cache y actors.
func New(cache *query.Cache, actors *actor.Accessor, ctrl *polling.Controller, table *polling.Table, cfg Config, log zerolog.Logger) *Queries {
	if cfg.Tiers == (query.Tiers{}) {
		cfg.Tiers = query.DefaultTiers()
	}
	return &Queries{
		cache:  cache,
		actors: actors,
		ctrl:   ctrl,
		table:  table,
		cfg:    cfg,
		log:    log.With().Str("component", "queries").Logger(),
	}
}

// Cache caché subyacente.
func (q *Queries) Cache() *query.Cache { return q.cache }

func (q *Queries) opts(key query.Key, tier query.Tier) query.Options {
	return query.Options{Key: key, StaleTime: q.cfg.Tiers.Duration(tier), Retry: q.cfg.Retry}
}

// list lectura de colección: sin actor devuelve vacío sin llamar al backend.
func list[T any](ctx context.Context, q *Queries, key query.Key, tier query.Tier, fn func(context.Context, backend.Backend) ([]T, error)) ([]T, error) {
	b, ok := q.actors.Actor()
	if !ok {
		return []T{}, nil
	}
	out, err := query.Fetch(ctx, q.cache, q.opts(key, tier), func(ctx context.Context) ([]T, error) {
		return nonNil(fn(ctx, b))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func nonNil[T any](v []T, err error) ([]T, error) {
	if err == nil && v == nil {
		v = []T{}
	}
	return v, err
}

// value lectura de un valor o registro único: sin actor devuelve el cero de T.
func value[T any](ctx context.Context, q *Queries, key query.Key, tier query.Tier, fn func(context.Context, backend.Backend) (T, error)) (T, error) {
	b, ok := q.actors.Actor()
	if !ok {
		var zero T
		return zero, nil
	}
	return query.Fetch(ctx, q.cache, q.opts(key, tier), func(ctx context.Context) (T, error) {
		return fn(ctx, b)
	})
}

// mutate ejecuta una escritura sin reintentos e invalida sus claves si tuvo éxito.
func mutate[T any](ctx context.Context, q *Queries, m Mutation, fn func(context.Context, backend.Backend) (T, error)) (T, error) {
	var zero T
	b, ok := q.actors.Actor()
	if !ok {
		return zero, domain.ErrActorUnavailable
	}
	out, err := fn(ctx, b)
	if err != nil {
		q.log.Debug().Err(err).Str("mutation", string(m)).Msg("escritura fallida")
		return zero, err
	}
	q.cache.Invalidate(Invalidations[m]...)
	return out, nil
}

func exec(ctx context.Context, q *Queries, m Mutation, fn func(context.Context, backend.Backend) error) error {
	_, err := mutate(ctx, q, m, func(ctx context.Context, b backend.Backend) (struct{}, error) {
		return struct{}{}, fn(ctx, b)
	})
	return err
}

// ── Polling ───────────────────────────────────────────────────────────────────

type polled struct {
	entity polling.Entity
	key    query.Key
	tier   query.Tier
	fetch  func(context.Context, backend.Backend) (any, error)
}

func listOf[T any](fn func(backend.Backend, context.Context) ([]T, error)) func(context.Context, backend.Backend) (any, error) {
	return func(ctx context.Context, b backend.Backend) (any, error) { return nonNil(fn(b, ctx)) }
}

func (q *Queries) polledReads() []polled {
	low := q.cfg.LowStockThreshold
	return []polled{
		{polling.EntityProducts, KeyProducts, query.TierMedium, listOf(backend.Backend.ListProducts)},
		{polling.EntityLowStock, lowStockKey(low), query.TierShort, func(ctx context.Context, b backend.Backend) (any, error) {
			return nonNil(b.ListLowStockProducts(ctx, low))
		}},
		{polling.EntityCustomers, KeyCustomers, query.TierLong, listOf(backend.Backend.ListCustomers)},
		{polling.EntityOrders, KeyOrders, query.TierShort, listOf(backend.Backend.ListOrders)},
		{polling.EntityInvoices, KeyInvoices, query.TierMedium, listOf(backend.Backend.ListInvoices)},
		{polling.EntityInventoryRecords, KeyInventoryRecords, query.TierMedium, listOf(backend.Backend.ListInventoryRecords)},
		{polling.EntityNotifications, KeyNotifications, query.TierShort, listOf(backend.Backend.ListNotifications)},
		{polling.EntityDataEntries, KeyDataEntries, query.TierLong, listOf(backend.Backend.ListDataEntries)},
		{polling.EntityApprovals, KeyApprovals, query.TierShort, listOf(backend.Backend.ListApprovals)},
		{polling.EntityUsers, KeyUsers, query.TierLong, listOf(backend.Backend.ListUserProfiles)},
		{polling.EntityStats, KeyDashboardStats, query.TierMedium, func(ctx context.Context, b backend.Backend) (any, error) {
			return b.GetDashboardStats(ctx)
		}},
	}
}

// EntityStatus sincronización de una lectura con polling.
type EntityStatus struct {
	Entity        polling.Entity
	Interval      time.Duration // 0 = no se refresca con la política vigente
	Stale         bool
	Invalidations int
}

// SyncStatus estado de cada lectura con polling bajo la política vigente.
func (q *Queries) SyncStatus() []EntityStatus {
	p := q.ctrl.Policy()
	reads := q.polledReads()
	out := make([]EntityStatus, 0, len(reads))
	for _, r := range reads {
		out = append(out, EntityStatus{
			Entity:        r.entity,
			Interval:      q.table.Interval(p, r.entity),
			Stale:         q.cache.IsStale(r.key, q.cfg.Tiers.Duration(r.tier)),
			Invalidations: q.cache.InvalidationCount(r.key),
		})
	}
	return out
}

// StartPolling registra un observador por cada lectura con regla de polling.
// Los intervalos se recalculan con la política vigente del controlador. Idempotente.
func (q *Queries) StartPolling() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.stops) > 0 {
		return
	}
	for _, r := range q.polledReads() {
		r := r
		stop := q.cache.Observe(query.ObserveOptions{
			Options:   q.opts(r.key, r.tier),
			Interval:  func() time.Duration { return q.table.Interval(q.ctrl.Policy(), r.entity) },
			Subscribe: q.ctrl.Subscribe,
			Fetch: func(ctx context.Context) (any, error) {
				b, ok := q.actors.Actor()
				if !ok {
					return nil, domain.ErrActorUnavailable
				}
				return r.fetch(ctx, b)
			},
		})
		q.stops = append(q.stops, stop)
	}
	q.log.Debug().Int("observers", len(q.stops)).Msg("polling registrado")
}

// StopPolling detiene y elimina los observadores.
func (q *Queries) StopPolling() {
	q.mu.Lock()
	stops := q.stops
	q.stops = nil
	q.mu.Unlock()
	for _, stop := range stops {
		stop()
	}
}
