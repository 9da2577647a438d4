// Package query es la caché de lecturas remotas de una sesión: claves, frescura,
// deduplicación de llamadas concurrentes, invalidación y refresco periódico.
package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// MaxRetry tope de reintentos de una lectura.
const MaxRetry = 3

// Options describe una lectura cacheada.
type Options struct {
	Key       Key
	StaleTime time.Duration
	Retry     int // reintentos inmediatos tras el primer intento, sin backoff
}

// Stats contadores de la caché.
type Stats struct {
	Fetches       int64 `json:"fetches"`
	Hits          int64 `json:"hits"`
	Invalidations int64 `json:"invalidations"`
	Entries       int   `json:"entries"`
	Observers     int   `json:"observers"`
}

type entry struct {
	key           Key
	value         any
	updatedAt     time.Time
	invalidated   bool
	gen           uint64
	seedGen       uint64 // gen del último SetQueryData
	invalidations int
}

// Cache almacén en memoria; el único recurso mutable compartido de una sesión.
// Sólo se modifica a través de sus métodos.
type Cache struct {
	mu        sync.Mutex
	entries   map[string]*entry
	observers map[int]*observer
	nextID    int
	closed    bool

	group singleflight.Group
	now   func() time.Time
	log   zerolog.Logger

	fetches       atomic.Int64
	hits          atomic.Int64
	invalidations atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configura la caché.
type Option func(*Cache)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New crea una caché vacía.
func New(log zerolog.Logger, opts ...Option) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		entries:   make(map[string]*entry),
		observers: make(map[int]*observer),
		now:       time.Now,
		log:       log,
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch devuelve el valor cacheado de opts.Key si sigue fresco; si no, ejecuta fn
// (una sola vez aunque haya llamadas concurrentes) y guarda el resultado.
func Fetch[T any](ctx context.Context, c *Cache, opts Options, fn func(ctx context.Context) (T, error)) (T, error) {
	if v, ok := c.fresh(opts); ok {
		if t, ok := v.(T); ok {
			c.hits.Add(1)
			return t, nil
		}
	}
	v, err := c.load(ctx, opts, func(ctx context.Context) (any, error) { return fn(ctx) })
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, errors.New("query: tipo inesperado en la clave " + opts.Key.String())
	}
	return t, nil
}

// Refetch fuerza una recarga de opts.Key aunque esté fresca.
func Refetch[T any](ctx context.Context, c *Cache, opts Options, fn func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.load(ctx, opts, func(ctx context.Context) (any, error) { return fn(ctx) })
	if err != nil {
		var zero T
		return zero, err
	}
	t, _ := v.(T)
	return t, nil
}

func (c *Cache) fresh(opts Options) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[opts.Key.String()]
	if !ok || e.invalidated {
		return nil, false
	}
	if c.now().Sub(e.updatedAt) >= opts.StaleTime {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) load(ctx context.Context, opts Options, fn func(ctx context.Context) (any, error)) (any, error) {
	k := opts.Key.String()
	v, err, _ := c.group.Do(k, func() (any, error) {
		startGen := c.generation(k)
		attempts := 1 + clampRetry(opts.Retry)
		var (
			val any
			err error
		)
		for i := 0; i < attempts; i++ {
			c.fetches.Add(1)
			val, err = fn(ctx)
			if err == nil {
				break
			}
			if ctx.Err() != nil {
				break
			}
			c.log.Debug().Err(err).Str("key", k).Int("attempt", i+1).Msg("lectura fallida")
		}
		if err != nil {
			return nil, err
		}
		c.store(opts.Key, val, startGen)
		return val, nil
	})
	return v, err
}

func clampRetry(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxRetry {
		return MaxRetry
	}
	return n
}

func (c *Cache) generation(k string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[k]; ok {
		return e.gen
	}
	return 0
}

// store guarda val. Si hubo una invalidación mientras la llamada estaba en vuelo,
// la entrada queda marcada como vieja; si hubo un SetQueryData, el valor escrito
// gana y val se descarta.
func (c *Cache) store(key Key, val any, startGen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key.String()
	e, ok := c.entries[k]
	if ok && e.seedGen > startGen {
		return
	}
	if !ok {
		e = &entry{key: append(Key(nil), key...)}
		c.entries[k] = e
	}
	e.value = val
	e.updatedAt = c.now()
	e.invalidated = e.gen != startGen
}

// SetQueryData escribe un valor fresco sin llamar al backend. Las lecturas que
// ya estaban en vuelo no lo sobrescriben.
func (c *Cache) SetQueryData(key Key, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := key.String()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{key: append(Key(nil), key...)}
		c.entries[k] = e
	}
	e.gen++
	e.seedGen = e.gen
	e.value = val
	e.updatedAt = c.now()
	e.invalidated = false
}

// Peek devuelve el valor cacheado (fresco o no) sin llamar al backend.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate marca como viejas todas las entradas cuyo key tenga alguno de los
// prefijos dados. Cada entrada se marca una sola vez por llamada aunque coincida
// con varios prefijos. Los observadores afectados reciben un aviso.
func (c *Cache) Invalidate(prefixes ...Key) int {
	c.mu.Lock()
	n := 0
	for _, e := range c.entries {
		if matchesAny(e.key, prefixes) {
			e.invalidated = true
			e.gen++
			e.invalidations++
			n++
		}
	}
	var nudge []*observer
	for _, o := range c.observers {
		if matchesAny(o.opts.Key, prefixes) {
			nudge = append(nudge, o)
		}
	}
	c.mu.Unlock()

	c.invalidations.Add(int64(n))
	for _, o := range nudge {
		o.poke()
	}
	if n > 0 {
		c.log.Debug().Int("entries", n).Msg("caché invalidada")
	}
	return n
}

// InvalidationCount veces que la entrada key fue invalidada.
func (c *Cache) InvalidationCount(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.String()]; ok {
		return e.invalidations
	}
	return 0
}

// IsStale informa si key no existe o ya no está fresca para staleTime.
func (c *Cache) IsStale(key Key, staleTime time.Duration) bool {
	_, ok := c.fresh(Options{Key: key, StaleTime: staleTime})
	return !ok
}

// Remove borra las entradas con el prefijo dado.
func (c *Cache) Remove(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			delete(c.entries, k)
		}
	}
}

// Clear vacía la caché (logout). Los observadores siguen registrados.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Stats devuelve los contadores actuales.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	entries, observers := len(c.entries), len(c.observers)
	c.mu.Unlock()
	return Stats{
		Fetches:       c.fetches.Load(),
		Hits:          c.hits.Load(),
		Invalidations: c.invalidations.Load(),
		Entries:       entries,
		Observers:     observers,
	}
}

// Close detiene todos los observadores y espera a que terminen.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}

func matchesAny(k Key, prefixes []Key) bool {
	for _, p := range prefixes {
		if k.HasPrefix(p) {
			return true
		}
	}
	return false
}
