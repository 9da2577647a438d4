package query

import (
	"context"
	"sync"
	"time"
)

// ObserveOptions lectura observada: se recarga cada Interval() mientras sea > 0.
type ObserveOptions struct {
	Options
	// Interval intervalo vigente; 0 pausa el refresco. Se reevalúa tras cada señal de Subscribe.
	Interval func() time.Duration
	// Subscribe avisa de cambios que pueden alterar Interval (política de polling).
	Subscribe func() (<-chan struct{}, func())
	Fetch     func(ctx context.Context) (any, error)
}

type observer struct {
	id     int
	opts   ObserveOptions
	nudge  chan struct{}
	stop   chan struct{}
	done   chan struct{}
	closer sync.Once
}

func (o *observer) poke() {
	select {
	case o.nudge <- struct{}{}:
	default:
	}
}

// Observe registra una lectura observada y arranca su goroutine. La función devuelta
// la detiene y espera a que termine. Una invalidación que afecte a la clave provoca
// una recarga inmediata si el intervalo vigente es > 0.
func (c *Cache) Observe(opts ObserveOptions) (stop func()) {
	o := &observer{
		opts:  opts,
		nudge: make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(o.done)
		return func() {}
	}
	o.id = c.nextID
	c.nextID++
	c.observers[o.id] = o
	c.wg.Add(1)
	c.mu.Unlock()

	go c.run(o)

	return func() {
		o.closer.Do(func() { close(o.stop) })
		<-o.done
	}
}

func (c *Cache) run(o *observer) {
	defer func() {
		c.mu.Lock()
		delete(c.observers, o.id)
		c.mu.Unlock()
		close(o.done)
		c.wg.Done()
	}()

	var changes <-chan struct{}
	if o.opts.Subscribe != nil {
		ch, cancel := o.opts.Subscribe()
		defer cancel()
		changes = ch
	}

	for {
		interval := o.opts.Interval()
		var (
			timer *time.Timer
			tick  <-chan time.Time
		)
		if interval > 0 {
			timer = time.NewTimer(interval)
			tick = timer.C
		}

		select {
		case <-o.stop:
			stopTimer(timer)
			return
		case <-c.ctx.Done():
			stopTimer(timer)
			return
		case <-changes:
			stopTimer(timer)
		case <-o.nudge:
			stopTimer(timer)
			if o.opts.Interval() > 0 {
				c.refresh(o)
			}
		case <-tick:
			c.refresh(o)
		}
	}
}

func (c *Cache) refresh(o *observer) {
	if _, err := c.load(c.ctx, o.opts.Options, o.opts.Fetch); err != nil && c.ctx.Err() == nil {
		c.log.Warn().Err(err).Str("key", o.opts.Key.String()).Msg("refresco periódico fallido")
	}
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}
