package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/sahil-erp/internal/application/actor"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/queries"
	"github.com/jhoicas/sahil-erp/internal/application/session"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newManager(factory actor.Factory) *session.Manager {
	table := polling.NewTable(polling.GatingPerModule, polling.DefaultRules())
	return session.NewManager(factory, table, queries.Config{}, zerolog.Nop())
}

func TestManager_OpenReutilizaYCloseLimpia(t *testing.T) {
	store := memory.NewStore()
	var builds int
	var mu sync.Mutex
	m := newManager(func(_ context.Context, id actor.Identity) (backend.Backend, error) {
		mu.Lock()
		builds++
		mu.Unlock()
		return store.For(id.Principal), nil
	})
	defer m.CloseAll()
	ctx := context.Background()
	ident := actor.Identity{Principal: "p-1", Email: "a@sahil.in"}

	w1, err := m.Open(ctx, "s-1", ident)
	require.NoError(t, err)
	w2, err := m.Open(ctx, "s-1", ident)
	require.NoError(t, err)
	assert.Same(t, w1, w2)
	assert.Equal(t, 1, builds)

	_, ok := w1.Actors.Actor()
	assert.True(t, ok)
	assert.Positive(t, w1.Queries.Cache().Stats().Observers)

	_, err = w1.Queries.Products(ctx)
	require.NoError(t, err)
	assert.Positive(t, w1.Queries.Cache().Stats().Entries)

	m.Close("s-1")
	_, ok = m.Get("s-1")
	assert.False(t, ok)
	_, ok = w1.Actors.Actor()
	assert.False(t, ok, "logout olvida el actor")
	assert.Zero(t, w1.Queries.Cache().Stats().Entries, "logout vacía la caché")
	assert.Zero(t, w1.Queries.Cache().Stats().Observers)
	assert.False(t, w1.Polling.Policy().IsActive)
}

func TestManager_FactoryFallaNoRegistra(t *testing.T) {
	m := newManager(func(context.Context, actor.Identity) (backend.Backend, error) {
		return nil, errors.New("gateway down")
	})
	defer m.CloseAll()

	_, err := m.Open(context.Background(), "s-1", actor.Identity{Principal: "p"})
	assert.Error(t, err)
	assert.Zero(t, m.Len())
}

func TestManager_CloseAll(t *testing.T) {
	store := memory.NewStore()
	m := newManager(func(_ context.Context, id actor.Identity) (backend.Backend, error) {
		return store.For(id.Principal), nil
	})
	for _, id := range []string{"a", "b", "c"} {
		_, err := m.Open(context.Background(), id, actor.Identity{Principal: id})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, m.Len())
	m.CloseAll()
	assert.Zero(t, m.Len())
}

// ─── Sesiones expiradas ──────────────────────────────────────────────────────

func TestManager_ReapCierraSoloSesionesMuertas(t *testing.T) {
	store := memory.NewStore()
	m := newManager(func(_ context.Context, id actor.Identity) (backend.Backend, error) {
		return store.For(id.Principal), nil
	})
	defer m.CloseAll()
	ctx := context.Background()
	for _, id := range []string{"viva", "muerta", "sin-respuesta"} {
		_, err := m.Open(ctx, id, actor.Identity{Principal: "p-" + id})
		require.NoError(t, err)
	}
	dead, _ := m.Get("muerta")

	closed := m.Reap(ctx, func(_ context.Context, id string) (bool, error) {
		switch id {
		case "muerta":
			return false, nil
		case "sin-respuesta":
			return false, errors.New("redis caído")
		}
		return true, nil
	})

	assert.Equal(t, 1, closed)
	assert.Equal(t, 2, m.Len())
	_, ok := m.Get("sin-respuesta")
	assert.True(t, ok, "un error del almacén no cierra el workspace")
	_, ok = dead.Actors.Actor()
	assert.False(t, ok)
	assert.Zero(t, dead.Queries.Cache().Stats().Observers)
}

func TestManager_RunReaperTerminaConElContexto(t *testing.T) {
	store := memory.NewStore()
	m := newManager(func(_ context.Context, id actor.Identity) (backend.Backend, error) {
		return store.For(id.Principal), nil
	})
	defer m.CloseAll()
	_, err := m.Open(context.Background(), "s-1", actor.Identity{Principal: "p"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.RunReaper(ctx, 5*time.Millisecond, func(context.Context, string) (bool, error) { return false, nil })
		close(done)
	}()
	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
