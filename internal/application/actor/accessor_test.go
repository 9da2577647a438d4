package actor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sahil-erp/internal/application/actor"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/memory"
)

func TestAccessor_BindYReset(t *testing.T) {
	store := memory.NewStore()
	var seen actor.Identity
	a := actor.NewAccessor(func(_ context.Context, id actor.Identity) (backend.Backend, error) {
		seen = id
		return store.For(id.Principal), nil
	}, zerolog.Nop())

	_, ok := a.Actor()
	assert.False(t, ok, "sin identidad no hay actor")

	require.NoError(t, a.Bind(context.Background(), actor.Identity{Principal: "p-1", Email: "a@sahil.in"}))
	b, ok := a.Actor()
	require.True(t, ok)
	assert.NotNil(t, b)
	assert.Equal(t, "p-1", seen.Principal)
	assert.False(t, a.IsFetching())

	id, ok := a.Identity()
	require.True(t, ok)
	assert.Equal(t, "a@sahil.in", id.Email)

	a.Reset()
	_, ok = a.Actor()
	assert.False(t, ok)
	_, ok = a.Identity()
	assert.False(t, ok)
}

func TestAccessor_FactoryFalla(t *testing.T) {
	boom := errors.New("root key unavailable")
	a := actor.NewAccessor(func(context.Context, actor.Identity) (backend.Backend, error) {
		return nil, boom
	}, zerolog.Nop())

	err := a.Bind(context.Background(), actor.Identity{Principal: "p-1"})
	assert.ErrorIs(t, err, boom)
	_, ok := a.Actor()
	assert.False(t, ok)
	assert.False(t, a.IsFetching())

	assert.Error(t, a.Bind(context.Background(), actor.Identity{}))
}

func TestAccessor_IsFetchingDuranteBind(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	store := memory.NewStore()
	a := actor.NewAccessor(func(_ context.Context, id actor.Identity) (backend.Backend, error) {
		close(started)
		<-release
		return store.For(id.Principal), nil
	}, zerolog.Nop())

	done := make(chan error)
	go func() { done <- a.Bind(context.Background(), actor.Identity{Principal: "p"}) }()
	<-started
	assert.True(t, a.IsFetching())
	close(release)
	require.NoError(t, <-done)
	assert.False(t, a.IsFetching())
}
