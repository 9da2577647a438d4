package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/repository"
)

func exerciseStore(t *testing.T, s repository.SessionStore) {
	t.Helper()
	ctx := context.Background()
	sess := repository.Session{ID: "jti-1", Principal: "p-1", Email: "a@sahil.in"}

	require.NoError(t, s.Save(ctx, sess, time.Minute))
	got, err := s.Get(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, sess, *got)

	require.NoError(t, s.Delete(ctx, "jti-1"))
	_, err = s.Get(ctx, "jti-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_Expira(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	require.NoError(t, s.Save(context.Background(), repository.Session{ID: "x", Principal: "p"}, time.Minute))

	now = now.Add(time.Minute)
	_, err := s.Get(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	s, err := NewRedisStore(context.Background(), Options{Addr: addr})
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}
