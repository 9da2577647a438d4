package redisstore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/repository"
)

var _ repository.SessionStore = (*MemoryStore)(nil)

type memEntry struct {
	sess    repository.Session
	expires time.Time
}

// MemoryStore SessionStore en proceso; las sesiones se pierden al reiniciar.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemoryStore crea el almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memEntry), now: time.Now}
}

func (s *MemoryStore) Save(ctx context.Context, sess repository.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sess.ID] = memEntry{sess: sess, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*repository.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, id)
		return nil, domain.ErrNotFound
	}
	sess := e.sess
	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
