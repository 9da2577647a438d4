// Package redisstore guarda las sesiones activas (jti) en Redis, o en memoria si no
// hay Redis configurado.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/repository"
)

const keyPrefix = "sahil:session:"

var _ repository.SessionStore = (*RedisStore)(nil)

// RedisStore SessionStore sobre Redis; la expiración la aplica Redis con el TTL del token.
type RedisStore struct {
	rdb *redis.Client
}

// Options conexión a Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisStore conecta y verifica con PING.
func NewRedisStore(ctx context.Context, opts Options) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: opts.Addr, Password: opts.Password, DB: opts.DB})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// NewFromClient envuelve un cliente existente.
func NewFromClient(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Save(ctx context.Context, sess repository.Session, ttl time.Duration) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+sess.ID, raw, ttl).Err()
}

// Get devuelve domain.ErrNotFound si la sesión no existe o expiró.
func (s *RedisStore) Get(ctx context.Context, id string) (*repository.Session, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess repository.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}

// Close cierra el cliente.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
