package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/orderly-console/internal/application/ports"
)

var _ ports.PreferenceStore = (*RedisStore)(nil)

const (
	keyPrefs = "orderly:prefs:%s"
	ttlPrefs = 30 * 24 * time.Hour
)

// RedisStore guarda las preferencias de cada sesión en un hash con expiración deslizante.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisClient abre el cliente con timeouts cortos.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// NewRedisStore construye el almacén sobre un cliente existente.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Ping comprueba la conexión al arrancar.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, prefsKey(sessionID), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prefs: redis hget: %w", err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, key, value string) error {
	k := prefsKey(sessionID)
	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, k, key, value)
	pipe.Expire(ctx, k, ttlPrefs)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("prefs: redis hset: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, prefsKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("prefs: redis del: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (s *RedisStore) Close() error { return s.rdb.Close() }

func prefsKey(sessionID string) string { return fmt.Sprintf(keyPrefs, sessionID) }
