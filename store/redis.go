package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "qc"

// RedisStore defines a public type used by goQuizClient APIs.
//
// RedisStore persists the credential snapshot in Redis under three keys
// sharing one prefix. It lets a fleet of headless workers share one session:
// combined with the client's single-flight renewal, only one process pays for
// each token rotation.
type RedisStore struct {
	redis  *redis.Client
	prefix string
}

// NewRedisStore describes the newredisstore operation and its observable behavior.
//
// An empty prefix falls back to "qc". Multiple independent sessions on the
// same Redis need distinct prefixes.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(entry string) string {
	return s.prefix + ":" + entry
}

// Save describes the save operation and its observable behavior.
//
// Save writes the three entries in one MULTI/EXEC pipeline so a concurrent
// Load on another process observes the old snapshot or the new one, not a mix.
func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	if !snap.Complete() {
		return ErrIncompleteSnapshot
	}
	userRaw, err := encodeUser(snap.User)
	if err != nil {
		return err
	}

	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, s.key(entryUser), userRaw, 0)
	pipe.Set(ctx, s.key(entryAccessToken), snap.AccessToken, 0)
	pipe.Set(ctx, s.key(entryRefreshToken), snap.RefreshToken, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Load describes the load operation and its observable behavior.
//
// Load reads all three entries in one MGET. Missing or corrupt entries make
// the snapshot absent; only backend unavailability is an error.
func (s *RedisStore) Load(ctx context.Context) (*Snapshot, error) {
	values, err := s.redis.MGet(ctx,
		s.key(entryUser),
		s.key(entryAccessToken),
		s.key(entryRefreshToken),
	).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(values) != 3 {
		return nil, nil
	}

	return assemble(redisBytes(values[0]), redisBytes(values[1]), redisBytes(values[2])), nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear deletes all three keys in one DEL and is idempotent.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx,
		s.key(entryUser),
		s.key(entryAccessToken),
		s.key(entryRefreshToken),
	).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func redisBytes(v any) []byte {
	switch value := v.(type) {
	case string:
		return []byte(value)
	case []byte:
		return value
	default:
		return nil
	}
}
