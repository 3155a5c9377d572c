package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "user"

// RedisStore persists user records in Redis, one key per username.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a RedisStore. An empty prefix defaults to "user".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(username string) string {
	return s.prefix + ":" + username
}

// Get implements [UserStore].
func (s *RedisStore) Get(ctx context.Context, username string) (*UserRecord, error) {
	data, err := s.redis.Get(ctx, s.key(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	record, err := decodeUserRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
	}

	return record, nil
}

// Put implements [UserStore]. Records never expire; revocation is driven by
// the version counter, not by key TTLs.
func (s *RedisStore) Put(ctx context.Context, record *UserRecord) error {
	encoded, err := encodeUserRecord(record)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(record.Username), encoded, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

// Create implements [UserStore] using SETNX so the existence check and the
// write are a single round-trip.
func (s *RedisStore) Create(ctx context.Context, record *UserRecord) error {
	encoded, err := encodeUserRecord(record)
	if err != nil {
		return err
	}

	ok, err := s.redis.SetNX(ctx, s.key(record.Username), encoded, 0).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !ok {
		return ErrUserExists
	}

	return nil
}

// Delete implements [UserStore].
func (s *RedisStore) Delete(ctx context.Context, username string) error {
	deleted, err := s.redis.Del(ctx, s.key(username)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if deleted == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Exists implements [UserStore].
func (s *RedisStore) Exists(ctx context.Context, username string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(username)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return n > 0, nil
}
