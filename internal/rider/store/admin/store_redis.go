package admin

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSetName is the unprefixed name of the set holding admin uids.
const RedisSetName = "admins"

// DefaultRedisKey is RedisSetName under the default key prefix.
const DefaultRedisKey = "pharmafinder:" + RedisSetName

// RedisStore keeps admin uids in a Redis set so several instances share
// one registry.
type RedisStore struct {
	client *redis.Client
	key    string
}

type RedisOption func(*RedisStore)

func WithRedisKey(key string) RedisOption {
	return func(s *RedisStore) {
		if key != "" {
			s.key = key
		}
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, key: DefaultRedisKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) IsAdmin(ctx context.Context, uid string) (bool, error) {
	if uid == "" {
		return false, nil
	}
	ok, err := s.client.SIsMember(ctx, s.key, uid).Result()
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	return ok, nil
}

func (s *RedisStore) Add(ctx context.Context, uid string) error {
	if uid == "" {
		return nil
	}
	if err := s.client.SAdd(ctx, s.key, uid).Err(); err != nil {
		return fmt.Errorf("add admin: %w", err)
	}
	return nil
}

func (s *RedisStore) Seed(ctx context.Context, uids []string) error {
	members := make([]any, 0, len(uids))
	for _, uid := range uids {
		if uid != "" {
			members = append(members, uid)
		}
	}
	if len(members) == 0 {
		return nil
	}
	if err := s.client.SAdd(ctx, s.key, members...).Err(); err != nil {
		return fmt.Errorf("seed admins: %w", err)
	}
	return nil
}
