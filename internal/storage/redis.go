package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/iwvelando/proforma/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each snapshot as a field of one hash and the save order
// in a list, newest at the head.
type RedisStore struct {
	client   *redis.Client
	hashKey  string
	orderKey string
}

// NewRedisStore connects to addr (REDIS_ADDR when empty) and checks the
// connection.
func NewRedisStore(ctx context.Context, addr, prefix string) (*RedisStore, error) {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		return nil, fmt.Errorf("redis storage needs an address or REDIS_ADDR")
	}
	if prefix == "" {
		prefix = constants.DefaultRedisKeyPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	return &RedisStore{
		client:   client,
		hashKey:  prefix,
		orderKey: prefix + ":order",
	}, nil
}

func (s *RedisStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.hashKey, snap.ID, data)
		pipe.LRem(ctx, s.orderKey, 0, snap.ID)
		pipe.LPush(ctx, s.orderKey, snap.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save deal: %w", err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]Snapshot, error) {
	ids, err := s.client.LRange(ctx, s.orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	values, err := s.client.HMGet(ctx, s.hashKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}

	snapshots := make([]Snapshot, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Listed but missing from the hash.
			continue
		}
		var snap Snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal deal: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	raw, err := s.client.HGet(ctx, s.hashKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load deal: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal deal: %w", err)
	}
	return &snap, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	var removed *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.HDel(ctx, s.hashKey, id)
		pipe.LRem(ctx, s.orderKey, 0, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	if removed.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.hashKey, s.orderKey).Err(); err != nil {
		return fmt.Errorf("failed to clear deals: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
