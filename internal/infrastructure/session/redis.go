package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/comandero/pos-api/internal/domain/entity"
	domainRepo "github.com/comandero/pos-api/internal/domain/repository"
)

const (
	cartKeyPrefix    = "cart:"
	removalKeyPrefix = "cart-removals:"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed cart store so staged carts survive
// process restarts and are shared across instances.
func NewRedisStore(addr, password string, db int, ttl time.Duration) (domainRepo.CartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) (*entity.Cart, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cart entity.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &cart, nil
}

func (s *redisStore) Put(ctx context.Context, key string, cart *entity.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return s.client.Set(ctx, cartKeyPrefix+key, data, s.ttl).Err()
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, cartKeyPrefix+key).Err()
}

func (s *redisStore) GetRemovals(ctx context.Context, key string) ([]entity.CartEntry, error) {
	data, err := s.client.Get(ctx, removalKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []entity.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode removal list: %w", err)
	}
	return entries, nil
}

func (s *redisStore) PutRemovals(ctx context.Context, key string, entries []entity.CartEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode removal list: %w", err)
	}
	return s.client.Set(ctx, removalKeyPrefix+key, data, s.ttl).Err()
}

func (s *redisStore) DeleteRemovals(ctx context.Context, key string) error {
	return s.client.Del(ctx, removalKeyPrefix+key).Err()
}
