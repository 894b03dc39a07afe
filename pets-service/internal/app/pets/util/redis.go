package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"petshop/pets-service/internal/app/pets/entity"
	"petshop/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	petCacheKeyPrefix = "pets"
	metricsService    = "pets-service"
)

func petCacheKey(id int64) string {
	return petCacheKeyPrefix + ":" + strconv.FormatInt(id, 10)
}

// RedisClient кеширует питомцев по ключу pets:<id>
type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient подключается к Redis и проверяет соединение
func NewRedisClient(addr, password string, db int, ttl time.Duration) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisClientWithConn(client, ttl), nil
}

// NewRedisClientWithConn оборачивает уже созданный клиент
func NewRedisClientWithConn(client *redis.Client, ttl time.Duration) *RedisClient {
	return &RedisClient{client: client, ttl: ttl}
}

func (r *RedisClient) GetPet(ctx context.Context, id int64) (*entity.Pet, error) {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, petCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(metricsService, petCacheKeyPrefix)
			return nil, nil
		}
		metrics.RecordRedisError(metricsService, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get pet from cache: %w", err)
	}

	var pet entity.Pet
	if err := json.Unmarshal(data, &pet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pet: %w", err)
	}

	metrics.RecordCacheHit(metricsService, petCacheKeyPrefix)
	return &pet, nil
}

func (r *RedisClient) SetPet(ctx context.Context, pet *entity.Pet) error {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(pet)
	if err != nil {
		return fmt.Errorf("failed to marshal pet: %w", err)
	}

	if err := r.client.Set(ctx, petCacheKey(pet.ID), data, r.ttl).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpSet)
		return fmt.Errorf("failed to set pet in cache: %w", err)
	}

	return nil
}

func (r *RedisClient) DeletePet(ctx context.Context, id int64) error {
	timer := metrics.NewRedisTimer(metricsService, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, petCacheKey(id)).Err(); err != nil {
		metrics.RecordRedisError(metricsService, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete pet from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// NopCache - кеш выключен (REDIS_ADDR не задан): всегда промах
type NopCache struct{}

func (NopCache) GetPet(context.Context, int64) (*entity.Pet, error) { return nil, nil }
func (NopCache) SetPet(context.Context, *entity.Pet) error          { return nil }
func (NopCache) DeletePet(context.Context, int64) error             { return nil }
func (NopCache) Close() error                                       { return nil }
