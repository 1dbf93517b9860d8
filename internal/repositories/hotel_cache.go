package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotelbook/internal/domain/models"
	"hotelbook/internal/utils"

	"github.com/redis/go-redis/v9"
)

const (
	hotelListKey      = "hotels:all"
	hotelDetailPrefix = "hotels:detail:"
)

// HotelSource is anything that can list and fetch hotels.
type HotelSource interface {
	List(ctx context.Context) ([]models.Hotel, error)
	Get(ctx context.Context, id string) (models.Hotel, error)
}

// KV is the subset of a cache server the hotel cache needs.
// ErrCacheMiss is returned by Get for absent keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

var ErrCacheMiss = errors.New("cache miss")

type RedisKV struct {
	Client *redis.Client
}

func (r RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (r RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}

// CachedHotelRepository is a read-through cache in front of a HotelSource.
// Cache failures are logged and fall back to the source.
type CachedHotelRepository struct {
	Source HotelSource
	Cache  KV
	TTL    time.Duration
}

func (r CachedHotelRepository) List(ctx context.Context) ([]models.Hotel, error) {
	var out []models.Hotel
	if r.load(ctx, hotelListKey, &out) {
		return out, nil
	}
	out, err := r.Source.List(ctx)
	if err != nil {
		return nil, err
	}
	r.store(ctx, hotelListKey, out)
	return out, nil
}

func (r CachedHotelRepository) Get(ctx context.Context, id string) (models.Hotel, error) {
	var h models.Hotel
	key := hotelDetailPrefix + id
	if r.load(ctx, key, &h) {
		return h, nil
	}
	h, err := r.Source.Get(ctx, id)
	if err != nil {
		return models.Hotel{}, err
	}
	r.store(ctx, key, h)
	return h, nil
}

// Refresh reloads the hotel list from the source and overwrites the cached copy.
func (r CachedHotelRepository) Refresh(ctx context.Context) (int, error) {
	out, err := r.Source.List(ctx)
	if err != nil {
		return 0, err
	}
	r.store(ctx, hotelListKey, out)
	return len(out), nil
}

func (r CachedHotelRepository) load(ctx context.Context, key string, dst any) bool {
	if r.Cache == nil {
		return false
	}
	b, err := r.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			utils.LogWarn(utils.RequestIDFrom(ctx), "hotel_cache", "get "+key, err)
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		utils.LogWarn(utils.RequestIDFrom(ctx), "hotel_cache", "decode "+key, err)
		return false
	}
	return true
}

func (r CachedHotelRepository) store(ctx context.Context, key string, v any) {
	if r.Cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, b, r.TTL); err != nil {
		utils.LogWarn(utils.RequestIDFrom(ctx), "hotel_cache", "set "+key, err)
	}
}
