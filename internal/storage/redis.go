package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ViktorDebugger/DeliFood-server/internal/domain"
)

const dishCatalogKey = "dishes:catalog"

// RedisDishCache keeps the normalized dish catalog for a bounded time. The
// catalog has no write path in this service, so the TTL is the only
// invalidation mechanism.
type RedisDishCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDishCache(client *redis.Client, ttl time.Duration) *RedisDishCache {
	return &RedisDishCache{Client: client, TTL: ttl}
}

// cachedDish is the flat form dishes take inside the cache. The domain type
// marshals itself for HTTP responses, so it cannot round-trip through JSON.
type cachedDish struct {
	ID      string                 `json:"id"`
	Name    string                 `json:"name"`
	Price   float64                `json:"price"`
	Details map[string]interface{} `json:"details"`
}

func (c *RedisDishCache) Get(ctx context.Context) ([]domain.Dish, bool, error) {
	payload, err := c.Client.Get(ctx, dishCatalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var cached []cachedDish
	if err := json.Unmarshal(payload, &cached); err != nil {
		return nil, false, err
	}

	dishes := make([]domain.Dish, 0, len(cached))
	for _, d := range cached {
		dishes = append(dishes, domain.Dish{ID: d.ID, Name: d.Name, Price: d.Price, Details: d.Details})
	}
	return dishes, true, nil
}

func (c *RedisDishCache) Set(ctx context.Context, dishes []domain.Dish) error {
	cached := make([]cachedDish, 0, len(dishes))
	for _, d := range dishes {
		cached = append(cached, cachedDish{ID: d.ID, Name: d.Name, Price: d.Price, Details: d.Details})
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, dishCatalogKey, payload, c.TTL).Err()
}
