package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salecart-api/internal/application/ports"
	"github.com/jhoicas/salecart-api/pkg/config"
)

var _ ports.PriceCache = (*PriceCache)(nil)

// PriceCache guarda precios calculados en Redis como texto decimal con TTL.
type PriceCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewClient abre el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewPriceCache construye la caché. prefix separa entornos que comparten Redis.
func NewPriceCache(client *redis.Client, ttl time.Duration, prefix string) *PriceCache {
	return &PriceCache{client: client, ttl: ttl, prefix: prefix}
}

// Get devuelve el precio guardado; ok es false si la clave no existe o expiró.
func (c *PriceCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	if c == nil || c.client == nil {
		return decimal.Zero, false, nil
	}
	raw, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("precio en caché inválido %q: %w", raw, err)
	}
	return price, true, nil
}

// Set guarda el precio con el TTL configurado.
func (c *PriceCache) Set(ctx context.Context, key string, price decimal.Decimal) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, c.prefix+key, price.String(), c.ttl).Err()
}
