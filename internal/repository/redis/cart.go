// Package redis provides the Redis-backed cart repository, used when carts
// must survive process restarts. Carts are stored as JSON blobs under a
// per-cart key with a sliding TTL.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meridianhome/storefront/internal/domain"
	"github.com/meridianhome/storefront/pkg/errors"
)

const cartKeyPrefix = "cart:"

// CartRepository stores carts in Redis.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartRepository creates a Redis cart store. Each Save resets the TTL, so
// active carts stay alive and abandoned ones expire.
func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

func cartKey(cartID string) string {
	return cartKeyPrefix + cartID
}

func (r *CartRepository) Get(ctx context.Context, cartID string) (domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(cartID)).Bytes()
	if err == redis.Nil {
		return domain.NewCart(cartID), nil
	}
	if err != nil {
		return domain.Cart{}, errors.Internal(fmt.Errorf("redis get cart %s: %w", cartID, err))
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, errors.Internal(fmt.Errorf("unmarshal cart %s: %w", cartID, err))
	}
	return cart, nil
}

func (r *CartRepository) Save(ctx context.Context, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return errors.Internal(fmt.Errorf("marshal cart %s: %w", cart.ID, err))
	}

	if err := r.client.Set(ctx, cartKey(cart.ID), data, r.ttl).Err(); err != nil {
		return errors.Internal(fmt.Errorf("redis set cart %s: %w", cart.ID, err))
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return errors.Internal(fmt.Errorf("redis del cart %s: %w", cartID, err))
	}
	return nil
}
