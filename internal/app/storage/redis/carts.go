// Package redis keeps shopper carts in Redis. Carts expire through key TTLs,
// so the store needs no purge job.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/storage"
)

const keyPrefix = "petstore:cart:"

// CartStore implements storage.CartStore on a Redis client.
type CartStore struct {
	client goredis.UniversalClient
	ttl    time.Duration
}

var _ storage.CartStore = (*CartStore)(nil)

// NewCartStore returns a store whose carts live for ttl after their last save.
func NewCartStore(client goredis.UniversalClient, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl}
}

// Dial connects to addr and checks the connection.
func Dial(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

func (s *CartStore) LoadCart(ctx context.Context, sessionID string) (cart.Cart, error) {
	raw, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return cart.Cart{}, nil
	}
	if err != nil {
		return cart.Cart{}, fmt.Errorf("load cart %s: %w", sessionID, err)
	}

	var c cart.Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return cart.Cart{}, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	return c, nil
}

func (s *CartStore) SaveCart(ctx context.Context, sessionID string, c cart.Cart) error {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", sessionID, err)
	}
	return nil
}

func (s *CartStore) DeleteCart(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, key(sessionID)).Err()
}
