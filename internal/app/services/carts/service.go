package carts

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/metrics"
	"github.com/R3E-Network/petstore/internal/app/storage"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
	"github.com/R3E-Network/petstore/internal/logging"
)

const lockStripes = 64

// Service manages the cart of each shopper session. Updates to one session
// are serialised; different sessions proceed in parallel.
type Service struct {
	items storage.ItemStore
	store storage.CartStore
	log   *logging.Logger
	locks [lockStripes]sync.Mutex
}

// New constructs a cart service.
func New(items storage.ItemStore, store storage.CartStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("carts")
	}
	return &Service{
		items: items,
		store: store,
		log:   log,
	}
}

func (s *Service) lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return apperrors.InvalidInput("session", "is required")
	}
	return nil
}

// Cart returns the session's cart, empty if the session has none.
func (s *Service) Cart(ctx context.Context, sessionID string) (cart.Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return cart.Cart{}, err
	}
	return s.store.LoadCart(ctx, sessionID)
}

// AddItem puts one unit of the item in the session's cart.
func (s *Service) AddItem(ctx context.Context, sessionID, itemNumber string) (cart.Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return cart.Cart{}, err
	}
	itemNumber = strings.TrimSpace(itemNumber)
	if itemNumber == "" {
		return cart.Cart{}, apperrors.InvalidInput("item_number", "is required")
	}

	item, err := s.items.GetItem(ctx, itemNumber)
	if err != nil {
		return cart.Cart{}, err
	}

	return s.update(ctx, sessionID, func(c *cart.Cart) {
		c.Add(item)
		metrics.RecordCartAddition()
		s.log.WithContext(ctx).
			WithField("item_number", item.Number).
			WithField("quantity", c.Quantity()).
			Debug("item added to cart")
	})
}

// RemoveItem drops an item line from the session's cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID, itemNumber string) (cart.Cart, error) {
	if err := requireSession(sessionID); err != nil {
		return cart.Cart{}, err
	}
	return s.update(ctx, sessionID, func(c *cart.Cart) {
		c.Remove(strings.TrimSpace(itemNumber))
	})
}

// Clear empties the session's cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	unlock := s.lock(sessionID)
	defer unlock()
	return s.store.DeleteCart(ctx, sessionID)
}

// Checkout hands the session's cart to fn and empties the cart if fn
// succeeds. The session stays locked while fn runs.
func (s *Service) Checkout(ctx context.Context, sessionID string, fn func(cart.Cart) error) error {
	if err := requireSession(sessionID); err != nil {
		return err
	}
	unlock := s.lock(sessionID)
	defer unlock()

	c, err := s.store.LoadCart(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return s.store.DeleteCart(ctx, sessionID)
}

// PurgeIdle drops carts untouched for longer than ttl when the store needs
// explicit purging. It returns the number of carts dropped.
func (s *Service) PurgeIdle(ctx context.Context, ttl time.Duration) (int, error) {
	purger, ok := s.store.(storage.CartPurger)
	if !ok {
		return 0, nil
	}
	purged, err := purger.PurgeCarts(ctx, time.Now().UTC().Add(-ttl))
	if err != nil {
		return 0, err
	}
	metrics.RecordCartsPurged(purged)
	if purged > 0 {
		s.log.WithField("purged", purged).Info("idle carts purged")
	}
	return purged, nil
}

func (s *Service) update(ctx context.Context, sessionID string, mutate func(*cart.Cart)) (cart.Cart, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	c, err := s.store.LoadCart(ctx, sessionID)
	if err != nil {
		return cart.Cart{}, err
	}
	mutate(&c)
	if err := s.store.SaveCart(ctx, sessionID, c); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}
