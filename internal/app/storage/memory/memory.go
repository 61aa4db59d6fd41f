package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
	"github.com/R3E-Network/petstore/internal/app/storage"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use and is primarily intended for tests and local development.
type Store struct {
	mu        sync.RWMutex
	nextOrder int64
	products  map[string]product.Product
	items     map[string]product.Item
	orders    map[string]order.Order
	carts     map[string]cart.Cart
}

var _ storage.ProductStore = (*Store)(nil)
var _ storage.ItemStore = (*Store)(nil)
var _ storage.OrderStore = (*Store)(nil)
var _ storage.CartStore = (*Store)(nil)
var _ storage.CartPurger = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextOrder: 100,
		products:  make(map[string]product.Product),
		items:     make(map[string]product.Item),
		orders:    make(map[string]order.Order),
		carts:     make(map[string]cart.Cart),
	}
}

// ProductStore implementation -------------------------------------------------

func (s *Store) CreateProduct(_ context.Context, p product.Product) (product.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.Number]; exists {
		return product.Product{}, apperrors.Conflict(fmt.Sprintf("product %s already exists", p.Number))
	}
	p.CreatedAt = time.Now().UTC()
	s.products[p.Number] = p
	return p, nil
}

func (s *Store) GetProduct(_ context.Context, number string) (product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[number]
	if !ok {
		return product.Product{}, apperrors.NotFound("product", number)
	}
	return p, nil
}

func (s *Store) ListProducts(_ context.Context) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, p)
	}
	sortProducts(result)
	return result, nil
}

func (s *Store) SearchProducts(_ context.Context, keyword string) ([]product.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(keyword))
	result := make([]product.Product, 0)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			result = append(result, p)
		}
	}
	sortProducts(result)
	return result, nil
}

func sortProducts(products []product.Product) {
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name == products[j].Name {
			return products[i].Number < products[j].Number
		}
		return products[i].Name < products[j].Name
	})
}

// ItemStore implementation ----------------------------------------------------

func (s *Store) CreateItem(_ context.Context, item product.Item) (product.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[item.ProductNumber]; !ok {
		return product.Item{}, apperrors.NotFound("product", item.ProductNumber)
	}
	if _, exists := s.items[item.Number]; exists {
		return product.Item{}, apperrors.Conflict(fmt.Sprintf("item %s already exists", item.Number))
	}
	item.CreatedAt = time.Now().UTC()
	s.items[item.Number] = item
	return item, nil
}

func (s *Store) GetItem(_ context.Context, number string) (product.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[number]
	if !ok {
		return product.Item{}, apperrors.NotFound("item", number)
	}
	return item, nil
}

func (s *Store) ListItems(_ context.Context, productNumber string) ([]product.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]product.Item, 0)
	for _, item := range s.items {
		if item.ProductNumber == productNumber {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

// OrderStore implementation ---------------------------------------------------

func (s *Store) CreateOrder(_ context.Context, o order.Order) (order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.Number == "" {
		o.Number = fmt.Sprintf("%08d", s.nextOrder)
		s.nextOrder++
	} else if _, exists := s.orders[o.Number]; exists {
		return order.Order{}, apperrors.Conflict(fmt.Sprintf("order %s already exists", o.Number))
	}
	if o.PlacedAt.IsZero() {
		o.PlacedAt = time.Now().UTC()
	}
	o.Lines = append([]order.Line(nil), o.Lines...)
	s.orders[o.Number] = o
	return cloneOrder(o), nil
}

func (s *Store) GetOrder(_ context.Context, number string) (order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[number]
	if !ok {
		return order.Order{}, apperrors.NotFound("order", number)
	}
	return cloneOrder(o), nil
}

func cloneOrder(o order.Order) order.Order {
	o.Lines = append([]order.Line(nil), o.Lines...)
	return o
}

// CartStore implementation ----------------------------------------------------

func (s *Store) LoadCart(_ context.Context, sessionID string) (cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.carts[sessionID].Clone(), nil
}

func (s *Store) SaveCart(_ context.Context, sessionID string, c cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	s.carts[sessionID] = c.Clone()
	return nil
}

func (s *Store) DeleteCart(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

func (s *Store) PurgeCarts(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for id, c := range s.carts {
		if c.UpdatedAt.Before(cutoff) {
			delete(s.carts, id)
			purged++
		}
	}
	return purged, nil
}
