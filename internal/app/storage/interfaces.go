package storage

import (
	"context"
	"time"

	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
)

// ProductStore persists catalog products.
type ProductStore interface {
	CreateProduct(ctx context.Context, p product.Product) (product.Product, error)
	GetProduct(ctx context.Context, number string) (product.Product, error)
	ListProducts(ctx context.Context) ([]product.Product, error)
	// SearchProducts matches keyword case-insensitively against the name
	// and description. Results are ordered by name.
	SearchProducts(ctx context.Context, keyword string) ([]product.Product, error)
}

// ItemStore persists the purchasable items of products.
type ItemStore interface {
	CreateItem(ctx context.Context, item product.Item) (product.Item, error)
	GetItem(ctx context.Context, number string) (product.Item, error)
	// ListItems returns the items of a product ordered by item number.
	ListItems(ctx context.Context, productNumber string) ([]product.Item, error)
}

// OrderStore persists placed orders. CreateOrder allocates the order number
// when the order does not carry one.
type OrderStore interface {
	CreateOrder(ctx context.Context, o order.Order) (order.Order, error)
	GetOrder(ctx context.Context, number string) (order.Order, error)
}

// CartStore keeps one cart per shopper session. LoadCart returns an empty
// cart for unknown sessions.
type CartStore interface {
	LoadCart(ctx context.Context, sessionID string) (cart.Cart, error)
	SaveCart(ctx context.Context, sessionID string, c cart.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

// CartPurger is implemented by cart stores that do not expire carts on their
// own. It drops carts not updated since before the cutoff.
type CartPurger interface {
	PurgeCarts(ctx context.Context, cutoff time.Time) (int, error)
}
