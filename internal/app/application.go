package app

import (
	"context"
	"fmt"
	"time"

	"github.com/R3E-Network/petstore/internal/app/services/carts"
	"github.com/R3E-Network/petstore/internal/app/services/catalog"
	"github.com/R3E-Network/petstore/internal/app/services/checkout"
	"github.com/R3E-Network/petstore/internal/app/storage"
	"github.com/R3E-Network/petstore/internal/app/storage/memory"
	"github.com/R3E-Network/petstore/internal/app/system"
	"github.com/R3E-Network/petstore/internal/logging"
)

// Default idle cart handling.
const (
	DefaultCartTTL       = 2 * time.Hour
	DefaultPurgeSchedule = "@every 10m"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Products storage.ProductStore
	Items    storage.ItemStore
	Orders   storage.OrderStore
	Carts    storage.CartStore
}

// Application ties domain services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logging.Logger

	Catalog  *catalog.Service
	Carts    *carts.Service
	Checkout *checkout.Service
}

type options struct {
	cartTTL       time.Duration
	purgeSchedule string
}

// Option customises the application.
type Option func(*options)

// WithCartPurge sets how long carts may stay idle and how often idle carts
// are looked for.
func WithCartPurge(ttl time.Duration, schedule string) Option {
	return func(o *options) {
		if ttl > 0 {
			o.cartTTL = ttl
		}
		if schedule != "" {
			o.purgeSchedule = schedule
		}
	}
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logging.Logger, opts ...Option) (*Application, error) {
	if log == nil {
		log = logging.NewDefault("app")
	}
	o := options{cartTTL: DefaultCartTTL, purgeSchedule: DefaultPurgeSchedule}
	for _, opt := range opts {
		opt(&o)
	}

	mem := memory.New()
	if stores.Products == nil {
		stores.Products = mem
	}
	if stores.Items == nil {
		stores.Items = mem
	}
	if stores.Orders == nil {
		stores.Orders = mem
	}
	if stores.Carts == nil {
		stores.Carts = mem
	}

	catalogService := catalog.New(stores.Products, stores.Items, log)
	cartService := carts.New(stores.Items, stores.Carts, log)
	checkoutService := checkout.New(cartService, stores.Orders, log)

	manager := system.NewManager()
	purger := carts.NewPurger(cartService, o.cartTTL, o.purgeSchedule, log)
	if err := manager.Register(purger); err != nil {
		return nil, fmt.Errorf("register %s: %w", purger.Name(), err)
	}

	return &Application{
		manager:  manager,
		log:      log,
		Catalog:  catalogService,
		Carts:    cartService,
		Checkout: checkoutService,
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
