package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/R3E-Network/petstore/internal/app/domain/product"
	"github.com/R3E-Network/petstore/internal/app/storage"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
	"github.com/R3E-Network/petstore/internal/logging"
)

// Service manages the product catalog and its inventory of items.
type Service struct {
	products storage.ProductStore
	items    storage.ItemStore
	log      *logging.Logger
}

// New constructs a catalog service.
func New(products storage.ProductStore, items storage.ItemStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("catalog")
	}
	return &Service{
		products: products,
		items:    items,
		log:      log,
	}
}

// AddProduct registers a new product.
func (s *Service) AddProduct(ctx context.Context, p product.Product) (product.Product, error) {
	p.Number = strings.TrimSpace(p.Number)
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	if p.Number == "" {
		return product.Product{}, apperrors.InvalidInput("number", "is required")
	}
	if p.Name == "" {
		return product.Product{}, apperrors.InvalidInput("name", "is required")
	}

	created, err := s.products.CreateProduct(ctx, p)
	if err != nil {
		return product.Product{}, err
	}
	s.log.WithField("product_number", created.Number).
		WithField("name", created.Name).
		Info("product added")
	return created, nil
}

// AddItem stocks a new item of an existing product.
func (s *Service) AddItem(ctx context.Context, item product.Item) (product.Item, error) {
	item.Number = strings.TrimSpace(item.Number)
	item.ProductNumber = strings.TrimSpace(item.ProductNumber)
	item.Description = strings.TrimSpace(item.Description)

	if item.Number == "" {
		return product.Item{}, apperrors.InvalidInput("number", "is required")
	}
	if item.Price.LessThanOrEqual(decimal.Zero) {
		return product.Item{}, apperrors.InvalidInput("price", "must be positive")
	}
	if _, err := s.products.GetProduct(ctx, item.ProductNumber); err != nil {
		return product.Item{}, fmt.Errorf("product validation failed: %w", err)
	}
	item.Price = item.Price.Round(2)

	created, err := s.items.CreateItem(ctx, item)
	if err != nil {
		return product.Item{}, err
	}
	s.log.WithField("item_number", created.Number).
		WithField("product_number", created.ProductNumber).
		WithField("price", created.Price.StringFixed(2)).
		Info("item stocked")
	return created, nil
}

// Search finds products whose name or description contains keyword. A blank
// keyword matches nothing.
func (s *Service) Search(ctx context.Context, keyword string) ([]product.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []product.Product{}, nil
	}
	return s.products.SearchProducts(ctx, keyword)
}

// Products lists the whole catalog.
func (s *Service) Products(ctx context.Context) ([]product.Product, error) {
	return s.products.ListProducts(ctx)
}

// Product returns a single product.
func (s *Service) Product(ctx context.Context, number string) (product.Product, error) {
	return s.products.GetProduct(ctx, number)
}

// ItemsOf returns the product together with its items.
func (s *Service) ItemsOf(ctx context.Context, productNumber string) (product.Product, []product.Item, error) {
	p, err := s.products.GetProduct(ctx, productNumber)
	if err != nil {
		return product.Product{}, nil, err
	}
	items, err := s.items.ListItems(ctx, productNumber)
	if err != nil {
		return product.Product{}, nil, err
	}
	return p, items, nil
}

// Item returns a single item.
func (s *Service) Item(ctx context.Context, number string) (product.Item, error) {
	return s.items.GetItem(ctx, strings.TrimSpace(number))
}
