package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
)

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.CreateProduct(ctx, product.Product{Number: "LIZ-0001", Name: "Iguana", Description: "Big lizard"})
	require.NoError(t, err)
	_, err = store.CreateProduct(ctx, product.Product{Number: "DOG-0001", Name: "Bulldog", Description: "Friendly dog"})
	require.NoError(t, err)

	_, err = store.CreateProduct(ctx, product.Product{Number: "LIZ-0001", Name: "Duplicate"})
	require.Error(t, err)

	found, err := store.SearchProducts(ctx, "LIZARD")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Iguana", found[0].Name)

	all, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bulldog", all[0].Name)

	_, err = store.GetProduct(ctx, "CAT-0001")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSearchProductsMatchesWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	store := New()
	_, err := store.CreateProduct(ctx, product.Product{Number: "FI-FW-01", Name: "Goldfish", Description: "50% off"})
	require.NoError(t, err)
	_, err = store.CreateProduct(ctx, product.Product{Number: "FI-FW-02", Name: "Koi", Description: "500 offers"})
	require.NoError(t, err)

	found, err := store.SearchProducts(ctx, "50%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "FI-FW-01", found[0].Number)
}

func TestItems(t *testing.T) {
	ctx := context.Background()
	store := New()

	_, err := store.CreateItem(ctx, product.Item{Number: "1", ProductNumber: "LIZ-0001"})
	assert.True(t, apperrors.IsNotFound(err), "item requires an existing product")

	_, err = store.CreateProduct(ctx, product.Product{Number: "LIZ-0001", Name: "Iguana"})
	require.NoError(t, err)
	for _, number := range []string{"22222222", "11111111"} {
		_, err := store.CreateItem(ctx, product.Item{Number: number, ProductNumber: "LIZ-0001", Price: decimal.RequireFromString("18.50")})
		require.NoError(t, err)
	}

	items, err := store.ListItems(ctx, "LIZ-0001")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "11111111", items[0].Number)

	item, err := store.GetItem(ctx, "22222222")
	require.NoError(t, err)
	assert.Equal(t, "18.50", item.Price.StringFixed(2))
}

func TestOrdersAllocateNumbers(t *testing.T) {
	ctx := context.Background()
	store := New()

	first, err := store.CreateOrder(ctx, order.Order{Lines: []order.Line{{ItemNumber: "1", Quantity: 1}}})
	require.NoError(t, err)
	second, err := store.CreateOrder(ctx, order.Order{})
	require.NoError(t, err)

	assert.Equal(t, "00000100", first.Number)
	assert.Equal(t, "00000101", second.Number)
	assert.False(t, first.PlacedAt.IsZero())

	loaded, err := store.GetOrder(ctx, first.Number)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)

	loaded.Lines[0].Quantity = 99
	again, err := store.GetOrder(ctx, first.Number)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Lines[0].Quantity)
}

func TestCartsAndPurge(t *testing.T) {
	ctx := context.Background()
	store := New()

	empty, err := store.LoadCart(ctx, "unknown")
	require.NoError(t, err)
	assert.True(t, empty.Empty())

	var stale cart.Cart
	stale.Add(product.Item{Number: "1"})
	stale.UpdatedAt = time.Now().Add(-3 * time.Hour)
	require.NoError(t, store.SaveCart(ctx, "stale", stale))

	var fresh cart.Cart
	fresh.Add(product.Item{Number: "2"})
	require.NoError(t, store.SaveCart(ctx, "fresh", fresh))

	purged, err := store.PurgeCarts(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	loaded, err := store.LoadCart(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Quantity())

	require.NoError(t, store.DeleteCart(ctx, "fresh"))
	loaded, err = store.LoadCart(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, loaded.Empty())
}
