package carts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
	"github.com/R3E-Network/petstore/internal/app/storage/memory"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
	"github.com/R3E-Network/petstore/internal/logging"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateProduct(ctx, product.Product{Number: "LIZ-0001", Name: "Iguana"})
	require.NoError(t, err)
	_, err = store.CreateItem(ctx, product.Item{Number: "12345678", ProductNumber: "LIZ-0001", Price: decimal.RequireFromString("18.50")})
	require.NoError(t, err)
	return New(store, store, logging.NewDiscard("carts-test")), store
}

func TestAddAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.AddItem(ctx, "s1", "12345678")
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, "s1", "12345678")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Quantity())

	other, err := svc.Cart(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, other.Empty())

	c, err = svc.RemoveItem(ctx, "s1", "12345678")
	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestAddUnknownItem(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.AddItem(context.Background(), "s1", "00000000")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.AddItem(context.Background(), "s1", "")
	assert.Error(t, err)

	_, err = svc.AddItem(context.Background(), "", "12345678")
	assert.Error(t, err)
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddItem(ctx, "busy", "12345678")
		}()
	}
	wg.Wait()

	c, err := svc.Cart(ctx, "busy")
	require.NoError(t, err)
	assert.Equal(t, 50, c.Quantity())
}

func TestCheckoutClearsOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	_, err := svc.AddItem(ctx, "s1", "12345678")
	require.NoError(t, err)

	failure := errors.New("payment declined")
	err = svc.Checkout(ctx, "s1", func(cart.Cart) error { return failure })
	require.ErrorIs(t, err, failure)
	c, _ := svc.Cart(ctx, "s1")
	assert.Equal(t, 1, c.Quantity())

	var seen cart.Cart
	require.NoError(t, svc.Checkout(ctx, "s1", func(c cart.Cart) error {
		seen = c
		return nil
	}))
	assert.Equal(t, 1, seen.Quantity())
	c, _ = svc.Cart(ctx, "s1")
	assert.True(t, c.Empty())
}

func TestPurgeIdle(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	var stale cart.Cart
	stale.Add(product.Item{Number: "12345678"})
	stale.UpdatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.SaveCart(ctx, "stale", stale))

	purged, err := svc.PurgeIdle(ctx, 10*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)
}
