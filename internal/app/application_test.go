package app

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
	"github.com/R3E-Network/petstore/internal/app/services/checkout"
	"github.com/R3E-Network/petstore/internal/logging"
)

func TestApplicationShopsEndToEnd(t *testing.T) {
	ctx := context.Background()
	application, err := New(Stores{}, logging.NewDiscard("app-test"))
	require.NoError(t, err)

	require.NoError(t, application.Start(ctx))
	defer application.Stop(ctx)

	_, err = application.Catalog.AddProduct(ctx, product.Product{Number: "LIZ-0001", Name: "Iguana"})
	require.NoError(t, err)
	_, err = application.Catalog.AddItem(ctx, product.Item{
		Number:        "12345678",
		ProductNumber: "LIZ-0001",
		Description:   "Green adult",
		Price:         decimal.RequireFromString("18.50"),
	})
	require.NoError(t, err)

	_, err = application.Carts.AddItem(ctx, "session", "12345678")
	require.NoError(t, err)
	_, err = application.Carts.AddItem(ctx, "session", "12345678")
	require.NoError(t, err)

	placed, err := application.Checkout.PlaceOrder(ctx, "session", checkout.Payment{
		Card:    order.CreditCard{Type: order.CardVisa, Number: "4111111111111111", Expiry: "12/30"},
		Billing: order.Address{FirstName: "Jill", LastName: "Smith"},
	})
	require.NoError(t, err)
	assert.Equal(t, "37.00", placed.Total.StringFixed(2))

	found, err := application.Checkout.Order(ctx, placed.Number)
	require.NoError(t, err)
	assert.Equal(t, placed.Number, found.Number)
}

func TestApplicationRejectsBadPurgeSchedule(t *testing.T) {
	application, err := New(Stores{}, logging.NewDiscard("app-test"), WithCartPurge(time.Hour, "whenever"))
	require.NoError(t, err)

	assert.Error(t, application.Start(context.Background()))
}
