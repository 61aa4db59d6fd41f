package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
	"github.com/R3E-Network/petstore/internal/app/services/carts"
	"github.com/R3E-Network/petstore/internal/app/storage/memory"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
	"github.com/R3E-Network/petstore/internal/logging"
)

func validPayment() Payment {
	return Payment{
		Card:    order.CreditCard{Type: "Visa", Number: "4111 1111 1111 1111", Expiry: "12/30"},
		Billing: order.Address{FirstName: "Jill", LastName: "Smith", EmailAddress: "jill@example.com"},
	}
}

func setup(t *testing.T) (*Service, *carts.Service) {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	_, err := store.CreateProduct(ctx, product.Product{Number: "LIZ-0001", Name: "Iguana"})
	require.NoError(t, err)
	_, err = store.CreateItem(ctx, product.Item{Number: "12345678", ProductNumber: "LIZ-0001", Description: "Green Adult", Price: decimal.RequireFromString("18.50")})
	require.NoError(t, err)

	log := logging.NewDiscard("checkout-test")
	cartService := carts.New(store, store, log)
	return New(cartService, store, log), cartService
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	svc, cartService := setup(t)

	_, err := cartService.AddItem(ctx, "s1", "12345678")
	require.NoError(t, err)
	_, err = cartService.AddItem(ctx, "s1", "12345678")
	require.NoError(t, err)

	placed, err := svc.PlaceOrder(ctx, "s1", validPayment())
	require.NoError(t, err)
	assert.NotEmpty(t, placed.Number)
	assert.Equal(t, "37.00", placed.Total.StringFixed(2))
	assert.Equal(t, "************1111", placed.Payment.Number)
	assert.Equal(t, order.CardVisa, placed.Payment.Type)
	require.Len(t, placed.Lines, 1)
	assert.Equal(t, 2, placed.Lines[0].Quantity)

	c, err := cartService.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, c.Empty(), "cart is emptied once the order is placed")

	loaded, err := svc.Order(ctx, placed.Number)
	require.NoError(t, err)
	assert.Equal(t, "Jill Smith", loaded.Billing.FullName())
}

func TestPlaceOrderRefusesEmptyCart(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.PlaceOrder(context.Background(), "s1", validPayment())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetServiceError(err).Code)
}

func TestPlaceOrderValidatesPayment(t *testing.T) {
	ctx := context.Background()
	svc, cartService := setup(t)
	_, err := cartService.AddItem(ctx, "s1", "12345678")
	require.NoError(t, err)

	cases := map[string]func(*Payment){
		"card type":   func(p *Payment) { p.Card.Type = "diners" },
		"card number": func(p *Payment) { p.Card.Number = "4111" },
		"expiry":      func(p *Payment) { p.Card.Expiry = "13/30" },
		"name":        func(p *Payment) { p.Billing.FirstName, p.Billing.LastName = "", "" },
		"email":       func(p *Payment) { p.Billing.EmailAddress = "jill" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			payment := validPayment()
			mutate(&payment)
			_, err := svc.PlaceOrder(ctx, "s1", payment)
			require.Error(t, err)
		})
	}

	c, err := cartService.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Quantity(), "rejected payments leave the cart alone")
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "************1111", MaskCardNumber("4111111111111111"))
	assert.Equal(t, "123", MaskCardNumber("123"))
}
