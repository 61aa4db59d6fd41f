package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/petstore/internal/app/domain/product"
)

func TestProductsViewListsMatches(t *testing.T) {
	doc := renderDOM(t, ProductsView, ProductsPage{
		Keyword: "lizard",
		Products: []product.Product{
			{Number: "LIZ-0001", Name: "Iguana", Description: "Big lizard"},
			{Number: "LIZ-0002", Name: "Gecko", Description: "Small lizard"},
		},
	})

	assert.Equal(t, "2", doc.Find("#match-count").Text())
	link := doc.Find("li#product-LIZ-0001 a")
	assert.Equal(t, ItemsPath("LIZ-0001"), link.AttrOr("href", ""))
	assert.Equal(t, "Iguana", link.Text())
	assert.Equal(t, 0, doc.Find("#no-match").Length())
}

func TestProductsViewReportsNoMatch(t *testing.T) {
	doc := renderDOM(t, ProductsView, ProductsPage{Keyword: "unicorn"})

	assert.Equal(t, 1, doc.Find("#no-match").Length())
	assert.Equal(t, "unicorn", doc.Find("#no-match .keyword").Text())
	assert.Equal(t, 0, doc.Find("#catalog").Length())
}

func TestCartViewWhenEmpty(t *testing.T) {
	doc := renderDOM(t, CartView, CartPage{})

	assert.Equal(t, 1, doc.Find("#cart-empty").Length())
	assert.Equal(t, 0, doc.Find("#checkout").Length())
}

func TestCartViewShowsLinesAndGrandTotal(t *testing.T) {
	same := anItem().withNumber("12345678").priced("18.50")
	doc := renderDOM(t, CartView, CartPage{Cart: aCartWith(same, same, anItem().withNumber("87654321").priced("50.00"))})

	assert.Equal(t, 2, doc.Find("#cart-items tbody tr").Length())
	assert.Equal(t, "2", doc.Find("tr#cart-item-12345678 .quantity").Text())
	assert.Equal(t, "37.00", doc.Find("tr#cart-item-12345678 .total").Text())
	assert.Equal(t, "87.00", doc.Find("#cart-grand-total").Text())
	assert.Equal(t, NewOrderPath(), doc.Find("a#checkout").AttrOr("href", ""))
	assert.Equal(t, "DELETE", doc.Find("form#empty-cart input[name='_method']").AttrOr("value", ""))
}

func TestCheckoutViewKeepsSubmittedValues(t *testing.T) {
	doc := renderDOM(t, CheckoutView, CheckoutPage{
		Cart:  aCartWith(anItem().priced("18.50")),
		Form:  CheckoutForm{FirstName: "Jill", CardType: "mastercard", CardNumber: "4111"},
		Error: "card_number: must be 12 to 19 digits",
	})

	form := doc.Find("form#order")
	require.Equal(t, 1, form.Length())
	assert.Equal(t, OrdersPath(), form.AttrOr("action", ""))
	assert.Equal(t, "Jill", doc.Find("#first-name").AttrOr("value", ""))
	assert.Equal(t, "4111", doc.Find("#card-number").AttrOr("value", ""))
	assert.Equal(t, "mastercard", doc.Find("#card-type option[selected]").AttrOr("value", ""))
	assert.Equal(t, 3, doc.Find("#card-type option").Length())
	assert.Contains(t, doc.Find("#errors").Text(), "card_number")
	assert.Equal(t, "18.50", doc.Find("#cart-grand-total").Text())
}

func TestReceiptView(t *testing.T) {
	doc := renderDOM(t, ReceiptView, ReceiptPage{Order: anOrder()})

	assert.Equal(t, "00000100", doc.Find("#order-number").Text())
	assert.Equal(t, "37.00", doc.Find("#order-total").Text())
	assert.Equal(t, "2", strings.TrimSpace(doc.Find("tr#order-line-12345678 .quantity").Text()))
	assert.Equal(t, "************1111", doc.Find("#card-number").Text())
	assert.Equal(t, "Jill Smith", doc.Find("#billing-name").Text())
}
