package view

import (
	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
)

// View names.
const (
	HomeView     = "home"
	ProductsView = "products"
	ItemsView    = "items"
	CartView     = "cart"
	CheckoutView = "checkout"
	ReceiptView  = "receipt"
	NotFoundView = "404"
	ErrorView    = "500"
)

// ProductsPage lists the products matching a search.
type ProductsPage struct {
	Keyword  string
	Products []product.Product
}

// ItemsPage lists the items available for a product.
type ItemsPage struct {
	Product product.Product
	Items   []product.Item
}

// CartPage shows the shopper's cart.
type CartPage struct {
	Cart cart.Cart
}

// CheckoutPage shows the payment form. Form holds the values submitted on a
// previous attempt and Error the reason it was refused.
type CheckoutPage struct {
	Cart  cart.Cart
	Form  CheckoutForm
	Error string
}

// CheckoutForm mirrors the checkout form fields.
type CheckoutForm struct {
	FirstName    string
	LastName     string
	EmailAddress string
	CardType     string
	CardNumber   string
	CardExpiry   string
}

// CardTypes lists the selectable card types.
func (CheckoutForm) CardTypes() []string {
	return []string{order.CardVisa, order.CardMasterCard, order.CardAmex}
}

// ReceiptPage confirms a placed order.
type ReceiptPage struct {
	Order order.Order
}

// NotFoundPage explains which path was not found.
type NotFoundPage struct {
	Path string
}
