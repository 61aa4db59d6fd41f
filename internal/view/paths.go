package view

import "net/url"

// Paths of the store's pages, shared by templates, handlers and tests.

func HomePath() string      { return "/" }
func ProductsPath() string  { return "/products" }
func CartPath() string      { return "/cart" }
func CartItemsPath() string { return "/cart_items" }
func OrdersPath() string    { return "/orders" }
func NewOrderPath() string  { return "/orders/new" }

// ItemsPath lists the items of a product.
func ItemsPath(productNumber string) string {
	return "/products/" + url.PathEscape(productNumber) + "/items"
}

// OrderPath shows the receipt of an order.
func OrderPath(number string) string {
	return "/orders/" + url.PathEscape(number)
}

// SearchPath runs a product search.
func SearchPath(keyword string) string {
	return ProductsPath() + "?" + url.Values{"keyword": {keyword}}.Encode()
}
