package view

import (
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"github.com/R3E-Network/petstore/internal/app/domain/cart"
	"github.com/R3E-Network/petstore/internal/app/domain/order"
	"github.com/R3E-Network/petstore/internal/app/domain/product"
)

var itemSeq atomic.Int64

type itemBuilder struct {
	item product.Item
}

func anItem() *itemBuilder {
	n := itemSeq.Add(1)
	return &itemBuilder{item: product.Item{
		Number:        fmt.Sprintf("%08d", n),
		ProductNumber: "LIZ-0001",
		Description:   "Item description",
		Price:         decimal.RequireFromString("10.00"),
	}}
}

func (b *itemBuilder) withNumber(number string) *itemBuilder {
	b.item.Number = number
	return b
}

func (b *itemBuilder) describedAs(description string) *itemBuilder {
	b.item.Description = description
	return b
}

func (b *itemBuilder) priced(price string) *itemBuilder {
	b.item.Price = decimal.RequireFromString(price)
	return b
}

func (b *itemBuilder) build() product.Item {
	return b.item
}

func aProduct() product.Product {
	return product.Product{Number: "LIZ-0001", Name: "Iguana", Description: "Big lizard"}
}

func anEmptyListing() ItemsPage {
	return ItemsPage{Product: aProduct()}
}

func aListing(builders ...*itemBuilder) ItemsPage {
	page := ItemsPage{Product: aProduct()}
	for _, b := range builders {
		page.Items = append(page.Items, b.build())
	}
	return page
}

func aCartWith(builders ...*itemBuilder) cart.Cart {
	var c cart.Cart
	for _, b := range builders {
		c.Add(b.build())
	}
	return c
}

func anOrder() order.Order {
	return order.Order{
		Number: "00000100",
		Lines: []order.Line{{
			ItemNumber:  "12345678",
			Description: "Green Adult",
			UnitPrice:   decimal.RequireFromString("18.50"),
			Quantity:    2,
		}},
		Total:   decimal.RequireFromString("37.00"),
		Payment: order.CreditCard{Type: order.CardVisa, Number: "************1111", Expiry: "12/30"},
		Billing: order.Address{FirstName: "Jill", LastName: "Smith"},
	}
}
