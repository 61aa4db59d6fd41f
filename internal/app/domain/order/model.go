package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Card types accepted at checkout.
const (
	CardVisa       = "visa"
	CardMasterCard = "mastercard"
	CardAmex       = "amex"
)

// Order is a placed purchase. Lines are frozen copies of the cart at the
// time of checkout.
type Order struct {
	Number   string          `json:"number" db:"number"`
	Lines    []Line          `json:"lines"`
	Total    decimal.Decimal `json:"total" db:"total"`
	Payment  CreditCard      `json:"payment"`
	Billing  Address         `json:"billing"`
	PlacedAt time.Time       `json:"placed_at" db:"placed_at"`
}

// Line is one ordered item.
type Line struct {
	ItemNumber  string          `json:"item_number" db:"item_number"`
	Description string          `json:"description" db:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	Quantity    int             `json:"quantity" db:"quantity"`
}

// Total is the unit price times the quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CreditCard is the payment used for an order. Number only ever holds the
// masked card number once an order is placed.
type CreditCard struct {
	Type   string `json:"type" db:"card_type"`
	Number string `json:"number" db:"card_number"`
	Expiry string `json:"expiry" db:"card_expiry"`
}

// Address is the billing address.
type Address struct {
	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
	EmailAddress string `json:"email_address" db:"email_address"`
}

// FullName joins first and last name.
func (a Address) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
