package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a kind of pet listed in the catalog, such as "Iguana".
type Product struct {
	Number        string    `json:"number" db:"number"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	PhotoFileName string    `json:"photo_file_name,omitempty" db:"photo_file_name"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Item is a purchasable unit of a product, such as "Green Adult".
type Item struct {
	Number        string          `json:"number" db:"number"`
	ProductNumber string          `json:"product_number" db:"product_number"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
