package cart

import (
	"encoding/json"

	"github.com/angelmondragon/storefront/pkg/types"
	"github.com/shopspring/decimal"
)

// ProductRef is the product data copied into a cart line on first add.
type ProductRef struct {
	ID    types.ProductID
	Title string
	Price decimal.Decimal
	Image string
}

// Item is one persisted cart line. At most one Item exists per ID and its
// Quantity is always at least 1.
type Item struct {
	ID       types.ProductID `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// MarshalJSON stores price as a JSON number. Reads accept numbers and
// quoted strings alike.
func (i Item) MarshalJSON() ([]byte, error) {
	type line Item
	return json.Marshal(struct {
		line
		Price json.Number `json:"price"`
	}{line(i), json.Number(i.Price.String())})
}

// LineTotal is price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Totals is the derived cart summary.
type Totals struct {
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

func indexOf(items []Item, id types.ProductID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func countOf(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
