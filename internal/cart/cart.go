package cart

import (
	"github.com/shopspring/decimal"

	"github.com/docesonho/bakery-backend/internal/catalog"
)

// Item is one cart line: a product snapshot taken at add time plus a
// quantity. The snapshot keeps the cart stable when the catalog changes
// underneath it.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price × quantity for this line.
func (i Item) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
