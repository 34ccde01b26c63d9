package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Product maps to the `products` table. Prices are fixed-point decimals;
// rounding to 2 decimals happens only at display time.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	CategoryID  string          `json:"category_id"`
	Featured    bool            `json:"featured"`
	Active      bool            `json:"active"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

// Validate checks the submission rules used by the admin product form:
// every descriptive field present and a strictly positive price.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProduct
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrInvalidProduct
	}
	if strings.TrimSpace(p.ImageURL) == "" {
		return ErrInvalidProduct
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		return ErrInvalidProduct
	}
	if !p.Price.IsPositive() {
		return ErrInvalidProduct
	}
	return nil
}
