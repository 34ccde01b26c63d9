package catalog

import (
	"errors"
	"strings"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidCategory  = errors.New("invalid category")
	// ErrCategoryInUse is returned when deleting a category that still has
	// products referencing it. The guard runs locally, before any query.
	ErrCategoryInUse = errors.New("category has associated products")
)

// Category maps to the `categories` table. Ordering in listings follows
// order_index ascending.
type Category struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OrderIndex int    `json:"order_index"`
	Active     bool   `json:"active"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidCategory
	}
	return nil
}
