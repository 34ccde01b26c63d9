package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository provides access to the remote catalog tables. Listings come back
// ordered: products by creation time descending, categories by order_index
// ascending.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, p Product) (Product, error)
	UpdateProduct(ctx context.Context, p Product) (Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c Category) (Category, error)
	UpdateCategory(ctx context.Context, c Category) (Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu         sync.RWMutex
	products   []Product
	categories []Category
}

func NewInMemoryRepository(products []Product, categories []Category) *InMemoryRepository {
	r := &InMemoryRepository{
		products:   make([]Product, 0, len(products)),
		categories: make([]Category, 0, len(categories)),
	}
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		r.products = append(r.products, p)
	}
	for _, c := range categories {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		r.categories = append(r.categories, c)
	}
	return r
}

func (r *InMemoryRepository) ListProducts(_ context.Context) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.products))
	copy(out, r.products)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (r *InMemoryRepository) CreateProduct(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	p.CreatedAt = now
	p.UpdatedAt = now
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryRepository) UpdateProduct(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == p.ID {
			p.CreatedAt = r.products[i].CreatedAt
			p.UpdatedAt = time.Now().UTC().Format(time.RFC3339Nano)
			r.products[i] = p
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

func (r *InMemoryRepository) DeleteProduct(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryRepository) ListCategories(_ context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *InMemoryRepository) CreateCategory(_ context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.NewString()
	if c.OrderIndex == 0 {
		c.OrderIndex = len(r.categories) + 1
	}
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *InMemoryRepository) UpdateCategory(_ context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == c.ID {
			r.categories[i] = c
			return c, nil
		}
	}
	return Category{}, ErrCategoryNotFound
}

func (r *InMemoryRepository) DeleteCategory(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ErrCategoryNotFound
}
