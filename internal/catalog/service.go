package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/docesonho/bakery-backend/internal/notify"
)

// TopicChanged is published on the event bus after every successful catalog
// mutation, once the cache has been refetched.
const TopicChanged = "catalog:changed"

// Service is the catalog store: a read-through cache over the remote
// products/categories tables. Mutations go to the repository first; the cache
// is invalidated and refetched only on success, so the remote store stays the
// source of truth.
type Service struct {
	repo     Repository
	notifier notify.Notifier
	bus      EventBus.Bus

	mu         sync.RWMutex
	products   []Product
	categories []Category
	loaded     bool
}

func NewService(repo Repository, notifier notify.Notifier, bus EventBus.Bus) *Service {
	return &Service{repo: repo, notifier: notifier, bus: bus}
}

// Refresh refetches both cached lists. Until the first successful Refresh the
// service reports itself as loading.
func (s *Service) Refresh(ctx context.Context) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return err
	}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.products = products
	s.categories = categories
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// IsLoading reports whether the initial fetch has completed yet.
func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loaded
}

func (s *Service) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Service) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// ProductByID looks a product up in the cache.
func (s *Service) ProductByID(id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// ProductsByCategory filters the cached products by category reference.
func (s *Service) ProductsByCategory(categoryID string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range s.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// Featured filters the cached products flagged as featured.
func (s *Service) Featured() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Search filters cached products by case-insensitive substring match against
// name and description.
func (s *Service) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0)
	if q == "" {
		return out
	}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) categoryExists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Service) CreateProduct(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	if !s.categoryExists(p.CategoryID) {
		return Product{}, ErrInvalidProduct
	}
	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		s.notifier.Error("Erro ao criar produto")
		return Product{}, err
	}
	s.afterMutation(ctx, "Produto criado com sucesso!")
	return created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	if !s.categoryExists(p.CategoryID) {
		return Product{}, ErrInvalidProduct
	}
	updated, err := s.repo.UpdateProduct(ctx, p)
	if err != nil {
		s.notifier.Error("Erro ao atualizar produto")
		return Product{}, err
	}
	s.afterMutation(ctx, "Produto atualizado com sucesso!")
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		s.notifier.Error("Erro ao deletar produto")
		return err
	}
	s.afterMutation(ctx, "Produto deletado com sucesso!")
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, c Category) (Category, error) {
	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	created, err := s.repo.CreateCategory(ctx, c)
	if err != nil {
		s.notifier.Error("Erro ao criar categoria")
		return Category{}, err
	}
	s.afterMutation(ctx, "Categoria criada com sucesso!")
	return created, nil
}

func (s *Service) UpdateCategory(ctx context.Context, c Category) (Category, error) {
	if err := c.Validate(); err != nil {
		return Category{}, err
	}
	updated, err := s.repo.UpdateCategory(ctx, c)
	if err != nil {
		s.notifier.Error("Erro ao atualizar categoria")
		return Category{}, err
	}
	s.afterMutation(ctx, "Categoria atualizada com sucesso!")
	return updated, nil
}

// DeleteCategory refuses to delete a category that still has products
// referencing it. The count runs against the cache and the rejection never
// reaches the repository.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if n := len(s.ProductsByCategory(id)); n > 0 {
		s.notifier.Error("Não é possível excluir uma categoria que possui produtos associados.")
		return ErrCategoryInUse
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		s.notifier.Error("Erro ao deletar categoria")
		return err
	}
	s.afterMutation(ctx, "Categoria deletada com sucesso!")
	return nil
}

// afterMutation implements the read-through protocol: refetch, then notify
// and publish the change event.
func (s *Service) afterMutation(ctx context.Context, msg string) {
	if err := s.Refresh(ctx); err != nil {
		zap.L().Warn("catalog refetch after mutation failed", zap.Error(err))
	}
	s.notifier.Success(msg)
	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
}
