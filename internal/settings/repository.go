package settings

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("setting not found")

// Keys used by the storefront. Each key maps to a single row in
// `site_settings`.
const (
	KeyHeroConfig    = "hero_config"
	KeyAdminPassword = "admin_password"
	KeyRecoveryCode  = "recovery_code"
)

// Repository provides access to keyed site settings.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Upsert(ctx context.Context, key, value string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewInMemoryRepository(seed map[string]string) *InMemoryRepository {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &InMemoryRepository{values: values}
}

func (r *InMemoryRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (r *InMemoryRepository) Upsert(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}
