package store

import (
	"context"

	"github.com/asaskevich/EventBus"

	"github.com/docesonho/bakery-backend/internal/admin"
	"github.com/docesonho/bakery-backend/internal/cart"
	"github.com/docesonho/bakery-backend/internal/catalog"
	"github.com/docesonho/bakery-backend/internal/hero"
)

// Store is the facade composing catalog, hero, cart and the admin auth gate
// into the single state object the rest of the application consumes. It is
// constructed once at startup and torn down on shutdown; there is no ambient
// global instance.
type Store struct {
	Catalog *catalog.Service
	Hero    *hero.Service
	Carts   *cart.Manager
	Gate    *admin.Gate

	bus EventBus.Bus
}

func New(catalogSvc *catalog.Service, heroSvc *hero.Service, carts *cart.Manager, gate *admin.Gate, bus EventBus.Bus) *Store {
	return &Store{
		Catalog: catalogSvc,
		Hero:    heroSvc,
		Carts:   carts,
		Gate:    gate,
		bus:     bus,
	}
}

// Load performs the initial fetches. Callers should treat the store as
// loading until it returns.
func (s *Store) Load(ctx context.Context) error {
	if err := s.Catalog.Refresh(ctx); err != nil {
		return err
	}
	return s.Hero.Refresh(ctx)
}

// IsLoading is the logical OR of the catalog and hero loading flags.
func (s *Store) IsLoading() bool {
	return s.Catalog.IsLoading() || s.Hero.IsLoading()
}

// changeTopics are the events that invalidate a composed read model.
var changeTopics = []string{
	catalog.TopicChanged,
	hero.TopicChanged,
	cart.TopicChanged,
	admin.TopicChanged,
}

// OnChange invokes fn after any underlying store changes: a catalog or hero
// mutation, a cart mutation, or an auth transition.
func (s *Store) OnChange(fn func()) error {
	for _, topic := range changeTopics {
		if err := s.bus.Subscribe(topic, fn); err != nil {
			return err
		}
	}
	return nil
}

// Close detaches every OnChange subscription.
func (s *Store) Close(fn func()) {
	for _, topic := range changeTopics {
		_ = s.bus.Unsubscribe(topic, fn)
	}
}
