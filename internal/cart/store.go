package cart

import (
	"fmt"
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/docesonho/bakery-backend/internal/catalog"
	"github.com/docesonho/bakery-backend/internal/notify"
)

// TopicChanged is published after every cart mutation.
const TopicChanged = "cart:changed"

// Store is an in-memory ordered cart mirrored to durable storage on every
// mutation. Items keep insertion order; at most one item per product id;
// quantities never drop below 1 (reaching 0 removes the item).
type Store struct {
	key      string
	storage  Storage
	notifier notify.Notifier
	bus      EventBus.Bus

	mu    sync.Mutex
	items []Item
}

// NewStore loads a prior snapshot for the key, falling back to an empty cart
// on absence or parse failure.
func NewStore(key string, storage Storage, notifier notify.Notifier, bus EventBus.Bus) *Store {
	items, err := storage.Load(key)
	if err != nil {
		zap.L().Warn("discarding unreadable cart snapshot", zap.String("cart", key), zap.Error(err))
		items = nil
	}
	return &Store{key: key, storage: storage, notifier: notifier, bus: bus, items: items}
}

// Add merges the quantity into an existing line for the product or appends a
// new one. Non-positive quantities leave the cart unchanged; there is no
// upper bound.
func (s *Store) Add(product catalog.Product, quantity int) {
	if quantity <= 0 {
		return
	}
	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{Product: product, Quantity: quantity})
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notifier.Success(fmt.Sprintf("%s adicionado ao carrinho", product.Name))
	s.publish()
}

// Remove deletes the line for the product id. A missing id is not an error;
// a generic notification is emitted instead.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	var removed *Item
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			it := s.items[i]
			removed = &it
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.persistLocked()
	s.mu.Unlock()

	if removed != nil {
		s.notifier.Info(fmt.Sprintf("%s removido do carrinho", removed.Product.Name))
	} else {
		s.notifier.Info("Item removido do carrinho")
	}
	s.publish()
}

// UpdateQuantity sets the quantity for the product id. Lines whose resulting
// quantity is ≤ 0 are filtered out, so quantity 0 is equivalent to Remove.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	kept := s.items[:0]
	for _, it := range s.items {
		if it.Quantity > 0 {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.persistLocked()
	s.mu.Unlock()
	s.publish()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.persistLocked()
	s.mu.Unlock()

	s.notifier.Info("Carrinho esvaziado")
	s.publish()
}

// Items returns the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the fixed-point sum of price × quantity over all lines. The empty
// cart totals zero.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

func (s *Store) persistLocked() {
	if err := s.storage.Save(s.key, s.items); err != nil {
		zap.L().Error("cart snapshot write failed", zap.String("cart", s.key), zap.Error(err))
	}
}

func (s *Store) publish() {
	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
}

// Manager hands out one Store per cart key, creating it lazily from the
// stored snapshot. Cart keys identify a shopper device.
type Manager struct {
	storage  Storage
	notifier notify.Notifier
	bus      EventBus.Bus

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(storage Storage, notifier notify.Notifier, bus EventBus.Bus) *Manager {
	return &Manager{storage: storage, notifier: notifier, bus: bus, stores: make(map[string]*Store)}
}

func (m *Manager) Store(key string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[key]; ok {
		return s
	}
	s := NewStore(key, m.storage, m.notifier, m.bus)
	m.stores[key] = s
	return s
}
