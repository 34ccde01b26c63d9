package cart

import (
	"encoding/json"
	"sync"

	bolt "go.etcd.io/bbolt"
)

// bucketName is the bbolt bucket holding one serialized cart per cart key.
const bucketName = "cartItems"

// Storage persists cart snapshots. Load returns (nil, nil) when no snapshot
// exists for the key.
type Storage interface {
	Load(key string) ([]Item, error)
	Save(key string, items []Item) error
}

// BoltStorage stores carts in a local bbolt file, the device-local durable
// storage of the storefront.
type BoltStorage struct {
	db *bolt.DB
}

func NewBoltStorage(db *bolt.DB) (*BoltStorage, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		return nil, err
	}
	return &BoltStorage{db: db}, nil
}

func (s *BoltStorage) Load(key string) ([]Item, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *BoltStorage) Save(key string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), raw)
	})
}

// InMemoryStorage is used for tests.
type InMemoryStorage struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{carts: make(map[string][]byte)}
}

func (s *InMemoryStorage) Load(key string) ([]Item, error) {
	s.mu.RLock()
	raw, ok := s.carts[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InMemoryStorage) Save(key string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.carts[key] = raw
	s.mu.Unlock()
	return nil
}
