package hero

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/asaskevich/EventBus"

	"github.com/docesonho/bakery-backend/internal/notify"
	"github.com/docesonho/bakery-backend/internal/settings"
)

// TopicChanged is published after a successful hero config update.
const TopicChanged = "hero:changed"

// Service caches the hero config singleton. Like the catalog it is
// read-through: updates upsert the setting and refetch on success.
type Service struct {
	repo     settings.Repository
	notifier notify.Notifier
	bus      EventBus.Bus

	mu     sync.RWMutex
	config Config
	loaded bool
}

func NewService(repo settings.Repository, notifier notify.Notifier, bus EventBus.Bus) *Service {
	return &Service{repo: repo, notifier: notifier, bus: bus, config: DefaultConfig}
}

// Refresh loads the stored hero config. A missing row is not an error; the
// default config stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, settings.KeyHeroConfig)
	if err == settings.ErrNotFound {
		s.mu.Lock()
		s.config = DefaultConfig
		s.loaded = true
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return err
	}

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.config = cfg
	s.loaded = true
	s.mu.Unlock()
	return nil
}

func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.loaded
}

func (s *Service) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update upserts the hero_config setting and refetches it on success.
func (s *Service) Update(ctx context.Context, cfg Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, settings.KeyHeroConfig, string(raw)); err != nil {
		s.notifier.Error("Erro ao atualizar o banner")
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	s.notifier.Success("Banner atualizado com sucesso!")
	if s.bus != nil {
		s.bus.Publish(TopicChanged)
	}
	return nil
}
