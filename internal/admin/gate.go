package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/docesonho/bakery-backend/internal/notify"
	"github.com/docesonho/bakery-backend/internal/settings"
)

// TopicChanged is published on login and logout.
const TopicChanged = "auth:changed"

var (
	ErrInvalidRecoveryCode = errors.New("invalid recovery code")
	ErrEmptyPassword       = errors.New("password must not be empty")
)

// Gate holds the admin authentication state for the running session. It
// starts unauthenticated and never persists the flag: a restart always
// starts logged out. Credentials live in site_settings, bcrypt-hashed.
type Gate struct {
	repo     settings.Repository
	notifier notify.Notifier
	bus      EventBus.Bus

	mu            sync.Mutex
	authenticated bool
}

func NewGate(repo settings.Repository, notifier notify.Notifier, bus EventBus.Bus) *Gate {
	return &Gate{repo: repo, notifier: notifier, bus: bus}
}

// Seed provisions the initial credentials. It writes only when the settings
// rows are absent, so an operator-supplied value is never overwritten.
func (g *Gate) Seed(ctx context.Context, password, recoveryCode string) error {
	if err := g.seedKey(ctx, settings.KeyAdminPassword, password); err != nil {
		return err
	}
	return g.seedKey(ctx, settings.KeyRecoveryCode, recoveryCode)
}

func (g *Gate) seedKey(ctx context.Context, key, value string) error {
	if value == "" {
		return nil
	}
	if _, err := g.repo.Get(ctx, key); err == nil {
		return nil
	} else if err != settings.ErrNotFound {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return g.repo.Upsert(ctx, key, string(hashed))
}

// VerifyPassword compares the candidate against the stored admin password.
// A match transitions the gate to authenticated. Missing or unreadable
// credentials fail closed.
func (g *Gate) VerifyPassword(ctx context.Context, candidate string) bool {
	stored, err := g.repo.Get(ctx, settings.KeyAdminPassword)
	if err == settings.ErrNotFound {
		zap.L().Warn("admin password not provisioned, refusing login")
		return false
	}
	if err != nil {
		g.notifier.Error("Erro ao verificar senha")
		return false
	}
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) != nil {
		return false
	}

	g.mu.Lock()
	g.authenticated = true
	g.mu.Unlock()
	if g.bus != nil {
		g.bus.Publish(TopicChanged)
	}
	return true
}

func (g *Gate) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authenticated
}

// Logout unconditionally drops back to unauthenticated.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.authenticated = false
	g.mu.Unlock()
	if g.bus != nil {
		g.bus.Publish(TopicChanged)
	}
}

// UpdatePassword overwrites the stored admin password. Callers are expected
// to have verified the current password (or a recovery code) first.
func (g *Gate) UpdatePassword(ctx context.Context, newPassword string) error {
	if newPassword == "" {
		return ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := g.repo.Upsert(ctx, settings.KeyAdminPassword, string(hashed)); err != nil {
		g.notifier.Error("Erro ao atualizar senha")
		return err
	}
	g.notifier.Success("Senha atualizada com sucesso!")
	return nil
}

// UpdateRecoveryCode overwrites the stored recovery code.
func (g *Gate) UpdateRecoveryCode(ctx context.Context, newCode string) error {
	if newCode == "" {
		return ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newCode), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := g.repo.Upsert(ctx, settings.KeyRecoveryCode, string(hashed)); err != nil {
		g.notifier.Error("Erro ao atualizar código de recuperação")
		return err
	}
	g.notifier.Success("Código de recuperação atualizado com sucesso!")
	return nil
}

// ResetPassword validates the recovery code and, on match, delegates to
// UpdatePassword. A mismatch changes nothing.
func (g *Gate) ResetPassword(ctx context.Context, code, newPassword string) error {
	if code == "" || newPassword == "" {
		return ErrInvalidRecoveryCode
	}
	stored, err := g.repo.Get(ctx, settings.KeyRecoveryCode)
	if err == settings.ErrNotFound {
		return ErrInvalidRecoveryCode
	}
	if err != nil {
		g.notifier.Error("Erro ao verificar código de recuperação")
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(code)) != nil {
		return ErrInvalidRecoveryCode
	}
	return g.UpdatePassword(ctx, newPassword)
}
