package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/docesonho/bakery-backend/internal/notify"
	"github.com/docesonho/bakery-backend/internal/settings"
)

func seededGate(t *testing.T) (*Gate, *notify.Recorder) {
	t.Helper()
	rec := notify.NewRecorder()
	gate := NewGate(settings.NewInMemoryRepository(nil), rec, nil)
	if err := gate.Seed(context.Background(), "admin123", "DOCE1234"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return gate, rec
}

func TestVerifyPassword(t *testing.T) {
	gate, _ := seededGate(t)

	if gate.IsAuthenticated() {
		t.Fatalf("expected gate to start unauthenticated")
	}
	if gate.VerifyPassword(context.Background(), "wrong") {
		t.Fatalf("expected mismatch to return false")
	}
	if gate.IsAuthenticated() {
		t.Fatalf("expected gate to stay unauthenticated after mismatch")
	}
	if !gate.VerifyPassword(context.Background(), "admin123") {
		t.Fatalf("expected match to return true")
	}
	if !gate.IsAuthenticated() {
		t.Fatalf("expected gate authenticated after match")
	}

	gate.Logout()
	if gate.IsAuthenticated() {
		t.Fatalf("expected gate unauthenticated after logout")
	}
}

func TestVerifyPasswordFailsClosedWithoutCredential(t *testing.T) {
	gate := NewGate(settings.NewInMemoryRepository(nil), notify.NewRecorder(), nil)
	if gate.VerifyPassword(context.Background(), "anything") {
		t.Fatalf("expected false for unprovisioned credential")
	}
}

func TestSeedDoesNotOverwrite(t *testing.T) {
	gate, _ := seededGate(t)
	if err := gate.Seed(context.Background(), "other", "OTHER"); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if !gate.VerifyPassword(context.Background(), "admin123") {
		t.Fatalf("expected original password to survive a second seed")
	}
}

func TestUpdatePassword(t *testing.T) {
	gate, rec := seededGate(t)
	if err := gate.UpdatePassword(context.Background(), "newpass"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gate.VerifyPassword(context.Background(), "admin123") {
		t.Fatalf("expected old password rejected")
	}
	if !gate.VerifyPassword(context.Background(), "newpass") {
		t.Fatalf("expected new password accepted")
	}
	if len(rec.Successes) == 0 || rec.Successes[0] != "Senha atualizada com sucesso!" {
		t.Fatalf("unexpected notifications %+v", rec.Successes)
	}

	if err := gate.UpdatePassword(context.Background(), ""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	gate, _ := seededGate(t)

	err := gate.ResetPassword(context.Background(), "BADCODE", "newpass")
	if !errors.Is(err, ErrInvalidRecoveryCode) {
		t.Fatalf("expected ErrInvalidRecoveryCode, got %v", err)
	}
	if !gate.VerifyPassword(context.Background(), "admin123") {
		t.Fatalf("expected password unchanged after bad code")
	}
	gate.Logout()

	if err := gate.ResetPassword(context.Background(), "DOCE1234", "newpass"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !gate.VerifyPassword(context.Background(), "newpass") {
		t.Fatalf("expected new password accepted after reset")
	}
}

func TestUpdateRecoveryCode(t *testing.T) {
	gate, _ := seededGate(t)
	if err := gate.UpdateRecoveryCode(context.Background(), "NOVO9999"); err != nil {
		t.Fatalf("update code: %v", err)
	}
	if err := gate.ResetPassword(context.Background(), "DOCE1234", "x"); !errors.Is(err, ErrInvalidRecoveryCode) {
		t.Fatalf("expected old code rejected, got %v", err)
	}
	if err := gate.ResetPassword(context.Background(), "NOVO9999", "fresh"); err != nil {
		t.Fatalf("reset with new code: %v", err)
	}
	if !gate.VerifyPassword(context.Background(), "fresh") {
		t.Fatalf("expected reset password accepted")
	}
}
