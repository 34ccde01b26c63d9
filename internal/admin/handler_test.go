package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/docesonho/bakery-backend/internal/notify"
	"github.com/docesonho/bakery-backend/internal/settings"
)

const testSecret = "test-secret"

func makeApp(t *testing.T) (*fiber.App, *Gate) {
	t.Helper()
	gate := NewGate(settings.NewInMemoryRepository(nil), notify.NewRecorder(), nil)
	if err := gate.Seed(context.Background(), "admin123", "DOCE1234"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	handler := NewHandler(gate, testSecret)

	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	group := app.Group("/api/v1/admin", jwtware.New(jwtware.Config{
		SigningKey: []byte(testSecret),
	}))
	handler.RegisterAdminRoutes(group)
	return app, gate
}

func login(t *testing.T, app *fiber.App, password string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(`{"password":"`+password+`"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		return res.StatusCode, ""
	}
	b, _ := io.ReadAll(res.Body)
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return res.StatusCode, body.Token
}

func TestLogin(t *testing.T) {
	app, gate := makeApp(t)

	if status, _ := login(t, app, "wrong"); status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", status)
	}
	if gate.IsAuthenticated() {
		t.Fatalf("expected gate unauthenticated after failed login")
	}

	status, token := login(t, app, "admin123")
	if status != fiber.StatusOK {
		t.Fatalf("expected 200 for correct password, got %d", status)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if !gate.IsAuthenticated() {
		t.Fatalf("expected gate authenticated after login")
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	app, _ := makeApp(t)

	req := httptest.NewRequest("PUT", "/api/v1/admin/password", strings.NewReader(`{"currentPassword":"admin123","newPassword":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode == fiber.StatusOK || res.StatusCode == fiber.StatusNoContent {
		t.Fatalf("expected unauthenticated change-password to be rejected, got %d", res.StatusCode)
	}
}

func TestChangePasswordFlow(t *testing.T) {
	app, _ := makeApp(t)
	_, token := login(t, app, "admin123")

	req := httptest.NewRequest("PUT", "/api/v1/admin/password", strings.NewReader(`{"currentPassword":"admin123","newPassword":"newpass"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}

	if status, _ := login(t, app, "admin123"); status != fiber.StatusUnauthorized {
		t.Fatalf("expected old password rejected after change, got %d", status)
	}
	if status, _ := login(t, app, "newpass"); status != fiber.StatusOK {
		t.Fatalf("expected new password accepted, got %d", status)
	}
}

func TestResetPasswordRoute(t *testing.T) {
	app, _ := makeApp(t)

	req := httptest.NewRequest("POST", "/api/v1/admin/reset-password", strings.NewReader(`{"code":"BADCODE","newPassword":"newpass"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad code, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("POST", "/api/v1/admin/reset-password", strings.NewReader(`{"code":"DOCE1234","newPassword":"newpass"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 for valid code, got %d", res.StatusCode)
	}

	if status, _ := login(t, app, "newpass"); status != fiber.StatusOK {
		t.Fatalf("expected login with reset password, got %d", status)
	}
}
