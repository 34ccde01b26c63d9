package admin

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Handler exposes login, logout and credential management. Login issues a
// short-lived JWT; the admin route group is protected with the matching
// middleware in main.
type Handler struct {
	gate      *Gate
	jwtSecret string
}

func NewHandler(gate *Gate, jwtSecret string) *Handler {
	return &Handler{gate: gate, jwtSecret: jwtSecret}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/admin/login", h.login)
	app.Post("/api/v1/admin/reset-password", h.resetPassword)
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/logout", h.logout)
	router.Put("/password", h.changePassword)
	router.Put("/recovery-code", h.changeRecoveryCode)
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if !h.gate.VerifyPassword(c.Context(), payload.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Senha incorreta"})
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"token": signed})
}

func (h *Handler) logout(c *fiber.Ctx) error {
	h.gate.Logout()
	return c.SendStatus(fiber.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *Handler) changePassword(c *fiber.Ctx) error {
	payload := new(changePasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if !h.gate.VerifyPassword(c.Context(), payload.CurrentPassword) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Senha atual incorreta"})
	}
	if err := h.gate.UpdatePassword(c.Context(), payload.NewPassword); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type changeRecoveryCodeRequest struct {
	NewCode string `json:"newCode"`
}

func (h *Handler) changeRecoveryCode(c *fiber.Ctx) error {
	payload := new(changeRecoveryCodeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.gate.UpdateRecoveryCode(c.Context(), payload.NewCode); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type resetPasswordRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (h *Handler) resetPassword(c *fiber.Ctx) error {
	payload := new(resetPasswordRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.gate.ResetPassword(c.Context(), payload.Code, payload.NewPassword); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidRecoveryCode):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Código de recuperação inválido"})
	case errors.Is(err, ErrEmptyPassword):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
