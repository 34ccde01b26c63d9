package hero

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/hero", h.getHero)
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Put("/hero", h.updateHero)
}

func (h *Handler) getHero(c *fiber.Ctx) error {
	return c.JSON(h.service.Config())
}

func (h *Handler) updateHero(c *fiber.Ctx) error {
	payload := new(Config)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.Update(c.Context(), *payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(h.service.Config())
}
