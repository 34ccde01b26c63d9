package imagestore

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	store *Store
}

func NewHandler(s *Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/images", h.uploadImage)
}

type uploadRequest struct {
	Image    string `json:"image"`
	FileName string `json:"fileName"`
}

func (h *Handler) uploadImage(c *fiber.Ctx) error {
	payload := new(uploadRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.FileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "fileName is required"})
	}
	url, err := h.store.Save(payload.Image, payload.FileName)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidPayload):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Formato de imagem base64 inválido"})
		case errors.Is(err, ErrTooLarge):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Imagem muito grande. O tamanho máximo permitido é 10MB"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"url": url})
}
