package cart

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/docesonho/bakery-backend/internal/catalog"
)

// DefaultKey is used when the client does not send a cart key. It mirrors
// the single `cartItems` slot of a one-device storefront.
const DefaultKey = "cartItems"

// HeaderCartKey carries the shopper's device token; each token owns one cart.
const HeaderCartKey = "X-Cart-ID"

// Handler exposes cart operations. Products are resolved through the catalog
// cache so every cart line carries a product snapshot.
type Handler struct {
	manager *Manager
	catalog *catalog.Service
}

func NewHandler(m *Manager, c *catalog.Service) *Handler {
	return &Handler{manager: m, catalog: c}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/cart", h.getCart)
	app.Post("/api/v1/cart/items", h.addItem)
	app.Put("/api/v1/cart/items/:productId", h.updateItem)
	app.Delete("/api/v1/cart/items/:productId", h.removeItem)
	app.Delete("/api/v1/cart", h.clearCart)
}

func (h *Handler) store(c *fiber.Ctx) *Store {
	// c.Get returns a string aliased to fasthttp's reusable request buffer;
	// copy it before using it as a long-lived map key.
	key := utils.CopyString(c.Get(HeaderCartKey))
	if key == "" {
		key = DefaultKey
	}
	return h.manager.Store(key)
}

type cartResponse struct {
	Items []Item `json:"items"`
	Total string `json:"total"`
}

func (h *Handler) respond(c *fiber.Ctx, s *Store) error {
	return c.JSON(cartResponse{
		Items: s.Items(),
		Total: s.Total().StringFixed(2),
	})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	return h.respond(c, h.store(c))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid quantity"})
	}
	product, err := h.catalog.ProductByID(payload.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	s := h.store(c)
	s.Add(product, payload.Quantity)
	return h.respond(c, s)
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	payload := new(updateItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	s := h.store(c)
	s.UpdateQuantity(c.Params("productId"), payload.Quantity)
	return h.respond(c, s)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	s := h.store(c)
	s.Remove(c.Params("productId"))
	return h.respond(c, s)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	h.store(c).Clear()
	return c.SendStatus(fiber.StatusNoContent)
}
