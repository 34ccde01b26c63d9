package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/docesonho/bakery-backend/internal/cart"
	"github.com/docesonho/bakery-backend/internal/catalog"
)

// Handler returns WhatsApp deep links for the current cart or a single
// product. The client opens the returned URL; the server never contacts
// WhatsApp.
type Handler struct {
	checkout *Checkout
	carts    *cart.Manager
	catalog  *catalog.Service
}

func NewHandler(w *Checkout, carts *cart.Manager, c *catalog.Service) *Handler {
	return &Handler{checkout: w, carts: carts, catalog: c}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/checkout/whatsapp", h.cartCheckout)
	app.Get("/api/v1/products/:id/whatsapp", h.productInquiry)
}

func (h *Handler) cartCheckout(c *fiber.Ctx) error {
	key := c.Get(cart.HeaderCartKey)
	if key == "" {
		key = cart.DefaultKey
	}
	s := h.carts.Store(key)
	items := s.Items()
	if len(items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Seu carrinho está vazio"})
	}
	msg := h.checkout.OrderMessage(items, s.Total())
	return c.JSON(fiber.Map{"url": h.checkout.DeepLink(msg)})
}

func (h *Handler) productInquiry(c *fiber.Ctx) error {
	product, err := h.catalog.ProductByID(c.Params("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	msg := h.checkout.InquiryMessage(product)
	return c.JSON(fiber.Map{"url": h.checkout.DeepLink(msg)})
}
