package catalog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the catalog store over HTTP. Read endpoints are public,
// mutations are registered behind the admin middleware.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.listProducts)
	app.Get("/api/v1/products/featured", h.listFeatured)
	app.Get("/api/v1/products/search", h.searchProducts)
	app.Get("/api/v1/categories", h.listCategories)
	app.Get("/api/v1/categories/:id/products", h.listByCategory)
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Post("/products", h.createProduct)
	router.Put("/products/:id", h.updateProduct)
	router.Delete("/products/:id", h.deleteProduct)
	router.Post("/categories", h.createCategory)
	router.Put("/categories/:id", h.updateCategory)
	router.Delete("/categories/:id", h.deleteCategory)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.Products())
}

func (h *Handler) listFeatured(c *fiber.Ctx) error {
	return c.JSON(h.service.Featured())
}

func (h *Handler) searchProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.Search(c.Query("q")))
}

func (h *Handler) listCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.Categories())
}

func (h *Handler) listByCategory(c *fiber.Ctx) error {
	return c.JSON(h.service.ProductsByCategory(c.Params("id")))
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.CreateProduct(c.Context(), *payload)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	payload := new(Product)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.ID = c.Params("id")
	updated, err := h.service.UpdateProduct(c.Context(), *payload)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	payload := new(Category)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	created, err := h.service.CreateCategory(c.Context(), *payload)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) updateCategory(c *fiber.Ctx) error {
	payload := new(Category)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.ID = c.Params("id")
	updated, err := h.service.UpdateCategory(c.Context(), *payload)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidProduct), errors.Is(err, ErrInvalidCategory):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrCategoryInUse):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Não é possível excluir uma categoria que possui produtos associados."})
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrCategoryNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
