package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"zensupply/internal/models"
	"zensupply/internal/repositories"
	"zensupply/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
}

// HandleListProducts lists products with optional category and search filters.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	category := c.Query("category")
	term := c.Query("q")
	limit := c.QueryInt("limit", 50)

	products, err := h.service.ListProducts(c.Context(), category, term, int64(limit))
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID fetches a single product by its identifier.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")

	product, err := h.service.GetProductByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "Product not found",
			})
		}
		log.Printf("Error getting product %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product and returns its id.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	// in_stock defaults to true when the body omits it.
	product := models.Product{InStock: true}
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}

	id, err := h.service.CreateProduct(c.Context(), &product)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"id": id})
}
