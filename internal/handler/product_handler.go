package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-pos-api/internal/middleware"
	"go-pos-api/internal/service"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct creates a product in a store
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.productService.CreateProduct(middleware.CurrentUser(c), &req)
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Product created successfully",
		"data":    product,
	})
}

// GetProducts lists products for a store
// GET /api/v1/products?store_id=...
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	products, err := h.productService.GetProductsByStore(storeID)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// GetProduct returns a single product by ID
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.productService.GetProductByID(productID)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// UpdateProduct updates a product, atomically replacing its IMEI set
// when one is supplied
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.productService.UpdateProduct(middleware.CurrentUser(c), productID, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct soft-deletes a product
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.productService.DeleteProduct(middleware.CurrentUser(c), productID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
