package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-pos-api/internal/middleware"
	"go-pos-api/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory creates a category in a store
// POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req service.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.categoryService.CreateCategory(middleware.CurrentUser(c), &req)
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Category created successfully",
		"data":    category,
	})
}

// GetCategories lists categories for a store
// GET /api/v1/categories?store_id=...
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	categories, err := h.categoryService.GetCategoriesByStore(storeID)
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GetCategory returns a single category by ID
// GET /api/v1/categories/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	category, err := h.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// UpdateCategory updates a category
// PUT /api/v1/categories/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req service.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.categoryService.UpdateCategory(middleware.CurrentUser(c), categoryID, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DeleteCategory soft-deletes a category
// DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.categoryService.DeleteCategory(middleware.CurrentUser(c), categoryID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
