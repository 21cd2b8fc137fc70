package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-pos-api/internal/middleware"
	"go-pos-api/internal/service"
)

type StoreHandler struct {
	storeService service.StoreService
}

func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// CreateStore creates a store under the caller's tenant
// POST /api/v1/stores
func (h *StoreHandler) CreateStore(c *fiber.Ctx) error {
	var req service.StoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	store, err := h.storeService.CreateStore(middleware.CurrentUser(c), &req)
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Store created successfully",
		"data":    store,
	})
}

// GetStores lists the caller's tenant stores
// GET /api/v1/stores
func (h *StoreHandler) GetStores(c *fiber.Ctx) error {
	stores, err := h.storeService.GetStores(middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(stores)
}

// GetStore returns a single store by ID
// GET /api/v1/stores/:id
func (h *StoreHandler) GetStore(c *fiber.Ctx) error {
	storeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	store, err := h.storeService.GetStoreByID(middleware.CurrentUser(c), storeID)
	if err != nil {
		return err
	}
	return c.JSON(store)
}

// UpdateStore updates a store
// PUT /api/v1/stores/:id
func (h *StoreHandler) UpdateStore(c *fiber.Ctx) error {
	storeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	var req service.StoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	store, err := h.storeService.UpdateStore(middleware.CurrentUser(c), storeID, &req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Store updated successfully",
		"data":    store,
	})
}

// DeleteStore soft-deletes a store
// DELETE /api/v1/stores/:id
func (h *StoreHandler) DeleteStore(c *fiber.Ctx) error {
	storeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid store ID"})
	}

	if err := h.storeService.DeleteStore(middleware.CurrentUser(c), storeID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Store deleted successfully"})
}
