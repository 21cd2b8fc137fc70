package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-pos-api/internal/middleware"
	"go-pos-api/internal/service"
)

type TransactionHandler struct {
	transactionService service.TransactionService
}

func NewTransactionHandler(transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransaction records a sale or transfer
// POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req service.CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.transactionService.CreateTransaction(middleware.CurrentUser(c), &req)
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Transaction recorded successfully",
		"data":    transaction,
	})
}

// GetTransactions lists transactions touching the caller's stores
// GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.transactionService.GetTransactions(middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(transactions)
}

// GetTransaction returns a single transaction by ID
// GET /api/v1/transactions/:id
func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	transactionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}
	return c.JSON(transaction)
}

// ApproveTransaction finishes a pending transfer
// PUT /api/v1/transactions/:id/approve
func (h *TransactionHandler) ApproveTransaction(c *fiber.Ctx) error {
	transactionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.transactionService.ApproveTransaction(middleware.CurrentUser(c), transactionID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Transaction approved",
		"data":    transaction,
	})
}
