package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"go-pos-api/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	refreshTTL  time.Duration
}

func NewAuthHandler(authService service.AuthService, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, refreshTTL: refreshTTL}
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, response.RefreshToken)
	return c.JSON(response)
}

// Register creates a new tenant OWNER account
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	response, err := h.authService.Register(&req)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, response.RefreshToken)
	return c.Status(201).JSON(response)
}

// Refresh rotates the token pair. The refresh token is taken from the
// HTTP-only cookie when present, falling back to the request body for
// API-only callers.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies("refresh_token")
	if refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing refresh token"})
	}

	response, err := h.authService.Refresh(refreshToken)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, response.RefreshToken)
	return c.JSON(response)
}

func (h *AuthHandler) setRefreshCookie(c *fiber.Ctx, refreshToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Expires:  time.Now().Add(h.refreshTTL),
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/api/v1/auth",
	})
}
