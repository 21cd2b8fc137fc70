package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-pos-api/internal/authz"
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/pkg/token"
)

const localsUserKey = "auth_user"

// RequireAuth validates the access token, loads the user, and stashes
// it in the request context. Deleted and deactivated users fail here
// with the same 401 as a bad token.
func RequireAuth(userRepo repository.UserRepository, tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := tokens.Verify(parts[1], token.Access)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to load user"})
		}
		if user == nil || !user.IsActive {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(localsUserKey).(*model.User)
	return user
}

// RequirePermission gates a route on the role→permission table
func RequirePermission(action authz.Action, resource authz.Resource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if err := authz.EnforceResourceAccess(user, resource, action); err != nil {
			return err
		}
		return c.Next()
	}
}
