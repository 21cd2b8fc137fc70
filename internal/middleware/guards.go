package middleware

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"go-pos-api/internal/authz"
	"go-pos-api/internal/model"
)

// IDExtractor pulls a resource identifier out of a request. Guards are
// generic over the extractor so one guard serves param, query, and
// body shaped routes alike.
type IDExtractor func(c *fiber.Ctx) string

func FromParam(name string) IDExtractor {
	return func(c *fiber.Ctx) string {
		return c.Params(name)
	}
}

func FromQuery(name string) IDExtractor {
	return func(c *fiber.Ctx) string {
		return c.Query(name)
	}
}

// FromBody peeks at a top-level string field of the JSON body without
// consuming it; the handler re-parses the body afterwards.
func FromBody(field string) IDExtractor {
	return func(c *fiber.Ctx) string {
		var body map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return ""
		}
		raw, ok := body[field]
		if !ok {
			return ""
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return ""
		}
		return value
	}
}

type enforceFunc func(requester *model.User, id uuid.UUID) error

func resourceGuard(extract IDExtractor, enforce enforceFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		id, err := uuid.Parse(extract(c))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid resource ID"})
		}
		if err := enforce(user, id); err != nil {
			return err
		}
		return c.Next()
	}
}

func RequireUserAccess(engine *authz.Engine, extract IDExtractor) fiber.Handler {
	return resourceGuard(extract, engine.EnforceUserAccess)
}

func RequireStoreAccess(engine *authz.Engine, extract IDExtractor) fiber.Handler {
	return resourceGuard(extract, engine.EnforceStoreAccess)
}

func RequireCategoryAccess(engine *authz.Engine, extract IDExtractor) fiber.Handler {
	return resourceGuard(extract, engine.EnforceCategoryAccess)
}

func RequireProductAccess(engine *authz.Engine, extract IDExtractor) fiber.Handler {
	return resourceGuard(extract, engine.EnforceProductAccess)
}

func RequireTransactionAccess(engine *authz.Engine, extract IDExtractor) fiber.Handler {
	return resourceGuard(extract, engine.EnforceTransactionAccess)
}

// RequireTransactionType blocks CASHIER users from creating anything
// but SALE transactions, reading the type from the request body.
func RequireTransactionType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		txType := model.TransactionType(FromBody("type")(c))
		if err := authz.EnforceTransactionType(user, txType); err != nil {
			return err
		}
		return c.Next()
	}
}

// RequireUserCreateRules layers the business rules for user creation
// on top of plain RBAC: STAFF and CASHIER are denied outright, and an
// ADMIN may only create STAFF accounts.
func RequireUserCreateRules() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		switch user.Role {
		case model.RoleStaff, model.RoleCashier:
			return c.Status(403).JSON(fiber.Map{"error": "Access denied to user creation"})
		case model.RoleAdmin:
			requested := model.Role(FromBody("role")(c))
			if requested != model.RoleStaff {
				return c.Status(403).JSON(fiber.Map{"error": "ADMIN may only create STAFF users"})
			}
		}
		return c.Next()
	}
}

// RequireUserUpdateRules restricts role changes on update: an ADMIN
// may set the role to STAFF or leave the field absent.
func RequireUserUpdateRules() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
		}
		if user.Role == model.RoleAdmin {
			requested := FromBody("role")(c)
			if requested != "" && model.Role(requested) != model.RoleStaff {
				return c.Status(403).JSON(fiber.Map{"error": "ADMIN may only assign the STAFF role"})
			}
		}
		return c.Next()
	}
}
