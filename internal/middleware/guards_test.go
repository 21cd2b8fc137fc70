package middleware

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-api/internal/authz"
	"go-pos-api/internal/model"
	"go-pos-api/pkg/apperr"
	"go-pos-api/pkg/token"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) FindAllInTenant(ownerID uuid.UUID) ([]model.User, error) { return nil, nil }
func (r *fakeUserRepo) Count() (int64, error)                                   { return int64(len(r.users)), nil }
func (r *fakeUserRepo) Create(user *model.User) error {
	r.users[user.ID] = user
	return nil
}
func (r *fakeUserRepo) Update(user *model.User) error { return nil }
func (r *fakeUserRepo) Delete(id uuid.UUID, deletedBy string) error {
	delete(r.users, id)
	return nil
}
func (r *fakeUserRepo) UpdatePassword(userID uuid.UUID, hashedPassword string) error { return nil }

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *apperr.Error
			if errors.As(err, &appErr) {
				return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message})
			}
			return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
		},
	})
}

func withUser(user *model.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func testUser(role model.Role) *model.User {
	ownerID := uuid.New()
	user := &model.User{Role: role, IsActive: true, Username: "u-" + uuid.NewString()[:8]}
	user.ID = uuid.New()
	if role != model.RoleOwner {
		user.OwnerID = &ownerID
	}
	return user
}

func TestRequireAuth(t *testing.T) {
	tokens := token.NewManager("a", "r", time.Minute, time.Hour)
	repo := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}

	user := testUser(model.RoleStaff)
	repo.users[user.ID] = user

	app := newTestApp()
	app.Get("/me", RequireAuth(repo, tokens), func(c *fiber.Ctx) error {
		return c.JSON(CurrentUser(c).ToResponse())
	})

	t.Run("missing token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		access, err := tokens.Generate(token.Access, user.ID, string(user.Role), user.OwnerID)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		refresh, err := tokens.Generate(token.Refresh, user.ID, string(user.Role), user.OwnerID)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+refresh)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("deactivated user", func(t *testing.T) {
		inactive := testUser(model.RoleStaff)
		inactive.IsActive = false
		repo.users[inactive.ID] = inactive
		access, err := tokens.Generate(token.Access, inactive.ID, string(inactive.Role), inactive.OwnerID)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost := testUser(model.RoleStaff)
		access, err := tokens.Generate(token.Access, ghost.ID, string(ghost.Role), ghost.OwnerID)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})
}

func TestRequirePermission(t *testing.T) {
	cashier := testUser(model.RoleCashier)

	app := newTestApp()
	app.Post("/users", withUser(cashier),
		RequirePermission(authz.ActionCreate, authz.ResourceUser), okHandler)

	resp, err := app.Test(httptest.NewRequest("POST", "/users", nil))
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestRequireUserCreateRules(t *testing.T) {
	cases := []struct {
		name       string
		role       model.Role
		body       string
		wantStatus int
	}{
		{"staff denied outright", model.RoleStaff, `{"role":"STAFF"}`, 403},
		{"cashier denied outright", model.RoleCashier, `{"role":"STAFF"}`, 403},
		{"admin may create staff", model.RoleAdmin, `{"role":"STAFF"}`, 200},
		{"admin may not create admin", model.RoleAdmin, `{"role":"ADMIN"}`, 403},
		{"admin may not create owner", model.RoleAdmin, `{"role":"OWNER"}`, 403},
		{"admin must name a role", model.RoleAdmin, `{}`, 403},
		{"owner unrestricted", model.RoleOwner, `{"role":"ADMIN"}`, 200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp()
			app.Post("/users", withUser(testUser(tc.role)), RequireUserCreateRules(), okHandler)

			req := httptest.NewRequest("POST", "/users", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireUserUpdateRules(t *testing.T) {
	cases := []struct {
		name       string
		role       model.Role
		body       string
		wantStatus int
	}{
		{"admin role absent is fine", model.RoleAdmin, `{"name":"x"}`, 200},
		{"admin may set staff", model.RoleAdmin, `{"role":"STAFF"}`, 200},
		{"admin may not set cashier", model.RoleAdmin, `{"role":"CASHIER"}`, 403},
		{"owner may set any role", model.RoleOwner, `{"role":"ADMIN"}`, 200},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp()
			app.Put("/users/1", withUser(testUser(tc.role)), RequireUserUpdateRules(), okHandler)

			req := httptest.NewRequest("PUT", "/users/1", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestRequireTransactionType(t *testing.T) {
	app := newTestApp()
	app.Post("/transactions", withUser(testUser(model.RoleCashier)), RequireTransactionType(), okHandler)

	req := httptest.NewRequest("POST", "/transactions", strings.NewReader(`{"type":"TRANSFER"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	req = httptest.NewRequest("POST", "/transactions", strings.NewReader(`{"type":"SALE"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestIDExtractors(t *testing.T) {
	app := newTestApp()

	var fromParam, fromQuery, fromBody string
	app.Post("/things/:id", func(c *fiber.Ctx) error {
		fromParam = FromParam("id")(c)
		fromQuery = FromQuery("store_id")(c)
		fromBody = FromBody("category_id")(c)
		return okHandler(c)
	})

	req := httptest.NewRequest("POST", "/things/abc?store_id=xyz",
		strings.NewReader(`{"category_id":"cat-1","nested":{"category_id":"ignored"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	assert.Equal(t, "abc", fromParam)
	assert.Equal(t, "xyz", fromQuery)
	assert.Equal(t, "cat-1", fromBody)
}

func TestResourceGuardRejectsBadID(t *testing.T) {
	engine := authz.NewEngine(nil)
	app := newTestApp()
	app.Get("/stores/:id", withUser(testUser(model.RoleOwner)),
		RequireStoreAccess(engine, FromParam("id")), okHandler)

	resp, err := app.Test(httptest.NewRequest("GET", "/stores/not-a-uuid", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
