package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-api/internal/model"
	"go-pos-api/pkg/token"
)

func newAuthFixture(t *testing.T) (*memUserRepo, AuthService) {
	t.Helper()
	repo := newMemUserRepo()
	tokens := token.NewManager("test-access", "test-refresh", time.Minute, time.Hour)
	return repo, NewAuthService(repo, tokens)
}

func seedLoginUser(t *testing.T, repo *memUserRepo, username, password string, active bool) *model.User {
	t.Helper()
	user := &model.User{Name: username, Username: username, Role: model.RoleOwner, IsActive: active}
	user.ID = uuid.New()
	require.NoError(t, user.SetPassword(password))
	repo.users[user.ID] = user
	return user
}

func TestLogin(t *testing.T) {
	repo, svc := newAuthFixture(t)
	user := seedLoginUser(t, repo, "owner", "secret1", true)

	resp, err := svc.Login(&LoginRequest{Username: "owner", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.NotEqual(t, resp.AccessToken, resp.RefreshToken)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	repo, svc := newAuthFixture(t)
	seedLoginUser(t, repo, "owner", "secret1", true)

	_, err := svc.Login(&LoginRequest{Username: "owner", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, 401, statusOf(t, err))
}

func TestLoginUnknownUserSameError(t *testing.T) {
	repo, svc := newAuthFixture(t)
	seedLoginUser(t, repo, "owner", "secret1", true)

	_, errUnknown := svc.Login(&LoginRequest{Username: "nobody", Password: "secret1"})
	_, errWrongPw := svc.Login(&LoginRequest{Username: "owner", Password: "wrong"})
	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	// Unknown user and wrong password must be indistinguishable
	assert.Equal(t, errWrongPw.Error(), errUnknown.Error())
	assert.Equal(t, 401, statusOf(t, errUnknown))
}

func TestLoginInactiveUser(t *testing.T) {
	repo, svc := newAuthFixture(t)
	seedLoginUser(t, repo, "owner", "secret1", false)

	_, err := svc.Login(&LoginRequest{Username: "owner", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, 401, statusOf(t, err))
}

func TestRegisterCreatesTenantOwner(t *testing.T) {
	repo, svc := newAuthFixture(t)

	resp, err := svc.Register(&RegisterRequest{Name: "New", Username: "newowner", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleOwner, resp.User.Role)
	assert.Nil(t, resp.User.OwnerID)

	stored, err := repo.FindByUsername("newowner")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.CheckPassword("secret1"))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo, svc := newAuthFixture(t)
	seedLoginUser(t, repo, "owner", "secret1", true)

	_, err := svc.Register(&RegisterRequest{Name: "Dup", Username: "owner", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))
}

func TestRefreshRotatesPair(t *testing.T) {
	repo, svc := newAuthFixture(t)
	seedLoginUser(t, repo, "owner", "secret1", true)

	login, err := svc.Login(&LoginRequest{Username: "owner", Password: "secret1"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo, svc := newAuthFixture(t)
	seedLoginUser(t, repo, "owner", "secret1", true)

	login, err := svc.Login(&LoginRequest{Username: "owner", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Refresh(login.AccessToken)
	require.Error(t, err)
	assert.Equal(t, 401, statusOf(t, err))
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	repo, svc := newAuthFixture(t)
	user := seedLoginUser(t, repo, "owner", "secret1", true)

	login, err := svc.Login(&LoginRequest{Username: "owner", Password: "secret1"})
	require.NoError(t, err)

	user.IsActive = false
	_, err = svc.Refresh(login.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, 401, statusOf(t, err))
}
