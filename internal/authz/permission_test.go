package authz

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-pos-api/internal/model"
)

// expectedPermissions pins the full role→permission table. Any drift
// in the static table breaks this matrix.
var expectedPermissions = map[model.Role]map[Permission]bool{
	model.RoleOwner: {
		"CREATE_USER": true, "READ_USER": true, "UPDATE_USER": true, "DELETE_USER": true,
		"CREATE_STORE": true, "READ_STORE": true, "UPDATE_STORE": true, "DELETE_STORE": true,
		"CREATE_CATEGORY": true, "READ_CATEGORY": true, "UPDATE_CATEGORY": true, "DELETE_CATEGORY": true,
		"CREATE_PRODUCT": true, "READ_PRODUCT": true, "UPDATE_PRODUCT": true, "DELETE_PRODUCT": true,
		"CREATE_TRANSACTION": true, "READ_TRANSACTION": true, "UPDATE_TRANSACTION": true, "DELETE_TRANSACTION": true,
	},
	model.RoleAdmin: {
		"CREATE_USER": true, "READ_USER": true, "UPDATE_USER": true, "DELETE_USER": false,
		"CREATE_STORE": false, "READ_STORE": true, "UPDATE_STORE": false, "DELETE_STORE": false,
		"CREATE_CATEGORY": true, "READ_CATEGORY": true, "UPDATE_CATEGORY": true, "DELETE_CATEGORY": false,
		"CREATE_PRODUCT": true, "READ_PRODUCT": true, "UPDATE_PRODUCT": true, "DELETE_PRODUCT": false,
		"CREATE_TRANSACTION": true, "READ_TRANSACTION": true, "UPDATE_TRANSACTION": true, "DELETE_TRANSACTION": false,
	},
	model.RoleStaff: {
		"CREATE_USER": false, "READ_USER": true, "UPDATE_USER": false, "DELETE_USER": false,
		"CREATE_STORE": false, "READ_STORE": true, "UPDATE_STORE": false, "DELETE_STORE": false,
		"CREATE_CATEGORY": false, "READ_CATEGORY": true, "UPDATE_CATEGORY": false, "DELETE_CATEGORY": false,
		"CREATE_PRODUCT": false, "READ_PRODUCT": true, "UPDATE_PRODUCT": true, "DELETE_PRODUCT": false,
		"CREATE_TRANSACTION": false, "READ_TRANSACTION": true, "UPDATE_TRANSACTION": false, "DELETE_TRANSACTION": false,
	},
	model.RoleCashier: {
		"CREATE_USER": false, "READ_USER": true, "UPDATE_USER": false, "DELETE_USER": false,
		"CREATE_STORE": false, "READ_STORE": true, "UPDATE_STORE": false, "DELETE_STORE": false,
		"CREATE_CATEGORY": false, "READ_CATEGORY": true, "UPDATE_CATEGORY": false, "DELETE_CATEGORY": false,
		"CREATE_PRODUCT": false, "READ_PRODUCT": true, "UPDATE_PRODUCT": false, "DELETE_PRODUCT": false,
		"CREATE_TRANSACTION": true, "READ_TRANSACTION": true, "UPDATE_TRANSACTION": true, "DELETE_TRANSACTION": false,
	},
}

func TestHasPermissionFullMatrix(t *testing.T) {
	for role, perms := range expectedPermissions {
		assert.Len(t, perms, 20, "matrix must cover all 20 permissions for %s", role)
		user := &model.User{Role: role}
		for perm, want := range perms {
			got := HasPermission(user, perm)
			assert.Equal(t, want, got, "%s / %s", role, perm)
		}
	}
}

func TestHasPermissionUnknownRoleFailsClosed(t *testing.T) {
	user := &model.User{Role: "SUPERUSER"}
	for perm := range expectedPermissions[model.RoleOwner] {
		assert.False(t, HasPermission(user, perm), "unknown role must never hold %s", perm)
	}
}

func TestHasResourceAccessBuildsPermissionToken(t *testing.T) {
	admin := &model.User{Role: model.RoleAdmin}
	assert.True(t, HasResourceAccess(admin, ResourceCategory, ActionCreate))
	assert.False(t, HasResourceAccess(admin, ResourceStore, ActionDelete))
	assert.Equal(t, Permission("DELETE_STORE"), PermissionFor(ActionDelete, ResourceStore))
}

func TestCheckOwnerScope(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	owner := &model.User{Role: model.RoleOwner}
	owner.ID = ownerID
	assert.True(t, CheckOwnerScope(owner, ownerID))
	assert.False(t, CheckOwnerScope(owner, otherID))

	staff := &model.User{Role: model.RoleStaff, OwnerID: &ownerID}
	staff.ID = uuid.New()
	assert.True(t, CheckOwnerScope(staff, ownerID))
	assert.False(t, CheckOwnerScope(staff, otherID))
	assert.False(t, CheckOwnerScope(staff, staff.ID), "a non-OWNER's own id is not their scope")

	orphan := &model.User{Role: model.RoleCashier}
	orphan.ID = uuid.New()
	assert.False(t, CheckOwnerScope(orphan, ownerID), "missing owner id denies")
}

func TestValidateRoleHierarchy(t *testing.T) {
	owner := &model.User{Role: model.RoleOwner}
	for _, target := range model.AllRoles {
		assert.True(t, ValidateRoleHierarchy(owner, target), "OWNER → %s", target)
	}

	admin := &model.User{Role: model.RoleAdmin}
	assert.True(t, ValidateRoleHierarchy(admin, model.RoleStaff))
	assert.False(t, ValidateRoleHierarchy(admin, model.RoleOwner))
	assert.False(t, ValidateRoleHierarchy(admin, model.RoleAdmin))
	assert.False(t, ValidateRoleHierarchy(admin, model.RoleCashier))

	for _, role := range []model.Role{model.RoleStaff, model.RoleCashier} {
		user := &model.User{Role: role}
		for _, target := range model.AllRoles {
			assert.False(t, ValidateRoleHierarchy(user, target), "%s → %s", role, target)
		}
	}

	assert.False(t, ValidateRoleHierarchy(owner, "SUPERUSER"), "unknown target role denies")
}

func TestValidateTransactionType(t *testing.T) {
	cashier := &model.User{Role: model.RoleCashier}
	assert.True(t, ValidateTransactionType(cashier, model.TxSale))
	assert.False(t, ValidateTransactionType(cashier, model.TxTransfer))

	for _, role := range []model.Role{model.RoleOwner, model.RoleAdmin, model.RoleStaff} {
		user := &model.User{Role: role}
		assert.True(t, ValidateTransactionType(user, model.TxSale), "%s + SALE", role)
		assert.True(t, ValidateTransactionType(user, model.TxTransfer), "%s + TRANSFER", role)
	}
}

func TestEnforceTransactionTypeMessage(t *testing.T) {
	cashier := &model.User{Role: model.RoleCashier}
	err := EnforceTransactionType(cashier, model.TxTransfer)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CASHIER")
	assert.Contains(t, err.Error(), "SALE")
}

func TestEnforcePermissionMessageNamesPermission(t *testing.T) {
	staff := &model.User{Role: model.RoleStaff}
	err := EnforcePermission(staff, "DELETE_STORE")
	assert.Error(t, err)
	assert.Equal(t, fmt.Sprintf("Insufficient permissions. Required: %s", "DELETE_STORE"), err.Error())
}
