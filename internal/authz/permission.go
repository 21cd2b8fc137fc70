// Package authz implements the role-based, ownership-scoped access
// control engine. Every resource operation in the API is gated here:
// a static role→permission table decides what a role may do, and the
// per-resource access checks decide which tenant's rows it may touch.
package authz

import (
	"github.com/google/uuid"

	"go-pos-api/internal/model"
)

type Action string

const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

type Resource string

const (
	ResourceUser        Resource = "USER"
	ResourceStore       Resource = "STORE"
	ResourceCategory    Resource = "CATEGORY"
	ResourceProduct     Resource = "PRODUCT"
	ResourceTransaction Resource = "TRANSACTION"
)

// Permission is an "{ACTION}_{RESOURCE}" token granted per role,
// independent of any specific resource instance.
type Permission string

func PermissionFor(action Action, resource Resource) Permission {
	return Permission(string(action) + "_" + string(resource))
}

// rolePermissions is the fixed role→permission table. It is built once
// and never mutated; no runtime mutation path is exported.
var rolePermissions = map[model.Role]map[Permission]struct{}{
	model.RoleOwner: permissionSet(
		"CREATE_USER", "READ_USER", "UPDATE_USER", "DELETE_USER",
		"CREATE_STORE", "READ_STORE", "UPDATE_STORE", "DELETE_STORE",
		"CREATE_CATEGORY", "READ_CATEGORY", "UPDATE_CATEGORY", "DELETE_CATEGORY",
		"CREATE_PRODUCT", "READ_PRODUCT", "UPDATE_PRODUCT", "DELETE_PRODUCT",
		"CREATE_TRANSACTION", "READ_TRANSACTION", "UPDATE_TRANSACTION", "DELETE_TRANSACTION",
	),
	model.RoleAdmin: permissionSet(
		"CREATE_USER", "READ_USER", "UPDATE_USER",
		"READ_STORE",
		"CREATE_CATEGORY", "READ_CATEGORY", "UPDATE_CATEGORY",
		"CREATE_PRODUCT", "READ_PRODUCT", "UPDATE_PRODUCT",
		"CREATE_TRANSACTION", "READ_TRANSACTION", "UPDATE_TRANSACTION",
	),
	model.RoleStaff: permissionSet(
		"READ_USER",
		"READ_STORE",
		"READ_CATEGORY",
		"READ_PRODUCT", "UPDATE_PRODUCT",
		"READ_TRANSACTION",
	),
	model.RoleCashier: permissionSet(
		"READ_USER",
		"READ_STORE",
		"READ_CATEGORY",
		"READ_PRODUCT",
		"CREATE_TRANSACTION", "READ_TRANSACTION", "UPDATE_TRANSACTION",
	),
}

func permissionSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// HasPermission reports whether the user's role grants the permission.
// Unknown roles have no permissions (fail closed).
func HasPermission(user *model.User, permission Permission) bool {
	perms, ok := rolePermissions[user.Role]
	if !ok {
		return false
	}
	_, ok = perms[permission]
	return ok
}

// HasResourceAccess reports whether the user's role may perform the
// action on the resource kind.
func HasResourceAccess(user *model.User, resource Resource, action Action) bool {
	return HasPermission(user, PermissionFor(action, resource))
}

// CheckOwnerScope is the fundamental multi-tenancy boundary: an OWNER's
// scope identifier is their own id; every other role's scope identifier
// is their stored owner id.
func CheckOwnerScope(user *model.User, ownerID uuid.UUID) bool {
	if user.Role == model.RoleOwner {
		return user.ID == ownerID
	}
	return user.OwnerID != nil && *user.OwnerID == ownerID
}

// ScopeID returns the tenant identifier the user operates under.
// The second return is false when a non-OWNER user has no owner set.
func ScopeID(user *model.User) (uuid.UUID, bool) {
	if user.Role == model.RoleOwner {
		return user.ID, true
	}
	if user.OwnerID == nil {
		return uuid.Nil, false
	}
	return *user.OwnerID, true
}

// ValidateRoleHierarchy reports whether a user may manage (create or
// assign) the target role. OWNER may target any role, ADMIN only
// STAFF, everyone else nothing.
func ValidateRoleHierarchy(user *model.User, targetRole model.Role) bool {
	switch user.Role {
	case model.RoleOwner:
		return targetRole.Valid()
	case model.RoleAdmin:
		return targetRole == model.RoleStaff
	}
	return false
}

// ValidateTransactionType reports whether the user may act on the
// transaction type. CASHIER is restricted to SALE; every other role
// is unrestricted.
func ValidateTransactionType(user *model.User, txType model.TransactionType) bool {
	if user.Role == model.RoleCashier {
		return txType == model.TxSale
	}
	return true
}
