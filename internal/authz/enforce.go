package authz

import (
	"github.com/google/uuid"

	"go-pos-api/internal/model"
	"go-pos-api/pkg/apperr"
)

// Enforce* variants raise on denial instead of returning a bool.
// NotFound from the underlying check always takes precedence over
// Forbidden: resource existence is independent of authorization.

func EnforcePermission(user *model.User, permission Permission) error {
	if !HasPermission(user, permission) {
		return apperr.Forbiddenf("Insufficient permissions. Required: %s", permission)
	}
	return nil
}

func EnforceResourceAccess(user *model.User, resource Resource, action Action) error {
	return EnforcePermission(user, PermissionFor(action, resource))
}

func EnforceRoleHierarchy(user *model.User, targetRole model.Role) error {
	if !ValidateRoleHierarchy(user, targetRole) {
		return apperr.Forbiddenf("Role %s may not manage role %s", user.Role, targetRole)
	}
	return nil
}

func EnforceTransactionType(user *model.User, txType model.TransactionType) error {
	if !ValidateTransactionType(user, txType) {
		return apperr.Forbiddenf("Role %s may only create %s transactions", user.Role, model.TxSale)
	}
	return nil
}

func (e *Engine) EnforceUserAccess(requester *model.User, targetID uuid.UUID) error {
	return enforce(e.CheckUserAccess, requester, targetID, "user")
}

func (e *Engine) EnforceStoreAccess(requester *model.User, storeID uuid.UUID) error {
	return enforce(e.CheckStoreAccess, requester, storeID, "store")
}

func (e *Engine) EnforceCategoryAccess(requester *model.User, categoryID uuid.UUID) error {
	return enforce(e.CheckCategoryAccess, requester, categoryID, "category")
}

func (e *Engine) EnforceProductAccess(requester *model.User, productID uuid.UUID) error {
	return enforce(e.CheckProductAccess, requester, productID, "product")
}

func (e *Engine) EnforceTransactionAccess(requester *model.User, transactionID uuid.UUID) error {
	return enforce(e.CheckTransactionAccess, requester, transactionID, "transaction")
}

type checkFunc func(*model.User, uuid.UUID) (bool, error)

func enforce(check checkFunc, requester *model.User, id uuid.UUID, resource string) error {
	ok, err := check(requester, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Forbidden("Access denied to " + resource)
	}
	return nil
}
