package authz

import (
	"github.com/google/uuid"

	"go-pos-api/internal/model"
	"go-pos-api/pkg/apperr"
)

// Engine evaluates instance-level resource access for authenticated
// users. Each check fetches the target through the Directory, fails
// with NotFound when the row is absent or soft-deleted, and only then
// compares ownership scope. Checks are side-effect free beyond reads.
type Engine struct {
	dir Directory
}

func NewEngine(dir Directory) *Engine {
	return &Engine{dir: dir}
}

// CheckUserAccess reports whether the requester may act on the target
// user. An OWNER reaches their tenant's users and themselves; every
// other role reaches users of the same tenant.
func (e *Engine) CheckUserAccess(requester *model.User, targetID uuid.UUID) (bool, error) {
	target, err := e.dir.FindUserByID(targetID)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, apperr.NotFound("User")
	}

	if requester.Role == model.RoleOwner {
		if target.ID == requester.ID {
			return true, nil
		}
		return target.OwnerID != nil && *target.OwnerID == requester.ID, nil
	}
	return requester.OwnerID != nil && target.OwnerID != nil &&
		*target.OwnerID == *requester.OwnerID, nil
}

// CheckStoreAccess narrows the store to its tenant owner and compares scope
func (e *Engine) CheckStoreAccess(requester *model.User, storeID uuid.UUID) (bool, error) {
	store, err := e.dir.FindStoreByID(storeID)
	if err != nil {
		return false, err
	}
	if store == nil {
		return false, apperr.NotFound("Store")
	}
	return CheckOwnerScope(requester, store.OwnerID), nil
}

// CheckCategoryAccess scopes by the CREATING user's tenant, not by the
// category's store's tenant. That asymmetry against product access is
// deliberate and load-bearing; do not unify the two.
func (e *Engine) CheckCategoryAccess(requester *model.User, categoryID uuid.UUID) (bool, error) {
	cat, err := e.dir.FindCategoryWithCreator(categoryID)
	if err != nil {
		return false, err
	}
	if cat == nil {
		return false, apperr.NotFound("Category")
	}

	// The creator's scope id: their own id if they are an OWNER,
	// otherwise their stored owner id.
	creatorScope := cat.CreatorID
	if cat.CreatorRole != model.RoleOwner {
		if cat.CreatorOwnerID == nil {
			return false, nil
		}
		creatorScope = *cat.CreatorOwnerID
	}

	if requester.Role == model.RoleOwner {
		return cat.Category.CreatedByID == requester.ID || creatorScope == requester.ID, nil
	}
	return requester.OwnerID != nil && creatorScope == *requester.OwnerID, nil
}

// CheckProductAccess narrows the product to its store's tenant owner
func (e *Engine) CheckProductAccess(requester *model.User, productID uuid.UUID) (bool, error) {
	prod, err := e.dir.FindProductWithStore(productID)
	if err != nil {
		return false, err
	}
	if prod == nil {
		return false, apperr.NotFound("Product")
	}
	return CheckOwnerScope(requester, prod.StoreOwnerID), nil
}

// CheckTransactionAccess grants access when any store involved in the
// transaction belongs to the requester's scope. The candidate set is
// {fromStoreId, toStoreId} with nulls dropped; an empty set denies.
func (e *Engine) CheckTransactionAccess(requester *model.User, transactionID uuid.UUID) (bool, error) {
	tx, err := e.dir.FindTransactionStoreIDs(transactionID)
	if err != nil {
		return false, err
	}
	if tx == nil {
		return false, apperr.NotFound("Transaction")
	}

	candidates := make(map[uuid.UUID]struct{}, 2)
	if tx.FromStoreID != nil {
		candidates[*tx.FromStoreID] = struct{}{}
	}
	if tx.ToStoreID != nil {
		candidates[*tx.ToStoreID] = struct{}{}
	}
	if len(candidates) == 0 {
		return false, nil
	}

	scope, ok := ScopeID(requester)
	if !ok {
		return false, nil
	}

	owned, err := e.dir.FindStoresOwnedBy(scope)
	if err != nil {
		return false, err
	}
	for _, store := range owned {
		if _, ok := candidates[store.ID]; ok {
			return true, nil
		}
	}
	return false, nil
}
