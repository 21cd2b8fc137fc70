package authz

import (
	"github.com/google/uuid"

	"go-pos-api/internal/model"
)

// CategoryWithCreator carries a category together with the creating
// user's role and owner id, which is what category access scoping
// compares against.
type CategoryWithCreator struct {
	Category       model.Category
	CreatorID      uuid.UUID
	CreatorRole    model.Role
	CreatorOwnerID *uuid.UUID
}

// ProductWithStore carries a product and its store's tenant owner id
type ProductWithStore struct {
	Product      model.Product
	StoreOwnerID uuid.UUID
}

// TransactionStores holds the store ids involved in a transaction
type TransactionStores struct {
	FromStoreID *uuid.UUID
	ToStoreID   *uuid.UUID
}

// Directory is the identity/persistence port the engine reads through.
// Every lookup excludes soft-deleted rows and returns (nil, nil) when
// the id does not resolve.
type Directory interface {
	FindUserByID(id uuid.UUID) (*model.User, error)
	FindStoreByID(id uuid.UUID) (*model.Store, error)
	FindCategoryWithCreator(id uuid.UUID) (*CategoryWithCreator, error)
	FindProductWithStore(id uuid.UUID) (*ProductWithStore, error)
	FindTransactionStoreIDs(id uuid.UUID) (*TransactionStores, error)
	FindStoresOwnedBy(ownerID uuid.UUID) ([]model.Store, error)
}
