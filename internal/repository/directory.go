package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-pos-api/internal/authz"
	"go-pos-api/internal/model"
)

// Directory implements authz.Directory over gorm. Lookups go through
// the default scope, so soft-deleted rows resolve to nil — except the
// category creator, which is fetched unscoped: a category must stay
// reachable by its tenant even after the creating user is deleted.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

var _ authz.Directory = (*Directory)(nil)

func (d *Directory) FindUserByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return &user, nil
}

func (d *Directory) FindStoreByID(id uuid.UUID) (*model.Store, error) {
	var store model.Store
	if err := d.db.First(&store, "id = ?", id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return &store, nil
}

func (d *Directory) FindCategoryWithCreator(id uuid.UUID) (*authz.CategoryWithCreator, error) {
	var category model.Category
	if err := d.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}

	var creator model.User
	if err := d.db.Unscoped().First(&creator, "id = ?", category.CreatedByID).Error; err != nil {
		return nil, ignoreNotFound(err)
	}

	return &authz.CategoryWithCreator{
		Category:       category,
		CreatorID:      creator.ID,
		CreatorRole:    creator.Role,
		CreatorOwnerID: creator.OwnerID,
	}, nil
}

func (d *Directory) FindProductWithStore(id uuid.UUID) (*authz.ProductWithStore, error) {
	var product model.Product
	if err := d.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}

	var store model.Store
	if err := d.db.First(&store, "id = ?", product.StoreID).Error; err != nil {
		return nil, ignoreNotFound(err)
	}

	return &authz.ProductWithStore{
		Product:      product,
		StoreOwnerID: store.OwnerID,
	}, nil
}

func (d *Directory) FindTransactionStoreIDs(id uuid.UUID) (*authz.TransactionStores, error) {
	var transaction model.Transaction
	if err := d.db.Select("id", "from_store_id", "to_store_id").
		First(&transaction, "id = ?", id).Error; err != nil {
		return nil, ignoreNotFound(err)
	}
	return &authz.TransactionStores{
		FromStoreID: transaction.FromStoreID,
		ToStoreID:   transaction.ToStoreID,
	}, nil
}

func (d *Directory) FindStoresOwnedBy(ownerID uuid.UUID) ([]model.Store, error) {
	var stores []model.Store
	err := d.db.Where("owner_id = ?", ownerID).Find(&stores).Error
	return stores, err
}

func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
