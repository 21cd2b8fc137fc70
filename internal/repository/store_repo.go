package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-pos-api/internal/model"
)

type StoreRepository interface {
	FindByID(id uuid.UUID) (*model.Store, error)
	FindAllOwnedBy(ownerID uuid.UUID) ([]model.Store, error)
	Create(store *model.Store) error
	Update(store *model.Store) error
	Delete(id uuid.UUID, deletedBy string) error
}

type storeRepo struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepository {
	return &storeRepo{db}
}

func (r *storeRepo) FindByID(id uuid.UUID) (*model.Store, error) {
	var store model.Store
	if err := r.db.First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) FindAllOwnedBy(ownerID uuid.UUID) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&stores).Error
	return stores, err
}

func (r *storeRepo) Create(store *model.Store) error {
	return r.db.Create(store).Error
}

func (r *storeRepo) Update(store *model.Store) error {
	return r.db.Save(store).Error
}

func (r *storeRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Store{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Store{}, "id = ?", id).Error
}
