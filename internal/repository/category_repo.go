package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-pos-api/internal/model"
)

type CategoryRepository interface {
	FindByID(id uuid.UUID) (*model.Category, error)
	FindAllByStore(storeID uuid.UUID) ([]model.Category, error)
	Create(category *model.Category) error
	Update(category *model.Category) error
	Delete(id uuid.UUID, deletedBy string) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db}
}

func (r *categoryRepo) FindByID(id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.Preload("Store").First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepo) FindAllByStore(storeID uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Where("store_id = ?", storeID).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepo) Update(category *model.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Category{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Category{}, "id = ?", id).Error
}
