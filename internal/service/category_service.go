package service

import (
	"github.com/google/uuid"

	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/pkg/apperr"
	"go-pos-api/pkg/validator"
)

type CategoryService interface {
	CreateCategory(creator *model.User, req *CreateCategoryRequest) (*model.Category, error)
	UpdateCategory(updater *model.User, categoryID uuid.UUID, req *UpdateCategoryRequest) (*model.Category, error)
	DeleteCategory(deleter *model.User, categoryID uuid.UUID) error
	GetCategoriesByStore(storeID uuid.UUID) ([]model.Category, error)
	GetCategoryByID(id uuid.UUID) (*model.Category, error)
}

type CreateCategoryRequest struct {
	StoreID uuid.UUID `json:"store_id" validate:"uuid_required"`
	Name    string    `json:"name" validate:"required"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(creator *model.User, req *CreateCategoryRequest) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	category := &model.Category{
		StoreID:     req.StoreID,
		Name:        req.Name,
		CreatedByID: creator.ID,
	}
	category.CreatedBy = creator.ID.String()
	category.UpdatedBy = creator.ID.String()

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(updater *model.User, categoryID uuid.UUID, req *UpdateCategoryRequest) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("Category")
	}

	category.Name = req.Name
	category.UpdatedBy = updater.ID.String()

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(deleter *model.User, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.FindByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return apperr.NotFound("Category")
	}
	return s.categoryRepo.Delete(categoryID, deleter.ID.String())
}

func (s *categoryService) GetCategoriesByStore(storeID uuid.UUID) ([]model.Category, error) {
	return s.categoryRepo.FindAllByStore(storeID)
}

func (s *categoryService) GetCategoryByID(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperr.NotFound("Category")
	}
	return category, nil
}
