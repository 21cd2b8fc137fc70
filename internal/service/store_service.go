package service

import (
	"github.com/google/uuid"

	"go-pos-api/internal/authz"
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/pkg/apperr"
	"go-pos-api/pkg/validator"
)

type StoreService interface {
	CreateStore(creator *model.User, req *StoreRequest) (*model.Store, error)
	UpdateStore(updater *model.User, storeID uuid.UUID, req *StoreRequest) (*model.Store, error)
	DeleteStore(deleter *model.User, storeID uuid.UUID) error
	GetStores(requester *model.User) ([]model.Store, error)
	GetStoreByID(requester *model.User, id uuid.UUID) (*model.Store, error)
}

type StoreRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type storeService struct {
	storeRepo repository.StoreRepository
}

func NewStoreService(storeRepo repository.StoreRepository) StoreService {
	return &storeService{storeRepo: storeRepo}
}

func (s *storeService) CreateStore(creator *model.User, req *StoreRequest) (*model.Store, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	// Store ownership always lands on the tenant owner, even if a
	// differently-privileged user ever reaches this path.
	scope, ok := authz.ScopeID(creator)
	if !ok {
		return nil, apperr.Forbidden("Access denied to store")
	}

	store := &model.Store{
		OwnerID:     scope,
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		CreatedByID: creator.ID,
	}
	store.CreatedBy = creator.ID.String()
	store.UpdatedBy = creator.ID.String()

	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) UpdateStore(updater *model.User, storeID uuid.UUID, req *StoreRequest) (*model.Store, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFound("Store")
	}

	store.Name = req.Name
	store.Address = req.Address
	store.Phone = req.Phone
	store.UpdatedBy = updater.ID.String()

	if err := s.storeRepo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeService) DeleteStore(deleter *model.User, storeID uuid.UUID) error {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return apperr.NotFound("Store")
	}
	return s.storeRepo.Delete(storeID, deleter.ID.String())
}

func (s *storeService) GetStores(requester *model.User) ([]model.Store, error) {
	scope, ok := authz.ScopeID(requester)
	if !ok {
		return []model.Store{}, nil
	}
	return s.storeRepo.FindAllOwnedBy(scope)
}

func (s *storeService) GetStoreByID(requester *model.User, id uuid.UUID) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFound("Store")
	}
	return store, nil
}
