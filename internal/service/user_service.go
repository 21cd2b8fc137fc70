package service

import (
	"github.com/google/uuid"

	"go-pos-api/internal/authz"
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/pkg/apperr"
	"go-pos-api/pkg/validator"
)

type UserService interface {
	CreateUser(creator *model.User, req *CreateUserRequest) (*model.User, error)
	UpdateUser(updater *model.User, userID uuid.UUID, req *UpdateUserRequest) (*model.User, error)
	DeleteUser(deleter *model.User, userID uuid.UUID) error
	GetUsers(requester *model.User) ([]model.UserResponse, error)
	GetUserByID(requester *model.User, id uuid.UUID) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Username string     `json:"username" validate:"required,min=3"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role" validate:"required,oneof=OWNER ADMIN STAFF CASHIER"`
}

type UpdateUserRequest struct {
	Name     string      `json:"name" validate:"required"`
	Password *string     `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     *model.Role `json:"role,omitempty" validate:"omitempty,oneof=OWNER ADMIN STAFF CASHIER"`
	IsActive *bool       `json:"is_active,omitempty"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(creator *model.User, req *CreateUserRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	// Route guards already apply the create rules; the hierarchy check
	// here is defense in depth for non-HTTP callers.
	if err := authz.EnforceRoleHierarchy(creator, req.Role); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Username already exists")
	}

	// The new user is scoped under the creator's tenant. Ownership is
	// flattened: an ADMIN's creations point at the tenant OWNER, not
	// at the ADMIN.
	scope, ok := authz.ScopeID(creator)
	if !ok {
		return nil, apperr.Forbidden("Access denied to user")
	}

	user := &model.User{
		Name:     req.Name,
		Username: req.Username,
		Role:     req.Role,
		OwnerID:  &scope,
		IsActive: true,
	}
	if req.Role == model.RoleOwner {
		// A created OWNER starts their own tenant root
		user.OwnerID = nil
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	user.CreatedBy = creator.ID.String()
	user.UpdatedBy = creator.ID.String()

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(updater *model.User, userID uuid.UUID, req *UpdateUserRequest) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}

	if req.Role != nil && *req.Role != user.Role {
		if err := authz.EnforceRoleHierarchy(updater, *req.Role); err != nil {
			return nil, err
		}
		user.Role = *req.Role
	}

	user.Name = req.Name
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil && *req.Password != "" {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	user.UpdatedBy = updater.ID.String()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(deleter *model.User, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("User")
	}
	if user.ID == deleter.ID {
		return apperr.Validation("Cannot delete your own account")
	}
	return s.userRepo.Delete(userID, deleter.ID.String())
}

func (s *userService) GetUsers(requester *model.User) ([]model.UserResponse, error) {
	scope, ok := authz.ScopeID(requester)
	if !ok {
		return []model.UserResponse{}, nil
	}
	users, err := s.userRepo.FindAllInTenant(scope)
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(requester *model.User, id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}
	response := user.ToResponse()
	return &response, nil
}
