package service

import (
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/pkg/apperr"
	"go-pos-api/pkg/token"
	"go-pos-api/pkg/validator"
)

type AuthService interface {
	Login(req *LoginRequest) (*AuthResponse, error)
	Register(req *RegisterRequest) (*AuthResponse, error)
	Refresh(refreshToken string) (*AuthResponse, error)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a new tenant: the registered user becomes
// the tenant's OWNER. Staff accounts are created through the user
// service by an authenticated OWNER or ADMIN instead.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	User         model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Login(req *LoginRequest) (*AuthResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	user, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	// One uniform 401 for unknown user and wrong password
	if user == nil || !user.CheckPassword(req.Password) {
		return nil, apperr.Unauthorized("Invalid username or password")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("User account is inactive")
	}

	return s.respondWithTokens(user)
}

func (s *authService) Register(req *RegisterRequest) (*AuthResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(validator.FirstError(errs))
	}

	existing, err := s.userRepo.FindByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Username already exists")
	}

	user := &model.User{
		Name:     req.Name,
		Username: req.Username,
		Role:     model.RoleOwner,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	user.CreatedBy = req.Username
	user.UpdatedBy = req.Username

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return s.respondWithTokens(user)
}

func (s *authService) Refresh(refreshToken string) (*AuthResponse, error) {
	claims, err := s.tokens.Verify(refreshToken, token.Refresh)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	// The user must still exist and be active at rotation time
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	return s.respondWithTokens(user)
}

func (s *authService) respondWithTokens(user *model.User) (*AuthResponse, error) {
	pair, err := s.tokens.IssuePair(user.ID, string(user.Role), user.OwnerID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user.ToResponse(),
	}, nil
}
