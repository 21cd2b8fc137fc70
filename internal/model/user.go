package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role represents user roles in the system
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleAdmin   Role = "ADMIN"
	RoleStaff   Role = "STAFF"
	RoleCashier Role = "CASHIER"
)

// AllRoles lists every role the system knows about
var AllRoles = []Role{RoleOwner, RoleAdmin, RoleStaff, RoleCashier}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleStaff, RoleCashier:
		return true
	}
	return false
}

// User represents an authenticated user in the system.
// Every non-OWNER user belongs to a tenant identified by OwnerID (the
// tenant OWNER's user id). An OWNER has OwnerID = nil; their own id is
// the tenant identifier.
type User struct {
	BaseModel
	Name     string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Username string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Password string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role     Role       `gorm:"type:varchar(20);not null" json:"role" validate:"required"`
	OwnerID  *uuid.UUID `gorm:"type:uuid;index" json:"owner_id,omitempty"`
	IsActive bool       `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Username  string     `json:"username"`
	Role      Role       `json:"role"`
	OwnerID   *uuid.UUID `json:"owner_id,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      u.Role,
		OwnerID:   u.OwnerID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
