package model

import "github.com/google/uuid"

// Store is the tenancy root for categories, products, and transactions.
// OwnerID always points at the tenant OWNER's user id, never at the
// creating user.
type Store struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id" validate:"uuid_required"`
	Name    string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Address string    `gorm:"type:text" json:"address"`
	Phone   string    `gorm:"type:varchar(20)" json:"phone"`

	CreatedByID uuid.UUID `gorm:"type:uuid" json:"created_by_id"`
	Creator     *User     `gorm:"foreignKey:CreatedByID;references:ID" json:"creator,omitempty"`
}
