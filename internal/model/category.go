package model

import "github.com/google/uuid"

type Category struct {
	BaseModel
	StoreID uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id" validate:"uuid_required"`
	Store   *Store    `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Name    string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`

	CreatedByID uuid.UUID `gorm:"type:uuid;index" json:"created_by_id"`
	Creator     *User     `gorm:"foreignKey:CreatedByID;references:ID" json:"creator,omitempty"`
}
