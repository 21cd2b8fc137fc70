package model

import "github.com/google/uuid"

type TransactionType string

const (
	TxSale     TransactionType = "SALE"
	TxTransfer TransactionType = "TRANSFER"
)

// Transaction records a sale or an inter-store transfer.
// SALE requires at least one of FromStoreID/ToStoreID,
// TRANSFER requires both.
type Transaction struct {
	BaseModel
	Type        TransactionType `gorm:"type:varchar(10);not null" json:"type" validate:"required,oneof=SALE TRANSFER"`
	FromStoreID *uuid.UUID      `gorm:"type:uuid;index" json:"from_store_id,omitempty"`
	FromStore   *Store          `gorm:"foreignKey:FromStoreID" json:"from_store,omitempty"`
	ToStoreID   *uuid.UUID      `gorm:"type:uuid;index" json:"to_store_id,omitempty"`
	ToStore     *Store          `gorm:"foreignKey:ToStoreID" json:"to_store,omitempty"`

	Amount     int64 `gorm:"not null" json:"amount"`
	IsFinished bool  `gorm:"default:false" json:"is_finished"`

	CreatedByID  uuid.UUID  `gorm:"type:uuid" json:"created_by_id"`
	Creator      *User      `gorm:"foreignKey:CreatedByID;references:ID" json:"creator,omitempty"`
	ApprovedByID *uuid.UUID `gorm:"type:uuid" json:"approved_by_id,omitempty"`

	Items []TransactionItem `json:"items,omitempty"`
}

// TransactionItem snapshots the product name and price at transaction time
type TransactionItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Price         int64     `gorm:"not null" json:"price"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Amount        int64     `gorm:"not null" json:"amount"`
}
